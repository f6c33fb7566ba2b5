package repository

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
)

const maxIDAttempts = 64

// CatalogRepository holds sellable products and office service definitions
// for one till session.
type CatalogRepository struct {
	mu       sync.RWMutex
	products []domain.Product // newest first
	services []domain.ServiceDefinition
}

func NewCatalogRepository(products []domain.Product, services []domain.ServiceDefinition) *CatalogRepository {
	return &CatalogRepository{
		products: append([]domain.Product(nil), products...),
		services: append([]domain.ServiceDefinition(nil), services...),
	}
}

func (r *CatalogRepository) FindProduct(_ context.Context, productID string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(productID)
	if i < 0 {
		return domain.Product{}, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	return r.products[i], nil
}

func (r *CatalogRepository) ListProducts(_ context.Context) []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.Product(nil), r.products...)
}

// AddProduct prepends the product so it is listed first.
func (r *CatalogRepository) AddProduct(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(product.ID) >= 0 {
		return fmt.Errorf("product %s: %w", product.ID, domain.ErrDuplicateKey)
	}
	r.products = append([]domain.Product{product}, r.products...)
	return nil
}

func (r *CatalogRepository) UpdateProduct(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(product.ID)
	if i < 0 {
		return fmt.Errorf("product %s: %w", product.ID, domain.ErrNotFound)
	}
	r.products[i] = product
	return nil
}

func (r *CatalogRepository) RemoveProduct(_ context.Context, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	r.products = append(r.products[:i:i], r.products[i+1:]...)
	return nil
}

// SetStock writes back a stock level computed by the stock mutator.
func (r *CatalogRepository) SetStock(_ context.Context, productID string, stock int) error {
	if stock < 0 {
		return fmt.Errorf("product %s: stock %d: %w", productID, stock, domain.ErrInvalidProduct)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	r.products[i].Stock = stock
	return nil
}

// NextProductID picks an unused "P<n>" reference, n < 10000.
func (r *CatalogRepository) NextProductID(_ context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for range maxIDAttempts {
		id := fmt.Sprintf("P%d", rand.IntN(10000))
		if r.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("product id space: %w", domain.ErrDuplicateKey)
}

func (r *CatalogRepository) FindServiceByName(_ context.Context, name string) (domain.ServiceDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.services {
		if s.Name == name {
			return s, nil
		}
	}
	return domain.ServiceDefinition{}, fmt.Errorf("service %q: %w", name, domain.ErrNotFound)
}

func (r *CatalogRepository) ListServices(_ context.Context) []domain.ServiceDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.ServiceDefinition(nil), r.services...)
}

// SetServices replaces the whole price list.
func (r *CatalogRepository) SetServices(_ context.Context, services []domain.ServiceDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.services = append([]domain.ServiceDefinition(nil), services...)
}

func (r *CatalogRepository) indexOf(productID string) int {
	for i, p := range r.products {
		if p.ID == productID {
			return i
		}
	}
	return -1
}
