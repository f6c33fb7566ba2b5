package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// CatalogService manages products and the office price list. Every mutation
// requires an admin actor.
type CatalogService struct {
	catalog   Catalog
	roster    Roster
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewCatalogService(catalog Catalog, roster Roster, publisher Publisher, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		catalog:   catalog,
		roster:    roster,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Authenticate resolves a 4-digit PIN to a roster user.
func (s *CatalogService) Authenticate(ctx context.Context, pin string) (domain.User, error) {
	if !pinPattern.MatchString(pin) {
		return domain.User{}, domain.ErrInvalidPIN
	}
	user, err := s.roster.FindByPIN(ctx, pin)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrInvalidPIN
		}
		return domain.User{}, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	return s.catalog.FindProduct(ctx, productID)
}

func (s *CatalogService) ListProducts(ctx context.Context) []domain.Product {
	return s.catalog.ListProducts(ctx)
}

func (s *CatalogService) ListServices(ctx context.Context) []domain.ServiceDefinition {
	return s.catalog.ListServices(ctx)
}

// AddProduct creates a product, generating a "P<n>" id when none is given,
// and returns the updated catalog.
func (s *CatalogService) AddProduct(ctx context.Context, actor domain.User, product domain.Product) ([]domain.Product, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	product = normalizeProduct(product)
	if product.ID == "" {
		id, err := s.catalog.NextProductID(ctx)
		if err != nil {
			return nil, err
		}
		product.ID = id
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.catalog.AddProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created successfully",
		zap.String("product_id", product.ID),
		zap.Int("initial_stock", product.Stock),
		zap.String("performer", actor.Name))
	s.notify(domain.NotificationSuccess, "Produit Ajouté")

	return s.catalog.ListProducts(ctx), nil
}

// UpdateProduct overwrites a product by id. An absent id is ErrNotFound.
func (s *CatalogService) UpdateProduct(ctx context.Context, actor domain.User, product domain.Product) ([]domain.Product, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	product = normalizeProduct(product)
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.catalog.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product updated",
		zap.String("product_id", product.ID),
		zap.Int("stock", product.Stock),
		zap.Int64("price", product.Price),
		zap.String("performer", actor.Name))
	s.notify(domain.NotificationSuccess, "Produit Modifié")

	return s.catalog.ListProducts(ctx), nil
}

// RemoveProduct deletes a product. Past sales keep their recorded
// description and amount.
func (s *CatalogService) RemoveProduct(ctx context.Context, actor domain.User, productID string) ([]domain.Product, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.catalog.RemoveProduct(ctx, productID); err != nil {
		return nil, err
	}

	s.logger.Info("Product removed", zap.String("product_id", productID), zap.String("performer", actor.Name))
	s.notify(domain.NotificationInfo, "Produit Supprimé")

	return s.catalog.ListProducts(ctx), nil
}

// SetServices replaces the price list. Names must be unique; definitions
// without an id get one.
func (s *CatalogService) SetServices(ctx context.Context, actor domain.User, services []domain.ServiceDefinition) ([]domain.ServiceDefinition, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	stamp := s.now().UnixMilli()
	names := make(map[string]struct{}, len(services))
	ids := make(map[string]struct{}, len(services))
	out := make([]domain.ServiceDefinition, 0, len(services))

	for i, def := range services {
		def.Name = strings.TrimSpace(def.Name)
		if def.Category == "" {
			def.Category = domain.ServiceCategoryOffice
		}
		if def.ID == "" {
			def.ID = fmt.Sprintf("S%d%d", stamp, i)
		}

		var err error
		if def.Name == "" {
			err = multierr.Append(err, errors.New("name is required"))
		}
		if def.Price < 0 {
			err = multierr.Append(err, fmt.Errorf("price %d is negative", def.Price))
		}
		if def.Category != domain.ServiceCategoryOffice && def.Category != domain.ServiceCategoryOther {
			err = multierr.Append(err, fmt.Errorf("category %q is unknown", def.Category))
		}
		if err != nil {
			return nil, fmt.Errorf("service %q: %w: %w", def.Name, domain.ErrInvalidService, err)
		}

		if _, dup := names[def.Name]; dup {
			return nil, fmt.Errorf("service name %q: %w", def.Name, domain.ErrDuplicateKey)
		}
		if _, dup := ids[def.ID]; dup {
			return nil, fmt.Errorf("service id %q: %w", def.ID, domain.ErrDuplicateKey)
		}
		names[def.Name] = struct{}{}
		ids[def.ID] = struct{}{}
		out = append(out, def)
	}

	s.catalog.SetServices(ctx, out)
	s.logger.Info("Service prices updated", zap.Int("count", len(out)), zap.String("performer", actor.Name))
	s.notify(domain.NotificationSuccess, "Tarifs mis à jour")

	return s.catalog.ListServices(ctx), nil
}

func (s *CatalogService) notify(kind domain.NotificationType, message string) {
	s.publisher.PublishNotification(domain.Notification{
		Message:   message,
		Type:      kind,
		Timestamp: s.now(),
	})
}

func requireAdmin(actor domain.User) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func normalizeProduct(p domain.Product) domain.Product {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = "Autre"
	}
	return p
}

func validateProduct(p domain.Product) error {
	var err error
	if p.ID == "" {
		err = multierr.Append(err, errors.New("id is required"))
	}
	if p.Name == "" {
		err = multierr.Append(err, errors.New("name is required"))
	}
	if p.Price < 0 {
		err = multierr.Append(err, fmt.Errorf("price %d is negative", p.Price))
	}
	if p.Stock < 0 {
		err = multierr.Append(err, fmt.Errorf("stock %d is negative", p.Stock))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidProduct, err)
	}
	return nil
}
