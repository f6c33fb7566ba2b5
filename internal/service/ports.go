package service

import (
	"context"
	"time"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"github.com/cloud-wave-best-zizon/till-service/internal/events"
)

// Catalog is the product and price-list store the services work against.
type Catalog interface {
	FindProduct(ctx context.Context, productID string) (domain.Product, error)
	ListProducts(ctx context.Context) []domain.Product
	AddProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	RemoveProduct(ctx context.Context, productID string) error
	SetStock(ctx context.Context, productID string, stock int) error
	NextProductID(ctx context.Context) (string, error)
	FindServiceByName(ctx context.Context, name string) (domain.ServiceDefinition, error)
	ListServices(ctx context.Context) []domain.ServiceDefinition
	SetServices(ctx context.Context, services []domain.ServiceDefinition)
}

// Ledger is the append-only transaction log.
type Ledger interface {
	Append(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)
	All(ctx context.Context) []domain.Transaction
	ForDay(ctx context.Context, dayStart time.Time) []domain.Transaction
	Location() *time.Location
}

type Roster interface {
	FindByPIN(ctx context.Context, pin string) (domain.User, error)
}

// Publisher receives signals produced by core operations.
type Publisher interface {
	PublishNotification(n domain.Notification)
	PublishTransactionRecorded(event events.TransactionRecordedEvent)
	PublishStockDeducted(event events.StockDeductedEvent)
	SignalLowStock(event events.LowStockAlertEvent)
}
