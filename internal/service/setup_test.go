package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"github.com/cloud-wave-best-zizon/till-service/internal/events"
	"github.com/cloud-wave-best-zizon/till-service/internal/repository"
	"github.com/cloud-wave-best-zizon/till-service/pkg/money"
	"go.uber.org/zap"
)

var (
	admin   = domain.User{ID: "U1", Name: "Administrateur", PIN: "1234", Role: domain.RoleAdmin}
	cashier = domain.User{ID: "U2", Name: "Caissier 1", PIN: "0000", Role: domain.RoleStaff}
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type mockPublisher struct {
	notifications []domain.Notification
	recorded      []events.TransactionRecordedEvent
	deducted      []events.StockDeductedEvent
	alerts        []events.LowStockAlertEvent
}

func (m *mockPublisher) PublishNotification(n domain.Notification) {
	m.notifications = append(m.notifications, n)
}

func (m *mockPublisher) PublishTransactionRecorded(e events.TransactionRecordedEvent) {
	m.recorded = append(m.recorded, e)
}

func (m *mockPublisher) PublishStockDeducted(e events.StockDeductedEvent) {
	m.deducted = append(m.deducted, e)
}

func (m *mockPublisher) SignalLowStock(e events.LowStockAlertEvent) {
	m.alerts = append(m.alerts, e)
}

func (m *mockPublisher) Reset() {
	*m = mockPublisher{}
}

type fixture struct {
	catalog   *repository.CatalogRepository
	ledger    *repository.LedgerRepository
	publisher *mockPublisher
	clock     *testClock
	till      *TillService
	catalogs  *CatalogService
	reports   *ReportService
}

func setup(t *testing.T) *fixture {
	t.Helper()

	clock := &testClock{t: time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)}
	catalog := repository.NewCatalogRepository(repository.SeedProducts(), repository.SeedServices())
	ledger := repository.NewLedgerRepository(repository.WithClock(clock.Now), repository.WithLocation(time.UTC))
	publisher := &mockPublisher{}
	logger := zap.NewNop()

	catalogs := NewCatalogService(catalog, repository.NewUserRepository(repository.SeedUsers()), publisher, logger)
	catalogs.now = clock.Now

	return &fixture{
		catalog:   catalog,
		ledger:    ledger,
		publisher: publisher,
		clock:     clock,
		till:      NewTillService(catalog, ledger, publisher, money.NewFormatter("FCFA"), logger, WithNow(clock.Now), WithSessionID("test-session")),
		catalogs:  catalogs,
		reports:   NewReportService(catalog, ledger, publisher, logger, clock.Now),
	}
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.catalog.FindProduct(context.Background(), productID)
	if err != nil {
		t.Fatalf("find %s: %v", productID, err)
	}
	return p.Stock
}

// failingLedger refuses every append.
type failingLedger struct {
	Ledger
}

func (failingLedger) Append(context.Context, domain.Transaction) (domain.Transaction, error) {
	return domain.Transaction{}, errors.New("ledger unavailable")
}
