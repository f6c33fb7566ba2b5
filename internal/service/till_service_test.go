package service

import (
	"context"
	"math"
	"testing"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"github.com/cloud-wave-best-zizon/till-service/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecordSale(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	t.Run("sale above threshold", func(t *testing.T) {
		f.publisher.Reset()

		result, err := f.till.RecordSale(ctx, cashier, "P001", 3)
		require.NoError(t, err)

		assert.Equal(t, 9, result.Deduction.NewStock)
		assert.Equal(t, 9, f.stock(t, "P001"))
		assert.Equal(t, int64(10500), result.Transaction.Amount)
		assert.Equal(t, domain.FlowIn, result.Transaction.Flow)
		assert.Equal(t, "Caissier 1", result.Transaction.PerformerName)
		assert.Regexp(t, `^TX-\d{6}$`, result.Transaction.ID)
		assert.Equal(t, f.clock.t, result.Transaction.Timestamp)

		assert.False(t, result.LowStock)
		assert.Equal(t, domain.NotificationSuccess, result.Notification.Type)
		assert.Equal(t, "Vente OK", result.Notification.Message)
		assert.Contains(t, result.Notification.Details, "Reste: 9 | +")
		assert.Empty(t, f.publisher.alerts)
		require.Len(t, f.publisher.deducted, 1)
		require.Len(t, f.publisher.recorded, 1)
		assert.Equal(t, "test-session", f.publisher.recorded[0].SessionID)
	})

	t.Run("sale reaching low stock warns", func(t *testing.T) {
		f.publisher.Reset()
		require.NoError(t, f.catalog.SetStock(ctx, "P001", 6))

		result, err := f.till.RecordSale(ctx, cashier, "P001", 3)
		require.NoError(t, err)

		assert.Equal(t, 3, f.stock(t, "P001"))
		assert.True(t, result.LowStock)
		assert.Equal(t, domain.NotificationWarning, result.Notification.Type)
		assert.Equal(t, "STOCK FAIBLE !", result.Notification.Message)
		require.Len(t, f.publisher.alerts, 1)
		assert.Equal(t, []string{"P001"}, f.publisher.alerts[0].ProductIDs)
	})

	t.Run("insufficient stock changes nothing", func(t *testing.T) {
		f.publisher.Reset()
		require.NoError(t, f.catalog.SetStock(ctx, "P001", 2))
		before := f.ledger.Len()

		_, err := f.till.RecordSale(ctx, cashier, "P001", 5)

		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 2, stockErr.Available)
		assert.Equal(t, 2, f.stock(t, "P001"))
		assert.Equal(t, before, f.ledger.Len())
		assert.Empty(t, f.publisher.notifications)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := f.till.RecordSale(ctx, cashier, "P404", 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("quantity below one is rejected", func(t *testing.T) {
		before := f.ledger.Len()
		_, err := f.till.RecordSale(ctx, cashier, "P002", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Equal(t, before, f.ledger.Len())
		assert.Equal(t, 25, f.stock(t, "P002"))
	})
}

func TestRecordSaleIsAtomic(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	for i := 0; i < 30; i++ {
		productID := []string{"P001", "P002", "P005"}[i%3]
		before := f.stock(t, productID)
		size := f.ledger.Len()

		result, err := f.till.RecordSale(ctx, cashier, productID, 2)
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			assert.Equal(t, before, f.stock(t, productID))
			assert.Equal(t, size, f.ledger.Len())
			continue
		}

		p, _ := f.catalog.FindProduct(ctx, productID)
		assert.Equal(t, before-2, p.Stock)
		assert.Equal(t, size+1, f.ledger.Len())
		assert.Equal(t, p.Price*2, result.Transaction.Amount)
		assert.GreaterOrEqual(t, p.Stock, 0)
	}
}

func TestRecordSaleRestoresStockWhenLedgerFails(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	till := NewTillService(f.catalog, failingLedger{Ledger: f.ledger}, f.publisher, money.NewFormatter(""), zap.NewNop())

	_, err := till.RecordSale(ctx, cashier, "P001", 3)

	require.Error(t, err)
	assert.Equal(t, 12, f.stock(t, "P001"))
	assert.Empty(t, f.publisher.notifications)
}

func TestRecordSaleKeepsHistoryAfterCatalogEdits(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	sale, err := f.till.RecordSale(ctx, cashier, "P002", 1)
	require.NoError(t, err)

	_, err = f.catalogs.UpdateProduct(ctx, admin, domain.Product{ID: "P002", Name: "Câble renommé", Price: 9999, Stock: 1})
	require.NoError(t, err)
	_, err = f.catalogs.RemoveProduct(ctx, admin, "P002")
	require.NoError(t, err)

	got := f.ledger.All(ctx)[0]
	assert.Equal(t, sale.Transaction, got)
	assert.Equal(t, "Câble USB Type-C x1", got.Description)
	assert.Equal(t, int64(1500), got.Amount)
}

func TestRecordServiceTransaction(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	t.Run("money deposit", func(t *testing.T) {
		result, err := f.till.RecordServiceTransaction(ctx, cashier, domain.ServiceRequest{
			Kind: domain.ServiceMoney, Operator: "Wave", Flow: domain.FlowIn, Amount: "10000",
		})
		require.NoError(t, err)

		tx := result.Transaction
		assert.Equal(t, domain.TransactionMoneyTransfer, tx.Type)
		assert.Equal(t, domain.FlowIn, tx.Flow)
		assert.Equal(t, int64(10000), tx.Amount)
		assert.Equal(t, "Wave - Dépôt", tx.Description)
		assert.Equal(t, "Transaction Enregistrée", result.Notification.Message)
		assert.Contains(t, result.Notification.Details, "Wave - Dépôt : +")
	})

	t.Run("withdrawal is signed negative", func(t *testing.T) {
		result, err := f.till.RecordServiceTransaction(ctx, cashier, domain.ServiceRequest{
			Kind: domain.ServiceMoney, Operator: "Wave", Flow: domain.FlowOut, Amount: "5000",
		})
		require.NoError(t, err)
		assert.Contains(t, result.Notification.Details, "Wave - Retrait : -")
	})

	t.Run("office service uses the current price list", func(t *testing.T) {
		result, err := f.till.RecordServiceTransaction(ctx, cashier, domain.ServiceRequest{
			Kind: domain.ServiceOffice, Operator: "Photocopie N&B", Quantity: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(200), result.Transaction.Amount)
		assert.Equal(t, "Photocopie N&B x4", result.Transaction.Description)

		_, err = f.catalogs.SetServices(ctx, admin, []domain.ServiceDefinition{{ID: "S1", Name: "Photocopie N&B", Price: 75}})
		require.NoError(t, err)

		again, err := f.till.RecordServiceTransaction(ctx, cashier, domain.ServiceRequest{
			Kind: domain.ServiceOffice, Operator: "Photocopie N&B", Quantity: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(300), again.Transaction.Amount)

		var found bool
		for _, tx := range f.ledger.All(ctx) {
			if tx.ID == result.Transaction.ID {
				found = true
				assert.Equal(t, int64(200), tx.Amount)
			}
		}
		assert.True(t, found)
	})

	t.Run("invalid amount appends nothing", func(t *testing.T) {
		before := f.ledger.Len()
		for _, amount := range []string{"", "0", "-10", "dix"} {
			_, err := f.till.RecordServiceTransaction(ctx, cashier, domain.ServiceRequest{
				Kind: domain.ServiceBills, Operator: "Woyofal", Amount: amount,
			})
			assert.ErrorIs(t, err, domain.ErrInvalidAmount, amount)
		}
		assert.Equal(t, before, f.ledger.Len())
	})
}

func TestLedgerOnlyGrows(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	var seen []domain.Transaction
	check := func() {
		all := f.ledger.All(ctx)
		require.GreaterOrEqual(t, len(all), len(seen))
		if len(seen) > 0 {
			// existing entries keep their relative order at the tail
			assert.Equal(t, seen, all[len(all)-len(seen):])
		}
		seen = all
	}

	_, _ = f.till.RecordSale(ctx, cashier, "P003", 1)
	check()
	_, _ = f.till.RecordSale(ctx, cashier, "P003", 50)
	check()
	_, _ = f.till.RecordServiceTransaction(ctx, cashier, domain.ServiceRequest{Kind: domain.ServiceOther, Amount: "0"})
	check()
	_, _ = f.till.RecordServiceTransaction(ctx, cashier, domain.ServiceRequest{Kind: domain.ServiceOther, Amount: "100"})
	check()
	_, _ = f.catalogs.RemoveProduct(ctx, admin, "P003")
	check()

	assert.Len(t, seen, 2)
}

func TestRecordSaleRejectsOverflowingAmount(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.catalogs.AddProduct(ctx, admin, domain.Product{ID: "P900", Name: "Lingot", Price: math.MaxInt64/2 + 1, Stock: 10})
	require.NoError(t, err)
	f.publisher.Reset()

	_, err = f.till.RecordSale(ctx, cashier, "P900", 2)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, 10, f.stock(t, "P900"))
	assert.Zero(t, f.ledger.Len())
	assert.Empty(t, f.publisher.recorded)
}
