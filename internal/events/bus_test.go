package events

import (
	"testing"
	"time"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBusDeliversSynchronously(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var notes []domain.Notification
	var alerts []LowStockAlertEvent
	var recorded []TransactionRecordedEvent
	var deducted []StockDeductedEvent
	require.NoError(t, bus.OnNotification(func(n domain.Notification) { notes = append(notes, n) }))
	require.NoError(t, bus.OnLowStock(func(e LowStockAlertEvent) { alerts = append(alerts, e) }))
	require.NoError(t, bus.OnTransactionRecorded(func(e TransactionRecordedEvent) { recorded = append(recorded, e) }))
	require.NoError(t, bus.OnStockDeducted(func(e StockDeductedEvent) { deducted = append(deducted, e) }))

	bus.PublishNotification(domain.Notification{Message: "Vente OK", Type: domain.NotificationSuccess})
	bus.SignalLowStock(LowStockAlertEvent{ProductIDs: []string{"P003"}, Timestamp: time.Now()})
	bus.PublishTransactionRecorded(TransactionRecordedEvent{SessionID: "s1", Transaction: domain.Transaction{ID: "TX-000001"}})
	bus.PublishStockDeducted(StockDeductedEvent{ProductID: "P001", NewStock: 9})

	require.Len(t, notes, 1)
	assert.Equal(t, "Vente OK", notes[0].Message)
	require.Len(t, alerts, 1)
	assert.Equal(t, []string{"P003"}, alerts[0].ProductIDs)
	require.Len(t, recorded, 1)
	assert.Equal(t, "TX-000001", recorded[0].Transaction.ID)
	require.Len(t, deducted, 1)
	assert.Equal(t, 9, deducted[0].NewStock)
}

func TestBusWithoutSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop())

	assert.NotPanics(t, func() {
		bus.PublishNotification(domain.Notification{Message: "Stock Sain"})
		bus.SignalLowStock(LowStockAlertEvent{})
	})
}
