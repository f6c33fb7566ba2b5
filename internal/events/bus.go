package events

import (
	"github.com/asaskevich/EventBus"
	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"go.uber.org/zap"
)

// Bus fans till events out to in-process subscribers. Publishing is
// synchronous, so subscribers run before the publishing call returns.
type Bus struct {
	bus    EventBus.Bus
	logger *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		bus:    EventBus.New(),
		logger: logger,
	}
}

func (b *Bus) PublishNotification(n domain.Notification) {
	b.logger.Debug("Notification published",
		zap.String("type", string(n.Type)),
		zap.String("message", n.Message))
	b.bus.Publish(TopicNotification, n)
}

func (b *Bus) PublishTransactionRecorded(event TransactionRecordedEvent) {
	b.logger.Debug("Transaction event published",
		zap.String("transaction_id", event.Transaction.ID),
		zap.String("session_id", event.SessionID))
	b.bus.Publish(TopicTransactionRecorded, event)
}

func (b *Bus) PublishStockDeducted(event StockDeductedEvent) {
	b.bus.Publish(TopicStockDeducted, event)
}

func (b *Bus) SignalLowStock(event LowStockAlertEvent) {
	b.logger.Debug("Low stock alert", zap.Strings("product_ids", event.ProductIDs))
	b.bus.Publish(TopicLowStockAlert, event)
}

func (b *Bus) OnNotification(fn func(domain.Notification)) error {
	return b.bus.Subscribe(TopicNotification, fn)
}

func (b *Bus) OnTransactionRecorded(fn func(TransactionRecordedEvent)) error {
	return b.bus.Subscribe(TopicTransactionRecorded, fn)
}

func (b *Bus) OnStockDeducted(fn func(StockDeductedEvent)) error {
	return b.bus.Subscribe(TopicStockDeducted, fn)
}

func (b *Bus) OnLowStock(fn func(LowStockAlertEvent)) error {
	return b.bus.Subscribe(TopicLowStockAlert, fn)
}
