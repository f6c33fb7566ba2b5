package events

import (
	"go.uber.org/zap"
)

// RegisterAudit logs every recorded transaction and stock movement as a
// structured audit line.
func RegisterAudit(b *Bus, logger *zap.Logger) error {
	audit := logger.Named("audit")

	if err := b.OnTransactionRecorded(func(e TransactionRecordedEvent) {
		tx := e.Transaction
		audit.Info("Transaction recorded",
			zap.String("session_id", e.SessionID),
			zap.String("transaction_id", tx.ID),
			zap.String("type", string(tx.Type)),
			zap.String("flow", string(tx.Flow)),
			zap.Int64("amount", tx.Amount),
			zap.String("description", tx.Description),
			zap.String("performer", tx.PerformerName),
			zap.Time("timestamp", tx.Timestamp))
	}); err != nil {
		return err
	}

	return b.OnStockDeducted(func(e StockDeductedEvent) {
		audit.Info("Stock movement",
			zap.String("transaction_id", e.TransactionID),
			zap.String("product_id", e.ProductID),
			zap.Int("quantity", e.Quantity),
			zap.Int("previous_stock", e.PreviousStock),
			zap.Int("new_stock", e.NewStock))
	})
}
