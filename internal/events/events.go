package events

import (
	"time"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
)

const (
	TopicNotification        = "till:notification"
	TopicTransactionRecorded = "till:transaction-recorded"
	TopicStockDeducted       = "till:stock-deducted"
	TopicLowStockAlert       = "till:low-stock-alert"
)

// TransactionRecordedEvent is published after a ledger append.
type TransactionRecordedEvent struct {
	SessionID   string             `json:"session_id"`
	Transaction domain.Transaction `json:"transaction"`
}

// 재고 차감 완료 이벤트
type StockDeductedEvent struct {
	TransactionID string    `json:"transaction_id"`
	ProductID     string    `json:"product_id"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Timestamp     time.Time `json:"timestamp"`
}

// LowStockAlertEvent asks the alert collaborator for an audible cue.
type LowStockAlertEvent struct {
	ProductIDs []string  `json:"product_ids"`
	Timestamp  time.Time `json:"timestamp"`
}
