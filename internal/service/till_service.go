package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"github.com/cloud-wave-best-zizon/till-service/internal/events"
	"github.com/cloud-wave-best-zizon/till-service/pkg/money"
	"go.uber.org/zap"
)

type SaleResult struct {
	Transaction  domain.Transaction    `json:"transaction"`
	Deduction    domain.StockDeduction `json:"deduction"`
	LowStock     bool                  `json:"low_stock"`
	Notification domain.Notification   `json:"notification"`
}

type ServiceResult struct {
	Transaction  domain.Transaction  `json:"transaction"`
	Notification domain.Notification `json:"notification"`
}

// TillService records sales and service transactions. Each call completes
// its catalog and ledger writes before returning.
type TillService struct {
	mu        sync.Mutex
	catalog   Catalog
	ledger    Ledger
	publisher Publisher
	money     *money.Formatter
	logger    *zap.Logger
	now       func() time.Time
	sessionID string
}

type TillOption func(*TillService)

func WithNow(now func() time.Time) TillOption {
	return func(s *TillService) { s.now = now }
}

func WithSessionID(id string) TillOption {
	return func(s *TillService) { s.sessionID = id }
}

func NewTillService(catalog Catalog, ledger Ledger, publisher Publisher, formatter *money.Formatter, logger *zap.Logger, opts ...TillOption) *TillService {
	s := &TillService{
		catalog:   catalog,
		ledger:    ledger,
		publisher: publisher,
		money:     formatter,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordSale sells quantity units of a product. On ErrInsufficientStock or
// ErrInvalidQuantity nothing is written.
func (s *TillService) RecordSale(ctx context.Context, actor domain.User, productID string, quantity int) (*SaleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.catalog.FindProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	draft, deduction, err := BuildSale(product, quantity, actor.Name)
	if err != nil {
		s.logger.Warn("Sale rejected",
			zap.String("product_id", productID),
			zap.Int("stock", product.Stock),
			zap.Int("quantity", quantity),
			zap.Error(err))
		return nil, err
	}

	if err := s.catalog.SetStock(ctx, product.ID, deduction.NewStock); err != nil {
		return nil, fmt.Errorf("write back stock: %w", err)
	}
	tx, err := s.ledger.Append(ctx, draft)
	if err != nil {
		// 원장 기록 실패 시 재고 복구
		if rbErr := s.catalog.SetStock(ctx, product.ID, deduction.PreviousStock); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		s.logger.Error("Failed to append sale", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("append sale: %w", err)
	}

	s.logger.Info("Stock deducted successfully",
		zap.String("session_id", s.sessionID),
		zap.String("transaction_id", tx.ID),
		zap.String("product_id", product.ID),
		zap.Int("previous_stock", deduction.PreviousStock),
		zap.Int("deducted", deduction.Deducted),
		zap.Int("new_stock", deduction.NewStock),
		zap.String("performer", actor.Name))

	result := &SaleResult{
		Transaction: tx,
		Deduction:   deduction,
		LowStock:    deduction.NewStock <= domain.LowStockThreshold,
	}

	details := fmt.Sprintf("Reste: %d | %s", deduction.NewStock, s.money.Signed(tx.Amount, true))
	if result.LowStock {
		result.Notification = s.notify(domain.NotificationWarning, "STOCK FAIBLE !", details)
		s.publisher.SignalLowStock(events.LowStockAlertEvent{
			ProductIDs: []string{product.ID},
			Timestamp:  s.now(),
		})
	} else {
		result.Notification = s.notify(domain.NotificationSuccess, "Vente OK", details)
	}

	s.publisher.PublishStockDeducted(events.StockDeductedEvent{
		TransactionID: tx.ID,
		ProductID:     product.ID,
		Quantity:      deduction.Deducted,
		PreviousStock: deduction.PreviousStock,
		NewStock:      deduction.NewStock,
		Timestamp:     tx.Timestamp,
	})
	s.publisher.PublishTransactionRecorded(events.TransactionRecordedEvent{SessionID: s.sessionID, Transaction: tx})

	return result, nil
}

// RecordServiceTransaction records a money transfer, bill payment, office or
// other service. Invalid amounts leave the ledger untouched.
func (s *TillService) RecordServiceTransaction(ctx context.Context, actor domain.User, req domain.ServiceRequest) (*ServiceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lookup := func(name string) (domain.ServiceDefinition, bool) {
		def, err := s.catalog.FindServiceByName(ctx, name)
		return def, err == nil
	}

	draft, err := BuildService(req, lookup, actor.Name)
	if err != nil {
		s.logger.Warn("Service transaction rejected",
			zap.String("kind", string(req.Kind)),
			zap.String("operator", req.Operator),
			zap.String("amount", req.Amount),
			zap.Error(err))
		return nil, err
	}

	tx, err := s.ledger.Append(ctx, draft)
	if err != nil {
		s.logger.Error("Failed to append service transaction", zap.Error(err))
		return nil, fmt.Errorf("append service transaction: %w", err)
	}

	s.logger.Info("Service transaction recorded",
		zap.String("session_id", s.sessionID),
		zap.String("transaction_id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.String("flow", string(tx.Flow)),
		zap.Int64("amount", tx.Amount),
		zap.String("performer", actor.Name))

	details := fmt.Sprintf("%s : %s", tx.Description, s.money.Signed(tx.Amount, tx.Flow == domain.FlowIn))
	result := &ServiceResult{
		Transaction:  tx,
		Notification: s.notify(domain.NotificationSuccess, "Transaction Enregistrée", details),
	}
	s.publisher.PublishTransactionRecorded(events.TransactionRecordedEvent{SessionID: s.sessionID, Transaction: tx})

	return result, nil
}

func (s *TillService) notify(kind domain.NotificationType, message, details string) domain.Notification {
	n := domain.Notification{
		Message:   message,
		Details:   details,
		Type:      kind,
		Timestamp: s.now(),
	}
	s.publisher.PublishNotification(n)
	return n
}
