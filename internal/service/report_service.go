package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"github.com/cloud-wave-best-zizon/till-service/internal/events"
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

const DefaultReportDays = 8

// ReportService derives cash positions and stock alerts. Nothing is cached;
// every call reads the full ledger or catalog.
type ReportService struct {
	catalog   Catalog
	ledger    Ledger
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewReportService(catalog Catalog, ledger Ledger, publisher Publisher, logger *zap.Logger, now func() time.Time) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{
		catalog:   catalog,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
		now:       now,
	}
}

func (s *ReportService) Today() time.Time {
	return domain.StartOfDay(s.now(), s.ledger.Location())
}

// TrailingDays lists n local midnights, today first.
func (s *ReportService) TrailingDays(n int) []time.Time {
	if n < 1 {
		n = DefaultReportDays
	}
	today := s.Today()
	days := make([]time.Time, n)
	for i := range days {
		days[i] = today.AddDate(0, 0, -i)
	}
	return days
}

func (s *ReportService) DailyTotals(ctx context.Context, day time.Time) domain.DailyTotals {
	return totals(s.ledger.ForDay(ctx, day))
}

func (s *ReportService) DayTransactions(ctx context.Context, day time.Time) []domain.Transaction {
	return s.ledger.ForDay(ctx, day)
}

// WindowTotals computes each requested day independently.
func (s *ReportService) WindowTotals(ctx context.Context, days []time.Time) []domain.DayReport {
	loc := s.ledger.Location()
	out := make([]domain.DayReport, 0, len(days))
	for _, day := range days {
		txs := s.ledger.ForDay(ctx, day)
		t := totals(txs)
		out = append(out, domain.DayReport{
			DayStart:    domain.StartOfDay(day, loc),
			CashIn:      t.CashIn,
			CashOut:     t.CashOut,
			HasActivity: len(txs) > 0,
		})
	}
	return out
}

// Summarize reports totals, the mean daily cash-in and the best day of a
// window. Ties go to the earliest report in the slice.
func (s *ReportService) Summarize(reports []domain.DayReport) domain.WindowSummary {
	var summary domain.WindowSummary
	if len(reports) == 0 {
		return summary
	}

	ins := make(stats.Float64Data, 0, len(reports))
	for _, r := range reports {
		summary.TotalIn += r.CashIn
		summary.TotalOut += r.CashOut
		if r.HasActivity {
			summary.ActiveDays++
		}
		ins = append(ins, float64(r.CashIn))
	}
	summary.Balance = summary.TotalIn - summary.TotalOut

	if mean, err := stats.Mean(ins); err == nil {
		summary.MeanDailyIn = mean
	}
	if peak, err := stats.Max(ins); err == nil && peak > 0 {
		for _, r := range reports {
			if float64(r.CashIn) == peak {
				summary.BestDay = r.DayStart
				summary.BestDayIn = r.CashIn
				break
			}
		}
	}
	return summary
}

// LowStockReport lists products at or below the threshold and raises the
// matching signal. The returned notification carries no timestamp.
func (s *ReportService) LowStockReport(ctx context.Context) domain.LowStockReport {
	items := make([]domain.Product, 0)
	for _, p := range s.catalog.ListProducts(ctx) {
		if p.IsLowStock() {
			items = append(items, p)
		}
	}

	report := domain.LowStockReport{Count: len(items), Items: items}
	if report.Count > 0 {
		report.Notification = domain.Notification{
			Message: "ALERTE STOCK",
			Details: fmt.Sprintf("%d produits critiques", report.Count),
			Type:    domain.NotificationWarning,
		}
		ids := make([]string, 0, len(items))
		for _, p := range items {
			ids = append(ids, p.ID)
		}
		s.publisher.SignalLowStock(events.LowStockAlertEvent{ProductIDs: ids, Timestamp: s.now()})
		s.logger.Warn("Low stock detected", zap.Strings("product_ids", ids))
	} else {
		report.Notification = domain.Notification{
			Message: "Stock Sain",
			Details: "Tout est en ordre.",
			Type:    domain.NotificationSuccess,
		}
	}

	// 발행되는 알림에만 시각 기록
	published := report.Notification
	published.Timestamp = s.now()
	s.publisher.PublishNotification(published)
	return report
}

func totals(txs []domain.Transaction) domain.DailyTotals {
	var t domain.DailyTotals
	for _, tx := range txs {
		switch tx.Flow {
		case domain.FlowIn:
			t.CashIn += tx.Amount
		case domain.FlowOut:
			t.CashOut += tx.Amount
		}
	}
	t.Balance = t.CashIn - t.CashOut
	return t
}
