package domain

import "time"

type DailyTotals struct {
	CashIn  int64 `json:"cash_in"`
	CashOut int64 `json:"cash_out"`
	Balance int64 `json:"balance"`
}

type DayReport struct {
	DayStart    time.Time `json:"day_start"`
	CashIn      int64     `json:"cash_in"`
	CashOut     int64     `json:"cash_out"`
	HasActivity bool      `json:"has_activity"`
}

type LowStockReport struct {
	Count        int          `json:"count"`
	Items        []Product    `json:"items"`
	Notification Notification `json:"notification"`
}

// WindowSummary condenses a trailing window of day reports.
type WindowSummary struct {
	TotalIn     int64     `json:"total_in"`
	TotalOut    int64     `json:"total_out"`
	Balance     int64     `json:"balance"`
	MeanDailyIn float64   `json:"mean_daily_in"`
	BestDay     time.Time `json:"best_day"`
	BestDayIn   int64     `json:"best_day_in"`
	ActiveDays  int       `json:"active_days"`
}

// StartOfDay normalizes t to local midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
