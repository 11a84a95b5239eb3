package stats

import (
	"time"

	"github.com/tradejournal/internal/models"
)

// CalendarDay is one cell of the month display grid. Days with
// TradeCount zero are not drill-down eligible.
type CalendarDay struct {
	Date           time.Time      `json:"date"`
	Trades         []models.Trade `json:"trades"`
	TradeCount     int            `json:"trade_count"`
	ProfitLoss     float64        `json:"total_profit_loss"`
	IsCurrentMonth bool           `json:"is_current_month"`
}

// CalendarMonth builds the inclusive display grid for the month
// containing ref: from the Sunday of the week holding the first of
// the month through the Saturday of the week holding its last day.
// Leading and trailing cells from adjacent months carry
// IsCurrentMonth false. Trades are matched to cells by the calendar
// day of their exit date, ignoring time of day.
func CalendarMonth(trades []models.Trade, ref time.Time) []CalendarDay {
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, int(time.Saturday-monthEnd.Weekday()))

	var out []CalendarDay
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		cell := CalendarDay{
			Date:           day,
			Trades:         []models.Trade{},
			IsCurrentMonth: day.Month() == monthStart.Month(),
		}
		for _, t := range trades {
			if sameDay(t.ExitDate, day) {
				cell.Trades = append(cell.Trades, t)
				cell.TradeCount++
				cell.ProfitLoss += t.ProfitLoss
			}
		}
		out = append(out, cell)
	}
	return out
}
