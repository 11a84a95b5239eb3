package stats

import (
	"sort"
	"strconv"
	"time"

	"github.com/tradejournal/internal/models"
)

// MonthlyBucket aggregates trades closed in one calendar month
type MonthlyBucket struct {
	Month      string  `json:"month"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	ProfitLoss float64 `json:"pnl"`
}

// DailyBucket aggregates trades closed on one day of a month
type DailyBucket struct {
	Day        string  `json:"day"`
	TradeCount int     `json:"trades"`
	ProfitLoss float64 `json:"pnl"`
}

// MarketCount is the number of trades taken in one market
type MarketCount struct {
	Market models.MarketType `json:"name"`
	Count  int               `json:"value"`
}

// TypeBreakdown aggregates trades by direction
type TypeBreakdown struct {
	Type       models.TradeType `json:"name"`
	Count      int              `json:"count"`
	ProfitLoss float64          `json:"pnl"`
}

// WeekdayBucket aggregates trades closed on one day of the week
type WeekdayBucket struct {
	Day           string  `json:"day"`
	Count         int     `json:"count"`
	ProfitLoss    float64 `json:"pnl"`
	AvgProfitLoss float64 `json:"avg_pnl"`
}

// EquityPoint is one step of the running account equity
type EquityPoint struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
}

// MonthlyPerformance buckets trades by the calendar month of their
// exit date. Buckets are sorted by the underlying date, so the same
// month label in different years never collapses or misorders.
func MonthlyPerformance(trades []models.Trade) []MonthlyBucket {
	type agg struct {
		wins, losses int
		pnl          float64
	}

	buckets := make(map[time.Time]*agg)
	for _, t := range trades {
		key := time.Date(t.ExitDate.Year(), t.ExitDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		b := buckets[key]
		if b == nil {
			b = &agg{}
			buckets[key] = b
		}
		switch t.Status {
		case models.StatusWin:
			b.wins++
		case models.StatusLoss:
			b.losses++
		}
		b.pnl += t.ProfitLoss
	}

	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]MonthlyBucket, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		out = append(out, MonthlyBucket{
			Month:      k.Format("Jan 2006"),
			Wins:       b.wins,
			Losses:     b.losses,
			ProfitLoss: b.pnl,
		})
	}
	return out
}

// DailyPerformance produces one bucket per calendar day of the month
// containing ref, including days without any trades. A trade belongs
// to a day when its exit date falls on that day, ignoring time of day.
func DailyPerformance(trades []models.Trade, ref time.Time) []DailyBucket {
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	daysInMonth := monthStart.AddDate(0, 1, -1).Day()

	out := make([]DailyBucket, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(ref.Year(), ref.Month(), d, 0, 0, 0, 0, ref.Location())
		bucket := DailyBucket{Day: strconv.Itoa(d)}
		for _, t := range trades {
			if sameDay(t.ExitDate, day) {
				bucket.TradeCount++
				bucket.ProfitLoss += t.ProfitLoss
			}
		}
		out = append(out, bucket)
	}
	return out
}

// MarketDistribution counts trades per market, in first-encounter order.
func MarketDistribution(trades []models.Trade) []MarketCount {
	counts := make(map[models.MarketType]int)
	var order []models.MarketType
	for _, t := range trades {
		if _, seen := counts[t.Market]; !seen {
			order = append(order, t.Market)
		}
		counts[t.Market]++
	}

	out := make([]MarketCount, 0, len(order))
	for _, m := range order {
		out = append(out, MarketCount{Market: m, Count: counts[m]})
	}
	return out
}

// TypeDistribution aggregates count and profit by direction. Both
// directions are always present, Long first, even with zero trades.
func TypeDistribution(trades []models.Trade) []TypeBreakdown {
	out := []TypeBreakdown{
		{Type: models.TradeLong},
		{Type: models.TradeShort},
	}
	for _, t := range trades {
		for i := range out {
			if out[i].Type == t.Type {
				out[i].Count++
				out[i].ProfitLoss += t.ProfitLoss
			}
		}
	}
	return out
}

// DayOfWeekPerformance aggregates trades by the weekday of their exit
// date. All seven weekdays are emitted, Sunday through Saturday.
func DayOfWeekPerformance(trades []models.Trade) []WeekdayBucket {
	out := make([]WeekdayBucket, 7)
	for i := range out {
		out[i].Day = time.Weekday(i).String()
	}
	for _, t := range trades {
		b := &out[int(t.ExitDate.Weekday())]
		b.Count++
		b.ProfitLoss += t.ProfitLoss
	}
	for i := range out {
		if out[i].Count > 0 {
			out[i].AvgProfitLoss = out[i].ProfitLoss / float64(out[i].Count)
		}
	}
	return out
}

// EquityCurve folds trades ordered by exit date into a running balance
// anchored at initialBalance. Every trade yields its own point, so
// several trades on the same day produce several points. Sorting is
// stable: same-day trades keep their input order.
func EquityCurve(trades []models.Trade, initialBalance float64) []EquityPoint {
	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExitDate.Before(sorted[j].ExitDate)
	})

	equity := initialBalance
	out := make([]EquityPoint, 0, len(sorted))
	for _, t := range sorted {
		equity += t.ProfitLoss
		out = append(out, EquityPoint{
			Date:   t.ExitDate.Format("2006-01-02"),
			Equity: equity,
		})
	}
	return out
}

// sameDay reports whether two instants fall on the same calendar day
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
