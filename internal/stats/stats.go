// Package stats implements the dashboard aggregation engine: pure,
// deterministic functions that turn a slice of trade records into
// summary statistics, time-bucketed series, and calendar groupings.
// Functions here never perform I/O and never read the wall clock;
// reference dates are passed in explicitly.
package stats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tradejournal/internal/models"
)

// Summary holds the aggregate statistics for a set of trades.
// BestTrade and WorstTrade are nil when no qualifying trade exists.
type Summary struct {
	TotalTrades       int           `json:"total_trades"`
	WinRate           float64       `json:"win_rate"`
	TotalProfit       float64       `json:"total_profit"`
	TotalLoss         float64       `json:"total_loss"`
	NetProfitLoss     float64       `json:"net_profit_loss"`
	AverageProfit     float64       `json:"average_profit"`
	AverageLoss       float64       `json:"average_loss"`
	ProfitFactor      float64       `json:"profit_factor"`
	BestTrade         *models.Trade `json:"best_trade"`
	WorstTrade        *models.Trade `json:"worst_trade"`
	AverageRiskReward string        `json:"average_risk_reward"`
}

// Compute aggregates a trade list into a Summary. Input order is
// irrelevant except for the best/worst tie-break, where the first
// trade encountered wins an exact tie. Breakeven trades count toward
// TotalTrades and NetProfitLoss but belong to neither the winning nor
// the losing set. Malformed risk:reward strings are skipped rather
// than failing the computation.
func Compute(trades []models.Trade) Summary {
	if len(trades) == 0 {
		return Summary{AverageRiskReward: "0:0"}
	}

	s := Summary{TotalTrades: len(trades)}

	var wins, losses int
	for _, t := range trades {
		s.NetProfitLoss += t.ProfitLoss
		switch t.Status {
		case models.StatusWin:
			wins++
			s.TotalProfit += t.ProfitLoss
		case models.StatusLoss:
			losses++
			s.TotalLoss += t.ProfitLoss
		}
	}
	if s.TotalLoss < 0 {
		s.TotalLoss = -s.TotalLoss
	}

	s.WinRate = float64(wins) / float64(len(trades)) * 100

	if wins > 0 {
		s.AverageProfit = s.TotalProfit / float64(wins)
	}
	if losses > 0 {
		s.AverageLoss = s.TotalLoss / float64(losses)
	}

	if s.TotalLoss == 0 {
		// All profit, no loss: report gross profit instead of infinity.
		if s.TotalProfit > 0 {
			s.ProfitFactor = s.TotalProfit
		}
	} else {
		s.ProfitFactor = s.TotalProfit / s.TotalLoss
	}

	s.BestTrade, s.WorstTrade = selectBestWorst(trades)
	s.AverageRiskReward = averageRiskReward(trades)

	return s
}

// selectBestWorst picks the winning trade with the highest profit and
// the losing trade with the lowest. A single-trade list is a special
// case: the trade is best or worst by the sign of its profit alone,
// and neither when exactly zero.
func selectBestWorst(trades []models.Trade) (best, worst *models.Trade) {
	if len(trades) == 1 {
		t := trades[0]
		if t.ProfitLoss > 0 {
			return &t, nil
		}
		if t.ProfitLoss < 0 {
			return nil, &t
		}
		return nil, nil
	}

	var bestIdx, worstIdx = -1, -1
	for i, t := range trades {
		// Strict comparisons keep the first occurrence on ties.
		if t.Status == models.StatusWin && (bestIdx < 0 || t.ProfitLoss > trades[bestIdx].ProfitLoss) {
			bestIdx = i
		}
		if t.Status == models.StatusLoss && (worstIdx < 0 || t.ProfitLoss < trades[worstIdx].ProfitLoss) {
			worstIdx = i
		}
	}
	if bestIdx >= 0 {
		t := trades[bestIdx]
		best = &t
	}
	if worstIdx >= 0 {
		t := trades[worstIdx]
		worst = &t
	}
	return best, worst
}

// averageRiskReward averages the risk and reward components of every
// trade carrying a parseable "risk:reward" string. Entries where
// either side fails to parse are excluded from both the sums and the
// divisor. No qualifying trades yields "0:0".
func averageRiskReward(trades []models.Trade) string {
	var totalRisk, totalReward float64
	var n int

	for _, t := range trades {
		if !strings.Contains(t.RiskReward, ":") {
			continue
		}
		parts := strings.SplitN(t.RiskReward, ":", 2)
		risk, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		reward, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		totalRisk += risk
		totalReward += reward
		n++
	}

	if n == 0 {
		return "0:0"
	}
	return fmt.Sprintf("%.1f:%.1f", totalRisk/float64(n), totalReward/float64(n))
}
