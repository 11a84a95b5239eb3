package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradejournal/internal/models"
)

func tr(id string, status models.TradeStatus, pl float64) models.Trade {
	return models.Trade{
		ID:         id,
		Market:     models.MarketForex,
		Symbol:     "EURUSD",
		Type:       models.TradeLong,
		Status:     status,
		ProfitLoss: pl,
		ExitDate:   time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC),
	}
}

func trRR(id string, status models.TradeStatus, pl float64, rr string) models.Trade {
	t := tr(id, status, pl)
	t.RiskReward = rr
	return t
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)

	assert.Equal(t, 0, s.TotalTrades)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.TotalProfit)
	assert.Zero(t, s.TotalLoss)
	assert.Zero(t, s.NetProfitLoss)
	assert.Zero(t, s.AverageProfit)
	assert.Zero(t, s.AverageLoss)
	assert.Zero(t, s.ProfitFactor)
	assert.Nil(t, s.BestTrade)
	assert.Nil(t, s.WorstTrade)
	assert.Equal(t, "0:0", s.AverageRiskReward)
}

func TestComputeBasic(t *testing.T) {
	trades := []models.Trade{
		tr("a", models.StatusWin, 100),
		tr("b", models.StatusWin, 50),
		tr("c", models.StatusLoss, -30),
	}

	s := Compute(trades)

	assert.Equal(t, 3, s.TotalTrades)
	assert.InDelta(t, 66.67, s.WinRate, 0.01)
	assert.Equal(t, 150.0, s.TotalProfit)
	assert.Equal(t, 30.0, s.TotalLoss)
	assert.Equal(t, 120.0, s.NetProfitLoss)
	assert.Equal(t, 75.0, s.AverageProfit)
	assert.Equal(t, 30.0, s.AverageLoss)
	assert.Equal(t, 5.0, s.ProfitFactor)

	require.NotNil(t, s.BestTrade)
	assert.Equal(t, "a", s.BestTrade.ID)
	require.NotNil(t, s.WorstTrade)
	assert.Equal(t, "c", s.WorstTrade.ID)
}

func TestComputeSingleTrade(t *testing.T) {
	s := Compute([]models.Trade{tr("only", models.StatusWin, 150)})

	require.NotNil(t, s.BestTrade)
	assert.Equal(t, "only", s.BestTrade.ID)
	assert.Nil(t, s.WorstTrade)

	s = Compute([]models.Trade{tr("only", models.StatusLoss, -40)})
	assert.Nil(t, s.BestTrade)
	require.NotNil(t, s.WorstTrade)
	assert.Equal(t, "only", s.WorstTrade.ID)
}

func TestComputeSingleBreakevenTrade(t *testing.T) {
	s := Compute([]models.Trade{tr("flat", models.StatusBreakeven, 0)})

	assert.Equal(t, 1, s.TotalTrades)
	assert.Nil(t, s.BestTrade)
	assert.Nil(t, s.WorstTrade)
	assert.Zero(t, s.WinRate)
}

func TestComputeBreakevenCountedInTotals(t *testing.T) {
	trades := []models.Trade{
		tr("w", models.StatusWin, 80),
		tr("l", models.StatusLoss, -20),
		tr("be", models.StatusBreakeven, 5),
	}

	s := Compute(trades)

	assert.Equal(t, 3, s.TotalTrades)
	// Breakeven is outside both sets but inside the net.
	assert.Equal(t, 80.0, s.TotalProfit)
	assert.Equal(t, 20.0, s.TotalLoss)
	assert.Equal(t, 65.0, s.NetProfitLoss)
	assert.InDelta(t, s.TotalProfit-s.TotalLoss+5, s.NetProfitLoss, 1e-9)
	assert.InDelta(t, 33.33, s.WinRate, 0.01)
}

func TestComputeProfitFactorNoLosses(t *testing.T) {
	s := Compute([]models.Trade{
		tr("a", models.StatusWin, 60),
		tr("b", models.StatusWin, 40),
	})
	// No losses: report gross profit, not infinity.
	assert.Equal(t, 100.0, s.ProfitFactor)

	s = Compute([]models.Trade{
		tr("a", models.StatusBreakeven, 0),
		tr("b", models.StatusBreakeven, 0),
	})
	assert.Zero(t, s.ProfitFactor)
}

func TestComputeBestWorstTieFirstWins(t *testing.T) {
	trades := []models.Trade{
		tr("first", models.StatusWin, 100),
		tr("second", models.StatusWin, 100),
		tr("l1", models.StatusLoss, -50),
		tr("l2", models.StatusLoss, -50),
	}

	s := Compute(trades)

	require.NotNil(t, s.BestTrade)
	assert.Equal(t, "first", s.BestTrade.ID)
	require.NotNil(t, s.WorstTrade)
	assert.Equal(t, "l1", s.WorstTrade.ID)
}

func TestComputeNoWinnersNoBestTrade(t *testing.T) {
	s := Compute([]models.Trade{
		tr("l1", models.StatusLoss, -10),
		tr("l2", models.StatusLoss, -25),
	})

	assert.Nil(t, s.BestTrade)
	require.NotNil(t, s.WorstTrade)
	assert.Equal(t, "l2", s.WorstTrade.ID)
	assert.Zero(t, s.WinRate)
}

func TestComputeInconsistentLossStillAbsolute(t *testing.T) {
	// Operator-entered status may disagree with the sign of the value;
	// total loss is the absolute value of the losing sum regardless.
	s := Compute([]models.Trade{
		tr("w", models.StatusWin, 10),
		tr("l", models.StatusLoss, 30),
	})
	assert.Equal(t, 30.0, s.TotalLoss)
}

func TestAverageRiskReward(t *testing.T) {
	tests := []struct {
		name   string
		trades []models.Trade
		want   string
	}{
		{
			name: "valid entries averaged",
			trades: []models.Trade{
				trRR("a", models.StatusWin, 10, "1:2"),
				trRR("b", models.StatusWin, 10, "2:4"),
				trRR("c", models.StatusLoss, -10, "bad"),
			},
			want: "1.5:3.0",
		},
		{
			name: "malformed side excluded entirely",
			trades: []models.Trade{
				trRR("a", models.StatusWin, 10, "1:2"),
				trRR("b", models.StatusWin, 10, "1:x"),
			},
			want: "1.0:2.0",
		},
		{
			name: "no participating trades",
			trades: []models.Trade{
				tr("a", models.StatusWin, 10),
				trRR("b", models.StatusLoss, -10, "nocolon"),
			},
			want: "0:0",
		},
		{
			name: "fractional sides",
			trades: []models.Trade{
				trRR("a", models.StatusWin, 10, "0.5:1.5"),
				trRR("b", models.StatusWin, 10, "1.5:2.5"),
			},
			want: "1.0:2.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compute(tt.trades)
			assert.Equal(t, tt.want, s.AverageRiskReward)
		})
	}
}

func TestComputeWinRateBounds(t *testing.T) {
	lists := [][]models.Trade{
		{tr("a", models.StatusWin, 1)},
		{tr("a", models.StatusLoss, -1)},
		{tr("a", models.StatusWin, 1), tr("b", models.StatusLoss, -1), tr("c", models.StatusBreakeven, 0)},
		{tr("a", models.StatusBreakeven, 0)},
	}

	for _, trades := range lists {
		s := Compute(trades)
		assert.GreaterOrEqual(t, s.WinRate, 0.0)
		assert.LessOrEqual(t, s.WinRate, 100.0)
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	trades := []models.Trade{
		tr("b", models.StatusWin, 50),
		tr("a", models.StatusWin, 100),
	}

	s := Compute(trades)

	require.NotNil(t, s.BestTrade)
	assert.Equal(t, "a", s.BestTrade.ID)
	// Input order untouched.
	assert.Equal(t, "b", trades[0].ID)
	assert.Equal(t, "a", trades[1].ID)
}
