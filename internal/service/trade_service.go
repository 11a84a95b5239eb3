package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tradejournal/internal/models"
	"github.com/tradejournal/internal/repository"
)

// TradeService handles trade CRUD and keeps the owning account's
// balance consistent with the sum of trade profit/loss. Every
// mutation runs the trade write and the balance adjustment as one
// transactional unit through the store.
type TradeService struct {
	trades    TradeStore
	accounts  AccountStore
	observers []StatsObserver
}

// NewTradeService creates a new TradeService
func NewTradeService(trades TradeStore, accounts AccountStore, observers ...StatsObserver) *TradeService {
	return &TradeService{
		trades:    trades,
		accounts:  accounts,
		observers: observers,
	}
}

// CreateTradeRequest represents the create trade request
type CreateTradeRequest struct {
	Market     models.MarketType  `json:"market" binding:"required,oneof=Forex Stocks Crypto Futures Options Other"`
	Symbol     string             `json:"symbol" binding:"required,max=30"`
	Type       models.TradeType   `json:"type" binding:"required,oneof=Long Short"`
	Status     models.TradeStatus `json:"status" binding:"required,oneof=Win Loss Breakeven"`
	EntryPrice float64            `json:"entry_price" binding:"required"`
	ExitPrice  float64            `json:"exit_price" binding:"required"`
	StopLoss   *float64           `json:"stop_loss"`
	TakeProfit *float64           `json:"take_profit"`
	Size       float64            `json:"size" binding:"required,gt=0"`
	RiskReward string             `json:"risk_reward" binding:"omitempty,max=20"`
	ProfitLoss float64            `json:"profit_loss"`
	EntryDate  time.Time          `json:"entry_date" binding:"required"`
	ExitDate   time.Time          `json:"exit_date" binding:"required"`
	Notes      string             `json:"notes"`
	ImageURL   string             `json:"image_url"`
}

// CreateTrade records a completed trade and adds its profit/loss to
// the account balance.
func (s *TradeService) CreateTrade(userID, accountID string, req *CreateTradeRequest) (*models.Trade, error) {
	account, err := s.accounts.GetByIDAndUserID(accountID, userID)
	if err != nil {
		return nil, err
	}

	trade := &models.Trade{
		UserID:     userID,
		AccountID:  account.ID,
		Market:     req.Market,
		Symbol:     req.Symbol,
		Type:       req.Type,
		Status:     req.Status,
		EntryPrice: req.EntryPrice,
		ExitPrice:  req.ExitPrice,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
		Size:       req.Size,
		RiskReward: req.RiskReward,
		ProfitLoss: req.ProfitLoss,
		EntryDate:  req.EntryDate,
		ExitDate:   req.ExitDate,
		Notes:      req.Notes,
		ImageURL:   req.ImageURL,
	}

	if err := s.trades.CreateWithBalance(trade, trade.ProfitLoss); err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	s.notify(account.ID)
	return trade, nil
}

// UpdateTradeRequest represents a partial trade update. Nil fields are
// left unchanged; in particular a nil ProfitLoss contributes no
// balance delta.
type UpdateTradeRequest struct {
	Market     *models.MarketType  `json:"market" binding:"omitempty,oneof=Forex Stocks Crypto Futures Options Other"`
	Symbol     *string             `json:"symbol" binding:"omitempty,max=30"`
	Type       *models.TradeType   `json:"type" binding:"omitempty,oneof=Long Short"`
	Status     *models.TradeStatus `json:"status" binding:"omitempty,oneof=Win Loss Breakeven"`
	EntryPrice *float64            `json:"entry_price"`
	ExitPrice  *float64            `json:"exit_price"`
	StopLoss   *float64            `json:"stop_loss"`
	TakeProfit *float64            `json:"take_profit"`
	Size       *float64            `json:"size" binding:"omitempty,gt=0"`
	RiskReward *string             `json:"risk_reward" binding:"omitempty,max=20"`
	ProfitLoss *float64            `json:"profit_loss"`
	EntryDate  *time.Time          `json:"entry_date"`
	ExitDate   *time.Time          `json:"exit_date"`
	Notes      *string             `json:"notes"`
	ImageURL   *string             `json:"image_url"`
}

// UpdateTrade applies a partial update and adjusts the account balance
// by the difference between the old and new profit/loss.
func (s *TradeService) UpdateTrade(userID, tradeID string, req *UpdateTradeRequest) (*models.Trade, error) {
	trade, err := s.trades.GetByIDAndUserID(tradeID, userID)
	if err != nil {
		return nil, err
	}

	var balanceDelta float64
	if req.ProfitLoss != nil {
		balanceDelta = *req.ProfitLoss - trade.ProfitLoss
		trade.ProfitLoss = *req.ProfitLoss
	}

	if req.Market != nil {
		trade.Market = *req.Market
	}
	if req.Symbol != nil {
		trade.Symbol = *req.Symbol
	}
	if req.Type != nil {
		trade.Type = *req.Type
	}
	if req.Status != nil {
		trade.Status = *req.Status
	}
	if req.EntryPrice != nil {
		trade.EntryPrice = *req.EntryPrice
	}
	if req.ExitPrice != nil {
		trade.ExitPrice = *req.ExitPrice
	}
	if req.StopLoss != nil {
		trade.StopLoss = req.StopLoss
	}
	if req.TakeProfit != nil {
		trade.TakeProfit = req.TakeProfit
	}
	if req.Size != nil {
		trade.Size = *req.Size
	}
	if req.RiskReward != nil {
		trade.RiskReward = *req.RiskReward
	}
	if req.EntryDate != nil {
		trade.EntryDate = *req.EntryDate
	}
	if req.ExitDate != nil {
		trade.ExitDate = *req.ExitDate
	}
	if req.Notes != nil {
		trade.Notes = *req.Notes
	}
	if req.ImageURL != nil {
		trade.ImageURL = *req.ImageURL
	}

	if err := s.trades.UpdateWithBalance(trade, balanceDelta); err != nil {
		return nil, fmt.Errorf("failed to update trade: %w", err)
	}

	s.notify(trade.AccountID)
	return trade, nil
}

// DeleteTrade removes a trade and subtracts its profit/loss back out
// of the account balance.
func (s *TradeService) DeleteTrade(userID, tradeID string) error {
	trade, err := s.trades.GetByIDAndUserID(tradeID, userID)
	if err != nil {
		return err
	}

	if err := s.trades.DeleteWithBalance(trade, -trade.ProfitLoss); err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	s.notify(trade.AccountID)
	return nil
}

// GetTrade retrieves a single trade scoped to its owner
func (s *TradeService) GetTrade(userID, tradeID string) (*models.Trade, error) {
	return s.trades.GetByIDAndUserID(tradeID, userID)
}

// ListTrades retrieves trades for an account, optionally filtered
func (s *TradeService) ListTrades(userID, accountID string, filter repository.TradeFilter) ([]models.Trade, error) {
	account, err := s.accounts.GetByIDAndUserID(accountID, userID)
	if err != nil {
		return nil, err
	}
	return s.trades.ListByAccountFiltered(account.ID, filter)
}

// ExportCSV writes the filtered trades of an account as CSV
func (s *TradeService) ExportCSV(w io.Writer, userID, accountID string, filter repository.TradeFilter) error {
	trades, err := s.ListTrades(userID, accountID, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{
		"Symbol", "Market", "Type", "Entry Price", "Exit Price",
		"Stop Loss", "Take Profit", "Size", "Risk/Reward",
		"Profit/Loss", "Status", "Entry Date", "Exit Date", "Notes",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, t := range trades {
		record := []string{
			t.Symbol,
			string(t.Market),
			string(t.Type),
			formatFloat(t.EntryPrice),
			formatFloat(t.ExitPrice),
			formatOptFloat(t.StopLoss),
			formatOptFloat(t.TakeProfit),
			formatFloat(t.Size),
			t.RiskReward,
			strconv.FormatFloat(t.ProfitLoss, 'f', 2, 64),
			string(t.Status),
			t.EntryDate.Format("Jan 2, 2006 15:04"),
			t.ExitDate.Format("Jan 2, 2006 15:04"),
			t.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func (s *TradeService) notify(accountID string) {
	for _, o := range s.observers {
		o.StatsChanged(accountID)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
