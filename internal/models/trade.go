package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MarketType represents the market a trade was taken in
type MarketType string

const (
	MarketForex   MarketType = "Forex"
	MarketStocks  MarketType = "Stocks"
	MarketCrypto  MarketType = "Crypto"
	MarketFutures MarketType = "Futures"
	MarketOptions MarketType = "Options"
	MarketOther   MarketType = "Other"
)

// TradeType represents the direction of a trade
type TradeType string

const (
	TradeLong  TradeType = "Long"
	TradeShort TradeType = "Short"
)

// TradeStatus represents the outcome of a trade as entered by the user.
// It is expected to agree with the sign of ProfitLoss but is not enforced.
type TradeStatus string

const (
	StatusWin       TradeStatus = "Win"
	StatusLoss      TradeStatus = "Loss"
	StatusBreakeven TradeStatus = "Breakeven"
)

// Trade represents a single completed position record
type Trade struct {
	ID         string      `gorm:"primaryKey;size:36" json:"id"`
	UserID     string      `gorm:"index;size:36;not null" json:"user_id"`
	AccountID  string      `gorm:"index;size:36;not null" json:"account_id"`
	Market     MarketType  `gorm:"size:20;not null" json:"market"`
	Symbol     string      `gorm:"size:30;not null;index" json:"symbol"`
	Type       TradeType   `gorm:"size:10;not null" json:"type"`
	Status     TradeStatus `gorm:"size:12;not null" json:"status"`
	EntryPrice float64     `gorm:"type:decimal(20,8);not null" json:"entry_price"`
	ExitPrice  float64     `gorm:"type:decimal(20,8);not null" json:"exit_price"`
	StopLoss   *float64    `gorm:"type:decimal(20,8)" json:"stop_loss,omitempty"`
	TakeProfit *float64    `gorm:"type:decimal(20,8)" json:"take_profit,omitempty"`
	Size       float64     `gorm:"type:decimal(20,8);not null" json:"size"`
	RiskReward string      `gorm:"size:20" json:"risk_reward,omitempty"`
	ProfitLoss float64     `gorm:"type:decimal(20,2);not null" json:"profit_loss"`
	EntryDate  time.Time   `gorm:"not null" json:"entry_date"`
	ExitDate   time.Time   `gorm:"index;not null" json:"exit_date"`
	Notes      string      `gorm:"type:text" json:"notes,omitempty"`
	ImageURL   string      `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	// Relations
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// TableName specifies the table name for Trade model
func (Trade) TableName() string {
	return "trades"
}

// BeforeCreate assigns a UUID primary key
func (t *Trade) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
