package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountType represents the kind of trading account being tracked
type AccountType string

const (
	AccountDemo     AccountType = "Demo"
	AccountLive     AccountType = "Live"
	AccountPropFirm AccountType = "Prop Firm"
	AccountOther    AccountType = "Other"
)

// Account represents an isolated ledger a user tracks independently.
// Balance is maintained alongside trade mutations so that
// balance == initial_balance + sum(profit_loss) of its trades.
type Account struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	UserID         string         `gorm:"index;size:36;not null" json:"user_id"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Type           AccountType    `gorm:"size:20;not null;default:'Demo'" json:"type"`
	Balance        float64        `gorm:"type:decimal(20,2);default:0" json:"balance"`
	InitialBalance float64        `gorm:"type:decimal(20,2);default:0" json:"initial_balance"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Trades   []Trade   `gorm:"foreignKey:AccountID" json:"trades,omitempty"`
	Journals []Journal `gorm:"foreignKey:AccountID" json:"journals,omitempty"`
}

// TableName specifies the table name for Account model
func (Account) TableName() string {
	return "accounts"
}

// BeforeCreate assigns a UUID primary key
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
