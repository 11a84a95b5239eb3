package repository

import (
	"errors"
	"time"

	"github.com/tradejournal/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTradeNotFound = errors.New("trade not found")
)

// TradeFilter narrows trade listings. Zero values mean "no filter".
type TradeFilter struct {
	Market models.MarketType
	Type   models.TradeType
	Status models.TradeStatus
	Symbol string
	From   *time.Time
	To     *time.Time
}

// TradeRepository handles trade data access
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *TradeRepository) WithTx(tx *gorm.DB) *TradeRepository {
	return &TradeRepository{db: tx}
}

// Create creates a new trade
func (r *TradeRepository) Create(trade *models.Trade) error {
	return r.db.Create(trade).Error
}

// Update saves all fields of a trade
func (r *TradeRepository) Update(trade *models.Trade) error {
	return r.db.Save(trade).Error
}

// Delete removes a trade by ID
func (r *TradeRepository) Delete(id string) error {
	return r.db.Delete(&models.Trade{}, "id = ?", id).Error
}

// DeleteByAccountID removes all trades for an account
func (r *TradeRepository) DeleteByAccountID(accountID string) error {
	return r.db.Where("account_id = ?", accountID).Delete(&models.Trade{}).Error
}

// GetByIDAndUserID retrieves a trade by ID, scoped to its owner
func (r *TradeRepository) GetByIDAndUserID(id, userID string) (*models.Trade, error) {
	var trade models.Trade
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&trade)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTradeNotFound
		}
		return nil, result.Error
	}
	return &trade, nil
}

// ListByAccount retrieves all trades for an account, newest exit first
func (r *TradeRepository) ListByAccount(accountID string) ([]models.Trade, error) {
	var trades []models.Trade
	result := r.db.Where("account_id = ?", accountID).Order("exit_date DESC").Find(&trades)
	return trades, result.Error
}

// ListByAccountFiltered retrieves trades for an account matching the filter
func (r *TradeRepository) ListByAccountFiltered(accountID string, f TradeFilter) ([]models.Trade, error) {
	q := r.db.Where("account_id = ?", accountID)

	if f.Market != "" {
		q = q.Where("market = ?", f.Market)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Symbol != "" {
		q = q.Where("symbol ILIKE ?", "%"+f.Symbol+"%")
	}
	if f.From != nil {
		q = q.Where("exit_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("exit_date <= ?", *f.To)
	}

	var trades []models.Trade
	result := q.Order("exit_date DESC").Find(&trades)
	return trades, result.Error
}

// CreateWithBalance creates a trade and applies the paired account
// balance adjustment in a single transaction.
func (r *TradeRepository) CreateWithBalance(trade *models.Trade, balanceDelta float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trade).Error; err != nil {
			return err
		}
		return applyBalanceDelta(tx, trade.AccountID, balanceDelta)
	})
}

// UpdateWithBalance saves a trade and applies the balance delta between
// its old and new profit/loss in a single transaction.
func (r *TradeRepository) UpdateWithBalance(trade *models.Trade, balanceDelta float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(trade).Error; err != nil {
			return err
		}
		return applyBalanceDelta(tx, trade.AccountID, balanceDelta)
	})
}

// DeleteWithBalance removes a trade and backs its profit/loss out of
// the account balance in a single transaction.
func (r *TradeRepository) DeleteWithBalance(trade *models.Trade, balanceDelta float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Trade{}, "id = ?", trade.ID).Error; err != nil {
			return err
		}
		return applyBalanceDelta(tx, trade.AccountID, balanceDelta)
	})
}

// applyBalanceDelta adjusts the account balance in place. The relative
// update avoids a read-modify-write race between concurrent sessions.
func applyBalanceDelta(tx *gorm.DB, accountID string, delta float64) error {
	if delta == 0 {
		return nil
	}
	return tx.Model(&models.Account{}).Where("id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", delta)).Error
}

// CountByAccount counts trades for an account
func (r *TradeRepository) CountByAccount(accountID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Trade{}).Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}
