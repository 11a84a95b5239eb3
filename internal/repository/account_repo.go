package repository

import (
	"errors"

	"github.com/tradejournal/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

// AccountRepository handles account data access
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *AccountRepository) WithTx(tx *gorm.DB) *AccountRepository {
	return &AccountRepository{db: tx}
}

// Create creates a new account
func (r *AccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// GetByIDAndUserID retrieves an account by ID and user ID
func (r *AccountRepository) GetByIDAndUserID(id, userID string) (*models.Account, error) {
	var account models.Account
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, result.Error
	}
	return &account, nil
}

// GetByUserID retrieves all accounts for a user
func (r *AccountRepository) GetByUserID(userID string) ([]models.Account, error) {
	var accounts []models.Account
	result := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&accounts)
	if result.Error != nil {
		return nil, result.Error
	}
	return accounts, nil
}

// Update updates an account
func (r *AccountRepository) Update(account *models.Account) error {
	return r.db.Save(account).Error
}

// UpdateBalance updates the account balance
func (r *AccountRepository) UpdateBalance(id string, balance float64) error {
	return r.db.Model(&models.Account{}).Where("id = ?", id).Update("balance", balance).Error
}

// ResetBalance sets both the balance and the initial balance,
// re-anchoring the equity curve at the supplied value.
func (r *AccountRepository) ResetBalance(id string, balance float64) error {
	return r.db.Model(&models.Account{}).Where("id = ?", id).
		Updates(map[string]interface{}{"balance": balance, "initial_balance": balance}).Error
}

// Delete soft deletes an account
func (r *AccountRepository) Delete(id string) error {
	return r.db.Delete(&models.Account{}, "id = ?", id).Error
}

// DeleteCascade removes an account together with its trades and
// journal entries in a single transaction.
func (r *AccountRepository) DeleteCascade(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&models.Trade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&models.Journal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, "id = ?", id).Error
	})
}

// CountByUserID counts accounts for a user
func (r *AccountRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Account{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
