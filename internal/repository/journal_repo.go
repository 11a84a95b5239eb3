package repository

import (
	"errors"

	"github.com/tradejournal/internal/models"
	"gorm.io/gorm"
)

var (
	ErrJournalNotFound = errors.New("journal entry not found")
)

// JournalRepository handles journal entry data access
type JournalRepository struct {
	db *gorm.DB
}

// NewJournalRepository creates a new JournalRepository
func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *JournalRepository) WithTx(tx *gorm.DB) *JournalRepository {
	return &JournalRepository{db: tx}
}

// Create creates a new journal entry
func (r *JournalRepository) Create(journal *models.Journal) error {
	return r.db.Create(journal).Error
}

// Update saves all fields of a journal entry
func (r *JournalRepository) Update(journal *models.Journal) error {
	return r.db.Save(journal).Error
}

// Delete removes a journal entry by ID
func (r *JournalRepository) Delete(id string) error {
	return r.db.Delete(&models.Journal{}, "id = ?", id).Error
}

// DeleteByAccountID removes all journal entries for an account
func (r *JournalRepository) DeleteByAccountID(accountID string) error {
	return r.db.Where("account_id = ?", accountID).Delete(&models.Journal{}).Error
}

// GetByIDAndUserID retrieves a journal entry by ID, scoped to its owner
func (r *JournalRepository) GetByIDAndUserID(id, userID string) (*models.Journal, error) {
	var journal models.Journal
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&journal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrJournalNotFound
		}
		return nil, result.Error
	}
	return &journal, nil
}

// ListByAccount retrieves all journal entries for an account, newest first
func (r *JournalRepository) ListByAccount(accountID string) ([]models.Journal, error) {
	var journals []models.Journal
	result := r.db.Where("account_id = ?", accountID).Order("date DESC").Find(&journals)
	return journals, result.Error
}
