package service

import (
	"time"

	"github.com/tradejournal/internal/models"
)

// JournalService handles journal entry operations
type JournalService struct {
	journals JournalStore
	accounts AccountStore
}

// NewJournalService creates a new JournalService
func NewJournalService(journals JournalStore, accounts AccountStore) *JournalService {
	return &JournalService{
		journals: journals,
		accounts: accounts,
	}
}

// CreateJournalRequest represents the create journal request
type CreateJournalRequest struct {
	Title   string    `json:"title" binding:"required,max=200"`
	Content string    `json:"content"`
	Date    time.Time `json:"date" binding:"required"`
}

// CreateJournal records a journal entry against an account
func (s *JournalService) CreateJournal(userID, accountID string, req *CreateJournalRequest) (*models.Journal, error) {
	account, err := s.accounts.GetByIDAndUserID(accountID, userID)
	if err != nil {
		return nil, err
	}

	journal := &models.Journal{
		UserID:    userID,
		AccountID: account.ID,
		Title:     req.Title,
		Content:   req.Content,
		Date:      req.Date,
	}

	if err := s.journals.Create(journal); err != nil {
		return nil, err
	}

	return journal, nil
}

// UpdateJournalRequest represents a partial journal update
type UpdateJournalRequest struct {
	Title   *string    `json:"title" binding:"omitempty,max=200"`
	Content *string    `json:"content"`
	Date    *time.Time `json:"date"`
}

// UpdateJournal applies a partial update to a journal entry
func (s *JournalService) UpdateJournal(userID, journalID string, req *UpdateJournalRequest) (*models.Journal, error) {
	journal, err := s.journals.GetByIDAndUserID(journalID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		journal.Title = *req.Title
	}
	if req.Content != nil {
		journal.Content = *req.Content
	}
	if req.Date != nil {
		journal.Date = *req.Date
	}

	if err := s.journals.Update(journal); err != nil {
		return nil, err
	}

	return journal, nil
}

// DeleteJournal removes a journal entry
func (s *JournalService) DeleteJournal(userID, journalID string) error {
	journal, err := s.journals.GetByIDAndUserID(journalID, userID)
	if err != nil {
		return err
	}
	return s.journals.Delete(journal.ID)
}

// ListJournals retrieves all journal entries for an account
func (s *JournalService) ListJournals(userID, accountID string) ([]models.Journal, error) {
	account, err := s.accounts.GetByIDAndUserID(accountID, userID)
	if err != nil {
		return nil, err
	}
	return s.journals.ListByAccount(account.ID)
}
