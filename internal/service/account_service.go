package service

import (
	"fmt"

	"github.com/tradejournal/internal/models"
)

// AccountService handles account operations
type AccountService struct {
	accounts AccountStore
}

// NewAccountService creates a new AccountService
func NewAccountService(accounts AccountStore) *AccountService {
	return &AccountService{accounts: accounts}
}

// CreateAccountRequest represents the create account request
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required,min=1,max=100"`
	Type           models.AccountType `json:"type" binding:"required,oneof=Demo Live 'Prop Firm' Other"`
	InitialBalance float64            `json:"initial_balance" binding:"gte=0"`
}

// CreateAccount creates a new trading account with its balance anchored
// at the initial balance.
func (s *AccountService) CreateAccount(userID string, req *CreateAccountRequest) (*models.Account, error) {
	account := &models.Account{
		UserID:         userID,
		Name:           req.Name,
		Type:           req.Type,
		Balance:        req.InitialBalance,
		InitialBalance: req.InitialBalance,
	}

	if err := s.accounts.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// GetAccounts retrieves all accounts for a user
func (s *AccountService) GetAccounts(userID string) ([]models.Account, error) {
	return s.accounts.GetByUserID(userID)
}

// GetAccountByID retrieves an account by ID
func (s *AccountService) GetAccountByID(userID, accountID string) (*models.Account, error) {
	return s.accounts.GetByIDAndUserID(accountID, userID)
}

// UpdateAccountRequest represents the update account request
type UpdateAccountRequest struct {
	Name *string             `json:"name" binding:"omitempty,min=1,max=100"`
	Type *models.AccountType `json:"type" binding:"omitempty,oneof=Demo Live 'Prop Firm' Other"`
}

// UpdateAccount updates an account's name or type
func (s *AccountService) UpdateAccount(userID, accountID string, req *UpdateAccountRequest) (*models.Account, error) {
	account, err := s.accounts.GetByIDAndUserID(accountID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Type != nil {
		account.Type = *req.Type
	}

	if err := s.accounts.Update(account); err != nil {
		return nil, err
	}

	return account, nil
}

// ResetBalanceRequest represents the reset balance request
type ResetBalanceRequest struct {
	Balance float64 `json:"balance" binding:"gte=0"`
}

// ResetBalance sets both balance and initial balance to the supplied
// value, disconnecting the equity curve anchor from the trade history
// recorded so far.
func (s *AccountService) ResetBalance(userID, accountID string, req *ResetBalanceRequest) (*models.Account, error) {
	account, err := s.accounts.GetByIDAndUserID(accountID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.ResetBalance(account.ID, req.Balance); err != nil {
		return nil, err
	}

	account.Balance = req.Balance
	account.InitialBalance = req.Balance
	return account, nil
}

// DeleteAccount deletes an account and cascades to its trades and
// journal entries.
func (s *AccountService) DeleteAccount(userID, accountID string) error {
	account, err := s.accounts.GetByIDAndUserID(accountID, userID)
	if err != nil {
		return err
	}

	return s.accounts.DeleteCascade(account.ID)
}
