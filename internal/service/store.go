package service

import (
	"github.com/tradejournal/internal/models"
	"github.com/tradejournal/internal/repository"
)

// The services consume the record store through narrow interfaces so
// that tests can substitute in-memory fakes. The gorm repositories in
// internal/repository are the production implementations.

// UserStore persists users
type UserStore interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
}

// AccountStore persists accounts
type AccountStore interface {
	Create(account *models.Account) error
	GetByIDAndUserID(id, userID string) (*models.Account, error)
	GetByUserID(userID string) ([]models.Account, error)
	Update(account *models.Account) error
	ResetBalance(id string, balance float64) error
	DeleteCascade(id string) error
}

// TradeStore persists trades. The *WithBalance methods apply the trade
// write and the paired account balance adjustment as one atomic unit.
type TradeStore interface {
	GetByIDAndUserID(id, userID string) (*models.Trade, error)
	ListByAccount(accountID string) ([]models.Trade, error)
	ListByAccountFiltered(accountID string, f repository.TradeFilter) ([]models.Trade, error)
	CreateWithBalance(trade *models.Trade, balanceDelta float64) error
	UpdateWithBalance(trade *models.Trade, balanceDelta float64) error
	DeleteWithBalance(trade *models.Trade, balanceDelta float64) error
}

// JournalStore persists journal entries
type JournalStore interface {
	Create(journal *models.Journal) error
	Update(journal *models.Journal) error
	Delete(id string) error
	GetByIDAndUserID(id, userID string) (*models.Journal, error)
	ListByAccount(accountID string) ([]models.Journal, error)
}

// StatsObserver is notified after any trade mutation so cached or
// streamed statistics can be refreshed. Implementations are
// best-effort: they log failures instead of returning them.
type StatsObserver interface {
	StatsChanged(accountID string)
}
