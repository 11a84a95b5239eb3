package service

import (
	"fmt"

	"github.com/tradejournal/internal/models"
	"github.com/tradejournal/internal/repository"
)

// In-memory store fakes. The *WithBalance methods mirror the gorm
// implementation: trade write and balance adjustment succeed or fail
// together.

type fakeUserStore struct {
	users map[string]*models.User
	seq   int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(user *models.User) error {
	f.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", f.seq)
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) ExistsByEmail(email string) (bool, error) {
	_, err := f.GetByEmail(email)
	return err == nil, nil
}

type fakeAccountStore struct {
	accounts map[string]*models.Account
	seq      int
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[string]*models.Account)}
}

func (f *fakeAccountStore) Create(account *models.Account) error {
	f.seq++
	if account.ID == "" {
		account.ID = fmt.Sprintf("acct-%d", f.seq)
	}
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountStore) GetByIDAndUserID(id, userID string) (*models.Account, error) {
	a, ok := f.accounts[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeAccountStore) GetByUserID(userID string) ([]models.Account, error) {
	var out []models.Account
	for _, a := range f.accounts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAccountStore) Update(account *models.Account) error {
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountStore) ResetBalance(id string, balance float64) error {
	a, ok := f.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	a.Balance = balance
	a.InitialBalance = balance
	return nil
}

func (f *fakeAccountStore) DeleteCascade(id string) error {
	delete(f.accounts, id)
	return nil
}

type fakeTradeStore struct {
	trades   map[string]*models.Trade
	accounts *fakeAccountStore
	seq      int
	failNext error
}

func newFakeTradeStore(accounts *fakeAccountStore) *fakeTradeStore {
	return &fakeTradeStore{trades: make(map[string]*models.Trade), accounts: accounts}
}

func (f *fakeTradeStore) GetByIDAndUserID(id, userID string) (*models.Trade, error) {
	t, ok := f.trades[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrTradeNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTradeStore) ListByAccount(accountID string) ([]models.Trade, error) {
	var out []models.Trade
	for _, t := range f.trades {
		if t.AccountID == accountID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTradeStore) ListByAccountFiltered(accountID string, filter repository.TradeFilter) ([]models.Trade, error) {
	trades, _ := f.ListByAccount(accountID)
	var out []models.Trade
	for _, t := range trades {
		if filter.Market != "" && t.Market != filter.Market {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTradeStore) CreateWithBalance(trade *models.Trade, delta float64) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.seq++
	if trade.ID == "" {
		trade.ID = fmt.Sprintf("trade-%d", f.seq)
	}
	copied := *trade
	f.trades[trade.ID] = &copied
	return f.applyDelta(trade.AccountID, delta)
}

func (f *fakeTradeStore) UpdateWithBalance(trade *models.Trade, delta float64) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	copied := *trade
	f.trades[trade.ID] = &copied
	return f.applyDelta(trade.AccountID, delta)
}

func (f *fakeTradeStore) DeleteWithBalance(trade *models.Trade, delta float64) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	delete(f.trades, trade.ID)
	return f.applyDelta(trade.AccountID, delta)
}

func (f *fakeTradeStore) applyDelta(accountID string, delta float64) error {
	a, ok := f.accounts.accounts[accountID]
	if !ok {
		return repository.ErrAccountNotFound
	}
	a.Balance += delta
	return nil
}

type fakeJournalStore struct {
	journals map[string]*models.Journal
	seq      int
}

func newFakeJournalStore() *fakeJournalStore {
	return &fakeJournalStore{journals: make(map[string]*models.Journal)}
}

func (f *fakeJournalStore) Create(journal *models.Journal) error {
	f.seq++
	if journal.ID == "" {
		journal.ID = fmt.Sprintf("journal-%d", f.seq)
	}
	f.journals[journal.ID] = journal
	return nil
}

func (f *fakeJournalStore) Update(journal *models.Journal) error {
	f.journals[journal.ID] = journal
	return nil
}

func (f *fakeJournalStore) Delete(id string) error {
	delete(f.journals, id)
	return nil
}

func (f *fakeJournalStore) GetByIDAndUserID(id, userID string) (*models.Journal, error) {
	j, ok := f.journals[id]
	if !ok || j.UserID != userID {
		return nil, repository.ErrJournalNotFound
	}
	return j, nil
}

func (f *fakeJournalStore) ListByAccount(accountID string) ([]models.Journal, error) {
	var out []models.Journal
	for _, j := range f.journals {
		if j.AccountID == accountID {
			out = append(out, *j)
		}
	}
	return out, nil
}

type recordingObserver struct {
	changed []string
}

func (r *recordingObserver) StatsChanged(accountID string) {
	r.changed = append(r.changed, accountID)
}
