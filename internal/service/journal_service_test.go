package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradejournal/internal/models"
	"github.com/tradejournal/internal/repository"
)

func newJournalFixture() *JournalService {
	accounts := newFakeAccountStore()
	accounts.Create(&models.Account{UserID: "u1", Name: "Main", Type: models.AccountDemo})
	return NewJournalService(newFakeJournalStore(), accounts)
}

func TestCreateAndListJournals(t *testing.T) {
	svc := newJournalFixture()

	date := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	entry, err := svc.CreateJournal("u1", "acct-1", &CreateJournalRequest{
		Title:   "NFP week review",
		Content: "Overtraded on Friday.",
		Date:    date,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)

	entries, err := svc.ListJournals("u1", "acct-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "NFP week review", entries[0].Title)
}

func TestCreateJournalUnknownAccount(t *testing.T) {
	svc := newJournalFixture()

	_, err := svc.CreateJournal("u1", "missing", &CreateJournalRequest{
		Title: "x",
		Date:  time.Now(),
	})
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestUpdateJournalPartial(t *testing.T) {
	svc := newJournalFixture()

	entry, err := svc.CreateJournal("u1", "acct-1", &CreateJournalRequest{
		Title:   "Draft",
		Content: "original",
		Date:    time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	content := "revised"
	updated, err := svc.UpdateJournal("u1", entry.ID, &UpdateJournalRequest{Content: &content})
	require.NoError(t, err)

	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, "revised", updated.Content)
}

func TestDeleteJournalScopedToOwner(t *testing.T) {
	svc := newJournalFixture()

	entry, err := svc.CreateJournal("u1", "acct-1", &CreateJournalRequest{
		Title: "Mine",
		Date:  time.Now(),
	})
	require.NoError(t, err)

	err = svc.DeleteJournal("u2", entry.ID)
	assert.ErrorIs(t, err, repository.ErrJournalNotFound)

	require.NoError(t, svc.DeleteJournal("u1", entry.ID))

	entries, err := svc.ListJournals("u1", "acct-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
