package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisisprabha/networth/internal/domain"
)

func openTestStore(t *testing.T) (string, func() ([]domain.Entry, domain.Settings, []domain.NetWorthSnapshot)) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "networth.db")
	return path, func() ([]domain.Entry, domain.Settings, []domain.NetWorthSnapshot) {
		t.Helper()
		ctx := context.Background()
		s, err := Open(path)
		require.NoError(t, err)
		defer s.Close()

		entries, err := s.LoadEntries(ctx)
		require.NoError(t, err)
		settings, err := s.LoadSettings(ctx)
		require.NoError(t, err)
		snapshots, err := s.LoadSnapshots(ctx)
		require.NoError(t, err)
		return entries, settings, snapshots
	}
}

func TestOpen_EmptyDatabase(t *testing.T) {
	_, load := openTestStore(t)
	entries, settings, snapshots := load()

	assert.Empty(t, entries)
	assert.Equal(t, domain.DefaultSettings(), settings)
	assert.Empty(t, snapshots)
}

func TestStore_SaveAndReload(t *testing.T) {
	ctx := context.Background()
	path, load := openTestStore(t)

	at := time.Date(2025, 4, 2, 9, 15, 0, 123000000, time.UTC)
	maturity := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	state := domain.State{
		Entries: []domain.Entry{
			{
				ID:       "fd",
				Category: domain.CategoryFixedDeposits,
				Name:     "FD",
				Values: map[string]domain.FieldValue{
					domain.FieldPrincipalAmount: domain.NumberValue(100000),
					domain.FieldMaturityDate:    domain.DateValue(maturity),
				},
				CreatedAt: at,
				UpdatedAt: at,
			},
			{
				ID:        "cc",
				Category:  domain.CategoryCreditCard,
				Name:      "Card",
				Values:    map[string]domain.FieldValue{domain.FieldDebtBalance: domain.NumberValue(5000)},
				CreatedAt: at,
				UpdatedAt: at.Add(time.Minute),
			},
		},
		Settings: domain.DefaultSettings().WithGrowthRate(domain.CategoryFixedDeposits, 7.5),
		Snapshots: []domain.NetWorthSnapshot{
			{ID: "s1", Timestamp: at, NetWorth: 100000, EntryCount: 1, CategoryTotals: map[domain.Category]float64{domain.CategoryFixedDeposits: 100000}},
			{ID: "s2", Timestamp: at.Add(time.Minute), NetWorth: 95000, EntryCount: 2, CategoryTotals: map[domain.Category]float64{domain.CategoryFixedDeposits: 100000, domain.CategoryCreditCard: -5000}},
		},
	}

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, state))
	require.NoError(t, s.Close())

	entries, settings, snapshots := load()

	require.Len(t, entries, 2)
	assert.Equal(t, "fd", entries[0].ID)
	assert.Equal(t, "cc", entries[1].ID)
	assert.Equal(t, 100000.0, entries[0].Number(domain.FieldPrincipalAmount))
	got, ok := entries[0].Date(domain.FieldMaturityDate)
	require.True(t, ok)
	assert.True(t, maturity.Equal(got))
	assert.True(t, at.Equal(entries[0].CreatedAt))
	assert.True(t, at.Add(time.Minute).Equal(entries[1].UpdatedAt))

	assert.Equal(t, 7.5, settings.GrowthRate(domain.CategoryFixedDeposits))
	assert.Equal(t, domain.DefaultCurrencyCode, settings.Currency())

	require.Len(t, snapshots, 2)
	assert.Equal(t, "s1", snapshots[0].ID)
	assert.True(t, snapshots[1].SameState(state.Snapshots[1]))
}

func TestStore_SaveReplacesPreviousState(t *testing.T) {
	ctx := context.Background()
	path, load := openTestStore(t)

	s, err := Open(path)
	require.NoError(t, err)
	first := domain.State{
		Entries:  []domain.Entry{domain.NewDraft(domain.CategorySavings, time.Now())},
		Settings: domain.DefaultSettings(),
	}
	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, domain.State{Settings: domain.DefaultSettings()}))
	require.NoError(t, s.Close())

	entries, _, _ := load()
	assert.Empty(t, entries)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networth.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.NoError(t, RunMigrations(path))
}
