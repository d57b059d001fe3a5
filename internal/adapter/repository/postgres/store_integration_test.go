//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisisprabha/networth/internal/domain"
)

// getDBConnectionString reads the connection string from the environment
func getDBConnectionString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}
	return "host=localhost port=5432 user=postgres password=postgres dbname=networth sslmode=disable"
}

func TestStore_Integration(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, getDBConnectionString())
	if err != nil {
		t.Skipf("postgres not reachable: %v", err)
	}
	defer store.Close()

	at := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	state := domain.State{
		Entries: []domain.Entry{{
			ID:        "pg-home",
			Category:  domain.CategoryHome,
			Name:      "Flat",
			Values:    map[string]domain.FieldValue{domain.FieldHomeValue: domain.NumberValue(8_000_000)},
			CreatedAt: at,
			UpdatedAt: at,
		}},
		Settings: domain.DefaultSettings().WithGrowthRate(domain.CategoryHome, 6),
		Snapshots: []domain.NetWorthSnapshot{{
			ID:             "pg-s1",
			Timestamp:      at,
			NetWorth:       8_000_000,
			EntryCount:     1,
			CategoryTotals: map[domain.Category]float64{domain.CategoryHome: 8_000_000},
		}},
	}
	require.NoError(t, store.Save(ctx, state))

	entries, err := store.LoadEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 8_000_000.0, entries[0].Number(domain.FieldHomeValue))
	assert.True(t, at.Equal(entries[0].UpdatedAt))

	settings, err := store.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6.0, settings.GrowthRate(domain.CategoryHome))

	snapshots, err := store.LoadSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.True(t, snapshots[0].SameState(state.Snapshots[0]))

	// Leave the database empty for the next run
	require.NoError(t, store.Save(ctx, domain.State{Settings: domain.DefaultSettings()}))
}
