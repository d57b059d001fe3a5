package seeder

import (
	"context"
	"fmt"

	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/log"
)

// SettingsSeeder makes sure persisted settings carry a growth rate for every category
type SettingsSeeder struct {
	store  domain.StateStore
	logger *log.Logger
}

// NewSettingsSeeder creates a new SettingsSeeder instance
func NewSettingsSeeder(store domain.StateStore, logger *log.Logger) *SettingsSeeder {
	if logger == nil {
		logger = log.Discard()
	}
	return &SettingsSeeder{
		store:  store,
		logger: logger.WithComponent(log.ComponentSeeder),
	}
}

// Seed fills missing growth rates and the currency with their defaults
// Existing overrides are kept
// The store is only written when something was added
// It reports whether the settings changed
func (s *SettingsSeeder) Seed(ctx context.Context) (bool, error) {
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load settings: %w", err)
	}

	if !settings.FillDefaults() {
		return false, nil
	}

	// Save replaces the whole state, so the rest of it has to be carried over
	entries, err := s.store.LoadEntries(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load entries: %w", err)
	}
	snapshots, err := s.store.LoadSnapshots(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load snapshots: %w", err)
	}

	if err := s.store.Save(ctx, domain.State{Entries: entries, Settings: settings, Snapshots: snapshots}); err != nil {
		return false, fmt.Errorf("failed to save seeded settings: %w", err)
	}

	s.logger.InfoContext(ctx, "default settings seeded",
		log.FieldOperation, log.OpSeed,
		log.FieldCount, len(settings.GrowthRates),
	)
	return true, nil
}
