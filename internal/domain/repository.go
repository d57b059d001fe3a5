package domain

import "context"

// State is everything the persistence store keeps between runs
type State struct {
	Entries   []Entry
	Settings  Settings
	Snapshots []NetWorthSnapshot
}

// StateStore defines the persistence port for entries, settings and snapshots
type StateStore interface {
	// LoadEntries retrieves every stored entry
	LoadEntries(ctx context.Context) ([]Entry, error)

	// LoadSettings retrieves the stored settings
	// A store with nothing saved yet returns DefaultSettings
	LoadSettings(ctx context.Context) (Settings, error)

	// LoadSnapshots retrieves the snapshot history, oldest first
	LoadSnapshots(ctx context.Context) ([]NetWorthSnapshot, error)

	// Save replaces the stored state as a whole
	Save(ctx context.Context, state State) error
}

// DisplayPublisher receives the display state after each snapshot append
// Delivery is best-effort; callers log failures and carry on
type DisplayPublisher interface {
	PublishDisplayState(ctx context.Context, state DisplayState) error
}

// Notifier delivers check-in reminders
type Notifier interface {
	Notify(ctx context.Context, reminder Reminder) error
}
