package portfolio

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/thisisprabha/networth/internal/adapter/csvio"
	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/log"
	"github.com/thisisprabha/networth/internal/usecase/snapshot"
)

// CreateEntryInput represents the input for creating an entry
// Values are overlaid on the category's default field values
type CreateEntryInput struct {
	Category domain.Category
	Name     string
	Values   map[string]domain.FieldValue
}

// MergeResult counts what a merge did with each incoming entry
type MergeResult struct {
	Inserted int
	Replaced int
	Ignored  int
}

// ImportResult combines the CSV parse outcome with the merge outcome
type ImportResult struct {
	csvio.Result
	Merge MergeResult
}

// PortfolioService owns the entry collection, settings and snapshot history
// Every mutation records a snapshot, saves the whole state and, when a snapshot
// was appended, hands the display state to the publisher
type PortfolioService struct {
	Store     domain.StateStore
	Publisher domain.DisplayPublisher
	Recorder  *snapshot.Recorder
	Logger    *log.Logger
	Now       func() time.Time

	// writeMu serialises mutations end to end, including the save
	writeMu   sync.Mutex
	mu        sync.RWMutex
	entries   []domain.Entry
	settings  domain.Settings
	snapshots []domain.NetWorthSnapshot
}

// NewPortfolioService creates a new PortfolioService instance
// publisher may be nil when nothing consumes display states
func NewPortfolioService(
	store domain.StateStore,
	publisher domain.DisplayPublisher,
	recorder *snapshot.Recorder,
	logger *log.Logger,
) *PortfolioService {
	if recorder == nil {
		recorder = snapshot.NewRecorder()
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &PortfolioService{
		Store:     store,
		Publisher: publisher,
		Recorder:  recorder,
		Logger:    logger.WithComponent(log.ComponentPortfolio),
		Now:       time.Now,
		settings:  domain.DefaultSettings(),
	}
}

// Load replaces the in-memory state with what the store holds
func (s *PortfolioService) Load(ctx context.Context) error {
	entries, err := s.Store.LoadEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	settings, err := s.Store.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	snapshots, err := s.Store.LoadSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.settings = settings
	s.snapshots = snapshots
	s.mu.Unlock()

	s.Logger.InfoContext(ctx, "portfolio loaded",
		log.FieldCount, len(entries),
		"snapshots", len(snapshots),
	)
	return nil
}

// Entries returns a copy of the current entries
func (s *PortfolioService) Entries() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

// Entry returns the entry with the given id
func (s *PortfolioService) Entry(id string) (domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.entries, id); i >= 0 {
		return s.entries[i].Clone(), nil
	}
	return domain.Entry{}, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
}

// Settings returns a copy of the current settings
func (s *PortfolioService) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// Snapshots returns a copy of the snapshot history, oldest first
func (s *PortfolioService) Snapshots() []domain.NetWorthSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.NetWorthSnapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

// Create adds a new entry seeded with the category defaults
func (s *PortfolioService) Create(ctx context.Context, input CreateEntryInput) (domain.Entry, error) {
	category, ok := domain.ParseCategory(string(input.Category))
	if !ok {
		return domain.Entry{}, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, input.Category)
	}

	entry := domain.NewDraft(category, s.Now()).WithValues(input.Values)
	if name := strings.TrimSpace(input.Name); name != "" {
		entry.Name = name
	}

	err := s.mutate(ctx, log.OpCreate, func(entries []domain.Entry) ([]domain.Entry, error) {
		return append(entries, entry), nil
	})
	if err != nil {
		return domain.Entry{}, err
	}
	return entry.Clone(), nil
}

// Update replaces an existing entry, keeping its creation time
func (s *PortfolioService) Update(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	if _, ok := domain.ParseCategory(string(entry.Category)); !ok {
		return domain.Entry{}, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, entry.Category)
	}

	var updated domain.Entry
	err := s.mutate(ctx, log.OpUpdate, func(entries []domain.Entry) ([]domain.Entry, error) {
		i := indexOf(entries, entry.ID)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entry.ID)
		}
		updated = entry.Clone()
		updated.CreatedAt = entries[i].CreatedAt
		updated.UpdatedAt = s.Now()
		if strings.TrimSpace(updated.Name) == "" {
			updated.Name = updated.Definition().Name
		}
		entries[i] = updated
		return entries, nil
	})
	if err != nil {
		return domain.Entry{}, err
	}
	return updated.Clone(), nil
}

// Delete removes the entry with the given id
func (s *PortfolioService) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, log.OpDelete, func(entries []domain.Entry) ([]domain.Entry, error) {
		i := indexOf(entries, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
		}
		return append(entries[:i], entries[i+1:]...), nil
	})
}

// Merge inserts entries with unknown ids and replaces known ones whose UpdatedAt is newer
// Incoming entries with an unknown category are ignored
func (s *PortfolioService) Merge(ctx context.Context, incoming []domain.Entry) (MergeResult, error) {
	var res MergeResult
	err := s.mutate(ctx, log.OpMerge, func(entries []domain.Entry) ([]domain.Entry, error) {
		res = MergeResult{}
		for _, e := range incoming {
			if e.Validate() != nil {
				res.Ignored++
				continue
			}
			i := indexOf(entries, e.ID)
			switch {
			case i < 0:
				entries = append(entries, e.Clone())
				res.Inserted++
			case entries[i].UpdatedAt.Before(e.UpdatedAt):
				entries[i] = e.Clone()
				res.Replaced++
			default:
				res.Ignored++
			}
		}
		return entries, nil
	})
	return res, err
}

// Import parses CSV from r and merges the result
func (s *PortfolioService) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	parsed, err := csvio.Import(r, s.Now())
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to import csv: %w", err)
	}

	merged, err := s.Merge(ctx, parsed.Entries)
	if err != nil {
		return ImportResult{}, err
	}

	s.Logger.InfoContext(ctx, "csv imported",
		log.FieldOperation, log.OpImport,
		"imported", parsed.Imported,
		"skipped", parsed.Skipped,
		"inserted", merged.Inserted,
		"replaced", merged.Replaced,
	)
	return ImportResult{Result: parsed, Merge: merged}, nil
}

// Export writes the current entries as CSV
func (s *PortfolioService) Export(w io.Writer) error {
	return csvio.Export(w, s.Entries())
}

// SetGrowthRate overrides the annual growth rate of a category
// Ranges are advisory: a rate outside the suggested range is accepted and logged
func (s *PortfolioService) SetGrowthRate(ctx context.Context, category domain.Category, rate float64) error {
	if _, ok := domain.ParseCategory(string(category)); !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidGrowthRate, rate)
	}

	if r := category.Definition().GrowthRateRange; r != nil && !r.Contains(rate) {
		s.Logger.WarnContext(ctx, "growth rate outside suggested range",
			log.FieldCategory, category,
			log.FieldRate, rate,
			"suggested_min", r.Min,
			"suggested_max", r.Max,
		)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.settings = s.settings.WithGrowthRate(category, rate)
	state := s.stateLocked()
	s.mu.Unlock()

	if err := s.Store.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// mutate applies fn to a copy of the entries, records a snapshot, saves and publishes
func (s *PortfolioService) mutate(ctx context.Context, op string, fn func([]domain.Entry) ([]domain.Entry, error)) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	working := make([]domain.Entry, len(s.entries))
	copy(working, s.entries)

	next, err := fn(working)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	result := s.Recorder.Record(next, s.snapshots)
	s.entries = next
	s.snapshots = result.Snapshots
	state := s.stateLocked()
	s.mu.Unlock()

	if err := s.Store.Save(ctx, state); err != nil {
		s.Logger.ErrorContext(ctx, "failed to save state",
			log.FieldOperation, op,
			log.FieldError, err,
		)
		return fmt.Errorf("failed to save state after %s: %w", op, err)
	}

	s.Logger.DebugContext(ctx, "state saved",
		log.FieldOperation, op,
		log.FieldCount, len(state.Entries),
		"snapshot_appended", result.Appended,
	)

	if result.Appended && result.Display != nil {
		s.publish(ctx, *result.Display)
	}
	return nil
}

func (s *PortfolioService) publish(ctx context.Context, state domain.DisplayState) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishDisplayState(ctx, state); err != nil {
		s.Logger.WarnContext(ctx, "failed to publish display state",
			log.FieldOperation, log.OpPublish,
			log.FieldNetWorth, state.NetWorth,
			log.FieldError, err,
		)
	}
}

func (s *PortfolioService) stateLocked() domain.State {
	entries := make([]domain.Entry, len(s.entries))
	copy(entries, s.entries)
	snapshots := make([]domain.NetWorthSnapshot, len(s.snapshots))
	copy(snapshots, s.snapshots)
	return domain.State{
		Entries:   entries,
		Settings:  s.settings.Clone(),
		Snapshots: snapshots,
	}
}

func indexOf(entries []domain.Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
