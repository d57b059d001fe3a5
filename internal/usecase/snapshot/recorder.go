package snapshot

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/usecase/aggregator"
)

// Result is the outcome of one recording pass
// Display is set only when a snapshot was appended
type Result struct {
	Snapshots []domain.NetWorthSnapshot
	Appended  bool
	Display   *domain.DisplayState
}

// Recorder appends change-triggered snapshots to a history
type Recorder struct {
	Now       func() time.Time
	NewID     func() string
	Retention int
}

// NewRecorder creates a Recorder using the wall clock and random UUIDs
func NewRecorder() *Recorder {
	return &Recorder{
		Now:       time.Now,
		NewID:     uuid.NewString,
		Retention: domain.SnapshotRetention,
	}
}

// Current computes the aggregate state of entries as an unsaved snapshot
func (r *Recorder) Current(entries []domain.Entry) domain.NetWorthSnapshot {
	return domain.NetWorthSnapshot{
		Timestamp:      r.now(),
		NetWorth:       aggregator.NetWorth(entries),
		EntryCount:     len(entries),
		CategoryTotals: aggregator.NetWorthByCategory(entries),
	}
}

// Record compares the current state against the newest snapshot in history
// Logic:
//  1. Compute net worth, entry count and category totals
//  2. If all three equal the newest snapshot, return history unchanged
//  3. Otherwise append, keep only the newest Retention snapshots, and build the display state
//
// The input slice is never modified
func (r *Recorder) Record(entries []domain.Entry, history []domain.NetWorthSnapshot) Result {
	current := r.Current(entries)
	if n := len(history); n > 0 && history[n-1].SameState(current) {
		return Result{Snapshots: history}
	}

	current.ID = r.NewID()
	next := make([]domain.NetWorthSnapshot, 0, len(history)+1)
	next = append(next, history...)
	next = append(next, current)

	retention := r.Retention
	if retention <= 0 {
		retention = domain.SnapshotRetention
	}
	if len(next) > retention {
		next = next[len(next)-retention:]
	}

	return Result{
		Snapshots: next,
		Appended:  true,
		Display: &domain.DisplayState{
			NetWorth:     current.NetWorth,
			LastUpdated:  current.Timestamp,
			DeltaPercent: DeltaPercent(next),
		},
	}
}

func (r *Recorder) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// DeltaPercent returns (newest - previous) / previous as a fraction
// It is nil with fewer than two snapshots or when the previous net worth is not positive
func DeltaPercent(history []domain.NetWorthSnapshot) *float64 {
	n := len(history)
	if n < 2 {
		return nil
	}
	previous := history[n-2].NetWorth
	if previous <= 0 {
		return nil
	}
	d := (history[n-1].NetWorth - previous) / previous
	return &d
}

// Change is the movement between the two newest snapshots
type Change struct {
	Absolute float64
	Percent  *float64
	Since    time.Time
}

// Delta returns the latest change, or false with fewer than two snapshots
func Delta(history []domain.NetWorthSnapshot) (Change, bool) {
	n := len(history)
	if n < 2 {
		return Change{}, false
	}
	return Change{
		Absolute: history[n-1].NetWorth - history[n-2].NetWorth,
		Percent:  DeltaPercent(history),
		Since:    history[n-2].Timestamp,
	}, true
}

// Driver is one category's share of the latest change
type Driver struct {
	Category domain.Category
	Change   float64
}

// Drivers lists per-category changes between the two newest snapshots, largest movement first
// Categories that did not move are omitted
func Drivers(history []domain.NetWorthSnapshot) []Driver {
	n := len(history)
	if n < 2 {
		return nil
	}
	newest, previous := history[n-1].CategoryTotals, history[n-2].CategoryTotals

	var drivers []Driver
	for _, c := range domain.OrderedCategories() {
		change := newest[c] - previous[c]
		if change == 0 {
			continue
		}
		drivers = append(drivers, Driver{Category: c, Change: change})
	}
	sort.SliceStable(drivers, func(i, j int) bool {
		return math.Abs(drivers[i].Change) > math.Abs(drivers[j].Change)
	})
	return drivers
}

// Trend returns the newest limit snapshots, oldest first
func Trend(history []domain.NetWorthSnapshot, limit int) []domain.NetWorthSnapshot {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
