// Package memory keeps the state in process memory
package memory

import (
	"context"
	"sync"

	"github.com/thisisprabha/networth/internal/domain"
)

// Store implements domain.StateStore without persistence
type Store struct {
	mu    sync.RWMutex
	state *domain.State
	saves int
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{}
}

func (s *Store) LoadEntries(ctx context.Context) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return []domain.Entry{}, nil
	}
	return cloneEntries(s.state.Entries), nil
}

func (s *Store) LoadSettings(ctx context.Context) (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return domain.DefaultSettings(), nil
	}
	return s.state.Settings.Clone(), nil
}

func (s *Store) LoadSnapshots(ctx context.Context) ([]domain.NetWorthSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return []domain.NetWorthSnapshot{}, nil
	}
	out := make([]domain.NetWorthSnapshot, len(s.state.Snapshots))
	copy(out, s.state.Snapshots)
	return out, nil
}

func (s *Store) Save(ctx context.Context, state domain.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshots := make([]domain.NetWorthSnapshot, len(state.Snapshots))
	copy(snapshots, state.Snapshots)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = &domain.State{
		Entries:   cloneEntries(state.Entries),
		Settings:  state.Settings.Clone(),
		Snapshots: snapshots,
	}
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func (s *Store) Close() error { return nil }

func cloneEntries(entries []domain.Entry) []domain.Entry {
	out := make([]domain.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
