package seeder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/log"
)

// MockStateStore is a mock implementation of StateStore
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) LoadEntries(ctx context.Context) ([]domain.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockStateStore) LoadSettings(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockStateStore) LoadSnapshots(ctx context.Context) ([]domain.NetWorthSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NetWorthSnapshot), args.Error(1)
}

func (m *MockStateStore) Save(ctx context.Context, state domain.State) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func TestSettingsSeeder_Seed_RatesMissing(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStateStore)
	seeder := NewSettingsSeeder(mockStore, log.Discard())

	partial := domain.Settings{CurrencyCode: "INR", GrowthRates: map[domain.Category]float64{domain.CategoryStocks: 22}}
	entries := []domain.Entry{{ID: "a", Category: domain.CategoryGold}}
	snapshots := []domain.NetWorthSnapshot{{ID: "s1"}}

	mockStore.On("LoadSettings", ctx).Return(partial, nil)
	mockStore.On("LoadEntries", ctx).Return(entries, nil)
	mockStore.On("LoadSnapshots", ctx).Return(snapshots, nil)
	mockStore.On("Save", ctx, mock.MatchedBy(func(s domain.State) bool {
		return len(s.Entries) == 1 &&
			len(s.Snapshots) == 1 &&
			len(s.Settings.GrowthRates) == len(domain.Categories()) &&
			s.Settings.GrowthRates[domain.CategoryStocks] == 22 &&
			s.Settings.GrowthRates[domain.CategoryGold] == 9.5
	})).Return(nil)

	changed, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	mockStore.AssertExpectations(t)
}

func TestSettingsSeeder_Seed_AlreadyComplete(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStateStore)
	seeder := NewSettingsSeeder(mockStore, nil)

	mockStore.On("LoadSettings", ctx).Return(domain.DefaultSettings(), nil)

	changed, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
	mockStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSettingsSeeder_Seed_SaveFails(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStateStore)
	seeder := NewSettingsSeeder(mockStore, nil)

	mockStore.On("LoadSettings", ctx).Return(domain.Settings{}, nil)
	mockStore.On("LoadEntries", ctx).Return(nil, nil)
	mockStore.On("LoadSnapshots", ctx).Return(nil, nil)
	mockStore.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

	_, err := seeder.Seed(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save seeded settings")
}
