package publisher

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/log"
)

// MockDisplayPublisher is a mock implementation of domain.DisplayPublisher
type MockDisplayPublisher struct {
	mock.Mock
}

func (m *MockDisplayPublisher) PublishDisplayState(ctx context.Context, state domain.DisplayState) error {
	return m.Called(ctx, state).Error(0)
}

// MockNotifier is a mock implementation of domain.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, reminder domain.Reminder) error {
	return m.Called(ctx, reminder).Error(0)
}

func TestWidgetFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget", "state.json")
	w := NewWidgetFile(path)

	delta := -0.1
	state := domain.DisplayState{NetWorth: 900, LastUpdated: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), DeltaPercent: &delta}
	require.NoError(t, w.PublishDisplayState(context.Background(), state))

	got, err := ReadWidgetFile(path)
	require.NoError(t, err)
	assert.Equal(t, 900.0, got.NetWorth)
	assert.True(t, state.LastUpdated.Equal(got.LastUpdated))
	require.NotNil(t, got.DeltaPercent)
	assert.Equal(t, -0.1, *got.DeltaPercent)

	// overwrite with a state without delta
	require.NoError(t, w.PublishDisplayState(context.Background(), domain.DisplayState{NetWorth: 1}))
	got, err = ReadWidgetFile(path)
	require.NoError(t, err)
	assert.Nil(t, got.DeltaPercent)
}

func TestReadWidgetFile_Missing(t *testing.T) {
	_, err := ReadWidgetFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLogSink(t *testing.T) {
	s := NewLogSink(log.Discard())
	assert.NoError(t, s.PublishDisplayState(context.Background(), domain.DisplayState{NetWorth: 1}))
	assert.NoError(t, s.Notify(context.Background(), domain.Reminder{Title: "t"}))
}

func TestFanout_JoinsErrors(t *testing.T) {
	ctx := context.Background()
	state := domain.DisplayState{NetWorth: 42}

	ok := new(MockDisplayPublisher)
	ok.On("PublishDisplayState", ctx, state).Return(nil).Once()
	failing := new(MockDisplayPublisher)
	boom := errors.New("boom")
	failing.On("PublishDisplayState", ctx, state).Return(boom).Once()
	after := new(MockDisplayPublisher)
	after.On("PublishDisplayState", ctx, state).Return(nil).Once()

	err := Fanout{ok, failing, after}.PublishDisplayState(ctx, state)
	assert.ErrorIs(t, err, boom)
	ok.AssertExpectations(t)
	failing.AssertExpectations(t)
	after.AssertExpectations(t)

	assert.NoError(t, Fanout{}.PublishDisplayState(ctx, state))
}

func TestNotifyFanout(t *testing.T) {
	ctx := context.Background()
	reminder := domain.Reminder{Title: "Monthly"}

	a := new(MockNotifier)
	a.On("Notify", ctx, reminder).Return(nil).Once()
	b := new(MockNotifier)
	b.On("Notify", ctx, reminder).Return(nil).Once()

	assert.NoError(t, NotifyFanout{a, b}.Notify(ctx, reminder))
	a.AssertExpectations(t)
	b.AssertExpectations(t)
}
