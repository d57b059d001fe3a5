// Package publisher delivers display states and check-in reminders to their sinks
package publisher

import (
	"context"
	"errors"

	"github.com/thisisprabha/networth/internal/domain"
)

// Fanout forwards to every publisher and joins their errors
type Fanout []domain.DisplayPublisher

func (f Fanout) PublishDisplayState(ctx context.Context, state domain.DisplayState) error {
	var errs []error
	for _, p := range f {
		if err := p.PublishDisplayState(ctx, state); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NotifyFanout forwards to every notifier and joins their errors
type NotifyFanout []domain.Notifier

func (f NotifyFanout) Notify(ctx context.Context, reminder domain.Reminder) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, reminder); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
