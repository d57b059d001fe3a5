package publisher

import (
	"context"

	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/log"
)

// LogSink writes display states and reminders to the log
// It is the sink used when no broker or widget file is configured
type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Discard()
	}
	return &LogSink{logger: logger.WithComponent(log.ComponentPublisher)}
}

func (s *LogSink) PublishDisplayState(ctx context.Context, state domain.DisplayState) error {
	args := []any{
		log.FieldNetWorth, state.NetWorth,
		"last_updated", state.LastUpdated,
	}
	if state.DeltaPercent != nil {
		args = append(args, "delta_percent", *state.DeltaPercent)
	}
	s.logger.InfoContext(ctx, "display state updated", args...)
	return nil
}

func (s *LogSink) Notify(ctx context.Context, reminder domain.Reminder) error {
	s.logger.InfoContext(ctx, reminder.Title, "body", reminder.Body, "at", reminder.At)
	return nil
}
