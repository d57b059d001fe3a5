package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/log"
)

// DefaultSpec fires at 09:00 on the first day of every month
const DefaultSpec = "0 0 9 1 * *"

const (
	checkInTitle = "Monthly Net Worth Check-in"
	checkInBody  = "Update your assets to see how your net worth changed."
	sendTimeout  = 10 * time.Second
)

// MonthlySpec returns the six-field cron spec for the first of every month at hour:00
func MonthlySpec(hour int) (string, error) {
	if hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour %d: must be between 0 and 23", hour)
	}
	return fmt.Sprintf("0 0 %d 1 * *", hour), nil
}

// CheckInService sends the monthly check-in reminder on a cron schedule
type CheckInService struct {
	cron     *cron.Cron
	notifier domain.Notifier
	logger   *log.Logger
	entryID  cron.EntryID
	Now      func() time.Time
}

// NewCheckInService creates a CheckInService evaluating schedules in loc
func NewCheckInService(loc *time.Location, notifier domain.Notifier, logger *log.Logger) *CheckInService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &CheckInService{
		cron:     cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		notifier: notifier,
		logger:   logger.WithComponent(log.ComponentReminder),
		Now:      time.Now,
	}
}

// Schedule registers the reminder job, replacing any previous schedule
func (s *CheckInService) Schedule(spec string) error {
	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
		s.entryID = 0
	}

	id, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := s.Send(ctx); err != nil {
			s.logger.Error("failed to send check-in reminder", log.FieldError, err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid check-in schedule %q: %w", spec, err)
	}
	s.entryID = id

	s.logger.Info("check-in scheduled",
		log.FieldSchedule, spec,
		"next", s.Next(),
	)
	return nil
}

// Cancel removes the reminder job
func (s *CheckInService) Cancel() {
	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
		s.entryID = 0
	}
}

// Next returns the next planned run, or the zero time when nothing is scheduled
func (s *CheckInService) Next() time.Time {
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// Send delivers one reminder now
func (s *CheckInService) Send(ctx context.Context) error {
	reminder := domain.Reminder{
		Title: checkInTitle,
		Body:  checkInBody,
		At:    s.Now(),
	}
	if err := s.notifier.Notify(ctx, reminder); err != nil {
		return fmt.Errorf("failed to notify: %w", err)
	}
	s.logger.InfoContext(ctx, "check-in reminder sent")
	return nil
}

// Start runs the scheduler in its own goroutine
func (s *CheckInService) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish
func (s *CheckInService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Run starts the scheduler and blocks until ctx is cancelled
func (s *CheckInService) Run(ctx context.Context) error {
	s.Start()
	<-ctx.Done()
	s.Stop()
	return nil
}
