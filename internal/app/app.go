// Package app wires the configured store, publishers and services together
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/thisisprabha/networth/internal/adapter/publisher"
	"github.com/thisisprabha/networth/internal/adapter/repository"
	"github.com/thisisprabha/networth/internal/config"
	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/log"
	"github.com/thisisprabha/networth/internal/usecase/dashboard"
	"github.com/thisisprabha/networth/internal/usecase/portfolio"
	"github.com/thisisprabha/networth/internal/usecase/seeder"
	"github.com/thisisprabha/networth/internal/usecase/snapshot"
)

// App holds the long-lived services of a process
type App struct {
	Config    *config.Config
	Logger    *log.Logger
	Store     repository.Store
	Portfolio *portfolio.PortfolioService
	Dashboard *dashboard.DashboardService
	Notifier  domain.Notifier

	closers []func() error
}

// New opens the store, seeds settings, loads the portfolio and connects the publishers
// Logic:
//  1. Open the configured backend
//  2. Fill missing growth rates with defaults
//  3. Load entries, settings and snapshots into the portfolio
//  4. Publish display states to every configured sink (AMQP, widget file, log fallback)
//  5. Send reminders through AMQP when configured, and always to the log
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Discard()
	}
	a := &App{Config: cfg, Logger: logger}

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Store = store
	a.closers = append(a.closers, store.Close)

	if _, err := seeder.NewSettingsSeeder(store, logger).Seed(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to seed settings: %w", err)
	}

	var (
		sinks     publisher.Fanout
		notifiers publisher.NotifyFanout
	)
	if cfg.AMQPURL != "" {
		amqpPublisher, err := publisher.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to AMQP: %w", err)
		}
		a.closers = append(a.closers, amqpPublisher.Close)
		sinks = append(sinks, amqpPublisher)
		notifiers = append(notifiers, amqpPublisher)
		logger.Info("publishing to AMQP exchange", "exchange", cfg.AMQPExchange)
	}
	if cfg.WidgetStatePath != "" {
		sinks = append(sinks, publisher.NewWidgetFile(cfg.WidgetStatePath))
		logger.Info("writing widget state", log.FieldPath, cfg.WidgetStatePath)
	}
	logSink := publisher.NewLogSink(logger)
	if len(sinks) == 0 {
		sinks = append(sinks, logSink)
	}
	notifiers = append(notifiers, logSink)
	a.Notifier = notifiers

	a.Portfolio = portfolio.NewPortfolioService(store, sinks, snapshot.NewRecorder(), logger)
	if err := a.Portfolio.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	a.Dashboard = dashboard.NewDashboardService(a.Portfolio, cfg.ProjectionMonths)

	return a, nil
}

// Close releases resources in reverse order of acquisition
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
