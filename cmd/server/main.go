package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/thisisprabha/networth/internal/adapter/grpc"
	"github.com/thisisprabha/networth/internal/app"
	"github.com/thisisprabha/networth/internal/config"
	"github.com/thisisprabha/networth/internal/log"
	"github.com/thisisprabha/networth/internal/usecase/reminder"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "networth server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load .env if present; real environment variables win
	_ = godotenv.Load()

	// 2. Load and validate configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// 3. Setup structured logging
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: log.ComponentApp,
		Output:    os.Stdout,
	})
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 4. Open the store, seed settings, load the portfolio and connect publishers
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("failed to close resources", log.FieldError, err)
		}
	}()

	// 5. Schedule the monthly check-in
	checkIn := reminder.NewCheckInService(cfg.Location(), application.Notifier, logger)
	if err := checkIn.Schedule(cfg.CheckInSchedule); err != nil {
		return err
	}

	// 6. Create gRPC server with logging and auth interceptors
	healthServer := health.NewServer()
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.AuthInterceptor(cfg.APIToken,
				healthpb.Health_Check_FullMethodName,
				healthpb.Health_List_FullMethodName,
			),
		),
	)
	grpcadapter.RegisterNetWorthServiceServer(grpcServer,
		grpcadapter.NewServer(application.Portfolio, application.Dashboard))
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(grpcadapter.ServiceName, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	addr := ":" + cfg.GRPCPort
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	// 7. Serve until a signal arrives, then stop gracefully
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("gRPC server listening",
			log.FieldAddress, addr,
			log.FieldBackend, cfg.DataBackend,
		)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpclib.ErrServerStopped) {
			return fmt.Errorf("failed to serve gRPC server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return checkIn.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gracefully", log.FieldOperation, log.OpShutdown)
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		logger.Info("gRPC server stopped")
		return nil
	})

	return g.Wait()
}
