package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/platform/config"
	pg "github.com/ogurasousui/grpc-payroll-clean-arch/internal/platform/db/postgres"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/platform/logging"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/platform/metrics"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/platform/server"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	dbPool, err := pg.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to initialize database pool", zap.Error(err))
		return err
	}
	defer dbPool.Close()

	observer := metrics.NewPayrollObserver(prometheus.DefaultRegisterer)
	payrollSvc := payroll.NewService(
		postgres.NewRecordRepository(dbPool),
		postgres.NewRunRepository(dbPool),
		payroll.Options{
			Tx:       pg.NewTransactionManager(dbPool, pg.WithLogger(logger)),
			Observer: observer,
		},
	)

	grpcServer := server.New(cfg.Server.ListenAddr, payrollSvc, server.Options{
		Logger:         logger,
		MetricsAddr:    cfg.Metrics.ListenAddr,
		MetricsHandler: metrics.NewHandler(prometheus.DefaultGatherer, dbPool.Ping),
	})

	if err := grpcServer.Run(ctx); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
