package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"ledgerly/internal/config"
	"ledgerly/internal/database"
	"ledgerly/internal/export"
	"ledgerly/internal/logger"
	"ledgerly/internal/notify"
	"ledgerly/internal/server"
	"ledgerly/internal/services"
	"ledgerly/internal/validator"
)

// @title           Ledgerly API
// @version         1.0
// @description     Ledgerly is a single-user personal finance API for transactions, budgets, spend analysis and cards.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("Failed to close database", "error", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	alerts, err := newPublisher(appConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := alerts.Close(); err != nil {
			log.Warnw("Failed to close alert publisher", "error", err)
		}
	}()

	sink, err := newSink(ctx, appConfig)
	if err != nil {
		return err
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	profileService, err := services.NewProfileService()
	if err != nil {
		return fmt.Errorf("failed to create profile service: %w", err)
	}
	budgetService, err := services.NewBudgetService(ctx, services.NewGormBudgetStore(db), alerts, profileService)
	if err != nil {
		return fmt.Errorf("failed to create budget service: %w", err)
	}
	transactionService := services.NewTransactionService()

	router := server.NewRouter(server.Services{
		Transactions: transactionService,
		Budgets:      budgetService,
		Profile:      profileService,
		Analytics:    services.NewAnalyticsService(transactionService),
		Cards:        services.NewCardService(services.DefaultCards()),
		Export:       services.NewExportService(sink, profileService, transactionService, budgetService),
		Activity:     services.NewActivityService(db),
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting Ledgerly server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newPublisher sends budget alerts to RabbitMQ when AMQP_URL is set and to
// the log otherwise.
func newPublisher(cfg *config.Config) (notify.Publisher, error) {
	if cfg.AMQPURL == "" {
		return notify.NewLogPublisher(logger.Named("alerts")), nil
	}
	pub, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to connect alert publisher: %w", err)
	}
	return pub, nil
}

// newSink writes data exports to the blob container when a service URL is
// configured and to the local export directory otherwise.
func newSink(ctx context.Context, cfg *config.Config) (export.Sink, error) {
	if cfg.AzureBlobServiceURL == "" {
		return export.NewLocalSink(cfg.ExportDir), nil
	}
	sink, err := export.NewBlobSink(cfg.AzureBlobServiceURL, cfg.AzureBlobContainer)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob sink: %w", err)
	}
	if err := sink.EnsureContainer(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare blob container: %w", err)
	}
	return sink, nil
}
