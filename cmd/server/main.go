package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/config"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/database"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/engine"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/leads"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/logging"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/market"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/repository"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/scheduler"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/service"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/version"
)

// leadPublisher is the publisher the server owns for its lifetime.
type leadPublisher interface {
	service.LeadPublisher
	Close() error
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, closeLog, err := logging.New(os.Stdout, cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // nothing left to report to
	slog.SetDefault(logger)

	ctx := context.Background()

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	schemaVersion, err := database.Migrate(ctx, db)
	if err != nil {
		return err
	}
	logger.Info("connected to database", "path", cfg.Database.Path, "schemaVersion", schemaVersion)

	// Reference tables start from the compiled-in defaults and are replaced
	// by the database contents once they load.
	tables := engine.NewTableStore(engine.DefaultTables())
	referenceService := service.NewReferenceService(repository.NewCityRepository(db), tables, logger)
	if err := referenceService.Reload(ctx); err != nil {
		logger.Warn("using built-in city tables", "error", err)
	}

	provider := market.NewCachedProvider(market.NewEstimator(tables), market.CacheOptions{
		RentTTL:      cfg.Market.RentTTL,
		ShortTermTTL: cfg.Market.ShortTermTTL,
		MaxEntries:   cfg.Market.MaxEntries,
	}, logger)
	referenceService.OnReload(func() { provider.Purge() })

	publisher, err := newLeadPublisher(cfg.Leads, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close lead publisher", "error", err)
		}
	}()

	// Create services
	systemService := service.NewSystemService(db, tables, map[string]bool{
		"pdf_reports":   true,
		"lead_exchange": cfg.Leads.RabbitMQURL != "",
	})
	marketService := service.NewMarketService(provider)
	simulationService := service.NewSimulationService(tables, provider, logger)
	reportService, err := service.NewReportService(simulationService, referenceService, cfg.Report.FernetKey, cfg.Report.TokenTTL, logger)
	if err != nil {
		return err
	}
	leadService := service.NewLeadService(publisher, logger)

	jobs, err := scheduler.New(scheduler.Config{
		CacheSweep:      cfg.Schedule.CacheSweep,
		ReferenceReload: cfg.Schedule.ReferenceReload,
	}, provider, referenceService, logger)
	if err != nil {
		return err
	}
	jobs.Start()

	// Create router
	router := api.NewRouter(systemService, referenceService, marketService, simulationService, reportService, leadService, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Server.Addr, "version", version.Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		logger.Warn("background jobs did not stop in time", "error", err)
	}

	logger.Info("server exited")
	return nil
}

// newLeadPublisher connects to RabbitMQ when a URL is configured and
// otherwise only logs incoming leads.
func newLeadPublisher(cfg config.LeadsConfig, logger *slog.Logger) (leadPublisher, error) {
	if cfg.RabbitMQURL == "" {
		logger.Warn("RABBITMQ_URL not set, leads will only be logged")
		return leads.NewLogPublisher(logger), nil
	}
	return leads.NewRabbitPublisher(leads.RabbitConfig{
		URL:            cfg.RabbitMQURL,
		Exchange:       cfg.Exchange,
		RoutingKey:     cfg.RoutingKey,
		PublishTimeout: cfg.PublishTimeout,
	}, logger)
}
