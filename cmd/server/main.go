package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/silotrack/internal/config"
	"github.com/mamadbah2/silotrack/internal/repository/mongodb"
	"github.com/mamadbah2/silotrack/internal/repository/sqlite"
	"github.com/mamadbah2/silotrack/internal/scheduler"
	"github.com/mamadbah2/silotrack/internal/server/handlers"
	"github.com/mamadbah2/silotrack/internal/server/router"
	inventorysvc "github.com/mamadbah2/silotrack/internal/service/inventory"
	ledgersvc "github.com/mamadbah2/silotrack/internal/service/ledger"
	reportingsvc "github.com/mamadbah2/silotrack/internal/service/reporting"
	"github.com/mamadbah2/silotrack/pkg/clients/notifier"
	"github.com/mamadbah2/silotrack/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := time.LoadLocation(cfg.Display.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid display timezone", zap.Error(err))
	}

	store, err := sqlite.New(cfg.Database.Path, baseLogger.Named("repo.sqlite"))
	if err != nil {
		baseLogger.Fatal("failed to init sqlite store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			baseLogger.Error("failed to close sqlite store", zap.Error(err))
		}
	}()

	opLedger := ledgersvc.NewLedger(store, baseLogger.Named("svc.ledger"))
	registry := inventorysvc.NewRegistry(store, opLedger, baseLogger.Named("svc.inventory"))
	reportingSvc := reportingsvc.NewService(registry, cfg.Reporting.LowStockThresholdKg, baseLogger.Named("svc.reporting"))

	// Optional snapshot archive
	var archive mongodb.Repository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archive = mongoRepo
		baseLogger.Info("snapshot archive enabled")
	} else {
		baseLogger.Warn("mongodb uri missing, snapshot archiving disabled")
	}

	// Optional webhook notifier
	var notifierCli notifier.Client
	if cfg.Notifier.WebhookURL != "" {
		notifierCli = notifier.NewWebhookClient(cfg.Notifier.WebhookURL)
		baseLogger.Info("snapshot webhook enabled")
	}

	siloHandler := handlers.NewSiloHandler(registry, loc, baseLogger.Named("handlers.silo"))
	summaryHandler := handlers.NewSummaryHandler(opLedger, loc, baseLogger.Named("handlers.summary"))
	engine := router.New(siloHandler, summaryHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, archive, notifierCli, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
