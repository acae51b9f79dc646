package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/ayurtrace/regulator/internal/config"
	"github.com/ayurtrace/regulator/internal/repository"
	"github.com/ayurtrace/regulator/internal/repository/memory"
	"github.com/ayurtrace/regulator/internal/repository/mongodb"
	"github.com/ayurtrace/regulator/internal/repository/sheets"
	"github.com/ayurtrace/regulator/internal/scheduler"
	"github.com/ayurtrace/regulator/internal/server/handlers"
	"github.com/ayurtrace/regulator/internal/server/router"
	draftingsvc "github.com/ayurtrace/regulator/internal/service/drafting"
	inspectionsvc "github.com/ayurtrace/regulator/internal/service/inspection"
	recallsvc "github.com/ayurtrace/regulator/internal/service/recall"
	trackingsvc "github.com/ayurtrace/regulator/internal/service/tracking"
	"github.com/ayurtrace/regulator/pkg/clients/gemini"
	"github.com/ayurtrace/regulator/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var (
		batchRepo      repository.BatchRepository
		snapshotStores []repository.SnapshotStore
	)

	switch cfg.Store.Backend {
	case config.StoreMongoDB:
		mongoRepo, err := mongodb.NewBatchRepository(context.Background(), cfg.Store.URI, cfg.Store.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		if err := mongoRepo.Seed(context.Background(), memory.SeedBatches()); err != nil {
			baseLogger.Fatal("failed to seed mongodb repository", zap.Error(err))
		}
		batchRepo = mongoRepo
		snapshotStores = append(snapshotStores, mongoRepo)
	default:
		memRepo, err := memory.NewBatchRepository(memory.SeedBatches(), baseLogger.Named("repo.memory"))
		if err != nil {
			baseLogger.Fatal("failed to init in-memory repository", zap.Error(err))
		}
		batchRepo = memRepo
	}

	if cfg.Sheets.SpreadsheetID != "" {
		exporter, err := sheets.NewSnapshotExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		snapshotStores = append(snapshotStores, exporter)
		baseLogger.Info("sheets snapshot export enabled")
	}

	alertStore := memory.NewAlertStore(memory.SeedAlerts(time.Now().UTC()))

	trackingSvc := trackingsvc.NewService(batchRepo, baseLogger.Named("svc.tracking"))
	draftingSvc := draftingsvc.NewService(gemini.NewClient(cfg.Gemini), baseLogger.Named("svc.drafting"))
	recallOrchestrator := recallsvc.NewOrchestrator(trackingSvc, draftingSvc, alertStore, cfg.Recall.RollbackOnFailure, baseLogger.Named("svc.recall"))
	inspectionSvc := inspectionsvc.NewService(trackingSvc, draftingSvc, alertStore, baseLogger.Named("svc.inspection"))

	engine := router.New(router.Handlers{
		Batches:     handlers.NewBatchHandler(trackingSvc, baseLogger.Named("handlers.batches")),
		Alerts:      handlers.NewAlertHandler(alertStore, baseLogger.Named("handlers.alerts")),
		Recalls:     handlers.NewRecallHandler(recallOrchestrator, baseLogger.Named("handlers.recalls")),
		Drafts:      handlers.NewDraftHandler(draftingSvc, alertStore, baseLogger.Named("handlers.drafts")),
		Inspections: handlers.NewInspectionHandler(inspectionSvc, baseLogger.Named("handlers.inspections")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Snapshot, trackingSvc, snapshotStores, alertStore, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
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
