// cmd/skill-server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"whiskey-reviewer/internal/common/camunda"
	"whiskey-reviewer/internal/common/config"
	"whiskey-reviewer/internal/common/dataset"
	"whiskey-reviewer/internal/common/logger"
	"whiskey-reviewer/internal/common/metrics"
	"whiskey-reviewer/internal/common/observability"
	"whiskey-reviewer/internal/server"
	getreview "whiskey-reviewer/internal/workers/skill/get-review"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("observability init failed, continuing without OTel metrics", zap.Error(err))
		obs = nil
	}
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Dataset ---
	store, err := dataset.Open(ctx, cfg)
	if err != nil {
		zapLog.Fatal("dataset load failed",
			zap.String("source", cfg.Dataset.Source),
			zap.Error(err),
		)
	}
	metrics.DatasetRecords.Set(float64(store.Len()))
	if dups := store.Duplicates(); len(dups) > 0 {
		log.Warn("duplicate dram names, first record wins", map[string]interface{}{"names": dups})
	}
	log.Info("dataset loaded", map[string]interface{}{
		"source":  cfg.Dataset.Source,
		"summary": dataset.Summary(store),
	})

	workerCfg := getreview.LoadConfig(cfg)
	handler := getreview.NewHandler(workerCfg, store, log, obs)

	checks := []server.Check{{Name: "dataset", Fn: store.Ready}}

	// --- Optional Zeebe worker ---
	if cfg.Camunda.Enabled {
		zeebe, err := camunda.NewClient(ctx, cfg.Camunda, camunda.DefaultRetryConfig)
		if err != nil {
			zapLog.Fatal("zeebe client failed", zap.Error(err))
		}
		defer zeebe.Close()

		jobWorker := camunda.StartWorker(zeebe, getreview.TaskType, camunda.WorkerOptions{
			Enabled:       workerCfg.Enabled,
			MaxJobsActive: workerCfg.MaxJobsActive,
			Timeout:       workerCfg.Timeout,
		}, handler.Handle, log)
		if jobWorker != nil {
			defer jobWorker.Close()
		}
		checks = append(checks, server.Check{Name: "zeebe", Fn: zeebe.HealthCheck})
	}

	// --- HTTP ---
	srv := server.New(cfg.Server, handler, log, checks...)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			zapLog.Error("http server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		zapLog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http shutdown failed", zap.Error(err))
	}
	zapLog.Info("skill server stopped")
}
