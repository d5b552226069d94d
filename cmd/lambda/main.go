// cmd/lambda/main.go
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"whiskey-reviewer/internal/common/config"
	"whiskey-reviewer/internal/common/dataset"
	"whiskey-reviewer/internal/common/logger"
	"whiskey-reviewer/internal/common/metrics"
	"whiskey-reviewer/internal/models"
	getreview "whiskey-reviewer/internal/workers/skill/get-review"
)

// The dataset is loaded once per cold start and shared by every invocation
// the runtime routes to this process.
func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	store, err := dataset.Open(context.Background(), cfg)
	if err != nil {
		zapLog.Fatal("dataset load failed", zap.String("source", cfg.Dataset.Source), zap.Error(err))
	}
	metrics.DatasetRecords.Set(float64(store.Len()))
	log.Info("dataset loaded", map[string]interface{}{"summary": dataset.Summary(store)})

	handler := getreview.NewHandler(getreview.LoadConfig(cfg), store, log, nil)

	lambda.Start(func(ctx context.Context, req models.SkillRequest) (*models.ResponseEnvelope, error) {
		return handler.Execute(ctx, &req)
	})
}
