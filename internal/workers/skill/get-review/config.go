// internal/workers/skill/get-review/config.go
package getreview

import (
	"time"

	"whiskey-reviewer/internal/common/config"
)

// Config is the get-review job worker configuration. Timeout also bounds each
// job's completion round trip.
type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	wc := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Enabled:       wc.Enabled,
		MaxJobsActive: wc.MaxJobsActive,
		Timeout:       config.GetDuration(wc.Timeout),
	}
}
