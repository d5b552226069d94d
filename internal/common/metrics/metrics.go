// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	SkillRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_requests_total",
			Help: "Skill requests handled, by intent and outcome",
		},
		[]string{"intent", "outcome"},
	)

	SkillRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skill_request_duration_seconds",
			Help:    "Time spent building a skill response",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		},
		[]string{"outcome"},
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Dram records loaded at startup",
		},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)
