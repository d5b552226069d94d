// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"whiskey-reviewer/internal/common/logger"
)

// JobHandler matches the Zeebe job handler signature.
type JobHandler func(client worker.JobClient, job entities.Job)

// WorkerOptions are the per-task job worker settings.
type WorkerOptions struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
}

// StartWorker opens a job worker for taskType. It returns nil when the worker
// is disabled.
func StartWorker(c *Client, taskType string, opts WorkerOptions, handler JobHandler, log logger.Logger) worker.JobWorker {
	fields := map[string]interface{}{"taskType": taskType}
	if !opts.Enabled {
		log.Info("worker disabled", fields)
		return nil
	}

	jobWorker := c.GetClient().NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(handler)).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Open()

	fields["maxJobsActive"] = opts.MaxJobsActive
	fields["timeout_ms"] = opts.Timeout.Milliseconds()
	log.Info("worker started", fields)
	return jobWorker
}
