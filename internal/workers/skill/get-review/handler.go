package getreview

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"whiskey-reviewer/internal/common/errors"
	"whiskey-reviewer/internal/common/logger"
	"whiskey-reviewer/internal/common/metrics"
	"whiskey-reviewer/internal/common/observability"
	"whiskey-reviewer/internal/models"
)

const TaskType = "get-review"

// Finder resolves a spoken dram name.
type Finder interface {
	Find(name string) (models.Dram, bool)
}

type Handler struct {
	config *Config
	drams  Finder
	logger logger.Logger
	obs    *observability.Observability
	jobErr *errors.JobErrorHandler
}

// NewHandler wires the router to a dataset. obs may be nil.
func NewHandler(config *Config, drams Finder, log logger.Logger, obs *observability.Observability) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		drams:  drams,
		logger: l,
		obs:    obs,
		jobErr: errors.NewJobErrorHandler(l),
	}
}

// Execute routes one skill event. A dram missing from the dataset yields a
// normal apology response; an unrecognized intent or a malformed event is
// returned as an error and no envelope is built.
func (h *Handler) Execute(ctx context.Context, req *models.SkillRequest) (*models.ResponseEnvelope, error) {
	start := time.Now()

	envelope, intent, outcome, err := h.route(req)

	// Labels use the parsed intent; the caller-supplied name only goes to logs.
	label := intent.String()
	metrics.SkillRequestsTotal.WithLabelValues(label, outcome).Inc()
	metrics.SkillRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	h.obs.RecordReview(ctx, label, outcome, time.Since(start))

	fields := map[string]interface{}{
		"requestId": requestID(req),
		"intent":    intentName(req),
		"outcome":   outcome,
	}
	if err != nil {
		h.logger.WithError(err).Warn("skill request rejected", fields)
		return nil, err
	}
	h.logger.Info("skill request handled", fields)
	return envelope, nil
}

func (h *Handler) route(req *models.SkillRequest) (*models.ResponseEnvelope, Intent, string, error) {
	if req == nil || req.Request.Intent == nil {
		return nil, IntentUnknown, metrics.OutcomeError,
			errors.NewInvalidEventError("request.intent is missing", ErrInvalidEvent)
	}

	name := req.Request.Intent.Name
	intent, err := ParseIntent(name)
	if err != nil {
		return nil, IntentUnknown, metrics.OutcomeError, err
	}

	switch intent {
	case IntentGetReview:
		spoken, ok := req.Request.Intent.SlotValue(DramSlot)
		if !ok {
			return nil, intent, metrics.OutcomeError,
				errors.NewInvalidEventError(fmt.Sprintf("slot %q is missing or unfilled", DramSlot), ErrInvalidEvent)
		}

		dram, found := h.drams.Find(spoken)
		if !found {
			return models.BuildResponse(NotFoundText(spoken), true), intent, metrics.OutcomeNotFound, nil
		}
		return models.BuildResponse(Synthesize(dram), true), intent, metrics.OutcomeFound, nil
	}

	return nil, IntentUnknown, metrics.OutcomeError, errors.NewInvalidIntentError(name, ErrInvalidIntent)
}

func intentName(req *models.SkillRequest) string {
	if req == nil || req.Request.Intent == nil {
		return ""
	}
	return req.Request.Intent.Name
}

// Handle serves the get-review BPMN service task. Job variables carry the
// skill event; the envelope is returned under skillResponse.
func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.GetKey(),
		"workflowKey": job.GetProcessInstanceKey(),
	})

	req, err := parseJob(job)
	if err != nil {
		h.jobErr.HandleJobError(ctx, client, job, err)
		return
	}

	envelope, err := h.Execute(ctx, req)
	if err != nil {
		h.jobErr.HandleJobError(ctx, client, job, err)
		return
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(JobOutput{SkillResponse: envelope})
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err.Error()})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err.Error()})
	}
}

func parseJob(job entities.Job) (*models.SkillRequest, error) {
	var req models.SkillRequest
	if err := json.Unmarshal([]byte(job.GetVariables()), &req); err != nil {
		return nil, errors.NewInvalidEventError(fmt.Sprintf("parse job variables: %v", err), ErrInvalidEvent)
	}
	return &req, nil
}

func requestID(req *models.SkillRequest) string {
	if req != nil && req.Request.RequestID != "" {
		return req.Request.RequestID
	}
	return uuid.NewString()
}
