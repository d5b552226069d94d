package getreview

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"whiskey-reviewer/internal/common/config"
	"whiskey-reviewer/internal/common/dataset"
	"whiskey-reviewer/internal/common/errors"
	"whiskey-reviewer/internal/common/logger"
	"whiskey-reviewer/internal/common/metrics"
	"whiskey-reviewer/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       5 * time.Second,
	}
}

func createAppConfig() *config.Config {
	return &config.Config{
		Workers: map[string]config.WorkerConfig{
			TaskType: {Enabled: true, MaxJobsActive: 3, Timeout: 2000},
		},
	}
}

func createTestStore() *dataset.Store {
	return dataset.NewStore([]models.Dram{
		{Name: "Lagavulin 16", AverageRating: 92, AveragePrice: models.NewPrice(85.0)},
		{Name: "MysteryDram", AverageRating: 55, AveragePrice: models.NewPrice(-1)},
		{Name: "Macallan", AverageRating: 86, AveragePrice: models.NewPrice(65)},
	})
}

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), createTestStore(), logger.NewTestLogger(t), nil)
}

type mockFinder struct {
	mock.Mock
}

func (m *mockFinder) Find(name string) (models.Dram, bool) {
	args := m.Called(name)
	return args.Get(0).(models.Dram), args.Bool(1)
}

func createRequest(intent, dram string) *models.SkillRequest {
	return &models.SkillRequest{
		Request: models.RequestBody{
			Type:      "IntentRequest",
			RequestID: "amzn1.echo-api.request.test",
			Intent: &models.Intent{
				Name:  intent,
				Slots: map[string]models.Slot{DramSlot: {Name: DramSlot, Value: dram}},
			},
		},
	}
}

func createMockJob(key int64, variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "whiskey-review",
		ElementId:          "Activity_GetReview",
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Retries:            3,
		Variables:          variables,
	}}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		request  *models.SkillRequest
		wantText string
	}{
		{
			name:     "known dram with price",
			request:  createRequest("GetReview", "Lagavulin 16"),
			wantText: "The Lagavulin 16 is a highly regarded dram, with an average rating of 92. It's also an average-priced bottle at $85 for a fifth.",
		},
		{
			name:     "known dram without price",
			request:  createRequest("GetReview", "MysteryDram"),
			wantText: "The MysteryDram is a decent dram, with an average rating of 55.",
		},
		{
			name:     "unknown dram",
			request:  createRequest("GetReview", "Nonexistent"),
			wantText: "Sorry, I don't have an information on Nonexistent.",
		},
		{
			name:     "lookup ignores case but output uses dataset name",
			request:  createRequest("GetReview", "macallan"),
			wantText: "The Macallan is a respectable dram, with an average rating of 86. It's also an average-priced bottle at $65 for a fifth.",
		},
		{
			name:     "apology keeps spoken casing",
			request:  createRequest("GetReview", "old PULTENEY"),
			wantText: "Sorry, I don't have an information on old PULTENEY.",
		},
	}

	handler := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := handler.Execute(context.Background(), tt.request)
			require.NoError(t, err)
			require.NotNil(t, envelope)

			assert.Equal(t, "1.0", envelope.Version)
			assert.NotNil(t, envelope.SessionAttributes)
			assert.Empty(t, envelope.SessionAttributes)
			assert.Equal(t, "PlainText", envelope.Response.OutputSpeech.Type)
			assert.Equal(t, tt.wantText, envelope.Response.OutputSpeech.Text)
			assert.True(t, envelope.Response.ShouldEndSession)
		})
	}
}

func TestHandler_Execute_KnownDramPrefix(t *testing.T) {
	handler := createTestHandler(t)

	for _, d := range createTestStore().All() {
		t.Run(d.Name, func(t *testing.T) {
			envelope, err := handler.Execute(context.Background(), createRequest("GetReview", strings.ToUpper(d.Name)))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(envelope.Response.OutputSpeech.Text, "The "+d.Name+" is a "))
			assert.True(t, envelope.Response.ShouldEndSession)
		})
	}
}

func TestHandler_Execute_PassesSpokenNameThrough(t *testing.T) {
	finder := new(mockFinder)
	finder.On("Find", "  Lagavulin 16 ").Return(models.Dram{}, false).Once()

	handler := NewHandler(createTestConfig(), finder, logger.NewNoOpLogger(), nil)
	envelope, err := handler.Execute(context.Background(), createRequest("GetReview", "  Lagavulin 16 "))
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I don't have an information on   Lagavulin 16 .", envelope.Response.OutputSpeech.Text)
	finder.AssertExpectations(t)
}

func TestHandler_Execute_InvalidIntentSkipsLookup(t *testing.T) {
	finder := new(mockFinder)

	handler := NewHandler(createTestConfig(), finder, logger.NewNoOpLogger(), nil)
	_, err := handler.Execute(context.Background(), createRequest("Stop", "Lagavulin 16"))
	require.Error(t, err)
	finder.AssertNotCalled(t, "Find", mock.Anything)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_InvalidIntent(t *testing.T) {
	handler := createTestHandler(t)

	for _, intent := range []string{"Stop", "getreview", "AMAZON.HelpIntent", ""} {
		t.Run(intent, func(t *testing.T) {
			envelope, err := handler.Execute(context.Background(), createRequest(intent, "Lagavulin 16"))
			require.Error(t, err)
			assert.Nil(t, envelope)
			assert.True(t, stderrors.Is(err, ErrInvalidIntent))
			assert.Equal(t, errors.ErrCodeInvalidIntent, errors.CodeOf(err))
		})
	}
}

func TestHandler_Execute_InvalidEvent(t *testing.T) {
	handler := createTestHandler(t)

	tests := []struct {
		name    string
		request *models.SkillRequest
	}{
		{name: "nil request", request: nil},
		{name: "no intent", request: &models.SkillRequest{Request: models.RequestBody{Type: "LaunchRequest"}}},
		{
			name: "unfilled dram slot",
			request: &models.SkillRequest{Request: models.RequestBody{
				Intent: &models.Intent{
					Name:  "GetReview",
					Slots: map[string]models.Slot{DramSlot: {Name: DramSlot}},
				},
			}},
		},
		{
			name: "no dram slot",
			request: &models.SkillRequest{Request: models.RequestBody{
				Intent: &models.Intent{Name: "GetReview"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := handler.Execute(context.Background(), tt.request)
			require.Error(t, err)
			assert.Nil(t, envelope)
			assert.True(t, stderrors.Is(err, ErrInvalidEvent))
			assert.Equal(t, errors.ErrCodeInvalidEvent, errors.CodeOf(err))
		})
	}
}

func TestHandler_Execute_RecordsMetrics(t *testing.T) {
	handler := createTestHandler(t)

	found := metrics.SkillRequestsTotal.WithLabelValues("GetReview", metrics.OutcomeFound)
	notFound := metrics.SkillRequestsTotal.WithLabelValues("GetReview", metrics.OutcomeNotFound)
	rejected := metrics.SkillRequestsTotal.WithLabelValues("Unknown", metrics.OutcomeError)
	beforeFound, beforeNotFound, beforeRejected := testutil.ToFloat64(found), testutil.ToFloat64(notFound), testutil.ToFloat64(rejected)

	_, _ = handler.Execute(context.Background(), createRequest("GetReview", "Macallan"))
	_, _ = handler.Execute(context.Background(), createRequest("GetReview", "Nope"))
	_, _ = handler.Execute(context.Background(), createRequest("Stop", "Macallan"))

	assert.Equal(t, beforeFound+1, testutil.ToFloat64(found))
	assert.Equal(t, beforeNotFound+1, testutil.ToFloat64(notFound))
	assert.Equal(t, beforeRejected+1, testutil.ToFloat64(rejected))
}

func TestHandler_Execute_UntrustedIntentNamesShareOneSeries(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestStore(), logger.NewNoOpLogger(), nil)
	unknown := metrics.SkillRequestsTotal.WithLabelValues("Unknown", metrics.OutcomeError)

	_, _ = handler.Execute(context.Background(), createRequest("Bogus", "Macallan"))
	seriesBefore := testutil.CollectAndCount(metrics.SkillRequestsTotal)
	countBefore := testutil.ToFloat64(unknown)

	for i := 0; i < 50; i++ {
		_, _ = handler.Execute(context.Background(), createRequest(fmt.Sprintf("Bogus%d", i), "Macallan"))
	}

	assert.Equal(t, seriesBefore, testutil.CollectAndCount(metrics.SkillRequestsTotal))
	assert.Equal(t, countBefore+50, testutil.ToFloat64(unknown))
}

// ==========================
// Intent Parsing Tests
// ==========================

func TestParseIntent(t *testing.T) {
	intent, err := ParseIntent("GetReview")
	require.NoError(t, err)
	assert.Equal(t, IntentGetReview, intent)
	assert.Equal(t, "GetReview", intent.String())

	intent, err = ParseIntent("Stop")
	require.Error(t, err)
	assert.Equal(t, IntentUnknown, intent)
	assert.Equal(t, "Unknown", intent.String())
}

// ==========================
// Job Variable Tests
// ==========================

func TestParseJob(t *testing.T) {
	job := createMockJob(42, `{
		"request": {
			"requestId": "req-42",
			"intent": {"name": "GetReview", "slots": {"dram": {"value": "Lagavulin 16"}}}
		}
	}`)

	req, err := parseJob(job)
	require.NoError(t, err)
	require.NotNil(t, req.Request.Intent)
	assert.Equal(t, "GetReview", req.Request.Intent.Name)
	assert.Equal(t, "req-42", requestID(req))

	envelope, err := createTestHandler(t).Execute(context.Background(), req)
	require.NoError(t, err)

	raw, err := json.Marshal(JobOutput{SkillResponse: envelope})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"skillResponse":{"version":"1.0"`)
}

func TestParseJob_UnfilledSlot(t *testing.T) {
	req, err := parseJob(createMockJob(8, `{"request": {"intent": {"name": "GetReview", "slots": {"dram": {"name": "dram"}}}}}`))
	require.NoError(t, err)

	envelope, err := createTestHandler(t).Execute(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, envelope)
	assert.Equal(t, errors.ErrCodeInvalidEvent, errors.CodeOf(err))
}

func TestParseJob_InvalidVariables(t *testing.T) {
	_, err := parseJob(createMockJob(7, `not json`))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidEvent, errors.CodeOf(err))
}

func TestRequestID_GeneratedWhenAbsent(t *testing.T) {
	id := requestID(&models.SkillRequest{})
	assert.Len(t, id, 36)
	assert.NotEqual(t, id, requestID(nil))
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(createAppConfig())
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.MaxJobsActive)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}
