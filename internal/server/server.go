// Package server exposes the skill handler over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"whiskey-reviewer/internal/common/config"
	"whiskey-reviewer/internal/common/errors"
	"whiskey-reviewer/internal/common/logger"
	"whiskey-reviewer/internal/common/validation"
	"whiskey-reviewer/internal/models"
)

const maxEventBytes = 1 << 20

// eventSchema only checks the outer shape; the handler decides on intent and
// slots.
const eventSchema = `{
	"type": "object",
	"required": ["request"],
	"properties": {
		"version": {"type": "string"},
		"request": {
			"type": "object",
			"properties": {
				"type": {"type": "string"},
				"requestId": {"type": "string"},
				"intent": {"type": ["object", "null"]}
			}
		}
	}
}`

var eventValidator = validation.MustCompile(eventSchema)

// Skill executes one skill event.
type Skill interface {
	Execute(ctx context.Context, req *models.SkillRequest) (*models.ResponseEnvelope, error)
}

// Check is a named readiness probe.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

type Server struct {
	cfg    config.ServerConfig
	skill  Skill
	logger logger.Logger
	checks []Check
	router chi.Router
	http   *http.Server
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

func New(cfg config.ServerConfig, skill Skill, log logger.Logger, checks ...Check) *Server {
	s := &Server{
		cfg:    cfg,
		skill:  skill,
		logger: log.WithFields(map[string]interface{}{"component": "http"}),
		checks: checks,
	}
	s.router = s.routes()
	s.http = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	if len(s.cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/alexa", s.handleSkill)

	return r
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{"address": s.cfg.Address})
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleSkill(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBytes))
	if err != nil {
		s.writeError(w, errors.NewInvalidEventError(fmt.Sprintf("read body: %v", err), nil))
		return
	}

	result, err := eventValidator.ValidateJSON(raw)
	if err != nil {
		s.writeError(w, errors.NewInvalidEventError(fmt.Sprintf("decode body: %v", err), nil))
		return
	}
	if !result.Valid {
		s.writeError(w, errors.NewInvalidEventError(strings.Join(result.GetErrorMessages(), "; "), nil))
		return
	}

	var req models.SkillRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		s.writeError(w, errors.NewInvalidEventError(fmt.Sprintf("decode body: %v", err), nil))
		return
	}

	envelope, err := s.skill.Execute(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for _, c := range s.checks {
		if err := c.Fn(r.Context()); err != nil {
			status = http.StatusServiceUnavailable
			results[c.Name] = err.Error()
			continue
		}
		results[c.Name] = "ok"
	}
	writeJSON(w, status, results)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	stdErr := errors.Normalize(err)

	status := http.StatusInternalServerError
	switch stdErr.Code {
	case errors.ErrCodeInvalidIntent, errors.ErrCodeInvalidEvent:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).Error("skill request failed", nil)
	}

	writeJSON(w, status, errorBody{Error: errorDetail{Code: stdErr.Code, Message: stdErr.Message}})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug("http request", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
			"requestId":   middleware.GetReqID(r.Context()),
		})
	})
}
