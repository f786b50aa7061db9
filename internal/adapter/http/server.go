package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/airport-control/internal/domain"
	"github.com/couchcryptid/airport-control/internal/tower"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controller is the control-tower surface exposed over HTTP.
type Controller interface {
	Status(ctx context.Context) tower.Status
	Register(ctx context.Context, name string) (tower.PlaneView, bool, error)
	Plane(ctx context.Context, name string) (tower.PlaneView, error)
	Land(ctx context.Context, name string) (string, error)
	TakeOff(ctx context.Context, name string) (string, error)
	ChangeCapacity(ctx context.Context, n int) int
	Forecast(ctx context.Context) string
}

// Server exposes the airport control API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	controller Controller
	logger     *slog.Logger
}

// NewServer creates an HTTP server with ops routes and the airport control API.
func NewServer(addr string, ready sharedobs.ReadinessChecker, controller Controller, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		controller: controller,
		logger:     logger,
	}

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/airport", s.handleStatus)
	r.Put("/airport/capacity", s.handleCapacity)
	r.Get("/airport/forecast", s.handleForecast)

	r.Post("/planes", s.handleRegister)
	r.Get("/planes/{name}", s.handlePlane)
	r.Post("/planes/{name}/land", s.handleLand)
	r.Post("/planes/{name}/take-off", s.handleTakeOff)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.controller.Status(r.Context()))
}

type capacityRequest struct {
	Capacity *int `json:"capacity"`
}

func (s *Server) handleCapacity(w http.ResponseWriter, r *http.Request) {
	var req capacityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Capacity == nil {
		writeError(w, http.StatusBadRequest, "capacity is required")
		return
	}
	if *req.Capacity < 0 {
		writeError(w, http.StatusBadRequest, "capacity must not be negative")
		return
	}
	n := s.controller.ChangeCapacity(r.Context(), *req.Capacity)
	sharedobs.WriteJSON(w, http.StatusOK, map[string]int{"capacity": n})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]string{"forecast": s.controller.Forecast(r.Context())})
}

type registerRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	view, created, err := s.controller.Register(r.Context(), req.Name)
	if err != nil {
		s.writeOperationError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	sharedobs.WriteJSON(w, status, view)
}

func (s *Server) handlePlane(w http.ResponseWriter, r *http.Request) {
	view, err := s.controller.Plane(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeOperationError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) handleLand(w http.ResponseWriter, r *http.Request) {
	msg, err := s.controller.Land(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeOperationError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (s *Server) handleTakeOff(w http.ResponseWriter, r *http.Request) {
	msg, err := s.controller.TakeOff(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeOperationError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (s *Server) writeOperationError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	body := map[string]string{"error": err.Error()}
	if reason, ok := domain.ReasonOf(err); ok {
		body["reason"] = string(reason)
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	sharedobs.WriteJSON(w, status, body)
}

// statusFor maps refusals to HTTP status codes: weather is a transient
// condition (503), every other refusal conflicts with airport state (409).
func statusFor(err error) int {
	switch {
	case errors.Is(err, tower.ErrUnknownPlane):
		return http.StatusNotFound
	case errors.Is(err, tower.ErrInvalidPlaneName):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStormyWeather):
		return http.StatusServiceUnavailable
	}
	if _, ok := domain.ReasonOf(err); ok {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
