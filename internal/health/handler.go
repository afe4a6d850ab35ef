// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"
)

const probeTimeout = 5 * time.Second

type Checker interface {
	Ping(ctx context.Context) error
}

// Dependency is one backing service probed by the readiness check.
type Dependency struct {
	Name    string
	Checker Checker
}

type state int32

const (
	stateServing state = iota
	stateShuttingDown
)

func (s state) String() string {
	switch s {
	case stateShuttingDown:
		return "shutting_down"
	default:
		return "ok"
	}
}

type Handler struct {
	deps  []Dependency
	state atomic.Int32
}

func NewHandler(deps ...Dependency) *Handler {
	return &Handler{deps: deps}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) current() state {
	return state(h.state.Load())
}

// Liveness only fails once shutdown has begun.
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if s := h.current(); s == stateShuttingDown {
		writeJSON(w, r, http.StatusServiceUnavailable, StatusResponse{Status: s.String()})
		return
	}
	writeJSON(w, r, http.StatusOK, StatusResponse{Status: stateServing.String()})
}

// Readiness pings every dependency concurrently and reports each result.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if s := h.current(); s != stateServing {
		writeJSON(w, r, http.StatusServiceUnavailable, StatusResponse{Status: s.String()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	checks := h.probe(ctx)

	resp := ReadinessResponse{Status: "ok", Checks: checks}
	code := http.StatusOK
	for _, c := range checks {
		if !c.Healthy {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, r, code, resp)
}

func (h *Handler) probe(ctx context.Context) []HealthCheck {
	checks := make([]HealthCheck, len(h.deps))

	var g errgroup.Group
	for i, dep := range h.deps {
		g.Go(func() error {
			checks[i] = check(ctx, dep)
			return nil
		})
	}
	//nolint:errcheck // probes record failures in their HealthCheck
	_ = g.Wait()

	return checks
}

func check(ctx context.Context, dep Dependency) HealthCheck {
	if dep.Checker == nil {
		return HealthCheck{
			Name:    dep.Name,
			Message: dep.Name + " checker not configured",
		}
	}

	start := time.Now()
	err := dep.Checker.Ping(ctx)

	result := HealthCheck{
		Name:    dep.Name,
		Healthy: err == nil,
		Latency: time.Since(start).String(),
	}
	if err != nil {
		result.Message = "ping failed"
	}
	return result
}

// SetShutdown moves the handler into its terminal draining state.
func (h *Handler) SetShutdown() {
	h.state.Store(int32(stateShuttingDown))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	render.Status(r, status)
	render.JSON(w, r, data)
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}
