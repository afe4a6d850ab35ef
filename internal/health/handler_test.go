// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReadiness(t *testing.T) {
	healthy := pingFunc(func(context.Context) error { return nil })
	broken := pingFunc(func(context.Context) error { return errors.New("down") })

	tests := []struct {
		name     string
		deps     []Dependency
		status   int
		expected string
	}{
		{
			name:     "all healthy",
			deps:     []Dependency{{"database", healthy}, {"redis", healthy}},
			status:   http.StatusOK,
			expected: "ok",
		},
		{
			name:     "redis down",
			deps:     []Dependency{{"database", healthy}, {"redis", broken}},
			status:   http.StatusServiceUnavailable,
			expected: "degraded",
		},
		{
			name:     "checker missing",
			deps:     []Dependency{{"database", nil}},
			status:   http.StatusServiceUnavailable,
			expected: "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.deps...)
			r := chi.NewRouter()
			h.RegisterRoutes(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.status, rec.Code)

			var body ReadinessResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expected, body.Status)
			require.Len(t, body.Checks, len(tt.deps))
			assert.Equal(t, tt.deps[0].Name, body.Checks[0].Name)
		})
	}
}

func TestShutdownFailsProbes(t *testing.T) {
	h := NewHandler()
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	h.SetShutdown()

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "shutting_down")
	}
}
