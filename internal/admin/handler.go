// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/articlehub/internal/core"
)

var errArticleStats = errors.New("article stats unavailable")

type ArticleCounter interface {
	Counts(ctx context.Context) (published, drafts int, err error)
}

type HandlerConfig struct {
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
	DBPing     func(ctx context.Context) error
	Articles   ArticleCounter
}

// Handler serves operator-facing statistics. Every source is optional; a
// missing one is reported as absent rather than failing the whole response.
type Handler struct {
	cfg HandlerConfig
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/stats", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.GetSystemStats)
		r.Get("/articles", h.GetArticleStats)
	})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	core.OK(w, r, SystemStatsResponse{
		Articles: h.articleStats(ctx),
		Database: DatabaseStatus{
			Healthy: pingOK(ctx, h.cfg.DBPing),
			Stats:   h.dbPoolStats(),
		},
		Redis: RedisStatus{
			Healthy: pingOK(ctx, h.cfg.RedisPing),
			Stats:   h.redisPoolStats(),
		},
		Runtime: readRuntimeStats(),
	})
}

func (h *Handler) GetArticleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.articleStats(r.Context())
	if stats == nil {
		core.InternalServerError(w, r, errArticleStats)
		return
	}

	core.OK(w, r, stats)
}

func (h *Handler) articleStats(ctx context.Context) *ArticleStats {
	if h.cfg.Articles == nil {
		return nil
	}

	published, drafts, err := h.cfg.Articles.Counts(ctx)
	if err != nil {
		slog.WarnContext(ctx, "article stats unavailable", "error", err)
		return nil
	}

	return &ArticleStats{
		Published: published,
		Drafts:    drafts,
		Total:     published + drafts,
	}
}

func (h *Handler) dbPoolStats() *DBPoolStats {
	if h.cfg.DBStats == nil {
		return nil
	}

	s := h.cfg.DBStats()
	return &DBPoolStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration.String(),
	}
}

func (h *Handler) redisPoolStats() *RedisPoolStats {
	if h.cfg.RedisStats == nil {
		return nil
	}

	s := h.cfg.RedisStats()
	return &RedisPoolStats{
		Hits:       s.Hits,
		Misses:     s.Misses,
		Timeouts:   s.Timeouts,
		TotalConns: s.TotalConns,
		IdleConns:  s.IdleConns,
	}
}

// pingOK treats an unconfigured probe as healthy.
func pingOK(ctx context.Context, ping func(context.Context) error) bool {
	if ping == nil {
		return true
	}
	return ping(ctx) == nil
}

func readRuntimeStats() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAlloc:     mem.Alloc,
		NumGC:        mem.NumGC,
	}
}

type SystemStatsResponse struct {
	Articles *ArticleStats  `json:"articles,omitempty"`
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
}

type ArticleStats struct {
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
	Total     int `json:"total"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
