// Package monitor serves run health and counters over HTTP.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatsSource is satisfied by *metrics.Metrics.
type StatsSource interface {
	GetStats() map[string]interface{}
	Healthy() bool
}

type Server struct {
	stats StatsSource
}

func NewServer(stats StatsSource) *Server {
	return &Server{stats: stats}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/metrics", s.metrics)
}

func (s *Server) health(c *gin.Context) {
	stats := s.stats.GetStats()

	status, code := "ok", http.StatusOK
	if !s.stats.Healthy() {
		status, code = "error", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (s *Server) metrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.stats.GetStats())
}

// Start listens on addr until ctx is cancelled.
func Start(ctx context.Context, addr string, stats StatsSource) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	NewServer(stats).RegisterRoutes(r)

	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Starting monitoring server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Monitoring server error", "error", err)
	}
}
