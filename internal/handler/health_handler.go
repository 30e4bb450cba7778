// internal/handler/health_handler.go
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/unclebandit/recommend-gateway/internal/logging"
	"github.com/unclebandit/recommend-gateway/internal/repository"
)

// HealthHandler reports whether the record store is reachable.
type HealthHandler struct {
	Repo    repository.CustomerRepositoryInterface
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler with the given repository
func NewHealthHandler(repo repository.CustomerRepositoryInterface, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{Repo: repo, Logger: logger, Timeout: 2 * time.Second}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := h.Repo.Ping(ctx); err != nil {
		logging.FromContext(r.Context(), h.Logger).Warn().Err(err).Msg("health check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
		return
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
