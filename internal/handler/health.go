package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/game-store/internal/apperror"
)

// pingTimeout bounds the database check so a wedged database cannot hang
// the probe.
const pingTimeout = 2 * time.Second

// Pinger reports whether a backing store answers. *sqlite.DB implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// HealthHandler serves /health.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HandleHealth godoc
// @Summary Health check
// @Description Reports whether the service and its database are reachable.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", slog.String("error", err.Error()))
		writeError(w, r, h.logger, apperror.Unavailable("database unavailable"))
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
