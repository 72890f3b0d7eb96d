package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/soldal/booking-platform/internal/api/response"
)

// Pinger is the connectivity probe satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	db Pinger
}

func NewHealth(db Pinger) *Health {
	return &Health{db: db}
}

// Get godoc
//
//	@Summary		Backing-store connectivity probe
//	@Tags			Health
//	@Success		200 {object} map[string]string
//	@Failure		503 {object} map[string]string
//	@Router			/api/health [get]
func (h *Health) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		response.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "unhealthy",
			"database": err.Error(),
		})
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"database": "ok",
	})
}

// Head answers liveness checks without touching the store.
func (h *Health) Head(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
