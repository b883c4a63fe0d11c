package handlers

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type StatsHandler struct {
	DB  StatsStore
	Log *zap.Logger
}

// Get handles GET /admin-stats (admin only).
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.DB.Stats(r.Context())
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.JSON(w, r, stats)
}
