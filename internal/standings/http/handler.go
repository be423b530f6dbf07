// Package http exposes the standings endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
	"github.com/vestiaire-fc/vestiaire/internal/standings"
)

// Handler serves league tables.
type Handler struct {
	logger  *slog.Logger
	service *standings.Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *standings.Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches standings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/standings", func(r chi.Router) {
		r.Get("/{category}", h.table)
	})
}

func (h *Handler) table(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	table, err := h.service.Table(r.Context(), category)
	if err != nil {
		h.logger.Error("compute standings", slog.Any("error", err), slog.String("category", category))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, table)
}
