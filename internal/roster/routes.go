// Package roster groups the club reference data: players, coaches,
// opponents and team categories.
package roster

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vestiaire-fc/vestiaire/internal/roster/categories"
	"github.com/vestiaire-fc/vestiaire/internal/roster/coaches"
	"github.com/vestiaire-fc/vestiaire/internal/roster/opponents"
	"github.com/vestiaire-fc/vestiaire/internal/roster/players"
)

// Handler aggregates the roster sub-resources behind one mount point.
type Handler struct {
	players    *players.Handler
	coaches    *coaches.Handler
	opponents  *opponents.Handler
	categories *categories.Handler
}

// NewHandler wires every roster sub-resource against the shared pool.
func NewHandler(logger *slog.Logger, pool *pgxpool.Pool) *Handler {
	return &Handler{
		players:    players.NewHandler(logger, players.NewService(players.NewRepository(pool))),
		coaches:    coaches.NewHandler(logger, coaches.NewService(coaches.NewRepository(pool))),
		opponents:  opponents.NewHandler(logger, opponents.NewService(opponents.NewRepository(pool))),
		categories: categories.NewHandler(logger, categories.NewService(categories.NewRepository(pool))),
	}
}

// MountRoutes attaches every sub-resource under the roster prefix.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/players", h.players.MountRoutes)
	r.Route("/coaches", h.coaches.MountRoutes)
	r.Route("/opponents", h.opponents.MountRoutes)
	r.Route("/categories", h.categories.MountRoutes)
}
