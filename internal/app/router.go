package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vestiaire-fc/vestiaire/internal/assistant"
	"github.com/vestiaire-fc/vestiaire/internal/auth"
	"github.com/vestiaire-fc/vestiaire/internal/export"
	"github.com/vestiaire-fc/vestiaire/internal/ledger"
	"github.com/vestiaire-fc/vestiaire/internal/matches"
	"github.com/vestiaire-fc/vestiaire/internal/observability"
	"github.com/vestiaire-fc/vestiaire/internal/roster"
	"github.com/vestiaire-fc/vestiaire/internal/shared"
	standingshttp "github.com/vestiaire-fc/vestiaire/internal/standings/http"
	"github.com/vestiaire-fc/vestiaire/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager

	AuthHandler      *auth.Handler
	LedgerHandler    *ledger.Handler
	StandingsHandler *standingshttp.Handler
	MatchHandler     *matches.Handler
	RosterHandler    *roster.Handler
	ExportHandler    *export.Handler
	AssistantHandler *assistant.Handler
	JobHandler       *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with the dashboard defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)

		r.Route("/finance", func(r chi.Router) {
			r.Route("/payments", params.LedgerHandler.MountRoutes(ledger.KindPayment))
			r.Route("/salaries", params.LedgerHandler.MountRoutes(ledger.KindSalary))
		})

		params.StandingsHandler.MountRoutes(r)

		r.Route("/matches", params.MatchHandler.MountRoutes)
		r.Route("/roster", params.RosterHandler.MountRoutes)
		r.Route("/export", params.ExportHandler.MountRoutes)
		r.Route("/assistant", params.AssistantHandler.MountRoutes)

		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
