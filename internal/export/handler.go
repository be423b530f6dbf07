package export

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vestiaire-fc/vestiaire/internal/ledger"
	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
	"github.com/vestiaire-fc/vestiaire/internal/standings"
)

// Renderer converts HTML to PDF bytes.
type Renderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// LedgerStatements provides per-owner ledger statements.
type LedgerStatements interface {
	OwnerStatement(ctx context.Context, kind ledger.Kind, ownerID int64) (*ledger.OwnerSummary, error)
}

// StandingsTables provides computed league tables.
type StandingsTables interface {
	Table(ctx context.Context, category string) (standings.Table, error)
}

// Handler streams PDF exports of ledger statements and league tables.
type Handler struct {
	logger    *slog.Logger
	renderer  Renderer
	ledger    LedgerStatements
	standings StandingsTables
	clubName  string
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, renderer Renderer, ledgerSvc LedgerStatements, standingsSvc StandingsTables, clubName string) *Handler {
	return &Handler{logger: logger, renderer: renderer, ledger: ledgerSvc, standings: standingsSvc, clubName: clubName}
}

// MountRoutes attaches the export endpoints to a router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/payments/owners/{ownerID}", h.statement(ledger.KindPayment))
	r.Get("/salaries/owners/{ownerID}", h.statement(ledger.KindSalary))
	r.Get("/standings/{category}", h.standingsTable)
}

func (h *Handler) statement(kind ledger.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := strconv.ParseInt(chi.URLParam(r, "ownerID"), 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Owner ID", "owner id must be numeric")
			return
		}
		stmt, err := h.ledger.OwnerStatement(r.Context(), kind, ownerID)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		html, err := StatementHTML(h.clubName, kind, stmt)
		if err != nil {
			h.logger.Error("render statement html", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		h.servePDF(w, r, html, "releve-"+strconv.FormatInt(ownerID, 10)+".pdf")
	}
}

func (h *Handler) standingsTable(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	table, err := h.standings.Table(r.Context(), category)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	html, err := StandingsHTML(h.clubName, &table)
	if err != nil {
		h.logger.Error("render standings html", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.servePDF(w, r, html, "classement-"+category+".pdf")
}

func (h *Handler) servePDF(w http.ResponseWriter, r *http.Request, html, filename string) {
	pdf, err := h.renderer.RenderHTML(r.Context(), html)
	if err != nil {
		h.logger.Error("gotenberg render", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
