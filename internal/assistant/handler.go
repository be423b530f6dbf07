package assistant

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

// Handler exposes the drafting endpoint.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes attaches the assistant endpoints to a router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/drafts", h.compose)
}

type draftRequestBody struct {
	Kind          string  `json:"kind" validate:"required"`
	RecipientName string  `json:"recipient_name"`
	Subject       string  `json:"subject"`
	AmountDue     float64 `json:"amount_due" validate:"gte=0"`
	Category      string  `json:"category"`
	Notes         string  `json:"notes"`
}

func (h *Handler) compose(w http.ResponseWriter, r *http.Request) {
	var req draftRequestBody
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	draft, err := h.service.ComposeDraft(r.Context(), DraftRequest{
		Kind:          DraftKind(req.Kind),
		RecipientName: req.RecipientName,
		Subject:       req.Subject,
		AmountDue:     req.AmountDue,
		Category:      req.Category,
		Notes:         req.Notes,
	})
	if err != nil {
		h.logger.Error("compose draft", slog.Any("error", err), slog.String("kind", req.Kind))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, draft)
}
