package ledger

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

// Handler wires HTTP endpoints for payments and salaries.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes returns the route set for one ledger kind, so the router can
// mount the same handler under /finance/payments and /finance/salaries.
func (h *Handler) MountRoutes(kind Kind) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.list(kind))
		r.Post("/", h.create(kind))
		r.Get("/owners/{ownerID}", h.ownerStatement(kind))
		r.Get("/{id}", h.show)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
		r.Post("/{id}/transactions", h.addTransaction)
		r.Post("/{id}/overdue", h.setOverdue(true))
		r.Delete("/{id}/overdue", h.setOverdue(false))
	}
}

func (h *Handler) list(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.service.ListSummaries(r.Context(), kind)
		if err != nil {
			h.logger.Error("list ledger summaries", slog.Any("error", err), slog.String("kind", string(kind)))
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, result)
	}
}

type createRecordRequest struct {
	OwnerID     int64   `json:"owner_id" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	TotalAmount float64 `json:"total_amount" validate:"gte=0"`
}

func (h *Handler) create(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRecordRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
			return
		}
		if err := h.validate.Struct(req); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		rec, err := h.service.CreateRecord(r.Context(), CreateRecordInput{
			OwnerID:     req.OwnerID,
			Kind:        kind,
			Description: req.Description,
			TotalAmount: req.TotalAmount,
		})
		if err != nil {
			h.logger.Error("create ledger record", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, Summarize(*rec))
	}
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	summary, err := h.service.GetSummary(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

type updateRecordRequest struct {
	Description string  `json:"description" validate:"required"`
	TotalAmount float64 `json:"total_amount" validate:"gte=0"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	var req updateRecordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.UpdateRecord(r.Context(), id, req.Description, req.TotalAmount); err != nil {
		h.logger.Error("update ledger record", slog.Any("error", err), slog.String("id", id.String()))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteRecord(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addTransactionRequest struct {
	Amount float64   `json:"amount" validate:"required,gt=0"`
	PaidAt time.Time `json:"paid_at"`
	Method string    `json:"method" validate:"required"`
}

func (h *Handler) addTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	var req addTransactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	tx, err := h.service.AddTransaction(r.Context(), AddTransactionInput{
		RecordID: id,
		Amount:   req.Amount,
		PaidAt:   req.PaidAt,
		Method:   req.Method,
	})
	if err != nil {
		h.logger.Error("add ledger transaction", slog.Any("error", err), slog.String("record_id", id.String()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tx)
}

func (h *Handler) setOverdue(overdue bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := recordID(w, r)
		if !ok {
			return
		}
		if err := h.service.SetOverdue(r.Context(), id, overdue); err != nil {
			httpx.RespondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) ownerStatement(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := strconv.ParseInt(chi.URLParam(r, "ownerID"), 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Owner ID", "owner id must be numeric")
			return
		}
		stmt, err := h.service.OwnerStatement(r.Context(), kind, ownerID)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, stmt)
	}
}

func recordID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Record ID", "record id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
