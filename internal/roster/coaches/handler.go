package coaches

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
	"github.com/vestiaire-fc/vestiaire/internal/roster/shared"
	internalshared "github.com/vestiaire-fc/vestiaire/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

type listResponse struct {
	Coaches []Coach                   `json:"coaches"`
	Meta    internalshared.Pagination `json:"meta"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := shared.FromQuery(r)
	out, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list coaches", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Coaches: out, Meta: internalshared.NewPagination(filters.Page, filters.Limit, total)})
}

type coachRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Role     string `json:"role"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Active   bool   `json:"active"`
}

func (req coachRequest) toModel() Coach {
	return Coach{
		FullName: req.FullName,
		Category: req.Category,
		Role:     req.Role,
		Email:    req.Email,
		Phone:    req.Phone,
		Active:   req.Active,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req coachRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	c, err := h.service.Create(r.Context(), req.toModel())
	if err != nil {
		h.logger.Error("create coach", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := coachID(w, r)
	if !ok {
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := coachID(w, r)
	if !ok {
		return
	}
	var req coachRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.Update(r.Context(), id, req.toModel()); err != nil {
		h.logger.Error("update coach", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := coachID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func coachID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Coach ID", "coach id must be numeric")
		return 0, false
	}
	return id, true
}
