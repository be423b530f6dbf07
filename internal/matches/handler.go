package matches

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

// Handler wires HTTP endpoints for fixtures, results and contributions.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes attaches the match endpoints to a router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
	r.Put("/{id}/result", h.enterResult)
	r.Post("/{id}/contributions", h.addContribution)
	r.Get("/{id}/stats", h.stats)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Category: r.URL.Query().Get("category"),
		Kind:     MatchKind(r.URL.Query().Get("kind")),
	}
	out, err := h.service.List(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

type matchRequest struct {
	Category   string    `json:"category" validate:"required"`
	Kind       string    `json:"kind" validate:"required"`
	OpponentID *int64    `json:"opponent_id"`
	HomeTeam   string    `json:"home_team" validate:"required"`
	AwayTeam   string    `json:"away_team" validate:"required"`
	Location   string    `json:"location"`
	KickoffAt  time.Time `json:"kickoff_at" validate:"required"`
}

func (req matchRequest) toInput() CreateInput {
	return CreateInput{
		Category:   req.Category,
		Kind:       MatchKind(req.Kind),
		OpponentID: req.OpponentID,
		HomeTeam:   req.HomeTeam,
		AwayTeam:   req.AwayTeam,
		Location:   req.Location,
		KickoffAt:  req.KickoffAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	m, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		h.logger.Error("create match", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, m)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(w, r)
	if !ok {
		return
	}
	m, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(w, r)
	if !ok {
		return
	}
	var req matchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	m, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		h.logger.Error("update match", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type resultRequest struct {
	HomeScore *int `json:"home_score" validate:"required,gte=0"`
	AwayScore *int `json:"away_score" validate:"required,gte=0"`
}

func (h *Handler) enterResult(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(w, r)
	if !ok {
		return
	}
	var req resultRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	m, err := h.service.EnterResult(r.Context(), id, *req.HomeScore, *req.AwayScore)
	if err != nil {
		h.logger.Error("enter match result", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

type contributionRequest struct {
	PlayerID *int64 `json:"player_id"`
	Name     string `json:"name" validate:"required"`
	Side     string `json:"side" validate:"required"`
	Goals    int    `json:"goals" validate:"gte=0"`
	Assists  int    `json:"assists" validate:"gte=0"`
}

func (h *Handler) addContribution(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(w, r)
	if !ok {
		return
	}
	var req contributionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	c, err := h.service.AddContribution(r.Context(), id, Contribution{
		PlayerID: req.PlayerID,
		Name:     req.Name,
		Side:     Side(req.Side),
		Goals:    req.Goals,
		Assists:  req.Assists,
	})
	if err != nil {
		h.logger.Error("add match contribution", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(w, r)
	if !ok {
		return
	}
	stats, err := h.service.Stats(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func matchID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Match ID", "match id must be numeric")
		return 0, false
	}
	return id, true
}
