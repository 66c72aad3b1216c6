package member

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/familybank/familybank-api/internal/pkg/response"
	"github.com/familybank/familybank-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	m, err := h.svc.Create(r.Context(), req.DisplayName)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.Created(w, m)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid id")
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeMemberError(w, err)
		return
	}
	response.OK(w, m)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, members)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid id")
		return
	}

	dashboard, err := h.svc.Dashboard(r.Context(), id)
	if err != nil {
		writeMemberError(w, err)
		return
	}
	response.OK(w, dashboard)
}

func writeMemberError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		response.NotFound(w, "member not found")
		return
	}
	response.InternalError(w)
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/dashboard", h.Dashboard)
	return r
}
