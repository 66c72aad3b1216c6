package catalog

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

func includeInactive(r *http.Request) bool {
	return r.URL.Query().Get("include_inactive") == "true"
}

func parseIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// ---------- Missions ----------

func (h *Handler) CreateMission(w http.ResponseWriter, r *http.Request) {
	var req MissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	mission, err := h.svc.CreateMission(r.Context(), req.Title, req.PointsReward, activeOrDefault(req.Active))
	if err != nil {
		response.InternalError(w)
		return
	}
	response.Created(w, mission)
}

func (h *Handler) UpdateMission(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		response.BadRequest(w, "invalid id")
		return
	}

	var req MissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	mission := &Mission{ID: id, Title: req.Title, PointsReward: req.PointsReward, Active: activeOrDefault(req.Active)}
	if err := h.svc.UpdateMission(r.Context(), mission); err != nil {
		writeCatalogError(w, err)
		return
	}
	response.OK(w, mission)
}

func (h *Handler) ListMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := h.svc.ListMissions(r.Context(), includeInactive(r))
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, missions)
}

// ---------- Rewards ----------

func (h *Handler) CreateReward(w http.ResponseWriter, r *http.Request) {
	var req RewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	reward, err := h.svc.CreateReward(r.Context(), req.Name, req.Description, req.Category, req.PointCost, activeOrDefault(req.Active))
	if err != nil {
		response.InternalError(w)
		return
	}
	response.Created(w, reward)
}

func (h *Handler) UpdateReward(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		response.BadRequest(w, "invalid id")
		return
	}

	var req RewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	reward := &Reward{ID: id, Name: req.Name, Description: req.Description, Category: req.Category, PointCost: req.PointCost, Active: activeOrDefault(req.Active)}
	if err := h.svc.UpdateReward(r.Context(), reward); err != nil {
		writeCatalogError(w, err)
		return
	}
	response.OK(w, reward)
}

func (h *Handler) ListRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.svc.ListRewards(r.Context(), includeInactive(r))
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, rewards)
}

// ---------- Checklist items ----------

func (h *Handler) CreateChecklistItem(w http.ResponseWriter, r *http.Request) {
	var req ChecklistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	var target *uuid.UUID
	if req.TargetMemberID != "" {
		id, err := uuid.Parse(req.TargetMemberID)
		if err != nil {
			response.BadRequest(w, "invalid target_member_id")
			return
		}
		target = &id
	}

	item, err := h.svc.CreateChecklistItem(r.Context(), req.Content, target, req.DeductionPoints, activeOrDefault(req.Active))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	response.Created(w, item)
}

func (h *Handler) UpdateChecklistItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		response.BadRequest(w, "invalid id")
		return
	}

	var req ChecklistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	var target *uuid.UUID
	if req.TargetMemberID != "" {
		targetID, err := uuid.Parse(req.TargetMemberID)
		if err != nil {
			response.BadRequest(w, "invalid target_member_id")
			return
		}
		target = &targetID
	}

	item := &ChecklistItem{ID: id, Content: req.Content, TargetMemberID: target, DeductionPoints: req.DeductionPoints, Active: activeOrDefault(req.Active)}
	if err := h.svc.UpdateChecklistItem(r.Context(), item); err != nil {
		writeCatalogError(w, err)
		return
	}
	response.OK(w, item)
}

// ListChecklistItems serves two views: with member_id, the active items
// applicable to that member; without, the full administrative list.
func (h *Handler) ListChecklistItems(w http.ResponseWriter, r *http.Request) {
	if s := r.URL.Query().Get("member_id"); s != "" {
		memberID, err := uuid.Parse(s)
		if err != nil {
			response.BadRequest(w, "invalid member_id")
			return
		}
		items, err := h.svc.ListActiveChecklistItems(r.Context(), memberID)
		if err != nil {
			response.InternalError(w)
			return
		}
		response.OK(w, items)
		return
	}

	items, err := h.svc.ListChecklistItems(r.Context(), includeInactive(r))
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, items)
}

func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "catalog entry not found")
	case errors.Is(err, ErrTargetMemberNotFound):
		response.NotFound(w, "target member not found")
	default:
		response.InternalError(w)
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/missions", func(r chi.Router) {
		r.Get("/", h.ListMissions)
		r.Post("/", h.CreateMission)
		r.Put("/{id}", h.UpdateMission)
	})

	r.Route("/rewards", func(r chi.Router) {
		r.Get("/", h.ListRewards)
		r.Post("/", h.CreateReward)
		r.Put("/{id}", h.UpdateReward)
	})

	r.Route("/checklist-items", func(r chi.Router) {
		r.Get("/", h.ListChecklistItems)
		r.Post("/", h.CreateChecklistItem)
		r.Put("/{id}", h.UpdateChecklistItem)
	})

	return r
}
