package checklist

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

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

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	memberID, _ := uuid.Parse(req.MemberID)
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		response.BadRequest(w, "invalid date")
		return
	}

	outcomes := make(map[uuid.UUID]bool, len(req.Outcomes))
	for rawID, passed := range req.Outcomes {
		itemID, err := uuid.Parse(rawID)
		if err != nil {
			response.BadRequest(w, "invalid checklist item id: "+rawID)
			return
		}
		outcomes[itemID] = passed
	}

	result, err := h.svc.Submit(r.Context(), memberID, date, outcomes)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			response.NotFound(w, "member not found")
		case errors.Is(err, ErrUnknownItem):
			response.BadRequest(w, "outcome references an unknown checklist item")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resultResponse(result))
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(r.URL.Query().Get("member_id"))
	if err != nil {
		response.BadRequest(w, "invalid member_id")
		return
	}

	if s := r.URL.Query().Get("date"); s != "" {
		date, err := time.Parse(dateLayout, s)
		if err != nil {
			response.BadRequest(w, "invalid date")
			return
		}
		result, err := h.svc.Get(r.Context(), memberID, date)
		if err != nil {
			response.InternalError(w)
			return
		}
		if result == nil {
			response.NotFound(w, "no result for this member and date")
			return
		}
		response.OK(w, resultResponse(result))
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			response.BadRequest(w, "invalid limit")
			return
		}
		limit = n
	}

	results, err := h.svc.ListByMember(r.Context(), memberID, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, resultListResponse(results))
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/submissions", h.Submit)
	r.Get("/results", h.Results)
	return r
}
