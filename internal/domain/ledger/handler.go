package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) ApplyTransaction(w http.ResponseWriter, r *http.Request) {
	var req ApplyTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		response.BadRequest(w, "invalid member_id")
		return
	}
	missionID, err := parseOptionalUUID(req.MissionID)
	if err != nil {
		response.BadRequest(w, "invalid mission_id")
		return
	}

	balance, record, err := h.svc.Apply(r.Context(), memberID, TransactionKind(req.Kind), req.Points, missionID, req.Note)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	response.Created(w, TransactionResponse{Balance: balance, Record: record})
}

func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	memberID, _ := uuid.Parse(req.MemberID)
	rewardID, _ := uuid.Parse(req.RewardID)

	balance, record, err := h.svc.Redeem(r.Context(), memberID, rewardID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	response.Created(w, RedemptionResponse{Balance: balance, Record: record})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	var memberID *uuid.UUID
	if s := r.URL.Query().Get("member_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			response.BadRequest(w, "invalid member_id")
			return
		}
		memberID = &id
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

	entries, err := h.svc.History(r.Context(), memberID, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, historyResponse(entries))
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMemberNotFound):
		response.NotFound(w, "member not found")
	case errors.Is(err, ErrMissionNotFound):
		response.NotFound(w, "mission not found")
	case errors.Is(err, ErrRewardNotFound):
		response.NotFound(w, "reward not found")
	case errors.Is(err, ErrInsufficientBalance):
		response.Conflict(w, "insufficient point balance")
	case errors.Is(err, ErrInvalidOperation):
		response.BadRequest(w, "invalid ledger operation")
	case errors.Is(err, ErrConflict):
		response.Conflict(w, "concurrent update, retry the operation")
	default:
		response.InternalError(w)
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/transactions", h.ApplyTransaction)
	r.Post("/redemptions", h.Redeem)
	r.Get("/history", h.History)
	return r
}
