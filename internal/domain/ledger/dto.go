package ledger

import (
	"time"

	"github.com/google/uuid"
)

// ApplyTransactionRequest for POST /ledger/transactions
type ApplyTransactionRequest struct {
	MemberID  string `json:"member_id" validate:"required,uuid"`
	Kind      string `json:"kind" validate:"required,txkind"`
	Points    int    `json:"points" validate:"gte=0"`
	MissionID string `json:"mission_id,omitempty" validate:"omitempty,uuid"`
	Note      string `json:"note,omitempty" validate:"max=500"`
}

// RedeemRequest for POST /ledger/redemptions
type RedeemRequest struct {
	MemberID string `json:"member_id" validate:"required,uuid"`
	RewardID string `json:"reward_id" validate:"required,uuid"`
}

// TransactionResponse carries the new balance with its audit record
type TransactionResponse struct {
	Balance int                `json:"balance"`
	Record  *TransactionRecord `json:"record"`
}

// RedemptionResponse carries the new balance with its redemption record
type RedemptionResponse struct {
	Balance int               `json:"balance"`
	Record  *RedemptionRecord `json:"record"`
}

// HistoryEntryResponse is one normalized audit log line
type HistoryEntryResponse struct {
	Date        time.Time `json:"date"`
	MemberName  string    `json:"member_name"`
	Description string    `json:"description"`
	Kind        string    `json:"kind"`
}

func historyResponse(entries []HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{
			Date:        e.Date,
			MemberName:  e.MemberName,
			Description: e.Description,
			Kind:        e.Kind,
		})
	}
	return out
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
