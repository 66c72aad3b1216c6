package checklist

import (
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// SubmitRequest for POST /checklist/submissions. Outcomes maps item id to
// "passed"; items left out count as passed, so an empty map is a clean day.
type SubmitRequest struct {
	MemberID string          `json:"member_id" validate:"required,uuid"`
	Date     string          `json:"date" validate:"required,checkdate"`
	Outcomes map[string]bool `json:"outcomes"`
}

// ResultResponse represents a stored daily result in the API
type ResultResponse struct {
	MemberID        uuid.UUID   `json:"member_id"`
	Date            string      `json:"date"`
	Score           int         `json:"score"`
	ViolatedItemIDs []uuid.UUID `json:"violated_item_ids"`
}

func resultResponse(result *DailyResult) *ResultResponse {
	return &ResultResponse{
		MemberID:        result.MemberID,
		Date:            result.CheckDate.Format(dateLayout),
		Score:           result.Score,
		ViolatedItemIDs: result.ViolatedItemIDs,
	}
}

func resultListResponse(results []DailyResult) []ResultResponse {
	out := make([]ResultResponse, 0, len(results))
	for i := range results {
		out = append(out, *resultResponse(&results[i]))
	}
	return out
}
