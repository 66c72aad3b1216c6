package checklist

import (
	"time"

	"github.com/google/uuid"
)

// Item is the scoring-side view of an active checklist item applicable to a
// member on the submission date.
type Item struct {
	ID              uuid.UUID
	Content         string
	DeductionPoints int
}

// DailyResult is the stored outcome of one member's checklist for one
// calendar date. Keyed by (member, date); re-submission replaces the whole
// row, it never accumulates.
type DailyResult struct {
	MemberID        uuid.UUID   `db:"member_id" json:"member_id"`
	CheckDate       time.Time   `db:"check_date" json:"check_date"`
	Score           int         `db:"score" json:"score"`
	ViolatedItemIDs []uuid.UUID `db:"violated_item_ids" json:"violated_item_ids"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}
