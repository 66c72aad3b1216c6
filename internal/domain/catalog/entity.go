package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Mission is a predefined task that pays a fixed point reward when completed.
type Mission struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	PointsReward int       `db:"points_reward" json:"points_reward"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Reward is a shop item redeemable at a fixed point cost.
type Reward struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	PointCost   int       `db:"point_cost" json:"point_cost"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ChecklistItem is a daily behavioral rule with a deduction weight.
// A nil TargetMemberID means the item is common to every member.
type ChecklistItem struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Content         string     `db:"content" json:"content"`
	TargetMemberID  *uuid.UUID `db:"target_member_id" json:"target_member_id,omitempty"`
	DeductionPoints int        `db:"deduction_points" json:"deduction_points"`
	Active          bool       `db:"active" json:"active"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}
