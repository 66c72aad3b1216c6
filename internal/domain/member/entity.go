package member

import (
	"time"

	"github.com/google/uuid"
)

// Member is a tracked individual with a point balance. The balance is
// mutated exclusively by the ledger; this domain only reads it.
type Member struct {
	ID            uuid.UUID `db:"id" json:"id"`
	DisplayName   string    `db:"display_name" json:"display_name"`
	CurrentPoints int       `db:"current_points" json:"current_points"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Reward is the member-side view of a redeemable reward, shown on the
// member dashboard.
type Reward struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PointCost   int       `json:"point_cost"`
}

// Dashboard is a member's profile together with the reward shop.
type Dashboard struct {
	Member  *Member  `json:"member"`
	Rewards []Reward `json:"rewards"`
}
