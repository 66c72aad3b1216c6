package ledger

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind classifies balance-changing transactions.
type TransactionKind string

const (
	KindMissionGrant    TransactionKind = "mission_grant"
	KindManualGrant     TransactionKind = "manual_grant"
	KindManualDeduction TransactionKind = "manual_deduction"
	KindChecklistScore  TransactionKind = "checklist_score"
)

// TransactionRecord is an append-only audit row. Once written it is never
// mutated or deleted; member balances must always equal the net of these rows
// minus redemption spends.
type TransactionRecord struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	MemberID    uuid.UUID       `db:"member_id" json:"member_id"`
	Kind        TransactionKind `db:"kind" json:"kind"`
	MissionID   *uuid.UUID      `db:"mission_id" json:"mission_id,omitempty"`
	DeltaPoints int             `db:"delta_points" json:"delta_points"`
	Note        string          `db:"note" json:"note"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// RedemptionRecord is an append-only record of points spent on a reward.
type RedemptionRecord struct {
	ID          uuid.UUID `db:"id" json:"id"`
	MemberID    uuid.UUID `db:"member_id" json:"member_id"`
	RewardID    uuid.UUID `db:"reward_id" json:"reward_id"`
	PointsSpent int       `db:"points_spent" json:"points_spent"`
	RedeemedAt  time.Time `db:"redeemed_at" json:"redeemed_at"`
}

// History entry kinds.
const (
	HistoryKindPointChange = "point_change"
	HistoryKindRedemption  = "redemption"
)

// HistoryEntry is a normalized view over both record kinds. Member, mission
// and reward names are resolved at read time; unresolvable references show
// up as "unknown" instead of failing the query.
type HistoryEntry struct {
	Date        time.Time `db:"occurred_at" json:"date"`
	MemberName  string    `db:"member_name" json:"member_name"`
	Description string    `db:"description" json:"description"`
	Kind        string    `db:"kind" json:"kind"`
}

// Mission is the ledger-side view of a mission definition.
type Mission struct {
	ID           uuid.UUID
	Title        string
	PointsReward int
	Active       bool
}

// Reward is the ledger-side view of a reward definition.
type Reward struct {
	ID        uuid.UUID
	Name      string
	PointCost int
	Active    bool
}
