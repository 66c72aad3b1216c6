package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) beginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

// lockMember reads the member's balance under a row lock, serializing all
// concurrent ledger operations against the same member for the duration of
// the surrounding transaction. Operations on different members do not block
// each other.
func (r *Repository) lockMember(ctx context.Context, tx *sqlx.Tx, memberID uuid.UUID) (int, error) {
	var balance int
	err := tx.GetContext(ctx, &balance, `SELECT current_points FROM members WHERE id = $1 FOR UPDATE`, memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrMemberNotFound
	}
	if err != nil {
		return 0, pgError("lock member row", err)
	}
	return balance, nil
}

func (r *Repository) updateBalance(ctx context.Context, tx *sqlx.Tx, memberID uuid.UUID, balance int) error {
	_, err := tx.ExecContext(ctx, `UPDATE members SET current_points = $1, updated_at = now() WHERE id = $2`, balance, memberID)
	if err != nil {
		return pgError("update member balance", err)
	}
	return nil
}

// Apply commits a signed balance change and its audit record as one unit.
// Either both the balance update and the transaction row are visible after
// the call, or neither is.
func (r *Repository) Apply(ctx context.Context, memberID uuid.UUID, kind TransactionKind, delta int, missionID *uuid.UUID, note string) (int, *TransactionRecord, error) {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return 0, nil, pgError("begin transaction", err)
	}
	defer tx.Rollback()

	balance, err := r.lockMember(ctx, tx, memberID)
	if err != nil {
		return 0, nil, err
	}

	nextBalance := balance + delta
	if nextBalance < 0 {
		return 0, nil, ErrInsufficientBalance
	}

	if err := r.updateBalance(ctx, tx, memberID, nextBalance); err != nil {
		return 0, nil, err
	}

	record := &TransactionRecord{
		ID:          uuid.New(),
		MemberID:    memberID,
		Kind:        kind,
		MissionID:   missionID,
		DeltaPoints: delta,
		Note:        note,
	}
	// clock_timestamp(), not now(): now() is transaction-start time, and a
	// transaction that started earlier but acquired the row lock later would
	// timestamp before its competitor, inverting history order.
	err = tx.GetContext(ctx, &record.CreatedAt, `
		INSERT INTO point_transactions (id, member_id, kind, mission_id, delta_points, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, clock_timestamp())
		RETURNING created_at
	`, record.ID, record.MemberID, record.Kind, record.MissionID, record.DeltaPoints, record.Note)
	if err != nil {
		return 0, nil, pgError("insert transaction record", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, pgError("commit transaction", err)
	}

	return nextBalance, record, nil
}

// Redeem decrements the balance by pointsSpent and appends the redemption
// record in the same transaction.
func (r *Repository) Redeem(ctx context.Context, memberID, rewardID uuid.UUID, pointsSpent int) (int, *RedemptionRecord, error) {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return 0, nil, pgError("begin transaction", err)
	}
	defer tx.Rollback()

	balance, err := r.lockMember(ctx, tx, memberID)
	if err != nil {
		return 0, nil, err
	}

	if balance < pointsSpent {
		return 0, nil, ErrInsufficientBalance
	}
	nextBalance := balance - pointsSpent

	if err := r.updateBalance(ctx, tx, memberID, nextBalance); err != nil {
		return 0, nil, err
	}

	record := &RedemptionRecord{
		ID:          uuid.New(),
		MemberID:    memberID,
		RewardID:    rewardID,
		PointsSpent: pointsSpent,
	}
	err = tx.GetContext(ctx, &record.RedeemedAt, `
		INSERT INTO reward_redemptions (id, member_id, reward_id, points_spent, redeemed_at)
		VALUES ($1, $2, $3, $4, clock_timestamp())
		RETURNING redeemed_at
	`, record.ID, record.MemberID, record.RewardID, record.PointsSpent)
	if err != nil {
		return 0, nil, pgError("insert redemption record", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, pgError("commit transaction", err)
	}

	return nextBalance, record, nil
}

// History merges transaction and redemption records by timestamp descending.
// Names are resolved by LEFT JOIN so a dangling reference degrades to
// "unknown" rather than dropping the row or failing the query.
func (r *Repository) History(ctx context.Context, memberID *uuid.UUID, limit int) ([]HistoryEntry, error) {
	entries := []HistoryEntry{}
	err := r.db.SelectContext(ctx, &entries, `
		SELECT x.occurred_at,
		       COALESCE(m.display_name, 'unknown') AS member_name,
		       x.description,
		       x.kind
		FROM (
			SELECT t.created_at AS occurred_at,
			       t.member_id,
			       CASE WHEN t.kind = 'mission_grant' THEN COALESCE(mi.title, 'unknown') ELSE t.note END
			           || ' (' || CASE WHEN t.delta_points > 0 THEN '+' ELSE '' END || t.delta_points::text || ' BP)' AS description,
			       'point_change' AS kind
			FROM point_transactions t
			LEFT JOIN missions mi ON mi.id = t.mission_id
			UNION ALL
			SELECT rr.redeemed_at,
			       rr.member_id,
			       '''' || COALESCE(rw.name, 'unknown') || ''' redeemed (-' || rr.points_spent::text || ' BP)',
			       'redemption'
			FROM reward_redemptions rr
			LEFT JOIN rewards rw ON rw.id = rr.reward_id
		) x
		LEFT JOIN members m ON m.id = x.member_id
		WHERE $1::uuid IS NULL OR x.member_id = $1
		ORDER BY x.occurred_at DESC
		LIMIT $2
	`, memberID, limit)
	if err != nil {
		return nil, pgError("query history", err)
	}
	return entries, nil
}

// pgError translates driver-level failures into domain errors. Serialization
// failures and deadlocks mean a concurrent write on the same member won the
// race; the caller retries, the ledger never does.
func pgError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01":
			return ErrConflict
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
