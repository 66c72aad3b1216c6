package checklist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

// Upsert stores the result for (member, date), fully replacing any prior row
// for the same key. Identical inputs produce an identical stored row.
func (r *Repository) Upsert(ctx context.Context, result *DailyResult) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO daily_checklist_results (member_id, check_date, score, violated_item_ids, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (member_id, check_date)
		DO UPDATE SET score = EXCLUDED.score, violated_item_ids = EXCLUDED.violated_item_ids, updated_at = now()
		RETURNING updated_at
	`, result.MemberID, result.CheckDate, result.Score, pq.Array(result.ViolatedItemIDs)).Scan(&result.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrMemberNotFound
		}
		return fmt.Errorf("upsert daily result: %w", err)
	}
	return nil
}

// Get returns the stored result for (member, date), or nil when none exists.
func (r *Repository) Get(ctx context.Context, memberID uuid.UUID, date time.Time) (*DailyResult, error) {
	var result DailyResult
	err := r.db.QueryRowxContext(ctx, `
		SELECT member_id, check_date, score, violated_item_ids, updated_at
		FROM daily_checklist_results
		WHERE member_id = $1 AND check_date = $2
	`, memberID, date).Scan(&result.MemberID, &result.CheckDate, &result.Score, pq.Array(&result.ViolatedItemIDs), &result.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get daily result: %w", err)
	}
	return &result, nil
}

// ListByMember returns results for one member, most recent date first.
func (r *Repository) ListByMember(ctx context.Context, memberID uuid.UUID, limit int) ([]DailyResult, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT member_id, check_date, score, violated_item_ids, updated_at
		FROM daily_checklist_results
		WHERE member_id = $1
		ORDER BY check_date DESC
		LIMIT $2
	`, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("list daily results: %w", err)
	}
	defer rows.Close()

	results := []DailyResult{}
	for rows.Next() {
		var result DailyResult
		if err := rows.Scan(&result.MemberID, &result.CheckDate, &result.Score, pq.Array(&result.ViolatedItemIDs), &result.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan daily result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list daily results: %w", err)
	}
	return results, nil
}
