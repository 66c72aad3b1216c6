package catalog

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

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// ---------- Missions ----------

func (r *Repository) CreateMission(ctx context.Context, m *Mission) error {
	err := r.db.GetContext(ctx, &m.CreatedAt, `
		INSERT INTO missions (id, title, points_reward, active)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, m.ID, m.Title, m.PointsReward, m.Active)
	if err != nil {
		return fmt.Errorf("create mission: %w", err)
	}
	return nil
}

func (r *Repository) UpdateMission(ctx context.Context, m *Mission) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE missions SET title = $1, points_reward = $2, active = $3 WHERE id = $4
	`, m.Title, m.PointsReward, m.Active, m.ID)
	if err != nil {
		return fmt.Errorf("update mission: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetMission returns nil when the id does not resolve.
func (r *Repository) GetMission(ctx context.Context, id uuid.UUID) (*Mission, error) {
	var m Mission
	err := r.db.GetContext(ctx, &m, `
		SELECT id, title, points_reward, active, created_at FROM missions WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get mission: %w", err)
	}
	return &m, nil
}

func (r *Repository) ListMissions(ctx context.Context, includeInactive bool) ([]Mission, error) {
	missions := []Mission{}
	err := r.db.SelectContext(ctx, &missions, `
		SELECT id, title, points_reward, active, created_at
		FROM missions
		WHERE $1 OR active
		ORDER BY title
	`, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}
	return missions, nil
}

// ---------- Rewards ----------

func (r *Repository) CreateReward(ctx context.Context, rw *Reward) error {
	err := r.db.GetContext(ctx, &rw.CreatedAt, `
		INSERT INTO rewards (id, name, description, category, point_cost, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, rw.ID, rw.Name, rw.Description, rw.Category, rw.PointCost, rw.Active)
	if err != nil {
		return fmt.Errorf("create reward: %w", err)
	}
	return nil
}

func (r *Repository) UpdateReward(ctx context.Context, rw *Reward) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE rewards SET name = $1, description = $2, category = $3, point_cost = $4, active = $5 WHERE id = $6
	`, rw.Name, rw.Description, rw.Category, rw.PointCost, rw.Active, rw.ID)
	if err != nil {
		return fmt.Errorf("update reward: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetReward returns nil when the id does not resolve.
func (r *Repository) GetReward(ctx context.Context, id uuid.UUID) (*Reward, error) {
	var rw Reward
	err := r.db.GetContext(ctx, &rw, `
		SELECT id, name, description, category, point_cost, active, created_at FROM rewards WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reward: %w", err)
	}
	return &rw, nil
}

// ListRewards orders by point cost, the shop display order.
func (r *Repository) ListRewards(ctx context.Context, includeInactive bool) ([]Reward, error) {
	rewards := []Reward{}
	err := r.db.SelectContext(ctx, &rewards, `
		SELECT id, name, description, category, point_cost, active, created_at
		FROM rewards
		WHERE $1 OR active
		ORDER BY point_cost
	`, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	return rewards, nil
}

// ---------- Checklist items ----------

func (r *Repository) CreateChecklistItem(ctx context.Context, item *ChecklistItem) error {
	err := r.db.GetContext(ctx, &item.CreatedAt, `
		INSERT INTO checklist_items (id, content, target_member_id, deduction_points, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, item.ID, item.Content, item.TargetMemberID, item.DeductionPoints, item.Active)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrTargetMemberNotFound
		}
		return fmt.Errorf("create checklist item: %w", err)
	}
	return nil
}

func (r *Repository) UpdateChecklistItem(ctx context.Context, item *ChecklistItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE checklist_items SET content = $1, target_member_id = $2, deduction_points = $3, active = $4 WHERE id = $5
	`, item.Content, item.TargetMemberID, item.DeductionPoints, item.Active, item.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrTargetMemberNotFound
		}
		return fmt.Errorf("update checklist item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActiveChecklistItems returns the active items applicable to the member:
// common items plus items targeting exactly this member.
func (r *Repository) ListActiveChecklistItems(ctx context.Context, memberID uuid.UUID) ([]ChecklistItem, error) {
	items := []ChecklistItem{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, content, target_member_id, deduction_points, active, created_at
		FROM checklist_items
		WHERE active AND (target_member_id IS NULL OR target_member_id = $1)
		ORDER BY created_at
	`, memberID)
	if err != nil {
		return nil, fmt.Errorf("list active checklist items: %w", err)
	}
	return items, nil
}

func (r *Repository) ListChecklistItems(ctx context.Context, includeInactive bool) ([]ChecklistItem, error) {
	items := []ChecklistItem{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, content, target_member_id, deduction_points, active, created_at
		FROM checklist_items
		WHERE $1 OR active
		ORDER BY created_at
	`, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list checklist items: %w", err)
	}
	return items, nil
}
