package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, m *Member) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO members (id, display_name)
		VALUES ($1, $2)
		RETURNING current_points, created_at, updated_at
	`, m.ID, m.DisplayName).Scan(&m.CurrentPoints, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

// GetByID returns nil when the id does not resolve.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	var m Member
	err := r.db.GetContext(ctx, &m, `
		SELECT id, display_name, current_points, created_at, updated_at FROM members WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

// List returns all members with their balances, ordered by display name,
// the family overview order.
func (r *Repository) List(ctx context.Context) ([]Member, error) {
	members := []Member{}
	err := r.db.SelectContext(ctx, &members, `
		SELECT id, display_name, current_points, created_at, updated_at
		FROM members
		ORDER BY display_name
	`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}
