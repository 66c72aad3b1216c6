package member

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RewardCatalog supplies the active reward shop for the member dashboard.
type RewardCatalog interface {
	ListActiveRewards(ctx context.Context) ([]Reward, error)
}

// Store persists member profiles. Balances are read-only here.
type Store interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*Member, error)
	List(ctx context.Context) ([]Member, error)
}

type Service struct {
	store   Store
	rewards RewardCatalog
}

func NewService(store Store, rewards RewardCatalog) *Service {
	return &Service{store: store, rewards: rewards}
}

func (s *Service) Create(ctx context.Context, displayName string) (*Member, error) {
	m := &Member{ID: uuid.New(), DisplayName: displayName}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	log.Info().Str("member_id", m.ID.String()).Str("display_name", displayName).Msg("member created")
	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Member, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]Member, error) {
	return s.store.List(ctx)
}

// Dashboard returns the member's profile with the active reward shop.
func (s *Service) Dashboard(ctx context.Context, id uuid.UUID) (*Dashboard, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rewards, err := s.rewards.ListActiveRewards(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Member: m, Rewards: rewards}, nil
}
