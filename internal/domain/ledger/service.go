package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store persists ledger mutations. Every mutating call commits the balance
// change and its audit record atomically or not at all.
type Store interface {
	Apply(ctx context.Context, memberID uuid.UUID, kind TransactionKind, delta int, missionID *uuid.UUID, note string) (int, *TransactionRecord, error)
	Redeem(ctx context.Context, memberID, rewardID uuid.UUID, pointsSpent int) (int, *RedemptionRecord, error)
	History(ctx context.Context, memberID *uuid.UUID, limit int) ([]HistoryEntry, error)
}

// CatalogStore supplies mission and reward definitions. Lookups are
// authoritative at call time; a nil result means the id did not resolve.
type CatalogStore interface {
	GetMission(ctx context.Context, id uuid.UUID) (*Mission, error)
	GetReward(ctx context.Context, id uuid.UUID) (*Reward, error)
}

type Service struct {
	store        Store
	catalog      CatalogStore
	defaultLimit int
	maxLimit     int
}

func NewService(store Store, catalog CatalogStore, defaultLimit, maxLimit int) *Service {
	return &Service{store: store, catalog: catalog, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Apply validates and commits a single signed point change for one member.
// points is the caller-supplied magnitude for manual kinds; the sign is
// implied by the kind. For mission grants the mission's reward value is
// authoritative and points, when supplied, must match it.
func (s *Service) Apply(ctx context.Context, memberID uuid.UUID, kind TransactionKind, points int, missionID *uuid.UUID, note string) (int, *TransactionRecord, error) {
	var delta int

	switch kind {
	case KindMissionGrant:
		if missionID == nil {
			return 0, nil, ErrInvalidOperation
		}
		mission, err := s.catalog.GetMission(ctx, *missionID)
		if err != nil {
			return 0, nil, err
		}
		if mission == nil {
			return 0, nil, ErrMissionNotFound
		}
		if !mission.Active {
			return 0, nil, ErrInvalidOperation
		}
		if points != 0 && points != mission.PointsReward {
			return 0, nil, ErrInvalidOperation
		}
		delta = mission.PointsReward
		if note == "" {
			note = mission.Title
		}

	case KindManualGrant, KindManualDeduction:
		// Deductions go through the manual path only; a mission reference on a
		// deduction is rejected before any balance read.
		if missionID != nil {
			return 0, nil, ErrInvalidOperation
		}
		if points <= 0 || note == "" {
			return 0, nil, ErrInvalidOperation
		}
		delta = points
		if kind == KindManualDeduction {
			delta = -points
		}

	default:
		return 0, nil, ErrInvalidOperation
	}

	balance, record, err := s.store.Apply(ctx, memberID, kind, delta, missionID, note)
	if err != nil {
		return 0, nil, err
	}

	log.Info().
		Str("member_id", memberID.String()).
		Str("kind", string(kind)).
		Int("delta_points", delta).
		Int("balance", balance).
		Msg("ledger transaction applied")

	return balance, record, nil
}

// Redeem exchanges points for an active reward at its fixed cost.
func (s *Service) Redeem(ctx context.Context, memberID, rewardID uuid.UUID) (int, *RedemptionRecord, error) {
	reward, err := s.catalog.GetReward(ctx, rewardID)
	if err != nil {
		return 0, nil, err
	}
	if reward == nil {
		return 0, nil, ErrRewardNotFound
	}
	if !reward.Active {
		return 0, nil, ErrInvalidOperation
	}

	balance, record, err := s.store.Redeem(ctx, memberID, rewardID, reward.PointCost)
	if err != nil {
		return 0, nil, err
	}

	log.Info().
		Str("member_id", memberID.String()).
		Str("reward_id", rewardID.String()).
		Int("points_spent", reward.PointCost).
		Int("balance", balance).
		Msg("reward redeemed")

	return balance, record, nil
}

// History returns the merged, time-ordered audit view for one member, or for
// all members when memberID is nil.
func (s *Service) History(ctx context.Context, memberID *uuid.UUID, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return s.store.History(ctx, memberID, limit)
}
