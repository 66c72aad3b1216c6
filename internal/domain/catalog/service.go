package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Service struct {
	repo  *Repository
	cache *Cache
}

func NewService(repo *Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// ---------- Missions ----------

func (s *Service) CreateMission(ctx context.Context, title string, pointsReward int, active bool) (*Mission, error) {
	m := &Mission{ID: uuid.New(), Title: title, PointsReward: pointsReward, Active: active}
	if err := s.repo.CreateMission(ctx, m); err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, cacheKeyMissionsActive, cacheKeyMissionsAll)
	log.Info().Str("mission_id", m.ID.String()).Str("title", title).Msg("mission created")
	return m, nil
}

func (s *Service) UpdateMission(ctx context.Context, m *Mission) error {
	if err := s.repo.UpdateMission(ctx, m); err != nil {
		return err
	}
	s.cache.invalidate(ctx, cacheKeyMissionsActive, cacheKeyMissionsAll)
	return nil
}

// GetMission is an authoritative read; it never goes through the cache.
func (s *Service) GetMission(ctx context.Context, id uuid.UUID) (*Mission, error) {
	return s.repo.GetMission(ctx, id)
}

func (s *Service) ListMissions(ctx context.Context, includeInactive bool) ([]Mission, error) {
	key := cacheKeyMissionsActive
	if includeInactive {
		key = cacheKeyMissionsAll
	}
	missions := []Mission{}
	if s.cache.get(ctx, key, &missions) {
		return missions, nil
	}
	missions, err := s.repo.ListMissions(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, key, missions)
	return missions, nil
}

// ---------- Rewards ----------

func (s *Service) CreateReward(ctx context.Context, name, description, category string, pointCost int, active bool) (*Reward, error) {
	rw := &Reward{ID: uuid.New(), Name: name, Description: description, Category: category, PointCost: pointCost, Active: active}
	if err := s.repo.CreateReward(ctx, rw); err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, cacheKeyRewardsActive, cacheKeyRewardsAll)
	log.Info().Str("reward_id", rw.ID.String()).Str("name", name).Msg("reward created")
	return rw, nil
}

func (s *Service) UpdateReward(ctx context.Context, rw *Reward) error {
	if err := s.repo.UpdateReward(ctx, rw); err != nil {
		return err
	}
	s.cache.invalidate(ctx, cacheKeyRewardsActive, cacheKeyRewardsAll)
	return nil
}

// GetReward is an authoritative read; it never goes through the cache.
func (s *Service) GetReward(ctx context.Context, id uuid.UUID) (*Reward, error) {
	return s.repo.GetReward(ctx, id)
}

func (s *Service) ListRewards(ctx context.Context, includeInactive bool) ([]Reward, error) {
	key := cacheKeyRewardsActive
	if includeInactive {
		key = cacheKeyRewardsAll
	}
	rewards := []Reward{}
	if s.cache.get(ctx, key, &rewards) {
		return rewards, nil
	}
	rewards, err := s.repo.ListRewards(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, key, rewards)
	return rewards, nil
}

// ---------- Checklist items ----------

func (s *Service) CreateChecklistItem(ctx context.Context, content string, targetMemberID *uuid.UUID, deductionPoints int, active bool) (*ChecklistItem, error) {
	item := &ChecklistItem{ID: uuid.New(), Content: content, TargetMemberID: targetMemberID, DeductionPoints: deductionPoints, Active: active}
	if err := s.repo.CreateChecklistItem(ctx, item); err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, cacheKeyItemsActive, cacheKeyItemsAll)
	log.Info().Str("item_id", item.ID.String()).Msg("checklist item created")
	return item, nil
}

func (s *Service) UpdateChecklistItem(ctx context.Context, item *ChecklistItem) error {
	if err := s.repo.UpdateChecklistItem(ctx, item); err != nil {
		return err
	}
	s.cache.invalidate(ctx, cacheKeyItemsActive, cacheKeyItemsAll)
	return nil
}

// ListActiveChecklistItems is an authoritative read used by the scoring
// engine; it never goes through the cache.
func (s *Service) ListActiveChecklistItems(ctx context.Context, memberID uuid.UUID) ([]ChecklistItem, error) {
	return s.repo.ListActiveChecklistItems(ctx, memberID)
}

func (s *Service) ListChecklistItems(ctx context.Context, includeInactive bool) ([]ChecklistItem, error) {
	key := cacheKeyItemsActive
	if includeInactive {
		key = cacheKeyItemsAll
	}
	items := []ChecklistItem{}
	if s.cache.get(ctx, key, &items) {
		return items, nil
	}
	items, err := s.repo.ListChecklistItems(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, key, items)
	return items, nil
}
