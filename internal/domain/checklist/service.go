package checklist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ItemSource supplies the active checklist items applicable to a member
// (items targeting the member plus common items).
type ItemSource interface {
	ListActiveItems(ctx context.Context, memberID uuid.UUID) ([]Item, error)
}

// Store persists daily results with last-write-wins semantics per (member, date).
type Store interface {
	Upsert(ctx context.Context, result *DailyResult) error
	Get(ctx context.Context, memberID uuid.UUID, date time.Time) (*DailyResult, error)
	ListByMember(ctx context.Context, memberID uuid.UUID, limit int) ([]DailyResult, error)
}

type Service struct {
	store Store
	items ItemSource
}

func NewService(store Store, items ItemSource) *Service {
	return &Service{store: store, items: items}
}

// Submit computes the member's score for the date and stores it, replacing
// any prior result for the same day. Checklist scores are a data series of
// their own; submitting never touches the point balance ledger.
func (s *Service) Submit(ctx context.Context, memberID uuid.UUID, date time.Time, outcomes map[uuid.UUID]bool) (*DailyResult, error) {
	items, err := s.items.ListActiveItems(ctx, memberID)
	if err != nil {
		return nil, err
	}

	applicable := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		applicable[item.ID] = true
	}
	for id := range outcomes {
		if !applicable[id] {
			return nil, ErrUnknownItem
		}
	}

	score, violated := ComputeScore(items, outcomes)

	result := &DailyResult{
		MemberID:        memberID,
		CheckDate:       date,
		Score:           score,
		ViolatedItemIDs: violated,
	}
	if err := s.store.Upsert(ctx, result); err != nil {
		return nil, err
	}

	log.Info().
		Str("member_id", memberID.String()).
		Str("date", date.Format("2006-01-02")).
		Int("score", score).
		Int("violations", len(violated)).
		Msg("daily checklist stored")

	return result, nil
}

// Get returns the stored result for one member and date, nil when absent.
func (s *Service) Get(ctx context.Context, memberID uuid.UUID, date time.Time) (*DailyResult, error) {
	return s.store.Get(ctx, memberID, date)
}

// ListByMember returns a member's recent results, newest first.
func (s *Service) ListByMember(ctx context.Context, memberID uuid.UUID, limit int) ([]DailyResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	return s.store.ListByMember(ctx, memberID, limit)
}
