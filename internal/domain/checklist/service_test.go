package checklist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeItemSource struct {
	items []Item
	err   error
}

func (f *fakeItemSource) ListActiveItems(ctx context.Context, memberID uuid.UUID) ([]Item, error) {
	return f.items, f.err
}

type fakeResultStore struct {
	results map[string]*DailyResult
	upserts int
	failErr error
}

func newFakeResultStore() *fakeResultStore {
	return &fakeResultStore{results: map[string]*DailyResult{}}
}

func resultKey(memberID uuid.UUID, date time.Time) string {
	return memberID.String() + "|" + date.Format("2006-01-02")
}

func (f *fakeResultStore) Upsert(ctx context.Context, result *DailyResult) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.upserts++
	stored := *result
	stored.UpdatedAt = time.Now()
	f.results[resultKey(result.MemberID, result.CheckDate)] = &stored
	return nil
}

func (f *fakeResultStore) Get(ctx context.Context, memberID uuid.UUID, date time.Time) (*DailyResult, error) {
	return f.results[resultKey(memberID, date)], nil
}

func (f *fakeResultStore) ListByMember(ctx context.Context, memberID uuid.UUID, limit int) ([]DailyResult, error) {
	out := []DailyResult{}
	for _, r := range f.results {
		if r.MemberID == memberID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func testDate(t *testing.T) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", "2025-03-14")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return date
}

func TestSubmitStoresComputedScore(t *testing.T) {
	item := Item{ID: uuid.New(), Content: "make the bed", DeductionPoints: 10}
	store := newFakeResultStore()
	svc := NewService(store, &fakeItemSource{items: []Item{item}})

	memberID := uuid.New()
	date := testDate(t)

	result, err := svc.Submit(context.Background(), memberID, date, map[uuid.UUID]bool{item.ID: false})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Score != 100 {
		t.Fatalf("expected score 100, got %d", result.Score)
	}

	stored, _ := store.Get(context.Background(), memberID, date)
	if stored == nil || stored.Score != 100 {
		t.Fatalf("expected stored score 100, got %+v", stored)
	}
	if len(stored.ViolatedItemIDs) != 1 || stored.ViolatedItemIDs[0] != item.ID {
		t.Fatalf("expected stored violation %s, got %v", item.ID, stored.ViolatedItemIDs)
	}
}

func TestSubmitRejectsUnknownItem(t *testing.T) {
	store := newFakeResultStore()
	svc := NewService(store, &fakeItemSource{items: []Item{{ID: uuid.New(), DeductionPoints: 10}}})

	_, err := svc.Submit(context.Background(), uuid.New(), testDate(t), map[uuid.UUID]bool{uuid.New(): false})
	if !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if store.upserts != 0 {
		t.Fatalf("expected no writes after rejected submission, got %d", store.upserts)
	}
}

func TestSubmitReplacesPriorResult(t *testing.T) {
	a := Item{ID: uuid.New(), DeductionPoints: 10}
	b := Item{ID: uuid.New(), DeductionPoints: 20}
	store := newFakeResultStore()
	svc := NewService(store, &fakeItemSource{items: []Item{a, b}})

	memberID := uuid.New()
	date := testDate(t)

	if _, err := svc.Submit(context.Background(), memberID, date, map[uuid.UUID]bool{a.ID: false, b.ID: false}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	// Correction: only b violated now. The stored result must be replaced,
	// not merged with the earlier one.
	result, err := svc.Submit(context.Background(), memberID, date, map[uuid.UUID]bool{b.ID: false})
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if result.Score != 90 {
		t.Fatalf("expected score 90 after correction, got %d", result.Score)
	}

	stored, _ := store.Get(context.Background(), memberID, date)
	if stored.Score != 90 {
		t.Fatalf("expected stored score 90, got %d", stored.Score)
	}
	if len(stored.ViolatedItemIDs) != 1 || stored.ViolatedItemIDs[0] != b.ID {
		t.Fatalf("expected only %s violated after correction, got %v", b.ID, stored.ViolatedItemIDs)
	}
}

func TestSubmitIdempotentForIdenticalInputs(t *testing.T) {
	item := Item{ID: uuid.New(), DeductionPoints: 25}
	store := newFakeResultStore()
	svc := NewService(store, &fakeItemSource{items: []Item{item}})

	memberID := uuid.New()
	date := testDate(t)
	outcomes := map[uuid.UUID]bool{item.ID: false}

	first, err := svc.Submit(context.Background(), memberID, date, outcomes)
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	second, err := svc.Submit(context.Background(), memberID, date, outcomes)
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	if first.Score != second.Score {
		t.Fatalf("expected identical scores, got %d and %d", first.Score, second.Score)
	}
	if len(store.results) != 1 {
		t.Fatalf("expected a single stored row per (member, date), got %d", len(store.results))
	}
}

func TestSubmitEmptyOutcomesIsCleanDay(t *testing.T) {
	items := []Item{
		{ID: uuid.New(), DeductionPoints: 10},
		{ID: uuid.New(), DeductionPoints: 20},
	}
	store := newFakeResultStore()
	svc := NewService(store, &fakeItemSource{items: items})

	result, err := svc.Submit(context.Background(), uuid.New(), testDate(t), map[uuid.UUID]bool{})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Score != CeilingScore {
		t.Fatalf("expected ceiling score, got %d", result.Score)
	}
}

func TestSubmitPropagatesStoreFailure(t *testing.T) {
	item := Item{ID: uuid.New(), DeductionPoints: 10}
	store := newFakeResultStore()
	store.failErr = errors.New("connection reset")
	svc := NewService(store, &fakeItemSource{items: []Item{item}})

	_, err := svc.Submit(context.Background(), uuid.New(), testDate(t), map[uuid.UUID]bool{item.ID: false})
	if err == nil {
		t.Fatal("expected store failure to surface")
	}
	if len(store.results) != 0 {
		t.Fatalf("expected no stored result after failure")
	}
}
