package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := NewRepository(sqlx.NewDb(db, "sqlmock"))
	// nil redis client: caching disabled, every read goes to the database
	return NewService(repo, NewCache(nil, time.Minute)), mock
}

func missionRows(m *Mission) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "points_reward", "active", "created_at"}).
		AddRow(m.ID, m.Title, m.PointsReward, m.Active, time.Now())
}

func TestListMissionsWithoutCacheReadsThrough(t *testing.T) {
	svc, mock := newMockService(t)
	mission := &Mission{ID: uuid.New(), Title: "wash dishes", PointsReward: 25, Active: true}

	listQuery := regexp.QuoteMeta(`SELECT id, title, points_reward, active, created_at
		FROM missions
		WHERE $1 OR active
		ORDER BY title`)

	// Two list calls, two database reads: with no cache nothing is served stale.
	mock.ExpectQuery(listQuery).WithArgs(false).WillReturnRows(missionRows(mission))
	mock.ExpectQuery(listQuery).WithArgs(false).WillReturnRows(missionRows(mission))

	for i := 0; i < 2; i++ {
		missions, err := svc.ListMissions(context.Background(), false)
		if err != nil {
			t.Fatalf("list missions failed: %v", err)
		}
		if len(missions) != 1 || missions[0].Title != "wash dishes" {
			t.Fatalf("unexpected missions: %+v", missions)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateMissionWithoutCache(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO missions`)).
		WithArgs(sqlmock.AnyArg(), "wash dishes", 25, true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	// Invalidation is a no-op with a nil client; the create must still succeed.
	mission, err := svc.CreateMission(context.Background(), "wash dishes", 25, true)
	if err != nil {
		t.Fatalf("create mission failed: %v", err)
	}
	if mission.PointsReward != 25 {
		t.Fatalf("unexpected mission: %+v", mission)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateChecklistItemUnknownTargetMember(t *testing.T) {
	svc, mock := newMockService(t)
	target := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO checklist_items`)).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := svc.CreateChecklistItem(context.Background(), "make the bed", &target, 10, true)
	if !errors.Is(err, ErrTargetMemberNotFound) {
		t.Fatalf("expected ErrTargetMemberNotFound, got %v", err)
	}
}

func TestUpdateChecklistItemUnknownTargetMember(t *testing.T) {
	svc, mock := newMockService(t)
	target := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE checklist_items`)).
		WillReturnError(&pq.Error{Code: "23503"})

	item := &ChecklistItem{ID: uuid.New(), Content: "make the bed", TargetMemberID: &target, DeductionPoints: 10, Active: true}
	if err := svc.UpdateChecklistItem(context.Background(), item); !errors.Is(err, ErrTargetMemberNotFound) {
		t.Fatalf("expected ErrTargetMemberNotFound, got %v", err)
	}
}

func TestUpdateMissionUnknownID(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE missions`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mission := &Mission{ID: uuid.New(), Title: "wash dishes", PointsReward: 25, Active: true}
	if err := svc.UpdateMission(context.Background(), mission); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
