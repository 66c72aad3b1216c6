package ledger

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

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

const (
	lockQuery   = `SELECT current_points FROM members WHERE id = $1 FOR UPDATE`
	updateQuery = `UPDATE members SET current_points = $1, updated_at = now() WHERE id = $2`
)

func TestApplyCommitsBalanceAndRecordTogether(t *testing.T) {
	repo, mock := newMockRepo(t)
	memberID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
		WithArgs(memberID).
		WillReturnRows(sqlmock.NewRows([]string{"current_points"}).AddRow(20))
	mock.ExpectExec(regexp.QuoteMeta(updateQuery)).
		WithArgs(70, memberID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`VALUES ($1, $2, $3, $4, $5, $6, clock_timestamp())`)).
		WithArgs(sqlmock.AnyArg(), memberID, KindManualGrant, nil, 50, "helped with groceries").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectCommit()

	balance, record, err := repo.Apply(context.Background(), memberID, KindManualGrant, 50, nil, "helped with groceries")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if balance != 70 {
		t.Fatalf("expected balance 70, got %d", balance)
	}
	if record.DeltaPoints != 50 || !record.CreatedAt.Equal(now) {
		t.Fatalf("unexpected record: %+v", record)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplyInsufficientBalanceRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)
	memberID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
		WithArgs(memberID).
		WillReturnRows(sqlmock.NewRows([]string{"current_points"}).AddRow(20))
	mock.ExpectRollback()

	_, _, err := repo.Apply(context.Background(), memberID, KindManualDeduction, -30, nil, "lost a library book")
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplyRecordInsertFailureRollsBackBalance(t *testing.T) {
	repo, mock := newMockRepo(t)
	memberID := uuid.New()

	// The balance update succeeds, then the audit insert fails. The whole
	// operation must fail and the transaction roll back.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
		WithArgs(memberID).
		WillReturnRows(sqlmock.NewRows([]string{"current_points"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(updateQuery)).
		WithArgs(10, memberID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO point_transactions`)).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	_, _, err := repo.Apply(context.Background(), memberID, KindManualGrant, 10, nil, "chores")
	if err == nil {
		t.Fatal("expected failure when the record insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplyUnknownMember(t *testing.T) {
	repo, mock := newMockRepo(t)
	memberID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
		WithArgs(memberID).
		WillReturnRows(sqlmock.NewRows([]string{"current_points"}))
	mock.ExpectRollback()

	_, _, err := repo.Apply(context.Background(), memberID, KindManualGrant, 10, nil, "chores")
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestApplySerializationFailureMapsToConflict(t *testing.T) {
	repo, mock := newMockRepo(t)
	memberID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
		WithArgs(memberID).
		WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()

	_, _, err := repo.Apply(context.Background(), memberID, KindManualGrant, 10, nil, "chores")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRedeemCommitsSpendAndRecord(t *testing.T) {
	repo, mock := newMockRepo(t)
	memberID := uuid.New()
	rewardID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
		WithArgs(memberID).
		WillReturnRows(sqlmock.NewRows([]string{"current_points"}).AddRow(100))
	mock.ExpectExec(regexp.QuoteMeta(updateQuery)).
		WithArgs(60, memberID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`VALUES ($1, $2, $3, $4, clock_timestamp())`)).
		WithArgs(sqlmock.AnyArg(), memberID, rewardID, 40).
		WillReturnRows(sqlmock.NewRows([]string{"redeemed_at"}).AddRow(now))
	mock.ExpectCommit()

	balance, record, err := repo.Redeem(context.Background(), memberID, rewardID, 40)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if balance != 60 {
		t.Fatalf("expected balance 60, got %d", balance)
	}
	if record.PointsSpent != 40 || !record.RedeemedAt.Equal(now) {
		t.Fatalf("unexpected record: %+v", record)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRedeemInsufficientBalance(t *testing.T) {
	repo, mock := newMockRepo(t)
	memberID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockQuery)).
		WithArgs(memberID).
		WillReturnRows(sqlmock.NewRows([]string{"current_points"}).AddRow(20))
	mock.ExpectRollback()

	_, _, err := repo.Redeem(context.Background(), memberID, uuid.New(), 30)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHistoryScopedToMember(t *testing.T) {
	repo, mock := newMockRepo(t)
	memberID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"occurred_at", "member_name", "description", "kind"}).
		AddRow(now, "jiho", "'movie night' redeemed (-40 BP)", HistoryKindRedemption).
		AddRow(now.Add(-time.Hour), "jiho", "wash dishes (+25 BP)", HistoryKindPointChange)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT x.occurred_at,`)).
		WithArgs(&memberID, 100).
		WillReturnRows(rows)

	entries, err := repo.History(context.Background(), &memberID, 100)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Kind != HistoryKindRedemption {
		t.Fatalf("expected redemption first, got %s", entries[0].Kind)
	}
	if entries[1].Description != "wash dishes (+25 BP)" {
		t.Fatalf("unexpected description: %q", entries[1].Description)
	}
}
