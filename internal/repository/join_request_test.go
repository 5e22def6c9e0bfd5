// internal/repository/join_request_test.go
package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dangerclosesec/orgward/internal/domain"
	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinRequestColumns() []string {
	return []string{"id", "organization_id", "user_id", "message", "status", "created_at", "reviewed_by_id", "reviewed_at"}
}

func TestApprovePendingRequest(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewJoinRequestRepository(gdb)

	requestID := uuid.New()
	orgID := uuid.New()
	userID := uuid.New()
	reviewerID := uuid.New()
	memberID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "join_requests" WHERE id = (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(joinRequestColumns()).
			AddRow(requestID, orgID, userID, nil, "pending", now, nil, nil))
	mock.ExpectExec(`UPDATE "join_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "members" WHERE organization_id = (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(memberColumns()))
	mock.ExpectQuery(`INSERT INTO "members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(memberID))
	mock.ExpectCommit()

	request, err := repo.Approve(context.Background(), requestID, reviewerID, model.RoleEditor, nil, now)
	require.NoError(t, err)
	assert.Equal(t, model.JoinRequestApproved, request.Status)
	require.NotNil(t, request.ReviewedByID)
	assert.Equal(t, reviewerID, *request.ReviewedByID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveAlreadyReviewed(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewJoinRequestRepository(gdb)

	requestID := uuid.New()
	reviewerID := uuid.New()
	priorReviewer := uuid.New()
	now := time.Now()

	// A second approval sees the resolved row under the lock and backs
	// out without touching the membership.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "join_requests" WHERE id = (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(joinRequestColumns()).
			AddRow(requestID, uuid.New(), uuid.New(), nil, "approved", now, priorReviewer, now))
	mock.ExpectRollback()

	_, err := repo.Approve(context.Background(), requestID, reviewerID, model.RoleEditor, nil, now)
	assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectAlreadyReviewed(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewJoinRequestRepository(gdb)

	requestID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "join_requests" WHERE id = (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(joinRequestColumns()).
			AddRow(requestID, uuid.New(), uuid.New(), nil, "rejected", now, uuid.New(), now))
	mock.ExpectRollback()

	_, err := repo.Reject(context.Background(), requestID, uuid.New(), now)
	assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveMissingRequest(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewJoinRequestRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "join_requests" WHERE id = (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(joinRequestColumns()))
	mock.ExpectRollback()

	_, err := repo.Approve(context.Background(), uuid.New(), uuid.New(), model.RoleViewer, nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrJoinRequestNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
