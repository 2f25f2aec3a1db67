package repository

import (
	"errors"
	"strings"
	"testing"

	"campusccms/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateComplaintNumber(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewComplaintRepository(db)

	number := repo.GenerateComplaintNumber()

	parts := strings.Split(number, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "CCMS", parts[0])
	assert.Len(t, parts[1], 8, "date part YYYYMMDD")
	assert.Len(t, parts[2], 8, "unique suffix")

	assert.NotEqual(t, number, repo.GenerateComplaintNumber())
}

func TestTransitionStatusCommitsBothWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewComplaintRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE complaints SET status").
		WithArgs(models.StatusSolved, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO admin_responses").
		WithArgs(int64(7), int64(1), "Complaint status updated to: Solved").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	err = repo.TransitionStatus(7, models.StatusSolved, 1, "Complaint status updated to: Solved")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatusRollsBackOnAuditFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewComplaintRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE complaints SET status").
		WithArgs(models.StatusInProgress, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO admin_responses").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = repo.TransitionStatus(7, models.StatusInProgress, 1, "Complaint status updated to: In Progress")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet(), "status update must not survive a failed audit insert")
}

func TestTransitionStatusRollsBackOnUpdateFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewComplaintRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE complaints SET status").
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err = repo.TransitionStatus(7, models.StatusPending, 1, "Complaint status updated to: Pending")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewComplaintRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM complaints c").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(complaintTestColumns()))

	complaint, err := repo.GetByID(99)

	assert.Nil(t, complaint)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func complaintTestColumns() []string {
	return []string{
		"complaint_id", "complaint_number", "student_id", "category_id",
		"name", "incident_date", "incident_time", "location", "description",
		"photo_path", "status", "created_at", "updated_at",
	}
}
