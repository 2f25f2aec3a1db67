package service

import (
	"testing"

	"campusccms/models"
	"campusccms/repository"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedbackFixture(t *testing.T) (*FeedbackService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := NewFeedbackService(
		repository.NewFeedbackRepository(db),
		repository.NewComplaintRepository(db),
	)
	return svc, mock, func() { db.Close() }
}

func TestSubmitFeedback(t *testing.T) {
	svc, mock, cleanup := newFeedbackFixture(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM complaints c").
		WithArgs(int64(7), int64(5)).
		WillReturnRows(complaintRow(models.StatusSolved))
	mock.ExpectQuery("SELECT COUNT(.+) FROM feedback").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO feedback").
		WithArgs(int64(5), int64(7), 4, "Thanks for the quick fix").
		WillReturnResult(sqlmock.NewResult(9, 1))

	feedback, err := svc.Submit(5, 7, 4, "Thanks for the quick fix")

	require.NoError(t, err)
	assert.Equal(t, int64(9), feedback.FeedbackID)
	assert.Equal(t, 4, feedback.Rating)
	assert.True(t, feedback.Comment.Valid)
}

func TestSubmitFeedbackEmptyComment(t *testing.T) {
	svc, mock, cleanup := newFeedbackFixture(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM complaints c").
		WithArgs(int64(7), int64(5)).
		WillReturnRows(complaintRow(models.StatusSolved))
	mock.ExpectQuery("SELECT COUNT(.+) FROM feedback").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO feedback").
		WithArgs(int64(5), int64(7), 5, nil).
		WillReturnResult(sqlmock.NewResult(10, 1))

	feedback, err := svc.Submit(5, 7, 5, "")

	require.NoError(t, err)
	assert.False(t, feedback.Comment.Valid, "empty comment stored as NULL")
}

func TestSubmitFeedbackRejectsUnsolved(t *testing.T) {
	for _, status := range []models.ComplaintStatus{models.StatusPending, models.StatusInProgress} {
		t.Run(string(status), func(t *testing.T) {
			svc, mock, cleanup := newFeedbackFixture(t)
			defer cleanup()

			mock.ExpectQuery("SELECT (.+) FROM complaints c").
				WithArgs(int64(7), int64(5)).
				WillReturnRows(complaintRow(status))

			feedback, err := svc.Submit(5, 7, 4, "")

			assert.ErrorIs(t, err, models.ErrFeedbackNotAllowed)
			assert.Nil(t, feedback)
			assert.NoError(t, mock.ExpectationsWereMet(), "no feedback row for an unsolved complaint")
		})
	}
}

func TestSubmitFeedbackOnlyOnce(t *testing.T) {
	svc, mock, cleanup := newFeedbackFixture(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM complaints c").
		WithArgs(int64(7), int64(5)).
		WillReturnRows(complaintRow(models.StatusSolved))
	mock.ExpectQuery("SELECT COUNT(.+) FROM feedback").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	feedback, err := svc.Submit(5, 7, 4, "")

	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Nil(t, feedback)
}

func TestSubmitFeedbackUnownedComplaint(t *testing.T) {
	svc, mock, cleanup := newFeedbackFixture(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM complaints c").
		WithArgs(int64(7), int64(6)).
		WillReturnRows(sqlmock.NewRows(complaintColumns))

	feedback, err := svc.Submit(6, 7, 4, "")

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, feedback)
}

func TestSubmitFeedbackInvalidRating(t *testing.T) {
	svc, _, cleanup := newFeedbackFixture(t)
	defer cleanup()

	for _, rating := range []int{0, 6, -1} {
		feedback, err := svc.Submit(5, 7, rating, "")
		assert.Error(t, err)
		assert.Nil(t, feedback)
	}
}
