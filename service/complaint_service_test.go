package service

import (
	"context"
	"errors"
	"testing"

	"campusccms/models"
	"campusccms/notification"
	"campusccms/repository"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComplaintFixture(t *testing.T, channel notification.Channel) (*ComplaintService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := NewComplaintService(
		repository.NewComplaintRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewUserRepository(db),
		notification.NewDispatcher(channel),
	)
	return svc, mock, func() { db.Close() }
}

func TestCreateComplaint(t *testing.T) {
	channel := &captureChannel{}
	svc, mock, cleanup := newComplaintFixture(t, channel)
	defer cleanup()

	mock.ExpectQuery("SELECT name FROM complaint_categories").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Facility Problems"))
	mock.ExpectExec("INSERT INTO complaints").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
		WithArgs(int64(5)).
		WillReturnRows(studentRow())

	response, err := svc.Create(context.Background(), 5, &models.CreateComplaintRequest{
		CategoryID:   2,
		IncidentDate: "2026-03-09",
		IncidentTime: "14:00",
		Location:     "Library",
		Description:  "Broken AC",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), response.ComplaintID)
	assert.Equal(t, models.StatusPending, response.Status)
	assert.True(t, response.NotificationSent)
	assert.Regexp(t, `^CCMS-\d{8}-[0-9a-f]{8}$`, response.Number)
	require.Len(t, channel.subjects, 1)
	assert.Equal(t, "Complaint Submitted Successfully - Campus CCMS", channel.subjects[0])
}

func TestCreateComplaintNotificationFailure(t *testing.T) {
	channel := &captureChannel{err: errors.New("sendgrid 503")}
	svc, mock, cleanup := newComplaintFixture(t, channel)
	defer cleanup()

	mock.ExpectQuery("SELECT name FROM complaint_categories").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Facility Problems"))
	mock.ExpectExec("INSERT INTO complaints").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
		WithArgs(int64(5)).
		WillReturnRows(studentRow())

	response, err := svc.Create(context.Background(), 5, &models.CreateComplaintRequest{
		CategoryID:  2,
		Description: "Broken AC",
	})

	require.NoError(t, err, "a delivery failure never fails the submission")
	assert.Equal(t, int64(7), response.ComplaintID)
	assert.False(t, response.NotificationSent)
}

func TestCreateComplaintUnknownCategory(t *testing.T) {
	channel := &captureChannel{}
	svc, mock, cleanup := newComplaintFixture(t, channel)
	defer cleanup()

	mock.ExpectQuery("SELECT name FROM complaint_categories").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	response, err := svc.Create(context.Background(), 5, &models.CreateComplaintRequest{
		CategoryID:  99,
		Description: "Broken AC",
	})

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, response)
	assert.Empty(t, channel.recipients)
}

func TestListAllRejectsUnknownStatusFilter(t *testing.T) {
	channel := &captureChannel{}
	svc, _, cleanup := newComplaintFixture(t, channel)
	defer cleanup()

	complaints, err := svc.ListAll("Escalated", 0)

	assert.Error(t, err)
	assert.Nil(t, complaints)
}
