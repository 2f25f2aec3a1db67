package service

import (
	"testing"
	"time"

	"campusccms/models"
	"campusccms/repository"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var messageColumns = []string{
	"message_id", "sender_id", "receiver_id",
	"sender_name", "receiver_name", "message", "is_read", "created_at",
}

func userRow(id int64, role models.Role) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).AddRow(
		id, "someone", "$2a$10$hash", "someone@campus.edu", "Some One",
		nil, string(role), time.Now(),
	)
}

func newMessageFixture(t *testing.T) (*MessageService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := NewMessageService(
		repository.NewMessageRepository(db),
		repository.NewUserRepository(db),
	)
	return svc, mock, func() { db.Close() }
}

func TestSendStudentRoutesToSupportMailbox(t *testing.T) {
	svc, mock, cleanup := newMessageFixture(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
		WithArgs(int64(5)).
		WillReturnRows(userRow(5, models.RoleStudent))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE role = 'admin' ORDER BY user_id ASC").
		WillReturnRows(userRow(1, models.RoleAdmin))
	mock.ExpectExec("INSERT INTO messages").
		WithArgs(int64(5), int64(1), "The AC is still broken").
		WillReturnResult(sqlmock.NewResult(42, 1))

	// The receiver argument from a student is ignored entirely.
	message, err := svc.Send(5, 999, "The AC is still broken")

	require.NoError(t, err)
	assert.Equal(t, int64(42), message.MessageID)
	assert.Equal(t, int64(1), message.ReceiverID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendStudentWithoutAnyAdmin(t *testing.T) {
	svc, mock, cleanup := newMessageFixture(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
		WithArgs(int64(5)).
		WillReturnRows(userRow(5, models.RoleStudent))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE role = 'admin' ORDER BY user_id ASC").
		WillReturnRows(sqlmock.NewRows(userColumns))

	message, err := svc.Send(5, 0, "Hello?")

	assert.ErrorIs(t, err, models.ErrNoAdmin)
	assert.Nil(t, message)
	assert.NoError(t, mock.ExpectationsWereMet(), "no message row is written without a support admin")
}

func TestSendAdminToStudent(t *testing.T) {
	svc, mock, cleanup := newMessageFixture(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
		WithArgs(int64(1)).
		WillReturnRows(userRow(1, models.RoleAdmin))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
		WithArgs(int64(5)).
		WillReturnRows(userRow(5, models.RoleStudent))
	mock.ExpectExec("INSERT INTO messages").
		WithArgs(int64(1), int64(5), "Maintenance is scheduled for Monday").
		WillReturnResult(sqlmock.NewResult(43, 1))

	message, err := svc.Send(1, 5, "Maintenance is scheduled for Monday")

	require.NoError(t, err)
	assert.Equal(t, int64(5), message.ReceiverID)
}

func TestSendAdminToAdminRejected(t *testing.T) {
	svc, mock, cleanup := newMessageFixture(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
		WithArgs(int64(1)).
		WillReturnRows(userRow(1, models.RoleAdmin))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id").
		WithArgs(int64(2)).
		WillReturnRows(userRow(2, models.RoleAdmin))

	message, err := svc.Send(1, 2, "wrong lane")

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, message)
}

func TestInboxSnapshotThenMarkRead(t *testing.T) {
	svc, mock, cleanup := newMessageFixture(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(messageColumns).
		AddRow(int64(2), int64(1), int64(5), "System Administrator", "Maria Santos", "Fixed today", false, now).
		AddRow(int64(1), int64(1), int64(5), "System Administrator", "Maria Santos", "Looking into it", true, now.Add(-time.Hour))
	mock.ExpectQuery("SELECT (.+) FROM messages m").
		WithArgs(int64(5)).
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE messages SET is_read = TRUE WHERE receiver_id").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	messages, err := svc.Inbox(5)

	require.NoError(t, err)
	require.Len(t, messages, 2)
	// The snapshot shows the pre-view flags even though the bulk update
	// has already run by the time the caller sees it.
	assert.False(t, messages[0].IsRead)
	assert.True(t, messages[1].IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentReceivedDoesNotMarkRead(t *testing.T) {
	svc, mock, cleanup := newMessageFixture(t)
	defer cleanup()

	rows := sqlmock.NewRows(messageColumns).
		AddRow(int64(2), int64(5), int64(1), "Maria Santos", "System Administrator", "Any update?", false, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM messages m").
		WithArgs(int64(1), 3).
		WillReturnRows(rows)

	messages, err := svc.RecentReceived(1, 3)

	require.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.NoError(t, mock.ExpectationsWereMet(), "dashboard preview must not flip read flags")
}
