package repository

import (
	"testing"
	"time"

	"campusccms/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageTestColumns() []string {
	return []string{
		"message_id", "sender_id", "receiver_id",
		"sender_name", "receiver_name", "message", "is_read", "created_at",
	}
}

func TestListReceivedKeepsReadFlags(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMessageRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(messageTestColumns()).
		AddRow(int64(2), int64(5), int64(1), "Maria Santos", "System Administrator", "Any update?", false, now).
		AddRow(int64(1), int64(5), int64(1), "Maria Santos", "System Administrator", "Hello", true, now.Add(-time.Hour))
	mock.ExpectQuery("SELECT (.+) FROM messages m").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	messages, err := repo.ListReceived(1, 0)

	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.False(t, messages[0].IsRead)
	assert.True(t, messages[1].IsRead)
	assert.Equal(t, "Any update?", messages[0].Body)
}

func TestMarkReceivedReadOnlyTouchesUnread(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMessageRepository(db)

	mock.ExpectExec("UPDATE messages SET is_read = TRUE WHERE receiver_id = (.+) AND is_read = FALSE").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err = repo.MarkReceivedRead(1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadAlreadyRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMessageRepository(db)

	// Zero rows affected but the row exists: marking read is idempotent.
	mock.ExpectExec("UPDATE messages SET is_read = TRUE WHERE message_id").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err = repo.MarkRead(4)

	assert.NoError(t, err)
}

func TestMarkReadMissingMessage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMessageRepository(db)

	mock.ExpectExec("UPDATE messages SET is_read = TRUE WHERE message_id").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err = repo.MarkRead(99)

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCountUnread(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewMessageRepository(db)

	mock.ExpectQuery("SELECT COUNT(.+) FROM messages WHERE receiver_id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountUnread(1)

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
