package repository

import (
	"database/sql"
	"fmt"

	"campusccms/models"
)

// MessageRepository handles database operations for direct messages
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a message (unread) and sets its generated ID.
func (r *MessageRepository) Create(message *models.Message) error {
	result, err := r.db.Exec(
		`INSERT INTO messages (sender_id, receiver_id, message) VALUES (?, ?, ?)`,
		message.SenderID, message.ReceiverID, message.Body,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	messageID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get message ID: %w", err)
	}
	message.MessageID = messageID
	return nil
}

const messageSelect = `
	SELECT m.message_id, m.sender_id, m.receiver_id,
	       us.full_name, ur.full_name, m.message, m.is_read, m.created_at
	FROM messages m
	JOIN users us ON m.sender_id = us.user_id
	JOIN users ur ON m.receiver_id = ur.user_id`

func (r *MessageRepository) queryMessages(query string, args ...any) ([]models.Message, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		err := rows.Scan(&m.MessageID, &m.SenderID, &m.ReceiverID,
			&m.SenderName, &m.ReceiverName, &m.Body, &m.IsRead, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return messages, nil
}

// ListReceived retrieves messages where the actor is the receiver, newest
// first; ties on created_at break by message_id descending so the order
// is deterministic.
func (r *MessageRepository) ListReceived(receiverID int64, limit int) ([]models.Message, error) {
	query := messageSelect + ` WHERE m.receiver_id = ? ORDER BY m.created_at DESC, m.message_id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		return r.queryMessages(query, receiverID, limit)
	}
	return r.queryMessages(query, receiverID)
}

// ListConversation retrieves messages where the actor is sender or
// receiver (full history view), newest first.
func (r *MessageRepository) ListConversation(actorID int64) ([]models.Message, error) {
	query := messageSelect + ` WHERE m.sender_id = ? OR m.receiver_id = ?
		ORDER BY m.created_at DESC, m.message_id DESC`
	return r.queryMessages(query, actorID, actorID)
}

// MarkReceivedRead flags every message received by the actor as read.
// Bulk side effect of viewing an inbox.
func (r *MessageRepository) MarkReceivedRead(receiverID int64) error {
	_, err := r.db.Exec(
		`UPDATE messages SET is_read = TRUE WHERE receiver_id = ? AND is_read = FALSE`,
		receiverID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// MarkRead flags one message as read.
func (r *MessageRepository) MarkRead(messageID int64) error {
	result, err := r.db.Exec(`UPDATE messages SET is_read = TRUE WHERE message_id = ?`, messageID)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check marked message: %w", err)
	}
	if affected == 0 {
		// Either absent or already read; distinguish so NotFound surfaces.
		var count int
		if err := r.db.QueryRow(`SELECT COUNT(*) FROM messages WHERE message_id = ?`, messageID).Scan(&count); err != nil {
			return fmt.Errorf("failed to check message existence: %w", err)
		}
		if count == 0 {
			return models.ErrNotFound
		}
	}
	return nil
}

// CountUnread returns the actor's unread received-message count.
func (r *MessageRepository) CountUnread(receiverID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM messages WHERE receiver_id = ? AND is_read = FALSE`,
		receiverID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
