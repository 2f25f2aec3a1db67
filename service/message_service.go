package service

import (
	"log"

	"campusccms/models"
	"campusccms/repository"
)

// MessageService implements the student/admin mailbox model. Every
// message connects exactly one student and one admin: student senders
// always reach the support mailbox, admin senders address an explicit
// student.
type MessageService struct {
	repo     *repository.MessageRepository
	userRepo *repository.UserRepository
}

// NewMessageService creates a new message service
func NewMessageService(repo *repository.MessageRepository, userRepo *repository.UserRepository) *MessageService {
	return &MessageService{repo: repo, userRepo: userRepo}
}

// Send delivers a message. For student senders the receiver argument is
// ignored and resolved to the support mailbox; models.ErrNoAdmin is
// returned, and no row written, when no admin account exists. For admin
// senders the receiver must be an existing student.
func (s *MessageService) Send(senderID, receiverID int64, body string) (*models.Message, error) {
	sender, err := s.userRepo.GetByID(senderID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, models.ErrNotFound
	}

	if sender.Role == models.RoleStudent {
		admin, err := s.userRepo.GetSupportAdmin()
		if err != nil {
			return nil, err
		}
		if admin == nil {
			return nil, models.ErrNoAdmin
		}
		receiverID = admin.UserID
	} else {
		receiver, err := s.userRepo.GetByID(receiverID)
		if err != nil {
			return nil, err
		}
		if receiver == nil || receiver.Role != models.RoleStudent {
			return nil, models.ErrNotFound
		}
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
	}
	if err := s.repo.Create(message); err != nil {
		return nil, err
	}
	log.Printf("[message] %d -> %d (id=%d)", senderID, receiverID, message.MessageID)
	return message, nil
}

// Inbox returns the actor's received messages, newest first, then marks
// every received unread message as read. The returned snapshot still
// shows the pre-view read flags; an immediate second call returns the
// same messages all marked read.
func (s *MessageService) Inbox(actorID int64) ([]models.Message, error) {
	messages, err := s.repo.ListReceived(actorID, 0)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkReceivedRead(actorID); err != nil {
		return nil, err
	}
	return messages, nil
}

// History returns the actor's full conversation view (sent and
// received), newest first. Read-only; no read-flag side effects.
func (s *MessageService) History(actorID int64) ([]models.Message, error) {
	return s.repo.ListConversation(actorID)
}

// RecentReceived returns the actor's newest received messages without
// marking them read (dashboard preview).
func (s *MessageService) RecentReceived(actorID int64, limit int) ([]models.Message, error) {
	return s.repo.ListReceived(actorID, limit)
}

// MarkRead flags a single message as read.
func (s *MessageService) MarkRead(messageID int64) error {
	return s.repo.MarkRead(messageID)
}

// UnreadCount returns the actor's unread received-message count.
func (s *MessageService) UnreadCount(actorID int64) (int, error) {
	return s.repo.CountUnread(actorID)
}
