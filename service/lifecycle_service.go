package service

import (
	"context"
	"fmt"
	"log"

	"campusccms/models"
	"campusccms/notification"
	"campusccms/repository"
)

// LifecycleService owns complaint status transitions and their side
// effects: the persisted status change, the audit response row, and the
// student notification.
//
// Transition Rules:
//  1. The status graph is total: any of Pending / In Progress / Solved
//     may follow any other, including Solved back to Pending.
//  2. Every transition writes exactly one admin_responses row, in the
//     same transaction as the status update.
//  3. Notification happens after commit and never rolls the transition
//     back; the caller learns about both outcomes separately.
type LifecycleService struct {
	complaintRepo *repository.ComplaintRepository
	userRepo      *repository.UserRepository
	dispatcher    *notification.Dispatcher
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(
	complaintRepo *repository.ComplaintRepository,
	userRepo *repository.UserRepository,
	dispatcher *notification.Dispatcher,
) *LifecycleService {
	return &LifecycleService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		dispatcher:    dispatcher,
	}
}

// Transition moves a complaint to newStatus on behalf of adminID. The
// caller (auth middleware) has already established that the actor holds
// the admin role. Returns models.ErrNotFound for an absent complaint; a
// persistence failure aborts the whole operation. A notification failure
// does not: the result then reports StatusChanged without NotificationSent.
func (s *LifecycleService) Transition(
	ctx context.Context,
	complaintID int64,
	newStatus models.ComplaintStatus,
	adminID int64,
) (*models.TransitionResult, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("unknown status %q", newStatus)
	}

	complaint, err := s.complaintRepo.GetByID(complaintID)
	if err != nil {
		return nil, err
	}

	responseText := fmt.Sprintf("Complaint status updated to: %s", newStatus)
	if err := s.complaintRepo.TransitionStatus(complaintID, newStatus, adminID, responseText); err != nil {
		return nil, err
	}
	log.Printf("[lifecycle] complaint %d: %s -> %s by admin %d",
		complaintID, complaint.Status, newStatus, adminID)

	result := &models.TransitionResult{
		ComplaintID:   complaintID,
		Status:        newStatus,
		StatusChanged: true,
	}

	student, err := s.userRepo.GetByID(complaint.StudentID)
	if err != nil || student == nil {
		// Transition already committed; report the missing recipient
		// instead of failing the whole operation.
		log.Printf("[lifecycle] complaint %d: owner %d not resolvable, notification skipped",
			complaintID, complaint.StudentID)
		result.NotificationNote = "complaint owner could not be resolved"
		return result, nil
	}

	if err := s.dispatcher.NotifyStatus(ctx, student.Email, newStatus, student.FullName, complaint.CategoryName); err != nil {
		result.NotificationNote = err.Error()
		return result, nil
	}
	result.NotificationSent = true
	return result, nil
}

// AddResponse appends a manual free-text note from an admin to the
// complaint's audit trail. No status change, no notification.
func (s *LifecycleService) AddResponse(complaintID, adminID int64, responseText string) error {
	if _, err := s.complaintRepo.GetByID(complaintID); err != nil {
		return err
	}
	return s.complaintRepo.InsertResponse(complaintID, adminID, responseText)
}
