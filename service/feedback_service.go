package service

import (
	"database/sql"
	"fmt"
	"log"

	"campusccms/models"
	"campusccms/repository"
)

// FeedbackService handles one-time ratings of solved complaints
type FeedbackService struct {
	repo          *repository.FeedbackRepository
	complaintRepo *repository.ComplaintRepository
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(repo *repository.FeedbackRepository, complaintRepo *repository.ComplaintRepository) *FeedbackService {
	return &FeedbackService{repo: repo, complaintRepo: complaintRepo}
}

// Submit records a student's rating for one of their solved complaints.
// Rejections: models.ErrNotFound (absent or not owned),
// models.ErrFeedbackNotAllowed (complaint not Solved), models.ErrConflict
// (feedback already submitted for the complaint).
func (s *FeedbackService) Submit(studentID, complaintID int64, rating int, comment string) (*models.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	complaint, err := s.complaintRepo.GetByIDForStudent(complaintID, studentID)
	if err != nil {
		return nil, err
	}
	if complaint.Status != models.StatusSolved {
		return nil, models.ErrFeedbackNotAllowed
	}

	exists, err := s.repo.ExistsForComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("feedback for complaint %d: %w", complaintID, models.ErrConflict)
	}

	feedback := &models.Feedback{
		StudentID:   studentID,
		ComplaintID: complaintID,
		Rating:      rating,
	}
	if comment != "" {
		feedback.Comment = sql.NullString{String: comment, Valid: true}
	}
	if err := s.repo.Create(feedback); err != nil {
		return nil, err
	}
	log.Printf("[feedback] complaint %d rated %d by student %d", complaintID, rating, studentID)
	return feedback, nil
}

// EligibleComplaints lists the student's solved complaints that still
// accept feedback.
func (s *FeedbackService) EligibleComplaints(studentID int64) ([]models.Complaint, error) {
	return s.complaintRepo.ListSolvedWithoutFeedback(studentID)
}
