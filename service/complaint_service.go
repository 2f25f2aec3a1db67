package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"campusccms/models"
	"campusccms/notification"
	"campusccms/repository"
)

// ComplaintService handles complaint intake and read views. Status
// changes are LifecycleService territory.
type ComplaintService struct {
	repo         *repository.ComplaintRepository
	categoryRepo *repository.CategoryRepository
	userRepo     *repository.UserRepository
	dispatcher   *notification.Dispatcher
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	repo *repository.ComplaintRepository,
	categoryRepo *repository.CategoryRepository,
	userRepo *repository.UserRepository,
	dispatcher *notification.Dispatcher,
) *ComplaintService {
	return &ComplaintService{
		repo:         repo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
	}
}

// Create files a new complaint for a student. Every complaint starts as
// Pending. After the insert, the submission notification is dispatched
// to the student; a delivery failure leaves the complaint in place and
// is reported in the response.
func (s *ComplaintService) Create(
	ctx context.Context,
	studentID int64,
	req *models.CreateComplaintRequest,
) (*models.CreateComplaintResponse, error) {
	categoryName, err := s.categoryRepo.GetName(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("category %d: %w", req.CategoryID, err)
	}

	complaint := &models.Complaint{
		Number:       s.repo.GenerateComplaintNumber(),
		StudentID:    studentID,
		CategoryID:   req.CategoryID,
		IncidentDate: req.IncidentDate,
		IncidentTime: req.IncidentTime,
		Location:     req.Location,
		Description:  req.Description,
	}
	if req.PhotoPath != "" {
		complaint.PhotoPath = sql.NullString{String: req.PhotoPath, Valid: true}
	}

	if err := s.repo.Create(complaint); err != nil {
		return nil, err
	}
	log.Printf("[complaint] created %s (id=%d) for student %d", complaint.Number, complaint.ComplaintID, studentID)

	response := &models.CreateComplaintResponse{
		ComplaintID: complaint.ComplaintID,
		Number:      complaint.Number,
		Status:      models.StatusPending,
	}

	student, err := s.userRepo.GetByID(studentID)
	if err != nil || student == nil {
		log.Printf("[complaint] %s: submitter %d not resolvable, notification skipped", complaint.Number, studentID)
		return response, nil
	}

	if err := s.dispatcher.NotifyCreated(ctx, student.Email, student.FullName, categoryName,
		complaint.Number, time.Now()); err == nil {
		response.NotificationSent = true
	}
	return response, nil
}

// GetForStudent retrieves a complaint with its audit trail, scoped to the
// owning student. models.ErrNotFound covers both absence and access by a
// non-owner; the two are indistinguishable on purpose.
func (s *ComplaintService) GetForStudent(complaintID, studentID int64) (*models.ComplaintDetail, error) {
	complaint, err := s.repo.GetByIDForStudent(complaintID, studentID)
	if err != nil {
		return nil, err
	}
	responses, err := s.repo.ListResponses(complaintID)
	if err != nil {
		return nil, err
	}
	return &models.ComplaintDetail{Complaint: *complaint, Responses: responses}, nil
}

// GetForAdmin retrieves any complaint with its audit trail.
func (s *ComplaintService) GetForAdmin(complaintID int64) (*models.ComplaintDetail, error) {
	complaint, err := s.repo.GetByID(complaintID)
	if err != nil {
		return nil, err
	}
	responses, err := s.repo.ListResponses(complaintID)
	if err != nil {
		return nil, err
	}
	return &models.ComplaintDetail{Complaint: *complaint, Responses: responses}, nil
}

// ListForStudent retrieves a student's complaints, newest first.
func (s *ComplaintService) ListForStudent(studentID int64) ([]models.Complaint, error) {
	return s.repo.ListByStudent(studentID)
}

// ListAll retrieves complaints for admin triage with optional filters.
func (s *ComplaintService) ListAll(status models.ComplaintStatus, categoryID int64) ([]models.Complaint, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	return s.repo.ListAll(status, categoryID)
}
