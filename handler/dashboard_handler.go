package handler

import (
	"net/http"

	"campusccms/middleware"
	"campusccms/models"
	"campusccms/repository"
	"campusccms/service"
)

const dashboardRecentLimit = 5

// DashboardHandler assembles the landing-page counters for both roles
type DashboardHandler struct {
	complaintRepo  *repository.ComplaintRepository
	userRepo       *repository.UserRepository
	messageService *service.MessageService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	complaintRepo *repository.ComplaintRepository,
	userRepo *repository.UserRepository,
	messageService *service.MessageService,
) *DashboardHandler {
	return &DashboardHandler{
		complaintRepo:  complaintRepo,
		userRepo:       userRepo,
		messageService: messageService,
	}
}

// Student handles GET /student/dashboard
func (h *DashboardHandler) Student(w http.ResponseWriter, r *http.Request) {
	studentID, _, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}

	var dashboard models.StudentDashboard

	if dashboard.TotalComplaints, err = h.complaintRepo.CountByStatus(studentID, ""); err != nil {
		respondServiceError(w, err)
		return
	}
	if dashboard.PendingComplaints, err = h.complaintRepo.CountByStatus(studentID, models.StatusPending); err != nil {
		respondServiceError(w, err)
		return
	}
	if dashboard.SolvedComplaints, err = h.complaintRepo.CountByStatus(studentID, models.StatusSolved); err != nil {
		respondServiceError(w, err)
		return
	}
	if dashboard.UnreadMessages, err = h.messageService.UnreadCount(studentID); err != nil {
		respondServiceError(w, err)
		return
	}
	if dashboard.RecentComplaints, err = h.complaintRepo.ListRecent(studentID, dashboardRecentLimit); err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}

// Students handles GET /admin/students, the directory behind the admin
// messaging view.
func (h *DashboardHandler) Students(w http.ResponseWriter, r *http.Request) {
	students, err := h.userRepo.ListStudents()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, students)
}

// Admin handles GET /admin/dashboard
func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	adminID, _, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}

	var dashboard models.AdminDashboard

	if dashboard.TotalStudents, err = h.userRepo.CountStudents(); err != nil {
		respondServiceError(w, err)
		return
	}
	if dashboard.TotalComplaints, err = h.complaintRepo.CountByStatus(0, ""); err != nil {
		respondServiceError(w, err)
		return
	}
	if dashboard.PendingComplaints, err = h.complaintRepo.CountByStatus(0, models.StatusPending); err != nil {
		respondServiceError(w, err)
		return
	}
	if dashboard.SolvedComplaints, err = h.complaintRepo.CountByStatus(0, models.StatusSolved); err != nil {
		respondServiceError(w, err)
		return
	}
	if dashboard.RecentComplaints, err = h.complaintRepo.ListRecent(0, dashboardRecentLimit); err != nil {
		respondServiceError(w, err)
		return
	}
	// Preview only: listing recent messages here does not mark them read.
	if dashboard.RecentMessages, err = h.messageService.RecentReceived(adminID, dashboardRecentLimit); err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}
