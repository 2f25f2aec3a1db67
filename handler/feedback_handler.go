package handler

import (
	"encoding/json"
	"net/http"

	"campusccms/middleware"
	"campusccms/models"
	"campusccms/service"
)

// FeedbackHandler handles HTTP requests for post-resolution feedback
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// Submit handles POST /student/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	studentID, _, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}

	var req models.SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}
	if req.ComplaintID == 0 {
		respondWithError(w, http.StatusBadRequest, "Validation error", "complaint_id is required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondWithError(w, http.StatusBadRequest, "Validation error", "rating must be between 1 and 5")
		return
	}

	feedback, err := h.service.Submit(studentID, req.ComplaintID, req.Rating, req.Comment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]int64{"feedback_id": feedback.FeedbackID})
}

// Eligible handles GET /student/feedback/eligible: solved complaints
// that have not been rated yet.
func (h *FeedbackHandler) Eligible(w http.ResponseWriter, r *http.Request) {
	studentID, _, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}

	complaints, err := h.service.EligibleComplaints(studentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, complaints)
}
