package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"campusccms/middleware"
	"campusccms/models"
	"campusccms/repository"
	"campusccms/service"
)

// ComplaintHandler handles HTTP requests for complaints
type ComplaintHandler struct {
	service          *service.ComplaintService
	lifecycleService *service.LifecycleService
	categoryRepo     *repository.CategoryRepository
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(
	svc *service.ComplaintService,
	lifecycleService *service.LifecycleService,
	categoryRepo *repository.CategoryRepository,
) *ComplaintHandler {
	return &ComplaintHandler{
		service:          svc,
		lifecycleService: lifecycleService,
		categoryRepo:     categoryRepo,
	}
}

// Create handles POST /student/complaints
func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	studentID, _, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}

	var req models.CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}
	if req.CategoryID == 0 {
		respondWithError(w, http.StatusBadRequest, "Validation error", "category_id is required")
		return
	}
	if req.Description == "" {
		respondWithError(w, http.StatusBadRequest, "Validation error", "description is required")
		return
	}

	response, err := h.service.Create(r.Context(), studentID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, response)
}

// ListMine handles GET /student/complaints
func (h *ComplaintHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	studentID, _, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}

	complaints, err := h.service.ListForStudent(studentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, complaints)
}

// GetMine handles GET /student/complaints/{id}; owner-scoped detail view.
func (h *ComplaintHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	studentID, _, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}
	complaintID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid complaint ID")
		return
	}

	detail, err := h.service.GetForStudent(complaintID, studentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

// ListAll handles GET /admin/complaints with optional ?status= and
// ?category= filters.
func (h *ComplaintHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	status := models.ComplaintStatus(r.URL.Query().Get("status"))
	var categoryID int64
	if raw := r.URL.Query().Get("category"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid category filter")
			return
		}
		categoryID = parsed
	}
	if status != "" && !status.Valid() {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Unknown status filter")
		return
	}

	complaints, err := h.service.ListAll(status, categoryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, complaints)
}

// GetDetail handles GET /admin/complaints/{id}
func (h *ComplaintHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	complaintID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid complaint ID")
		return
	}

	detail, err := h.service.GetForAdmin(complaintID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

// UpdateStatus handles POST /admin/complaints/{id}/status. The response
// always carries both outcomes: status_changed and notification_sent.
func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	adminID, _, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}
	complaintID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid complaint ID")
		return
	}

	var req models.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}
	if !req.Status.Valid() {
		respondWithError(w, http.StatusBadRequest, "Validation error", "status must be one of: Pending, In Progress, Solved")
		return
	}

	result, err := h.lifecycleService.Transition(r.Context(), complaintID, req.Status, adminID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// AddResponse handles POST /admin/complaints/{id}/responses: a manual
// free-text audit note without a status change.
func (h *ComplaintHandler) AddResponse(w http.ResponseWriter, r *http.Request) {
	adminID, _, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}
	complaintID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid complaint ID")
		return
	}

	var req models.AddResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}
	if req.Response == "" {
		respondWithError(w, http.StatusBadRequest, "Validation error", "response is required")
		return
	}

	if err := h.lifecycleService.AddResponse(complaintID, adminID, req.Response); err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

// ListCategories handles GET /categories
func (h *ComplaintHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.List()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

// pathID parses an int64 path variable.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
