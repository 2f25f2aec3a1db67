package routes

import (
	"net/http"

	"campusccms/config"
	"campusccms/handler"
	"campusccms/middleware"
	"campusccms/models"
	"campusccms/repository"
	"campusccms/service"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	authConfig config.AuthConfig,
	userService *service.UserService,
	complaintService *service.ComplaintService,
	lifecycleService *service.LifecycleService,
	messageService *service.MessageService,
	feedbackService *service.FeedbackService,
	complaintRepo *repository.ComplaintRepository,
	userRepo *repository.UserRepository,
	categoryRepo *repository.CategoryRepository,
	reportRepo *repository.ReportRepository,
) *mux.Router {
	router := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, authConfig)
	complaintHandler := handler.NewComplaintHandler(complaintService, lifecycleService, categoryRepo)
	messageHandler := handler.NewMessageHandler(messageService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	dashboardHandler := handler.NewDashboardHandler(complaintRepo, userRepo, messageService)
	reportHandler := handler.NewReportHandler(reportRepo)

	authMiddleware := middleware.NewAuthMiddleware(authConfig.JWTSecret)

	// API v1 routes
	apiV1 := router.PathPrefix("/api/v1").Subrouter()

	// Auth routes (public)
	auth := apiV1.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/student/register", authHandler.RegisterStudent).Methods("POST")
	auth.HandleFunc("/student/login", authHandler.LoginStudent).Methods("POST")
	auth.HandleFunc("/admin/login", authHandler.LoginAdmin).Methods("POST")

	// Category listing (public read)
	apiV1.HandleFunc("/categories", complaintHandler.ListCategories).Methods("GET")

	// Student routes (require student token)
	student := apiV1.PathPrefix("/student").Subrouter()
	requireStudent := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.RequireRole(models.RoleStudent, h)
	}
	student.Handle("/dashboard", requireStudent(dashboardHandler.Student)).Methods("GET")
	student.Handle("/complaints", requireStudent(complaintHandler.Create)).Methods("POST")
	student.Handle("/complaints", requireStudent(complaintHandler.ListMine)).Methods("GET")
	student.Handle("/complaints/{id}", requireStudent(complaintHandler.GetMine)).Methods("GET")
	student.Handle("/messages", requireStudent(messageHandler.Send)).Methods("POST")
	student.Handle("/messages", requireStudent(messageHandler.History)).Methods("GET")
	student.Handle("/inbox", requireStudent(messageHandler.Inbox)).Methods("GET")
	student.Handle("/feedback", requireStudent(feedbackHandler.Submit)).Methods("POST")
	student.Handle("/feedback/eligible", requireStudent(feedbackHandler.Eligible)).Methods("GET")

	// Admin routes (require admin token)
	admin := apiV1.PathPrefix("/admin").Subrouter()
	requireAdmin := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.RequireRole(models.RoleAdmin, h)
	}
	admin.Handle("/dashboard", requireAdmin(dashboardHandler.Admin)).Methods("GET")
	admin.Handle("/students", requireAdmin(dashboardHandler.Students)).Methods("GET")
	admin.Handle("/complaints", requireAdmin(complaintHandler.ListAll)).Methods("GET")
	admin.Handle("/complaints/{id}", requireAdmin(complaintHandler.GetDetail)).Methods("GET")
	admin.Handle("/complaints/{id}/status", requireAdmin(complaintHandler.UpdateStatus)).Methods("POST")
	admin.Handle("/complaints/{id}/responses", requireAdmin(complaintHandler.AddResponse)).Methods("POST")
	admin.Handle("/messages", requireAdmin(messageHandler.Send)).Methods("POST")
	admin.Handle("/inbox", requireAdmin(messageHandler.Inbox)).Methods("GET")
	admin.Handle("/reports/categories", requireAdmin(reportHandler.Categories)).Methods("GET")
	admin.Handle("/reports/volume", requireAdmin(reportHandler.Volume)).Methods("GET")

	// Mark a single message read (either role)
	apiV1.Handle("/messages/{id}/read",
		authMiddleware.RequireAny(http.HandlerFunc(messageHandler.MarkRead))).Methods("POST")

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}
