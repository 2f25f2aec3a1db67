package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"campusccms/config"
	"campusccms/notification"
	"campusccms/repository"
	"campusccms/routes"
	"campusccms/schema"
	"campusccms/service"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize database connection (UTC for consistent timestamps)
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Database connection established")

	// Create tables and seed reference data
	schema.InitializeDatabase(db)
	schema.SeedReferenceData(db, cfg.Auth.DefaultAdminPass)

	// Select the notification channel at startup. The choice is fixed
	// for the process lifetime; a missing API key means log-only mode,
	// where logged deliveries count as accepted.
	var channel notification.Channel
	if cfg.Mail.SendGridAPIKey != "" {
		channel = notification.NewSendGridChannel(cfg.Mail.SendGridAPIKey, cfg.Mail.FromEmail, cfg.Mail.FromName)
		log.Println("Notification channel: sendgrid")
	} else {
		channel = notification.NewLogChannel()
		log.Println("Notification channel: log-only (SENDGRID_API_KEY not set)")
	}
	dispatcher := notification.NewDispatcher(channel)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	complaintService := service.NewComplaintService(complaintRepo, categoryRepo, userRepo, dispatcher)
	lifecycleService := service.NewLifecycleService(complaintRepo, userRepo, dispatcher)
	messageService := service.NewMessageService(messageRepo, userRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo, complaintRepo)

	// Setup routes
	router := routes.SetupRoutes(
		cfg.Auth,
		userService,
		complaintService,
		lifecycleService,
		messageService,
		feedbackService,
		complaintRepo,
		userRepo,
		categoryRepo,
		reportRepo,
	)

	// Add CORS middleware
	corsHandler := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}

	// Wrap router with CORS middleware
	handler := corsHandler(router)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
