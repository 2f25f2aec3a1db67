package models

import (
	"database/sql"
	"time"
)

// ComplaintStatus represents the possible statuses of a complaint
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusSolved     ComplaintStatus = "Solved"
)

// KnownStatuses lists every status the lifecycle accepts, in display order.
var KnownStatuses = []ComplaintStatus{StatusPending, StatusInProgress, StatusSolved}

// Valid reports whether s is one of the three lifecycle statuses.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusSolved:
		return true
	}
	return false
}

// Role represents an actor role
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User represents a portal account (student or admin)
type User struct {
	UserID        int64          `db:"user_id" json:"user_id"`
	Username      string         `db:"username" json:"username"`
	PasswordHash  string         `db:"password" json:"-"`
	Email         string         `db:"email" json:"email"`
	FullName      string         `db:"full_name" json:"full_name"`
	StudentNumber sql.NullString `db:"student_number" json:"student_number,omitempty"`
	Role          Role           `db:"role" json:"role"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// Category represents static complaint reference data
type Category struct {
	CategoryID  int64          `db:"category_id" json:"category_id"`
	Name        string         `db:"name" json:"name"`
	Description sql.NullString `db:"description" json:"description"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Complaint represents a student-submitted incident report
type Complaint struct {
	ComplaintID  int64           `db:"complaint_id" json:"complaint_id"`
	Number       string          `db:"complaint_number" json:"complaint_number"`
	StudentID    int64           `db:"student_id" json:"student_id"`
	CategoryID   int64           `db:"category_id" json:"category_id"`
	CategoryName string          `db:"category_name" json:"category_name,omitempty"`
	IncidentDate string          `db:"incident_date" json:"incident_date"`
	IncidentTime string          `db:"incident_time" json:"incident_time"`
	Location     string          `db:"location" json:"location"`
	Description  string          `db:"description" json:"description"`
	PhotoPath    sql.NullString  `db:"photo_path" json:"photo_path,omitempty"`
	Status       ComplaintStatus `db:"status" json:"status"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// AdminResponse is one append-only audit trail entry for a complaint.
// System transitions write "Complaint status updated to: {status}";
// manual notes carry free text. Rows are never updated or deleted.
type AdminResponse struct {
	ResponseID  int64     `db:"response_id" json:"response_id"`
	ComplaintID int64     `db:"complaint_id" json:"complaint_id"`
	AdminID     int64     `db:"admin_id" json:"admin_id"`
	AdminName   string    `db:"admin_name" json:"admin_name,omitempty"`
	Response    string    `db:"response" json:"response"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Message represents one direct message between a student and an admin
type Message struct {
	MessageID    int64     `db:"message_id" json:"message_id"`
	SenderID     int64     `db:"sender_id" json:"sender_id"`
	ReceiverID   int64     `db:"receiver_id" json:"receiver_id"`
	SenderName   string    `db:"sender_name" json:"sender_name,omitempty"`
	ReceiverName string    `db:"receiver_name" json:"receiver_name,omitempty"`
	Body         string    `db:"message" json:"message"`
	IsRead       bool      `db:"is_read" json:"is_read"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Feedback is a student's one-time rating of a solved complaint
type Feedback struct {
	FeedbackID  int64          `db:"feedback_id" json:"feedback_id"`
	StudentID   int64          `db:"student_id" json:"student_id"`
	ComplaintID int64          `db:"complaint_id" json:"complaint_id"`
	Rating      int            `db:"rating" json:"rating"`
	Comment     sql.NullString `db:"comment" json:"comment,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}
