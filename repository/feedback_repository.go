package repository

import (
	"database/sql"
	"fmt"

	"campusccms/models"
)

// FeedbackRepository handles database operations for complaint feedback
type FeedbackRepository struct {
	db *sql.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// ExistsForComplaint reports whether feedback was already submitted for a
// complaint. One feedback row per complaint, ever.
func (r *FeedbackRepository) ExistsForComplaint(complaintID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM feedback WHERE complaint_id = ?`, complaintID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check feedback existence: %w", err)
	}
	return count > 0, nil
}

// Create inserts a feedback row and sets its generated ID.
func (r *FeedbackRepository) Create(feedback *models.Feedback) error {
	result, err := r.db.Exec(
		`INSERT INTO feedback (student_id, complaint_id, rating, comment) VALUES (?, ?, ?, ?)`,
		feedback.StudentID, feedback.ComplaintID, feedback.Rating, feedback.Comment,
	)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	feedbackID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get feedback ID: %w", err)
	}
	feedback.FeedbackID = feedbackID
	return nil
}

// ListByStudent retrieves a student's submitted feedback, newest first.
func (r *FeedbackRepository) ListByStudent(studentID int64) ([]models.Feedback, error) {
	rows, err := r.db.Query(`
		SELECT feedback_id, student_id, complaint_id, rating, comment, created_at
		FROM feedback
		WHERE student_id = ?
		ORDER BY created_at DESC, feedback_id DESC
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var items []models.Feedback
	for rows.Next() {
		var f models.Feedback
		var comment sql.NullString
		err := rows.Scan(&f.FeedbackID, &f.StudentID, &f.ComplaintID, &f.Rating, &comment, &f.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		f.Comment = comment
		items = append(items, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}
	return items, nil
}
