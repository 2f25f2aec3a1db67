package repository

import (
	"database/sql"
	"fmt"
	"time"

	"campusccms/models"

	"github.com/google/uuid"
)

// ComplaintRepository handles database operations for complaints and their
// append-only admin_responses audit trail.
type ComplaintRepository struct {
	db *sql.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *sql.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// GenerateComplaintNumber generates a unique public-facing complaint number.
// Format: CCMS-YYYYMMDD-{UUID}
func (r *ComplaintRepository) GenerateComplaintNumber() string {
	datePrefix := time.Now().UTC().Format("20060102")
	uniqueID := uuid.New().String()[:8]
	return fmt.Sprintf("CCMS-%s-%s", datePrefix, uniqueID)
}

// Create inserts a new complaint and sets its generated ID.
// Status is always Pending at creation.
func (r *ComplaintRepository) Create(complaint *models.Complaint) error {
	result, err := r.db.Exec(
		`INSERT INTO complaints
			(complaint_number, student_id, category_id, incident_date, incident_time,
			 location, description, photo_path, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		complaint.Number,
		complaint.StudentID,
		complaint.CategoryID,
		complaint.IncidentDate,
		complaint.IncidentTime,
		complaint.Location,
		complaint.Description,
		complaint.PhotoPath,
		models.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}

	complaintID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get complaint ID: %w", err)
	}
	complaint.ComplaintID = complaintID
	complaint.Status = models.StatusPending
	return nil
}

const complaintSelect = `
	SELECT c.complaint_id, c.complaint_number, c.student_id, c.category_id,
	       cc.name, c.incident_date, c.incident_time, c.location, c.description,
	       c.photo_path, c.status, c.created_at, c.updated_at
	FROM complaints c
	JOIN complaint_categories cc ON c.category_id = cc.category_id`

func scanComplaint(scan func(dest ...any) error) (*models.Complaint, error) {
	var c models.Complaint
	err := scan(
		&c.ComplaintID, &c.Number, &c.StudentID, &c.CategoryID,
		&c.CategoryName, &c.IncidentDate, &c.IncidentTime, &c.Location,
		&c.Description, &c.PhotoPath, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID retrieves a complaint with its category name.
func (r *ComplaintRepository) GetByID(complaintID int64) (*models.Complaint, error) {
	row := r.db.QueryRow(complaintSelect+` WHERE c.complaint_id = ?`, complaintID)
	complaint, err := scanComplaint(row.Scan)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return complaint, nil
}

// GetByIDForStudent retrieves a complaint only if the student owns it.
func (r *ComplaintRepository) GetByIDForStudent(complaintID, studentID int64) (*models.Complaint, error) {
	row := r.db.QueryRow(complaintSelect+` WHERE c.complaint_id = ? AND c.student_id = ?`,
		complaintID, studentID)
	complaint, err := scanComplaint(row.Scan)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return complaint, nil
}

func (r *ComplaintRepository) queryComplaints(query string, args ...any) ([]models.Complaint, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		complaint, err := scanComplaint(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}
		complaints = append(complaints, *complaint)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaints: %w", err)
	}
	return complaints, nil
}

// ListByStudent retrieves all complaints owned by a student, newest first.
func (r *ComplaintRepository) ListByStudent(studentID int64) ([]models.Complaint, error) {
	return r.queryComplaints(complaintSelect+` WHERE c.student_id = ? ORDER BY c.created_at DESC, c.complaint_id DESC`, studentID)
}

// ListAll retrieves complaints for the admin triage view with optional
// status and category filters (zero values mean no filter).
func (r *ComplaintRepository) ListAll(status models.ComplaintStatus, categoryID int64) ([]models.Complaint, error) {
	query := complaintSelect + ` WHERE 1=1`
	var args []any
	if status != "" {
		query += ` AND c.status = ?`
		args = append(args, status)
	}
	if categoryID != 0 {
		query += ` AND c.category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY c.created_at DESC, c.complaint_id DESC`
	return r.queryComplaints(query, args...)
}

// ListRecent retrieves the newest complaints up to limit; studentID of 0
// means across all students.
func (r *ComplaintRepository) ListRecent(studentID int64, limit int) ([]models.Complaint, error) {
	if studentID != 0 {
		return r.queryComplaints(complaintSelect+` WHERE c.student_id = ? ORDER BY c.created_at DESC, c.complaint_id DESC LIMIT ?`,
			studentID, limit)
	}
	return r.queryComplaints(complaintSelect+` ORDER BY c.created_at DESC, c.complaint_id DESC LIMIT ?`, limit)
}

// ListSolvedWithoutFeedback retrieves a student's solved complaints that
// have no feedback row yet (candidates for the feedback form).
func (r *ComplaintRepository) ListSolvedWithoutFeedback(studentID int64) ([]models.Complaint, error) {
	query := complaintSelect + `
	LEFT JOIN feedback f ON f.complaint_id = c.complaint_id
	WHERE c.student_id = ? AND c.status = ? AND f.feedback_id IS NULL
	ORDER BY c.created_at DESC, c.complaint_id DESC`
	return r.queryComplaints(query, studentID, models.StatusSolved)
}

// TransitionStatus atomically updates a complaint's status and refreshes
// updated_at, and appends the matching audit row to admin_responses. The
// two writes run in one transaction: a status update must never be
// observed without its audit row, and vice versa.
func (r *ComplaintRepository) TransitionStatus(
	complaintID int64,
	newStatus models.ComplaintStatus,
	adminID int64,
	responseText string,
) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE complaints SET status = ?, updated_at = NOW() WHERE complaint_id = ?`,
		newStatus, complaintID,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update complaint status: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO admin_responses (complaint_id, admin_id, response) VALUES (?, ?, ?)`,
		complaintID, adminID, responseText,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert admin response: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transition: %w", err)
	}
	return nil
}

// InsertResponse appends a manual admin note to the audit trail without
// touching the complaint's status.
func (r *ComplaintRepository) InsertResponse(complaintID, adminID int64, responseText string) error {
	_, err := r.db.Exec(
		`INSERT INTO admin_responses (complaint_id, admin_id, response) VALUES (?, ?, ?)`,
		complaintID, adminID, responseText,
	)
	if err != nil {
		return fmt.Errorf("failed to insert admin response: %w", err)
	}
	return nil
}

// ListResponses retrieves the complaint's audit trail with admin names,
// oldest first.
func (r *ComplaintRepository) ListResponses(complaintID int64) ([]models.AdminResponse, error) {
	rows, err := r.db.Query(`
		SELECT ar.response_id, ar.complaint_id, ar.admin_id, u.full_name, ar.response, ar.created_at
		FROM admin_responses ar
		JOIN users u ON ar.admin_id = u.user_id
		WHERE ar.complaint_id = ?
		ORDER BY ar.created_at ASC, ar.response_id ASC
	`, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	var responses []models.AdminResponse
	for rows.Next() {
		var resp models.AdminResponse
		err := rows.Scan(&resp.ResponseID, &resp.ComplaintID, &resp.AdminID,
			&resp.AdminName, &resp.Response, &resp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}
	return responses, nil
}

// CountByStatus counts complaints in a status; studentID of 0 counts
// across all students, and an empty status counts every complaint.
func (r *ComplaintRepository) CountByStatus(studentID int64, status models.ComplaintStatus) (int, error) {
	query := `SELECT COUNT(*) FROM complaints WHERE 1=1`
	var args []any
	if studentID != 0 {
		query += ` AND student_id = ?`
		args = append(args, studentID)
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count complaints: %w", err)
	}
	return count, nil
}
