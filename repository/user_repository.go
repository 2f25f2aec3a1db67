package repository

import (
	"database/sql"
	"fmt"

	"campusccms/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, username, password, email, full_name, student_number, role, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.FullName,
		&user.StudentNumber,
		&user.Role,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // user doesn't exist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

// GetByUsernameAndRole retrieves a user by username scoped to a role.
// Returns (nil, nil) when no such user exists.
func (r *UserRepository) GetByUsernameAndRole(username string, role models.Role) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = ? AND role = ? LIMIT 1`, userColumns)
	return scanUser(r.db.QueryRow(query, username, role))
}

// GetByID retrieves a user by ID. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(userID int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = ? LIMIT 1`, userColumns)
	return scanUser(r.db.QueryRow(query, userID))
}

// CreateStudent inserts a student account and sets its generated ID.
func (r *UserRepository) CreateStudent(user *models.User) error {
	result, err := r.db.Exec(
		`INSERT INTO users (username, password, email, full_name, student_number, role)
		 VALUES (?, ?, ?, ?, ?, 'student')`,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.FullName,
		user.StudentNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}

	userID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user ID: %w", err)
	}
	user.UserID = userID
	user.Role = models.RoleStudent
	return nil
}

// ExistsByUsername reports whether a username is already taken.
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

// ExistsByEmail reports whether an email is already registered.
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// ExistsByStudentNumber reports whether a student number is already registered.
func (r *UserRepository) ExistsByStudentNumber(studentNumber string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE student_number = ?`, studentNumber).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check student number: %w", err)
	}
	return count > 0, nil
}

// GetSupportAdmin returns the support mailbox account: the admin with the
// lowest user_id. The selection is deterministic so every student message
// lands in the same logical inbox no matter how many admins exist.
// Returns (nil, nil) when no admin account exists.
func (r *UserRepository) GetSupportAdmin() (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE role = 'admin' ORDER BY user_id ASC LIMIT 1`, userColumns)
	return scanUser(r.db.QueryRow(query))
}

// ListStudents retrieves all student accounts, oldest first.
func (r *UserRepository) ListStudents() ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE role = 'student' ORDER BY user_id ASC`, userColumns)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var students []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.UserID,
			&user.Username,
			&user.PasswordHash,
			&user.Email,
			&user.FullName,
			&user.StudentNumber,
			&user.Role,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}
	return students, nil
}

// CountStudents returns the number of student accounts.
func (r *UserRepository) CountStudents() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'student'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}
