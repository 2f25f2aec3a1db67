package service

import (
	"database/sql"
	"fmt"

	"campusccms/models"
	"campusccms/repository"
	"campusccms/utils"
)

// UserService is the actor directory: role-scoped identity lookup for
// students and admins.
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// FindByCredentials resolves an actor by username, password, and required
// role. It returns (nil, nil) alike for an unknown username, a wrong
// password, and a role mismatch; callers cannot tell which check failed
// and must not try to.
func (s *UserService) FindByCredentials(username, password string, role models.Role) (*models.User, error) {
	user, err := s.repo.GetByUsernameAndRole(username, role)
	if err != nil {
		return nil, fmt.Errorf("failed to look up credentials: %w", err)
	}
	if user == nil {
		return nil, nil
	}
	if err := utils.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, nil
	}
	return user, nil
}

// RegisterStudent creates a student account after uniqueness checks on
// username, email, and student number. Duplicates surface as
// models.ErrConflict.
func (s *UserService) RegisterStudent(req *models.RegisterStudentRequest) (*models.User, error) {
	if taken, err := s.repo.ExistsByUsername(req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("username: %w", models.ErrConflict)
	}
	if taken, err := s.repo.ExistsByEmail(req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("email: %w", models.ErrConflict)
	}
	if req.StudentNumber != "" {
		if taken, err := s.repo.ExistsByStudentNumber(req.StudentNumber); err != nil {
			return nil, err
		} else if taken {
			return nil, fmt.Errorf("student number: %w", models.ErrConflict)
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		FullName:     req.FullName,
	}
	if req.StudentNumber != "" {
		user.StudentNumber = sql.NullString{String: req.StudentNumber, Valid: true}
	}

	if err := s.repo.CreateStudent(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID resolves an actor by ID, or models.ErrNotFound.
func (s *UserService) GetByID(userID int64) (*models.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrNotFound
	}
	return user, nil
}

// ListStudents retrieves all student accounts.
func (s *UserService) ListStudents() ([]models.User, error) {
	return s.repo.ListStudents()
}
