package service

import (
	"testing"
	"time"

	"campusccms/models"
	"campusccms/repository"
	"campusccms/utils"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*UserService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := NewUserService(repository.NewUserRepository(db))
	return svc, mock, func() { db.Close() }
}

func TestFindByCredentialsSuccess(t *testing.T) {
	svc, mock, cleanup := newUserFixture(t)
	defer cleanup()

	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)

	rows := sqlmock.NewRows(userColumns).AddRow(
		int64(5), "maria", hash, "maria@campus.edu", "Maria Santos",
		"2021-00123", "student", time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("maria", models.RoleStudent).
		WillReturnRows(rows)

	user, err := svc.FindByCredentials("maria", "correct horse", models.RoleStudent)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(5), user.UserID)
}

func TestFindByCredentialsFailuresAreIndistinguishable(t *testing.T) {
	// Unknown username, wrong password, and role mismatch all come back
	// as (nil, nil); the caller cannot learn which check failed.
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
	}{
		{
			name: "unknown username",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
					WithArgs("ghost", models.RoleStudent).
					WillReturnRows(sqlmock.NewRows(userColumns))
			},
		},
		{
			name: "wrong password",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(userColumns).AddRow(
					int64(5), "ghost", hash, "m@campus.edu", "M",
					nil, "student", time.Now(),
				)
				mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
					WithArgs("ghost", models.RoleStudent).
					WillReturnRows(rows)
			},
		},
		{
			name: "role mismatch",
			setup: func(mock sqlmock.Sqlmock) {
				// The role is part of the lookup, so an admin account
				// simply does not match a student-scoped query.
				mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
					WithArgs("ghost", models.RoleStudent).
					WillReturnRows(sqlmock.NewRows(userColumns))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, mock, cleanup := newUserFixture(t)
			defer cleanup()
			tc.setup(mock)

			password := "correct horse"
			if tc.name == "wrong password" {
				password = "wrong horse"
			}
			user, err := svc.FindByCredentials("ghost", password, models.RoleStudent)

			assert.NoError(t, err)
			assert.Nil(t, user)
		})
	}
}

func TestRegisterStudent(t *testing.T) {
	svc, mock, cleanup := newUserFixture(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT(.+) FROM users WHERE username").
		WithArgs("juan").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT(.+) FROM users WHERE email").
		WithArgs("juan@campus.edu").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT(.+) FROM users WHERE student_number").
		WithArgs("2021-00456").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(6, 1))

	user, err := svc.RegisterStudent(&models.RegisterStudentRequest{
		Username:      "juan",
		Password:      "secret123",
		Email:         "juan@campus.edu",
		FullName:      "Juan Dela Cruz",
		StudentNumber: "2021-00456",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(6), user.UserID)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NoError(t, utils.CheckPassword("secret123", user.PasswordHash))
}

func TestRegisterStudentDuplicateUsername(t *testing.T) {
	svc, mock, cleanup := newUserFixture(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT(.+) FROM users WHERE username").
		WithArgs("maria").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	user, err := svc.RegisterStudent(&models.RegisterStudentRequest{
		Username: "maria",
		Password: "secret123",
		Email:    "maria2@campus.edu",
		FullName: "Maria Santos",
	})

	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet(), "no insert after a failed uniqueness check")
}
