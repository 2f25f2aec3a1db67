package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"campusccms/config"
	"campusccms/models"
	"campusccms/service"
	"campusccms/utils"
)

// AuthHandler handles registration and role-scoped login
type AuthHandler struct {
	userService *service.UserService
	authConfig  config.AuthConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *service.UserService, authConfig config.AuthConfig) *AuthHandler {
	return &AuthHandler{userService: userService, authConfig: authConfig}
}

// RegisterStudent handles POST /auth/student/register
func (h *AuthHandler) RegisterStudent(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}
	if req.Username == "" || req.Password == "" || req.Email == "" || req.FullName == "" {
		respondWithError(w, http.StatusBadRequest, "Validation error", "username, password, email, and full_name are required")
		return
	}

	user, err := h.userService.RegisterStudent(&req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			respondWithError(w, http.StatusConflict, "Conflict", err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal error", err.Error())
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

// LoginStudent handles POST /auth/student/login
func (h *AuthHandler) LoginStudent(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, models.RoleStudent)
}

// LoginAdmin handles POST /auth/admin/login
func (h *AuthHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, models.RoleAdmin)
}

// login performs a role-scoped credential check. Unknown username, wrong
// password, and role mismatch all produce the same 401; the response
// never reveals which check failed.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, role models.Role) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	user, err := h.userService.FindByCredentials(req.Username, req.Password, role)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal error", err.Error())
		return
	}
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user.UserID, string(user.Role), []byte(h.authConfig.JWTSecret), h.authConfig.TokenTTLHours)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal error", "Failed to issue token")
		return
	}

	respondWithJSON(w, http.StatusOK, models.LoginResponse{
		Token:    token,
		UserID:   user.UserID,
		FullName: user.FullName,
		Role:     user.Role,
	})
}
