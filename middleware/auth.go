package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"campusccms/models"
)

type contextKey string

const (
	actorIDKey   contextKey = "actor_id"
	actorRoleKey contextKey = "actor_role"
)

// AuthMiddleware validates JWT tokens and places the acting identity in
// the request context. Every core operation downstream receives the
// actor explicitly; no ambient session state.
type AuthMiddleware struct {
	jwtSecret []byte
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: []byte(jwtSecret)}
}

// RequireRole validates the bearer token and rejects tokens whose role
// claim does not match. Role mismatches are 403, token problems 401.
func (m *AuthMiddleware) RequireRole(role models.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid authorization format. Expected: Bearer <token>")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid token claims")
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid token: user_id not found")
			return
		}
		roleClaim, _ := claims["role"].(string)
		if models.Role(roleClaim) != role {
			respondWithError(w, http.StatusForbidden, "Forbidden", "Token role not permitted for this endpoint")
			return
		}

		ctx := context.WithValue(r.Context(), actorIDKey, int64(userIDFloat))
		ctx = context.WithValue(ctx, actorRoleKey, models.Role(roleClaim))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAny validates the bearer token for either role (shared
// endpoints such as single-message mark-read).
func (m *AuthMiddleware) RequireAny(next http.Handler) http.Handler {
	student := m.RequireRole(models.RoleStudent, next)
	admin := m.RequireRole(models.RoleAdmin, next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Try the role claim first so the right wrapper handles it.
		if roleFromToken(r, m.jwtSecret) == models.RoleAdmin {
			admin.ServeHTTP(w, r)
			return
		}
		student.ServeHTTP(w, r)
	})
}

func roleFromToken(r *http.Request, secret []byte) models.Role {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 {
		return ""
	}
	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	role, _ := claims["role"].(string)
	return models.Role(role)
}

// ActorFromContext returns the authenticated actor's ID and role.
func ActorFromContext(ctx context.Context) (int64, models.Role, error) {
	userID, ok := ctx.Value(actorIDKey).(int64)
	if !ok {
		return 0, "", fmt.Errorf("actor not found in context")
	}
	role, ok := ctx.Value(actorRoleKey).(models.Role)
	if !ok {
		return 0, "", fmt.Errorf("actor role not found in context")
	}
	return userID, role, nil
}

// WithActor places an actor in the context. Test helper and internal
// entry point for non-HTTP callers.
func WithActor(ctx context.Context, userID int64, role models.Role) context.Context {
	ctx = context.WithValue(ctx, actorIDKey, userID)
	return context.WithValue(ctx, actorRoleKey, role)
}

func respondWithError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	fmt.Fprintf(w, `{"error":%q,"message":%q,"code":%d}`, errorType, message, statusCode)
}
