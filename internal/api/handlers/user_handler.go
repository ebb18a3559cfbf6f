package handlers

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/masteryhub/mastery-hub-be/internal/api/respond"
	"github.com/masteryhub/mastery-hub-be/internal/apperr"
	"github.com/masteryhub/mastery-hub-be/internal/auth"
	"github.com/masteryhub/mastery-hub-be/internal/models"
	"github.com/masteryhub/mastery-hub-be/internal/services"
)

// UserHandler handles registration, login, and user management endpoints.
type UserHandler struct {
	users    services.UserServiceProvider
	activity services.ActivityServiceProvider
	tokens   *auth.TokenManager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, activity services.ActivityServiceProvider, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{users: users, activity: activity, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the login success body.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Err(w, apperr.New(apperr.BadRequest, "Invalid request body"))
		return
	}
	if payload.Username == "" || payload.Password == "" {
		respond.Err(w, apperr.New(apperr.BadRequest, "Username and password are required"))
		return
	}

	user, err := h.users.Register(r.Context(), payload.Username, payload.Email, payload.Password, payload.Role)
	if err != nil {
		if apperr.KindOf(err) == apperr.Internal {
			log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		}
		respond.Err(w, err)
		return
	}

	h.activity.Record(r.Context(), models.ActivityLog{
		UserID:    &user.ID,
		Username:  &user.Username,
		Action:    "register",
		Details:   fmt.Sprintf("New user registered with role %s", user.Role),
		LogType:   models.LogTypeUser,
		LogLevel:  models.LogLevelInfo,
		IPAddress: clientIP(r),
	})

	respond.JSON(w, http.StatusOK, user)
}

// Login authenticates a user and issues a bearer token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Err(w, apperr.New(apperr.BadRequest, "Invalid request body"))
		return
	}

	user, err := h.users.Authenticate(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if apperr.KindOf(err) == apperr.Internal {
			// Unexpected failure: keep the detail in the log, not the response.
			log.Error().Err(err).Str("username", payload.Username).Msg("Login failed unexpectedly")
			respond.Err(w, apperr.New(apperr.Internal, "Login failed"))
			return
		}
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		respond.Err(w, err)
		return
	}

	token, err := h.tokens.Generate(user.Username)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("Failed to generate token")
		respond.Err(w, apperr.New(apperr.Internal, "Login failed"))
		return
	}

	sessionID := uuid.New().String()
	h.activity.Record(r.Context(), models.ActivityLog{
		UserID:    &user.ID,
		Username:  &user.Username,
		Action:    "login",
		Details:   fmt.Sprintf("User logged in with role %s", user.Role),
		LogType:   models.LogTypeUser,
		LogLevel:  models.LogLevelSuccess,
		IPAddress: clientIP(r),
		SessionID: &sessionID,
	})

	respond.JSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// Me returns the authenticated user's own record.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respond.Err(w, auth.ErrInvalidCredentials)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

// List returns every user account. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

// UpdateRole changes a user's role. Admin only.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		respond.Err(w, err)
		return
	}

	var payload struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Err(w, apperr.New(apperr.BadRequest, "Invalid request body"))
		return
	}

	if err := h.users.UpdateRole(r.Context(), id, payload.Role); err != nil {
		if apperr.KindOf(err) == apperr.Internal {
			log.Error().Err(err).Int64("user_id", id).Msg("Failed to update user role")
		}
		respond.Err(w, err)
		return
	}
	respond.Message(w, http.StatusOK, "User role updated successfully")
}

// Delete removes a user account. Admin only; self-deletion is rejected.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		respond.Err(w, err)
		return
	}

	actor, ok := auth.CurrentUser(r.Context())
	if !ok {
		respond.Err(w, auth.ErrInvalidCredentials)
		return
	}

	if err := h.users.Delete(r.Context(), id, actor.ID); err != nil {
		if apperr.KindOf(err) == apperr.Internal {
			log.Error().Err(err).Int64("user_id", id).Msg("Failed to delete user")
		}
		respond.Err(w, err)
		return
	}
	respond.Message(w, http.StatusOK, "User deleted successfully")
}

func userID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.BadRequest, "Invalid user id")
	}
	return id, nil
}

// clientIP returns the caller's address with the port stripped. The RealIP
// middleware has already unwrapped any proxy headers.
func clientIP(r *http.Request) *string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return nil
	}
	return &host
}
