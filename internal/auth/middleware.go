package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/masteryhub/mastery-hub-be/internal/api/respond"
	"github.com/masteryhub/mastery-hub-be/internal/apperr"
	"github.com/masteryhub/mastery-hub-be/internal/models"
)

// UserResolver loads the persisted record for a token subject.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

type contextKey string

const currentUserKey = contextKey("currentUser")

// CurrentUser returns the authenticated user stored by RequireAuth.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(currentUserKey).(models.User)
	return user, ok
}

// Middleware guards routes with bearer-token authentication and role checks.
type Middleware struct {
	tokens *TokenManager
	users  UserResolver
}

// NewMiddleware creates a Middleware backed by the given token manager and
// user store.
func NewMiddleware(tokens *TokenManager, users UserResolver) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// RequireAuth validates the Authorization header, resolves the active user,
// and stores it in the request context. Every failure mode answers with the
// same unauthenticated error.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			respond.Err(w, ErrInvalidCredentials)
			return
		}

		username, err := m.tokens.Validate(tokenStr)
		if err != nil {
			respond.Err(w, err)
			return
		}

		// A valid token for a since-deleted user is still unauthenticated.
		user, err := m.users.GetByUsername(r.Context(), username)
		if err != nil {
			respond.Err(w, ErrInvalidCredentials)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-admin callers. It must be mounted after
// RequireAuth.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r.Context())
		if !ok {
			respond.Err(w, ErrInvalidCredentials)
			return
		}
		if !user.IsAdmin() {
			respond.Err(w, apperr.New(apperr.Forbidden, "Not enough permissions"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
