package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/masteryhub/mastery-hub-be/internal/apperr"
	"github.com/masteryhub/mastery-hub-be/internal/auth"
	"github.com/masteryhub/mastery-hub-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, username string, email *string, password, role string) (models.User, error)
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id int64, role string) error
	Delete(ctx context.Context, id, actorID int64) error
}

// UserService provides business logic for account management.
type UserService struct {
	db *bun.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *bun.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new account with a freshly hashed password. Duplicate
// usernames and emails are rejected before the insert; a racing insert that
// slips past the checks surfaces as the same conflict via the storage
// uniqueness constraint.
func (s *UserService) Register(ctx context.Context, username string, email *string, password, role string) (models.User, error) {
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return models.User{}, apperr.New(apperr.BadRequest, "Invalid role")
	}

	exists, err := s.db.NewSelect().Model((*models.User)(nil)).
		Where("username = ?", username).Exists(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return models.User{}, apperr.New(apperr.Conflict, "Username already registered")
	}

	if email != nil && *email != "" {
		exists, err := s.db.NewSelect().Model((*models.User)(nil)).
			Where("email = ?", *email).Exists(ctx)
		if err != nil {
			return models.User{}, fmt.Errorf("check email: %w", err)
		}
		if exists {
			return models.User{}, apperr.New(apperr.Conflict, "Email already registered")
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if _, err := s.db.NewInsert().Model(&user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, apperr.Wrap(apperr.Conflict, "Username or email already registered", err)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and wrong
// passwords produce the identical error so callers cannot enumerate accounts.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	badCredentials := apperr.New(apperr.Unauthenticated, "Incorrect username or password")

	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return models.User{}, badCredentials
		}
		return models.User{}, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return models.User{}, badCredentials
	}
	return user, nil
}

// GetByUsername retrieves a single user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.NewSelect().Model(&user).Where("username = ?", username).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperr.New(apperr.NotFound, "User not found")
		}
		return models.User{}, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a single user by their ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := s.db.NewSelect().Model(&user).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperr.New(apperr.NotFound, "User not found")
		}
		return models.User{}, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

// List returns every account, oldest first. No pagination; the user table is
// expected to stay small.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.NewSelect().Model(&users).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateRole changes a user's role to one of the accepted values.
func (s *UserService) UpdateRole(ctx context.Context, id int64, role string) error {
	if !models.ValidRole(role) {
		return apperr.New(apperr.BadRequest, "Invalid role")
	}
	res, err := s.db.NewUpdate().Model((*models.User)(nil)).
		Set("role = ?", role).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.New(apperr.NotFound, "User not found")
	}
	return nil
}

// Delete removes an account. Admins may not delete themselves.
func (s *UserService) Delete(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return apperr.New(apperr.BadRequest, "Cannot delete your own account")
	}
	res, err := s.db.NewDelete().Model((*models.User)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.New(apperr.NotFound, "User not found")
	}
	return nil
}

// isUniqueViolation sniffs driver errors for a uniqueness-constraint failure.
// Both sqlite drivers the shim can pick report it in the message text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "constraint failed")
}
