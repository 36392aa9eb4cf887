package repository

import (
	"context"
	"strings"

	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/database/models"
	apperrors "symbiomatch-backend/internal/errors"
)

// UserRepository reads and registers application users
type UserRepository struct {
	gw *database.Gateway
}

// NewUserRepository creates a new user repository
func NewUserRepository(gw *database.Gateway) *UserRepository {
	return &UserRepository{gw: gw}
}

// FindByID retrieves a user by its identity id
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return database.Get[models.User](ctx, r.gw, id)
}

// FindByEmail retrieves a user by email, ignoring case
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := database.Find[models.User](ctx, r.gw, nil, "LOWER(email) = ?", normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.ErrUserNotFound
	}
	return &users[0], nil
}

// Create registers a user. The id is generated when empty and the email is stored
// lowercased, so the unique index rejects addresses that differ only by case.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = normalizeEmail(user.Email)
	return r.gw.Insert(ctx, user)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
