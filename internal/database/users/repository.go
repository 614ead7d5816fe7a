// Package users provides database operations for the credential store.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByEmail(ctx, "reader@example.com")
package users

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/elibrary/internal/apperr"
	"github.com/mrlokans/elibrary/internal/database"
	"github.com/mrlokans/elibrary/internal/entities"
)

var (
	ErrUserNotFound = apperr.NotFound("User not found")
	ErrEmailTaken   = apperr.Conflict("Email already registered")
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a user. A unique violation on email, including one
// caused by a concurrent registration, is reported as ErrEmailTaken.
func (r *Repository) CreateUser(ctx context.Context, user *entities.User) error {
	user.IsActive = true
	err := r.db.WithContext(ctx).Create(user).Error
	if database.IsUniqueViolation(err) {
		return ErrEmailTaken.WithCause(err)
	}
	if err != nil {
		return apperr.Internal("failed to create user", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, wrapLookupError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by exact email match.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, wrapLookupError(err)
	}
	return &user, nil
}

func wrapLookupError(err error) error {
	if database.IsNotFound(err) {
		return ErrUserNotFound
	}
	return apperr.Internal("failed to load user", err)
}
