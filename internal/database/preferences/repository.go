// Package preferences stores per-user display settings. The row is created
// on the first update, not at registration.
package preferences

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/elibrary/internal/apperr"
	"github.com/mrlokans/elibrary/internal/database"
	"github.com/mrlokans/elibrary/internal/entities"
)

var ErrPreferencesConflict = apperr.Conflict("Preferences were created concurrently, retry the request")

// Repository handles all preferences database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new preferences repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetPreferences returns the stored row, or unsaved defaults (ID 0) when the
// user never changed anything.
func (r *Repository) GetPreferences(ctx context.Context, userID uint) (*entities.UserPreferences, error) {
	var prefs entities.UserPreferences
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if database.IsNotFound(err) {
		return &entities.UserPreferences{UserID: userID}, nil
	}
	if err != nil {
		return nil, apperr.Internal("failed to load preferences", err)
	}
	return &prefs, nil
}

// UpdatePreferences loads or creates the user's row and sets dark mode.
func (r *Repository) UpdatePreferences(ctx context.Context, userID uint, darkMode bool) (*entities.UserPreferences, error) {
	var prefs entities.UserPreferences

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&prefs).Error
		if database.IsNotFound(err) {
			prefs = entities.UserPreferences{UserID: userID, DarkMode: darkMode}
			return insertPreferences(tx, &prefs)
		}
		if err != nil {
			return apperr.Internal("failed to load preferences", err)
		}

		prefs.DarkMode = darkMode
		if err := tx.Save(&prefs).Error; err != nil {
			return apperr.Internal("failed to update preferences", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func insertPreferences(tx *gorm.DB, prefs *entities.UserPreferences) error {
	// Select forces dark_mode into the INSERT even when false, otherwise
	// gorm would skip the zero value in favour of the column default.
	err := tx.Select("UserID", "DarkMode").Create(prefs).Error
	if database.IsUniqueViolation(err) {
		return ErrPreferencesConflict.WithCause(err)
	}
	if err != nil {
		return apperr.Internal("failed to create preferences", err)
	}
	return nil
}
