// Package bookmarks provides owner-scoped bookmark operations.
//
// A user holds at most one bookmark per book. The (user_id, book_id) unique
// index is the authority for that rule; the lookup before insert only avoids
// a failed write in the common case.
package bookmarks

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/elibrary/internal/apperr"
	"github.com/mrlokans/elibrary/internal/database"
	"github.com/mrlokans/elibrary/internal/database/books"
	"github.com/mrlokans/elibrary/internal/entities"
)

var (
	ErrBookmarkNotFound = apperr.NotFound("Bookmark not found")
	ErrBookmarkConflict = apperr.Conflict("Bookmark was created concurrently, retry the request")
)

// Repository handles all bookmark database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new bookmarks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertBookmark creates the caller's bookmark for a book or moves an
// existing one to pageNumber.
func (r *Repository) UpsertBookmark(ctx context.Context, userID, bookID uint, pageNumber int) (*entities.Bookmark, error) {
	var bookmark entities.Bookmark

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := books.RequireBook(tx, bookID); err != nil {
			return err
		}

		err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).First(&bookmark).Error
		switch {
		case database.IsNotFound(err):
			bookmark = entities.Bookmark{UserID: userID, BookID: bookID, PageNumber: pageNumber}
			return insertBookmark(tx, &bookmark)
		case err != nil:
			return apperr.Internal("failed to load bookmark", err)
		}

		bookmark.PageNumber = pageNumber
		if err := tx.Save(&bookmark).Error; err != nil {
			return apperr.Internal("failed to update bookmark", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// RemoveBookmark deletes the caller's bookmark for a book.
func (r *Repository) RemoveBookmark(ctx context.Context, userID, bookID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&entities.Bookmark{})
	if result.Error != nil {
		return apperr.Internal("failed to delete bookmark", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

// ListBookmarks returns every bookmark owned by the user.
func (r *Repository) ListBookmarks(ctx context.Context, userID uint) ([]entities.Bookmark, error) {
	bookmarks := []entities.Bookmark{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&bookmarks).Error
	if err != nil {
		return nil, apperr.Internal("failed to list bookmarks", err)
	}
	return bookmarks, nil
}

// insertBookmark maps a unique violation, which means another request won
// the race for the same (user, book) pair, to ErrBookmarkConflict.
func insertBookmark(tx *gorm.DB, bookmark *entities.Bookmark) error {
	err := tx.Create(bookmark).Error
	if database.IsUniqueViolation(err) {
		return ErrBookmarkConflict.WithCause(err)
	}
	if err != nil {
		return apperr.Internal("failed to create bookmark", err)
	}
	return nil
}
