// Package notes provides owner-scoped reading notes. Unlike bookmarks, a
// user may keep any number of notes on the same book.
package notes

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/elibrary/internal/apperr"
	"github.com/mrlokans/elibrary/internal/database/books"
	"github.com/mrlokans/elibrary/internal/entities"
)

// Repository handles all note database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddNote always inserts a new note for the caller on an existing book.
func (r *Repository) AddNote(ctx context.Context, userID, bookID uint, pageNumber int, text string) (*entities.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("note_text is required")
	}

	note := entities.Note{
		UserID:     userID,
		BookID:     bookID,
		PageNumber: pageNumber,
		NoteText:   text,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := books.RequireBook(tx, bookID); err != nil {
			return err
		}
		if err := tx.Create(&note).Error; err != nil {
			return apperr.Internal("failed to create note", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListNotes returns the caller's notes on a book in creation order.
func (r *Repository) ListNotes(ctx context.Context, userID, bookID uint) ([]entities.Note, error) {
	notes := []entities.Note{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("id ASC").
		Find(&notes).Error
	if err != nil {
		return nil, apperr.Internal("failed to list notes", err)
	}
	return notes, nil
}
