// Package books provides read access to the catalogue plus the bulk insert
// used by the seed command.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	page, err := repo.ListBooks(ctx, books.Filter{Category: "fiction", Page: 1, Limit: 10})
package books

import (
	"context"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/elibrary/internal/apperr"
	"github.com/mrlokans/elibrary/internal/database"
	"github.com/mrlokans/elibrary/internal/entities"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

var ErrBookNotFound = apperr.NotFound("Book not found")

// Filter narrows a catalogue listing. Empty Category and Search are ignored.
type Filter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// Offset returns the number of rows to skip for the requested page.
func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns one page of books in id order. Category matches exactly;
// Search is a case-insensitive substring match on title or description.
func (r *Repository) ListBooks(ctx context.Context, filter Filter) ([]entities.Book, error) {
	if filter.Page < 1 {
		return nil, apperr.Validation("page must be at least 1")
	}
	if filter.Limit < 1 || filter.Limit > MaxLimit {
		return nil, apperr.Validation("limit must be between 1 and 50")
	}
	// Pages whose offset does not fit in an int start past any table.
	if filter.Page-1 > math.MaxInt/filter.Limit {
		return []entities.Book{}, nil
	}

	query := r.db.WithContext(ctx).Model(&entities.Book{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		query = query.Where(
			"(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '!')",
			pattern, pattern,
		)
	}

	books := make([]entities.Book, 0, filter.Limit)
	err := query.Order("id ASC").Offset(filter.Offset()).Limit(filter.Limit).Find(&books).Error
	if err != nil {
		return nil, apperr.Internal("failed to list books", err)
	}
	return books, nil
}

// GetBook retrieves a single book.
func (r *Repository) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if database.IsNotFound(err) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, apperr.Internal("failed to load book", err)
	}
	return &book, nil
}

// CreateBooks inserts a batch of books in one transaction.
func (r *Repository) CreateBooks(ctx context.Context, books []entities.Book) error {
	if len(books) == 0 {
		return nil
	}
	for i := range books {
		if strings.TrimSpace(books[i].Title) == "" {
			return apperr.Validation("book title is required")
		}
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&books, 100).Error
	})
	if err != nil {
		return apperr.Internal("failed to create books", err)
	}
	return nil
}

// CountBooks returns the catalogue size.
func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, apperr.Internal("failed to count books", err)
	}
	return count, nil
}

// RequireBook fails with ErrBookNotFound unless the book exists. It takes
// the caller's transaction so the check and the following write are atomic.
func RequireBook(tx *gorm.DB, bookID uint) error {
	var count int64
	if err := tx.Model(&entities.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
		return apperr.Internal("failed to check book", err)
	}
	if count == 0 {
		return ErrBookNotFound
	}
	return nil
}

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
