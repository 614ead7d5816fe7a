package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/elibrary/internal/database/books"
	"github.com/mrlokans/elibrary/internal/entities"
)

// BookReader provides read access to the catalogue.
type BookReader interface {
	ListBooks(ctx context.Context, filter books.Filter) ([]entities.Book, error)
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
}

type BooksController struct {
	reader BookReader
}

func NewBooksController(reader BookReader) *BooksController {
	return &BooksController{reader: reader}
}

type listBooksQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"gte=1"`
	Limit    int    `form:"limit,default=10" binding:"gte=1,lte=50"`
}

// ListBooks filters and pages the catalogue.
// GET /books?category=&search=&page=&limit=
func (bc *BooksController) ListBooks(c *gin.Context) {
	var q listBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := bc.reader.ListBooks(c.Request.Context(), books.Filter{
		Category: q.Category,
		Search:   q.Search,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		respondError(c, err, "list books")
		return
	}

	respondOK(c, toBookViews(result), "")
}

// GetBook returns a single book.
// GET /books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.reader.GetBook(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get book")
		return
	}

	respondOK(c, toBookView(book), "")
}
