package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/elibrary/internal/auth"
	"github.com/mrlokans/elibrary/internal/entities"
)

// BookmarkStore defines the owner-scoped bookmark operations.
type BookmarkStore interface {
	UpsertBookmark(ctx context.Context, userID, bookID uint, pageNumber int) (*entities.Bookmark, error)
	RemoveBookmark(ctx context.Context, userID, bookID uint) error
	ListBookmarks(ctx context.Context, userID uint) ([]entities.Bookmark, error)
}

type BookmarksController struct {
	store BookmarkStore
}

func NewBookmarksController(store BookmarkStore) *BookmarksController {
	return &BookmarksController{store: store}
}

type bookmarkRequest struct {
	PageNumber *int `json:"page_number" binding:"required,gte=0"`
}

// SaveBookmark creates or moves the caller's bookmark.
// POST /books/:id/bookmark
func (bc *BookmarksController) SaveBookmark(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user := auth.CurrentUser(c)
	bookmark, err := bc.store.UpsertBookmark(c.Request.Context(), user.ID, bookID, *req.PageNumber)
	if err != nil {
		respondError(c, err, "save bookmark")
		return
	}

	respondOK(c, toBookmarkView(bookmark), "")
}

// RemoveBookmark deletes the caller's bookmark.
// DELETE /books/:id/bookmark
func (bc *BookmarksController) RemoveBookmark(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	if err := bc.store.RemoveBookmark(c.Request.Context(), user.ID, bookID); err != nil {
		respondError(c, err, "remove bookmark")
		return
	}

	respondOK(c, nil, "Bookmark removed")
}

// ListBookmarks returns every bookmark the caller holds.
// GET /user/bookmarks
func (bc *BookmarksController) ListBookmarks(c *gin.Context) {
	user := auth.CurrentUser(c)
	bookmarks, err := bc.store.ListBookmarks(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err, "list bookmarks")
		return
	}

	respondOK(c, toBookmarkViews(bookmarks), "")
}
