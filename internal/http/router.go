package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(RequestLogger(cfg.Logger))
	router.Use(Recovery())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNotFound})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: msgMethodNotAllow})
	})

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.AuthService)
	booksController := NewBooksController(cfg.BookReader)
	bookmarksController := NewBookmarksController(cfg.BookmarkStore)
	notesController := NewNotesController(cfg.NoteStore)
	preferencesController := NewPreferencesController(cfg.PreferencesStore)

	requireUser := cfg.AuthMiddleware

	// Health endpoint
	router.GET("/health", health.Status)

	// Authentication
	router.POST("/auth/register", authController.Register)
	router.POST("/auth/login", authController.Login)
	router.GET("/auth/me", requireUser, authController.Me)

	// Catalogue
	router.GET("/books", booksController.ListBooks)
	router.GET("/books/:id", booksController.GetBook)

	// Per-user resources on a book
	router.POST("/books/:id/bookmark", requireUser, bookmarksController.SaveBookmark)
	router.DELETE("/books/:id/bookmark", requireUser, bookmarksController.RemoveBookmark)
	router.POST("/books/:id/notes", requireUser, notesController.AddNote)
	router.GET("/books/:id/notes", requireUser, notesController.ListNotes)

	// Caller profile
	user := router.Group("/user", requireUser)
	user.GET("/profile", preferencesController.GetPreferences)
	user.PUT("/profile", preferencesController.UpdatePreferences)
	user.GET("/bookmarks", bookmarksController.ListBookmarks)

	return router
}
