package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Logger   *zap.Logger
	Database Pinger

	// Authentication
	AuthService    AuthService
	AuthMiddleware gin.HandlerFunc

	// Resource stores
	BookReader       BookReader
	BookmarkStore    BookmarkStore
	NoteStore        NoteStore
	PreferencesStore PreferencesStore

	// Application info
	Version string
}
