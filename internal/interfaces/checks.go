package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/elibrary/internal/auth"
	"github.com/mrlokans/elibrary/internal/cli"
	"github.com/mrlokans/elibrary/internal/database"
	"github.com/mrlokans/elibrary/internal/database/bookmarks"
	"github.com/mrlokans/elibrary/internal/database/books"
	"github.com/mrlokans/elibrary/internal/database/notes"
	"github.com/mrlokans/elibrary/internal/database/preferences"
	"github.com/mrlokans/elibrary/internal/database/users"
	"github.com/mrlokans/elibrary/internal/http"
)

// =============================================================================
// Credential Store and Authentication
// =============================================================================

var _ auth.UserStore = (*users.Repository)(nil)
var _ auth.TokenResolver = (*auth.Service)(nil)
var _ http.AuthService = (*auth.Service)(nil)

// =============================================================================
// Resource Stores
// =============================================================================

var _ http.BookReader = (*books.Repository)(nil)
var _ http.BookmarkStore = (*bookmarks.Repository)(nil)
var _ http.NoteStore = (*notes.Repository)(nil)
var _ http.PreferencesStore = (*preferences.Repository)(nil)

// =============================================================================
// Infrastructure
// =============================================================================

var _ http.Pinger = (*database.Database)(nil)
var _ cli.BookCreator = (*books.Repository)(nil)
