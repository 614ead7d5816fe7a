// Package database opens the gorm connection, runs migrations and maps
// driver errors.
//
// Each table has its own sub-package with a Repository over *gorm.DB:
//
//	database/
//	├── database.go      # Connection setup (sqlite or mysql), migrations, ping
//	├── errors.go        # Unique-violation and not-found detection
//	├── users/           # Accounts, lookup by id and email
//	├── books/           # Catalogue listing, filtering, seeding
//	├── bookmarks/       # One bookmark per user and book
//	├── notes/           # Page notes
//	└── preferences/     # Per-user display preferences
//
// Typical wiring:
//
//	db, err := database.NewDatabase(cfg.Database, log)
//	booksRepo := books.NewRepository(db.DB)
//	list, err := booksRepo.ListBooks(ctx, books.Filter{Page: 1, Limit: 10})
//
// Repositories return apperr values for conditions callers act on
// (not found, conflict, validation). Everything else is wrapped as internal.
package database
