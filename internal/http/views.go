package http

import (
	"time"

	"github.com/mrlokans/elibrary/internal/entities"
)

// Wire shapes are declared here and filled by hand, so a new column on an
// entity never reaches a response by accident.

type UserView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type BookView struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Tags        *string `json:"tags"`
}

type BookmarkView struct {
	BookID     uint `json:"book_id"`
	PageNumber int  `json:"page_number"`
}

type NoteView struct {
	ID         uint   `json:"id"`
	PageNumber int    `json:"page_number"`
	NoteText   string `json:"note_text"`
}

type PreferencesView struct {
	DarkMode bool `json:"dark_mode"`
}

type TokenView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func toUserView(u *entities.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func toBookView(b *entities.Book) BookView {
	return BookView{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Category:    b.Category,
		Tags:        b.Tags,
	}
}

func toBookViews(books []entities.Book) []BookView {
	views := make([]BookView, 0, len(books))
	for i := range books {
		views = append(views, toBookView(&books[i]))
	}
	return views
}

func toBookmarkView(b *entities.Bookmark) BookmarkView {
	return BookmarkView{BookID: b.BookID, PageNumber: b.PageNumber}
}

func toBookmarkViews(bookmarks []entities.Bookmark) []BookmarkView {
	views := make([]BookmarkView, 0, len(bookmarks))
	for i := range bookmarks {
		views = append(views, toBookmarkView(&bookmarks[i]))
	}
	return views
}

func toNoteView(n *entities.Note) NoteView {
	return NoteView{ID: n.ID, PageNumber: n.PageNumber, NoteText: n.NoteText}
}

func toNoteViews(notes []entities.Note) []NoteView {
	views := make([]NoteView, 0, len(notes))
	for i := range notes {
		views = append(views, toNoteView(&notes[i]))
	}
	return views
}

func toPreferencesView(p *entities.UserPreferences) PreferencesView {
	return PreferencesView{DarkMode: p.DarkMode}
}
