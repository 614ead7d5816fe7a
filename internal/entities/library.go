package entities

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	Preferences *UserPreferences `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Bookmarks   []Bookmark       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Notes       []Note           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Book is read-only through the API. Tags is a comma-joined string that is
// stored and returned verbatim.
type Book struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"index;size:512;not null"`
	Description *string   `gorm:"type:text"`
	Category    *string   `gorm:"index;size:255"`
	Tags        *string   `gorm:"size:1024"`
	Content     string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Bookmarks []Bookmark `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Notes     []Note     `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
}

// Bookmark is unique per (user, book); saving again moves the page.
type Bookmark struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_bookmarks_user_book"`
	BookID     uint `gorm:"not null;uniqueIndex:idx_bookmarks_user_book;index"`
	PageNumber int  `gorm:"not null"`
}

// Note allows any number of rows per (user, book).
type Note struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;index:idx_notes_user_book"`
	BookID     uint      `gorm:"not null;index:idx_notes_user_book"`
	PageNumber int       `gorm:"not null"`
	NoteText   string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

type UserPreferences struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"uniqueIndex;not null"`
	DarkMode bool `gorm:"not null;default:false"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}
