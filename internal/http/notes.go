package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/elibrary/internal/auth"
	"github.com/mrlokans/elibrary/internal/entities"
)

type NoteStore interface {
	AddNote(ctx context.Context, userID, bookID uint, pageNumber int, text string) (*entities.Note, error)
	ListNotes(ctx context.Context, userID, bookID uint) ([]entities.Note, error)
}

type NotesController struct {
	store NoteStore
}

func NewNotesController(store NoteStore) *NotesController {
	return &NotesController{store: store}
}

type noteRequest struct {
	PageNumber *int   `json:"page_number" binding:"required,gte=0"`
	NoteText   string `json:"note_text" binding:"required,notblank"`
}

// AddNote appends a note to a book.
// POST /books/:id/notes
func (nc *NotesController) AddNote(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user := auth.CurrentUser(c)
	note, err := nc.store.AddNote(c.Request.Context(), user.ID, bookID, *req.PageNumber, req.NoteText)
	if err != nil {
		respondError(c, err, "add note")
		return
	}

	respondOK(c, toNoteView(note), "")
}

// ListNotes returns the caller's notes on a book.
// GET /books/:id/notes
func (nc *NotesController) ListNotes(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	notes, err := nc.store.ListNotes(c.Request.Context(), user.ID, bookID)
	if err != nil {
		respondError(c, err, "list notes")
		return
	}

	respondOK(c, toNoteViews(notes), "")
}
