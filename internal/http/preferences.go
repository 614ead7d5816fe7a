package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/elibrary/internal/auth"
	"github.com/mrlokans/elibrary/internal/entities"
)

type PreferencesStore interface {
	GetPreferences(ctx context.Context, userID uint) (*entities.UserPreferences, error)
	UpdatePreferences(ctx context.Context, userID uint, darkMode bool) (*entities.UserPreferences, error)
}

type PreferencesController struct {
	store PreferencesStore
}

func NewPreferencesController(store PreferencesStore) *PreferencesController {
	return &PreferencesController{store: store}
}

type preferencesRequest struct {
	DarkMode *bool `json:"dark_mode" binding:"required"`
}

// GetPreferences returns stored preferences or the defaults.
// GET /user/profile
func (pc *PreferencesController) GetPreferences(c *gin.Context) {
	user := auth.CurrentUser(c)
	prefs, err := pc.store.GetPreferences(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err, "get preferences")
		return
	}

	respondOK(c, toPreferencesView(prefs), "")
}

// UpdatePreferences sets dark mode, creating the row on first use.
// PUT /user/profile
func (pc *PreferencesController) UpdatePreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user := auth.CurrentUser(c)
	prefs, err := pc.store.UpdatePreferences(c.Request.Context(), user.ID, *req.DarkMode)
	if err != nil {
		respondError(c, err, "update preferences")
		return
	}

	respondOK(c, toPreferencesView(prefs), "Preferences updated")
}
