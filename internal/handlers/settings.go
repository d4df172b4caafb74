package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arupbarman82/ft-chromebook-app/internal/models"
	"github.com/arupbarman82/ft-chromebook-app/internal/storage"
)

// SettingsHandler reads and writes the persisted OpenAI settings.
type SettingsHandler struct {
	repo     *storage.SettingsRepository
	defaults models.Settings
}

// NewSettingsHandler creates a new SettingsHandler. defaults come from
// the environment and are reported when no row has been saved yet.
func NewSettingsHandler(repo *storage.SettingsRepository, defaults models.Settings) *SettingsHandler {
	return &SettingsHandler{repo: repo, defaults: defaults}
}

// Get returns the settings currently in effect.
// GET /api/settings
func (h *SettingsHandler) Get(c echo.Context) error {
	saved, err := h.repo.Get(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if saved == nil {
		return c.JSON(http.StatusOK, h.defaults)
	}
	return c.JSON(http.StatusOK, saved)
}

// Save stores new settings.
// POST /api/settings
func (h *SettingsHandler) Save(c echo.Context) error {
	var s models.Settings
	if err := c.Bind(&s); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if s.APIKey == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "API key is required."})
	}
	s.ReasoningEffort = models.NormalizeEffort(s.ReasoningEffort)

	if err := h.repo.Save(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}
