package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arupbarman82/ft-chromebook-app/internal/media"
	"github.com/arupbarman82/ft-chromebook-app/internal/pipeline"
	"github.com/arupbarman82/ft-chromebook-app/internal/version"
)

type healthResponse struct {
	media.Health
	APIKeySet bool   `json:"api_key_set"`
	Version   string `json:"version"`
}

// NewHealthHandler returns the handler for GET /api/health. It reports
// the native tooling state and whether an API key is configured.
func NewHealthHandler(settings pipeline.SettingsSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := healthResponse{
			Health:  media.Check(),
			Version: version.Version,
		}
		if s, err := settings(c.Request().Context()); err == nil {
			resp.APIKeySet = s.APIKey != ""
		}
		return c.JSON(http.StatusOK, resp)
	}
}
