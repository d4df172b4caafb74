package handlers

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arupbarman82/ft-chromebook-app/internal/media"
	"github.com/arupbarman82/ft-chromebook-app/internal/pipeline"
)

// AppTitle is the page title shown in the UI.
const AppTitle = "Fundoo Tutor Metadata Writer"

//go:embed templates/app.html
var appHTML string

var appTemplate = template.Must(template.New("app").Parse(appHTML))

type indexData struct {
	Title   string
	Host    string
	Port    string
	Warning string
}

// NewIndexHandler returns the handler for GET /. The page carries a
// setup warning when ffmpeg is absent or no API key is configured.
func NewIndexHandler(host, port string, settings pipeline.SettingsSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		data := indexData{Title: AppTitle, Host: host, Port: port}

		if !media.Check().OK() {
			data.Warning = ffmpegMissingMsg
		} else if s, err := settings(c.Request().Context()); err == nil && s.APIKey == "" {
			data.Warning = "OPENAI_API_KEY not set. Save your API key in the settings below."
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusOK)
		return appTemplate.Execute(c.Response(), data)
	}
}
