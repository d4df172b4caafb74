package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arupbarman82/ft-chromebook-app/internal/jobstore"
	"github.com/arupbarman82/ft-chromebook-app/internal/media"
	"github.com/arupbarman82/ft-chromebook-app/internal/models"
	"github.com/arupbarman82/ft-chromebook-app/internal/pipeline"
)

const ffmpegMissingMsg = "ffmpeg/ffprobe not found. Install: sudo apt update && sudo apt install -y ffmpeg"

// JobHandler handles job submission and polling.
type JobHandler struct {
	store     *jobstore.Store
	runner    *pipeline.Runner
	settings  pipeline.SettingsSource
	uploadDir string
}

// NewJobHandler creates a new JobHandler. Uploads are staged in uploadDir
// until the job's worker removes them.
func NewJobHandler(store *jobstore.Store, runner *pipeline.Runner, settings pipeline.SettingsSource, uploadDir string) *JobHandler {
	return &JobHandler{store: store, runner: runner, settings: settings, uploadDir: uploadDir}
}

// Start accepts a media upload and queues a job.
// POST /api/start
func (h *JobHandler) Start(c echo.Context) error {
	if !media.Check().OK() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ffmpegMissingMsg})
	}

	settings, err := h.settings(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if settings.APIKey == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "OPENAI_API_KEY missing. Go to Settings and save your API key."})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
	}
	if fh.Filename == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Empty filename"})
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !media.IsAllowedExtension(fh.Filename) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Unsupported file type: %s. Use mp4, m4a, wav, webm.", ext)})
	}

	linkMode := strings.TrimSpace(c.FormValue("linkMode"))
	if linkMode == "" {
		linkMode = models.LinkModeCheckedNoLinks
	}
	if !models.IsValidLinkMode(linkMode) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Unknown links status: %s", linkMode)})
	}
	linksText := c.FormValue("links")

	id := h.store.Create()
	uploadedPath := filepath.Join(h.uploadDir, id+ext)
	if err := h.saveUpload(fh, uploadedPath); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save upload"})
	}

	h.runner.Start(id, uploadedPath, linkMode, linksText)
	return c.JSON(http.StatusOK, map[string]string{"job_id": id})
}

// Status returns the current snapshot of a job.
// GET /api/status/:id
func (h *JobHandler) Status(c echo.Context) error {
	job, err := h.store.Get(c.Param("id"))
	if errors.Is(err, jobstore.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown job id"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) saveUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return err
	}
	return out.Close()
}
