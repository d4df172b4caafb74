package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/arupbarman82/ft-chromebook-app/internal/asr"
	"github.com/arupbarman82/ft-chromebook-app/internal/config"
	"github.com/arupbarman82/ft-chromebook-app/internal/handlers"
	"github.com/arupbarman82/ft-chromebook-app/internal/jobstore"
	"github.com/arupbarman82/ft-chromebook-app/internal/links"
	"github.com/arupbarman82/ft-chromebook-app/internal/llm"
	"github.com/arupbarman82/ft-chromebook-app/internal/media"
	"github.com/arupbarman82/ft-chromebook-app/internal/models"
	"github.com/arupbarman82/ft-chromebook-app/internal/pipeline"
	"github.com/arupbarman82/ft-chromebook-app/internal/storage"
	"github.com/arupbarman82/ft-chromebook-app/internal/version"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	settingsRepo := storage.NewSettingsRepository(db)
	settings := settingsSource(settingsRepo, cfg.DefaultSettings())

	store := jobstore.New()
	runner := pipeline.NewRunner(
		store,
		settings,
		engineLoader(cfg.ASRModelDir),
		media.ExtractWav,
		media.ProbeDuration,
		links.NewValidator(cfg.LinkTimeout),
		llm.NewGenerator(),
	)

	uploadDir := filepath.Join(cfg.DataDir, "tmp_jobs")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("2G"))

	jobHandler := handlers.NewJobHandler(store, runner, settings, uploadDir)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo, cfg.DefaultSettings())

	e.GET("/", handlers.NewIndexHandler(cfg.Host, cfg.Port, settings))
	e.GET("/api/health", handlers.NewHealthHandler(settings))
	e.POST("/api/start", jobHandler.Start)
	e.GET("/api/status/:id", jobHandler.Status)
	e.GET("/api/settings", settingsHandler.Get)
	e.POST("/api/settings", settingsHandler.Save)

	log.Printf("Starting %s v%s on %s:%s", handlers.AppTitle, version.Version, cfg.Host, cfg.Port)
	if err := e.Start(fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)); err != nil {
		log.Fatal(err)
	}
}

// settingsSource resolves the settings in effect: the saved row when one
// exists, the environment defaults otherwise.
func settingsSource(repo *storage.SettingsRepository, defaults models.Settings) pipeline.SettingsSource {
	return func(ctx context.Context) (models.Settings, error) {
		saved, err := repo.Get(ctx)
		if err != nil {
			return models.Settings{}, err
		}
		if saved == nil {
			return defaults, nil
		}
		return *saved, nil
	}
}

// engineLoader builds the recognizer on first use and keeps it for the
// rest of the process. Model startup is slow, so it is deferred until a
// job actually needs to transcribe.
func engineLoader(modelDir string) pipeline.EngineLoader {
	var (
		once   sync.Once
		engine *asr.Recognizer
		err    error
	)
	return func() (pipeline.Transcriber, error) {
		once.Do(func() {
			log.Printf("Loading speech model from %s", modelDir)
			engine, err = asr.NewRecognizer(asr.DefaultConfig(modelDir))
		})
		if err != nil {
			return nil, err
		}
		return engine, nil
	}
}
