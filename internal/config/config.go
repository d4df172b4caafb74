package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/arupbarman82/ft-chromebook-app/internal/models"
)

// Config carries the process-level settings read from the environment.
// OpenAI values act as defaults; the settings stored in the database
// override them at request time.
type Config struct {
	Host        string
	Port        string
	DataDir     string
	DBPath      string
	ASRModelDir string
	LinkTimeout time.Duration

	OpenAIAPIKey    string
	OpenAIModel     string
	FallbackModels  string
	ReasoningEffort string
}

// Load reads the configuration from environment variables, applying
// defaults for everything that is unset.
func Load() Config {
	dataDir := getenv("FT_DATA_DIR", "data")

	return Config{
		Host:        getenv("FT_HOST", "0.0.0.0"),
		Port:        getenv("FT_PORT", "5000"),
		DataDir:     dataDir,
		DBPath:      getenv("FT_DB_PATH", filepath.Join(dataDir, "ft.db")),
		ASRModelDir: getenv("ASR_MODEL_DIR", "models/whisper-small"),
		LinkTimeout: 12 * time.Second,

		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getenv("OPENAI_MODEL", "gpt-5.2-thinking"),
		FallbackModels:  getenv("OPENAI_FALLBACK_MODELS", "gpt-5-mini,gpt-4o"),
		ReasoningEffort: models.NormalizeEffort(os.Getenv("REASONING_EFFORT")),
	}
}

// DefaultSettings converts the environment defaults into a Settings
// value used when the database holds no saved row yet.
func (c Config) DefaultSettings() models.Settings {
	return models.Settings{
		APIKey:          c.OpenAIAPIKey,
		Model:           c.OpenAIModel,
		FallbackModels:  c.FallbackModels,
		ReasoningEffort: c.ReasoningEffort,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
