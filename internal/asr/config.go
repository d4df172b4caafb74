package asr

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the configuration for the speech recognizer
type Config struct {
	ModelDir   string         // Directory containing the Whisper ONNX model
	Language   string         // Fixed language hint passed to the model
	NumThreads int            // Number of threads for inference
	SampleRate int            // Audio sample rate (extraction produces 16kHz)
	Silence    *SilenceConfig // Speech block detection parameters
}

// DefaultConfig returns the default recognizer configuration for English audio
func DefaultConfig(modelDir string) *Config {
	return &Config{
		ModelDir:   modelDir,
		Language:   "en",
		NumThreads: 4,
		SampleRate: 16000,
		Silence:    DefaultSilenceConfig(),
	}
}

// Validate checks that the model directory exists
func (c *Config) Validate() error {
	if c.ModelDir == "" {
		return fmt.Errorf("model directory not configured")
	}
	if _, err := os.Stat(c.ModelDir); os.IsNotExist(err) {
		return fmt.Errorf("model directory not found: %s", c.ModelDir)
	}
	return nil
}

// findModelFile searches for a model file in the given directory
// Returns the first matching file path or empty string if not found
func findModelFile(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
