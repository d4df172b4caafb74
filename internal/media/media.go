package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// AllowedExtensions lists media containers accepted for upload
var AllowedExtensions = []string{".mp4", ".m4a", ".wav", ".webm"}

// IsAllowedExtension checks if the file extension is an accepted media format
func IsAllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Health reports the availability of the native audio tooling
type Health struct {
	FFmpeg      bool   `json:"ffmpeg"`
	FFprobe     bool   `json:"ffprobe"`
	FFmpegPath  string `json:"ffmpeg_path"`
	FFprobePath string `json:"ffprobe_path"`
}

// Check looks up ffmpeg and ffprobe on PATH
func Check() Health {
	ffmpegPath, _ := exec.LookPath("ffmpeg")
	ffprobePath, _ := exec.LookPath("ffprobe")
	return Health{
		FFmpeg:      ffmpegPath != "",
		FFprobe:     ffprobePath != "",
		FFmpegPath:  ffmpegPath,
		FFprobePath: ffprobePath,
	}
}

// OK reports whether both native tools are available
func (h Health) OK() bool {
	return h.FFmpeg && h.FFprobe
}

// ExtractWav extracts the audio track of a media file as 16kHz mono PCM WAV.
// A non-zero ffmpeg exit is a hard failure.
func ExtractWav(inputPath, outputPath string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found: please install ffmpeg to extract audio")
	}
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	// -vn: drop video, -ac 1: mono, -ar 16000: 16kHz, pcm_s16le: uncompressed
	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		outputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extraction failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// ProbeDuration returns the duration of an audio file in seconds.
// Returns 0 when the duration cannot be determined.
func ProbeDuration(inputPath string) float64 {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return 0
	}

	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0
	}

	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(output)), "%f", &duration); err != nil {
		return 0
	}
	return duration
}
