package asr

import (
	"fmt"
	"os"
	"strings"

	sherpa "github.com/k2-fsa/sherpa-onnx-go/sherpa_onnx"
)

// Segment is one timed piece of recognized speech
type Segment struct {
	StartTime float64 `json:"start_time"` // in seconds
	EndTime   float64 `json:"end_time"`   // in seconds
	Text      string  `json:"text"`
}

// SegmentFunc receives segments one at a time, in audio order.
// Returning an error stops the transcription.
type SegmentFunc func(seg Segment) error

// Recognizer handles speech recognition using a Sherpa-ONNX Whisper model
type Recognizer struct {
	config     *Config
	recognizer *sherpa.OfflineRecognizer
}

// NewRecognizer creates a new recognizer with the given configuration.
// Loading the model is expensive; callers should reuse one recognizer.
func NewRecognizer(config *Config) (*Recognizer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	encoderPath := findModelFile(config.ModelDir, []string{
		"encoder.int8.onnx",
		"encoder.onnx",
		"small-encoder.int8.onnx",
		"small-encoder.onnx",
	})
	decoderPath := findModelFile(config.ModelDir, []string{
		"decoder.int8.onnx",
		"decoder.onnx",
		"small-decoder.int8.onnx",
		"small-decoder.onnx",
	})
	tokensPath := findModelFile(config.ModelDir, []string{
		"tokens.txt",
		"small-tokens.txt",
	})

	if encoderPath == "" {
		return nil, fmt.Errorf("encoder model not found in %s", config.ModelDir)
	}
	if decoderPath == "" {
		return nil, fmt.Errorf("decoder model not found in %s", config.ModelDir)
	}
	if tokensPath == "" {
		return nil, fmt.Errorf("tokens file not found in %s", config.ModelDir)
	}

	sherpaConfig := sherpa.OfflineRecognizerConfig{
		FeatConfig: sherpa.FeatureConfig{
			SampleRate: config.SampleRate,
			FeatureDim: 80,
		},
		ModelConfig: sherpa.OfflineModelConfig{
			Whisper: sherpa.OfflineWhisperModelConfig{
				Encoder:  encoderPath,
				Decoder:  decoderPath,
				Language: config.Language,
				Task:     "transcribe",
			},
			Tokens:     tokensPath,
			NumThreads: config.NumThreads,
			Debug:      0,
		},
	}

	recognizer := sherpa.NewOfflineRecognizer(&sherpaConfig)
	if recognizer == nil {
		return nil, fmt.Errorf("failed to create offline recognizer")
	}

	return &Recognizer{
		config:     config,
		recognizer: recognizer,
	}, nil
}

// Close releases resources used by the recognizer
func (r *Recognizer) Close() {
	if r.recognizer != nil {
		sherpa.DeleteOfflineRecognizer(r.recognizer)
		r.recognizer = nil
	}
}

// TranscribeStream decodes the audio file block by block and emits each
// recognized segment through fn as soon as it is available. Blocks are
// detected by silence so segment boundaries follow natural speech units.
// One-shot: the audio is consumed in a single pass.
func (r *Recognizer) TranscribeStream(audioPath string, fn SegmentFunc) error {
	samples, err := r.readWavFile(audioPath)
	if err != nil {
		return fmt.Errorf("failed to read audio file: %w", err)
	}

	blocks := detectSpeechBlocks(samples, r.config.SampleRate, r.config.Silence)

	for _, block := range blocks {
		text, err := r.decodeBlock(samples, block)
		if err != nil {
			return err
		}
		if text == "" {
			continue
		}
		if err := fn(Segment{StartTime: block.StartTime, EndTime: block.EndTime, Text: text}); err != nil {
			return err
		}
	}
	return nil
}

// decodeBlock decodes one speech block of the waveform
func (r *Recognizer) decodeBlock(samples []float32, block SpeechBlock) (string, error) {
	start := int(block.StartTime * float64(r.config.SampleRate))
	end := int(block.EndTime * float64(r.config.SampleRate))
	if start < 0 {
		start = 0
	}
	if end > len(samples) {
		end = len(samples)
	}
	if start >= end {
		return "", nil
	}

	stream := sherpa.NewOfflineStream(r.recognizer)
	if stream == nil {
		return "", fmt.Errorf("failed to create offline stream")
	}
	defer sherpa.DeleteOfflineStream(stream)

	stream.AcceptWaveform(r.config.SampleRate, samples[start:end])
	r.recognizer.Decode(stream)

	result := stream.GetResult()
	return strings.TrimSpace(result.Text), nil
}

// readWavFile reads a WAV file and returns the audio samples
func (r *Recognizer) readWavFile(path string) ([]float32, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	// Use sherpa-onnx's built-in WAV reader
	wave := sherpa.ReadWave(path)
	if wave == nil || len(wave.Samples) == 0 {
		return nil, fmt.Errorf("failed to read WAV file or file is empty")
	}
	return wave.Samples, nil
}
