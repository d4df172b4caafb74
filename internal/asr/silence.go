package asr

import "math"

// SilenceConfig holds configuration for silence-based speech detection
type SilenceConfig struct {
	// SilenceThreshold is the RMS level below which audio is considered silence (0.0-1.0)
	SilenceThreshold float64

	// MinSilenceDuration is the minimum silence duration to split blocks (seconds)
	MinSilenceDuration float64

	// MinSpeechDuration is the minimum speech duration to keep a block (seconds)
	MinSpeechDuration float64

	// MaxBlockDuration is the maximum block duration before forced split (seconds)
	MaxBlockDuration float64

	// FrameSize is the number of samples per frame for RMS calculation
	FrameSize int
}

// DefaultSilenceConfig returns default configuration for silence detection
func DefaultSilenceConfig() *SilenceConfig {
	return &SilenceConfig{
		SilenceThreshold:   0.01, // RMS threshold (quite sensitive)
		MinSilenceDuration: 0.4,  // 400ms silence to split
		MinSpeechDuration:  0.1,  // 100ms minimum speech
		MaxBlockDuration:   20.0, // 20 second max blocks
		FrameSize:          480,  // 30ms at 16kHz
	}
}

// SpeechBlock represents a detected speech region of the audio
type SpeechBlock struct {
	StartTime float64 // Start time in seconds
	EndTime   float64 // End time in seconds
}

// detectSpeechBlocks finds speech regions using energy-based silence detection.
// Samples are the decoded mono waveform at the given sample rate.
func detectSpeechBlocks(samples []float32, sampleRate int, config *SilenceConfig) []SpeechBlock {
	if config == nil {
		config = DefaultSilenceConfig()
	}
	if len(samples) == 0 {
		return nil
	}

	// RMS per frame
	var frames []float64
	for i := 0; i < len(samples); i += config.FrameSize {
		end := i + config.FrameSize
		if end > len(samples) {
			end = len(samples)
		}
		frames = append(frames, calculateRMS(samples[i:end]))
	}

	frameDuration := float64(config.FrameSize) / float64(sampleRate)
	minSilenceFrames := int(config.MinSilenceDuration / frameDuration)
	minSpeechFrames := int(config.MinSpeechDuration / frameDuration)

	var blocks []SpeechBlock
	inSpeech := false
	speechStart := 0
	silenceCount := 0

	for i, rms := range frames {
		isSilent := rms < config.SilenceThreshold

		if !inSpeech {
			if !isSilent {
				inSpeech = true
				speechStart = i
				silenceCount = 0
			}
			continue
		}

		if isSilent {
			silenceCount++
			if silenceCount >= minSilenceFrames {
				speechEnd := i - silenceCount + 1
				if speechEnd-speechStart >= minSpeechFrames {
					blocks = append(blocks, SpeechBlock{
						StartTime: float64(speechStart) * frameDuration,
						EndTime:   float64(speechEnd) * frameDuration,
					})
				}
				inSpeech = false
				silenceCount = 0
			}
		} else {
			silenceCount = 0
		}
	}

	// Speech running to the end of the audio
	if inSpeech {
		speechEnd := len(frames)
		if speechEnd-speechStart >= minSpeechFrames {
			blocks = append(blocks, SpeechBlock{
				StartTime: float64(speechStart) * frameDuration,
				EndTime:   float64(speechEnd) * frameDuration,
			})
		}
	}

	return splitLongBlocks(blocks, config.MaxBlockDuration)
}

// splitLongBlocks splits blocks longer than maxDuration into smaller chunks
func splitLongBlocks(blocks []SpeechBlock, maxDuration float64) []SpeechBlock {
	if maxDuration <= 0 {
		return blocks
	}

	var result []SpeechBlock
	for _, block := range blocks {
		if block.EndTime-block.StartTime <= maxDuration {
			result = append(result, block)
			continue
		}

		start := block.StartTime
		for start < block.EndTime {
			end := start + maxDuration
			if end > block.EndTime {
				end = block.EndTime
			}
			result = append(result, SpeechBlock{StartTime: start, EndTime: end})
			start = end
		}
	}
	return result
}

// calculateRMS calculates the root mean square of samples
func calculateRMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}
