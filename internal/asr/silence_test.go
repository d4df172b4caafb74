package asr

import (
	"math"
	"testing"
)

// synthWave builds a waveform from (durationSec, amplitude) runs at 16kHz.
func synthWave(runs [][2]float64) []float32 {
	var samples []float32
	for _, run := range runs {
		n := int(run[0] * 16000)
		for i := 0; i < n; i++ {
			samples = append(samples, float32(run[1]))
		}
	}
	return samples
}

// TestDetectSpeechBlocks verifies speech separated by silence becomes
// distinct blocks with sensible boundaries.
func TestDetectSpeechBlocks(t *testing.T) {
	// 1s silence, 2s speech, 1s silence, 1.5s speech
	samples := synthWave([][2]float64{
		{1.0, 0.0},
		{2.0, 0.5},
		{1.0, 0.0},
		{1.5, 0.5},
	})

	blocks := detectSpeechBlocks(samples, 16000, DefaultSilenceConfig())
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(blocks), blocks)
	}

	if math.Abs(blocks[0].StartTime-1.0) > 0.1 {
		t.Errorf("block 0 start = %.2f, want ~1.0", blocks[0].StartTime)
	}
	if math.Abs(blocks[0].EndTime-3.0) > 0.1 {
		t.Errorf("block 0 end = %.2f, want ~3.0", blocks[0].EndTime)
	}
	if math.Abs(blocks[1].StartTime-4.0) > 0.1 {
		t.Errorf("block 1 start = %.2f, want ~4.0", blocks[1].StartTime)
	}
}

// TestDetectSpeechBlocksSilenceOnly checks that pure silence yields no blocks.
func TestDetectSpeechBlocksSilenceOnly(t *testing.T) {
	samples := synthWave([][2]float64{{3.0, 0.0}})
	if blocks := detectSpeechBlocks(samples, 16000, DefaultSilenceConfig()); len(blocks) != 0 {
		t.Fatalf("got %d blocks for silence, want 0", len(blocks))
	}

	if blocks := detectSpeechBlocks(nil, 16000, DefaultSilenceConfig()); blocks != nil {
		t.Fatalf("got %v for empty input, want nil", blocks)
	}
}

// TestDetectSpeechBlocksDropsShortNoise verifies speech shorter than the
// minimum duration is discarded.
func TestDetectSpeechBlocksDropsShortNoise(t *testing.T) {
	cfg := DefaultSilenceConfig()
	cfg.MinSpeechDuration = 0.5

	// 50ms click surrounded by silence
	samples := synthWave([][2]float64{
		{1.0, 0.0},
		{0.05, 0.5},
		{1.0, 0.0},
	})

	if blocks := detectSpeechBlocks(samples, 16000, cfg); len(blocks) != 0 {
		t.Fatalf("got %d blocks for short click, want 0", len(blocks))
	}
}

// TestSplitLongBlocks tests the forced split of long blocks.
func TestSplitLongBlocks(t *testing.T) {
	tests := []struct {
		name        string
		blocks      []SpeechBlock
		maxDuration float64
		want        []SpeechBlock
	}{
		{
			name:        "short block untouched",
			blocks:      []SpeechBlock{{StartTime: 0, EndTime: 3}},
			maxDuration: 5,
			want:        []SpeechBlock{{StartTime: 0, EndTime: 3}},
		},
		{
			name:        "long block split evenly",
			blocks:      []SpeechBlock{{StartTime: 0, EndTime: 10}},
			maxDuration: 5,
			want:        []SpeechBlock{{StartTime: 0, EndTime: 5}, {StartTime: 5, EndTime: 10}},
		},
		{
			name:        "remainder kept as final chunk",
			blocks:      []SpeechBlock{{StartTime: 2, EndTime: 9}},
			maxDuration: 3,
			want:        []SpeechBlock{{StartTime: 2, EndTime: 5}, {StartTime: 5, EndTime: 8}, {StartTime: 8, EndTime: 9}},
		},
		{
			name:        "zero max is a no-op",
			blocks:      []SpeechBlock{{StartTime: 0, EndTime: 100}},
			maxDuration: 0,
			want:        []SpeechBlock{{StartTime: 0, EndTime: 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLongBlocks(tt.blocks, tt.maxDuration)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d blocks, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if math.Abs(got[i].StartTime-tt.want[i].StartTime) > 1e-9 ||
					math.Abs(got[i].EndTime-tt.want[i].EndTime) > 1e-9 {
					t.Errorf("block %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
