package transcript

import (
	"fmt"
	"strings"
)

// FormatTimestamp formats a start time in seconds as MM:SS.
// Minutes and seconds come from integer truncation.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Assembler builds a timestamped transcript from timed speech segments and
// tracks how much of the audio the processed segments cover.
type Assembler struct {
	totalDuration float64
	coverage      float64
	lines         []string
}

// NewAssembler creates an assembler for audio of the given total duration.
// A zero or unknown duration disables coverage tracking.
func NewAssembler(totalDuration float64) *Assembler {
	return &Assembler{totalDuration: totalDuration}
}

// Add appends one transcript line ("MM:SS text") for a segment and advances
// the coverage fraction. Coverage never regresses even if segments arrive
// out of proportion.
func (a *Assembler) Add(startSec, endSec float64, text string) {
	a.lines = append(a.lines, FormatTimestamp(startSec)+" "+strings.TrimSpace(text))

	if a.totalDuration > 0 {
		covered := endSec / a.totalDuration
		if covered > 1 {
			covered = 1
		}
		if covered > a.coverage {
			a.coverage = covered
		}
	}
}

// Coverage returns the fraction of the audio duration covered so far (0-1).
func (a *Assembler) Coverage() float64 {
	return a.coverage
}

// Text returns the assembled transcript, one line per segment.
func (a *Assembler) Text() string {
	return strings.TrimSpace(strings.Join(a.lines, "\n"))
}

// Empty reports whether no transcript text was assembled.
func (a *Assembler) Empty() bool {
	return a.Text() == ""
}
