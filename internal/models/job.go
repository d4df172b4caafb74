package models

// Link modes declared by the caller at submission
const (
	LinkModeNotProvided    = "not_provided"
	LinkModeCheckedNoLinks = "checked_no_links"
	LinkModeNotAvailable   = "not_available"
	LinkModeProvided       = "provided"
)

// IsValidLinkMode reports whether mode is one of the accepted link modes
func IsValidLinkMode(mode string) bool {
	switch mode {
	case LinkModeNotProvided, LinkModeCheckedNoLinks, LinkModeNotAvailable, LinkModeProvided:
		return true
	default:
		return false
	}
}

// Stage labels shown to the polling client
const (
	StageQueued          = "Queued…"
	StageExtractingAudio = "Extracting audio…"
	StageLoadingModel    = "Loading speech model… (first run may take time)"
	StageTranscribing    = "Transcribing audio…"
	StageValidatingLinks = "Validating links…"
	StageGenerating      = "Generating metadata…"
	StageQACheck         = "Final process check…"
	StageDone            = "Done."
	StageHardStop        = "Stopped (Hard Stop)."
	StageError           = "Error"
)

// Job is the in-memory record for one submitted file.
// Created on submission, mutated only by the goroutine that runs the job,
// immutable once Done is true. Status polling reads snapshots.
type Job struct {
	ID         string   `json:"job_id"`
	Stage      string   `json:"stage"`
	Progress   int      `json:"progress"`
	Done       bool     `json:"done"`
	Error      *string  `json:"error"`
	Transcript string   `json:"transcript"`
	Metadata   string   `json:"metadata"`
	QAIssues   []string `json:"qa_issues"`
	QAPass     *bool    `json:"qa_pass"`
}
