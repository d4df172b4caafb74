package models

import "strings"

// Reasoning effort levels accepted by the generation service
const (
	EffortLow    = "low"
	EffortMedium = "medium"
	EffortHigh   = "high"
)

// Settings holds the runtime generation settings (API key and model choices).
// Defaults come from the environment; saved values override them.
type Settings struct {
	APIKey          string `json:"api_key"`
	Model           string `json:"model"`
	FallbackModels  string `json:"fallback_models"`
	ReasoningEffort string `json:"reasoning_effort"`
}

// FallbackList splits the comma-separated fallback models, dropping blanks.
func (s Settings) FallbackList() []string {
	var list []string
	for _, m := range strings.Split(s.FallbackModels, ",") {
		if m = strings.TrimSpace(m); m != "" {
			list = append(list, m)
		}
	}
	return list
}

// NormalizeEffort clamps a reasoning effort value to an accepted level.
func NormalizeEffort(effort string) string {
	switch strings.ToLower(strings.TrimSpace(effort)) {
	case EffortLow:
		return EffortLow
	case EffortMedium:
		return EffortMedium
	default:
		return EffortHigh
	}
}
