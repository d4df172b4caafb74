package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arupbarman82/ft-chromebook-app/internal/links"
	"github.com/arupbarman82/ft-chromebook-app/internal/models"
)

// ErrMissingAPIKey is returned before any attempt when no key is configured.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is missing, save your API key in Settings")

// remediationHint is appended when every model and protocol is exhausted.
const remediationHint = "If you see missing scopes (example: api.responses.write), create a Project API key with All permissions or enable Write access for the Responses API in your key permissions."

// GenerationFailedError aggregates the last underlying error after all
// models and both protocols were exhausted.
type GenerationFailedError struct {
	Last error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("OpenAI request failed.\n\nLast error: %v\n\n%s", e.Last, remediationHint)
}

func (e *GenerationFailedError) Unwrap() error { return e.Last }

// CallerFactory builds a caller for the API key in effect when a job
// reaches the generation stage.
type CallerFactory func(apiKey string) Caller

// Generator produces the metadata text for one transcribed job, trying a
// primary model and ordered fallbacks across two call protocols.
type Generator struct {
	newCaller CallerFactory
}

// NewGenerator creates a generator backed by the OpenAI API.
func NewGenerator() *Generator {
	return &Generator{newCaller: NewOpenAICaller}
}

// NewGeneratorWithFactory creates a generator with a custom caller factory.
// Used by tests to exercise the retry policy without the network.
func NewGeneratorWithFactory(factory CallerFactory) *Generator {
	return &Generator{newCaller: factory}
}

// ModelList builds the ordered attempt list: the primary model followed by
// the fallbacks, with the primary deduplicated out of the fallback list.
func ModelList(primary string, fallbacks []string) []string {
	model := strings.TrimSpace(primary)
	list := []string{model}
	for _, fb := range fallbacks {
		if fb = strings.TrimSpace(fb); fb != "" && fb != model {
			list = append(list, fb)
		}
	}
	return list
}

// Generate runs the two-pass attempt order:
//
// Pass 1 tries the responses protocol on each model in order and returns the
// first success. A missing-scope failure abandons the whole pass, since every
// model shares the same credential defect.
//
// Pass 2 tries chat completions on each model in order. An empty successful
// result counts as a failure and the loop continues.
//
// Exhaustion of both passes yields a GenerationFailedError wrapping the last
// recorded error.
func (g *Generator) Generate(ctx context.Context, transcript, linkMode string, validated []links.ValidatedLink, settings models.Settings) (string, error) {
	apiKey := strings.TrimSpace(settings.APIKey)
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	user, err := BuildUserPayload(transcript, linkMode, validated)
	if err != nil {
		return "", err
	}

	modelsToTry := ModelList(settings.Model, settings.FallbackList())
	effort := models.NormalizeEffort(settings.ReasoningEffort)
	caller := g.newCaller(apiKey)

	var lastErr error

	for _, model := range modelsToTry {
		out, err := caller.Call(ctx, ProtocolResponses, Request{
			Model:  model,
			System: masterPrompt,
			User:   user,
			Effort: effort,
		})
		if err == nil {
			return strings.TrimSpace(out), nil
		}
		lastErr = err
		if IsMissingScope(err) {
			break
		}
	}

	for _, model := range modelsToTry {
		out, err := caller.Call(ctx, ProtocolChat, Request{
			Model:  model,
			System: masterPrompt,
			User:   user,
		})
		if err != nil {
			lastErr = err
			continue
		}
		if out = strings.TrimSpace(out); out != "" {
			return out, nil
		}
		lastErr = errors.New("empty response from chat completions")
	}

	return "", &GenerationFailedError{Last: lastErr}
}
