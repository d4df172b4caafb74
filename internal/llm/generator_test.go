package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arupbarman82/ft-chromebook-app/internal/links"
	"github.com/arupbarman82/ft-chromebook-app/internal/models"
)

// recordedAttempt is one caller invocation seen by the fake.
type recordedAttempt struct {
	Protocol Protocol
	Model    string
}

// fakeCaller scripts per-attempt outcomes and records the attempt order.
type fakeCaller struct {
	attempts []recordedAttempt
	respond  func(protocol Protocol, model string) (string, error)
}

func (f *fakeCaller) Call(_ context.Context, protocol Protocol, req Request) (string, error) {
	f.attempts = append(f.attempts, recordedAttempt{Protocol: protocol, Model: req.Model})
	return f.respond(protocol, req.Model)
}

func testSettings() models.Settings {
	return models.Settings{
		APIKey:          "sk-test",
		Model:           "model-a",
		FallbackModels:  "model-b,model-c",
		ReasoningEffort: "high",
	}
}

func newTestGenerator(fake *fakeCaller) *Generator {
	return NewGeneratorWithFactory(func(string) Caller { return fake })
}

// TestModelList verifies primary-first ordering and deduplication.
func TestModelList(t *testing.T) {
	got := ModelList("model-a", []string{"model-b", "model-a", " model-c ", ""})
	want := []string{"model-a", "model-b", "model-c"}
	if len(got) != len(want) {
		t.Fatalf("ModelList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ModelList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestGenerateFirstProtocolSuccessOnFallback checks that a later model's
// success on the preferred protocol is returned with no further attempts.
func TestGenerateFirstProtocolSuccessOnFallback(t *testing.T) {
	fake := &fakeCaller{respond: func(protocol Protocol, model string) (string, error) {
		if protocol == ProtocolResponses && model == "model-b" {
			return "  generated text  ", nil
		}
		return "", errors.New("model overloaded")
	}}

	out, err := newTestGenerator(fake).Generate(context.Background(), "00:00 hi", models.LinkModeCheckedNoLinks, nil, testSettings())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "generated text" {
		t.Errorf("output = %q, want trimmed text", out)
	}

	want := []recordedAttempt{
		{ProtocolResponses, "model-a"},
		{ProtocolResponses, "model-b"},
	}
	if len(fake.attempts) != len(want) {
		t.Fatalf("attempts = %v, want %v", fake.attempts, want)
	}
	for i := range want {
		if fake.attempts[i] != want[i] {
			t.Errorf("attempt %d = %v, want %v", i, fake.attempts[i], want[i])
		}
	}
}

// TestGenerateMissingScopeAbandonsFirstPass checks the early-break rule: a
// permission-scope failure skips the remaining responses attempts and moves
// straight to chat completions.
func TestGenerateMissingScopeAbandonsFirstPass(t *testing.T) {
	fake := &fakeCaller{respond: func(protocol Protocol, model string) (string, error) {
		if protocol == ProtocolResponses {
			return "", &APIError{StatusCode: 401, Message: "missing scope: api.responses.write"}
		}
		return "chat output", nil
	}}

	out, err := newTestGenerator(fake).Generate(context.Background(), "00:00 hi", models.LinkModeCheckedNoLinks, nil, testSettings())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "chat output" {
		t.Errorf("output = %q", out)
	}

	// One responses attempt, then the chat pass begins
	if fake.attempts[0].Protocol != ProtocolResponses || fake.attempts[0].Model != "model-a" {
		t.Fatalf("first attempt = %v", fake.attempts[0])
	}
	if fake.attempts[1].Protocol != ProtocolChat {
		t.Fatalf("second attempt = %v, want chat protocol", fake.attempts[1])
	}
}

// TestGenerateEmptyChatResultContinues checks that an empty chat success is
// treated as a failure and the next model is tried.
func TestGenerateEmptyChatResultContinues(t *testing.T) {
	fake := &fakeCaller{respond: func(protocol Protocol, model string) (string, error) {
		if protocol == ProtocolResponses {
			return "", errors.New("responses unavailable")
		}
		if model == "model-b" {
			return "real output", nil
		}
		return "   ", nil
	}}

	out, err := newTestGenerator(fake).Generate(context.Background(), "00:00 hi", models.LinkModeCheckedNoLinks, nil, testSettings())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "real output" {
		t.Errorf("output = %q, want output from second chat model", out)
	}
}

// TestGenerateExhaustionFails verifies the aggregated failure with the
// remediation hint once both passes are exhausted.
func TestGenerateExhaustionFails(t *testing.T) {
	lastErr := errors.New("chat rejected for model-c")
	fake := &fakeCaller{respond: func(protocol Protocol, model string) (string, error) {
		if protocol == ProtocolChat && model == "model-c" {
			return "", lastErr
		}
		return "", errors.New("attempt failed")
	}}

	_, err := newTestGenerator(fake).Generate(context.Background(), "00:00 hi", models.LinkModeCheckedNoLinks, nil, testSettings())
	if err == nil {
		t.Fatal("expected generation failure")
	}

	var genErr *GenerationFailedError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %T, want *GenerationFailedError", err)
	}
	if !errors.Is(err, lastErr) {
		t.Error("failure should wrap the last recorded error")
	}
	if !strings.Contains(err.Error(), "api.responses.write") {
		t.Error("failure should carry the remediation hint")
	}

	// 3 responses attempts + 3 chat attempts
	if len(fake.attempts) != 6 {
		t.Errorf("attempts = %d, want 6", len(fake.attempts))
	}
}

// TestGenerateMissingAPIKey checks that no attempt is made without a key.
func TestGenerateMissingAPIKey(t *testing.T) {
	fake := &fakeCaller{respond: func(Protocol, string) (string, error) {
		return "should not be called", nil
	}}

	settings := testSettings()
	settings.APIKey = "  "
	_, err := newTestGenerator(fake).Generate(context.Background(), "00:00 hi", models.LinkModeCheckedNoLinks, nil, settings)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
	if len(fake.attempts) != 0 {
		t.Errorf("made %d attempts without a key", len(fake.attempts))
	}
}

// TestBuildUserPayload checks the payload layout and the JSON link list.
func TestBuildUserPayload(t *testing.T) {
	validated := []links.ValidatedLink{{URL: "https://youtu.be/abc", OK: true, Title: "Algebra"}}
	payload, err := BuildUserPayload("00:00 hello", models.LinkModeProvided, validated)
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}

	if !strings.HasPrefix(payload, "LINKS_MODE: provided\n\nVALIDATED_LINKS:\n") {
		t.Errorf("payload prefix wrong:\n%s", payload)
	}
	if !strings.Contains(payload, `"url": "https://youtu.be/abc"`) {
		t.Errorf("payload missing serialized link:\n%s", payload)
	}
	if !strings.HasSuffix(payload, "\n\nTRANSCRIPT:\n00:00 hello\n") {
		t.Errorf("payload suffix wrong:\n%s", payload)
	}

	// No links still serializes as an empty JSON list, not null
	empty, err := BuildUserPayload("00:00 hello", models.LinkModeCheckedNoLinks, nil)
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}
	if !strings.Contains(empty, "VALIDATED_LINKS:\n[]") {
		t.Errorf("empty link list should serialize as []:\n%s", empty)
	}
}
