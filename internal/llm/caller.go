package llm

import (
	"context"
	"strings"
)

// Protocol selects which generation-service call is attempted.
type Protocol int

const (
	// ProtocolResponses is the preferred call protocol.
	ProtocolResponses Protocol = iota
	// ProtocolChat is the alternate call protocol.
	ProtocolChat
)

// String returns the protocol name for logs and errors
func (p Protocol) String() string {
	if p == ProtocolResponses {
		return "responses"
	}
	return "chat_completions"
}

// Request carries one generation attempt against a single model.
type Request struct {
	Model  string
	System string
	User   string
	Effort string // reasoning effort hint, responses protocol only
}

// Caller executes a single generation request with one protocol.
// Implemented by the OpenAI client; tests substitute fakes.
type Caller interface {
	Call(ctx context.Context, protocol Protocol, req Request) (string, error)
}

// missingScopeToken is the provider's error marker for an API key that lacks
// write access to the responses endpoint. Provider-specific: targeting a
// different generation service means replacing this classifier.
const missingScopeToken = "api.responses.write"

// IsMissingScope reports whether err signals a permission-scope deficiency
// on the preferred protocol. Retrying other models with the same credential
// is pointless, so the whole first pass is abandoned.
func IsMissingScope(err error) bool {
	return err != nil && strings.Contains(err.Error(), missingScopeToken)
}
