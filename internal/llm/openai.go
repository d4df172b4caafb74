package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// responsesBaseURL is the OpenAI endpoint for the preferred call protocol
const responsesBaseURL = "https://api.openai.com/v1"

// OpenAICaller talks to the OpenAI API. The chat-completions protocol goes
// through the SDK; the responses protocol is not covered by the SDK and is
// called over plain HTTP.
type OpenAICaller struct {
	apiKey     string
	baseURL    string
	chat       *openai.Client
	httpClient *http.Client
}

// NewOpenAICaller creates a caller authenticated with the given API key.
func NewOpenAICaller(apiKey string) Caller {
	return &OpenAICaller{
		apiKey:     apiKey,
		baseURL:    responsesBaseURL,
		chat:       openai.NewClient(apiKey),
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// Call executes one generation request with the selected protocol.
func (c *OpenAICaller) Call(ctx context.Context, protocol Protocol, req Request) (string, error) {
	if protocol == ProtocolResponses {
		return c.callResponses(ctx, req)
	}
	return c.callChat(ctx, req)
}

// callChat uses the SDK's chat-completions call
func (c *OpenAICaller) callChat(ctx context.Context, req Request) (string, error) {
	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// responsesRequest is the request body for the responses protocol
type responsesRequest struct {
	Model     string             `json:"model"`
	Input     []responsesMessage `json:"input"`
	Reasoning *responsesEffort   `json:"reasoning,omitempty"`
	Store     bool               `json:"store"`
}

type responsesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesEffort struct {
	Effort string `json:"effort"`
}

// responsesResult is the subset of the response body we consume
type responsesResult struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *apiErrorBody `json:"error"`
}

type apiErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// APIError is a failed responses-protocol call. The provider message is
// preserved verbatim so the scope classifier can inspect it.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai responses request failed with status %d: %s", e.StatusCode, e.Message)
}

// callResponses posts to the responses endpoint directly
func (c *OpenAICaller) callResponses(ctx context.Context, req Request) (string, error) {
	body := responsesRequest{
		Model: req.Model,
		Input: []responsesMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Store: false,
	}
	if req.Effort != "" {
		body.Reasoning = &responsesEffort{Effort: req.Effort}
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var result responsesResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		}
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(respBody)
		if result.Error != nil {
			msg = result.Error.Message
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	// Aggregate the message output text; reasoning items carry no text
	var text strings.Builder
	for _, item := range result.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				text.WriteString(part.Text)
			}
		}
	}
	return text.String(), nil
}
