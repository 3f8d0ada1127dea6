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
)

const anthropicMaxTokens = 4096

// AnthropicClient talks to the Messages API. The credential is sent as
// x-api-key on every call.
type AnthropicClient struct {
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
}

func NewAnthropicClient(baseURL, model string, temperature float64, timeout time.Duration) *AnthropicClient {
	return &AnthropicClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: temperature,
		client:      &http.Client{Timeout: timeout},
	}
}

type anthropicRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type anthropicErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the conversation to /v1/messages. System messages are
// lifted into the top-level system field.
func (c *AnthropicClient) Complete(ctx context.Context, credential string, messages []Message) (string, error) {
	reqBody := anthropicRequest{
		Model:       c.model,
		MaxTokens:   anthropicMaxTokens,
		Temperature: c.temperature,
	}
	var system []string
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		reqBody.Messages = append(reqBody.Messages, m)
	}
	reqBody.System = strings.Join(system, "\n\n")

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", credential)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Message: "api call", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Message: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return "", &TransportError{StatusCode: resp.StatusCode, Message: errResp.Error.Type + ": " + errResp.Error.Message}
		}
		return "", &TransportError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", &TransportError{Message: "unmarshal response", Err: err}
	}

	var out strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return out.String(), nil
}
