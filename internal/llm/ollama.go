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

// OllamaClient talks to an Ollama-compatible /api/chat endpoint behind a
// bearer-token gateway.
type OllamaClient struct {
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
}

func NewOllamaClient(baseURL, model string, temperature float64, timeout time.Duration) *OllamaClient {
	return &OllamaClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: temperature,
		client:      &http.Client{Timeout: timeout},
	}
}

// SetTestTransport points the client at a test server.
func (c *OllamaClient) SetTestTransport(url string) {
	c.baseURL = strings.TrimRight(url, "/")
}

type ollamaRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Model   string  `json:"model"`
	Message Message `json:"message"`
	Done    bool    `json:"done"`
	Error   string  `json:"error"`
}

// Complete sends the conversation to /api/chat and returns the assistant text.
func (c *OllamaClient) Complete(ctx context.Context, credential string, messages []Message) (string, error) {
	reqBody := ollamaRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Options:  map[string]any{"temperature": c.temperature},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Message: "api call", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TransportError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	var apiResp ollamaResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", &TransportError{Message: "unmarshal response", Err: err}
	}
	if apiResp.Error != "" {
		return "", &TransportError{Message: "ollama error: " + apiResp.Error}
	}

	return apiResp.Message.Content, nil
}
