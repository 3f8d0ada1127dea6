package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOpenAIComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/responses" {
			t.Errorf("expected /responses, got %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("expected forwarded credential, got %q", r.Header.Get("Authorization"))
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["instructions"] != "be brief" {
			t.Errorf("expected system prompt as instructions, got %v", body["instructions"])
		}
		if body["model"] != "gpt-test" {
			t.Errorf("expected model gpt-test, got %v", body["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "resp_1",
			"object": "response",
			"status": "completed",
			"model":  "gpt-test",
			"output": []map[string]any{
				{
					"type":   "message",
					"id":     "msg_1",
					"role":   "assistant",
					"status": "completed",
					"content": []map[string]any{
						{"type": "output_text", "text": "hello there", "annotations": []any{}},
					},
				},
			},
		})
	}))
	defer server.Close()

	c := NewOpenAIClient(server.URL, "gpt-test", 0.7, 5*time.Second)

	got, err := c.Complete(context.Background(), "sk-test", []Message{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "hi"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello there" {
		t.Errorf("expected 'hello there', got %q", got)
	}
}

func TestOpenAIComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad model","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	c := NewOpenAIClient(server.URL, "gpt-test", 0.7, 5*time.Second)

	_, err := c.Complete(context.Background(), "sk-test", []Message{{Role: RoleUser, Content: "hi"}})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", te.StatusCode)
	}
}
