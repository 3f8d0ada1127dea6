package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/typecast/internal/llm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// replyServer fakes the chat endpoint, answering every call with content.
func replyServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": content},
			"done":    true,
		})
	}))
}

func newAnalyzer(url string) *Analyzer {
	c := llm.NewOllamaClient(url, "test-model", 0.7, 5*time.Second)
	return New(c, discardLogger())
}

func TestAnalyze_Success(t *testing.T) {
	server := replyServer(t, `Here you go:
{"results":[
  {"name":"bob","mbti":"isfp","scores":[20,30,70,80]},
  {"name":"Alice","mbti":"ENTJ","scores":[80,75,20,25]},
  {"name":"Zed","mbti":"INTP","scores":[1,2,3,4]}
]}
Hope it helps!`)
	defer server.Close()

	ext := newAnalyzer(server.URL)
	profiles, err := ext.Analyze(context.Background(), "key", []SpeakerText{
		{Name: "Alice", Transcript: "let's plan it"},
		{Name: "Bob", Transcript: "whatever works"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].Name != "Alice" || profiles[0].Type != "ENTJ" {
		t.Errorf("profile[0] = %+v", profiles[0])
	}
	if profiles[1].Name != "Bob" || profiles[1].Type != "ISFP" {
		t.Errorf("profile[1] = %+v", profiles[1])
	}
	if profiles[1].Scores[3] != 80 {
		t.Errorf("expected raw score 80 kept, got %d", profiles[1].Scores[3])
	}
}

func TestAnalyze_MissingSpeaker(t *testing.T) {
	server := replyServer(t, `{"results":[{"name":"Alice","mbti":"ENTJ","scores":[1,2,3,4]}]}`)
	defer server.Close()

	_, err := newAnalyzer(server.URL).Analyze(context.Background(), "key", []SpeakerText{
		{Name: "Alice"}, {Name: "Bob"},
	})
	var afe *AnalysisFailedError
	if !errors.As(err, &afe) {
		t.Fatalf("expected AnalysisFailedError, got %v", err)
	}
}

func TestAnalyze_InvalidJSON(t *testing.T) {
	server := replyServer(t, "this is not json")
	defer server.Close()

	_, err := newAnalyzer(server.URL).Analyze(context.Background(), "key", []SpeakerText{{Name: "Alice"}})
	var afe *AnalysisFailedError
	if !errors.As(err, &afe) {
		t.Fatalf("expected AnalysisFailedError, got %v", err)
	}
}

func TestAnalyze_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newAnalyzer(server.URL).Analyze(context.Background(), "key", []SpeakerText{{Name: "Alice"}})
	var afe *AnalysisFailedError
	if !errors.As(err, &afe) {
		t.Fatalf("expected AnalysisFailedError, got %v", err)
	}
	var te *llm.TransportError
	if !errors.As(err, &te) {
		t.Errorf("expected wrapped TransportError, got %v", err)
	}
}

func TestAnalyze_NoSpeakers(t *testing.T) {
	_, err := newAnalyzer("http://unused").Analyze(context.Background(), "key", nil)
	var afe *AnalysisFailedError
	if !errors.As(err, &afe) {
		t.Fatalf("expected AnalysisFailedError, got %v", err)
	}
}

func TestExtractProfiles(t *testing.T) {
	profiles, ok := ExtractProfiles(`Sure! {"results":[{"name":"A","mbti":"INTJ","scores":[10,20,30,40]}]} thanks`)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if len(profiles) != 1 || profiles[0].Name != "A" || profiles[0].Type != "INTJ" {
		t.Errorf("unexpected profiles: %+v", profiles)
	}

	failures := map[string]string{
		"no braces":       "I cannot answer that",
		"reversed braces": "} oops {",
		"invalid json":    `{"results": [ {"name": }`,
		"missing key":     `{"profiles":[{"name":"A","mbti":"INTJ","scores":[1,2,3,4]}]}`,
		"wrong shape":     `{"results":"A is INTJ"}`,
		"text scores":     `{"results":[{"name":"A","mbti":"INTJ","scores":["hi",2,3,4]}]}`,
		"stray brace":     `Use {braces} like {"results":[]}`,
		"null results":    `{"results": null}`,
		"invalid code":    `{"results":[{"name":"A","mbti":"XYZW","scores":[1,2,3,4]}]}`,
		"short code":      `{"results":[{"name":"A","mbti":"INT","scores":[1,2,3,4]}]}`,
	}
	for name, text := range failures {
		t.Run(name, func(t *testing.T) {
			if got, ok := ExtractProfiles(text); ok || got != nil {
				t.Errorf("expected failure, got %v %v", got, ok)
			}
		})
	}
}

func TestBuildMessages(t *testing.T) {
	long := strings.Repeat("語", 700)
	msgs := BuildMessages([]SpeakerText{
		{Name: "Alice", Transcript: long},
		{Name: "Bob", Transcript: "short"},
	})
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[1].Role != llm.RoleUser {
		t.Errorf("unexpected roles: %s, %s", msgs[0].Role, msgs[1].Role)
	}
	if !strings.Contains(msgs[0].Content, "Alice, Bob") {
		t.Error("system prompt should list the speakers")
	}
	if !strings.Contains(msgs[0].Content, `"results"`) {
		t.Error("system prompt should embed the reply schema")
	}

	want := "Alice:\n" + strings.Repeat("語", TranscriptBudget) + "\n\nBob:\nshort"
	if msgs[1].Content != want {
		t.Errorf("user content not truncated as expected (len %d)", len([]rune(msgs[1].Content)))
	}
}
