package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/typecast/internal/config"
)

const sampleLog = "10:01\tAlice\tmorning!\n" +
	"10:02\tBob\they\n" +
	"10:03\tAlice\tdid you finish the report\n" +
	"10:04\tBob\tnot yet\n" +
	"10:05\tAlice\twe need it today\n" +
	"10:06\tBob\tok ok\n" +
	"10:07\tAlice\tthanks\n"

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSpeakersCommand(t *testing.T) {
	out, err := run(t, "speakers", writeLog(t, sampleLog))
	require.NoError(t, err)
	assert.Equal(t, "Alice\t4\nBob\t3\n", out)
}

func TestSpeakersCommand_InvalidLog(t *testing.T) {
	_, err := run(t, "speakers", writeLog(t, "hello\nworld\n"))
	assert.Error(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer cli-key", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{
				"role":    "assistant",
				"content": `{"results":[{"name":"Alice","mbti":"ENTJ","scores":[80,70,20,30]},{"name":"Bob","mbti":"ISFP","scores":[20,30,80,70]}]}`,
			},
			"done": true,
		})
	}))
	defer model.Close()

	chartPath := filepath.Join(t.TempDir(), "chart.json")
	out, err := run(t, "analyze", writeLog(t, sampleLog),
		"--backend", "ollama",
		"--api-base-url", model.URL,
		"--api-key", "cli-key",
		"--chart", chartPath,
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Alice\tENTJ\t80,70,20,30", lines[0])
	assert.Equal(t, "Bob\tISFP\t20,30,80,70", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "compatibility\t"))

	fig, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	assert.Contains(t, string(fig), `"data"`)
}

func TestNewCompleter_Backends(t *testing.T) {
	for _, backend := range []string{config.BackendOllama, config.BackendOpenAI, config.BackendAnthropic} {
		c, err := newCompleter(&config.Config{Backend: backend, APIBaseURL: "http://localhost"})
		require.NoError(t, err, backend)
		assert.NotNil(t, c, backend)
	}
}

func TestNewCompleter_UnknownBackend(t *testing.T) {
	_, err := newCompleter(&config.Config{Backend: "carrier-pigeon"})
	assert.Error(t, err)
}
