package router

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/typecast/internal/chart"
	"github.com/MikeSquared-Agency/typecast/internal/llm"
	"github.com/MikeSquared-Agency/typecast/internal/mbti"
)

type fakeLLM struct {
	reply string
	err   error
	got   []llm.Message
}

func (f *fakeLLM) Complete(_ context.Context, _ string, messages []llm.Message) (string, error) {
	f.got = messages
	return f.reply, f.err
}

type failingRenderer struct{}

func (failingRenderer) Render(context.Context, *chart.Layout) ([]byte, error) {
	return nil, errors.New("renderer down")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pair() []mbti.Profile {
	return []mbti.Profile{
		{Name: "Alice", Type: "ENTJ", Scores: mbti.Scores{80, 70, 20, 30}},
		{Name: "Bob", Type: "ISFP", Scores: mbti.Scores{20, 30, 80, 70}},
	}
}

func trio() []mbti.Profile {
	return append(pair(), mbti.Profile{Name: "Cy", Type: "INTP", Scores: mbti.Scores{30, 80, 30, 80}})
}

func TestDetect(t *testing.T) {
	assert.Equal(t, ToolChart, Detect(`TOOL_CALL: { "name": "tool_generate_bipolar_chart" }`))
	assert.Equal(t, ToolCompatibility, Detect("calling tool_calculate_compatibility now"))
	assert.Equal(t, ToolChart, Detect("tool_calculate_compatibility then tool_generate_bipolar_chart"))
	assert.Equal(t, ToolNone, Detect("Try talking it through calmly."))
	assert.Equal(t, ToolNone, Detect("generate a chart"))
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, Chinese, DetectLanguage("幫我畫圖"))
	assert.Equal(t, Chinese, DetectLanguage("draw 圖 please"))
	assert.Equal(t, English, DetectLanguage("draw a chart"))
	assert.Equal(t, English, DetectLanguage(""))
}

func TestRoute_Compatibility_TwoProfiles(t *testing.T) {
	f := &fakeLLM{reply: `TOOL_CALL: { "name": "tool_calculate_compatibility" }`}
	r := New(f, nil, discardLogger())

	res, err := r.Route(context.Background(), Request{Profiles: pair(), Utterance: "how compatible are we?"})
	require.NoError(t, err)

	assert.Equal(t, ToolCompatibility, res.Tool)
	assert.Contains(t, res.Reply, "Alice")
	assert.Contains(t, res.Reply, "Bob")
	require.NotNil(t, res.Score)
	assert.Equal(t, mbti.Compatibility(pair()[0].Scores, pair()[1].Scores), *res.Score)

	m := regexp.MustCompile(`\*\*(\d+)\*\*`).FindStringSubmatch(res.Reply)
	require.Len(t, m, 2)
	score, _ := strconv.Atoi(m[1])
	assert.GreaterOrEqual(t, score, 10)
	assert.LessOrEqual(t, score, 99)
}

func TestRoute_Compatibility_UsesRawScores(t *testing.T) {
	f := &fakeLLM{reply: CompatibilityToolID}
	r := New(f, nil, discardLogger())

	profiles := []mbti.Profile{
		{Name: "A", Type: "INTJ", Scores: mbti.Scores{50, 50, 50, 50}},
		{Name: "B", Type: "ENFP", Scores: mbti.Scores{50, 50, 50, 50}},
	}
	res, err := r.Route(context.Background(), Request{Profiles: profiles, Utterance: "score?"})
	require.NoError(t, err)
	require.NotNil(t, res.Score)
	assert.Equal(t, 99, *res.Score)
}

func TestRoute_Compatibility_DeclinesForThree(t *testing.T) {
	f := &fakeLLM{reply: CompatibilityToolID}
	r := New(f, nil, discardLogger())

	res, err := r.Route(context.Background(), Request{Profiles: trio(), Utterance: "match rate?"})
	require.NoError(t, err)
	assert.Equal(t, ToolCompatibility, res.Tool)
	assert.Nil(t, res.Score)
	assert.Equal(t, compatibilityDeclinedMessage(English, 3), res.Reply)

	res, err = r.Route(context.Background(), Request{Profiles: trio(), Utterance: "我們契合度幾分？"})
	require.NoError(t, err)
	assert.Equal(t, compatibilityDeclinedMessage(Chinese, 3), res.Reply)
}

func TestRoute_Chart(t *testing.T) {
	f := &fakeLLM{reply: ChartToolID + " and also " + CompatibilityToolID}
	r := New(f, chart.PlotlyRenderer{}, discardLogger())

	res, err := r.Route(context.Background(), Request{Profiles: trio(), Utterance: "幫我畫圖"})
	require.NoError(t, err)
	assert.Equal(t, ToolChart, res.Tool)
	require.NotNil(t, res.Chart)
	assert.Len(t, res.Chart.Traces, 3)
	assert.NotEmpty(t, res.Figure)
	assert.Nil(t, res.Score)
	assert.Equal(t, chartMessage(Chinese, 3), res.Reply)
	assert.Contains(t, res.Reply, "3")
}

func TestRoute_Chart_RenderFailureStillCharts(t *testing.T) {
	f := &fakeLLM{reply: ChartToolID}
	r := New(f, failingRenderer{}, discardLogger())

	res, err := r.Route(context.Background(), Request{Profiles: pair(), Utterance: "draw it"})
	require.NoError(t, err)
	require.NotNil(t, res.Chart)
	assert.Nil(t, res.Figure)
	assert.Equal(t, chartMessage(English, 2), res.Reply)
}

func TestRoute_Chart_MalformedProfilesDegrade(t *testing.T) {
	f := &fakeLLM{reply: ChartToolID}
	r := New(f, chart.PlotlyRenderer{}, discardLogger())

	res, err := r.Route(context.Background(), Request{
		Profiles:  []mbti.Profile{{Name: "", Type: "INTJ"}},
		Utterance: "chart",
	})
	require.NoError(t, err)
	assert.Nil(t, res.Chart)
	assert.Equal(t, chartFailedMessage(English), res.Reply)
}

func TestRoute_DirectReply(t *testing.T) {
	f := &fakeLLM{reply: "Try scheduling a weekly check-in."}
	r := New(f, nil, discardLogger())

	history := []llm.Message{
		{Role: llm.RoleAssistant, Content: "Analysis Complete."},
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "hello"},
		{Role: llm.RoleSystem, Content: "should be skipped"},
	}
	res, err := r.Route(context.Background(), Request{
		Profiles:  pair(),
		Dialogue:  strings.Repeat("x", 2000),
		History:   history,
		Utterance: "how do we stop arguing?",
	})
	require.NoError(t, err)
	assert.Equal(t, ToolNone, res.Tool)
	assert.Equal(t, "Try scheduling a weekly check-in.", res.Reply)

	require.Len(t, f.got, 5)
	assert.Equal(t, llm.RoleSystem, f.got[0].Role)
	assert.Contains(t, f.got[0].Content, "Alice (ENTJ) vs Bob (ISFP)")
	assert.Contains(t, f.got[0].Content, ChartToolID)
	assert.Contains(t, f.got[0].Content, CompatibilityToolID)
	assert.Contains(t, f.got[0].Content, strings.Repeat("x", dialogueBudget))
	assert.NotContains(t, f.got[0].Content, strings.Repeat("x", dialogueBudget+1))
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "how do we stop arguing?"}, f.got[4])
}

func TestRoute_TransportError(t *testing.T) {
	want := &llm.TransportError{StatusCode: 503, Message: "unavailable"}
	r := New(&fakeLLM{err: want}, nil, discardLogger())

	_, err := r.Route(context.Background(), Request{Profiles: pair(), Utterance: "hi"})
	var te *llm.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 503, te.StatusCode)
}
