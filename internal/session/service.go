package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/typecast/internal/analysis"
	"github.com/MikeSquared-Agency/typecast/internal/chatlog"
	"github.com/MikeSquared-Agency/typecast/internal/hermes"
	"github.com/MikeSquared-Agency/typecast/internal/llm"
	"github.com/MikeSquared-Agency/typecast/internal/metrics"
	"github.com/MikeSquared-Agency/typecast/internal/router"
)

// Publisher receives session side-effect events. *hermes.Client satisfies it.
type Publisher interface {
	Publish(subject string, data any) error
}

// TurnResult is what one chat turn produced.
type TurnResult struct {
	Reply        string      `json:"reply"`
	Tool         router.Tool `json:"-"`
	ChartUpdated bool        `json:"chart_updated"`
	Score        *int        `json:"score,omitempty"`
}

// Service implements the session operations over an explicit *State.
type Service struct {
	analyzer *analysis.Analyzer
	router   *router.Router
	events   Publisher
	logger   *slog.Logger
}

// NewService wires the operations. events may be nil.
func NewService(a *analysis.Analyzer, r *router.Router, events Publisher, logger *slog.Logger) *Service {
	return &Service{analyzer: a, router: r, events: events, logger: logger}
}

// SubmitLog parses an uploaded chat export and returns its speakers, most
// active first. A selection that still names speakers of the new log is
// kept; the rest of it is dropped.
func (s *Service) SubmitLog(st *State, r io.Reader) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		metrics.LogsParsed.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("read log: %w", err)
	}

	t, err := chatlog.Parse(string(raw))
	if err != nil {
		metrics.LogsParsed.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("parse log: %w", err)
	}
	stats := t.Stats()
	if t.Empty() {
		metrics.LogsParsed.WithLabelValues("invalid").Inc()
		s.logger.Warn("chat log rejected", "session_id", st.ID, "lines", stats.Lines, "pruned", stats.Pruned, "oversized", stats.Oversized)
		return nil, ErrInvalidFile
	}
	metrics.LogsParsed.WithLabelValues("ok").Inc()

	var kept []string
	for _, name := range st.Selection {
		if t.Has(name) {
			kept = append(kept, name)
		}
	}

	st.Transcript = t
	st.RawLog = string(raw)
	st.Selection = kept
	st.UpdatedAt = time.Now().UTC()

	s.logger.Info("chat log parsed",
		"session_id", st.ID,
		"lines", stats.Lines,
		"accepted", stats.Accepted,
		"speakers", len(t.Speakers()),
	)
	return t.Speakers(), nil
}

// SelectSpeakers replaces the selection. Duplicates are collapsed; every
// name must be a transcript speaker.
func (s *Service) SelectSpeakers(st *State, names []string) error {
	if st.Transcript.Empty() {
		return ErrNoTranscript
	}

	seen := make(map[string]bool, len(names))
	selection := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		if !st.Transcript.Has(n) {
			return fmt.Errorf("%w: %q", ErrUnknownSpeaker, n)
		}
		seen[n] = true
		selection = append(selection, n)
	}
	if len(selection) == 0 {
		return ErrEmptySelection
	}

	st.Selection = selection
	st.UpdatedAt = time.Now().UTC()
	return nil
}

// RunAnalysis profiles every selected speaker. On success the previous
// analysis, and the chart drawn from it, are replaced and a welcome message
// is appended to the history. On failure nothing changes.
func (s *Service) RunAnalysis(ctx context.Context, st *State, credential string) (*AnalysisContext, error) {
	if st.Transcript.Empty() {
		return nil, ErrNoTranscript
	}
	if len(st.Selection) == 0 {
		return nil, ErrEmptySelection
	}

	speakers := make([]analysis.SpeakerText, 0, len(st.Selection))
	for _, name := range st.Selection {
		speakers = append(speakers, analysis.SpeakerText{Name: name, Transcript: st.Transcript.Text(name)})
	}

	profiles, err := s.analyzer.Analyze(ctx, credential, speakers)
	if err != nil {
		metrics.Analyses.WithLabelValues("failed").Inc()
		s.logger.Error("analysis failed", "session_id", st.ID, "error", err)
		return nil, err
	}
	metrics.Analyses.WithLabelValues("ok").Inc()

	ac := &AnalysisContext{
		RunID:     uuid.New(),
		Profiles:  profiles,
		Dialogue:  st.RawLog,
		CreatedAt: time.Now().UTC(),
	}
	st.Context = ac
	st.Chart = nil
	st.Figure = nil
	st.History = append(st.History, llm.Message{Role: llm.RoleAssistant, Content: welcomeMessage(profiles)})
	st.UpdatedAt = ac.CreatedAt

	s.publish(hermes.SubjectAnalysisCompleted, hermes.AnalysisCompleted{
		SessionID: st.ID,
		RunID:     ac.RunID.String(),
		Profiles:  profileEvents(profiles),
	})
	return ac, nil
}

// SubmitChatTurn routes one user utterance. The user and assistant messages
// are appended only when the turn succeeds.
func (s *Service) SubmitChatTurn(ctx context.Context, st *State, text, credential string) (*TurnResult, error) {
	if st.Context == nil {
		return nil, ErrNoAnalysis
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	res, err := s.router.Route(ctx, router.Request{
		Credential: credential,
		Profiles:   st.Context.Profiles,
		Dialogue:   st.Context.Dialogue,
		History:    st.History,
		Utterance:  text,
	})
	if err != nil {
		s.logger.Error("chat turn failed", "session_id", st.ID, "error", err)
		return nil, err
	}

	st.History = append(st.History,
		llm.Message{Role: llm.RoleUser, Content: text},
		llm.Message{Role: llm.RoleAssistant, Content: res.Reply},
	)
	out := &TurnResult{Reply: res.Reply, Tool: res.Tool, Score: res.Score}
	if res.Chart != nil {
		st.Chart = res.Chart
		st.Figure = res.Figure
		out.ChartUpdated = true
		s.publish(hermes.SubjectChartGenerated, hermes.ChartGenerated{
			SessionID: st.ID,
			RunID:     st.Context.RunID.String(),
			Traces:    len(res.Chart.Traces),
		})
	}
	st.UpdatedAt = time.Now().UTC()

	s.logger.Info("chat turn routed", "session_id", st.ID, "tool", res.Tool.String(), "chart_updated", out.ChartUpdated)
	return out, nil
}

// Reset clears the whole session.
func (s *Service) Reset(st *State) {
	st.Reset()
	s.publish(hermes.SubjectSessionReset, hermes.SessionReset{SessionID: st.ID})
	s.logger.Info("session reset", "session_id", st.ID)
}

func (s *Service) publish(subject string, event any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, event); err != nil {
		s.logger.Error("failed to publish event", "subject", subject, "error", err)
	}
}
