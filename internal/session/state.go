package session

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/typecast/internal/chart"
	"github.com/MikeSquared-Agency/typecast/internal/chatlog"
	"github.com/MikeSquared-Agency/typecast/internal/llm"
	"github.com/MikeSquared-Agency/typecast/internal/mbti"
)

// AnalysisContext is the result of one successful analysis run. It is only
// ever replaced whole.
type AnalysisContext struct {
	RunID     uuid.UUID      `json:"run_id"`
	Profiles  []mbti.Profile `json:"profiles"`
	Dialogue  string         `json:"dialogue"`
	CreatedAt time.Time      `json:"created_at"`
}

// State is everything one session owns. Only the Service mutates it, and
// only after an operation has fully succeeded.
type State struct {
	ID string `json:"id"`

	Transcript *chatlog.Transcript `json:"transcript,omitempty"`
	RawLog     string              `json:"raw_log,omitempty"` // text the Transcript was parsed from
	Selection  []string            `json:"selection,omitempty"`
	Context    *AnalysisContext    `json:"context,omitempty"`
	History    []llm.Message       `json:"history,omitempty"`
	Chart      *chart.Layout       `json:"chart,omitempty"`
	Figure     json.RawMessage     `json:"figure,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func newState(id string) *State {
	return &State{ID: id, UpdatedAt: time.Now().UTC()}
}

// Reset clears every piece of session data at once. The id survives.
func (s *State) Reset() {
	*s = State{ID: s.ID, UpdatedAt: time.Now().UTC()}
}

// Summary is the read-only view handed to callers.
type Summary struct {
	ID         string         `json:"id"`
	Speakers   []string       `json:"speakers"`
	Selection  []string       `json:"selection"`
	Profiles   []mbti.Profile `json:"profiles"`
	History    []llm.Message  `json:"history"`
	HasChart   bool           `json:"has_chart"`
	AnalysisID string         `json:"analysis_id,omitempty"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (s *State) Summary() Summary {
	sum := Summary{
		ID:        s.ID,
		Speakers:  s.Transcript.Speakers(),
		Selection: append([]string(nil), s.Selection...),
		History:   append([]llm.Message(nil), s.History...),
		HasChart:  s.Chart != nil,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Context != nil {
		sum.Profiles = append([]mbti.Profile(nil), s.Context.Profiles...)
		sum.AnalysisID = s.Context.RunID.String()
	}
	return sum
}
