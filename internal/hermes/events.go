package hermes

// Subjects for typecast session events.
const (
	SubjectAnalysisCompleted = "typecast.analysis.completed"
	SubjectChartGenerated    = "typecast.chart.generated"
	SubjectSessionReset      = "typecast.session.reset"
)

// AnalysisCompleted is emitted once a session has a new set of profiles.
type AnalysisCompleted struct {
	SessionID string           `json:"session_id"`
	RunID     string           `json:"run_id"`
	Profiles  []ProfileSummary `json:"profiles"`
}

type ProfileSummary struct {
	Name   string `json:"name"`
	Type   string `json:"mbti"`
	Scores []int  `json:"scores"`
}

// ChartGenerated is emitted when a chat turn draws a spectrum chart.
type ChartGenerated struct {
	SessionID string `json:"session_id"`
	RunID     string `json:"run_id"`
	Traces    int    `json:"traces"`
}

type SessionReset struct {
	SessionID string `json:"session_id"`
}
