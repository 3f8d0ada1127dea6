package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/typecast/internal/llm"
	"github.com/MikeSquared-Agency/typecast/internal/mbti"
)

type Analyzer struct {
	llm    llm.Completer
	logger *slog.Logger
}

func New(c llm.Completer, logger *slog.Logger) *Analyzer {
	return &Analyzer{llm: c, logger: logger}
}

// Analyze infers a profile for every speaker. It either returns exactly one
// profile per requested speaker, in request order, or an
// *AnalysisFailedError.
func (a *Analyzer) Analyze(ctx context.Context, credential string, speakers []SpeakerText) ([]mbti.Profile, error) {
	if len(speakers) == 0 {
		return nil, &AnalysisFailedError{Cause: fmt.Errorf("no speakers")}
	}

	a.logger.Info("requesting analysis", "speakers", len(speakers))

	raw, err := a.llm.Complete(ctx, credential, BuildMessages(speakers))
	if err != nil {
		return nil, &AnalysisFailedError{Cause: fmt.Errorf("llm analysis: %w", err)}
	}

	results, err := extract(raw)
	if err != nil {
		a.logger.Error("failed to parse analysis response", "error", err, "raw", raw)
		return nil, &AnalysisFailedError{Cause: err}
	}

	profiles, err := matchSpeakers(speakers, results)
	if err != nil {
		a.logger.Error("incomplete analysis response", "error", err, "results", len(results))
		return nil, &AnalysisFailedError{Cause: err}
	}

	a.logger.Info("analysis complete", "profiles", len(profiles))
	return profiles, nil
}

// matchSpeakers pairs every requested speaker with a result, exact name
// first, then ignoring case. Extra results are dropped.
func matchSpeakers(speakers []SpeakerText, results []mbti.Profile) ([]mbti.Profile, error) {
	out := make([]mbti.Profile, 0, len(speakers))
	used := make([]bool, len(results))
	for _, s := range speakers {
		idx := -1
		for i, r := range results {
			if !used[i] && r.Name == s.Name {
				idx = i
				break
			}
		}
		if idx == -1 {
			for i, r := range results {
				if !used[i] && strings.EqualFold(r.Name, strings.TrimSpace(s.Name)) {
					idx = i
					break
				}
			}
		}
		if idx == -1 {
			return nil, fmt.Errorf("speaker %q missing from result", s.Name)
		}
		used[idx] = true
		p := results[idx]
		p.Name = s.Name
		out = append(out, p)
	}
	return out, nil
}
