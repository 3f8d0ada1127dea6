package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/typecast/internal/chart"
	"github.com/MikeSquared-Agency/typecast/internal/llm"
	"github.com/MikeSquared-Agency/typecast/internal/mbti"
	"github.com/MikeSquared-Agency/typecast/internal/metrics"
)

// Request is one chat turn against the current analysis.
type Request struct {
	Credential string
	Profiles   []mbti.Profile
	Dialogue   string
	History    []llm.Message // prior user/assistant turns, oldest first
	Utterance  string
}

// Result is the routed reply plus whatever side effect ran.
type Result struct {
	Reply  string
	Tool   Tool
	Chart  *chart.Layout // nil unless a chart was built
	Figure []byte        // rendered Chart; nil if rendering failed
	Score  *int          // set only when compatibility was computed
}

type Router struct {
	llm      llm.Completer
	renderer chart.Renderer
	logger   *slog.Logger
}

func New(c llm.Completer, renderer chart.Renderer, logger *slog.Logger) *Router {
	return &Router{llm: c, renderer: renderer, logger: logger}
}

// Route asks the model how to handle the utterance and performs the tool it
// picks. The only error is a failed inference call.
func (r *Router) Route(ctx context.Context, req Request) (*Result, error) {
	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: routingPrompt(req.Profiles, req.Dialogue)})
	for _, m := range req.History {
		if m.Role == llm.RoleUser || m.Role == llm.RoleAssistant {
			messages = append(messages, m)
		}
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: req.Utterance})

	content, err := r.llm.Complete(ctx, req.Credential, messages)
	if err != nil {
		return nil, fmt.Errorf("route turn: %w", err)
	}

	tool := Detect(content)
	metrics.ToolDispatches.WithLabelValues(tool.String()).Inc()
	lang := DetectLanguage(req.Utterance)

	switch tool {
	case ToolChart:
		return r.runChart(ctx, req.Profiles, lang), nil
	case ToolCompatibility:
		return r.runCompatibility(req.Profiles, lang), nil
	default:
		return &Result{Reply: content, Tool: ToolNone}, nil
	}
}

func (r *Router) runChart(ctx context.Context, profiles []mbti.Profile, lang Language) *Result {
	layout, err := chart.Build(profiles)
	if err != nil {
		var tie *chart.ToolInvocationError
		if errors.As(err, &tie) {
			r.logger.Warn("chart not built", "reason", tie.Reason)
		}
		return &Result{Reply: chartFailedMessage(lang), Tool: ToolChart}
	}

	res := &Result{Reply: chartMessage(lang, len(layout.Traces)), Tool: ToolChart, Chart: layout}
	if r.renderer != nil {
		fig, err := r.renderer.Render(ctx, layout)
		if err != nil {
			r.logger.Warn("chart render failed", "error", err)
		} else {
			res.Figure = fig
		}
	}
	return res
}

func (r *Router) runCompatibility(profiles []mbti.Profile, lang Language) *Result {
	if len(profiles) != 2 {
		return &Result{Reply: compatibilityDeclinedMessage(lang, len(profiles)), Tool: ToolCompatibility}
	}
	score := mbti.Compatibility(profiles[0].Scores, profiles[1].Scores)
	return &Result{
		Reply: compatibilityMessage(lang, profiles[0].Name, profiles[1].Name, score),
		Tool:  ToolCompatibility,
		Score: &score,
	}
}
