package router

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/typecast/internal/mbti"
)

// dialogueBudget caps the raw log excerpt embedded in the routing prompt.
const dialogueBudget = 1000

const routingPromptTemplate = `You are a professional relationship consultant.
Case: %s
Context: %s

[Tool Selection Logic]
You must decide which tool to use based on user input. When a tool applies, output ONLY the tool call.

1. If the user asks for a "chart", "graph" or "visualize":
   TOOL_CALL: { "name": "%s" }

2. If the user asks for a "compatibility score", "match rate" or "how compatible are we":
   TOOL_CALL: { "name": "%s" }

3. Otherwise (advice, analysis): reply directly, in the same language the user writes in.`

func routingPrompt(profiles []mbti.Profile, dialogue string) string {
	labels := make([]string, len(profiles))
	for i, p := range profiles {
		labels[i] = p.Label()
	}
	return fmt.Sprintf(routingPromptTemplate,
		strings.Join(labels, " vs "),
		truncate(dialogue, dialogueBudget),
		ChartToolID,
		CompatibilityToolID,
	)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
