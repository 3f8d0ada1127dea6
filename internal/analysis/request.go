package analysis

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/typecast/internal/llm"
)

// TranscriptBudget caps each speaker's transcript, in characters.
const TranscriptBudget = 600

// BuildMessages composes the whole-group analysis request.
func BuildMessages(speakers []SpeakerText) []llm.Message {
	names := make([]string, len(speakers))
	var sb strings.Builder
	for i, s := range speakers {
		names[i] = s.Name
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(s.Name)
		sb.WriteString(":\n")
		sb.WriteString(truncate(s.Transcript, TranscriptBudget))
	}

	return []llm.Message{
		{Role: llm.RoleSystem, Content: fmt.Sprintf(systemPromptTemplate, strings.Join(names, ", "), replySchema)},
		{Role: llm.RoleUser, Content: sb.String()},
	}
}

// truncate keeps the first n characters of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
