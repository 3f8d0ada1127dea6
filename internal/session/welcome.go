package session

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/typecast/internal/hermes"
	"github.com/MikeSquared-Agency/typecast/internal/mbti"
)

func welcomeMessage(profiles []mbti.Profile) string {
	labels := make([]string, len(profiles))
	for i, p := range profiles {
		typ := p.Type
		if typ == "" {
			typ = "N/A"
		}
		labels[i] = fmt.Sprintf("**%s** (%s)", p.Name, typ)
	}

	var b strings.Builder
	b.WriteString("Analysis Complete.\n")
	b.WriteString(strings.Join(labels, " vs "))
	b.WriteString(".\n\nYou can ask me / 您可以問我：\n")
	b.WriteString("1. **\"Draw a chart\"** 「幫我畫圖」 (spectrum)\n")
	b.WriteString("2. **\"What's our compatibility score?\"** 「我們契合度幾分？」 (score)\n")
	b.WriteString("3. **\"How do we stop arguing?\"** 「怎麼解決爭吵？」 (advice)")
	return b.String()
}

func profileEvents(profiles []mbti.Profile) []hermes.ProfileSummary {
	out := make([]hermes.ProfileSummary, len(profiles))
	for i, p := range profiles {
		out[i] = hermes.ProfileSummary{Name: p.Name, Type: p.Type, Scores: []int(p.Scores)}
	}
	return out
}
