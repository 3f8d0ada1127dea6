package mbti

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Profile is one participant's inferred personality.
type Profile struct {
	Name   string `json:"name"`
	Type   string `json:"mbti"`
	Scores Scores `json:"scores"`
}

// Scores holds raw per-dimension intensities in dimension order.
type Scores []int

// UnmarshalJSON accepts integer or fractional numbers. Fractions are
// truncated and every value is clamped to [0,100]; anything non-numeric is
// an error.
func (s *Scores) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("scores: %w", err)
	}
	out := make(Scores, len(raw))
	for i, v := range raw {
		// clamp before converting; int(v) is undefined past the int range
		out[i] = int(math.Max(0, math.Min(100, v)))
	}
	*s = out
	return nil
}

// Label renders "Name (TYPE)" for legends and prompts.
func (p Profile) Label() string {
	code := strings.ToUpper(strings.TrimSpace(p.Type))
	if code == "" {
		code = "N/A"
	}
	return fmt.Sprintf("%s (%s)", p.Name, code)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
