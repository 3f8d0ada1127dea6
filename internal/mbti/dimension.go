package mbti

import "strings"

// Dimension is one bipolar axis of the type code.
type Dimension struct {
	Name      string
	Low       byte // letter that pulls the score under the midpoint
	High      byte
	LowLabel  string
	HighLabel string
}

// Dimensions is the fixed axis table, in score order.
var Dimensions = [4]Dimension{
	{Name: "Energy", Low: 'I', High: 'E', LowLabel: "I (Introversion)", HighLabel: "E (Extraversion)"},
	{Name: "Information", Low: 'S', High: 'N', LowLabel: "S (Sensing)", HighLabel: "N (Intuition)"},
	{Name: "Decisions", Low: 'T', High: 'F', LowLabel: "T (Thinking)", HighLabel: "F (Feeling)"},
	{Name: "Lifestyle", Low: 'J', High: 'P', LowLabel: "J (Judging)", HighLabel: "P (Perceiving)"},
}

const (
	lowCeiling = 45
	highFloor  = 55
	neutral    = 50
)

// NeutralScores is returned whenever alignment input is malformed.
func NeutralScores() []int {
	return []int{neutral, neutral, neutral, neutral}
}

// Align forces each score into the half of its range that matches the
// letter the type code carries for that dimension. Malformed input yields
// NeutralScores. The input slice is not modified.
func Align(code string, scores []int) []int {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != len(Dimensions) || len(scores) != len(Dimensions) {
		return NeutralScores()
	}

	out := make([]int, len(scores))
	copy(out, scores)
	for i, dim := range Dimensions {
		switch code[i] {
		case dim.Low:
			out[i] = min(out[i], lowCeiling)
		case dim.High:
			out[i] = max(out[i], highFloor)
		}
	}
	return out
}

// ValidCode reports whether code is a well-formed four-letter type.
func ValidCode(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != len(Dimensions) {
		return false
	}
	for i, dim := range Dimensions {
		if code[i] != dim.Low && code[i] != dim.High {
			return false
		}
	}
	return true
}
