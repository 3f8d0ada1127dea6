package mbti

const (
	// FallbackCompatibility is reported for malformed score vectors.
	FallbackCompatibility = 50
	minCompatibility      = 10
	maxCompatibility      = 99
	pointsPerDiff         = 0.25
)

// Compatibility scores two raw score vectors.
//
// Formula: 100 - 0.25 x sum(|a_i - b_i|), truncated, clamped to [10,99].
// Identical vectors therefore score 99 and fully opposed vectors score 10.
func Compatibility(a, b []int) int {
	if len(a) != len(Dimensions) || len(b) != len(Dimensions) {
		return FallbackCompatibility
	}

	diff := 0
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		diff += d
	}

	score := int(100 - float64(diff)*pointsPerDiff)
	return clampInt(score, minCompatibility, maxCompatibility)
}
