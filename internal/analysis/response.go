package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/typecast/internal/mbti"
)

const resultsKey = "results"

// ExtractProfiles pulls the results list out of a free-text model reply.
// It reports ok=false on any failure and never returns a partial list.
func ExtractProfiles(text string) ([]mbti.Profile, bool) {
	profiles, err := extract(text)
	if err != nil {
		return nil, false
	}
	return profiles, true
}

// extract takes everything from the first '{' to the last '}' as the JSON
// object. Braces in the surrounding prose can widen that span past the
// real object, in which case decoding fails and the reply is rejected.
func extract(text string) ([]mbti.Profile, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, errors.New("no JSON object in reply")
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("parse reply: %w", err)
	}
	raw, ok := obj[resultsKey]
	if !ok {
		return nil, fmt.Errorf("reply has no %q key", resultsKey)
	}

	var profiles []mbti.Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("parse %s: %w", resultsKey, err)
	}
	// null decodes into a nil slice without error
	if profiles == nil {
		return nil, fmt.Errorf("%s is not a list", resultsKey)
	}
	for i := range profiles {
		profiles[i].Name = strings.TrimSpace(profiles[i].Name)
		profiles[i].Type = strings.ToUpper(strings.TrimSpace(profiles[i].Type))
		if !mbti.ValidCode(profiles[i].Type) {
			return nil, fmt.Errorf("%s[%d]: invalid mbti code %q", resultsKey, i, profiles[i].Type)
		}
	}
	return profiles, nil
}
