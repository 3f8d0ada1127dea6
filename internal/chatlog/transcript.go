package chatlog

import (
	"encoding/json"
	"strings"
)

// Transcript maps each surviving speaker to their messages in encounter
// order. It is immutable once built.
type Transcript struct {
	speakers []string // by descending message count, ties by first appearance
	messages map[string][]string
	stats    Stats
}

// Stats summarises a parse run.
type Stats struct {
	Lines     int // non-blank lines seen
	Accepted  int // lines that landed in some speaker's bucket
	Pruned    int // speakers dropped for falling under MinMessages
	Oversized int // lines skipped for exceeding MaxLineBytes
}

// Empty reports whether no speaker met the message threshold.
func (t *Transcript) Empty() bool {
	return t == nil || len(t.speakers) == 0
}

// Speakers returns the speaker names, most active first.
func (t *Transcript) Speakers() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.speakers))
	copy(out, t.speakers)
	return out
}

// Has reports whether name is a speaker in the transcript.
func (t *Transcript) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.messages[name]
	return ok
}

// Messages returns a copy of name's messages.
func (t *Transcript) Messages(name string) []string {
	if t == nil {
		return nil
	}
	msgs := t.messages[name]
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out
}

// Count returns how many messages name sent.
func (t *Transcript) Count(name string) int {
	if t == nil {
		return 0
	}
	return len(t.messages[name])
}

// Text returns name's messages joined by newlines.
func (t *Transcript) Text(name string) string {
	if t == nil {
		return ""
	}
	return strings.Join(t.messages[name], "\n")
}

// Stats returns counters from the parse that built t.
func (t *Transcript) Stats() Stats {
	if t == nil {
		return Stats{}
	}
	return t.stats
}

type transcriptJSON struct {
	Speakers []speakerJSON `json:"speakers"`
}

type speakerJSON struct {
	Name     string   `json:"name"`
	Messages []string `json:"messages"`
}

func (t *Transcript) MarshalJSON() ([]byte, error) {
	out := transcriptJSON{Speakers: make([]speakerJSON, 0, len(t.speakers))}
	for _, name := range t.speakers {
		out.Speakers = append(out.Speakers, speakerJSON{Name: name, Messages: t.messages[name]})
	}
	return json.Marshal(out)
}

func (t *Transcript) UnmarshalJSON(data []byte) error {
	var in transcriptJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	t.speakers = make([]string, 0, len(in.Speakers))
	t.messages = make(map[string][]string, len(in.Speakers))
	for _, s := range in.Speakers {
		t.speakers = append(t.speakers, s.Name)
		t.messages[s.Name] = s.Messages
	}
	return nil
}
