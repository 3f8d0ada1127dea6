package chatlog

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// MinMessages is the number of accepted lines a speaker needs to survive.
const MinMessages = 3

var (
	timestampRe  = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
	whitespaceRe = regexp.MustCompile(`^(\S+)\s+(\S+)\s+(.+)$`)
)

// MaxLineBytes is the longest line considered. Longer lines are skipped
// like any other malformed line.
const MaxLineBytes = 1 << 20

// Parse builds a Transcript from the full text of a chat export.
// Malformed lines are skipped; an empty Transcript means no speaker
// reached MinMessages.
func Parse(text string) (*Transcript, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader is Parse over a stream. The only error it returns comes from
// reading r; whatever was read before the failure is discarded.
func ParseReader(r io.Reader) (*Transcript, error) {
	messages := make(map[string][]string)
	var order []string // first appearance
	var stats Stats

	split := &lineSplitter{max: MaxLineBytes}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*MaxLineBytes)
	scanner.Split(split.scan)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Lines++

		name, msg, ok := parseLine(line)
		if !ok {
			continue
		}
		if _, seen := messages[name]; !seen {
			order = append(order, name)
		}
		messages[name] = append(messages[name], msg)
		stats.Accepted++
	}
	if err := scanner.Err(); err != nil {
		return &Transcript{messages: map[string][]string{}}, fmt.Errorf("scan: %w", err)
	}

	var speakers []string
	for _, name := range order {
		if len(messages[name]) < MinMessages {
			stats.Accepted -= len(messages[name])
			delete(messages, name)
			stats.Pruned++
			continue
		}
		speakers = append(speakers, name)
	}
	stats.Oversized = split.skipped
	sort.SliceStable(speakers, func(i, j int) bool {
		return len(messages[speakers[i]]) > len(messages[speakers[j]])
	})

	return &Transcript{speakers: speakers, messages: messages, stats: stats}, nil
}

// parseLine extracts (speaker, message) from one trimmed, non-blank line.
func parseLine(line string) (string, string, bool) {
	ts, name, msg, ok := splitFields(line)
	if !ok || !timestampRe.MatchString(ts) {
		return "", "", false
	}

	name = stripNameSuffixes(strings.TrimSpace(name))
	msg = strings.TrimSpace(msg)
	if name == "" || msg == "" {
		return "", "", false
	}
	if isReservedSpeaker(name) || isNoise(msg) {
		return "", "", false
	}
	return name, msg, true
}

// splitFields tries the tab-separated layout first and falls back to
// splitting on the first two whitespace runs.
func splitFields(line string) (ts, name, msg string, ok bool) {
	if fields := strings.SplitN(line, "\t", 3); len(fields) == 3 {
		return strings.TrimSpace(fields[0]), fields[1], fields[2], true
	}
	m := whitespaceRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}

// lineSplitter is bufio.ScanLines that also treats a lone '\r' as a line
// break and drops any line longer than max instead of failing the scan.
type lineSplitter struct {
	max      int
	skipping bool // inside an over-long line, discarding up to its break
	skipped  int
}

func (s *lineSplitter) scan(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	i := bytes.IndexAny(data, "\r\n")

	if s.skipping {
		if i < 0 {
			return len(data), nil, nil
		}
		s.skipping = false
		return i + 1, nil, nil
	}

	if i >= 0 && i <= s.max {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			// need the next byte to tell "\r" from "\r\n"
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}

	if i > s.max || len(data) > s.max {
		s.skipped++
		if i >= 0 {
			return i + 1, nil, nil
		}
		if !atEOF {
			s.skipping = true
		}
		return len(data), nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
