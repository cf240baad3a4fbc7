// Package normalize turns free-form language-model output into schema-shaped
// values. Models are told to answer with a bare JSON object but routinely wrap
// it in reasoning blocks, markdown fences or prose, so extraction is lenient:
// it cleans the text, takes the span from the first '{' to the last '}' and
// fills any missing or malformed field with a default. Callers always get a
// usable value; a Fallback flag reports that nothing could be recovered.
//
// The brace scan is a heuristic. Prose containing unrelated braces before or
// after the object yields a span that does not parse, which is reported as a
// fallback rather than repaired.
package normalize

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	thinkBlock = regexp.MustCompile(`(?is)<think>.*?</think>`)
	fenceOpen  = regexp.MustCompile("(?i)```json\\s*")
	fenceAny   = regexp.MustCompile("```\\s*")
)

// ErrNoObject is returned by Extract when the text holds no {...} span.
var ErrNoObject = errors.New("no JSON object in model output")

// Clean strips reasoning blocks and code fences and trims the result.
func Clean(raw string) string {
	s := thinkBlock.ReplaceAllString(raw, "")
	s = fenceOpen.ReplaceAllString(s, "")
	s = fenceAny.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Extract returns the greedy {...} span of the cleaned text.
func Extract(raw string) (string, error) {
	s := Clean(raw)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || start > end {
		return "", ErrNoObject
	}
	return s[start : end+1], nil
}

// Object extracts the JSON object from raw and decodes it into a generic map.
func Object(raw string) (map[string]json.RawMessage, error) {
	span, err := Extract(raw)
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return nil, errors.Wrap(err, "decode model JSON")
	}
	return obj, nil
}

// stringField decodes a JSON string, returning "" for anything else.
func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// intField accepts a JSON number or a string whose leading digits form a
// number ("15", "15분", " 7 "). ok is false when no number can be read.
// maxInt bounds numbers read from model output.
const maxInt = 1_000_000_000

func intField(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(min(max(f, -maxInt), maxInt)), true
	}
	s := stringField(raw)
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = min(n*10+int(r-'0'), maxInt)
		digits++
	}
	return n, digits > 0
}

// stringList decodes a JSON array keeping only non-empty string members.
func stringList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := stringField(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
