// Package articulation handles LLM output -> structured data extraction.
// Generative output is adversarial-by-construction: it arrives malformed,
// fence-wrapped, truncated, or padded with commentary, and this layer turns
// it into typed values without ever panicking on the expected failure modes.
package articulation

import (
	"encoding/json"
	"sort"
	"strings"
)

// Status classifies the outcome of one extraction attempt.
type Status int

const (
	// StatusFound means a value was extracted successfully.
	StatusFound Status = iota
	// StatusNotFound means the text carries no candidate structure at all.
	StatusNotFound
	// StatusMalformed means candidate structure was present but every
	// parse tier failed on it.
	StatusMalformed
)

// String returns the status name for logs and error messages.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ExtractJSONObject pulls a single JSON object out of collaborator text.
//
// Tiers, in order:
//  1. strip any markdown code fence and parse the trimmed text directly
//  2. parse the substring from the first '{' to the last '}'
//  3. scan for balanced top-level objects (string-aware) and parse each
//     candidate, largest first
//
// The tiered fallback exists because collaborators prepend and append
// commentary despite explicit "JSON only" instructions. A nil map is
// returned for any status other than StatusFound.
func ExtractJSONObject(text string) (map[string]any, Status) {
	cleaned := strings.TrimSpace(StripCodeFence(text))
	if cleaned == "" {
		return nil, StatusNotFound
	}

	if obj, ok := parseObject(cleaned); ok {
		return obj, StatusFound
	}

	start := strings.IndexByte(cleaned, '{')
	if start == -1 {
		return nil, StatusNotFound
	}
	if end := strings.LastIndexByte(cleaned, '}'); end > start {
		if obj, ok := parseObject(cleaned[start : end+1]); ok {
			return obj, StatusFound
		}
	}

	// The naive first-to-last slice fails when prose contains stray
	// braces; the balanced scanner handles that case. Largest candidate
	// first.
	candidates := findJSONObjects(cleaned)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})
	for _, c := range candidates {
		if obj, ok := parseObject(c); ok {
			return obj, StatusFound
		}
	}

	return nil, StatusMalformed
}

// parseObject attempts a strict JSON object parse.
func parseObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	if obj == nil {
		return nil, false
	}
	return obj, true
}

// StripCodeFence removes a surrounding markdown code fence, if present.
// Handles ```json, ```JSON, and bare ``` markers; text without a fence is
// returned unchanged.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return text
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// StringFields flattens a parsed JSON object into a string map, stringifying
// non-string scalar values. Nested objects and arrays are re-serialized so a
// slightly over-structured collaborator response still yields usable section
// text.
func StringFields(obj map[string]any) map[string]string {
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			out[k] = val
		case nil:
			out[k] = ""
		default:
			raw, err := json.Marshal(val)
			if err != nil {
				continue
			}
			out[k] = string(raw)
		}
	}
	return out
}
