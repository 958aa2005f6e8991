package score

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var jsonFenceRe = regexp.MustCompile("(?is)```(?:json)?\\s*([\\s\\S]*?)```")

// extractJSON pulls a JSON document out of an LLM reply, tolerating code
// fences and surrounding prose. Tries, in order: the raw text, the first
// fenced block, and the outermost {...} span.
func extractJSON(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start >= 0 && end > start {
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, fmt.Errorf("model did not return valid JSON")
}

var integerRe = regexp.MustCompile(`-?\d+`)

// parseCriticReply extracts the integer score and optional rationale from
// a critic reply. Accepts {"score": n, "rationale": "..."} in any of the
// shapes extractJSON handles, or a bare integer anywhere in the text.
func parseCriticReply(text string) (int, string, error) {
	if raw, err := extractJSON(text); err == nil {
		var parsed struct {
			Score     *int   `json:"score"`
			Rationale string `json:"rationale"`
		}
		if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Score != nil {
			return clampScore(*parsed.Score), parsed.Rationale, nil
		}
	}

	if m := integerRe.FindString(text); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil {
			return clampScore(n), "", nil
		}
	}

	return 0, "", fmt.Errorf("no score found in critic reply %q", truncate(text, 120))
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
