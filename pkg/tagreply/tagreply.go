// Package tagreply turns a vision model's free-form reply into a normalized
// tag result. Model replies are not guaranteed to be clean JSON, so parsing
// is tolerant: strict parse first, widest brace span second, and every field
// is shape-checked at runtime before it is used.
package tagreply

import (
	"encoding/json"
	"strconv"
	"strings"

	"taggen/internal/models"
)

// Truncation bounds for the suggested rename and reason. These are the single
// authoritative pair, enforced here and declared identically in the prompt.
const (
	MaxRenameLen = 80
	MaxReasonLen = 140
)

// ExtractObject parses reply as a JSON object. When strict parsing fails it
// retries on the span from the first '{' to the last '}' — the widest span,
// since models often wrap the JSON in explanatory prose on both sides.
func ExtractObject(reply string) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(reply), &obj); err == nil {
		return obj, nil
	}

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || start >= end {
		return nil, &models.MalformedReplyError{Reply: reply}
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &obj); err != nil {
		return nil, &models.MalformedReplyError{Reply: reply}
	}
	return obj, nil
}

// NormalizeList coerces a decoded JSON value into a clean string list. Non-list
// values yield an empty list; non-string elements are dropped; survivors are
// trimmed, lowercased, stripped of empties and deduplicated in
// first-occurrence order.
func NormalizeList(v interface{}) []string {
	xs, ok := v.([]interface{})
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(xs))
	seen := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		s, ok := x.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// BuildResult assembles a TagResult from the parsed reply object. It never
// fails: malformed or missing fields degrade to empty or default values so a
// partially sensible reply still yields a usable result.
func BuildResult(obj map[string]interface{}) *models.TagResult {
	result := &models.TagResult{
		Tags:        NormalizeList(obj["tags"]),
		Topics:      NormalizeList(obj["topics"]),
		RawKeywords: NormalizeList(obj["raw_keywords"]),
	}

	if s, ok := obj["suggested"].(map[string]interface{}); ok {
		result.Suggested = &models.Suggested{
			Rename:     truncate(asString(s["rename"]), MaxRenameLen),
			Reason:     truncate(asString(s["reason"]), MaxReasonLen),
			Confidence: asFloat(s["confidence"]),
		}
	}
	return result
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asFloat coerces JSON numbers and numeric strings, defaulting to 0 on any
// failure.
func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// truncate caps s at max runes, not bytes, so multi-byte text is never split.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
