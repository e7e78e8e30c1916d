// Package formatting parses the loosely structured text that flows through
// the transformation pipeline: oracle responses that should contain JSON,
// and rate strings pulled off rate confirmations.
package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrDecodeFailed is returned when content cannot be interpreted as JSON by
// any strategy.
var ErrDecodeFailed = errors.New("failed to decode response")

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// Decode interprets free-form oracle output as JSON of type T. Language
// models wrap their answers unpredictably, so three strategies are tried in
// order: the content as-is, the body of a markdown code fence, and the
// widest brace-delimited span. Returns ErrDecodeFailed when none succeed.
func Decode[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	if m := fencePattern.FindStringSubmatch(content); len(m) >= 2 {
		if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &result); err == nil {
			return result, nil
		}
	}

	if span := braceSpan(content); span != "" {
		if err := json.Unmarshal([]byte(span), &result); err == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrDecodeFailed, content)
}

// braceSpan returns the substring from the first '{' through the last '}',
// or empty when no such span exists.
func braceSpan(content string) string {
	open := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if open == -1 || end <= open {
		return ""
	}
	return content[open : end+1]
}
