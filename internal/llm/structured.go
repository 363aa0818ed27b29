package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONArray decodes a JSON array from raw model output. Markdown
// fences, leading prose and // or /* */ comments are tolerated. The first
// JSON structure must be the array itself: an object reply, even one that
// holds an array, is ErrInvalidOutput.
func ExtractJSONArray[T any](raw string) ([]T, error) {
	body := strings.TrimSpace(fencedBody(raw))
	start := strings.IndexAny(body, "[{")
	if start < 0 || body[start] == '{' {
		return nil, fmt.Errorf("%w: response is not a JSON array", ErrInvalidOutput)
	}
	block, ok := balancedArray(body[start:])
	if !ok {
		return nil, fmt.Errorf("%w: no JSON array in response", ErrInvalidOutput)
	}
	var out []T
	if err := json.Unmarshal([]byte(block), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return out, nil
}

// fencedBody returns the inside of the first ``` fence, dropping its
// language tag, or s when there is no fence.
func fencedBody(s string) string {
	start := strings.Index(s, "```")
	if start < 0 {
		return s
	}
	body := s[start+3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	}
	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return body
}

// balancedArray returns the [...] block s opens with, comments removed.
// Brackets, quotes and slashes inside string literals are literal.
func balancedArray(s string) (string, bool) {
	var b strings.Builder
	depth := 0
	inString, escaped := false, false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				for i+1 < len(s) && s[i+1] != '\n' {
					i++
				}
				continue
			case '*':
				end := strings.Index(s[i+2:], "*/")
				if end < 0 {
					return "", false
				}
				i += end + 3
				continue
			}
		}

		b.WriteByte(c)
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return b.String(), true
			}
		}
	}
	return "", false
}
