package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONArray decodes the first JSON array in raw model output into []T.
// Markdown fences, surrounding prose, comments and numbers written as ".5"
// are tolerated. Element validation is left to the caller so that one bad
// entry need not discard the rest.
func ExtractJSONArray[T any](raw string) ([]T, error) {
	body := firstArray(unfence(raw))
	if body == "" {
		return nil, fmt.Errorf("%w: no JSON array found in response", ErrInvalidOutput)
	}

	var out []T
	if err := json.Unmarshal([]byte(repairJSON(body)), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return out, nil
}

// unfence drops markdown fence lines (``` or ```json) and keeps everything else.
func unfence(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// firstArray returns the first balanced [...] block, ignoring brackets inside
// string literals, or "" when the array never closes.
func firstArray(s string) string {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return ""
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
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
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// repairJSON strips // and /* */ comments and rewrites ".5" as "0.5" outside
// string literals.
func repairJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var last byte
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			last = c
			continue
		}

		switch {
		case c == '"':
			inString = true
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				i = len(s)
			} else {
				i += end + 3
			}
			continue
		case c == '.' && i+1 < len(s) && isDigit(s[i+1]) && opensNumber(last):
			b.WriteByte('0')
		}

		b.WriteByte(c)
		if !isSpace(c) {
			last = c
		}
	}
	return b.String()
}

// opensNumber reports whether a number may start right after c.
func opensNumber(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
