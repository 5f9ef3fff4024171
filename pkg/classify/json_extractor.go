package classify

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when no balanced JSON object can be found.
var ErrNoJSON = errors.New("no JSON object found in text")

// ExtractJSON returns the first balanced {...} substring of text, tolerating
// surrounding prose and markdown code fences. Brace counting is string- and
// escape-aware, so braces inside string values do not confuse it. The
// extracted candidate must also be valid JSON.
func ExtractJSON(text string) ([]byte, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := []byte(text[start : i+1])
				if !json.Valid(candidate) {
					return nil, ErrNoJSON
				}
				return candidate, nil
			}
		}
	}
	return nil, ErrNoJSON
}
