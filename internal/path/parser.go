package path

import (
	"strconv"
	"strings"
)

// Parse converts a textual pattern into a Path. Both the canonical
// bracket form and the dot-notation sugar are accepted and may be mixed
// in one pattern. Parsing is total: a valid pattern yields exactly one
// Path, a malformed pattern yields a SyntaxError and no partial Path.
func Parse(pattern string) (Path, error) {
	if pattern == "" {
		return nil, syntaxError(pattern, "", 0, "empty pattern")
	}

	var (
		segs         Path
		i            int
		afterIdent   bool // previous segment came from a bare identifier
		afterBracket bool // previous character was ']'
	)

	for i < len(pattern) {
		switch c := pattern[i]; c {
		case '[':
			end := strings.IndexByte(pattern[i+1:], ']')
			if end == -1 {
				return nil, syntaxError(pattern, pattern[i:], i, "unmatched '['")
			}

			body := pattern[i+1 : i+1+end]
			if body == "" {
				// Bare '[]' is wildcard sugar, valid only directly
				// after an identifier (authors[] style).
				if !afterIdent {
					return nil, syntaxError(pattern, "[]", i, "empty segment body")
				}
				segs = append(segs, Wildcard{})
			} else {
				seg, err := classify(pattern, body, i+1)
				if err != nil {
					return nil, err
				}
				segs = append(segs, seg)
			}

			i += end + 2
			afterIdent = false
			afterBracket = true

		case '.':
			if len(segs) == 0 {
				return nil, syntaxError(pattern, ".", i, "pattern cannot start with '.'")
			}
			i++
			if i == len(pattern) {
				return nil, syntaxError(pattern, ".", i-1, "pattern cannot end with '.'")
			}
			if pattern[i] == '.' {
				return nil, syntaxError(pattern, "..", i-1, "empty segment between dots")
			}
			afterIdent = false
			afterBracket = false

		case ']':
			return nil, syntaxError(pattern, "]", i, "unexpected ']'")

		default:
			if afterBracket {
				return nil, syntaxError(pattern, string(c), i, "expected '.' or '[' after ']'")
			}

			start := i
			for i < len(pattern) && pattern[i] != '.' && pattern[i] != '[' && pattern[i] != ']' {
				i++
			}

			seg, err := classify(pattern, pattern[start:i], start)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
			afterIdent = true
		}
	}

	return segs, nil
}

// classify maps a segment body to its Segment variant: ':' is a
// wildcard, a base-10 literal is an index, anything else is a key.
func classify(pattern, body string, offset int) (Segment, error) {
	if body == ":" {
		return Wildcard{}, nil
	}

	if isDigits(body) {
		n, err := strconv.Atoi(body)
		if err != nil {
			return nil, syntaxError(pattern, body, offset, "index out of range")
		}
		return Index(n), nil
	}

	if idx := strings.IndexByte(body, ':'); idx != -1 {
		return nil, syntaxError(pattern, body, offset, "':' must stand alone in a segment")
	}
	if idx := strings.IndexByte(body, '['); idx != -1 {
		return nil, syntaxError(pattern, body, offset, "unexpected '[' in segment body")
	}

	return Key(body), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
