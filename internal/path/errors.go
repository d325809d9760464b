package path

import (
	"errors"
	"fmt"
)

// ErrSyntax is the sentinel error for malformed path patterns.
// It allows consistent error checks using errors.Is().
var ErrSyntax = errors.New("path: syntax error")

// SyntaxError describes a malformed pattern, carrying the offending
// substring and its byte offset within the pattern.
type SyntaxError struct {
	Pattern string // full pattern text as given
	Token   string // offending substring
	Offset  int    // byte offset of Token within Pattern
	Reason  string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v: %s at offset %d in %q", ErrSyntax, e.Reason, e.Offset, e.Pattern)
	}
	return fmt.Sprintf("%v: %s at offset %d: %q", ErrSyntax, e.Reason, e.Offset, e.Token)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxError(pattern, token string, offset int, reason string) error {
	return &SyntaxError{
		Pattern: pattern,
		Token:   token,
		Offset:  offset,
		Reason:  reason,
	}
}
