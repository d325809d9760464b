// Package query evaluates RFC 9535 JSONPath expressions against
// decoded documents, so filter authors can inspect a document before
// writing keep/exclude patterns.
package query

import (
	"errors"
	"fmt"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/jf/internal/jsondoc"
)

var (
	// ErrInvalidInput indicates an unusable query argument.
	ErrInvalidInput = errors.New("query: invalid input")

	// ErrNoMatch indicates the expression selected nothing.
	ErrNoMatch = errors.New("query: no match")
)

// Select returns every value matching expr in document order.
// The document may be a jsondoc value or plain encoding/json shapes.
func Select(doc any, expr string) ([]any, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: JSONPath expression is empty", ErrInvalidInput)
	}

	p, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONPath %s: %v", ErrInvalidInput, expr, err)
	}

	results := p.Select(jsondoc.Plain(doc))
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, expr)
	}
	return results, nil
}

// First returns the first value matching expr.
func First(doc any, expr string) (any, error) {
	results, err := Select(doc, expr)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}
