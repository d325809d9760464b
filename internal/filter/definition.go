// Package filter compiles path patterns into immutable filter
// definitions and applies them to JSON documents.
package filter

import (
	"errors"
	"fmt"

	"github.com/jacoelho/jf/internal/path"
)

var (
	// ErrInvalidMode indicates a mode string other than keep or exclude.
	ErrInvalidMode = errors.New("filter: invalid mode")

	// ErrEmptyName indicates a definition without a name.
	ErrEmptyName = errors.New("filter: name cannot be empty")

	// ErrNoPaths indicates a definition without any paths.
	ErrNoPaths = errors.New("filter: at least one path is required")
)

// Mode selects whether matched paths are retained or removed.
// A definition holds exactly one mode for its whole lifetime.
type Mode string

const (
	// ModeKeep retains only the nodes matched by the filter's paths.
	ModeKeep Mode = "keep"

	// ModeExclude removes exactly the nodes matched by the filter's
	// paths and retains everything else.
	ModeExclude Mode = "exclude"
)

// ParseMode validates a textual mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeKeep, ModeExclude:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidMode, s, ModeKeep, ModeExclude)
	}
}

// Definition is an immutable named filter: a mode plus a non-empty set
// of parsed paths. Definitions are safe for concurrent use.
type Definition struct {
	name  string
	mode  Mode
	paths []path.Path
	trie  *node
}

// New parses every raw pattern and builds a definition. Creation is
// atomic: the first malformed pattern fails the whole call. Duplicate
// patterns collapse silently, keeping first-seen order.
func New(name string, mode Mode, patterns []string) (*Definition, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	var (
		paths []path.Path
		seen  = make(map[string]struct{})
	)
	for _, pattern := range patterns {
		p, err := path.Parse(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}

		canonical := p.String()
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		paths = append(paths, p)
	}

	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	return &Definition{
		name:  name,
		mode:  mode,
		paths: paths,
		trie:  compile(paths),
	}, nil
}

// Name returns the definition's store key.
func (d *Definition) Name() string {
	return d.name
}

// Mode returns the definition's filtering mode.
func (d *Definition) Mode() Mode {
	return d.mode
}

// Paths returns the parsed paths in first-seen order.
func (d *Definition) Paths() []path.Path {
	out := make([]path.Path, len(d.paths))
	copy(out, d.paths)
	return out
}

// Patterns returns the canonical bracket form of every path, the shape
// persisted by filter stores.
func (d *Definition) Patterns() []string {
	out := make([]string, len(d.paths))
	for i, p := range d.paths {
		out[i] = p.String()
	}
	return out
}
