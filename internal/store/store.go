// Package store persists named filter definitions. Backends share the
// same narrow contract: put, get and list keyed by filter name, with
// last-write-wins on name collision.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jacoelho/jf/internal/filter"
)

var (
	// ErrNotFound indicates no filter with the requested name exists.
	ErrNotFound = errors.New("store: filter not found")

	// ErrInvalidName indicates a filter name a backend cannot use as a key.
	ErrInvalidName = errors.New("store: invalid filter name")
)

// Record is the persisted shape of a filter definition. Paths are
// always stored in canonical bracket form, whatever notation they were
// created with.
type Record struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Mode        string    `json:"mode" yaml:"mode"`
	Paths       []string  `json:"paths" yaml:"paths"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Store is the capability filter consumers need from persistence.
type Store interface {
	// Put stores a record under its name, overwriting any previous
	// record with the same name.
	Put(ctx context.Context, rec Record) error

	// Get loads the record stored under name, or ErrNotFound.
	Get(ctx context.Context, name string) (Record, error)

	// List enumerates stored filter names in insertion order.
	List(ctx context.Context) ([]string, error)
}

// NewRecord snapshots a definition into its persisted shape, assigning
// a fresh ID and creation timestamp.
func NewRecord(def *filter.Definition, description string) Record {
	return Record{
		ID:          uuid.NewString(),
		Name:        def.Name(),
		Mode:        string(def.Mode()),
		Paths:       def.Patterns(),
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// Definition reparses the stored canonical paths back into a filter
// definition.
func (r Record) Definition() (*filter.Definition, error) {
	def, err := filter.New(r.Name, filter.Mode(r.Mode), r.Paths)
	if err != nil {
		return nil, fmt.Errorf("stored filter %q: %w", r.Name, err)
	}
	return def, nil
}
