package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// Dir stores one YAML file per filter under a directory, named
// <filter-name>.yaml. The directory is created on first write.
type Dir struct {
	dir string
}

// NewDir returns a directory-backed store rooted at dir.
func NewDir(dir string) *Dir {
	return &Dir{dir: dir}
}

func (d *Dir) Put(_ context.Context, rec Record) error {
	if err := validateFileName(rec.Name); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create filter directory %s: %w", d.dir, err)
	}

	payload, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode filter %q: %w", rec.Name, err)
	}

	target := d.fileFor(rec.Name)
	if err := os.WriteFile(target, payload, 0o644); err != nil {
		return fmt.Errorf("write filter %q: %w", rec.Name, err)
	}
	return nil
}

func (d *Dir) Get(_ context.Context, name string) (Record, error) {
	if err := validateFileName(name); err != nil {
		return Record{}, err
	}

	payload, err := os.ReadFile(d.fileFor(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return Record{}, fmt.Errorf("read filter %q: %w", name, err)
	}

	var rec Record
	if err := yaml.Unmarshal(payload, &rec); err != nil {
		return Record{}, fmt.Errorf("decode filter %q: %w", name, err)
	}
	return rec, nil
}

func (d *Dir) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read filter directory %s: %w", d.dir, err)
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		rec, err := d.Get(context.Background(), name)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	// Directory listings are lexicographic; creation time restores
	// insertion order.
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].Name < records[j].Name
	})

	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Name
	}
	return names, nil
}

func (d *Dir) fileFor(name string) string {
	return filepath.Join(d.dir, name+".yaml")
}

// validateFileName rejects names that would escape the store directory
// or collide with path syntax.
func validateFileName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
