// Package execute dispatches parsed jf commands against a filter store
// and the projection engine.
package execute

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/jf/internal/config"
	"github.com/jacoelho/jf/internal/exit"
	"github.com/jacoelho/jf/internal/filter"
	"github.com/jacoelho/jf/internal/jsondoc"
	"github.com/jacoelho/jf/internal/query"
	"github.com/jacoelho/jf/internal/store"
)

// Runner executes a single jf command.
type Runner struct {
	cfg       *config.Config
	store     store.Store
	input     io.Reader
	output    io.Writer
	errOutput io.Writer
}

// New builds a runner wired to the process streams. The store backend
// is opened lazily in Run, since opening may need the run context.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	if cfg == nil {
		return nil, exit.Error("Error: missing configuration\n")
	}

	return &Runner{
		cfg:       cfg,
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
	}, nil
}

// Run executes the configured command and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	result := r.run(ctx)
	if result.ExitCode == 0 {
		result.Output = r.output
	} else {
		result.Output = r.errOutput
	}
	result.Print()
	return result.ExitCode
}

func (r *Runner) run(ctx context.Context) *exit.Result {
	switch r.cfg.Command {
	case config.CommandCreate:
		return r.create(ctx)
	case config.CommandApply:
		return r.apply(ctx)
	case config.CommandList:
		return r.list(ctx)
	case config.CommandQuery:
		return r.query()
	case config.CommandFmt:
		return r.format()
	default:
		return exit.Errorf("Error: unknown command %q\n", r.cfg.Command)
	}
}

// openStore resolves the configured backend. Tests inject r.store
// directly and skip this.
func (r *Runner) openStore(ctx context.Context) (store.Store, func(), error) {
	if r.store != nil {
		return r.store, func() {}, nil
	}

	if r.cfg.DSN != "" {
		pg, err := store.OpenPostgres(ctx, r.cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return pg, func() { pg.Close() }, nil
	}

	return store.NewDir(r.cfg.FilterDir), func() {}, nil
}

func (r *Runner) create(ctx context.Context) *exit.Result {
	def, err := filter.New(r.cfg.Name, r.cfg.Mode(), r.cfg.Patterns())
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	st, closeStore, err := r.openStore(ctx)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}
	defer closeStore()

	rec := store.NewRecord(def, r.cfg.Description)
	if err := st.Put(ctx, rec); err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	fmt.Fprintf(r.output, "stored filter %q (mode %s)\n", rec.Name, rec.Mode)
	for _, pattern := range rec.Paths {
		fmt.Fprintf(r.output, "  %s\n", pattern)
	}
	return exit.Success("")
}

func (r *Runner) apply(ctx context.Context) *exit.Result {
	st, closeStore, err := r.openStore(ctx)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}
	defer closeStore()

	rec, err := st.Get(ctx, r.cfg.Name)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	def, err := rec.Definition()
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	doc, err := r.readDocument()
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	return r.writeDocument(filter.Apply(doc, def))
}

func (r *Runner) list(ctx context.Context) *exit.Result {
	st, closeStore, err := r.openStore(ctx)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}
	defer closeStore()

	names, err := st.List(ctx)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	if len(names) == 0 {
		fmt.Fprintln(r.output, "no filters stored")
		return exit.Success("")
	}

	for _, name := range names {
		fmt.Fprintln(r.output, name)
	}
	return exit.Success("")
}

func (r *Runner) query() *exit.Result {
	doc, err := r.readDocument()
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	results, err := query.Select(doc, r.cfg.Expr)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	for _, result := range results {
		line, err := json.Marshal(result)
		if err != nil {
			return exit.Errorf("Error: %v\n", err)
		}
		fmt.Fprintf(r.output, "%s\n", line)
	}
	return exit.Success("")
}

func (r *Runner) format() *exit.Result {
	doc, err := r.readDocument()
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}
	return r.writeDocument(doc)
}

func (r *Runner) readDocument() (any, error) {
	in := r.input
	if r.cfg.Input != "" {
		f, err := os.Open(r.cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		return jsondoc.Decode(f)
	}
	return jsondoc.Decode(in)
}

func (r *Runner) writeDocument(doc any) *exit.Result {
	out := r.output
	if r.cfg.Output != "" {
		f, err := os.Create(r.cfg.Output)
		if err != nil {
			return exit.Errorf("Error: create output: %v\n", err)
		}
		defer f.Close()
		out = f
	}

	var err error
	if r.cfg.Compact {
		err = jsondoc.Encode(out, doc)
	} else {
		err = jsondoc.EncodeIndent(out, doc)
	}
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}
	return exit.Success("")
}
