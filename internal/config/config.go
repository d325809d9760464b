// Package config parses jf command-line arguments into a validated
// configuration.
package config

import (
	"errors"
	"flag"
	"io"
	"strings"

	"github.com/jacoelho/jf/internal/exit"
	"github.com/jacoelho/jf/internal/filter"
)

const DefaultFilterDir = "./filters"

var (
	ErrNoArguments    = errors.New("no arguments provided")
	ErrNoCommand      = errors.New("no command specified")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingName    = errors.New("filter name is required")
	ErrNoPatterns     = errors.New("no path patterns provided, use --keep or --exclude")
	ErrMixedModes     = errors.New("a filter cannot mix --keep and --exclude")
	ErrMissingExpr    = errors.New("JSONPath expression is required")
	ErrStoreConflict  = errors.New("--filter-dir and --dsn are mutually exclusive")
)

// Command is the requested jf subcommand.
type Command string

const (
	CommandCreate Command = "create"
	CommandApply  Command = "apply"
	CommandList   Command = "list"
	CommandQuery  Command = "query"
	CommandFmt    Command = "fmt"
)

// Config represents the complete configuration for one jf invocation.
type Config struct {
	Command Command

	// Store selection
	FilterDir string
	DSN       string

	// create
	Name        string
	Description string
	Keep        []string
	Exclude     []string

	// apply / query / fmt
	Input   string
	Output  string
	Compact bool

	// query
	Expr string
}

// Mode derives the filter mode from which pattern flags were given.
func (c *Config) Mode() filter.Mode {
	if len(c.Exclude) > 0 {
		return filter.ModeExclude
	}
	return filter.ModeKeep
}

// Patterns returns the raw patterns for the selected mode.
func (c *Config) Patterns() []string {
	if len(c.Exclude) > 0 {
		return c.Exclude
	}
	return c.Keep
}

// pathsFlag implements flag.Value for repeatable, comma-separated path
// pattern flags.
type pathsFlag []string

func (p *pathsFlag) String() string {
	return strings.Join(*p, ",")
}

func (p *pathsFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		*p = append(*p, part)
	}
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and an
// exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}
	if len(args) < 2 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoCommand, Usage())
	}

	switch args[1] {
	case "-h", "--help", "help":
		return nil, exit.Success(Usage())
	}

	cfg := &Config{Command: Command(args[1])}

	fs := flag.NewFlagSet(args[0]+" "+args[1], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	filterDir := fs.String("filter-dir", "", "Directory holding stored filters (default "+DefaultFilterDir+")")
	dsn := fs.String("dsn", "", "Postgres connection string for the filter store")

	var (
		keep    pathsFlag
		exclude pathsFlag
		fields  pathsFlag
	)

	switch cfg.Command {
	case CommandCreate:
		fs.StringVar(&cfg.Name, "name", "", "Name for the filter")
		fs.StringVar(&cfg.Description, "description", "", "Optional description for the filter")
		fs.Var(&keep, "keep", "Keep path pattern (repeatable or comma-separated)")
		fs.Var(&fields, "fields", "Alias for --keep")
		fs.Var(&exclude, "exclude", "Exclude path pattern (repeatable or comma-separated)")
	case CommandApply:
		fs.StringVar(&cfg.Name, "name", "", "Name of the filter to apply")
		fs.StringVar(&cfg.Input, "input", "", "Input JSON file (stdin when omitted)")
		fs.StringVar(&cfg.Output, "output", "", "Output JSON file (stdout when omitted)")
		fs.BoolVar(&cfg.Compact, "compact", false, "Emit compact JSON instead of indented")
	case CommandList:
		// store flags only
	case CommandQuery:
		fs.StringVar(&cfg.Expr, "path", "", "JSONPath expression to evaluate")
		fs.StringVar(&cfg.Input, "input", "", "Input JSON file (stdin when omitted)")
	case CommandFmt:
		fs.StringVar(&cfg.Input, "input", "", "Input JSON file (stdin when omitted)")
		fs.StringVar(&cfg.Output, "output", "", "Output JSON file (stdout when omitted)")
		fs.BoolVar(&cfg.Compact, "compact", false, "Emit compact JSON instead of indented")
	default:
		return nil, exit.Errorf("Error: %v: %q\n\n%s", ErrUnknownCommand, args[1], Usage())
	}

	if err := fs.Parse(args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	if *filterDir != "" && *dsn != "" {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrStoreConflict, Usage())
	}
	cfg.DSN = *dsn
	cfg.FilterDir = *filterDir
	if cfg.FilterDir == "" && cfg.DSN == "" {
		cfg.FilterDir = DefaultFilterDir
	}

	cfg.Keep = append([]string(nil), keep...)
	cfg.Keep = append(cfg.Keep, fields...)
	cfg.Exclude = []string(exclude)

	if err := cfg.validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Command {
	case CommandCreate:
		if c.Name == "" {
			return ErrMissingName
		}
		if len(c.Keep) > 0 && len(c.Exclude) > 0 {
			return ErrMixedModes
		}
		if len(c.Keep) == 0 && len(c.Exclude) == 0 {
			return ErrNoPatterns
		}
	case CommandApply:
		if c.Name == "" {
			return ErrMissingName
		}
	case CommandQuery:
		if c.Expr == "" {
			return ErrMissingExpr
		}
	}
	return nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jf - structural JSON filter

Usage: jf <command> [options]

Commands:
  create    Create and store a named filter
  apply     Apply a stored filter to a JSON document
  list      List stored filter names
  query     Evaluate a JSONPath expression against a JSON document
  fmt       Reformat a JSON document

Options (create):
  --name NAME             Name for the filter (required)
  --description TEXT      Optional description
  --keep PATTERN          Keep path pattern (repeatable or comma-separated)
  --fields PATTERN        Alias for --keep
  --exclude PATTERN       Exclude path pattern (repeatable or comma-separated)

Options (apply):
  --name NAME             Name of the filter to apply (required)
  --input FILE            Input JSON file (stdin when omitted)
  --output FILE           Output JSON file (stdout when omitted)
  --compact               Emit compact JSON instead of indented

Options (query):
  --path EXPR             JSONPath expression to evaluate (required)
  --input FILE            Input JSON file (stdin when omitted)

Options (fmt):
  --input FILE            Input JSON file (stdin when omitted)
  --output FILE           Output JSON file (stdout when omitted)
  --compact               Emit compact JSON instead of indented

Store selection (all commands):
  --filter-dir DIR        Directory holding stored filters (default ./filters)
  --dsn URL               Postgres connection string instead of a directory

Path patterns use bracket notation with dot sugar:
  [authors][:][name]      name of every author
  authors[].name          same path in dot notation
  abstract                top-level field

Examples:
  jf create --name short --keep author_id,author_name
  jf apply --name short --input paper.json
  cat paper.json | jf apply --name short
  jf list
  jf query --path '$.authors[*].name' --input paper.json`
}
