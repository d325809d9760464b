package execute

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jacoelho/jf/internal/config"
	"github.com/jacoelho/jf/internal/store"
)

func testRunner(t *testing.T, cfg *config.Config, input string) (*Runner, *bytes.Buffer) {
	t.Helper()

	r, result := New(cfg)
	if result != nil {
		t.Fatalf("New returned result: %s", result.Message)
	}

	out := &bytes.Buffer{}
	r.store = store.NewMemory()
	r.input = strings.NewReader(input)
	r.output = out
	r.errOutput = &bytes.Buffer{}
	return r, out
}

func TestRunnerCreateThenApply(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	shared := store.NewMemory()

	create, createOut := testRunner(t, &config.Config{
		Command: config.CommandCreate,
		Name:    "short",
		Keep:    []string{"author_id", "author_name"},
	}, "")
	create.store = shared

	if result := create.run(ctx); result.ExitCode != 0 {
		t.Fatalf("create failed: %s", result.Message)
	}
	if !strings.Contains(createOut.String(), `stored filter "short" (mode keep)`) {
		t.Errorf("create output = %q", createOut.String())
	}

	apply, applyOut := testRunner(t, &config.Config{
		Command: config.CommandApply,
		Name:    "short",
		Compact: true,
	}, `{"author_id":7,"author_name":"X","abstract":"..."}`)
	apply.store = shared

	if result := apply.run(ctx); result.ExitCode != 0 {
		t.Fatalf("apply failed: %s", result.Message)
	}
	if got, want := applyOut.String(), `{"author_id":7,"author_name":"X"}`+"\n"; got != want {
		t.Errorf("apply output = %q, want %q", got, want)
	}
}

func TestRunnerApplyMissingFilter(t *testing.T) {
	t.Parallel()

	r, _ := testRunner(t, &config.Config{
		Command: config.CommandApply,
		Name:    "ghost",
	}, `{}`)

	result := r.run(context.Background())
	if result.ExitCode != 1 {
		t.Fatalf("ExitCode = %d, want 1", result.ExitCode)
	}
	if !strings.Contains(result.Message, "not found") {
		t.Errorf("message = %q, want not found", result.Message)
	}
}

func TestRunnerCreateRejectsBadPattern(t *testing.T) {
	t.Parallel()

	r, _ := testRunner(t, &config.Config{
		Command: config.CommandCreate,
		Name:    "broken",
		Keep:    []string{"[unclosed"},
	}, "")

	result := r.run(context.Background())
	if result.ExitCode != 1 {
		t.Fatalf("ExitCode = %d, want 1", result.ExitCode)
	}
	if !strings.Contains(result.Message, "syntax error") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestRunnerList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	r, out := testRunner(t, &config.Config{Command: config.CommandList}, "")

	if result := r.run(ctx); result.ExitCode != 0 {
		t.Fatalf("list failed: %s", result.Message)
	}
	if got := out.String(); got != "no filters stored\n" {
		t.Errorf("empty list output = %q", got)
	}

	out.Reset()
	create, _ := testRunner(t, &config.Config{
		Command: config.CommandCreate,
		Name:    "noise",
		Exclude: []string{"abstract"},
	}, "")
	create.store = r.store
	if result := create.run(ctx); result.ExitCode != 0 {
		t.Fatalf("create failed: %s", result.Message)
	}

	if result := r.run(ctx); result.ExitCode != 0 {
		t.Fatalf("list failed: %s", result.Message)
	}
	if got := out.String(); got != "noise\n" {
		t.Errorf("list output = %q", got)
	}
}

func TestRunnerQuery(t *testing.T) {
	t.Parallel()

	r, out := testRunner(t, &config.Config{
		Command: config.CommandQuery,
		Expr:    "$.authors[*].name",
	}, `{"authors":[{"name":"A"},{"name":"B"}]}`)

	if result := r.run(context.Background()); result.ExitCode != 0 {
		t.Fatalf("query failed: %s", result.Message)
	}
	if got, want := out.String(), "\"A\"\n\"B\"\n"; got != want {
		t.Errorf("query output = %q, want %q", got, want)
	}
}

func TestRunnerQueryNoMatch(t *testing.T) {
	t.Parallel()

	r, _ := testRunner(t, &config.Config{
		Command: config.CommandQuery,
		Expr:    "$.missing",
	}, `{"a":1}`)

	result := r.run(context.Background())
	if result.ExitCode != 1 {
		t.Fatalf("ExitCode = %d, want 1", result.ExitCode)
	}
	if !strings.Contains(result.Message, "no match") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestRunnerFmt(t *testing.T) {
	t.Parallel()

	r, out := testRunner(t, &config.Config{
		Command: config.CommandFmt,
	}, `{"z":1,"a":{"b":2}}`)

	if result := r.run(context.Background()); result.ExitCode != 0 {
		t.Fatalf("fmt failed: %s", result.Message)
	}

	want := "{\n  \"z\": 1,\n  \"a\": {\n    \"b\": 2\n  }\n}\n"
	if got := out.String(); got != want {
		t.Errorf("fmt output = %q, want %q", got, want)
	}
}

func TestRunnerFmtRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	r, _ := testRunner(t, &config.Config{Command: config.CommandFmt}, `{"a":`)

	result := r.run(context.Background())
	if result.ExitCode != 1 {
		t.Fatalf("ExitCode = %d, want 1", result.ExitCode)
	}
}
