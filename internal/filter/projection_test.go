package filter

import (
	"testing"

	"github.com/jacoelho/jf/internal/jsondoc"
)

func mustDecode(t *testing.T, input string) any {
	t.Helper()

	doc, err := jsondoc.Unmarshal([]byte(input))
	if err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return doc
}

func mustDefinition(t *testing.T, mode Mode, patterns ...string) *Definition {
	t.Helper()

	def, err := New("test", mode, patterns)
	if err != nil {
		t.Fatalf("failed to build definition: %v", err)
	}
	return def
}

func marshal(t *testing.T, doc any) string {
	t.Helper()

	out, err := jsondoc.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to encode result: %v", err)
	}
	return string(out)
}

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		doc      string
		mode     Mode
		patterns []string
		want     string
	}{
		{
			name:     "keep_top_level_fields",
			doc:      `{"author_id":7,"author_name":"X","abstract":"..."}`,
			mode:     ModeKeep,
			patterns: []string{"[author_id]", "[author_name]"},
			want:     `{"author_id":7,"author_name":"X"}`,
		},
		{
			name:     "exclude_top_level_field",
			doc:      `{"author_id":7,"author_name":"X","abstract":"..."}`,
			mode:     ModeExclude,
			patterns: []string{"[abstract]"},
			want:     `{"author_id":7,"author_name":"X"}`,
		},
		{
			name:     "keep_through_wildcard",
			doc:      `{"authors":[{"name":"A","id":1},{"name":"B","id":2}]}`,
			mode:     ModeKeep,
			patterns: []string{"[authors][:][name]"},
			want:     `{"authors":[{"name":"A"},{"name":"B"}]}`,
		},
		{
			name:     "exclude_index_under_wildcard",
			doc:      `{"authors":[{"pubs":["p0","p1"]},{"pubs":["p0"]}]}`,
			mode:     ModeExclude,
			patterns: []string{"[authors][:][pubs][0]"},
			want:     `{"authors":[{"pubs":["p1"]},{"pubs":[]}]}`,
		},
		{
			name:     "keep_missing_path_yields_empty_root",
			doc:      `{"author_id":7}`,
			mode:     ModeKeep,
			patterns: []string{"[missing][key]"},
			want:     `{}`,
		},
		{
			name:     "keep_missing_path_on_array_root",
			doc:      `[1,2,3]`,
			mode:     ModeKeep,
			patterns: []string{"[missing]"},
			want:     `[]`,
		},
		{
			name:     "keep_concrete_index",
			doc:      `{"authors":["A","B","C"]}`,
			mode:     ModeKeep,
			patterns: []string{"[authors][1]"},
			want:     `{"authors":["B"]}`,
		},
		{
			name:     "keep_index_out_of_range",
			doc:      `{"authors":["A","B"]}`,
			mode:     ModeKeep,
			patterns: []string{"[authors][5]"},
			want:     `{"authors":[]}`,
		},
		{
			name:     "exclude_index_out_of_range",
			doc:      `{"authors":["A","B"]}`,
			mode:     ModeExclude,
			patterns: []string{"[authors][5]"},
			want:     `{"authors":["A","B"]}`,
		},
		{
			name:     "keep_kind_mismatch_key_on_array",
			doc:      `{"a":[1,2]}`,
			mode:     ModeKeep,
			patterns: []string{"[a][b]"},
			want:     `{"a":[]}`,
		},
		{
			name:     "exclude_kind_mismatch_key_on_array",
			doc:      `{"a":[1,2]}`,
			mode:     ModeExclude,
			patterns: []string{"[a][b]"},
			want:     `{"a":[1,2]}`,
		},
		{
			name:     "keep_scalar_under_partial_match_is_absent",
			doc:      `{"a":5,"b":1}`,
			mode:     ModeKeep,
			patterns: []string{"[a][deeper]"},
			want:     `{}`,
		},
		{
			name:     "exclude_scalar_under_partial_match_is_retained",
			doc:      `{"a":5}`,
			mode:     ModeExclude,
			patterns: []string{"[a][deeper]"},
			want:     `{"a":5}`,
		},
		{
			name:     "wildcard_then_concrete_index_keep",
			doc:      `{"a":[[1,2],[3]]}`,
			mode:     ModeKeep,
			patterns: []string{"[a][:][0]"},
			want:     `{"a":[[1],[3]]}`,
		},
		{
			name:     "wildcard_then_concrete_index_exclude",
			doc:      `{"a":[[1,2],[3]]}`,
			mode:     ModeExclude,
			patterns: []string{"[a][:][0]"},
			want:     `{"a":[[2],[]]}`,
		},
		{
			name:     "shorter_path_subsumes_longer",
			doc:      `{"a":{"b":1,"c":2}}`,
			mode:     ModeKeep,
			patterns: []string{"[a][b]", "[a]"},
			want:     `{"a":{"b":1,"c":2}}`,
		},
		{
			name:     "wildcard_does_not_match_object_keys",
			doc:      `{"a":{"x":1}}`,
			mode:     ModeKeep,
			patterns: []string{"[a][:]"},
			want:     `{"a":{}}`,
		},
		{
			name:     "index_does_not_match_digit_key",
			doc:      `{"0":"zero"}`,
			mode:     ModeKeep,
			patterns: []string{"[0]"},
			want:     `{}`,
		},
		{
			name:     "member_order_survives_exclude",
			doc:      `{"z":1,"b":{"y":1,"a":2},"c":3}`,
			mode:     ModeExclude,
			patterns: []string{"[b][y]"},
			want:     `{"z":1,"b":{"a":2},"c":3}`,
		},
		{
			name:     "null_value_kept_whole",
			doc:      `{"a":null,"b":1}`,
			mode:     ModeKeep,
			patterns: []string{"[a]"},
			want:     `{"a":null}`,
		},
		{
			name:     "shared_prefix_paths",
			doc:      `{"a":{"b":1,"c":2,"d":3}}`,
			mode:     ModeKeep,
			patterns: []string{"[a][b]", "[a][d]"},
			want:     `{"a":{"b":1,"d":3}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustDecode(t, tt.doc)
			def := mustDefinition(t, tt.mode, tt.patterns...)

			got := marshal(t, Apply(doc, def))
			if got != tt.want {
				t.Errorf("Apply = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := `{"a":{"b":1,"c":2},"d":[1,2]}`
	doc := mustDecode(t, input)
	def := mustDefinition(t, ModeExclude, "[a][b]", "[d][0]")

	Apply(doc, def)

	if got := marshal(t, doc); got != input {
		t.Errorf("input mutated by Apply: %s", got)
	}
}

func TestApplyIdempotent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mode     Mode
		patterns []string
	}{
		{name: "keep", mode: ModeKeep, patterns: []string{"[authors][:][name]", "[title]"}},
		{name: "exclude", mode: ModeExclude, patterns: []string{"[authors][:][id]", "[abstract]"}},
	}

	doc := `{"title":"T","abstract":"...","authors":[{"name":"A","id":1},{"name":"B","id":2}]}`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			def := mustDefinition(t, tt.mode, tt.patterns...)

			once := Apply(mustDecode(t, doc), def)
			twice := Apply(once, def)

			if marshal(t, once) != marshal(t, twice) {
				t.Errorf("Apply is not idempotent: %s != %s", marshal(t, once), marshal(t, twice))
			}
		})
	}
}

func TestKeepAndExcludePartitionMatches(t *testing.T) {
	t.Parallel()

	doc := `{"author_id":7,"author_name":"X","abstract":"..."}`
	patterns := []string{"[abstract]", "[author_id]"}

	kept := Apply(mustDecode(t, doc), mustDefinition(t, ModeKeep, patterns...))
	rest := Apply(mustDecode(t, doc), mustDefinition(t, ModeExclude, patterns...))

	if got := marshal(t, kept); got != `{"author_id":7,"abstract":"..."}` {
		t.Errorf("keep = %s", got)
	}
	if got := marshal(t, rest); got != `{"author_name":"X"}` {
		t.Errorf("exclude = %s", got)
	}

	keptObj := kept.(*jsondoc.Object)
	for _, m := range rest.(*jsondoc.Object).Members {
		if _, overlap := keptObj.Get(m.Key); overlap {
			t.Errorf("key %q present in both keep and exclude output", m.Key)
		}
	}
}

func TestApplyPreservesRootKind(t *testing.T) {
	t.Parallel()

	def := mustDefinition(t, ModeKeep, "[x]")

	if _, ok := Apply(mustDecode(t, `{"a":1}`), def).(*jsondoc.Object); !ok {
		t.Error("object root did not stay an object")
	}
	if _, ok := Apply(mustDecode(t, `[1,2]`), def).([]any); !ok {
		t.Error("array root did not stay an array")
	}
}

func TestApplyEmptyDefinitionPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("Apply with nil definition did not panic")
		}
	}()

	Apply(mustDecode(t, `{}`), nil)
}
