package filter

import (
	"github.com/jacoelho/jf/internal/jsondoc"
)

// Apply projects a decoded JSON document through a filter definition
// and returns a new document. The input is never mutated and the
// output shares no mutable state with it. Apply is pure and never
// fails: shape mismatches, missing keys and out-of-range indexes are
// ordinary no-matches, not errors.
//
// Apply panics when given a nil definition or one holding no paths;
// New makes such a definition unobtainable.
func Apply(doc any, def *Definition) any {
	if def == nil || len(def.paths) == 0 {
		panic("filter: Apply called with empty definition")
	}

	root := frontier{def.trie}

	if def.mode == ModeExclude {
		out, _ := projectExclude(doc, root)
		return out
	}

	out, ok := projectKeep(doc, root)
	if !ok {
		return emptyLike(doc)
	}
	return out
}

// projectKeep retains a node when the frontier fully matches it (copy
// the whole subtree) or partially matches it (recurse, keeping only
// retained children). Scalars survive only on a full match.
func projectKeep(v any, f frontier) (any, bool) {
	if len(f) == 0 {
		return nil, false
	}
	if f.anyTerminal() {
		return jsondoc.Clone(v), true
	}

	switch t := v.(type) {
	case *jsondoc.Object:
		out := &jsondoc.Object{}
		for _, m := range t.Members {
			value, ok := projectKeep(m.Value, f.advanceKey(m.Key))
			if ok {
				out.Members = append(out.Members, jsondoc.Member{Key: m.Key, Value: value})
			}
		}
		return out, true

	case []any:
		out := make([]any, 0, len(t))
		for i, elem := range t {
			value, ok := projectKeep(elem, f.advanceIndex(i))
			if ok {
				out = append(out, value)
			}
		}
		return out, true

	default:
		// Scalar under a partial match: the addressed descendant does
		// not exist in this document, so nothing is kept here.
		return nil, false
	}
}

// projectExclude drops a node only on a full match; everything else is
// copied, recursing through partial matches to find deeper full
// matches.
func projectExclude(v any, f frontier) (any, bool) {
	if f.anyTerminal() {
		return nil, false
	}
	if len(f) == 0 {
		return jsondoc.Clone(v), true
	}

	switch t := v.(type) {
	case *jsondoc.Object:
		out := &jsondoc.Object{}
		for _, m := range t.Members {
			value, ok := projectExclude(m.Value, f.advanceKey(m.Key))
			if ok {
				out.Members = append(out.Members, jsondoc.Member{Key: m.Key, Value: value})
			}
		}
		return out, true

	case []any:
		out := make([]any, 0, len(t))
		for i, elem := range t {
			value, ok := projectExclude(elem, f.advanceIndex(i))
			if ok {
				out = append(out, value)
			}
		}
		return out, true

	default:
		return v, true
	}
}

// emptyLike preserves the root container kind when a keep filter
// matches nothing: an object stays an object, an array stays an array.
func emptyLike(doc any) any {
	switch doc.(type) {
	case *jsondoc.Object:
		return &jsondoc.Object{}
	case []any:
		return []any{}
	default:
		return nil
	}
}
