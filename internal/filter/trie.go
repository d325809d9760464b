package filter

import (
	"github.com/jacoelho/jf/internal/path"
)

// node is one level of the compiled path trie. A wildcard child
// matches every index of an array; key and index children are kept
// apart so an object key spelled with digits never collides with an
// array position.
type node struct {
	terminal bool
	keys     map[string]*node
	indexes  map[int]*node
	wildcard *node
}

// compile builds the shared prefix tree for a path set. A shorter path
// subsumes any longer path extending it: once a node is terminal the
// whole subtree at that position is matched and deeper segments are
// irrelevant.
func compile(paths []path.Path) *node {
	root := &node{}
	for _, p := range paths {
		root.insert(p)
	}
	return root
}

func (n *node) insert(p path.Path) {
	current := n
	for _, seg := range p {
		if current.terminal {
			return
		}
		current = current.child(seg)
	}
	current.terminal = true
	current.keys = nil
	current.indexes = nil
	current.wildcard = nil
}

func (n *node) child(seg path.Segment) *node {
	switch s := seg.(type) {
	case path.Key:
		if n.keys == nil {
			n.keys = make(map[string]*node)
		}
		child, ok := n.keys[string(s)]
		if !ok {
			child = &node{}
			n.keys[string(s)] = child
		}
		return child
	case path.Index:
		if n.indexes == nil {
			n.indexes = make(map[int]*node)
		}
		child, ok := n.indexes[int(s)]
		if !ok {
			child = &node{}
			n.indexes[int(s)] = child
		}
		return child
	default: // path.Wildcard
		if n.wildcard == nil {
			n.wildcard = &node{}
		}
		return n.wildcard
	}
}

// frontier is the set of trie positions reachable for the document
// path consumed so far. Paths sharing a prefix, or an index overlapping
// a wildcard, make more than one position live at once.
type frontier []*node

func (f frontier) anyTerminal() bool {
	for _, n := range f {
		if n.terminal {
			return true
		}
	}
	return false
}

// advanceKey descends into an object member. Wildcards address array
// elements only and never match keys.
func (f frontier) advanceKey(key string) frontier {
	var next frontier
	for _, n := range f {
		if child, ok := n.keys[key]; ok {
			next = append(next, child)
		}
	}
	return next
}

// advanceIndex descends into an array element, following both the
// concrete index child and the wildcard child when present.
func (f frontier) advanceIndex(idx int) frontier {
	var next frontier
	for _, n := range f {
		if child, ok := n.indexes[idx]; ok {
			next = append(next, child)
		}
		if n.wildcard != nil {
			next = append(next, n.wildcard)
		}
	}
	return next
}
