// Package path implements the bracket-notation pattern language used to
// address nodes inside JSON documents.
//
// The canonical form is a chain of bracketed segments:
//
//	[authors][:][name]
//
// where a segment body is a field name, a non-negative array index, or
// ':' for every element of an array. Dot-notation sugar is accepted and
// compiles to the same representation:
//
//	authors[].name  ==  [authors][:][name]
//	a.b             ==  [a][b]
//	a[3]            ==  [a][3]
package path

import (
	"strconv"
	"strings"
)

// Segment is one step of a path. Exactly three implementations exist:
// Key, Index and Wildcard.
type Segment interface {
	String() string
	segment()
}

// Key selects a field by name in an object.
type Key string

// Index selects an element by position in an array.
type Index int

// Wildcard selects every element of an array.
type Wildcard struct{}

func (Key) segment()      {}
func (Index) segment()    {}
func (Wildcard) segment() {}

func (k Key) String() string {
	return "[" + string(k) + "]"
}

func (i Index) String() string {
	return "[" + strconv.Itoa(int(i)) + "]"
}

func (Wildcard) String() string {
	return "[:]"
}

// Path is an ordered, non-empty root-to-node address.
type Path []Segment

// String renders the canonical bracket form. Parsing the result yields
// a Path equal to the receiver, regardless of the notation the path was
// originally written in.
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteString(seg.String())
	}
	return b.String()
}

// Equal reports segment-by-segment structural equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
