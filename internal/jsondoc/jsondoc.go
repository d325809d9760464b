// Package jsondoc decodes JSON documents into values that preserve
// object member order, which encoding/json maps discard.
//
// A decoded value is one of:
//   - *Object for JSON objects, members in input order
//   - []any for JSON arrays
//   - string, json.Number, bool or nil for scalars
package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformed indicates the input is not a well-formed JSON document.
var ErrMalformed = errors.New("jsondoc: malformed JSON")

// Member is a single key/value entry of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object with stable member order.
type Object struct {
	Members []Member
}

// Get returns the value for the first member with the given key.
func (o *Object) Get(key string) (any, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of an existing member or appends a new one.
func (o *Object) Set(key string, value any) {
	for i := range o.Members {
		if o.Members[i].Key == key {
			o.Members[i].Value = value
			return
		}
	}
	o.Members = append(o.Members, Member{Key: key, Value: value})
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.Members)
}

// Decode reads a single JSON value from r. Numbers decode as
// json.Number so round-tripping does not reformat them.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	value, err := decodeValue(dec, tok)
	if err != nil {
		return nil, err
	}

	// Anything after the first value is not a single document.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformed)
	}

	return value, nil
}

// Unmarshal decodes a single JSON value from data.
func Unmarshal(data []byte) (any, error) {
	return Decode(bytes.NewReader(data))
}

func decodeValue(dec *json.Decoder, tok json.Token) (any, error) {
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch d {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrMalformed, d.String())
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := &Object{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is not a string", ErrMalformed)
		}

		valueTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		value, err := decodeValue(dec, valueTok)
		if err != nil {
			return nil, err
		}

		obj.Members = append(obj.Members, Member{Key: key, Value: value})
	}
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := make([]any, 0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}

		value, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}

		arr = append(arr, value)
	}
}

// Clone returns a deep copy sharing no mutable state with v.
func Clone(v any) any {
	switch t := v.(type) {
	case *Object:
		out := &Object{Members: make([]Member, len(t.Members))}
		for i, m := range t.Members {
			out.Members[i] = Member{Key: m.Key, Value: Clone(m.Value)}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = Clone(elem)
		}
		return out
	default:
		return v
	}
}

// Plain converts v to plain map[string]any / []any values for use with
// libraries that expect encoding/json shapes. Member order is lost.
func Plain(v any) any {
	switch t := v.(type) {
	case *Object:
		out := make(map[string]any, len(t.Members))
		for _, m := range t.Members {
			out[m.Key] = Plain(m.Value)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = Plain(elem)
		}
		return out
	default:
		return v
	}
}
