package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Object is the interface implemented by every PDF object type.
type Object interface {
	// String returns a PDF-syntax-flavored representation, used in error
	// messages and debugging output.
	String() string
}

// Null represents the PDF null object.
type Null struct{}

func (Null) String() string { return "null" }

// Bool represents a PDF boolean.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int represents a PDF integer.
type Int int64

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Real represents a PDF real number.
type Real float64

func (r Real) String() string { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// String represents a PDF string. The bytes are kept exactly as they appear
// in the file; any text decoding happens in the font package.
type String string

func (s String) String() string { return "(" + string(s) + ")" }

// Name represents a PDF name object.
type Name string

func (n Name) String() string { return "/" + string(n) }

// Array represents a PDF array.
type Array []Object

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, obj := range a {
		parts[i] = obj.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Get returns the element at index, or nil when out of range.
func (a Array) Get(index int) Object {
	if index < 0 || index >= len(a) {
		return nil
	}
	return a[index]
}

// Number converts an Int or Real object to float64.
func Number(obj Object) (float64, bool) {
	switch v := obj.(type) {
	case Int:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}

// Dict represents a PDF dictionary. Keys are stored without the leading
// slash.
type Dict map[string]Object

func (d Dict) String() string {
	parts := make([]string, 0, len(d))
	for key, val := range d {
		parts = append(parts, fmt.Sprintf("/%s %s", key, val.String()))
	}
	return "<<" + strings.Join(parts, " ") + ">>"
}

// Get returns the value for key, or nil when absent.
func (d Dict) Get(key string) Object { return d[key] }

// Has reports whether key is present.
func (d Dict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// GetInt returns an integer value.
func (d Dict) GetInt(key string) (Int, bool) {
	i, ok := d[key].(Int)
	return i, ok
}

// GetName returns a name value.
func (d Dict) GetName(key string) (Name, bool) {
	n, ok := d[key].(Name)
	return n, ok
}

// GetDict returns a dictionary value.
func (d Dict) GetDict(key string) (Dict, bool) {
	sub, ok := d[key].(Dict)
	return sub, ok
}

// GetArray returns an array value.
func (d Dict) GetArray(key string) (Array, bool) {
	arr, ok := d[key].(Array)
	return arr, ok
}

// GetIndirectRef returns an indirect reference value.
func (d Dict) GetIndirectRef(key string) (IndirectRef, bool) {
	ref, ok := d[key].(IndirectRef)
	return ref, ok
}

// Stream represents a PDF stream object: its dictionary plus the raw
// (still encoded) data bytes.
type Stream struct {
	Dict Dict
	Data []byte
}

func (s *Stream) String() string {
	return fmt.Sprintf("stream %s (%d bytes)", s.Dict.String(), len(s.Data))
}

// IndirectRef represents a reference to an indirect object ("n g R").
type IndirectRef struct {
	Number     int
	Generation int
}

func (r IndirectRef) String() string {
	return fmt.Sprintf("%d %d R", r.Number, r.Generation)
}

// IndirectObject pairs an indirect object with its reference.
type IndirectObject struct {
	Ref    IndirectRef
	Object Object
}
