// Package typereader converts raw console tokens into typed values.
package typereader

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the value type a Reader produces.
type Kind int

// Supported value kinds.
const (
	String Kind = iota
	Bool
	Int
	Float
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Reader parses one token into a value of a single Kind.
//
// Implementations must be total: a malformed or blank token yields the
// kind's zero value, never an error.
type Reader interface {
	Read(token string) any
}

// StringReader returns the token unchanged.
type StringReader struct{}

// Read returns token as a string.
func (StringReader) Read(token string) any { return token }

// BoolReader parses boolean spellings.
type BoolReader struct{}

// Read returns true for the strconv.ParseBool truthy spellings and for
// "yes" and "on"; every other token yields false.
//
// Postcondition: Returns a bool.
func (BoolReader) Read(token string) any {
	token = strings.TrimSpace(token)
	switch strings.ToLower(token) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	b, err := strconv.ParseBool(token)
	if err != nil {
		return false
	}
	return b
}

// IntReader parses base-10 integers.
type IntReader struct{}

// Read parses token as an int. Surrounding whitespace, leading or trailing
// signs, parentheses for negatives, thousands separators, a decimal point and
// an exponent are accepted as long as the value is integral ("16.0", "1e3").
//
// Postcondition: Returns an int; blank, unparsable, fractional or out of
// range input yields 0.
func (IntReader) Read(token string) any {
	s := normalizeNumber(token)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0
	}
	return int(f)
}

// FloatReader parses decimal floating point numbers.
type FloatReader struct{}

// Read parses token as a float64 with the same leniency as IntReader.
//
// Postcondition: Returns a float64; blank or unparsable input yields 0.
func (FloatReader) Read(token string) any {
	s := normalizeNumber(token)
	if s == "" {
		return float64(0)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return float64(0)
	}
	return f
}

// normalizeNumber trims whitespace, drops thousands separators and rewrites
// "(5)" and "5-" as "-5".
func normalizeNumber(token string) string {
	s := strings.TrimSpace(token)
	if strings.ContainsRune(s, ',') {
		s = strings.ReplaceAll(s, ",", "")
	}
	if inner, ok := strings.CutPrefix(s, "("); ok {
		if inner, ok = strings.CutSuffix(inner, ")"); ok {
			return "-" + strings.TrimSpace(inner)
		}
	}
	if len(s) > 1 {
		switch s[len(s)-1] {
		case '-':
			return "-" + strings.TrimSpace(s[:len(s)-1])
		case '+':
			return strings.TrimSpace(s[:len(s)-1])
		}
	}
	return s
}

// Registry maps each Kind to the Reader that parses it.
type Registry struct {
	readers map[Kind]Reader
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[Kind]Reader)}
}

// Default returns a Registry holding the built-in string, bool, int and
// float readers.
//
// Postcondition: Lookup succeeds for String, Bool, Int and Float.
func Default() *Registry {
	r := NewRegistry()
	r.Register(String, StringReader{})
	r.Register(Bool, BoolReader{})
	r.Register(Int, IntReader{})
	r.Register(Float, FloatReader{})
	return r
}

// Register installs reader for kind, replacing any previous reader.
//
// Precondition: reader must be non-nil.
func (r *Registry) Register(kind Kind, reader Reader) {
	r.readers[kind] = reader
}

// Lookup returns the Reader registered for kind.
func (r *Registry) Lookup(kind Kind) (Reader, bool) {
	reader, ok := r.readers[kind]
	return reader, ok
}

// Read parses token with the Reader registered for kind.
//
// Postcondition: Returns (value, true), or (nil, false) if kind has no reader.
func (r *Registry) Read(kind Kind, token string) (any, bool) {
	reader, ok := r.readers[kind]
	if !ok {
		return nil, false
	}
	return reader.Read(token), true
}
