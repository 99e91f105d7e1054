package interp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/isdmx/snipbox/dataset"
)

// Value is a runtime value of the snippet language.
type Value interface {
	// Type returns the language-level type name, e.g. "int" or "frame".
	Type() string
	// String returns the display form used by print and str.
	String() string
}

// Int is an integer value.
type Int int64

func (i Int) Type() string   { return "int" }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float is a floating point value.
type Float float64

func (f Float) Type() string   { return "float" }
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// Str is a string value.
type Str string

func (s Str) Type() string   { return "string" }
func (s Str) String() string { return string(s) }

// Bool is a boolean value.
type Bool bool

func (b Bool) Type() string { return "bool" }
func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

// Nil is the nil value. Use the Null singleton.
type Nil struct{}

func (Nil) Type() string   { return "nil" }
func (Nil) String() string { return "nil" }

// Null is the single nil value.
var Null Value = Nil{}

// List is an ordered sequence of values.
type List struct {
	Elems []Value
}

func (l *List) Type() string { return "list" }
func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range l.Elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(displayQuoted(e))
	}
	b.WriteByte(']')
	return b.String()
}

// Map is a string-keyed mapping. Display order is sorted by key.
type Map struct {
	Entries map[string]Value
}

func (m *Map) Type() string { return "map" }
func (m *Map) String() string {
	keys := make([]string, 0, len(m.Entries))
	for k := range m.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(k))
		b.WriteString(": ")
		b.WriteString(displayQuoted(m.Entries[k]))
	}
	b.WriteByte('}')
	return b.String()
}

// SeriesValue wraps a dataset.Series as a snippet value.
type SeriesValue struct {
	Series *dataset.Series
}

func (s *SeriesValue) Type() string   { return "series" }
func (s *SeriesValue) String() string { return s.Series.String() }

// FrameValue wraps a dataset.Frame as a snippet value.
type FrameValue struct {
	Frame *dataset.Frame
}

func (f *FrameValue) Type() string   { return "frame" }
func (f *FrameValue) String() string { return f.Frame.String() }

// Module is a named bundle of values made available to snippets via a
// use statement.
type Module struct {
	Name  string
	Attrs map[string]Value
}

func (m *Module) Type() string   { return "module" }
func (m *Module) String() string { return "<module " + m.Name + ">" }

// BuiltinFunc is the Go implementation behind a callable value.
type BuiltinFunc func(args []Value) (Value, error)

// Builtin is a callable value: a builtin function, a module function
// or a bound method.
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

func (b *Builtin) Type() string   { return "builtin" }
func (b *Builtin) String() string { return "<builtin " + b.Name + ">" }

// displayQuoted renders a value for inclusion in a container: strings
// are quoted, everything else uses its plain display form.
func displayQuoted(v Value) string {
	if s, ok := v.(Str); ok {
		return strconv.Quote(string(s))
	}
	return v.String()
}

// truthy maps a value to a boolean for the boolean operators. Numbers
// are true when nonzero, strings and containers when nonempty. Frames
// and series have no truth value.
func truthy(v Value) (bool, error) {
	switch v := v.(type) {
	case Bool:
		return bool(v), nil
	case Nil:
		return false, nil
	case Int:
		return v != 0, nil
	case Float:
		return v != 0, nil
	case Str:
		return v != "", nil
	case *List:
		return len(v.Elems) > 0, nil
	case *Map:
		return len(v.Entries) > 0, nil
	case *SeriesValue, *FrameValue:
		return false, errTruthAmbiguous(v)
	default:
		return true, nil
	}
}

// valuesEqual reports deep equality of scalar and container values.
// Ints and floats compare numerically. Values of different kinds are
// unequal rather than an error.
func valuesEqual(a, b Value) bool {
	if af, aok := numericValue(a); aok {
		bf, bok := numericValue(b)
		return bok && af == bf
	}
	switch av := a.(type) {
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Nil:
		_, ok := b.(Nil)
		return ok
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !valuesEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok || len(av.Entries) != len(bv.Entries) {
			return false
		}
		for k, v := range av.Entries {
			other, ok := bv.Entries[k]
			if !ok || !valuesEqual(v, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func errTruthAmbiguous(v Value) error {
	return fmt.Errorf("truth value of a %s is ambiguous", v.Type())
}

func numericValue(v Value) (float64, bool) {
	switch v := v.(type) {
	case Int:
		return float64(v), true
	case Float:
		return float64(v), true
	default:
		return 0, false
	}
}
