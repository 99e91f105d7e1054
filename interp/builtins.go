package interp

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/isdmx/snipbox/dataset"
)

// maxRangeLen bounds the allocation a single arrays.range call can
// demand; the step quota cannot see inside one builtin call.
const maxRangeLen = 1 << 20

// InstallBuiltins binds the universal builtins (print, len, str, type)
// into env. Output written by print goes to out.
func InstallBuiltins(env *Environment, out io.Writer) {
	env.Set("print", &Builtin{Name: "print", Fn: func(args []Value) (Value, error) {
		for i, arg := range args {
			if i > 0 {
				if _, err := io.WriteString(out, " "); err != nil {
					return nil, err
				}
			}
			if _, err := io.WriteString(out, arg.String()); err != nil {
				return nil, err
			}
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return nil, err
		}
		return Null, nil
	}})

	env.Set("len", &Builtin{Name: "len", Fn: func(args []Value) (Value, error) {
		if err := wantArgs("len", args, 1); err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case Str:
			return Int(utf8.RuneCountInString(string(v))), nil
		case *List:
			return Int(len(v.Elems)), nil
		case *Map:
			return Int(len(v.Entries)), nil
		case *SeriesValue:
			return Int(v.Series.Len()), nil
		case *FrameValue:
			return Int(v.Frame.Count()), nil
		default:
			return nil, fmt.Errorf("len: unsupported type %s", args[0].Type())
		}
	}})

	env.Set("str", &Builtin{Name: "str", Fn: func(args []Value) (Value, error) {
		if err := wantArgs("str", args, 1); err != nil {
			return nil, err
		}
		return Str(args[0].String()), nil
	}})

	env.Set("type", &Builtin{Name: "type", Fn: func(args []Value) (Value, error) {
		if err := wantArgs("type", args, 1); err != nil {
			return nil, err
		}
		return Str(args[0].Type()), nil
	}})
}

// StandardModules returns the modules snippets may bind with use:
// frames for tabular data and arrays for numeric vectors.
func StandardModules() map[string]Value {
	return map[string]Value{
		"frames": framesModule(),
		"arrays": arraysModule(),
	}
}

func framesModule() Value {
	return &Module{Name: "frames", Attrs: map[string]Value{
		"frame": &Builtin{Name: "frames.frame", Fn: func(args []Value) (Value, error) {
			if err := wantArgs("frames.frame", args, 1); err != nil {
				return nil, err
			}
			list, ok := args[0].(*List)
			if !ok {
				return nil, fmt.Errorf("frames.frame expects a list of records, got %s", args[0].Type())
			}
			records := make([]map[string]any, len(list.Elems))
			for i, elem := range list.Elems {
				m, ok := elem.(*Map)
				if !ok {
					return nil, fmt.Errorf("frames.frame: record %d is a %s, want map", i, elem.Type())
				}
				rec, _ := ToGo(m).(map[string]any)
				records[i] = rec
			}
			f, err := dataset.FromRecords(records)
			if err != nil {
				return nil, fmt.Errorf("frames.frame: %w", err)
			}
			return &FrameValue{Frame: f}, nil
		}},
		"concat": &Builtin{Name: "frames.concat", Fn: func(args []Value) (Value, error) {
			if err := wantArgs("frames.concat", args, 2); err != nil {
				return nil, err
			}
			a, ok := args[0].(*FrameValue)
			if !ok {
				return nil, fmt.Errorf("frames.concat: argument 1 is a %s, want frame", args[0].Type())
			}
			b, ok := args[1].(*FrameValue)
			if !ok {
				return nil, fmt.Errorf("frames.concat: argument 2 is a %s, want frame", args[1].Type())
			}
			return &FrameValue{Frame: a.Frame.Concat(b.Frame)}, nil
		}},
	}}
}

func arraysModule() Value {
	return &Module{Name: "arrays", Attrs: map[string]Value{
		"from": &Builtin{Name: "arrays.from", Fn: func(args []Value) (Value, error) {
			if err := wantArgs("arrays.from", args, 1); err != nil {
				return nil, err
			}
			list, ok := args[0].(*List)
			if !ok {
				return nil, fmt.Errorf("arrays.from expects a list, got %s", args[0].Type())
			}
			values, err := numberSlice("arrays.from", list.Elems)
			if err != nil {
				return nil, err
			}
			return &SeriesValue{Series: dataset.NewSeries("", values)}, nil
		}},
		"of": &Builtin{Name: "arrays.of", Fn: func(args []Value) (Value, error) {
			values, err := numberSlice("arrays.of", args)
			if err != nil {
				return nil, err
			}
			return &SeriesValue{Series: dataset.NewSeries("", values)}, nil
		}},
		"range": &Builtin{Name: "arrays.range", Fn: func(args []Value) (Value, error) {
			if err := wantArgs("arrays.range", args, 1); err != nil {
				return nil, err
			}
			n, ok := args[0].(Int)
			if !ok {
				return nil, fmt.Errorf("arrays.range expects an int, got %s", args[0].Type())
			}
			if n < 0 {
				return nil, fmt.Errorf("arrays.range: negative length %d", n)
			}
			if n > maxRangeLen {
				return nil, fmt.Errorf("arrays.range: length %d exceeds limit %d", n, maxRangeLen)
			}
			values := make([]float64, n)
			for i := range values {
				values[i] = float64(i)
			}
			return &SeriesValue{Series: dataset.NewSeries("", values)}, nil
		}},
	}}
}

func wantArgs(name string, args []Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func numberSlice(name string, elems []Value) ([]float64, error) {
	values := make([]float64, len(elems))
	for i, elem := range elems {
		f, ok := numericValue(elem)
		if !ok {
			return nil, fmt.Errorf("%s: element %d is a %s, want a number", name, i, elem.Type())
		}
		values[i] = f
	}
	return values, nil
}
