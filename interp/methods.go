package interp

import (
	"fmt"

	"github.com/isdmx/snipbox/dataset"
)

// frameMethod returns the named method of a frame as a bound callable.
func frameMethod(fv *FrameValue, name string) (Value, bool) {
	f := fv.Frame
	var fn BuiltinFunc

	switch name {
	case "filter":
		fn = func(args []Value) (Value, error) {
			if err := wantArgs("frame.filter", args, 3); err != nil {
				return nil, err
			}
			column, err := strArg("frame.filter", args, 0)
			if err != nil {
				return nil, err
			}
			op, err := strArg("frame.filter", args, 1)
			if err != nil {
				return nil, err
			}
			switch args[2].(type) {
			case Int, Float, Str, Bool, Nil:
			default:
				return nil, fmt.Errorf("frame.filter: value is a %s, want a scalar", args[2].Type())
			}
			out, err := f.Filter(column, op, ToGo(args[2]))
			if err != nil {
				return nil, fmt.Errorf("frame.filter: %w", err)
			}
			return &FrameValue{Frame: out}, nil
		}
	case "select":
		fn = func(args []Value) (Value, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("frame.select expects at least 1 argument")
			}
			columns := make([]string, len(args))
			for i := range args {
				col, err := strArg("frame.select", args, i)
				if err != nil {
					return nil, err
				}
				columns[i] = col
			}
			out, err := f.Select(columns...)
			if err != nil {
				return nil, fmt.Errorf("frame.select: %w", err)
			}
			return &FrameValue{Frame: out}, nil
		}
	case "head":
		fn = func(args []Value) (Value, error) {
			if err := wantArgs("frame.head", args, 1); err != nil {
				return nil, err
			}
			n, ok := args[0].(Int)
			if !ok {
				return nil, fmt.Errorf("frame.head: argument 1 is a %s, want int", args[0].Type())
			}
			return &FrameValue{Frame: f.Head(int(n))}, nil
		}
	case "sort":
		fn = func(args []Value) (Value, error) {
			if len(args) != 1 && len(args) != 2 {
				return nil, fmt.Errorf("frame.sort expects 1 or 2 argument(s), got %d", len(args))
			}
			column, err := strArg("frame.sort", args, 0)
			if err != nil {
				return nil, err
			}
			descending := false
			if len(args) == 2 {
				d, ok := args[1].(Bool)
				if !ok {
					return nil, fmt.Errorf("frame.sort: argument 2 is a %s, want bool", args[1].Type())
				}
				descending = bool(d)
			}
			out, err := f.SortBy(column, descending)
			if err != nil {
				return nil, fmt.Errorf("frame.sort: %w", err)
			}
			return &FrameValue{Frame: out}, nil
		}
	case "count":
		fn = func(args []Value) (Value, error) {
			if err := wantArgs("frame.count", args, 0); err != nil {
				return nil, err
			}
			return Int(f.Count()), nil
		}
	case "sum", "mean", "min", "max":
		agg := name
		fn = func(args []Value) (Value, error) {
			if err := wantArgs("frame."+agg, args, 1); err != nil {
				return nil, err
			}
			column, err := strArg("frame."+agg, args, 0)
			if err != nil {
				return nil, err
			}
			var v float64
			switch agg {
			case "sum":
				v, err = f.Sum(column)
			case "mean":
				v, err = f.Mean(column)
			case "min":
				v, err = f.Min(column)
			default:
				v, err = f.Max(column)
			}
			if err != nil {
				return nil, fmt.Errorf("frame.%s: %w", agg, err)
			}
			return Float(v), nil
		}
	case "column":
		fn = func(args []Value) (Value, error) {
			if err := wantArgs("frame.column", args, 1); err != nil {
				return nil, err
			}
			column, err := strArg("frame.column", args, 0)
			if err != nil {
				return nil, err
			}
			s, err := f.Column(column)
			if err != nil {
				return nil, fmt.Errorf("frame.column: %w", err)
			}
			return &SeriesValue{Series: s}, nil
		}
	case "columns":
		fn = func(args []Value) (Value, error) {
			if err := wantArgs("frame.columns", args, 0); err != nil {
				return nil, err
			}
			cols := f.Columns()
			elems := make([]Value, len(cols))
			for i, c := range cols {
				elems[i] = Str(c)
			}
			return &List{Elems: elems}, nil
		}
	case "records":
		fn = func(args []Value) (Value, error) {
			if err := wantArgs("frame.records", args, 0); err != nil {
				return nil, err
			}
			recs := f.Records()
			elems := make([]Value, len(recs))
			for i, rec := range recs {
				v, err := Convert(rec)
				if err != nil {
					return nil, fmt.Errorf("frame.records: %w", err)
				}
				elems[i] = v
			}
			return &List{Elems: elems}, nil
		}
	default:
		return nil, false
	}
	return &Builtin{Name: "frame." + name, Fn: fn}, true
}

// seriesMethod returns the named method of a series as a bound
// callable.
func seriesMethod(sv *SeriesValue, name string) (Value, bool) {
	s := sv.Series
	var fn BuiltinFunc

	switch name {
	case "sum":
		fn = func(args []Value) (Value, error) {
			if err := wantArgs("series.sum", args, 0); err != nil {
				return nil, err
			}
			return Float(s.Sum()), nil
		}
	case "mean", "min", "max":
		agg := name
		fn = func(args []Value) (Value, error) {
			if err := wantArgs("series."+agg, args, 0); err != nil {
				return nil, err
			}
			var (
				v   float64
				err error
			)
			switch agg {
			case "mean":
				v, err = s.Mean()
			case "min":
				v, err = s.Min()
			default:
				v, err = s.Max()
			}
			if err != nil {
				return nil, fmt.Errorf("series.%s: %w", agg, err)
			}
			return Float(v), nil
		}
	case "at":
		fn = func(args []Value) (Value, error) {
			if err := wantArgs("series.at", args, 1); err != nil {
				return nil, err
			}
			i, ok := args[0].(Int)
			if !ok {
				return nil, fmt.Errorf("series.at: argument 1 is a %s, want int", args[0].Type())
			}
			v, err := s.At(int(i))
			if err != nil {
				return nil, fmt.Errorf("series.at: %w", err)
			}
			return Float(v), nil
		}
	case "values":
		fn = func(args []Value) (Value, error) {
			if err := wantArgs("series.values", args, 0); err != nil {
				return nil, err
			}
			vs := s.Values()
			elems := make([]Value, len(vs))
			for i, v := range vs {
				elems[i] = Float(v)
			}
			return &List{Elems: elems}, nil
		}
	default:
		return nil, false
	}
	return &Builtin{Name: "series." + name, Fn: fn}, true
}

func strArg(name string, args []Value, i int) (string, error) {
	s, ok := args[i].(Str)
	if !ok {
		return "", fmt.Errorf("%s: argument %d is a %s, want string", name, i+1, args[i].Type())
	}
	return string(s), nil
}

// newSeriesValue wraps raw values as a series value.
func newSeriesValue(name string, values []float64) *SeriesValue {
	return &SeriesValue{Series: dataset.NewSeries(name, values)}
}
