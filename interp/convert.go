package interp

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/isdmx/snipbox/dataset"
)

// Convert turns a Go value into a snippet value. It accepts the shapes
// JSON decoding produces (nil, bool, string, float64, []any,
// map[string]any), Go numerics of any width, a few common slice types
// and the dataset handles. Values that already implement Value pass
// through unchanged.
func Convert(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Null, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return Str(v), nil
	case float32, float64:
		return Float(cast.ToFloat64(v)), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return nil, fmt.Errorf("convert %T: %w", v, err)
		}
		return Int(n), nil
	case []any:
		elems := make([]Value, len(v))
		for i, e := range v {
			ev, err := Convert(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return &List{Elems: elems}, nil
	case []string:
		elems := make([]Value, len(v))
		for i, s := range v {
			elems[i] = Str(s)
		}
		return &List{Elems: elems}, nil
	case []float64:
		elems := make([]Value, len(v))
		for i, f := range v {
			elems[i] = Float(f)
		}
		return &List{Elems: elems}, nil
	case []int:
		elems := make([]Value, len(v))
		for i, n := range v {
			elems[i] = Int(n)
		}
		return &List{Elems: elems}, nil
	case []map[string]any:
		elems := make([]Value, len(v))
		for i, m := range v {
			mv, err := Convert(m)
			if err != nil {
				return nil, err
			}
			elems[i] = mv
		}
		return &List{Elems: elems}, nil
	case map[string]any:
		entries := make(map[string]Value, len(v))
		for k, e := range v {
			ev, err := Convert(e)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			entries[k] = ev
		}
		return &Map{Entries: entries}, nil
	case *dataset.Series:
		return &SeriesValue{Series: v}, nil
	case *dataset.Frame:
		return &FrameValue{Frame: v}, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}

// ToGo turns a snippet value back into a plain Go value suitable for
// JSON encoding. Frames become their records, series their values.
func ToGo(v Value) any {
	switch v := v.(type) {
	case Nil:
		return nil
	case Bool:
		return bool(v)
	case Int:
		return int64(v)
	case Float:
		return float64(v)
	case Str:
		return string(v)
	case *List:
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = ToGo(e)
		}
		return out
	case *Map:
		out := make(map[string]any, len(v.Entries))
		for k, e := range v.Entries {
			out[k] = ToGo(e)
		}
		return out
	case *SeriesValue:
		return v.Series.Values()
	case *FrameValue:
		return v.Frame.Records()
	default:
		return v.String()
	}
}
