package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Series is an immutable vector of float64 values, optionally named.
// All operations return new series and leave the receiver untouched.
type Series struct {
	name   string
	values []float64
}

// NewSeries builds a series from a copy of values.
func NewSeries(name string, values []float64) *Series {
	vs := make([]float64, len(values))
	copy(vs, values)
	return &Series{name: name, values: vs}
}

// Name returns the series name, which may be empty.
func (s *Series) Name() string { return s.name }

// Len returns the number of values.
func (s *Series) Len() int { return len(s.values) }

// Values returns a copy of the underlying values.
func (s *Series) Values() []float64 {
	vs := make([]float64, len(s.values))
	copy(vs, s.values)
	return vs
}

// At returns the value at index i.
func (s *Series) At(i int) (float64, error) {
	if i < 0 || i >= len(s.values) {
		return 0, fmt.Errorf("series index %d out of range (len %d)", i, len(s.values))
	}
	return s.values[i], nil
}

// Sum returns the sum of all values. The sum of an empty series is 0.
func (s *Series) Sum() float64 {
	var total float64
	for _, v := range s.values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean.
func (s *Series) Mean() (float64, error) {
	if len(s.values) == 0 {
		return 0, fmt.Errorf("mean of empty series")
	}
	return s.Sum() / float64(len(s.values)), nil
}

// Min returns the smallest value.
func (s *Series) Min() (float64, error) {
	if len(s.values) == 0 {
		return 0, fmt.Errorf("min of empty series")
	}
	min := s.values[0]
	for _, v := range s.values[1:] {
		if v < min {
			min = v
		}
	}
	return min, nil
}

// Max returns the largest value.
func (s *Series) Max() (float64, error) {
	if len(s.values) == 0 {
		return 0, fmt.Errorf("max of empty series")
	}
	max := s.values[0]
	for _, v := range s.values[1:] {
		if v > max {
			max = v
		}
	}
	return max, nil
}

func (s *Series) combine(other *Series, f func(a, b float64) float64) (*Series, error) {
	if len(s.values) != len(other.values) {
		return nil, fmt.Errorf("series length mismatch: %d and %d", len(s.values), len(other.values))
	}
	out := make([]float64, len(s.values))
	for i := range s.values {
		out[i] = f(s.values[i], other.values[i])
	}
	return &Series{name: s.name, values: out}, nil
}

// Add returns the elementwise sum of two series of equal length.
func (s *Series) Add(other *Series) (*Series, error) {
	return s.combine(other, func(a, b float64) float64 { return a + b })
}

// Sub returns the elementwise difference of two series of equal length.
func (s *Series) Sub(other *Series) (*Series, error) {
	return s.combine(other, func(a, b float64) float64 { return a - b })
}

// Mul returns the elementwise product of two series of equal length.
func (s *Series) Mul(other *Series) (*Series, error) {
	return s.combine(other, func(a, b float64) float64 { return a * b })
}

// Div returns the elementwise quotient of two series of equal length.
// A zero in the divisor is an error.
func (s *Series) Div(other *Series) (*Series, error) {
	if len(s.values) != len(other.values) {
		return nil, fmt.Errorf("series length mismatch: %d and %d", len(s.values), len(other.values))
	}
	for i, v := range other.values {
		if v == 0 {
			return nil, fmt.Errorf("division by zero at index %d", i)
		}
	}
	return s.combine(other, func(a, b float64) float64 { return a / b })
}

// AddScalar returns a new series with x added to every value.
func (s *Series) AddScalar(x float64) *Series {
	return s.mapValues(func(v float64) float64 { return v + x })
}

// SubScalar returns a new series with x subtracted from every value.
func (s *Series) SubScalar(x float64) *Series {
	return s.mapValues(func(v float64) float64 { return v - x })
}

// MulScalar returns a new series with every value multiplied by x.
func (s *Series) MulScalar(x float64) *Series {
	return s.mapValues(func(v float64) float64 { return v * x })
}

// DivScalar returns a new series with every value divided by x.
func (s *Series) DivScalar(x float64) (*Series, error) {
	if x == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	return s.mapValues(func(v float64) float64 { return v / x }), nil
}

func (s *Series) mapValues(f func(float64) float64) *Series {
	out := make([]float64, len(s.values))
	for i, v := range s.values {
		out[i] = f(v)
	}
	return &Series{name: s.name, values: out}
}

// String renders the series compactly, e.g. series(area: [1, 2.5, 3]).
func (s *Series) String() string {
	var b strings.Builder
	b.WriteString("series(")
	if s.name != "" {
		b.WriteString(s.name)
		b.WriteString(": ")
	}
	b.WriteByte('[')
	for i, v := range s.values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteString("])")
	return b.String()
}
