package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesAggregates(t *testing.T) {
	s := NewSeries("area", []float64{4, 1, 3})

	assert.Equal(t, float64(8), s.Sum())

	mean, err := s.Mean()
	require.NoError(t, err)
	assert.InDelta(t, 8.0/3.0, mean, 1e-9)

	min, err := s.Min()
	require.NoError(t, err)
	assert.Equal(t, float64(1), min)

	max, err := s.Max()
	require.NoError(t, err)
	assert.Equal(t, float64(4), max)
}

func TestSeriesEmpty(t *testing.T) {
	s := NewSeries("", nil)

	assert.Zero(t, s.Len())
	assert.Zero(t, s.Sum())

	_, err := s.Mean()
	assert.ErrorContains(t, err, "empty series")
	_, err = s.Min()
	assert.ErrorContains(t, err, "empty series")
	_, err = s.Max()
	assert.ErrorContains(t, err, "empty series")
}

func TestSeriesAt(t *testing.T) {
	s := NewSeries("v", []float64{10, 20})

	v, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, float64(20), v)

	_, err = s.At(2)
	assert.ErrorContains(t, err, "out of range")
	_, err = s.At(-1)
	assert.ErrorContains(t, err, "out of range")
}

func TestSeriesArithmetic(t *testing.T) {
	a := NewSeries("a", []float64{1, 2, 3})
	b := NewSeries("b", []float64{4, 5, 6})

	t.Run("elementwise", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, []float64{5, 7, 9}, sum.Values())

		diff, err := b.Sub(a)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 3, 3}, diff.Values())

		prod, err := a.Mul(b)
		require.NoError(t, err)
		assert.Equal(t, []float64{4, 10, 18}, prod.Values())

		quot, err := b.Div(a)
		require.NoError(t, err)
		assert.Equal(t, []float64{4, 2.5, 2}, quot.Values())
	})

	t.Run("length mismatch", func(t *testing.T) {
		short := NewSeries("", []float64{1})
		_, err := a.Add(short)
		assert.ErrorContains(t, err, "length mismatch")
	})

	t.Run("division by zero element", func(t *testing.T) {
		zero := NewSeries("", []float64{1, 0, 2})
		_, err := a.Div(zero)
		assert.ErrorContains(t, err, "division by zero")
	})

	t.Run("scalar", func(t *testing.T) {
		assert.Equal(t, []float64{11, 12, 13}, a.AddScalar(10).Values())
		assert.Equal(t, []float64{0, 1, 2}, a.SubScalar(1).Values())
		assert.Equal(t, []float64{2, 4, 6}, a.MulScalar(2).Values())

		half, err := a.DivScalar(2)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5, 1, 1.5}, half.Values())

		_, err = a.DivScalar(0)
		assert.ErrorContains(t, err, "division by zero")
	})
}

func TestSeriesImmutable(t *testing.T) {
	input := []float64{1, 2, 3}
	s := NewSeries("v", input)

	input[0] = 99
	assert.Equal(t, []float64{1, 2, 3}, s.Values(), "constructor copies input")

	_ = s.AddScalar(10)
	assert.Equal(t, []float64{1, 2, 3}, s.Values(), "operations leave receiver untouched")

	vs := s.Values()
	vs[0] = 99
	assert.Equal(t, []float64{1, 2, 3}, s.Values(), "Values returns a copy")
}

func TestSeriesString(t *testing.T) {
	assert.Equal(t, "series(area: [1, 2.5, 3])", NewSeries("area", []float64{1, 2.5, 3}).String())
	assert.Equal(t, "series([])", NewSeries("", nil).String())
}
