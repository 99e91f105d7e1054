package dataset

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Frame is an immutable table of rows with named columns. Cells hold
// float64, string, bool or nil; numeric inputs of any width are
// normalized to float64 on ingestion. Every operation returns a new
// frame and leaves the receiver untouched.
type Frame struct {
	columns []string
	rows    [][]any
}

// FromRecords builds a frame from a list of records. The column set is
// the union of all record keys, ordered alphabetically; cells missing
// from a record are nil.
func FromRecords(records []map[string]any) (*Frame, error) {
	seen := map[string]struct{}{}
	var columns []string
	for _, rec := range records {
		for k := range rec {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		row := make([]any, len(columns))
		for i, col := range columns {
			v, ok := rec[col]
			if !ok {
				continue
			}
			cell, err := normalizeCell(v)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", col, err)
			}
			row[i] = cell
		}
		rows = append(rows, row)
	}
	return &Frame{columns: columns, rows: rows}, nil
}

// NewFrame builds a frame from explicit columns and rows. Every row
// must have one cell per column.
func NewFrame(columns []string, rows [][]any) (*Frame, error) {
	seen := map[string]struct{}{}
	for _, col := range columns {
		if _, ok := seen[col]; ok {
			return nil, fmt.Errorf("duplicate column %q", col)
		}
		seen[col] = struct{}{}
	}
	cols := slices.Clone(columns)

	out := make([][]any, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(cols))
		}
		cells := make([]any, len(row))
		for j, v := range row {
			cell, err := normalizeCell(v)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", cols[j], err)
			}
			cells[j] = cell
		}
		out = append(out, cells)
	}
	return &Frame{columns: cols, rows: out}, nil
}

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string { return slices.Clone(f.columns) }

// Count returns the number of rows.
func (f *Frame) Count() int { return len(f.rows) }

// Records returns the rows as maps keyed by column name.
func (f *Frame) Records() []map[string]any {
	recs := make([]map[string]any, 0, len(f.rows))
	for _, row := range f.rows {
		rec := make(map[string]any, len(f.columns))
		for i, col := range f.columns {
			rec[col] = row[i]
		}
		recs = append(recs, rec)
	}
	return recs
}

// Filter returns the rows whose cell in column satisfies "cell op
// value". Supported operators are ==, !=, <, <=, >, >= and contains
// (substring match on string cells).
func (f *Frame) Filter(column, op string, value any) (*Frame, error) {
	idx, err := f.columnIndex(column)
	if err != nil {
		return nil, err
	}
	want, err := normalizeCell(value)
	if err != nil {
		return nil, fmt.Errorf("filter value: %w", err)
	}

	var rows [][]any
	for _, row := range f.rows {
		keep, err := matchCell(row[idx], op, want)
		if err != nil {
			return nil, err
		}
		if keep {
			rows = append(rows, row)
		}
	}
	return &Frame{columns: f.columns, rows: rows}, nil
}

func matchCell(cell any, op string, want any) (bool, error) {
	switch op {
	case "==":
		return equalCells(cell, want), nil
	case "!=":
		return !equalCells(cell, want), nil
	case "<", "<=", ">", ">=":
		c, err := compareCells(cell, want)
		if err != nil {
			return false, err
		}
		switch op {
		case "<":
			return c < 0, nil
		case "<=":
			return c <= 0, nil
		case ">":
			return c > 0, nil
		default:
			return c >= 0, nil
		}
	case "contains":
		s, ok := cell.(string)
		sub, ok2 := want.(string)
		if !ok || !ok2 {
			return false, fmt.Errorf("contains requires string values")
		}
		return strings.Contains(s, sub), nil
	default:
		return false, fmt.Errorf("unknown filter operator %q", op)
	}
}

// Select returns a frame with only the named columns, in the given
// order.
func (f *Frame) Select(columns ...string) (*Frame, error) {
	idxs := make([]int, len(columns))
	for i, col := range columns {
		idx, err := f.columnIndex(col)
		if err != nil {
			return nil, err
		}
		idxs[i] = idx
	}
	rows := make([][]any, 0, len(f.rows))
	for _, row := range f.rows {
		cells := make([]any, len(idxs))
		for i, idx := range idxs {
			cells[i] = row[idx]
		}
		rows = append(rows, cells)
	}
	return &Frame{columns: slices.Clone(columns), rows: rows}, nil
}

// Head returns the first n rows.
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > len(f.rows) {
		n = len(f.rows)
	}
	return &Frame{columns: f.columns, rows: f.rows[:n]}
}

// SortBy returns the rows ordered by column. The sort is stable; nil
// cells order before everything else. Mixing numbers and strings in
// the sort column is an error.
func (f *Frame) SortBy(column string, descending bool) (*Frame, error) {
	idx, err := f.columnIndex(column)
	if err != nil {
		return nil, err
	}
	rows := slices.Clone(f.rows)

	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		c, err := orderCells(rows[i][idx], rows[j][idx])
		if err != nil {
			if sortErr == nil {
				sortErr = err
			}
			return false
		}
		if descending {
			return c > 0
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, fmt.Errorf("sort by %q: %w", column, sortErr)
	}
	return &Frame{columns: f.columns, rows: rows}, nil
}

// Column returns the named column as a series. Cells must be numeric;
// nil cells are dropped.
func (f *Frame) Column(column string) (*Series, error) {
	idx, err := f.columnIndex(column)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(f.rows))
	for _, row := range f.rows {
		switch v := row[idx].(type) {
		case float64:
			values = append(values, v)
		case nil:
		default:
			return nil, fmt.Errorf("column %q is not numeric", column)
		}
	}
	return NewSeries(column, values), nil
}

// Sum returns the sum of a numeric column. An empty column sums to 0.
func (f *Frame) Sum(column string) (float64, error) {
	s, err := f.Column(column)
	if err != nil {
		return 0, err
	}
	return s.Sum(), nil
}

// Mean returns the mean of a numeric column.
func (f *Frame) Mean(column string) (float64, error) {
	s, err := f.Column(column)
	if err != nil {
		return 0, err
	}
	m, err := s.Mean()
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", column, err)
	}
	return m, nil
}

// Min returns the smallest value of a numeric column.
func (f *Frame) Min(column string) (float64, error) {
	s, err := f.Column(column)
	if err != nil {
		return 0, err
	}
	m, err := s.Min()
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", column, err)
	}
	return m, nil
}

// Max returns the largest value of a numeric column.
func (f *Frame) Max(column string) (float64, error) {
	s, err := f.Column(column)
	if err != nil {
		return 0, err
	}
	m, err := s.Max()
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", column, err)
	}
	return m, nil
}

// Concat appends the rows of other below f. The result has the union
// of both column sets, ordered alphabetically, with nil for cells a
// side does not have.
func (f *Frame) Concat(other *Frame) *Frame {
	seen := map[string]struct{}{}
	var columns []string
	for _, col := range append(slices.Clone(f.columns), other.columns...) {
		if _, ok := seen[col]; !ok {
			seen[col] = struct{}{}
			columns = append(columns, col)
		}
	}
	sort.Strings(columns)

	remap := func(src *Frame) [][]any {
		idx := make(map[string]int, len(src.columns))
		for i, col := range src.columns {
			idx[col] = i
		}
		rows := make([][]any, 0, len(src.rows))
		for _, row := range src.rows {
			cells := make([]any, len(columns))
			for i, col := range columns {
				if j, ok := idx[col]; ok {
					cells[i] = row[j]
				}
			}
			rows = append(rows, cells)
		}
		return rows
	}
	return &Frame{columns: columns, rows: append(remap(f), remap(other)...)}
}

// String renders the frame as a header line plus one line per row,
// truncated after ten rows.
func (f *Frame) String() string {
	if len(f.columns) == 0 {
		return "frame(empty)"
	}
	const maxRows = 10
	var b strings.Builder
	b.WriteString(strings.Join(f.columns, ", "))
	for i, row := range f.rows {
		if i == maxRows {
			fmt.Fprintf(&b, "\n... (%d more rows)", len(f.rows)-maxRows)
			break
		}
		b.WriteByte('\n')
		for j, cell := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(cellString(cell))
		}
	}
	return b.String()
}

func (f *Frame) columnIndex(column string) (int, error) {
	if i := slices.Index(f.columns, column); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("unknown column %q", column)
}

// normalizeCell coerces a raw input value into one of the four cell
// types. Numeric inputs of any width become float64; strings, bools
// and nil pass through unchanged.
func normalizeCell(v any) (any, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	case string:
		return v, nil
	case float64:
		return v, nil
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("unsupported cell value of type %T", v)
		}
		return f, nil
	}
}

func equalCells(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return false
	}
}

// compareCells orders two cells of the same kind. Numbers order
// numerically, strings lexicographically; anything else is an error.
func compareCells(a, b any) (int, error) {
	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1, nil
			case av > bv:
				return 1, nil
			default:
				return 0, nil
			}
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), nil
		}
	}
	return 0, fmt.Errorf("cannot order %s and %s", cellTypeName(a), cellTypeName(b))
}

// orderCells is compareCells with nil ordering before everything.
func orderCells(a, b any) (int, error) {
	switch {
	case a == nil && b == nil:
		return 0, nil
	case a == nil:
		return -1, nil
	case b == nil:
		return 1, nil
	}
	return compareCells(a, b)
}

func cellString(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func cellTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
