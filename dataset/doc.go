// Package dataset provides the tabular data types snippets operate on:
// Frame, an immutable table with named columns, and Series, an
// immutable float64 vector.
//
// Frames are built from records (maps keyed by column name) and
// support the row and column operations an analysis snippet needs:
// filtering, projection, sorting, truncation, concatenation and the
// numeric aggregates sum, mean, min and max. Cells are normalized on
// ingestion: numbers of any width become float64, strings, bools and
// nil pass through, anything else is rejected.
//
// Usage:
//
//	f, err := dataset.FromRecords([]map[string]any{
//		{"name": "Riverside", "kind": "park", "area_sqm": 48200},
//		{"name": "Old Mill", "kind": "industrial", "area_sqm": 12400},
//	})
//	parks, err := f.Filter("kind", "==", "park")
//	total, err := parks.Sum("area_sqm")
//
// All operations return new values; a Frame or Series is never
// modified in place, so handles can be shared across concurrent
// evaluations.
package dataset
