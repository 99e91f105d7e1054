// Package lang defines the snippet language: its tokens, syntax tree
// and parser.
//
// The language is a small line-oriented expression language for data
// analysis. A snippet is a sequence of statements separated by
// newlines (or semicolons). There are three statement forms:
//
//	use frames          # bind a named module
//	parks = expr        # bind the value of an expression to a name
//	expr                # evaluate an expression
//
// Expressions cover literals (integers, floats, single or double
// quoted strings, true, false, nil, lists), arithmetic and comparison
// operators, boolean operators (and/or/not, also spelled &&, ||, !),
// attribute access, indexing and calls. Comments run from '#' to the
// end of the line. There are no loops, no user-defined functions and
// no I/O constructs.
//
// Usage:
//
//	prog, err := lang.Parse(`use frames
//	parks = frames.frame(data.features).filter("kind", "==", "park")
//	parks.count()`)
//	if err != nil {
//		// syntax error with line and column
//	}
//
// The parser fails fast and reports positions as line:column, both
// 1-based. Use Inspect to walk a parsed tree, for example to vet
// module references before evaluation.
package lang
