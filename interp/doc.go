// Package interp evaluates parsed analysis snippets.
//
// The interpreter is a small tree walk over the lang syntax tree. All
// evaluation state lives in per-run values (an Environment built fresh
// for each execution, a step counter, the writer behind print), so runs
// never share state. Every node visited counts against a step quota and
// the context is observed at the same points, which keeps a runaway
// snippet from wedging the host.
//
// Host data enters through Convert, which maps Go values (JSON shapes,
// numeric scalars, the dataset handles) onto language values; ToGo maps
// a result value back to plain Go for reporting. StandardModules builds
// the default library handles (frames, arrays) and InstallBuiltins binds
// the ambient functions (print, len, str, type).
package interp
