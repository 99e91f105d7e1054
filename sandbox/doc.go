// Package sandbox provides the snippet execution engine.
//
// The sandbox package runs untrusted analysis snippets against a bounded
// binding set and reports a structured result. It supports two backends:
// in-process interpretation (the default) and subprocess execution, where
// each snippet runs in a separate worker process.
//
// Every execution is gated by an allow-list safety pre-check over the
// parsed snippet, then bounded by a wall-clock timeout, a step quota and
// an output cap. Nothing a snippet does escapes as an error: syntax
// errors, unsafe constructs, runtime faults and exhausted limits all
// come back inside the ExecuteResult.
//
// Usage:
//
//	executor, err := sandbox.NewExecutor(logger, cfg)
//	result, err := executor.Execute(ctx, sandbox.ExecuteRequest{
//	    Snippet: "use frames\nframes.frame(data.features).count()",
//	    Data:    map[string]any{"features": features},
//	})
package sandbox
