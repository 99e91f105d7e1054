// Package sandbox provides the snippet execution engine.
//
// The InterpExecutor runs snippets in-process with the restricted
// interpreter. Every execution gets a fresh environment, a fresh capped
// output buffer, and its own timeout and step quota, so concurrent and
// repeated executions never share state.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isdmx/snipbox/interp"
	"github.com/isdmx/snipbox/lang"
)

// InterpExecutor implements Executor using the in-process interpreter
type InterpExecutor struct {
	logger  *zap.Logger
	config  *Config
	modules map[string]interp.Value
}

// InterpExecutorOption defines a functional option for InterpExecutor
type InterpExecutorOption func(*InterpExecutor)

// WithModules replaces the library handles a snippet can import with `use`.
// Tests use this to substitute fakes for frames and arrays.
func WithModules(modules map[string]interp.Value) InterpExecutorOption {
	return func(e *InterpExecutor) {
		e.modules = modules
	}
}

// NewInterpExecutor creates a new InterpExecutor with the default library
// handles and optional overrides
func NewInterpExecutor(logger *zap.Logger, config *Config, opts ...InterpExecutorOption) *InterpExecutor {
	executor := &InterpExecutor{
		logger:  logger,
		config:  config,
		modules: interp.StandardModules(), // Default handles, can be set via options
	}

	// Apply options
	for _, opt := range opts {
		opt(executor)
	}

	return executor
}

// Execute runs one snippet to completion. Snippet-level problems such as
// syntax errors, safety rejections, runtime faults and exhausted limits
// come back inside the result; the error return is reserved for invalid
// requests.
func (e *InterpExecutor) Execute(ctx context.Context, req ExecuteRequest) (ExecuteResult, error) {
	if req.Snippet == "" {
		return ExecuteResult{}, fmt.Errorf("snippet must not be empty")
	}

	id := uuid.NewString()
	start := time.Now()
	e.logger.Info("execution started",
		zap.String("execution_id", id),
		zap.Int("snippet_len", len(req.Snippet)),
		zap.Bool("has_data", req.Data != nil))

	prog, err := lang.Parse(req.Snippet)
	if err != nil {
		e.logger.Info("execution failed",
			zap.String("execution_id", id),
			zap.String("error", err.Error()),
			zap.Duration("duration", time.Since(start)))
		return failedResult(err.Error(), ""), nil
	}

	if err := CheckSnippet(prog, e.config.AllowedModules); err != nil {
		e.logger.Warn("snippet rejected",
			zap.String("execution_id", id),
			zap.String("violation", err.Error()))
		return failedResult(fmt.Sprintf("unsafe operation: %s", err), ""), nil
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, time.Duration(e.config.TimeoutSec)*time.Second)
	defer cancel()

	// Fresh binding set for this execution. Library handles are deliberately
	// absent: a snippet reaches them only through `use`, which CheckSnippet
	// has already vetted against the allow-list.
	out := newCaptureBuffer(e.config.MaxOutputKB * BytesPerKB)
	env := interp.NewEnvironment()
	interp.InstallBuiltins(env, out)
	if req.Data != nil {
		data, convErr := interp.Convert(req.Data)
		if convErr != nil {
			return ExecuteResult{}, fmt.Errorf("failed to convert data: %w", convErr)
		}
		env.Set("data", data)
	}

	evaluator := interp.NewEvaluator(env, e.modules, e.config.MaxSteps)
	value, hasResult, err := evaluator.Run(ctxWithTimeout, prog)
	if err != nil {
		msg := err.Error()
		// If the context timed out, handle it explicitly
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "execution timed out"
		}
		e.logger.Info("execution failed",
			zap.String("execution_id", id),
			zap.String("error", msg),
			zap.Duration("duration", time.Since(start)))
		return failedResult(msg, out.String()), nil
	}

	result := ExecuteResult{
		Success:   true,
		HasResult: hasResult,
		Output:    out.String(),
	}
	if hasResult {
		result.Result = interp.ToGo(value)
	}

	e.logger.Info("execution completed",
		zap.String("execution_id", id),
		zap.Bool("has_result", hasResult),
		zap.Int("output_len", len(result.Output)),
		zap.Duration("duration", time.Since(start)))
	return result, nil
}

func failedResult(msg, output string) ExecuteResult {
	return ExecuteResult{Success: false, Error: msg, Output: output}
}
