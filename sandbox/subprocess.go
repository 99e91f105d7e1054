// Package sandbox provides the snippet execution engine.
//
// The SubprocessExecutor runs each snippet in a separate worker process,
// so a crashed or wedged execution is contained by the operating system
// instead of sharing the host's address space.
package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// workerGrace is added to the parent's deadline so the worker's own
// timeout can fire and report before the parent kills it.
const workerGrace = 2 * time.Second

// WorkerRequest is the wire form of an execution handed to the worker
// process: the request plus the limits the worker must enforce.
type WorkerRequest struct {
	Snippet        string         `json:"snippet"`
	Data           map[string]any `json:"data,omitempty"`
	TimeoutSec     int            `json:"timeout_sec"`
	MaxSteps       int            `json:"max_steps"`
	MaxOutputKB    int            `json:"max_output_kb"`
	AllowedModules []string       `json:"allowed_modules"`
}

// SubprocessExecutor implements Executor by spawning a worker process per
// execution. The request travels as JSON on the worker's stdin and the
// result comes back as JSON on its stdout.
type SubprocessExecutor struct {
	logger    *zap.Logger
	config    *Config
	cmdRunner CommandRunner
}

// SubprocessExecutorOption defines a functional option for SubprocessExecutor
type SubprocessExecutorOption func(*SubprocessExecutor)

// WithCommandRunner sets the CommandRunner for SubprocessExecutor
func WithCommandRunner(cmdRunner CommandRunner) SubprocessExecutorOption {
	return func(s *SubprocessExecutor) {
		s.cmdRunner = cmdRunner
	}
}

// NewSubprocessExecutor creates a new SubprocessExecutor with default
// implementations and optional interfaces
func NewSubprocessExecutor(logger *zap.Logger, config *Config, opts ...SubprocessExecutorOption) *SubprocessExecutor {
	executor := &SubprocessExecutor{
		logger:    logger,
		config:    config,
		cmdRunner: &RealCommandRunner{}, // Default implementation
	}

	// Apply options
	for _, opt := range opts {
		opt(executor)
	}

	return executor
}

// Execute runs one snippet in a worker process. A worker that exits
// nonzero or overruns its deadline becomes a failed result; spawn and
// decode problems are returned as errors.
func (s *SubprocessExecutor) Execute(ctx context.Context, req ExecuteRequest) (ExecuteResult, error) {
	if req.Snippet == "" {
		return ExecuteResult{}, fmt.Errorf("snippet must not be empty")
	}

	id := uuid.NewString()
	start := time.Now()
	s.logger.Info("execution started",
		zap.String("execution_id", id),
		zap.String("worker", s.config.WorkerPath),
		zap.Int("snippet_len", len(req.Snippet)))

	payload, err := json.Marshal(WorkerRequest{
		Snippet:        req.Snippet,
		Data:           req.Data,
		TimeoutSec:     s.config.TimeoutSec,
		MaxSteps:       s.config.MaxSteps,
		MaxOutputKB:    s.config.MaxOutputKB,
		AllowedModules: s.config.AllowedModules,
	})
	if err != nil {
		return ExecuteResult{}, fmt.Errorf("failed to encode worker request: %w", err)
	}

	// The worker enforces the execution timeout itself; the deadline here
	// only reaps a worker that stopped responding.
	ctxWithTimeout, cancel := context.WithTimeout(ctx, time.Duration(s.config.TimeoutSec)*time.Second+workerGrace)
	defer cancel()

	stdout, stderr, exitCode, err := s.cmdRunner.RunCommand(ctxWithTimeout, payload, []string{s.config.WorkerPath})

	// If the context timed out, handle it explicitly
	if ctxWithTimeout.Err() == context.DeadlineExceeded {
		s.logger.Warn("worker timed out",
			zap.String("execution_id", id),
			zap.Duration("duration", time.Since(start)))
		return failedResult("execution timed out", ""), nil
	}
	if err != nil {
		return ExecuteResult{}, fmt.Errorf("failed to run worker: %w", err)
	}
	if exitCode != 0 {
		s.logger.Error("worker exited abnormally",
			zap.String("execution_id", id),
			zap.Int("exit_code", exitCode),
			zap.String("stderr", stderr))
		return failedResult(fmt.Sprintf("worker exited with code %d", exitCode), ""), nil
	}

	var result ExecuteResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		return ExecuteResult{}, fmt.Errorf("malformed worker response: %w", err)
	}

	s.logger.Info("execution completed",
		zap.String("execution_id", id),
		zap.Bool("success", result.Success),
		zap.Duration("duration", time.Since(start)))
	return result, nil
}
