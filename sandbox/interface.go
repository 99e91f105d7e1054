// Package sandbox provides the snippet execution engine.
//
// The sandbox package implements the execution engine for running untrusted
// analysis snippets against a restricted binding set. It supports two
// backends: in-process interpretation and subprocess execution through a
// worker binary.
package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// ExecuteRequest represents the parameters for snippet execution
type ExecuteRequest struct {
	Snippet string         `json:"snippet"`
	Data    map[string]any `json:"data,omitempty"`
}

// ExecuteResult represents the structured outcome of a snippet execution.
// Success implies Error is empty; failure implies HasResult is false and
// Error is non-empty.
type ExecuteResult struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Result    any    `json:"result,omitempty"`
	HasResult bool   `json:"has_result"`
	Output    string `json:"output"`
}

// Executor defines the interface for snippet execution. The error return
// is reserved for invalid requests and backend failures; everything the
// snippet itself does wrong is reported inside the result.
type Executor interface {
	Execute(ctx context.Context, req ExecuteRequest) (ExecuteResult, error)
}

// Config holds the limits and policy shared by the executor backends
type Config struct {
	TimeoutSec     int
	MaxSteps       int
	MaxOutputKB    int
	AllowedModules []string
	WorkerPath     string
}

// Size constants
const BytesPerKB = 1024

// ExecuteQuery runs req and reduces the structured result to a single
// value: "Error: <message>" on failure, the final expression value when
// one is present and not nil, the captured console output otherwise.
func ExecuteQuery(ctx context.Context, executor Executor, req ExecuteRequest) (any, error) {
	result, err := executor.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	switch {
	case !result.Success:
		return fmt.Sprintf("Error: %s", result.Error), nil
	case result.HasResult && result.Result != nil:
		return result.Result, nil
	default:
		return result.Output, nil
	}
}

// CommandRunner defines an interface for executing system commands with
// input on stdin
type CommandRunner interface {
	RunCommand(ctx context.Context, stdin []byte, args []string) (stdout, stderr string, exitCode int, err error)
}

// RealCommandRunner implements CommandRunner using actual exec commands
type RealCommandRunner struct{}

// RunCommand executes the given command with arguments
func (RealCommandRunner) RunCommand(ctx context.Context, stdin []byte, args []string) (stdout, stderr string, exitCode int, err error) {
	if len(args) < 1 {
		return "", "", 0, fmt.Errorf("no command provided")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // Safe as this is controlled input
	cmd.Stdin = bytes.NewReader(stdin)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err = cmd.Run()

	exitCode = 0
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			exitCode = exitError.ExitCode()
		} else {
			return "", "", 0, err
		}
	}

	return stdoutBuf.String(), stderrBuf.String(), exitCode, nil
}
