// Package main is the entry point for the Snipbox execution worker.
//
// The worker is the child process behind the subprocess executor backend.
// It reads one JSON-encoded worker request from stdin, runs the snippet with
// the in-process executor under the limits carried in the request, and writes
// the JSON result to stdout. Logs go to stderr so stdout stays clean for the
// result.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/isdmx/snipbox/logger"
	"github.com/isdmx/snipbox/sandbox"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	log, err := logger.New("production", "warn")
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var req sandbox.WorkerRequest
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}

	executor := sandbox.NewInterpExecutor(log, &sandbox.Config{
		TimeoutSec:     req.TimeoutSec,
		MaxSteps:       req.MaxSteps,
		MaxOutputKB:    req.MaxOutputKB,
		AllowedModules: req.AllowedModules,
	})

	result, err := executor.Execute(context.Background(), sandbox.ExecuteRequest{
		Snippet: req.Snippet,
		Data:    req.Data,
	})
	if err != nil {
		// The parent treats any reply as authoritative, so invalid
		// requests come back as failed results, not a broken pipe.
		result = sandbox.ExecuteResult{Success: false, Error: err.Error()}
	}

	if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	return nil
}
