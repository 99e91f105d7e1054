package sandbox

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/isdmx/snipbox/config"
)

// NewExecutor creates an appropriate snippet executor based on the configuration
func NewExecutor(logger *zap.Logger, cfg *config.Config) (Executor, error) {
	executorConfig := Config{
		TimeoutSec:     cfg.Executor.TimeoutSec,
		MaxSteps:       cfg.Executor.MaxSteps,
		MaxOutputKB:    cfg.Executor.MaxOutputKB,
		AllowedModules: cfg.Executor.AllowedModules,
		WorkerPath:     cfg.Executor.WorkerPath,
	}

	switch cfg.Executor.Backend {
	case "interp":
		return NewInterpExecutor(logger, &executorConfig), nil
	case "subprocess":
		return NewSubprocessExecutor(logger, &executorConfig), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Executor.Backend)
	}
}
