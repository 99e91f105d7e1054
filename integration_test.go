package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/isdmx/snipbox/config"
	"github.com/isdmx/snipbox/logger"
	"github.com/isdmx/snipbox/mcpserver"
	"github.com/isdmx/snipbox/sandbox"
)

func integrationConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Transport: "stdio",
			HTTPPort:  8080,
		},
		Executor: config.ExecutorConfig{
			Backend:        "interp",
			TimeoutSec:     5, // Short timeout for tests
			MaxSteps:       100000,
			MaxOutputKB:    64,
			AllowedModules: []string{"frames", "arrays"},
		},
		Logging: config.LoggingConfig{
			Mode:  "development",
			Level: "info",
		},
	}
}

// TestIntegrationConfigLoggerExecutor tests the integration between config, logger, and sandbox packages
func TestIntegrationConfigLoggerExecutor(t *testing.T) {
	t.Run("ConfigAndLoggerIntegration", func(t *testing.T) {
		cfg := integrationConfig()

		// Create logger using config
		testLogger, err := logger.New(cfg.Logging.Mode, cfg.Logging.Level)
		require.NoError(t, err)
		require.NotNil(t, testLogger)

		// Test that logger works
		testLogger.Info("Integration test started")
		_ = testLogger.Sync()
	})

	t.Run("ConfigLoggerFactoryIntegration", func(t *testing.T) {
		cfg := integrationConfig()

		testLogger, err := logger.New(cfg.Logging.Mode, cfg.Logging.Level)
		require.NoError(t, err)

		// Create snippet executor using config and logger
		executor, err := sandbox.NewExecutor(testLogger, cfg)
		require.NoError(t, err)
		require.NotNil(t, executor)

		// This test mainly verifies that the integration between config/logger/sandbox works
		// without throwing configuration errors
	})

	t.Run("SubprocessFactoryIntegration", func(t *testing.T) {
		cfg := integrationConfig()
		cfg.Executor.Backend = "subprocess"
		cfg.Executor.WorkerPath = "/usr/local/bin/snipbox-worker"

		executor, err := sandbox.NewExecutor(zaptest.NewLogger(t), cfg)
		require.NoError(t, err)
		require.NotNil(t, executor)
	})

	t.Run("UnsupportedBackend", func(t *testing.T) {
		cfg := integrationConfig()
		cfg.Executor.Backend = "docker"

		_, err := sandbox.NewExecutor(zaptest.NewLogger(t), cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported backend")
	})

	t.Run("FullMCPIntegration", func(t *testing.T) {
		cfg := integrationConfig()

		mcpLogger, err := logger.New(cfg.Logging.Mode, cfg.Logging.Level)
		require.NoError(t, err)

		// Create snippet executor
		executor, err := sandbox.NewExecutor(mcpLogger, cfg)
		require.NoError(t, err)

		// Create MCP server
		server, err := mcpserver.New(cfg, mcpLogger, executor)
		require.NoError(t, err)
		require.NotNil(t, server)

		// Test that tools are registered
		mcpServer := server.GetMCPServer()
		require.NotNil(t, mcpServer)
		// Note: We can't easily verify tool registration without mcp library internals
	})
}

// TestIntegrationSnippetExecution runs snippets end to end through a
// factory-built executor.
func TestIntegrationSnippetExecution(t *testing.T) {
	testLogger := zaptest.NewLogger(t)

	newExecutor := func(t *testing.T) sandbox.Executor {
		t.Helper()
		executor, err := sandbox.NewExecutor(testLogger, integrationConfig())
		require.NoError(t, err)
		return executor
	}

	featureData := map[string]any{
		"city": "sendai",
		"features": []any{
			map[string]any{"name": "central park", "kind": "park", "area_sqm": 51.0},
			map[string]any{"name": "harbor green", "kind": "park", "area_sqm": 87.5},
			map[string]any{"name": "riverside depot", "kind": "industrial", "area_sqm": 204.5},
		},
	}

	t.Run("FrameAnalysis", func(t *testing.T) {
		executor := newExecutor(t)

		result, err := executor.Execute(context.Background(), sandbox.ExecuteRequest{
			Snippet: "use frames\n" +
				"f = frames.frame(data.features)\n" +
				"parks = f.filter(\"kind\", \"==\", \"park\")\n" +
				"print(\"parks:\", parks.count())\n" +
				"parks.sum(\"area_sqm\")",
			Data: featureData,
		})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Empty(t, result.Error)
		require.True(t, result.HasResult)
		assert.InDelta(t, 138.5, result.Result, 1e-9)
		assert.Equal(t, "parks: 2\n", result.Output)
	})

	t.Run("SeriesAnalysis", func(t *testing.T) {
		executor := newExecutor(t)

		result, err := executor.Execute(context.Background(), sandbox.ExecuteRequest{
			Snippet: "use arrays\n" +
				"areas = arrays.of(51.0, 87.5, 204.5)\n" +
				"(areas * 2).sum()",
		})
		require.NoError(t, err)

		assert.True(t, result.Success)
		require.True(t, result.HasResult)
		assert.InDelta(t, 686.0, result.Result, 1e-9)
	})

	t.Run("QueryReduction", func(t *testing.T) {
		executor := newExecutor(t)

		t.Run("Result", func(t *testing.T) {
			answer, err := sandbox.ExecuteQuery(context.Background(), executor, sandbox.ExecuteRequest{
				Snippet: "data.city",
				Data:    featureData,
			})
			require.NoError(t, err)
			assert.Equal(t, "sendai", answer)
		})

		t.Run("Output", func(t *testing.T) {
			answer, err := sandbox.ExecuteQuery(context.Background(), executor, sandbox.ExecuteRequest{
				Snippet: "print(\"city is\", data.city)",
				Data:    featureData,
			})
			require.NoError(t, err)
			assert.Equal(t, "city is sendai\n", answer)
		})

		t.Run("Fault", func(t *testing.T) {
			answer, err := sandbox.ExecuteQuery(context.Background(), executor, sandbox.ExecuteRequest{
				Snippet: "use geo",
			})
			require.NoError(t, err)
			assert.Equal(t, `Error: unsafe operation: module "geo" is not allowed`, answer)
		})
	})

	t.Run("StateIsolation", func(t *testing.T) {
		executor := newExecutor(t)

		first, err := executor.Execute(context.Background(), sandbox.ExecuteRequest{
			Snippet: "leaked = 7\nleaked",
		})
		require.NoError(t, err)
		require.True(t, first.Success)

		second, err := executor.Execute(context.Background(), sandbox.ExecuteRequest{
			Snippet: "leaked",
		})
		require.NoError(t, err)
		assert.False(t, second.Success)
		assert.Contains(t, second.Error, `unknown name "leaked"`)
	})
}
