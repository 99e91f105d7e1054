// Package mcpserver provides the Model Context Protocol (MCP) server implementation.
//
// The mcpserver package implements an MCP-compliant server that exposes tools
// for snippet execution. It uses the mark3labs/mcp-go library to handle the
// protocol details and provides the execute_snippet and execute_query tools
// as the interface for running analysis snippets.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/isdmx/snipbox/config"
	"github.com/isdmx/snipbox/sandbox"
)

// MCPServer represents the MCP server
type MCPServer struct {
	config    *config.Config
	logger    *zap.Logger
	executor  sandbox.Executor
	mcpServer *server.MCPServer
}

// New creates a new MCPServer
func New(cfg *config.Config, logger *zap.Logger, executor sandbox.Executor) (*MCPServer, error) {
	s := &MCPServer{
		config:   cfg,
		logger:   logger,
		executor: executor,
	}

	// Log configuration parameters on startup
	logger.Info("configuration loaded",
		zap.String("server.transport", s.config.Server.Transport),
		zap.Int("server.http_port", s.config.Server.HTTPPort),
		zap.String("executor.backend", s.config.Executor.Backend),
		zap.String("executor.worker_path", s.config.Executor.WorkerPath),
		zap.Int("executor.timeout_sec", s.config.Executor.TimeoutSec),
		zap.Int("executor.max_steps", s.config.Executor.MaxSteps),
		zap.Int("executor.max_output_kb", s.config.Executor.MaxOutputKB),
		zap.Strings("executor.allowed_modules", s.config.Executor.AllowedModules),
		zap.String("logging.mode", s.config.Logging.Mode),
		zap.String("logging.level", s.config.Logging.Level),
	)

	// Create the MCP server
	s.mcpServer = server.NewMCPServer("snipbox-executor", "1.0.0",
		server.WithToolCapabilities(true))

	// Register the snippet tools
	s.registerExecuteSnippetTool()
	s.registerExecuteQueryTool()

	return s, nil
}

// registerExecuteSnippetTool registers the execute_snippet tool
func (s *MCPServer) registerExecuteSnippetTool() {
	tool := mcp.Tool{
		Name:        "execute_snippet",
		Description: "Run an analysis snippet in the restricted sandbox and return the structured result",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"snippet": map[string]any{
					"type":        "string",
					"description": "Snippet source in the analysis language",
				},
				"data": map[string]any{
					"type":        "object",
					"description": "Values bound to the data name inside the snippet (optional)",
				},
			},
			Required: []string{"snippet"},
		},
	}

	s.mcpServer.AddTool(tool, s.handleExecuteSnippet)
}

// registerExecuteQueryTool registers the execute_query tool
func (s *MCPServer) registerExecuteQueryTool() {
	tool := mcp.Tool{
		Name:        "execute_query",
		Description: "Run an analysis snippet and return a single plain-text answer: its result, its printed output, or the error",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"snippet": map[string]any{
					"type":        "string",
					"description": "Snippet source in the analysis language",
				},
				"data": map[string]any{
					"type":        "object",
					"description": "Values bound to the data name inside the snippet (optional)",
				},
			},
			Required: []string{"snippet"},
		},
	}

	s.mcpServer.AddTool(tool, s.handleExecuteQuery)
}

// handleExecuteSnippet handles the execute_snippet tool
func (s *MCPServer) handleExecuteSnippet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Info("snippet execution requested")

	// Extract parameters
	snippet, err := request.RequireString("snippet")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("snippet parameter is required: %v", err)), nil
	}

	data, err := dataArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Execute the snippet
	result, err := s.executor.Execute(ctx, sandbox.ExecuteRequest{
		Snippet: snippet,
		Data:    data,
	})
	if err != nil {
		s.logger.Error("snippet execution failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("execution failed: %v", err)), nil
	}

	// Log execution result
	s.logger.Info("snippet execution completed",
		zap.Bool("success", result.Success),
		zap.Bool("has_result", result.HasResult),
		zap.Int("output_len", len(result.Output)))

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	return mcp.NewToolResultText(string(resultJSON)), nil
}

// handleExecuteQuery handles the execute_query tool
func (s *MCPServer) handleExecuteQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Info("query execution requested")

	// Extract parameters
	snippet, err := request.RequireString("snippet")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("snippet parameter is required: %v", err)), nil
	}

	data, err := dataArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Execute and reduce to a single answer
	answer, err := sandbox.ExecuteQuery(ctx, s.executor, sandbox.ExecuteRequest{
		Snippet: snippet,
		Data:    data,
	})
	if err != nil {
		s.logger.Error("query execution failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("execution failed: %v", err)), nil
	}

	text, err := queryText(answer)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	s.logger.Info("query execution completed", zap.Int("answer_len", len(text)))

	return mcp.NewToolResultText(text), nil
}

// dataArgument extracts the optional data object from the request arguments.
func dataArgument(request mcp.CallToolRequest) (map[string]any, error) {
	raw, ok := request.GetArguments()["data"]
	if !ok || raw == nil {
		return nil, nil
	}

	data, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("data parameter must be an object")
	}
	return data, nil
}

// queryText renders a query answer as plain text. Strings pass through
// as-is; anything else is rendered as JSON.
func queryText(answer any) (string, error) {
	if s, ok := answer.(string); ok {
		return s, nil
	}

	raw, err := json.Marshal(answer)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ServeStdio starts the server on stdio
func (s *MCPServer) ServeStdio() error {
	s.logger.Info("starting MCP server on stdio")
	return server.ServeStdio(s.mcpServer)
}

// ServeHTTP starts the server on HTTP
func (s *MCPServer) ServeHTTP() error {
	port := s.config.Server.HTTPPort
	s.logger.Info("starting MCP server on HTTP", zap.Int("port", port))

	httpServer := server.NewStreamableHTTPServer(s.mcpServer)
	return httpServer.Start(fmt.Sprintf(":%d", port))
}

// GetMCPServer returns the underlying MCP server for fx
func (s *MCPServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}
