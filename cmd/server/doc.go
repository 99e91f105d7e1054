// Package main is the entry point for the Snipbox MCP server.
//
// The Snipbox server implements a secure, configurable Model Context Protocol
// (MCP) server that runs analysis snippets against in-memory datasets in a
// restricted sandbox. The server supports both stdio and HTTP transports and
// enforces an allow-list of snippet modules plus time, step and output limits
// on every execution.
//
// The application uses Uber's fx framework for dependency injection and
// lifecycle management, with zap for structured logging and viper for
// configuration.
package main
