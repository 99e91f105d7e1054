// Package main is the entry point for the Snipbox execution worker.
//
// The worker is the child process behind the subprocess executor backend.
// It reads one JSON-encoded worker request from stdin, runs the snippet with
// the in-process executor under the limits carried in the request, and writes
// the JSON result to stdout. Logs go to stderr so stdout stays clean for the
// result.
package main
