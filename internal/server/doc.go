// Package server implements an MCP (Model Context Protocol) server for strike
// planning.
//
// The server exposes the optimizer, coverage counting, map generation and
// strike map rendering as MCP tools, so an MCP client can plan strikes on
// target maps without shelling out to the CLIs.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - strike_optimize: Best strike position, count and covered targets
//   - strike_coverage: Targets covered from a given center
//   - strike_generate: Random target map, optionally written to a file
//   - strike_render: Strike map as base64-encoded PNG
//
// Every tool taking a target map accepts either a coordinates file path or an
// inline points array, plus an optional grid_size.
//
// # Target Caching
//
// Coordinates files are parsed once per (path, grid size) and cached for the
// lifetime of the process. strike_generate evicts the file it writes.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000. The message is "Invalid target map" for unreadable, empty or corrupt
// maps and "Tool execution failed" otherwise; data carries the Go error
// string. Each tools/call is logged with a generated call_id.
//
// # Usage
//
//	srv := server.New(cfg, logger)
//	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
//	    logger.Fatal("server error", zap.Error(err))
//	}
package server
