// Package server implements the MCP (Model Context Protocol) server for image-science.
//
// This package provides a JSON-RPC 2.0 server that exposes the image handle
// operations of package science as MCP tools, so MCP clients can inspect,
// resize and rotate image files.
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
// Image Information:
//   - image_info: Header metadata (size, format, depth, alpha, animation)
//   - image_dimensions: Width and height
//
// Transform Operations:
//   - image_resize: Resize to exact dimensions
//   - image_rotate: Rotate by any angle
//   - image_rotate_jpg: Lossless quarter turn of a JPEG
//   - image_thumbnail: Fit the longer side, optionally square-cropped
//   - image_flip: Mirror horizontally, vertically or about a diagonal
//
// Region Operations:
//   - image_crop: Crop coordinates or a named region, optionally scaled
//
// Tools that produce an image write it to the "output" path through an
// atomic rename; a failed call never leaves a partial file behind.
//
// # Header Cache
//
// image_info and image_dimensions read headers through a 2Q cache keyed by
// path, size and modification time, so a rewritten file is read again.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses with:
//   - code: -32602 (invalid arguments), -32000 (tool execution failure),
//     -32601 (unknown method) or -32700 (unparsable request)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Metrics
//
// Every tool call increments image_science_tool_calls_total{tool,result} and
// observes image_science_tool_call_duration_seconds{tool}. MetricsHandler
// exposes them for scraping.
//
// # Usage
//
//	srv := server.New(server.Config{Version: version, Logger: logger})
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal("server error", zap.Error(err))
//	}
package server
