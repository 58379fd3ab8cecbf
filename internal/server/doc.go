// Package server implements the MCP (Model Context Protocol) server for image generation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes image generation
// through the MCP protocol. Generation itself is delegated to a Generator;
// the server decodes tool arguments, builds requests and formats results.
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
// Notifications (methods under "notifications/") are accepted silently.
//
// # Available Tools
//
//   - generate_image: text to image, with style and variation batches
//   - edit_image: change an existing image following instructions
//   - restore_image: repair or enhance an existing image
//   - generate_icon: app icons and favicons, one per size
//   - generate_pattern: seamless tiles, textures and wallpapers
//   - generate_story: an ordered sequence of step images
//   - generate_diagram: flowcharts, architecture and other diagrams
//
// Input schemas are reflected from the argument structs in tools.go.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses:
//   - -32700: the request line is not JSON
//   - -32601: unknown method
//   - -32602: malformed or invalid tool arguments, unknown tool
//   - -32000: generation failed; message is the result message and data
//     the underlying error
//   - -32002: the server started without a usable configuration (for
//     example, no API key); every tool call fails until restarted
package server
