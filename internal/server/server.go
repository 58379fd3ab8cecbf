package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ironsheep/image-gen-mcp/internal/generation"
)

// ProtocolVersion is the MCP protocol revision the server speaks.
const ProtocolVersion = "2024-11-05"

// ServerName is reported in the initialize handshake.
const ServerName = "image-gen-mcp"

// JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeToolFailed     = -32000
	CodeNotInitialized = -32002
)

// maxLineSize bounds a single request line. Edit requests stay small since
// images are referenced by file name, not inlined.
const maxLineSize = 4 * 1024 * 1024

// Generator runs generation flows for the tool handlers.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
	GenerateStory(ctx context.Context, req generation.StoryRequest) (*generation.Result, error)
	Edit(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// Server handles MCP protocol communication
type Server struct {
	gen     Generator
	initErr error
	version string
	log     zerolog.Logger
	in      io.Reader
	out     io.Writer
}

// Option configures a Server.
type Option func(*Server)

// WithInitError makes every tool call fail with err. Used when startup
// could not produce a usable configuration.
func WithInitError(err error) Option {
	return func(s *Server) { s.initErr = err }
}

// WithVersion sets the version reported by initialize.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.in = in
		s.out = out
	}
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server that hands tool calls to gen.
func New(gen Generator, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		gen:     gen,
		version: "dev",
		log:     log.With().Str("component", "server").Logger(),
		in:      os.Stdin,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads newline-delimited requests and writes one response line per
// request. It returns when input ends or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	encoder := json.NewEncoder(s.out)
	s.log.Info().Str("version", s.version).Msg("serving on stdio")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("scanner error: %w", err)
					}
				default:
				}
				s.log.Info().Msg("input closed, shutting down")
				return nil
			}
			if len(strings.TrimSpace(string(line))) == 0 {
				continue
			}

			resp := s.handleLine(ctx, line)
			if resp == nil {
				continue
			}
			if err := encoder.Encode(resp); err != nil {
				s.log.Error().Err(err).Msg("failed to encode response")
			}
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) *MCPResponse {
	var req MCPRequest
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn().Err(err).Msg("failed to parse request")
		return s.errorResponse(nil, CodeParseError, "Parse error", err.Error())
	}
	return s.handleRequest(ctx, &req)
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	}

	// Notifications carry no id and get no reply.
	if strings.HasPrefix(req.Method, "notifications/") {
		s.log.Debug().Str("method", req.Method).Msg("notification")
		return nil
	}
	return s.errorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	if s.initErr != nil {
		s.log.Warn().Err(s.initErr).Msg("initialized without a usable configuration")
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    ServerName,
				"version": s.version,
			},
		},
	}
}

// errorResponse creates a JSON-RPC error response. An empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}
