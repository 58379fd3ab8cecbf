package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ironsheep/image-gen-mcp/internal/generation"
	"github.com/ironsheep/image-gen-mcp/internal/prompt"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "generate_image", "edit_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errInvalidArgs marks argument errors detected before generation starts.
var errInvalidArgs = errors.New("invalid arguments")

// errUnknownTool is returned for tool names the server does not expose.
var errUnknownTool = errors.New("unknown tool")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// A successful result is wrapped in MCP's content format as a single text
// block listing the generated files:
//
//	{
//	  "content": [{"type": "text", "text": "<message>\n\nGenerated files:\n• <path>"}]
//	}
//
// A failed generation returns a JSON-RPC error with code -32000, the
// result message as message and the underlying error as data.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	if s.initErr != nil {
		return s.errorResponse(req.ID, CodeNotInitialized, "Server not initialized", s.initErr.Error())
	}

	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	log := s.log.With().
		Str("call_id", uuid.NewString()).
		Str("tool", params.Name).
		Logger()
	ctx = log.WithContext(ctx)
	log.Info().Msg("tool call")

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	switch {
	case errors.Is(err, errUnknownTool):
		return s.errorResponse(req.ID, CodeInvalidParams, "Unknown tool", err.Error())
	case errors.Is(err, errInvalidArgs), errors.Is(err, generation.ErrInvalidRequest):
		log.Warn().Err(err).Msg("rejected arguments")
		return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
	case err != nil:
		log.Error().Err(err).Msg("tool failed")
		return s.errorResponse(req.ID, CodeToolFailed, "Tool execution failed", err.Error())
	}

	if !result.Success {
		log.Warn().Str("error", result.Error).Msg("generation failed")
		return s.errorResponse(req.ID, CodeToolFailed, result.Message, result.Error)
	}

	log.Info().Int("files", len(result.GeneratedFiles)).Msg("tool call complete")
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": formatResult(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler decodes its arguments, builds a generation request
// (compiling preset prompts where the tool has one) and runs it.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (*generation.Result, error) {
	switch name {
	case ToolGenerateImage:
		return s.handleGenerateImage(ctx, args)
	case ToolEditImage:
		return s.handleEditImage(ctx, args, generation.ModeEdit)
	case ToolRestoreImage:
		return s.handleEditImage(ctx, args, generation.ModeRestore)
	case ToolGenerateIcon:
		return s.handleGenerateIcon(ctx, args)
	case ToolGeneratePattern:
		return s.handleGeneratePattern(ctx, args)
	case ToolGenerateStory:
		return s.handleGenerateStory(ctx, args)
	case ToolGenerateDiagram:
		return s.handleGenerateDiagram(ctx, args)
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownTool, name)
	}
}

// formatResult renders a result as the text block returned to the client.
func formatResult(r *generation.Result) string {
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString("\n\nGenerated files:\n")
	if len(r.GeneratedFiles) == 0 {
		b.WriteString("None")
		return b.String()
	}
	for i, p := range r.GeneratedFiles {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("• " + p)
	}
	return b.String()
}

// decodeArgs unmarshals tool arguments. Missing arguments decode as an
// empty object so that required-field checks report the real problem.
func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}

func (s *Server) handleGenerateImage(ctx context.Context, raw json.RawMessage) (*generation.Result, error) {
	var args generateImageArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.gen.Generate(ctx, generation.Request{
		Prompt:          args.Prompt,
		Mode:            generation.ModeGenerate,
		OutputCount:     args.OutputCount,
		Styles:          args.Styles,
		Variations:      args.Variations,
		Seed:            args.Seed,
		FileFormat:      args.FileFormat,
		Layout:          args.Format,
		Preview:         args.Preview,
		SuppressPreview: args.NoPreview,
	})
}

func (s *Server) handleEditImage(ctx context.Context, raw json.RawMessage, mode generation.Mode) (*generation.Result, error) {
	var args editImageArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.gen.Edit(ctx, generation.Request{
		Prompt:          args.Prompt,
		Mode:            mode,
		InputImage:      args.File,
		Seed:            args.Seed,
		FileFormat:      args.FileFormat,
		Preview:         args.Preview,
		SuppressPreview: args.NoPreview,
	})
}

func (s *Server) handleGenerateIcon(ctx context.Context, raw json.RawMessage) (*generation.Result, error) {
	var args generateIconArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if len(args.Sizes) > prompt.MaxOutputCount {
		return nil, fmt.Errorf("%w: at most %d sizes per call", errInvalidArgs, prompt.MaxOutputCount)
	}
	for _, size := range args.Sizes {
		if size <= 0 {
			return nil, fmt.Errorf("%w: icon size must be positive, got %d", errInvalidArgs, size)
		}
	}

	opts := prompt.IconOptions{
		Type:       args.Type,
		Style:      args.Style,
		Background: args.Background,
		Corners:    args.Corners,
	}
	sizes := args.Sizes
	if len(sizes) == 0 {
		sizes = []int{prompt.DefaultIconSize}
	}
	labels := make([]string, len(sizes))
	for i, size := range sizes {
		labels[i] = fmt.Sprintf("%s icon %dx%d", args.Prompt, size, size)
	}

	return s.gen.Generate(ctx, generation.Request{
		Prompt:          args.Prompt,
		Mode:            generation.ModeGenerate,
		Prompts:         prompt.IconPrompts(args.Prompt, opts, sizes),
		Labels:          labels,
		FileFormat:      args.Format,
		Preview:         args.Preview,
		SuppressPreview: args.NoPreview,
	})
}

func (s *Server) handleGeneratePattern(ctx context.Context, raw json.RawMessage) (*generation.Result, error) {
	var args generatePatternArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	opts := prompt.PatternOptions{
		Size:    args.Size,
		Type:    args.Type,
		Style:   args.Style,
		Density: args.Density,
		Colors:  args.Colors,
		Repeat:  args.Repeat,
	}
	return s.gen.Generate(ctx, generation.Request{
		Prompt:          args.Prompt,
		Mode:            generation.ModeGenerate,
		Prompts:         []string{prompt.PatternPrompt(args.Prompt, opts)},
		Labels:          []string{"pattern " + args.Prompt},
		Preview:         args.Preview,
		SuppressPreview: args.NoPreview,
	})
}

func (s *Server) handleGenerateStory(ctx context.Context, raw json.RawMessage) (*generation.Result, error) {
	var args generateStoryArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.gen.GenerateStory(ctx, generation.StoryRequest{
		Prompt:          args.Prompt,
		Steps:           args.Steps,
		Type:            args.Type,
		Style:           args.Style,
		Transition:      args.Transition,
		Layout:          args.Layout,
		Seed:            args.Seed,
		FileFormat:      args.Format,
		Preview:         args.Preview,
		SuppressPreview: args.NoPreview,
	})
}

func (s *Server) handleGenerateDiagram(ctx context.Context, raw json.RawMessage) (*generation.Result, error) {
	var args generateDiagramArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	opts := prompt.DiagramOptions{
		Type:        args.Type,
		Style:       args.Style,
		Layout:      args.Layout,
		Complexity:  args.Complexity,
		Colors:      args.Colors,
		Annotations: args.Annotations,
	}.WithDefaults()
	return s.gen.Generate(ctx, generation.Request{
		Prompt:          args.Prompt,
		Mode:            generation.ModeGenerate,
		Prompts:         []string{prompt.DiagramPrompt(args.Prompt, opts)},
		Labels:          []string{opts.Type + " diagram " + args.Prompt},
		Preview:         args.Preview,
		SuppressPreview: args.NoPreview,
	})
}
