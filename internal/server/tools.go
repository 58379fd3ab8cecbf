package server

import (
	"github.com/invopop/jsonschema"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// Tool names.
const (
	ToolGenerateImage   = "generate_image"
	ToolEditImage       = "edit_image"
	ToolRestoreImage    = "restore_image"
	ToolGenerateIcon    = "generate_icon"
	ToolGeneratePattern = "generate_pattern"
	ToolGenerateStory   = "generate_story"
	ToolGenerateDiagram = "generate_diagram"
)

type generateImageArgs struct {
	Prompt      string   `json:"prompt" jsonschema:"required,minLength=1" jsonschema_description:"Text description of the image to generate"`
	OutputCount int      `json:"outputCount,omitempty" jsonschema:"minimum=1,maximum=8" jsonschema_description:"Number of images to generate (1-8). Caps the style and variation combinations when those are given"`
	Styles      []string `json:"styles,omitempty" jsonschema_description:"Art styles, one image each: photorealistic, watercolor, oil-painting, sketch, pixel-art, anime, vintage, modern, abstract, minimalist"`
	Variations  []string `json:"variations,omitempty" jsonschema_description:"Variation tags, each doubling the set: lighting, angle, color-palette, composition, mood, season, time-of-day"`
	Format      string   `json:"format,omitempty" jsonschema:"enum=separate,enum=grid" jsonschema_description:"How multiple outputs are arranged"`
	Seed        *int64   `json:"seed,omitempty" jsonschema_description:"Seed for reproducible output"`
	FileFormat  string   `json:"fileFormat,omitempty" jsonschema:"enum=png,enum=jpeg" jsonschema_description:"Output file format (default png)"`
	Preview     bool     `json:"preview,omitempty" jsonschema_description:"Open generated images in the default viewer"`
	NoPreview   bool     `json:"noPreview,omitempty" jsonschema_description:"Never open a viewer, even when preview is set"`
}

type editImageArgs struct {
	Prompt     string `json:"prompt" jsonschema:"required,minLength=1" jsonschema_description:"Instructions describing the change to make"`
	File       string `json:"file" jsonschema:"required,minLength=1" jsonschema_description:"Input image: an absolute path or a file name searched in the working directory, images/, input/, the output directory, Downloads, Desktop and Pictures"`
	Seed       *int64 `json:"seed,omitempty" jsonschema_description:"Seed for reproducible output"`
	FileFormat string `json:"fileFormat,omitempty" jsonschema:"enum=png,enum=jpeg" jsonschema_description:"Output file format (default png)"`
	Preview    bool   `json:"preview,omitempty" jsonschema_description:"Open the result in the default viewer"`
	NoPreview  bool   `json:"noPreview,omitempty" jsonschema_description:"Never open a viewer, even when preview is set"`
}

type generateIconArgs struct {
	Prompt     string `json:"prompt" jsonschema:"required,minLength=1" jsonschema_description:"What the icon depicts"`
	Sizes      []int  `json:"sizes,omitempty" jsonschema:"maxItems=8" jsonschema_description:"Pixel sizes, one icon each (default [256])"`
	Type       string `json:"type,omitempty" jsonschema:"enum=app-icon,enum=favicon,enum=ui-element"`
	Style      string `json:"style,omitempty" jsonschema:"enum=flat,enum=skeuomorphic,enum=minimal,enum=modern"`
	Background string `json:"background,omitempty" jsonschema_description:"transparent, white, black or a color name"`
	Corners    string `json:"corners,omitempty" jsonschema:"enum=rounded,enum=sharp" jsonschema_description:"Corner style for app icons"`
	Format     string `json:"format,omitempty" jsonschema:"enum=png,enum=jpeg" jsonschema_description:"Output file format (default png)"`
	Preview    bool   `json:"preview,omitempty"`
	NoPreview  bool   `json:"noPreview,omitempty"`
}

type generatePatternArgs struct {
	Prompt    string `json:"prompt" jsonschema:"required,minLength=1" jsonschema_description:"Pattern theme"`
	Size      string `json:"size,omitempty" jsonschema_description:"Tile size such as 256x256"`
	Type      string `json:"type,omitempty" jsonschema:"enum=seamless,enum=texture,enum=wallpaper"`
	Style     string `json:"style,omitempty" jsonschema:"enum=geometric,enum=organic,enum=abstract,enum=floral,enum=tech"`
	Density   string `json:"density,omitempty" jsonschema:"enum=sparse,enum=medium,enum=dense"`
	Colors    string `json:"colors,omitempty" jsonschema_description:"mono, duotone, colorful, or hex codes such as #1e90ff,#ff7f50"`
	Repeat    string `json:"repeat,omitempty" jsonschema:"enum=tile,enum=mirror"`
	Preview   bool   `json:"preview,omitempty"`
	NoPreview bool   `json:"noPreview,omitempty"`
}

type generateStoryArgs struct {
	Prompt     string `json:"prompt" jsonschema:"required,minLength=1" jsonschema_description:"What the sequence shows"`
	Steps      int    `json:"steps,omitempty" jsonschema:"minimum=2,maximum=8" jsonschema_description:"Number of steps (default 4)"`
	Type       string `json:"type,omitempty" jsonschema:"enum=story,enum=process,enum=tutorial,enum=timeline"`
	Style      string `json:"style,omitempty" jsonschema_description:"Art style kept across story steps"`
	Transition string `json:"transition,omitempty" jsonschema:"enum=smooth,enum=dramatic,enum=fade"`
	Layout     string `json:"layout,omitempty" jsonschema:"enum=separate,enum=grid,enum=comic"`
	Format     string `json:"format,omitempty" jsonschema:"enum=png,enum=jpeg" jsonschema_description:"Output file format (default png)"`
	Seed       *int64 `json:"seed,omitempty"`
	Preview    bool   `json:"preview,omitempty"`
	NoPreview  bool   `json:"noPreview,omitempty"`
}

type generateDiagramArgs struct {
	Prompt      string `json:"prompt" jsonschema:"required,minLength=1" jsonschema_description:"What the diagram explains"`
	Type        string `json:"type,omitempty" jsonschema:"enum=flowchart,enum=architecture,enum=network,enum=database,enum=wireframe,enum=mindmap,enum=sequence"`
	Style       string `json:"style,omitempty" jsonschema:"enum=professional,enum=clean,enum=hand-drawn,enum=technical"`
	Layout      string `json:"layout,omitempty" jsonschema:"enum=horizontal,enum=vertical,enum=hierarchical,enum=circular"`
	Complexity  string `json:"complexity,omitempty" jsonschema:"enum=simple,enum=detailed,enum=comprehensive"`
	Colors      string `json:"colors,omitempty" jsonschema_description:"mono, accent, categorical, or hex codes"`
	Annotations string `json:"annotations,omitempty" jsonschema:"enum=minimal,enum=detailed"`
	Preview     bool   `json:"preview,omitempty"`
	NoPreview   bool   `json:"noPreview,omitempty"`
}

// inputSchema reflects an argument struct into an object schema.
func inputSchema(v any) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(v)
	s.Version = ""
	s.ID = ""
	return s
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        ToolGenerateImage,
			Description: "Generate one or more images from a text prompt. Styles and variations expand the prompt into a batch of related images; items that fail do not stop the rest.",
			InputSchema: inputSchema(&generateImageArgs{}),
		},
		{
			Name:        ToolEditImage,
			Description: "Edit an existing image following text instructions. The image is located by path or file name.",
			InputSchema: inputSchema(&editImageArgs{}),
		},
		{
			Name:        ToolRestoreImage,
			Description: "Restore or enhance an existing image (remove damage, sharpen, recolor) following text instructions.",
			InputSchema: inputSchema(&editImageArgs{}),
		},
		{
			Name:        ToolGenerateIcon,
			Description: "Generate app icons, favicons or UI element icons, one image per requested size.",
			InputSchema: inputSchema(&generateIconArgs{}),
		},
		{
			Name:        ToolGeneratePattern,
			Description: "Generate a seamless pattern, texture or wallpaper tile.",
			InputSchema: inputSchema(&generatePatternArgs{}),
		},
		{
			Name:        ToolGenerateStory,
			Description: "Generate an ordered sequence of images telling a story or showing a process, one image per step.",
			InputSchema: inputSchema(&generateStoryArgs{}),
		},
		{
			Name:        ToolGenerateDiagram,
			Description: "Generate a technical diagram such as a flowchart, architecture or network diagram.",
			InputSchema: inputSchema(&generateDiagramArgs{}),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
