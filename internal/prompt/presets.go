package prompt

import (
	"fmt"
	"strings"
)

// IconOptions controls the icon preset.
type IconOptions struct {
	Type       string // app-icon, favicon, ui-element
	Style      string // flat, skeuomorphic, minimal, modern
	Background string // transparent, white, black, or a color
	Corners    string // rounded, sharp
}

// PatternOptions controls the pattern preset.
type PatternOptions struct {
	Size    string // tile size, e.g. 256x256
	Type    string // seamless, texture, wallpaper
	Style   string // geometric, organic, abstract, floral, tech
	Density string // sparse, medium, dense
	Colors  string // mono, duotone, colorful, or hex codes
	Repeat  string // tile, mirror
}

// DiagramOptions controls the diagram preset.
type DiagramOptions struct {
	Type        string // flowchart, architecture, network, database, wireframe, mindmap, sequence
	Style       string // professional, clean, hand-drawn, technical
	Layout      string // horizontal, vertical, hierarchical, circular
	Complexity  string // simple, detailed, comprehensive
	Colors      string // mono, accent, categorical, or hex codes
	Annotations string // minimal, detailed
}

// DefaultIconSize is used when an icon request names no sizes.
const DefaultIconSize = 256

// WithDefaults fills unset icon options.
func (o IconOptions) WithDefaults() IconOptions {
	o.Type = orDefault(o.Type, "app-icon")
	o.Style = orDefault(o.Style, "modern")
	o.Background = orDefault(o.Background, "transparent")
	o.Corners = orDefault(o.Corners, "rounded")
	return o
}

// WithDefaults fills unset pattern options.
func (o PatternOptions) WithDefaults() PatternOptions {
	o.Size = orDefault(o.Size, "256x256")
	o.Type = orDefault(o.Type, "seamless")
	o.Style = orDefault(o.Style, "abstract")
	o.Density = orDefault(o.Density, "medium")
	o.Colors = orDefault(o.Colors, "colorful")
	o.Repeat = orDefault(o.Repeat, "tile")
	return o
}

// WithDefaults fills unset diagram options.
func (o DiagramOptions) WithDefaults() DiagramOptions {
	o.Type = orDefault(o.Type, "flowchart")
	o.Style = orDefault(o.Style, "professional")
	o.Layout = orDefault(o.Layout, "hierarchical")
	o.Complexity = orDefault(o.Complexity, "detailed")
	o.Colors = orDefault(o.Colors, "accent")
	o.Annotations = orDefault(o.Annotations, "detailed")
	return o
}

// IconPrompt builds the prompt for one icon at the given pixel size.
//
// Clause order: subject and style, corners (app icons only), background,
// size, closing quality clause.
func IconPrompt(subject string, opts IconOptions, size int) string {
	opts = opts.WithDefaults()
	if size <= 0 {
		size = DefaultIconSize
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s style %s", orDefault(subject, "app icon"), opts.Style, iconNoun(opts.Type))
	if opts.Type == "app-icon" {
		fmt.Fprintf(&b, ", %s corners", opts.Corners)
	}
	fmt.Fprintf(&b, ", %s background", opts.Background)
	fmt.Fprintf(&b, ", %dx%d pixels", size, size)
	b.WriteString(", clean design, sharp edges, high quality, professional")
	return b.String()
}

// IconPrompts builds one icon prompt per requested size, in order.
func IconPrompts(subject string, opts IconOptions, sizes []int) []string {
	if len(sizes) == 0 {
		sizes = []int{DefaultIconSize}
	}
	prompts := make([]string, 0, len(sizes))
	for _, size := range sizes {
		prompts = append(prompts, IconPrompt(subject, opts, size))
	}
	return prompts
}

func iconNoun(iconType string) string {
	switch iconType {
	case "favicon":
		return "favicon"
	case "ui-element":
		return "UI element icon"
	default:
		return "app icon"
	}
}

// PatternPrompt builds the prompt for the pattern preset.
//
// Clause order: subject, style and pattern type, density, color scheme,
// repeat mode (seamless only), tile size, closing quality clause.
func PatternPrompt(subject string, opts PatternOptions) string {
	opts = opts.WithDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s style %s", orDefault(subject, "abstract pattern"), opts.Style, patternPhrase(opts.Type))
	fmt.Fprintf(&b, ", %s element density", opts.Density)
	fmt.Fprintf(&b, ", %s color scheme", DescribePalette(opts.Colors))
	if opts.Type == "seamless" {
		fmt.Fprintf(&b, ", %s repeat", opts.Repeat)
	}
	fmt.Fprintf(&b, ", %s tile size", opts.Size)
	b.WriteString(", high quality digital art")
	return b.String()
}

func patternPhrase(patternType string) string {
	switch patternType {
	case "texture":
		return "texture pattern"
	case "wallpaper":
		return "wallpaper pattern"
	default:
		return "seamless tileable pattern"
	}
}

// DiagramPrompt builds the prompt for the diagram preset.
//
// Clause order: subject, diagram type, style, layout, level of detail, color
// scheme, annotations, closing quality clause.
func DiagramPrompt(subject string, opts DiagramOptions) string {
	opts = opts.WithDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s diagram, %s style, %s layout", subject, opts.Type, opts.Style, opts.Layout)
	fmt.Fprintf(&b, ", %s level of detail", opts.Complexity)
	fmt.Fprintf(&b, ", %s color scheme", DescribePalette(opts.Colors))
	fmt.Fprintf(&b, ", %s annotations and labels", opts.Annotations)
	b.WriteString(", clean technical illustration, clear visual hierarchy")
	return b.String()
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
