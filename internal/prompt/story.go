package prompt

import (
	"fmt"
	"strings"
)

// Story step bounds.
const (
	MinStorySteps     = 2
	MaxStorySteps     = 8
	DefaultStorySteps = 4
)

// StoryOptions controls a story sequence.
type StoryOptions struct {
	Steps      int
	Type       string // story, process, tutorial, timeline
	Style      string // art style carried across story steps
	Transition string // smooth, dramatic, fade
	Layout     string // separate, grid, comic
}

// WithDefaults fills unset story options. Steps is left alone when set so
// that out-of-range values still reach validation.
func (o StoryOptions) WithDefaults() StoryOptions {
	if o.Steps == 0 {
		o.Steps = DefaultStorySteps
	}
	o.Type = orDefault(o.Type, "story")
	o.Style = orDefault(o.Style, "consistent")
	o.Transition = orDefault(o.Transition, "smooth")
	o.Layout = orDefault(o.Layout, "separate")
	return o
}

// StepPrompt builds the prompt for step (1-based) of a sequence.
func StepPrompt(base string, opts StoryOptions, step int) string {
	opts = opts.WithDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "%s, step %d of %d", base, step, opts.Steps)
	switch opts.Type {
	case "process":
		b.WriteString(", procedural step, instructional illustration")
	case "tutorial":
		b.WriteString(", tutorial step, educational diagram")
	case "timeline":
		b.WriteString(", chronological progression, timeline visualization")
	default:
		fmt.Fprintf(&b, ", narrative sequence, %s art style", opts.Style)
	}
	if step > 1 {
		fmt.Fprintf(&b, ", %s transition from previous step", opts.Transition)
	}
	if opts.Layout == "grid" || opts.Layout == "comic" {
		fmt.Fprintf(&b, ", %s panel layout", opts.Layout)
	}
	return b.String()
}

// StepFilenameText is the text a step's output filename is derived from. It
// encodes the sequence type, the step number and the base prompt.
func StepFilenameText(base string, opts StoryOptions, step int) string {
	opts = opts.WithDefaults()
	return fmt.Sprintf("%s step%d %s", opts.Type, step, base)
}
