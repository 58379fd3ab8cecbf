package generation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ironsheep/image-gen-mcp/internal/prompt"
)

// Mode selects the generation flow.
type Mode string

// Generation modes.
const (
	ModeGenerate Mode = "generate"
	ModeEdit     Mode = "edit"
	ModeRestore  Mode = "restore"
)

// Output file formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// Request is one generate, edit or restore invocation.
type Request struct {
	Prompt string `json:"prompt" validate:"required"`
	Mode   Mode   `json:"mode" validate:"oneof=generate edit restore"`

	// OutputCount is the number of images wanted. Zero means unspecified.
	OutputCount int      `json:"outputCount" validate:"omitempty,min=1,max=8"`
	Styles      []string `json:"styles"`
	Variations  []string `json:"variations"`
	Seed        *int64   `json:"seed"`

	// InputImage names the source image for edit and restore.
	InputImage string `json:"inputImage" validate:"required_unless=Mode generate"`
	FileFormat string `json:"fileFormat" validate:"omitempty,oneof=png jpeg"`
	// Layout is the requested arrangement (separate, grid). Informational.
	Layout string `json:"format"`

	Preview         bool `json:"preview"`
	SuppressPreview bool `json:"noPreview"`

	// Prompts replaces prompt compilation with a prebuilt list.
	Prompts []string `json:"-" validate:"omitempty,dive,required"`
	// Labels are the texts output filenames derive from, parallel to the
	// prompts. Missing entries fall back to the prompt itself.
	Labels []string `json:"-"`
}

// StoryRequest is a story sequence invocation. Steps of zero means the
// default step count.
type StoryRequest struct {
	Prompt     string `json:"prompt" validate:"required"`
	Steps      int    `json:"steps" validate:"min=2,max=8"`
	Type       string `json:"type" validate:"omitempty,oneof=story process tutorial timeline"`
	Style      string `json:"style"`
	Transition string `json:"transition"`
	Layout     string `json:"layout"`
	Seed       *int64 `json:"seed"`
	FileFormat string `json:"fileFormat" validate:"omitempty,oneof=png jpeg"`

	Preview         bool `json:"preview"`
	SuppressPreview bool `json:"noPreview"`
}

// Options returns the prompt options for the sequence.
func (r StoryRequest) Options() prompt.StoryOptions {
	return prompt.StoryOptions{
		Steps:      r.Steps,
		Type:       r.Type,
		Style:      r.Style,
		Transition: r.Transition,
		Layout:     r.Layout,
	}.WithDefaults()
}

// Result is the outcome reported back to the caller. Success is true exactly
// when GeneratedFiles is non-empty.
type Result struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	GeneratedFiles []string `json:"generatedFiles"`
	Error          string   `json:"error,omitempty"`
}

// ErrInvalidRequest wraps every request validation failure.
var ErrInvalidRequest = errors.New("invalid request")

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validationError turns validator output into a single readable error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "required_unless":
		return fe.Field() + " is required for edit and restore"
	case "min", "max":
		if fe.Field() == "outputCount" || fe.Field() == "steps" {
			lo, hi := 1, 8
			if fe.Field() == "steps" {
				lo = prompt.MinStorySteps
			}
			return fmt.Sprintf("%s must be between %d and %d", fe.Field(), lo, hi)
		}
		return fmt.Sprintf("%s fails %s=%s", fe.Field(), fe.Tag(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s fails %s", fe.Field(), fe.Tag())
	}
}
