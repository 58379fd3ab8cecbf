package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ironsheep/image-gen-mcp/internal/classify"
	"github.com/ironsheep/image-gen-mcp/internal/extract"
	"github.com/ironsheep/image-gen-mcp/internal/files"
	"github.com/ironsheep/image-gen-mcp/internal/imaging"
	"github.com/ironsheep/image-gen-mcp/internal/prompt"
	"github.com/ironsheep/image-gen-mcp/internal/provider"
)

// ErrNoImage is an item failure where the provider replied without any
// usable image.
var ErrNoImage = errors.New("no image data found in provider response")

// Poster sends a payload to the provider.
type Poster interface {
	Post(ctx context.Context, path string, payload *provider.Payload) (*provider.Response, error)
}

// FileStore persists generated images under collision-free names.
type FileStore interface {
	Save(promptText, format string, index int, data []byte) (string, error)
}

// InputResolver locates input images for edits.
type InputResolver interface {
	FindInputFile(name string) files.Resolution
}

// Previewer opens generated files for viewing. It must not fail the caller.
type Previewer interface {
	Open(ctx context.Context, paths []string)
}

// Options configures an Orchestrator.
type Options struct {
	Model string
	Path  string
	// MinInterval spaces consecutive provider calls. Zero disables pacing.
	MinInterval time.Duration

	Poster    Poster
	Store     FileStore
	Resolver  InputResolver
	Previewer Previewer
}

// Orchestrator runs generation flows. It keeps no state between calls.
type Orchestrator struct {
	model     string
	path      string
	interval  time.Duration
	poster    Poster
	store     FileStore
	resolver  InputResolver
	previewer Previewer
	validate  *validator.Validate
	log       zerolog.Logger
}

// New creates an orchestrator.
func New(opts Options, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		model:     opts.Model,
		path:      opts.Path,
		interval:  opts.MinInterval,
		poster:    opts.Poster,
		store:     opts.Store,
		resolver:  opts.Resolver,
		previewer: opts.Previewer,
		validate:  newValidator(),
		log:       log.With().Str("component", "generation").Logger(),
	}
}

// item is one unit of a batch.
type item struct {
	prompt string
	label  string
	index  int
}

// Generate runs a generate request: one provider call per compiled prompt.
// The returned error is non-nil only for an invalid request.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Mode == "" {
		req.Mode = ModeGenerate
	}
	if err := o.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if req.Mode != ModeGenerate {
		return o.Edit(ctx, req)
	}

	prompts := req.Prompts
	if len(prompts) == 0 {
		prompts = prompt.Compile(req.Prompt, req.Styles, req.Variations, req.OutputCount)
	}
	items := make([]item, len(prompts))
	for i, p := range prompts {
		label := p
		if i < len(req.Labels) && req.Labels[i] != "" {
			label = req.Labels[i]
		}
		items[i] = item{prompt: p, label: label, index: i + 1}
	}

	log := o.logger(ctx)
	log.Info().
		Int("prompts", len(items)).
		Strs("styles", req.Styles).
		Strs("variations", req.Variations).
		Str("layout", req.Layout).
		Msg("generating images")

	batch := o.runBatch(ctx, items, req.Seed, fileFormat(req.FileFormat))
	res := batchResult(batch, "image", "images", "Image generation failed")
	o.maybePreview(ctx, req.Preview, req.SuppressPreview, res.GeneratedFiles)
	return res, nil
}

// GenerateStory runs a story sequence. Each step's prompt carries its
// position and, after the first, a transition clause.
func (o *Orchestrator) GenerateStory(ctx context.Context, req StoryRequest) (*Result, error) {
	if req.Steps == 0 {
		req.Steps = prompt.DefaultStorySteps
	}
	if err := o.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	opts := req.Options()

	items := make([]item, opts.Steps)
	for i := range items {
		step := i + 1
		items[i] = item{
			prompt: prompt.StepPrompt(req.Prompt, opts, step),
			label:  prompt.StepFilenameText(req.Prompt, opts, step),
			index:  step,
		}
	}

	o.logger(ctx).Info().
		Int("steps", opts.Steps).
		Str("type", opts.Type).
		Str("layout", opts.Layout).
		Msg("generating story sequence")

	batch := o.runBatch(ctx, items, req.Seed, fileFormat(req.FileFormat))

	var res *Result
	switch {
	case !batch.Succeeded():
		res = failure("Story generation failed", batch.ErrorMessage())
	case batch.Complete():
		res = &Result{
			Success:        true,
			Message:        fmt.Sprintf("Successfully generated complete %s sequence with %d steps", opts.Type, opts.Steps),
			GeneratedFiles: batch.Files,
		}
	default:
		res = &Result{
			Success:        true,
			Message:        fmt.Sprintf("Generated %d out of %d %s steps. %s", len(batch.Files), opts.Steps, opts.Type, batch.FailureDetail()),
			GeneratedFiles: batch.Files,
		}
	}
	o.maybePreview(ctx, req.Preview, req.SuppressPreview, res.GeneratedFiles)
	return res, nil
}

// Edit runs an edit or restore request: the input image is resolved, sent
// along with the prompt, and exactly one image is expected back.
func (o *Orchestrator) Edit(ctx context.Context, req Request) (*Result, error) {
	if req.Mode == "" || req.Mode == ModeGenerate {
		req.Mode = ModeEdit
	}
	if err := o.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	log := o.logger(ctx).With().Str("mode", string(req.Mode)).Logger()

	verb, failedMsg := "edited", "Image edit failed"
	if req.Mode == ModeRestore {
		verb, failedMsg = "restored", "Image restoration failed"
	}

	found := o.resolver.FindInputFile(req.InputImage)
	if !found.Found {
		log.Warn().Str("file", req.InputImage).Strs("searched", found.SearchedPaths).Msg("input image not found")
		return failure("Input image not found",
			fmt.Sprintf("could not find %q; searched: %s", req.InputImage, strings.Join(found.SearchedPaths, ", "))), nil
	}

	dataURL, err := imaging.LoadDataURL(found.Path)
	if err != nil {
		return failure(failedMsg, fmt.Sprintf("could not read input image %s: %v", found.Path, err)), nil
	}
	log.Info().Str("input", found.Path).Msg("sending image for " + string(req.Mode))

	it := item{prompt: req.Prompt, label: verb + " " + req.Prompt, index: 1}
	batch := o.runBatch(ctx, []item{it}, req.Seed, fileFormat(req.FileFormat), dataURL)
	if !batch.Succeeded() {
		return failure(failedMsg, batch.ErrorMessage()), nil
	}

	res := &Result{
		Success:        true,
		Message:        fmt.Sprintf("Successfully %s image", verb),
		GeneratedFiles: batch.Files,
	}
	o.maybePreview(ctx, req.Preview, req.SuppressPreview, res.GeneratedFiles)
	return res, nil
}

// runBatch issues items strictly in order, folding each outcome into the
// batch and stopping early when the fold says so.
func (o *Orchestrator) runBatch(ctx context.Context, items []item, seed *int64, format string, images ...string) Batch {
	log := o.logger(ctx)

	var limiter *rate.Limiter
	if o.interval > 0 {
		limiter = rate.NewLimiter(rate.Every(o.interval), 1)
	}

	batch := NewBatch(len(items))
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Int("attempted", batch.Attempted).Msg("context done, skipping remaining items")
			return batch.Stop(err)
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				log.Warn().Err(err).Int("attempted", batch.Attempted).Msg("pacing interrupted, skipping remaining items")
				return batch.Stop(err)
			}
		}

		path, err := o.generateOne(ctx, it, seed, format, images)
		var c *classify.Classified
		batch, c = batch.Step(path, err)
		if c != nil {
			log.Warn().
				Err(err).
				Int("item", it.index).
				Str("kind", string(c.Kind)).
				Msg("item failed")
		} else {
			log.Info().Int("item", it.index).Str("path", path).Msg("image saved")
		}

		if batch.ShouldAbort() {
			log.Warn().
				Int("attempted", batch.Attempted).
				Int("total", batch.Total).
				Str("kind", string(batch.Abort.Kind)).
				Msg("batch stopped, skipping remaining items")
			break
		}
	}
	return batch
}

func (o *Orchestrator) generateOne(ctx context.Context, it item, seed *int64, format string, images []string) (string, error) {
	log := o.logger(ctx).With().Int("item", it.index).Logger()

	payload := provider.NewPayload(o.model, it.prompt, seed, images...)
	resp, err := o.poster.Post(ctx, o.path, payload)
	if err != nil {
		return "", err
	}

	img, ok := extract.Extract(resp)
	if !ok {
		if resp.Shape() == provider.ShapeError && resp.Error.Message != "" {
			return "", fmt.Errorf("%w: provider reported: %s", ErrNoImage, resp.Error.Message)
		}
		return "", fmt.Errorf("%w (shape %s)", ErrNoImage, resp.Shape())
	}
	log.Debug().Str("strategy", img.Strategy).Int("base64_len", len(img.Base64)).Msg("image extracted")

	data, err := img.Bytes()
	if err != nil {
		return "", err
	}

	info, err := imaging.Inspect(data)
	switch {
	case errors.Is(err, imaging.ErrNotImage):
		return "", fmt.Errorf("%w: %v", ErrNoImage, err)
	case err != nil:
		log.Warn().Err(err).Str("content_type", info.ContentType).Msg("image could not be decoded, keeping bytes as received")
	default:
		log.Debug().Str("format", info.Format).Int("width", info.Width).Int("height", info.Height).Msg("image decoded")
		if !imaging.MatchesFormat(info, format) {
			log.Info().Str("requested", format).Str("actual", info.Format).Msg("provider returned a different format than requested")
		}
	}

	return o.store.Save(it.label, format, it.index, data)
}

func (o *Orchestrator) maybePreview(ctx context.Context, preview, suppress bool, paths []string) {
	if !preview || suppress || len(paths) == 0 || o.previewer == nil {
		return
	}
	o.previewer.Open(ctx, paths)
}

// logger prefers the request-scoped logger carried by ctx.
func (o *Orchestrator) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &o.log
}

func batchResult(b Batch, singular, plural, failedMsg string) *Result {
	if !b.Succeeded() {
		return failure(failedMsg, b.ErrorMessage())
	}
	if b.Complete() {
		msg := fmt.Sprintf("Successfully generated %d %s", len(b.Files), plural)
		if b.Total == 1 {
			msg = "Successfully generated " + singular
		}
		return &Result{Success: true, Message: msg, GeneratedFiles: b.Files}
	}
	return &Result{
		Success:        true,
		Message:        fmt.Sprintf("Generated %d out of %d %s. %s", len(b.Files), b.Total, plural, b.FailureDetail()),
		GeneratedFiles: b.Files,
	}
}

func failure(message, errMsg string) *Result {
	return &Result{
		Success:        false,
		Message:        fmt.Sprintf("%s: %s", message, errMsg),
		GeneratedFiles: []string{},
		Error:          errMsg,
	}
}

func fileFormat(f string) string {
	if f == "" {
		return FormatPNG
	}
	return f
}
