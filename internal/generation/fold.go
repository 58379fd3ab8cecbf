package generation

import (
	"github.com/ironsheep/image-gen-mcp/internal/classify"
)

// Batch accumulates per-item outcomes of a sequential batch. It holds no
// I/O; the loop driving it decides whether to continue by asking
// ShouldAbort after each step.
type Batch struct {
	Total int
	Files []string

	// First is the first failure seen. Later failures are only logged.
	First *classify.Classified
	// Abort is the failure that stopped the batch, if any.
	Abort *classify.Classified

	Attempted int
}

// NewBatch starts a batch of total items.
func NewBatch(total int) Batch {
	return Batch{Total: total}
}

// Step folds one item outcome into the batch. The returned Classified is
// set when err is non-nil.
func (b Batch) Step(path string, err error) (Batch, *classify.Classified) {
	b.Attempted++
	if err == nil {
		b.Files = append(b.Files, path)
		return b, nil
	}
	c := classify.Classify(err)
	if b.First == nil {
		b.First = &c
	}
	if c.AbortsBatch() {
		b.Abort = &c
	}
	return b, &c
}

// ShouldAbort reports whether the remaining items must be skipped.
func (b Batch) ShouldAbort() bool {
	return b.Abort != nil
}

// Succeeded reports whether at least one item produced a file.
func (b Batch) Succeeded() bool {
	return len(b.Files) > 0
}

// Complete reports whether every item produced a file.
func (b Batch) Complete() bool {
	return len(b.Files) == b.Total
}

// Stop records err as the reason the remaining items were skipped, without
// counting an attempt.
func (b Batch) Stop(err error) Batch {
	c := classify.Classify(err)
	if b.First == nil {
		b.First = &c
	}
	b.Abort = &c
	return b
}

// ErrorMessage is the first failure's message. Later failures, including
// the one that stopped the batch, never replace it.
func (b Batch) ErrorMessage() string {
	if b.First == nil {
		return ""
	}
	return b.First.Message
}

// FailureDetail describes the failures of a partial batch: the first error
// and, when a later failure stopped the batch, that one as well.
func (b Batch) FailureDetail() string {
	detail := "First error: " + b.ErrorMessage()
	if b.Abort != nil && b.Abort != b.First {
		detail += ". Stopped: " + b.Abort.Message
	}
	return detail
}
