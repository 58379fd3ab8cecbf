package provider

// Content part types understood by the generation endpoint.
const (
	PartInputText  = "input_text"
	PartInputImage = "input_image"
)

// Payload is the body posted to the generation endpoint.
type Payload struct {
	Model string    `json:"model"`
	Input []Message `json:"input"`
	Seed  *int64    `json:"seed,omitempty"`
}

// Message is a single conversational turn.
type Message struct {
	Role    string      `json:"role"`
	Content []InputPart `json:"content"`
}

// InputPart is either prompt text or an inline image given as a data URL.
type InputPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// NewPayload builds a payload with one user message holding the prompt and
// any input images, in that order.
func NewPayload(model, prompt string, seed *int64, imageDataURLs ...string) *Payload {
	parts := make([]InputPart, 0, 1+len(imageDataURLs))
	parts = append(parts, InputPart{Type: PartInputText, Text: prompt})
	for _, u := range imageDataURLs {
		parts = append(parts, InputPart{Type: PartInputImage, ImageURL: u})
	}
	return &Payload{
		Model: model,
		Input: []Message{{Role: "user", Content: parts}},
		Seed:  seed,
	}
}
