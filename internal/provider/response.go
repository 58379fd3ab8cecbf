package provider

import (
	"bytes"
	"encoding/json"
)

// Shape identifies which of the provider's response layouts a body uses.
type Shape int

const (
	// ShapeEmpty is a body with none of the known sections.
	ShapeEmpty Shape = iota
	// ShapeOutput carries an "output" array of content items.
	ShapeOutput
	// ShapeLegacy carries a "data" array of {b64_json|base64|url} entries.
	ShapeLegacy
	// ShapeError carries only an "error" object.
	ShapeError
)

func (s Shape) String() string {
	switch s {
	case ShapeOutput:
		return "output"
	case ShapeLegacy:
		return "legacy"
	case ShapeError:
		return "error"
	default:
		return "empty"
	}
}

// ItemTypeImageGeneration marks an output item produced by the image tool.
const ItemTypeImageGeneration = "image_generation_call"

// Response is a decoded provider body. Output and Data may both be present;
// Shape reports the primary layout.
type Response struct {
	Output []OutputItem  `json:"output,omitempty"`
	Data   []LegacyImage `json:"data,omitempty"`
	Error  *ErrorBody    `json:"error,omitempty"`
}

// Shape classifies the response.
func (r *Response) Shape() Shape {
	switch {
	case r == nil:
		return ShapeEmpty
	case len(r.Output) > 0:
		return ShapeOutput
	case len(r.Data) > 0:
		return ShapeLegacy
	case r.Error != nil:
		return ShapeError
	default:
		return ShapeEmpty
	}
}

// OutputItem is one entry of the "output" array.
type OutputItem struct {
	Type    string      `json:"type"`
	Result  Field       `json:"result"`
	Content ContentList `json:"content"`
}

// IsImageGeneration reports whether the item is an image generation call.
func (o OutputItem) IsImageGeneration() bool {
	return o.Type == ItemTypeImageGeneration
}

// ContentPart is one entry of an output item's "content" array. The four
// candidate fields are listed in the order they are searched.
type ContentPart struct {
	Type      string `json:"type"`
	ImageData Field  `json:"image_data"`
	Result    Field  `json:"result"`
	Data      Field  `json:"data"`
	Text      Field  `json:"text"`
}

// Candidates returns the part's candidate fields in priority order.
func (p ContentPart) Candidates() []Field {
	return []Field{p.ImageData, p.Result, p.Data, p.Text}
}

// ContentList is a "content" array. Non-array content (a bare string, an
// object) decodes to an empty list instead of failing the whole body.
type ContentList []ContentPart

// UnmarshalJSON implements json.Unmarshaler.
func (c *ContentList) UnmarshalJSON(b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 || b[0] != '[' {
		*c = nil
		return nil
	}
	var parts []ContentPart
	if err := json.Unmarshal(b, &parts); err != nil {
		*c = nil
		return nil
	}
	*c = parts
	return nil
}

// LegacyImage is one entry of the legacy "data" array.
type LegacyImage struct {
	B64JSON Field `json:"b64_json"`
	Base64  Field `json:"base64"`
	URL     Field `json:"url"`
}

// ErrorBody is the provider's error object. A bare string is accepted as
// the message.
type ErrorBody struct {
	Message string `json:"message"`
	Code    any    `json:"code,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *ErrorBody) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		e.Message = s
		return nil
	}
	type alias ErrorBody
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return nil
	}
	*e = ErrorBody(a)
	return nil
}

// Field keeps a raw JSON value that is only used when it is a string.
// Provider fields change type between model versions; a non-string value
// must not break decoding of the surrounding body.
type Field struct {
	raw json.RawMessage
}

// StringField builds a Field holding s.
func StringField(s string) Field {
	b, _ := json.Marshal(s)
	return Field{raw: b}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(b []byte) error {
	f.raw = append(f.raw[:0], b...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Field) MarshalJSON() ([]byte, error) {
	if len(f.raw) == 0 {
		return []byte("null"), nil
	}
	return f.raw, nil
}

// Value returns the field's value if it is a non-empty JSON string.
func (f Field) Value() (string, bool) {
	if len(f.raw) == 0 || f.raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(f.raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}
