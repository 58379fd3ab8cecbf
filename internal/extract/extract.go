package extract

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ironsheep/image-gen-mcp/internal/provider"
)

// Strategy looks for an image in one region of a response.
type Strategy interface {
	Name() string
	Find(resp *provider.Response) (string, bool)
}

// Image is validated base64 image data and the strategy that found it.
type Image struct {
	Base64   string
	Strategy string
}

// Strategies returns the extraction strategies in the order they are tried.
//
// The first two both read the "output" array. ImageGenerationCall only
// looks at items typed as image generation calls, ContentScan looks at the
// content of every item. Both are kept: responses from different model
// versions are matched by one and not the other.
func Strategies() []Strategy {
	return []Strategy{
		ImageGenerationCall{},
		ContentScan{},
		LegacyData{},
	}
}

// Extract returns the first valid image found by any strategy.
func Extract(resp *provider.Response) (Image, bool) {
	if resp == nil {
		return Image{}, false
	}
	for _, s := range Strategies() {
		if b64, ok := s.Find(resp); ok {
			return Image{Base64: b64, Strategy: s.Name()}, true
		}
	}
	return Image{}, false
}

// ImageGenerationCall reads image generation call items: the item's direct
// result first, then its content entries.
type ImageGenerationCall struct{}

// Name implements Strategy.
func (ImageGenerationCall) Name() string { return "image_generation_call" }

// Find implements Strategy.
func (ImageGenerationCall) Find(resp *provider.Response) (string, bool) {
	for _, item := range resp.Output {
		if !item.IsImageGeneration() {
			continue
		}
		if b64, ok := fromField(item.Result); ok {
			return b64, true
		}
		if b64, ok := scanContent(item.Content); ok {
			return b64, true
		}
	}
	return "", false
}

// ContentScan reads the content entries of every output item regardless of
// its type.
type ContentScan struct{}

// Name implements Strategy.
func (ContentScan) Name() string { return "content_scan" }

// Find implements Strategy.
func (ContentScan) Find(resp *provider.Response) (string, bool) {
	for _, item := range resp.Output {
		if b64, ok := scanContent(item.Content); ok {
			return b64, true
		}
	}
	return "", false
}

// LegacyData reads inline entries of the legacy "data" array. URL entries
// are never fetched.
type LegacyData struct{}

// Name implements Strategy.
func (LegacyData) Name() string { return "legacy_data" }

// Find implements Strategy.
func (LegacyData) Find(resp *provider.Response) (string, bool) {
	for _, d := range resp.Data {
		if b64, ok := fromField(d.B64JSON); ok {
			return b64, true
		}
		if b64, ok := fromField(d.Base64); ok {
			return b64, true
		}
	}
	return "", false
}

func scanContent(parts provider.ContentList) (string, bool) {
	for _, part := range parts {
		for _, f := range part.Candidates() {
			if b64, ok := fromField(f); ok {
				return b64, true
			}
		}
	}
	return "", false
}

func fromField(f provider.Field) (string, bool) {
	s, ok := f.Value()
	if !ok {
		return "", false
	}
	return decodeCandidate(s)
}

// Bytes decodes the image data. Padded base64 is tried first, then the
// unpadded alphabet.
func (img Image) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(img.Base64)
	if err == nil {
		return data, nil
	}
	data, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(img.Base64, "="))
	if rawErr != nil {
		return nil, fmt.Errorf("decode base64 image: %w", err)
	}
	return data, nil
}
