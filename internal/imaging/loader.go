package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrNotImage is returned when bytes do not sniff as any image type.
var ErrNotImage = errors.New("data is not an image")

// ImageInfo describes an image held in memory.
type ImageInfo struct {
	// ContentType is the sniffed MIME type, e.g. "image/png".
	ContentType string `json:"content_type"`

	// Format is the decoder name ("png", "jpeg", "gif", ...). Empty when the
	// bytes sniff as an image but no registered decoder could read them.
	Format string `json:"format,omitempty"`

	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth,omitempty"`
	HasAlpha   bool   `json:"has_alpha"`

	SizeBytes int `json:"size_bytes"`
}

// Decoded reports whether the image could be decoded.
func (i *ImageInfo) Decoded() bool {
	return i.Format != ""
}

// Inspect sniffs and decodes data.
//
// ErrNotImage is returned when the content type is not image/*. Bytes that
// sniff as an image but fail to decode return the partial info along with
// the decode error; callers may still keep them.
func Inspect(data []byte) (*ImageInfo, error) {
	info := &ImageInfo{
		ContentType: http.DetectContentType(data),
		SizeBytes:   len(data),
	}
	if !strings.HasPrefix(info.ContentType, "image/") {
		return nil, fmt.Errorf("%w (sniffed %s)", ErrNotImage, info.ContentType)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return info, fmt.Errorf("failed to read image header: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return info, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	info.Format = format
	info.Width = bounds.Dx()
	info.Height = bounds.Dy()
	info.ColorDepth = "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.HasAlpha = true
		info.ColorDepth = "16-bit"
	case *image.Gray16:
		info.ColorDepth = "16-bit"
	}
	return info, nil
}

// MatchesFormat reports whether a decoded image is stored in the format
// named by fileFormat ("png", "jpeg", "jpg"). Undecoded images and unknown
// names never match.
func MatchesFormat(info *ImageInfo, fileFormat string) bool {
	if info == nil || !info.Decoded() {
		return false
	}
	want, err := imaging.FormatFromExtension(fileFormat)
	if err != nil {
		return false
	}
	return strings.EqualFold(want.String(), info.Format)
}

// LoadDataURL reads an image file and returns it as a base64 data URL.
func LoadDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return DataURL(data, filepath.Ext(path))
}

// DataURL encodes image bytes as a data URL. The MIME type is sniffed,
// falling back to the file extension for types the sniffer does not know.
func DataURL(data []byte, ext string) (string, error) {
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		byExt := mime.TypeByExtension(strings.ToLower(ext))
		if !strings.HasPrefix(byExt, "image/") {
			return "", fmt.Errorf("%w (sniffed %s)", ErrNotImage, contentType)
		}
		contentType = byExt
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
