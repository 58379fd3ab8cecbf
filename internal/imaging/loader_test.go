package imaging

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-gen-mcp/internal/imaging/imagingtest"
)

func TestInspect_PNG(t *testing.T) {
	info, err := Inspect(imagingtest.PNG(t, 40, 30))
	require.NoError(t, err)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, 40, info.Width)
	assert.Equal(t, 30, info.Height)
	assert.Equal(t, "8-bit", info.ColorDepth)
	assert.True(t, info.Decoded())
	assert.Positive(t, info.SizeBytes)
}

func TestInspect_JPEG(t *testing.T) {
	info, err := Inspect(imagingtest.JPEG(t, 16, 16))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", info.ContentType)
	assert.Equal(t, "jpeg", info.Format)
	assert.False(t, info.HasAlpha)
}

func TestInspect_NotAnImage(t *testing.T) {
	_, err := Inspect([]byte("this is plain text, not pixels"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestInspect_TruncatedImage(t *testing.T) {
	data := imagingtest.PNG(t, 32, 32)
	info, err := Inspect(data[:len(data)/2])
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotImage)
	require.NotNil(t, info)
	assert.Equal(t, "image/png", info.ContentType)
}

func TestMatchesFormat(t *testing.T) {
	png, err := Inspect(imagingtest.PNG(t, 8, 8))
	require.NoError(t, err)
	jpg, err := Inspect(imagingtest.JPEG(t, 8, 8))
	require.NoError(t, err)

	assert.True(t, MatchesFormat(png, "png"))
	assert.False(t, MatchesFormat(png, "jpeg"))
	assert.True(t, MatchesFormat(jpg, "jpeg"))
	assert.True(t, MatchesFormat(jpg, "jpg"))
	assert.False(t, MatchesFormat(jpg, "webp"))
	assert.False(t, MatchesFormat(&ImageInfo{ContentType: "image/webp"}, "png"))
	assert.False(t, MatchesFormat(nil, "png"))
}

func TestLoadDataURL(t *testing.T) {
	data := imagingtest.PNG(t, 12, 12)
	path := filepath.Join(t.TempDir(), "input.png")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	url, err := LoadDataURL(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestLoadDataURL_Errors(t *testing.T) {
	_, err := LoadDataURL(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	_, err = LoadDataURL(path)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDataURL_ExtensionFallback(t *testing.T) {
	url, err := DataURL([]byte{0x00, 0x01, 0x02, 0x03}, ".PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}
