package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	// DefaultBaseName is used when a prompt has no usable characters.
	DefaultBaseName = "generated_image"
	maxBaseName     = 32
	dirMode         = 0o755
	fileMode        = 0o644
)

// Store writes generated images into a single output directory.
type Store struct {
	Dir string
}

// NewStore returns a store for dir, made absolute against the working
// directory.
func NewStore(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}
	return &Store{Dir: abs}, nil
}

// EnsureDir creates the output directory if it is missing.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.Dir, dirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// Save writes data under a collision-free name derived from promptText and
// returns the full path.
func (s *Store) Save(promptText, format string, index int, data []byte) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}
	name := GenerateFilename(s.Dir, promptText, format, index)
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// GenerateFilename derives a file name from promptText that does not yet
// exist in dir. On collision a numeric suffix is appended, counting up from
// index (or 1 when index is not positive).
func GenerateFilename(dir, promptText, format string, index int) string {
	base := BaseName(promptText)
	ext := strings.TrimPrefix(format, ".")
	if ext == "" {
		ext = "png"
	}

	name := base + "." + ext
	if !exists(filepath.Join(dir, name)) {
		return name
	}
	n := index
	if n <= 0 {
		n = 1
	}
	for ; ; n++ {
		name = fmt.Sprintf("%s_%d.%s", base, n, ext)
		if !exists(filepath.Join(dir, name)) {
			return name
		}
	}
}

// BaseName turns prompt text into a file name stem: lowercased, ASCII
// letters and digits only, every whitespace run (leading and trailing ones
// included) as one underscore, at most 32 characters. Stripped characters do
// not split a whitespace run.
func BaseName(promptText string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range strings.ToLower(promptText) {
		switch {
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteByte('_')
				inSpace = true
			}
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			inSpace = false
		}
	}
	base := b.String()
	if len(base) > maxBaseName {
		base = base[:maxBaseName]
	}
	if base == "" {
		return DefaultBaseName
	}
	return base
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
