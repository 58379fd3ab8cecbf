package extract

import (
	"errors"
	"strings"
)

// Length thresholds for base64 image candidates.
const (
	// MinCandidateLength is the shortest string worth inspecting at all.
	MinCandidateLength = 100
	// MinImageLength separates image payloads from incidental base64-looking
	// text such as ids and hashes.
	MinImageLength = 1000
)

// Validation failures.
var (
	ErrTooShort    = errors.New("candidate shorter than minimum length")
	ErrBadAlphabet = errors.New("candidate contains characters outside the base64 alphabet")
	ErrNoise       = errors.New("candidate too short to be an image")
)

// ValidateBase64 reports whether s is plausible base64 image data.
func ValidateBase64(s string) error {
	if len(s) < MinCandidateLength {
		return ErrTooShort
	}
	for i := 0; i < len(s); i++ {
		if !isBase64Char(s[i]) {
			return ErrBadAlphabet
		}
	}
	if len(s) < MinImageLength {
		return ErrNoise
	}
	return nil
}

func isBase64Char(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '+', c == '/', c == '=':
		return true
	}
	return false
}

// decodeCandidate returns the validated base64 payload of a candidate, which
// is either a data URL or bare base64.
func decodeCandidate(s string) (string, bool) {
	if strings.HasPrefix(s, "data:image") {
		i := strings.IndexByte(s, ',')
		if i < 0 {
			return "", false
		}
		s = s[i+1:]
	}
	if ValidateBase64(s) != nil {
		return "", false
	}
	return s, true
}
