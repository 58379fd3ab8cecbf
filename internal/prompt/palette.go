package prompt

import (
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// DescribePalette turns a colors argument into prompt wording.
//
// Hex codes ("#1e90ff") are replaced by hue names with a light/dark
// qualifier ("blue", "dark red"); any other token is kept as written. When no
// token is a hex code the argument is returned trimmed and unchanged, so
// scheme names such as "mono" or "duotone" pass straight through.
func DescribePalette(colors string) string {
	colors = strings.TrimSpace(colors)
	tokens := strings.FieldsFunc(colors, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})

	hasHex := false
	for _, tok := range tokens {
		if hexColorPattern.MatchString(tok) {
			hasHex = true
			break
		}
	}
	if !hasHex {
		return colors
	}

	seen := make(map[string]bool, len(tokens))
	names := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		name := tok
		if hexColorPattern.MatchString(tok) {
			name = ColorName(tok)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// ColorName returns a coarse English name for a hex color. Unparseable input
// is returned unchanged.
func ColorName(hex string) string {
	c, err := colorful.Hex(expandShortHex(hex))
	if err != nil {
		return hex
	}

	h, s, l := c.Hsl()
	if s < 0.12 || l > 0.95 || l < 0.08 {
		switch {
		case l > 0.9:
			return "white"
		case l < 0.12:
			return "black"
		case l > 0.7:
			return "light gray"
		case l < 0.3:
			return "dark gray"
		default:
			return "gray"
		}
	}

	name := hueName(h)
	switch {
	case l > 0.75:
		return "light " + name
	case l < 0.3:
		return "dark " + name
	default:
		return name
	}
}

func hueName(h float64) string {
	switch {
	case h < 15:
		return "red"
	case h < 45:
		return "orange"
	case h < 70:
		return "yellow"
	case h < 160:
		return "green"
	case h < 200:
		return "teal"
	case h < 250:
		return "blue"
	case h < 290:
		return "purple"
	case h < 335:
		return "pink"
	default:
		return "red"
	}
}

func expandShortHex(hex string) string {
	if len(hex) != 4 {
		return hex
	}
	var b strings.Builder
	b.WriteByte('#')
	for i := 1; i < 4; i++ {
		b.WriteByte(hex[i])
		b.WriteByte(hex[i])
	}
	return b.String()
}
