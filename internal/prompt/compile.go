package prompt

import (
	"fmt"
	"strings"
)

// MaxOutputCount is the largest number of prompts a single batch may produce.
const MaxOutputCount = 8

// Styles lists the style tags advertised to callers. Compile accepts any tag;
// this list only documents the vocabulary.
var Styles = []string{
	"photorealistic",
	"watercolor",
	"oil-painting",
	"sketch",
	"pixel-art",
	"anime",
	"vintage",
	"modern",
	"abstract",
	"minimalist",
}

// variationSuffixes maps each known variation tag to exactly two suffixes.
var variationSuffixes = map[string][2]string{
	"lighting":      {"dramatic lighting", "soft lighting"},
	"angle":         {"from above", "close-up view"},
	"color-palette": {"warm color palette", "cool color palette"},
	"composition":   {"centered composition", "rule of thirds composition"},
	"mood":          {"cheerful mood", "dramatic mood"},
	"season":        {"in spring", "in winter"},
	"time-of-day":   {"at sunrise", "at sunset"},
}

// Variations returns the known variation tags in a stable order.
func Variations() []string {
	return []string{"lighting", "angle", "color-palette", "composition", "mood", "season", "time-of-day"}
}

// VariationSuffixes returns the two suffixes for a known variation tag.
func VariationSuffixes(tag string) ([2]string, bool) {
	s, ok := variationSuffixes[tag]
	return s, ok
}

// Compile expands base into an ordered list of prompts.
//
// outputCount caps the result. A value of zero or less means the caller did
// not ask for a count: a plain prompt then yields one entry and an expanded
// set is capped at MaxOutputCount.
func Compile(base string, styles, variations []string, outputCount int) []string {
	styles = nonEmpty(styles)
	variations = nonEmpty(variations)

	if len(styles) == 0 && len(variations) == 0 && outputCount <= 1 {
		return []string{base}
	}

	var prompts []string
	for _, style := range styles {
		prompts = append(prompts, fmt.Sprintf("%s, %s style", base, style))
	}

	if len(variations) > 0 {
		seeds := prompts
		if len(seeds) == 0 {
			seeds = []string{base}
		}
		expanded := make([]string, 0, len(seeds)*len(variations)*2)
		for _, seed := range seeds {
			for _, tag := range variations {
				if suffixes, ok := variationSuffixes[tag]; ok {
					expanded = append(expanded, seed+", "+suffixes[0], seed+", "+suffixes[1])
					continue
				}
				expanded = append(expanded, seed+", "+tag)
			}
		}
		prompts = expanded
	}

	if len(prompts) == 0 && outputCount > 1 {
		for i := 0; i < outputCount; i++ {
			prompts = append(prompts, base)
		}
	}

	limit := outputCount
	if limit <= 0 {
		limit = MaxOutputCount
	}
	if len(prompts) > limit {
		prompts = prompts[:limit]
	}

	if len(prompts) == 0 {
		return []string{base}
	}
	return prompts
}

func nonEmpty(tags []string) []string {
	out := tags[:0:0]
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
