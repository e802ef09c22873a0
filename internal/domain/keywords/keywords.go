// Package keywords categorizes free-text role requirements into a fixed set
// of skill and experience categories via configurable keyword patterns.
//
// The category dictionaries are configuration, not code: operators extend
// keyword coverage by editing a YAML asset without touching matching logic.
package keywords

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// None is the wildcard category produced by the "not applicable" sentinel.
// It is defined to satisfy any requirement check.
const None = "NONE"

// regexMarker prefixes a pattern that should be compiled verbatim as a
// regular expression, e.g. "~\bjudge\b" for a whole-word match. Plain
// patterns match as case-insensitive substrings, so stems like "program"
// also match "programming".
const regexMarker = "~"

// Dictionary maps category names to their ordered keyword pattern lists.
type Dictionary map[string][]string

// Categorizer matches text against the compiled patterns of a Dictionary.
type Categorizer struct {
	categories []string
	patterns   map[string][]*regexp.Regexp
}

// NewCategorizer compiles a dictionary into a Categorizer. Pattern
// compilation errors identify the offending category and pattern.
func NewCategorizer(dict Dictionary) (*Categorizer, error) {
	c := &Categorizer{
		categories: make([]string, 0, len(dict)),
		patterns:   make(map[string][]*regexp.Regexp, len(dict)),
	}
	for category := range dict {
		c.categories = append(c.categories, category)
	}
	// Category names are sorted so tie-breaking in TopCategory is
	// deterministic regardless of map iteration order.
	sort.Strings(c.categories)

	for category, pats := range dict {
		compiled := make([]*regexp.Regexp, 0, len(pats))
		for _, pat := range pats {
			src := pat
			if strings.HasPrefix(pat, regexMarker) {
				src = "(?i)" + strings.TrimPrefix(pat, regexMarker)
			} else {
				src = "(?i)" + regexp.QuoteMeta(pat)
			}
			re, err := regexp.Compile(src)
			if err != nil {
				return nil, fmt.Errorf("%w: category %q pattern %q: %v", ErrBadPattern, category, pat, err)
			}
			compiled = append(compiled, re)
		}
		c.patterns[category] = compiled
	}
	return c, nil
}

// Categorize counts keyword matches per category in the given text.
// Categories with zero matches are omitted.
func (c *Categorizer) Categorize(text string) map[string]int {
	counts := make(map[string]int)
	if strings.TrimSpace(text) == "" {
		return counts
	}
	for _, category := range c.categories {
		n := 0
		for _, re := range c.patterns[category] {
			n += len(re.FindAllStringIndex(text, -1))
		}
		if n > 0 {
			counts[category] = n
		}
	}
	return counts
}

// Categories returns the sorted subset of categories with at least one
// match in the text. Non-matching text yields an empty slice, never an
// error: an unmatched requirement is treated as unspecified.
func (c *Categorizer) Categories(text string) []string {
	counts := c.Categorize(text)
	out := make([]string, 0, len(counts))
	for _, category := range c.categories {
		if counts[category] > 0 {
			out = append(out, category)
		}
	}
	return out
}

// TopCategory returns the category with the most matches, breaking ties by
// category name. The second return is false when nothing matched.
func (c *Categorizer) TopCategory(text string) (string, bool) {
	counts := c.Categorize(text)
	best, bestCount := "", 0
	for _, category := range c.categories {
		if counts[category] > bestCount {
			best, bestCount = category, counts[category]
		}
	}
	return best, bestCount > 0
}
