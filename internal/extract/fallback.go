package extract

import (
	"context"
	"strings"
)

// RuleExtractor is the deterministic fallback: strip one leading filler
// phrase, otherwise return the input unchanged (trimmed). It never fails.
type RuleExtractor struct {
	fillers []string
}

func NewRuleExtractor(fillers []string) *RuleExtractor {
	return &RuleExtractor{fillers: fillers}
}

func (r *RuleExtractor) Extract(_ context.Context, raw string) (string, error) {
	return r.Strip(raw), nil
}

// Strip removes the first matching filler phrase from the start of the input,
// case-insensitive. The phrase must be followed by a word boundary so "musty
// smell" is not truncated by "must".
func (r *RuleExtractor) Strip(raw string) string {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)

	for _, filler := range r.fillers {
		f := strings.ToLower(strings.TrimSpace(filler))
		if f == "" || !strings.HasPrefix(lower, f) {
			continue
		}
		rest := s[len(f):]
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		if rest = strings.TrimSpace(rest); rest != "" {
			return rest
		}
	}

	return s
}
