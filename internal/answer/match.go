package answer

import (
	"sort"
	"strings"
)

// AlternateSeparator splits the alt_answers column into individual forms.
const AlternateSeparator = "|"

// Set is the normalized set of answers that count as correct for one
// question. It is derived at grading time and never stored.
type Set map[string]struct{}

// SplitAlternates splits a pipe-delimited list, trimming each entry and
// dropping empty ones.
func SplitAlternates(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, AlternateSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Accepted builds the accepted set from the primary answer and the
// pipe-delimited alternates.
func Accepted(primary, alternates string) Set {
	alts := SplitAlternates(alternates)
	set := make(Set, 1+len(alts))
	set[Normalize(primary)] = struct{}{}
	for _, alt := range alts {
		set[Normalize(alt)] = struct{}{}
	}
	return set
}

// Contains reports whether the normalized input is one of the accepted forms.
func (s Set) Contains(input string) bool {
	_, ok := s[Normalize(input)]
	return ok
}

// Sorted lists the accepted forms in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IsCorrect is exact equality after normalization against the primary
// answer or any alternate. There is no fuzzy matching.
func IsCorrect(primary, alternates, input string) bool {
	return Accepted(primary, alternates).Contains(input)
}
