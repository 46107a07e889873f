// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  1-9 ", "6-K", "1-9", "", "  "})
//	// Returns: []string{"1-9", "6-K"}
func DedupeAndTrim(values []string) []string {
	return DedupeAndTrimFunc(values, nil)
}

// DedupeAndTrimFunc is like DedupeAndTrim but compares elements by key(v)
// instead of by their trimmed text. The first element seen for each key is
// kept, trimmed but otherwise untouched. A nil key compares trimmed text.
//
// Example:
//
//	DedupeAndTrimFunc([]string{"6-k", "6K", "1-9"}, normalize)
//	// Returns: []string{"6-k", "1-9"} when normalize("6-k") == normalize("6K")
func DedupeAndTrimFunc(values []string, key func(string) string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		k := trimmed
		if key != nil {
			k = key(trimmed)
		}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
