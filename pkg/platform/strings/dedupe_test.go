package strings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  1-9  ", "6-K  ", "  14-0"},
			expected: []string{"1-9", "6-K", "14-0"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"1-9", "6-K", "1-9", "14-0", "6-K"},
			expected: []string{"1-9", "6-K", "14-0"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"1-9", "", "  ", "6-K"},
			expected: []string{"1-9", "6-K"},
		},
		{
			name:     "preserves case",
			input:    []string{"6-K", "6-k"},
			expected: []string{"6-K", "6-k"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeAndTrimFunc(t *testing.T) {
	key := func(s string) string {
		return strings.ToUpper(strings.NewReplacer(".", "", "-", "").Replace(s))
	}

	t.Run("collapses values with the same key", func(t *testing.T) {
		got := DedupeAndTrimFunc([]string{" 6-k", "6K", "12.312.312-3", "123123123", "1-9"}, key)
		assert.Equal(t, []string{"6-k", "12.312.312-3", "1-9"}, got)
	})

	t.Run("nil key behaves like DedupeAndTrim", func(t *testing.T) {
		in := []string{"a", " a ", "b"}
		assert.Equal(t, DedupeAndTrim(in), DedupeAndTrimFunc(in, nil))
	})
}
