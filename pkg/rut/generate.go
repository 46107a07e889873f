package rut

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// RandomBodyMax is the largest body drawn when Generate has no usable base.
// It is the largest body that fits the xx.xxx.xxx-X canonical layout.
const RandomBodyMax uint64 = 99_999_999

var (
	// ErrInvalidCount indicates a negative number of identifiers was requested.
	ErrInvalidCount = errors.New("invalid count: must not be negative")

	// ErrBaseOutOfRange indicates base+count would overflow the body range.
	ErrBaseOutOfRange = errors.New("invalid base: generated bodies would overflow")
)

// Source supplies the random seed body. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Uint64N(n uint64) uint64
}

// globalSource draws from the math/rand/v2 top-level generator, which is safe
// for concurrent use.
type globalSource struct{}

func (globalSource) Uint64N(n uint64) uint64 { return rand.Uint64N(n) }

// Generator produces sequences of valid identifiers.
type Generator struct {
	src Source
}

// NewGenerator creates a Generator. A nil src falls back to the process-wide
// pseudo-random generator.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src}
}

var defaultGenerator = NewGenerator(nil)

// Generate is Generator.Generate on a generator backed by math/rand/v2.
func Generate(base string, count int) ([]string, error) {
	return defaultGenerator.Generate(base, count)
}

// Generate returns count consecutive identifiers in canonical form, starting
// at base and increasing the body by one each time. When base is empty or
// not a non-negative integer, the starting body is drawn from the Source in
// [1, RandomBodyMax]. A zero count yields an empty, non-nil slice.
func (g *Generator) Generate(base string, count int) ([]string, error) {
	if count < 0 {
		return nil, ErrInvalidCount
	}
	if count == 0 {
		return []string{}, nil
	}

	start, ok := parseBase(base)
	if !ok {
		start = g.src.Uint64N(RandomBodyMax) + 1
	}
	if start > math.MaxUint64-uint64(count-1) {
		return nil, ErrBaseOutOfRange
	}

	out := make([]string, 0, count)
	for i := range uint64(count) {
		formatted := FormatNumber(start + i)
		if !Validate(formatted) {
			return nil, fmt.Errorf("generated RUT %q failed validation", formatted)
		}
		out = append(out, formatted)
	}
	return out, nil
}

func parseBase(base string) (uint64, bool) {
	base = strings.TrimSpace(base)
	if base == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(base, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
