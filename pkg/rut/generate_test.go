package rut

import (
	"math"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always draws the same value so the random path is reproducible.
type fixedSource struct {
	n     uint64
	calls int
}

func (s *fixedSource) Uint64N(uint64) uint64 {
	s.calls++
	return s.n
}

func TestGenerate_FromBase(t *testing.T) {
	g := NewGenerator(&fixedSource{})

	got, err := g.Generate("12312312", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"12.312.312-3", "12.312.313-1", "12.312.314-K"}, got)
}

func TestGenerate_RandomSeed(t *testing.T) {
	t.Run("empty base draws from the source", func(t *testing.T) {
		src := &fixedSource{n: 12312311}
		got, err := NewGenerator(src).Generate("", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"12.312.312-3"}, got)
		assert.Equal(t, 1, src.calls)
	})

	t.Run("non-numeric base draws from the source", func(t *testing.T) {
		for _, base := range []string{"abc", "-5", "12.5", "12.312.312"} {
			src := &fixedSource{n: 0}
			got, err := NewGenerator(src).Generate(base, 1)
			require.NoError(t, err, "base %q", base)
			assert.Equal(t, []string{"1-9"}, got, "base %q", base)
			assert.Equal(t, 1, src.calls, "base %q", base)
		}
	})

	t.Run("numeric base never touches the source", func(t *testing.T) {
		src := &fixedSource{}
		_, err := NewGenerator(src).Generate(" 42 ", 2)
		require.NoError(t, err)
		assert.Zero(t, src.calls)
	})

	t.Run("seeded math/rand source is deterministic", func(t *testing.T) {
		a, err := NewGenerator(rand.New(rand.NewPCG(1, 2))).Generate("", 5)
		require.NoError(t, err)
		b, err := NewGenerator(rand.New(rand.NewPCG(1, 2))).Generate("", 5)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

// TestGenerate_Invariants checks that every generated identifier validates
// and that bodies increase by exactly one.
func TestGenerate_Invariants(t *testing.T) {
	const count = 250
	got, err := Generate("", count)
	require.NoError(t, err)
	require.Len(t, got, count)

	var prev uint64
	for i, g := range got {
		assert.True(t, Validate(g), "generated %q must validate", g)

		body, err := strconv.ParseUint(Number(g), 10, 64)
		require.NoError(t, err)
		if i > 0 {
			assert.Equal(t, prev+1, body)
		} else {
			assert.GreaterOrEqual(t, body, uint64(1))
			assert.LessOrEqual(t, body, RandomBodyMax)
		}
		prev = body
	}
}

func TestGenerate_Errors(t *testing.T) {
	g := NewGenerator(nil)

	t.Run("zero count yields an empty sequence", func(t *testing.T) {
		got, err := g.Generate("1", 0)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got)

		got, err = Generate("", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{}, got)
	})

	t.Run("rejects negative count", func(t *testing.T) {
		_, err := g.Generate("1", -3)
		assert.ErrorIs(t, err, ErrInvalidCount)
	})

	t.Run("rejects overflowing base", func(t *testing.T) {
		_, err := g.Generate(strconv.FormatUint(math.MaxUint64, 10), 2)
		assert.ErrorIs(t, err, ErrBaseOutOfRange)
	})

	t.Run("accepts the last representable body", func(t *testing.T) {
		got, err := g.Generate(strconv.FormatUint(math.MaxUint64, 10), 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, Validate(got[0]))
	})
}
