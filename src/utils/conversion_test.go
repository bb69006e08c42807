package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtofSlice(t *testing.T) {
	vals, err := AtofSlice("5, 10.5,20")
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 10.5, 20}, vals)

	_, err = AtofSlice("5,abc")
	assert.Error(t, err)
}

func TestParseParamRanges(t *testing.T) {
	t.Run("two params", func(t *testing.T) {
		ranges, err := ParseParamRanges("short_window=5,10,20;long_window=30,50")
		require.NoError(t, err)
		assert.Equal(t, map[string][]float64{
			"short_window": {5, 10, 20},
			"long_window":  {30, 50},
		}, ranges)
	})

	t.Run("empty input", func(t *testing.T) {
		ranges, err := ParseParamRanges("  ")
		require.NoError(t, err)
		assert.Nil(t, ranges)
	})

	t.Run("missing equals sign", func(t *testing.T) {
		_, err := ParseParamRanges("short_window")
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := ParseParamRanges("=5,10")
		assert.Error(t, err)
	})
}
