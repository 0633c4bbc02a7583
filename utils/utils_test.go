package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 2, FindIndex([]byte("ABC"), 'C'))
	require.Equal(t, -1, FindIndex([]string{"a"}, "b"))
}

func TestSplitEven(t *testing.T) {
	t.Run("spreading the remainder over the first shares", func(t *testing.T) {
		require.Equal(t, []int{4, 3, 3}, SplitEven(10, 3))
	})

	t.Run("more parts than items", func(t *testing.T) {
		require.Equal(t, []int{1, 1, 0, 0}, SplitEven(2, 4))
	})

	t.Run("panics without parts", func(t *testing.T) {
		require.Panics(t, func() { SplitEven(1, 0) })
	})
}
