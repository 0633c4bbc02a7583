package meta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("overriding some fields keeps the other defaults", func(t *testing.T) {
		path := writeConfig(t, "board_size: 13\npolicy: Local\nplayouts: 200\nseed: 42\n")

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		require.Equal(t, 13, cfg.BoardSize)
		require.Equal(t, "local", cfg.Policy)
		require.Equal(t, 200, cfg.Playouts)
		require.Equal(t, uint64(42), cfg.Seed)
		require.Equal(t, KOMI, cfg.Komi)
		require.Equal(t, AAF_FRACTION, cfg.AafFraction)
		require.Equal(t, GO_ROUTINES, cfg.Goroutines)
	})

	t.Run("rejecting invalid values", func(t *testing.T) {
		for _, content := range []string{
			"board_size: 25\n",
			"playouts: 0\n",
			"aaf_fraction: 1.5\n",
			"policy: greedy\n",
			"local_probability: -0.1\n",
		} {
			_, err := LoadConfig(writeConfig(t, content))
			require.ErrorIs(t, err, ErrInvalidConfig, content)
		}
	})

	t.Run("reporting malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "board_size: [9\n"))
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("reporting a missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}
