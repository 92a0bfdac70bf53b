package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	ttl, err := cfg.SessionTtlDuration()
	require.NoError(t, err)
	require.Equal(t, 12*time.Hour, ttl)
}

func TestLoadFromFile(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeConfig(t, "port: 8080\ndefaultDisplayCurrency: EUR\n")

		cfg, err := LoadFromFile(path)
		require.NoError(t, err)
		require.Equal(t, 8080, cfg.Port)
		require.Equal(t, "EUR", cfg.DefaultDisplayCurrency)
		require.Equal(t, "USD", cfg.BaseCurrency)
		require.Equal(t, 10, cfg.TopTradesCount)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := writeConfig(t, "baseCurrency: DOLLARS\n")

		_, err := LoadFromFile(path)
		require.ErrorContains(t, err, "baseCurrency")
	})

	t.Run("bad ttl is rejected", func(t *testing.T) {
		path := writeConfig(t, "sessionTtl: whenever\n")

		_, err := LoadFromFile(path)
		require.ErrorContains(t, err, "sessionTtl")
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}
