package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundryiq/agenttrace/types"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Display.ShowCitations)
	assert.True(t, cfg.Display.Color)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  format: json
display:
  show_citations: false
  max_snippet_len: 80
  color: false
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Display.ShowCitations)
	assert.Equal(t, 80, cfg.Display.MaxSnippetLen)
	assert.False(t, cfg.Display.Color)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("AGENTTRACE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, types.IsErrorCode(err, types.ErrConfigInvalid))
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log: ["), 0o600))
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, types.IsErrorCode(err, types.ErrConfigInvalid))
	})

	t.Run("bad level", func(t *testing.T) {
		cfg := Default()
		cfg.Log.Level = "loud"
		require.Error(t, cfg.Validate())
	})

	t.Run("bad format", func(t *testing.T) {
		cfg := Default()
		cfg.Log.Format = "xml"
		require.Error(t, cfg.Validate())
	})

	t.Run("negative snippet length", func(t *testing.T) {
		cfg := Default()
		cfg.Display.MaxSnippetLen = -1
		require.Error(t, cfg.Validate())
	})
}
