package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("EXTUI_HOST", "")
	t.Setenv("EXTUI_DATA_DIR", "")
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:6185", cfg.ServerHost)
	assert.Equal(t, "~/.local/share/extui", cfg.DataDirectory)
	assert.Equal(t, filepath.Join(home, ".local/share/extui"), cfg.DataDir())

	// Load creates the data directory on first run.
	info, err := os.Stat(cfg.DataDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoad_SettingsFile(t *testing.T) {
	home := isolateHome(t)

	settingsDir := filepath.Join(home, ".config", "extui")
	require.NoError(t, os.MkdirAll(settingsDir, 0700))

	settings := `data_directory = "~/extui-data"

[server]
host = "http://panel.internal:6185"
`
	require.NoError(t, os.WriteFile(filepath.Join(settingsDir, "settings.toml"), []byte(settings), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://panel.internal:6185", cfg.ServerHost)
	assert.Equal(t, filepath.Join(home, "extui-data"), cfg.DataDir())
}

func TestLoad_EnvOverridesSettings(t *testing.T) {
	home := isolateHome(t)

	settingsDir := filepath.Join(home, ".config", "extui")
	require.NoError(t, os.MkdirAll(settingsDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(settingsDir, "settings.toml"),
		[]byte("[server]\nhost = \"http://from-file:6185\"\n"), 0600))

	t.Setenv("EXTUI_HOST", "http://from-env:6185")
	t.Setenv("EXTUI_DATA_DIR", filepath.Join(home, "env-data"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:6185", cfg.ServerHost)
	assert.Equal(t, filepath.Join(home, "env-data"), cfg.DataDir())
}

func TestLoad_MalformedSettings(t *testing.T) {
	home := isolateHome(t)

	settingsDir := filepath.Join(home, ".config", "extui")
	require.NoError(t, os.MkdirAll(settingsDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(settingsDir, "settings.toml"),
		[]byte("not = [valid toml"), 0600))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse settings")
}

func TestSaveRoundTrip(t *testing.T) {
	isolateHome(t)

	cfg := &Config{
		DataDirectory: "~/custom-data",
		ServerHost:    "http://saved:6185",
	}
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://saved:6185", loaded.ServerHost)
	assert.Equal(t, "~/custom-data", loaded.DataDirectory)
}

func TestCheckDebug(t *testing.T) {
	t.Setenv("EXTUI_DEBUG", "")
	assert.False(t, CheckDebug())

	t.Setenv("EXTUI_DEBUG", "true")
	assert.True(t, CheckDebug())

	t.Setenv("EXTUI_DEBUG", "1")
	assert.True(t, CheckDebug())

	t.Setenv("EXTUI_DEBUG", "no")
	assert.False(t, CheckDebug())
}

func TestExpandPath(t *testing.T) {
	home := isolateHome(t)

	assert.Equal(t, filepath.Join(home, "data"), ExpandPath("~/data"))
	assert.Equal(t, "/absolute/path", ExpandPath("/absolute/path"))
	assert.Equal(t, "", ExpandPath(""))
}
