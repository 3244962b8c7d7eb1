package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// These tests change the environment and working directory, so they do not
// run in parallel.

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PROPDESK_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":memory:", cfg.Database.Path)
	require.Equal(t, time.Second, cfg.Search.Delay)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 24224, cfg.Log.Fluent.Port)
	require.False(t, cfg.Log.Fluent.Enabled)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[database]
path = "/tmp/catalog.db"

[search]
delay = "250ms"

[ui]
currency_symbol = "€"
`), 0o600))
	t.Setenv("PROPDESK_UI_CURRENCY_SYMBOL", "£")
	t.Setenv("PROPDESK_LOG_FLUENT_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
	require.Equal(t, 250*time.Millisecond, cfg.Search.Delay)
	require.Equal(t, "£", cfg.UI.CurrencySymbol)
	require.True(t, cfg.Log.Fluent.Enabled)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PROPDESK_SEARCH_DELAY=0s\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PROPDESK_SEARCH_DELAY") })

	cfg, err := Load()
	require.NoError(t, err)
	require.Zero(t, cfg.Search.Delay)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[database\n"), 0o600))
	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	cfg.Search.Delay = 3 * time.Second
	cfg.UI.Timezone = "UTC"
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, again.Search.Delay)
	require.Equal(t, time.UTC, again.Location())
}
