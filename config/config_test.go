package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ka2n/yure/api"
	"github.com/morikuni/failure/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the default config path at an empty directory and clears
// the YURE_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"YURE_ENDPOINT", "YURE_TIMEZONE", "YURE_STYLE", "YURE_ADDR", "YURE_DEBUG"} {
		t.Setenv(k, "")
	}
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, api.DefaultEndpoint, cfg.Endpoint)
	assert.Empty(t, cfg.Timezone)
	assert.Empty(t, cfg.Style)
	assert.Equal(t, 100, cfg.WordWrap)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.False(t, cfg.Debug)
	assert.Equal(t, api.DefaultQuery().URL(), cfg.Query().URL())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_DefaultPathFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, "yure", "config.yaml"), `
endpoint: http://mirror.example.com/fdsnws/event/1/query
timezone: UTC
style: plain
word_wrap: 60
addr: ":9090"
debug: true
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://mirror.example.com/fdsnws/event/1/query", cfg.Endpoint)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "plain", cfg.Style)
	assert.Equal(t, 60, cfg.WordWrap)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.True(t, cfg.Debug)
	assert.Contains(t, cfg.Query().URL(), "http://mirror.example.com/fdsnws/event/1/query?format=geojson&")

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeConfig(t, path, "style: plain\naddr: \":9090\"\n")

	t.Setenv("YURE_STYLE", "glamour")
	t.Setenv("YURE_ADDR", "127.0.0.1:7000")
	t.Setenv("YURE_ENDPOINT", "http://localhost:1234/query")
	t.Setenv("YURE_DEBUG", "1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "glamour", cfg.Style)
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
	assert.Equal(t, "http://localhost:1234/query", cfg.Endpoint)
	assert.True(t, cfg.Debug)
}

func TestLoad_DebugFalse(t *testing.T) {
	isolate(t)
	t.Setenv("YURE_DEBUG", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, failure.Is(err, ErrReadConfig))
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeConfig(t, path, "style: [plain\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, failure.Is(err, ErrReadConfig))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "Unknown style", env: map[string]string{"YURE_STYLE": "html"}},
		{name: "Relative endpoint", env: map[string]string{"YURE_ENDPOINT": "not a url"}},
		{name: "Unknown timezone", env: map[string]string{"YURE_TIMEZONE": "Mars/Olympus_Mons"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			require.Error(t, err)
			assert.True(t, failure.Is(err, ErrInvalidConfig))
		})
	}
}

func TestLoad_WordWrapBounds(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "wrap.yaml")
	writeConfig(t, path, "word_wrap: 5\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, failure.Is(err, ErrInvalidConfig))
}
