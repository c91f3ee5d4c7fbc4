package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/clip"
)

func TestParse(t *testing.T) {
	input := `
[x11]
action_timeout_ms = 2500
transfer_size = 524288
display = ":1"

[win32]
max_retries = 10
retry_delay_ms = 20
`
	f, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	opts := f.Options()
	assert.Equal(t, 2500*time.Millisecond, opts.ActionTimeout)
	assert.Equal(t, uint32(524288), opts.TransferSize)
	assert.Equal(t, ":1", opts.DisplayName)
	assert.Equal(t, 10, opts.MaxRetries)
	assert.Equal(t, 20*time.Millisecond, opts.RetryDelay)
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, clip.Options{}, f.Options())
}

func TestParseRetryFieldsIndependent(t *testing.T) {
	// A config that sets only the delay must not disturb the retry budget.
	f, err := Parse(strings.NewReader("[win32]\nretry_delay_ms = 42\n"))
	require.NoError(t, err)

	opts := f.Options()
	assert.Equal(t, 0, opts.MaxRetries)
	assert.Equal(t, 42*time.Millisecond, opts.RetryDelay)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	opts, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, clip.Options{}, opts)
}

func TestLoadExplicitMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "not = [valid")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFromXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "clip", "config.toml"), "[x11]\ndisplay = \":7\"\n")

	opts, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7", opts.DisplayName)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
