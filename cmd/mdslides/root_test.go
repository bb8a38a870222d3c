package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&rootOptions{})
	cmd.Version = "test"
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "mdslides version test\n", out)
}

func TestReplayCommand_BuiltinDeck(t *testing.T) {
	isolateConfig(t)
	script := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(script, []byte(`
steps:
  - event: key
    key: End
  - event: key
    key: Home
  - after: 800ms
    event: key
    key: Home
`), 0644))

	out, err := execute(t, "replay", "--script", script)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "accepted=true index=7/8")
	assert.Contains(t, lines[1], "accepted=false index=7/8")
	assert.Contains(t, lines[2], "accepted=true index=0/8")
}

func TestReplayCommand_RequiresScript(t *testing.T) {
	isolateConfig(t)
	_, err := execute(t, "replay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--script")
}

func TestReplayCommand_MinSwipeFlag(t *testing.T) {
	isolateConfig(t)
	script := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(script, []byte(`
steps:
  - event: swipe_start
    y: 10
  - after: 100ms
    event: swipe_end
    y: 5
`), 0644))

	out, err := execute(t, "replay", "--script", script)
	require.NoError(t, err)
	assert.Contains(t, out, "swipe_end")
	assert.Contains(t, strings.TrimSpace(out), "accepted=false index=0/8")

	out, err = execute(t, "replay", "--script", script, "--min-swipe", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "accepted=true index=1/8")
}

func TestSetup_LogOverrides(t *testing.T) {
	isolateConfig(t)
	logFile := filepath.Join(t.TempDir(), "mdslides.log")

	cfg, closeLog, err := setup(&rootOptions{logLevel: "debug", logFile: logFile})
	require.NoError(t, err)
	defer closeLog()

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, logFile, cfg.Log.File)
	assert.FileExists(t, logFile)
}

func TestSetup_InvalidLogLevel(t *testing.T) {
	isolateConfig(t)
	_, _, err := setup(&rootOptions{logLevel: "loud"})
	require.Error(t, err)
}
