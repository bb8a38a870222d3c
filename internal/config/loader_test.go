package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user and project lookups at an empty temp directory and
// returns it.
func isolate(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	originalGetUserConfigPath := getUserConfigPath
	originalGetProjectConfigPath := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalGetUserConfigPath
		getProjectConfigPath = originalGetProjectConfigPath
	})

	getUserConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "user", configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "project", configFileName), nil
	}
	return tempDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	isolate(t)

	loaded, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loaded)
	assert.Equal(t, 800*time.Millisecond, loaded.Navigation.TransitionWindow)
	assert.False(t, loaded.Display.AutoPlayEnabled())
}

func TestLoadConfig_Layering(t *testing.T) {
	dir := isolate(t)

	writeFile(t, filepath.Join(dir, "user", configFileName), `
navigation:
  transition_window: 1s
  autoplay_interval: 4s
display:
  theme: light
log:
  level: debug
`)
	writeFile(t, filepath.Join(dir, "project", configFileName), `
navigation:
  autoplay_interval: 6s
display:
  autoplay: true
`)
	explicit := filepath.Join(dir, "talk.yaml")
	writeFile(t, explicit, `
navigation:
  min_swipe_distance: 5
log:
  file: /tmp/mdslides.log
`)

	loaded, err := LoadConfig(explicit)
	require.NoError(t, err)

	assert.Equal(t, time.Second, loaded.Navigation.TransitionWindow, "user overrides default")
	assert.Equal(t, 6*time.Second, loaded.Navigation.AutoPlayInterval, "project overrides user")
	assert.Equal(t, float64(5), loaded.Navigation.SwipeDistance(), "explicit overrides default")
	assert.Equal(t, time.Second, loaded.Navigation.WheelCooldown, "untouched default survives")
	assert.Equal(t, ThemeLight, loaded.Display.Theme)
	assert.True(t, loaded.Display.AutoPlayEnabled())
	assert.Equal(t, "debug", loaded.Log.Level)
	assert.Equal(t, "/tmp/mdslides.log", loaded.Log.File)
}

func TestLoadConfig_NegativeHintDisablesHint(t *testing.T) {
	dir := isolate(t)
	explicit := filepath.Join(dir, "c.yaml")
	writeFile(t, explicit, "navigation:\n  hint_duration: -1s\n")

	loaded, err := LoadConfig(explicit)
	require.NoError(t, err)
	assert.Zero(t, loaded.Navigation.HintDuration)
}

func TestLoadConfig_ZeroSwipeDistance(t *testing.T) {
	dir := isolate(t)
	explicit := filepath.Join(dir, "c.yaml")
	writeFile(t, explicit, "navigation:\n  min_swipe_distance: 0\n")

	loaded, err := LoadConfig(explicit)
	require.NoError(t, err)
	require.NotNil(t, loaded.Navigation.MinSwipeDistance)
	assert.Zero(t, loaded.Navigation.SwipeDistance())
	assert.Zero(t, loaded.Navigation.Controller().MinSwipeDistance)

	unset := NavigationConfig{}
	assert.Equal(t, float64(defaultMinSwipeRows), unset.SwipeDistance())
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "navigation: [\n"},
		{"unknown theme", "display:\n  theme: neon\n"},
		{"bad log level", "log:\n  level: chatty\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			explicit := filepath.Join(dir, "c.yaml")
			writeFile(t, explicit, tt.content)

			_, err := LoadConfig(explicit)
			assert.Error(t, err)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		dir := isolate(t)
		_, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestGetUserConfigDir(t *testing.T) {
	originalOsUserHomeDir := osUserHomeDir
	defer func() { osUserHomeDir = originalOsUserHomeDir }()
	osUserHomeDir = func() (string, error) { return "/home/presenter", nil }

	dir, err := GetUserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/presenter", ".config", "mdslides"), dir)
}
