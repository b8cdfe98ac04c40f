package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brogergvhs/noveld/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfigRoot points the profile store at a throwaway directory so
// tests never touch the user's real config.
func isolateConfigRoot(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	return dir
}

func TestDurationsFallBackOnBadValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		delay       string
		timeout     string
		wantDelay   time.Duration
		wantTimeout time.Duration
	}{
		{"empty", "", "", config.DefaultDelay, config.DefaultTimeout},
		{"garbage", "soon", "whenever", config.DefaultDelay, config.DefaultTimeout},
		{"negative_delay", "-3s", "0s", config.DefaultDelay, config.DefaultTimeout},
		{"valid", "2s", "30s", 2 * time.Second, 30 * time.Second},
		{"zero_delay_allowed", "0s", "1s", 0, time.Second},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := &config.Config{Delay: tc.delay, Timeout: tc.timeout}

			assert.Equal(t, tc.wantDelay, c.DelayDuration())
			assert.Equal(t, tc.wantTimeout, c.TimeoutDuration())
		})
	}
}

func TestLoadMergedIgnoreConfig(t *testing.T) {
	isolateConfigRoot(t)

	cfg, used, err := config.LoadMerged(config.Options{
		IgnoreConfig: true,
		Output:       "/tmp/novels",
		Delay:        2 * time.Second,
		MaxPages:     5,
		UserAgent:    "custom",
	})
	require.NoError(t, err)

	assert.Equal(t, "(ignored config)", used)
	assert.Equal(t, "/tmp/novels", cfg.Output)
	assert.Equal(t, "2s", cfg.Delay)
	assert.Equal(t, 5, cfg.MaxPages)
	assert.Equal(t, "custom", cfg.UserAgent)

	// untouched fields keep their defaults
	assert.Equal(t, config.DefaultTimeout, cfg.TimeoutDuration())
	assert.False(t, cfg.CFBypass)
}

func TestLoadMergedWithoutAnyConfig(t *testing.T) {
	isolateConfigRoot(t)

	cfg, used, err := config.LoadMerged(config.Options{})
	require.NoError(t, err)

	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, config.DefaultDelay, cfg.DelayDuration())
}

func TestLoadMergedFlagOverridesFile(t *testing.T) {
	isolateConfigRoot(t)

	_, err := config.InitDefaultConfig()
	require.NoError(t, err)

	active, err := config.ActiveConfigPath()
	require.NoError(t, err)

	saved := config.DefaultConfig()
	saved.Delay = "5s"
	saved.DefaultURL = "https://example.com/from-file"
	require.NoError(t, config.SaveYAML(saved, active))

	cfg, used, err := config.LoadMerged(config.Options{
		Delay: 250 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, active, used)
	assert.Equal(t, 250*time.Millisecond, cfg.DelayDuration())
	// flags not set keep the file's values
	assert.Equal(t, "https://example.com/from-file", cfg.DefaultURL)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	isolateConfigRoot(t)

	path, err := config.InitDefaultConfig()
	require.NoError(t, err)

	in := config.DefaultConfig()
	in.Output = "books"
	in.MaxPages = 7
	in.CFBypass = true
	require.NoError(t, config.SaveYAML(in, path))

	cfg, used, err := config.LoadMerged(config.Options{})
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, "books", cfg.Output)
	assert.Equal(t, 7, cfg.MaxPages)
	assert.True(t, cfg.CFBypass)
}

func TestProfileLifecycle(t *testing.T) {
	isolateConfigRoot(t)

	_, err := config.InitDefaultConfig()
	require.NoError(t, err)

	_, err = config.CreateEmptyConfig("work")
	require.NoError(t, err)

	// duplicate labels are rejected
	_, err = config.CreateEmptyConfig("work")
	assert.Error(t, err)

	require.NoError(t, config.SwitchConfig("work"))

	label, err := config.CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "work", label)

	list, err := config.ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.False(t, list[0].Active)
	assert.Equal(t, "work", list[1].Label)
	assert.True(t, list[1].Active)

	require.NoError(t, config.RenameConfig("work", "home"))

	label, err = config.CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "home", label, "rename should follow the active label")

	// removing the active profile falls back to Default
	require.NoError(t, config.RemoveConfig("home", true))

	label, err = config.CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", label)

	assert.Error(t, config.RemoveConfig("Default", true))
}

func TestAddConfigCopiesSourceFile(t *testing.T) {
	isolateConfigRoot(t)

	src := filepath.Join(t.TempDir(), "seed.yaml")
	seed := config.DefaultConfig()
	seed.Output = "copied-books"
	seed.MaxPages = 9
	require.NoError(t, config.SaveYAML(seed, src))

	require.NoError(t, config.AddConfig("copied", src))

	path, err := config.ConfigPathByLabel("copied")
	require.NoError(t, err)

	want, err := os.ReadFile(src)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	// existing labels and missing sources are rejected
	assert.Error(t, config.AddConfig("copied", src))
	assert.Error(t, config.AddConfig("other", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, config.AddConfig(" ", src))
}

func TestSwitchConfigRejectsMissingLabel(t *testing.T) {
	isolateConfigRoot(t)

	assert.Error(t, config.SwitchConfig("nope"))
	assert.Error(t, config.SwitchConfig(" "))
}

func TestConfigRootPrecedence(t *testing.T) {
	xdg := t.TempDir()
	appdata := t.TempDir()

	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	assert.Equal(t, filepath.Join(xdg, "noveld"), config.ConfigRoot())

	t.Setenv("APPDATA", appdata)
	assert.Equal(t, filepath.Join(appdata, "noveld"), config.ConfigRoot())

	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "noveld"), config.ConfigRoot())
}
