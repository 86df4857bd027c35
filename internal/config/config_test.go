package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load looks at so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"E2E_LOCAL_PORTAL", "HEADLESS", "VIDEOS", "E2E_PARALLEL", "SLOW_MO", "E2E_TAGS",
		"VALID_EMAIL", "VALID_PASSWORD", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("BASE_URL", "")
	os.Unsetenv("BASE_URL")
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.BaseURL)
	assert.True(t, cfg.UseLocalPortal())
	assert.True(t, cfg.Headless)
	assert.Equal(t, 100, cfg.SlowMoMs)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, 30*time.Second, cfg.LoadTimeout())
	assert.Equal(t, Viewport{Width: 1280, Height: 720}, cfg.Viewport)
	assert.True(t, cfg.IgnoreHTTPSErrors)
	assert.Equal(t, "screenshots", cfg.ScreenshotsDir)
	assert.Equal(t, "results", cfg.ResultsDir)
	assert.True(t, cfg.RecordVideo)
	assert.Equal(t, "videos", cfg.VideosDir)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoadFile_VideoCanBeDisabled(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, "record_video: false\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.RecordVideo)

	clearEnv(t)
	t.Setenv("VIDEOS", "false")
	cfg, err = LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.False(t, cfg.RecordVideo)
}

func TestLoadFile_YAMLThenEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
base_url: https://bdjobs.com/
headless: false
timeout_ms: 5000
tags: [Smoke]
valid_email: yaml@example.com
`)
	t.Setenv("HEADLESS", "true")
	t.Setenv("VALID_EMAIL", "env@example.com")
	t.Setenv("E2E_TAGS", "regression, smoke")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://bdjobs.com", cfg.BaseURL, "trailing slash is trimmed")
	assert.False(t, cfg.UseLocalPortal())
	assert.True(t, cfg.Headless, "env wins over yaml")
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 5*time.Second, cfg.LoadTimeout(), "load timeout falls back to timeout")
	assert.Equal(t, "env@example.com", cfg.ValidEmail)
	assert.Equal(t, []string{"regression", "smoke"}, cfg.Tags)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "bad yaml", yaml: "base_url: [oops"},
		{name: "bad scheme", yaml: "base_url: bdjobs.com"},
		{name: "bad bool", env: map[string]string{"HEADLESS": "maybe"}},
		{name: "bad chat id", env: map[string]string{"TELEGRAM_CHAT_ID": "abc"}},
		{name: "telegram half configured", env: map[string]string{"TELEGRAM_BOT_TOKEN": "123:abc"}},
		{name: "negative slow mo", env: map[string]string{"SLOW_MO": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFile(writeYAML(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_TelegramBothSet(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := LoadFile(writeYAML(t, ""))
	require.NoError(t, err)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, int64(42), cfg.TelegramChatID)
}
