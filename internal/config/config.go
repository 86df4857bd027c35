// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values and validate

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type LoggerConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // console or json
	LogFile    string `yaml:"log_file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

type Config struct {
	//Target site
	BaseURL     string `yaml:"base_url" env:"BASE_URL"`
	LocalPortal bool   `yaml:"local_portal" env:"E2E_LOCAL_PORTAL"`

	//Browser
	Headless          bool     `yaml:"headless" env:"HEADLESS"`
	SlowMoMs          int      `yaml:"slow_mo_ms" env:"SLOW_MO"`
	TimeoutMs         int      `yaml:"timeout_ms"`
	LoadTimeoutMs     int      `yaml:"load_timeout_ms"`
	Viewport          Viewport `yaml:"viewport"`
	IgnoreHTTPSErrors bool     `yaml:"ignore_https_errors"`
	RecordVideo       bool     `yaml:"record_video" env:"VIDEOS"`

	//Artifacts
	ScreenshotsDir string `yaml:"screenshots_dir"`
	VideosDir      string `yaml:"videos_dir"`
	ResultsDir     string `yaml:"results_dir"`
	CookiesPath    string `yaml:"cookies_path"`
	LedgerPath     string `yaml:"ledger_path"`

	//Runner
	Tags     []string `yaml:"tags" env:"E2E_TAGS"`
	Parallel bool     `yaml:"parallel" env:"E2E_PARALLEL"`

	//Credentials for the authenticated journeys
	ValidEmail    string `yaml:"valid_email" env:"VALID_EMAIL"`
	ValidPassword string `yaml:"valid_password" env:"VALID_PASSWORD"`

	Logger LoggerConfig `yaml:"logger"`

	//Optional reporting sinks
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
}

// Timeout is the default per-action timeout applied to every browser context.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// LoadTimeout bounds BasePage.WaitForLoad.
func (c *Config) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutMs) * time.Millisecond
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// UseLocalPortal reports whether scenarios should run against the bundled stub portal.
func (c *Config) UseLocalPortal() bool {
	return c.LocalPortal || c.BaseURL == ""
}

// Load reads .env, the YAML file named by E2E_CONFIG (configs/config.yaml by
// default) and env overrides, in that order.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("E2E_CONFIG")
	if path == "" {
		path = "configs/config.yaml"
	}
	return LoadFile(path)
}

// LoadFile is Load without the .env step. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default leaves BaseURL empty so an unconfigured run targets the stub portal.
// Browser settings match the suite's historical fixture: 100ms slow-mo,
// 1280x720, HTTPS errors ignored, 30s default timeout, video recorded into
// videos/. LoadTimeoutMs stays 0 so that it follows TimeoutMs.
func Default() *Config {
	return &Config{
		Headless:          true,
		SlowMoMs:          100,
		TimeoutMs:         30000,
		Viewport:          Viewport{Width: 1280, Height: 720},
		IgnoreHTTPSErrors: true,
		RecordVideo:       true,
		ScreenshotsDir:    "screenshots",
		VideosDir:         "videos",
		ResultsDir:        "results",
		Logger: LoggerConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("BASE_URL"); ok {
		c.BaseURL = strings.TrimSpace(v)
	}

	bools := map[string]*bool{
		"E2E_LOCAL_PORTAL": &c.LocalPortal,
		"HEADLESS":         &c.Headless,
		"VIDEOS":           &c.RecordVideo,
		"E2E_PARALLEL":     &c.Parallel,
	}
	for key, dst := range bools {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = b
	}

	if v := os.Getenv("SLOW_MO"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SLOW_MO: %w", err)
		}
		c.SlowMoMs = ms
	}

	if v := os.Getenv("E2E_TAGS"); v != "" {
		c.Tags = splitList(v)
	}

	if v := os.Getenv("VALID_EMAIL"); v != "" {
		c.ValidEmail = v
	}
	if v := os.Getenv("VALID_PASSWORD"); v != "" {
		c.ValidPassword = v
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		c.DatabaseURL = dbURL
	}
	return nil
}

func (c *Config) applyDefaults() {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.TimeoutMs <= 0 {
		c.TimeoutMs = 30000
	}
	if c.LoadTimeoutMs <= 0 {
		c.LoadTimeoutMs = c.TimeoutMs
	}
	if c.Viewport.Width == 0 || c.Viewport.Height == 0 {
		c.Viewport = Viewport{Width: 1280, Height: 720}
	}
	if c.ScreenshotsDir == "" {
		c.ScreenshotsDir = "screenshots"
	}
	if c.VideosDir == "" {
		c.VideosDir = "videos"
	}
	if c.ResultsDir == "" {
		c.ResultsDir = "results"
	}
	if c.LedgerPath == "" {
		c.LedgerPath = ".cache"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "console"
	}
	for i, tag := range c.Tags {
		c.Tags[i] = strings.ToLower(strings.TrimSpace(tag))
	}
}

// Validate checks the fields the harness cannot run without.
func (c *Config) Validate() error {
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must start with http:// or https://, got %q", c.BaseURL)
	}
	if c.SlowMoMs < 0 {
		return fmt.Errorf("slow_mo_ms must not be negative")
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
