package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDelay   = time.Second
	DefaultTimeout = 15 * time.Second
)

type Config struct {
	Output   string `yaml:"output"`
	Delay    string `yaml:"delay"`
	Timeout  string `yaml:"timeout"`
	MaxPages int    `yaml:"max_pages"`
	Debug    bool   `yaml:"debug"`

	DefaultURL string `yaml:"default_url"`

	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	UserAgent  string `yaml:"user_agent"`

	CFBypass bool `yaml:"cf_bypass"`
}

type Options struct {
	IgnoreConfig bool
	Debug        bool
	Output       string
	Delay        time.Duration
	Timeout      time.Duration
	MaxPages     int
	DefaultURL   string
	Cookie       string
	CookieFile   string
	UserAgent    string
	CFBypass     bool
}

func DefaultConfig() *Config {
	return &Config{
		Output:     ".",
		Delay:      DefaultDelay.String(),
		Timeout:    DefaultTimeout.String(),
		MaxPages:   0,
		Debug:      false,
		DefaultURL: "",
		Cookie:     "",
		CookieFile: "",
		UserAgent:  "",
		CFBypass:   false,
	}
}

// DelayDuration parses the configured inter-page delay, falling back to the
// default when the value is missing or malformed.
func (c *Config) DelayDuration() time.Duration {
	d, err := time.ParseDuration(c.Delay)
	if err != nil || d < 0 {
		return DefaultDelay
	}

	return d
}

// TimeoutDuration parses the configured per-request timeout, falling back to
// the default when the value is missing or malformed.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}

	return d
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `noveld config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Delay != 0 {
		c.Delay = o.Delay.String()
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout.String()
	}
	if o.MaxPages != 0 {
		c.MaxPages = o.MaxPages
	}
	if o.Debug {
		c.Debug = true
	}
	if o.DefaultURL != "" {
		c.DefaultURL = o.DefaultURL
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.CFBypass {
		c.CFBypass = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.Delay == "" {
		c.Delay = DefaultDelay.String()
	}
	if c.Timeout == "" {
		c.Timeout = DefaultTimeout.String()
	}
	if c.MaxPages < 0 {
		c.MaxPages = 0
	}
}

func (c *Config) Print() {
	if c.Output != "" {
		fmt.Printf(" -output: %s\n", c.Output)
	}
	fmt.Printf(" -delay: %s\n", c.Delay)
	fmt.Printf(" -timeout: %s\n", c.Timeout)
	if c.MaxPages > 0 {
		fmt.Printf(" -max_pages: %d\n", c.MaxPages)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.DefaultURL != "" {
		fmt.Printf(" -default_url: %s\n", c.DefaultURL)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.CFBypass {
		fmt.Printf(" -cf_bypass: %t\n", c.CFBypass)
	}
}
