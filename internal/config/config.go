// Package config loads runner settings from defaults, an optional config
// file, ACTORRUNNER_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. ACTORRUNNER_BASE_URL.
const EnvPrefix = "ACTORRUNNER"

// Keys understood by the loader.
const (
	KeyBaseURL        = "base_url"
	KeyAPIKey         = "api_key"
	KeyTimeout        = "timeout"
	KeyOutput         = "output"
	KeyURLSuggestions = "url_suggestions"
	KeyTemplatesDir   = "templates_dir"
	KeyLogLevel       = "log.level"
	KeyLogJSON        = "log.json"
)

// Defaults.
const (
	DefaultBaseURL  = "http://localhost:3001/api"
	DefaultTimeout  = 60 * time.Second
	DefaultOutput   = "text"
	DefaultLogLevel = "info"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// FlagBindings maps config keys to the persistent flag names that override
// them.
var FlagBindings = map[string]string{
	KeyBaseURL:      "base-url",
	KeyAPIKey:       "api-key",
	KeyTimeout:      "timeout",
	KeyOutput:       "output",
	KeyTemplatesDir: "templates-dir",
	KeyLogLevel:     "log-level",
	KeyLogJSON:      "log-json",
}

// Config is the resolved runner configuration.
type Config struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Output         string        `mapstructure:"output"`
	URLSuggestions []string      `mapstructure:"url_suggestions"`
	TemplatesDir   string        `mapstructure:"templates_dir"`
	Log            LogConfig     `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Loader resolves a Config. Each Loader owns its own viper instance.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a loader with defaults and environment overrides
// registered.
func NewLoader() *Loader {
	v := viper.New()
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyURLSuggestions, []string{})
	v.SetDefault(KeyTemplatesDir, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogJSON, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// Viper exposes the underlying instance so callers can bind flags.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load reads path when given, otherwise looks for actorrunner.{yaml,json,toml}
// in the working directory and the user config directory. A missing default
// file is not an error; a missing explicit file is.
func (l *Loader) Load(path string) (*Config, error) {
	if path = strings.TrimSpace(path); path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName("actorrunner")
		l.v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(dir, "actorrunner"))
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", describePath(path), err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.File = l.v.ConfigFileUsed()
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	cfg.URLSuggestions = compact(cfg.URLSuggestions)
	cfg.TemplatesDir = strings.TrimSpace(cfg.TemplatesDir)
	return &cfg, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base_url is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url %q must be an http(s) URL", ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}
	switch c.Output {
	case "", "text", "json", "yaml", "yml":
	default:
		return fmt.Errorf("%w: unknown output %q", ErrInvalidConfig, c.Output)
	}
	if c.TemplatesDir != "" {
		info, err := os.Stat(c.TemplatesDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: templates_dir %q is not a directory", ErrInvalidConfig, c.TemplatesDir)
		}
	}
	return nil
}

func describePath(path string) string {
	if path == "" {
		return "default config"
	}
	return path
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
