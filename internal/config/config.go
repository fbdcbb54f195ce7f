// Package config loads service configuration from an optional file and PORTFOLIO_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/portfolio-evaluator/internal/ingestion"
)

// EnvPrefix is prepended to every environment override (server.port -> PORTFOLIO_SERVER_PORT)
const EnvPrefix = "PORTFOLIO"

// Render modes
const (
	RenderModeBrowser = "browser"
	RenderModeHTTP    = "http"
)

// Config is the complete service configuration.
// It never carries the completion service credential; that arrives with each request.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Render     RenderConfig     `mapstructure:"render"`
	Completion CompletionConfig `mapstructure:"completion"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port          int           `mapstructure:"port"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	AllowedOrigin string        `mapstructure:"allowed_origin"`
}

// RenderConfig configures how portfolio pages are rendered
type RenderConfig struct {
	Mode            string        `mapstructure:"mode"`
	PageLoadTimeout time.Duration `mapstructure:"page_load_timeout"`
	SettleDelay     time.Duration `mapstructure:"settle_delay"`
	MaxConcurrent   int           `mapstructure:"max_concurrent"`
	UserAgent       string        `mapstructure:"user_agent"`
}

// CompletionConfig configures calls to the completion service
type CompletionConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float32       `mapstructure:"temperature"`
}

// AnalysisConfig configures the analysis pipeline
type AnalysisConfig struct {
	MaxTextLength int `mapstructure:"max_text_length"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers every key with its default value
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 300*time.Second)
	v.SetDefault("server.allowed_origin", "*")

	v.SetDefault("render.mode", RenderModeBrowser)
	v.SetDefault("render.page_load_timeout", 60*time.Second)
	v.SetDefault("render.settle_delay", 3*time.Second)
	v.SetDefault("render.max_concurrent", 2)
	v.SetDefault("render.user_agent", "Mozilla/5.0 (compatible; PortfolioEvaluator/1.0)")

	v.SetDefault("completion.timeout", 90*time.Second)
	v.SetDefault("completion.temperature", 0.1)

	v.SetDefault("analysis.max_text_length", ingestion.DefaultMaxTextLength)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// NewViper returns a viper instance with defaults and environment overrides wired
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from path (optional) and the environment, then validates it.
func Load(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates configuration from an already prepared viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("config error: 'server.read_timeout' must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("config error: 'server.write_timeout' must be positive")
	}

	switch c.Render.Mode {
	case RenderModeBrowser, RenderModeHTTP:
	default:
		return fmt.Errorf("config error: unknown 'render.mode' %q (want %q or %q)", c.Render.Mode, RenderModeBrowser, RenderModeHTTP)
	}
	if c.Render.PageLoadTimeout <= 0 {
		return fmt.Errorf("config error: 'render.page_load_timeout' must be positive")
	}
	if c.Render.SettleDelay < 0 {
		return fmt.Errorf("config error: 'render.settle_delay' must be non-negative")
	}
	if c.Render.MaxConcurrent <= 0 {
		return fmt.Errorf("config error: 'render.max_concurrent' must be positive")
	}

	if c.Completion.Timeout <= 0 {
		return fmt.Errorf("config error: 'completion.timeout' must be positive")
	}
	if c.Completion.Temperature < 0 || c.Completion.Temperature > 2 {
		return fmt.Errorf("config error: 'completion.temperature' must be between 0 and 2")
	}

	if c.Analysis.MaxTextLength <= 0 || c.Analysis.MaxTextLength > ingestion.DefaultMaxTextLength {
		return fmt.Errorf("config error: 'analysis.max_text_length' must be between 1 and %d", ingestion.DefaultMaxTextLength)
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
