// Package config builds the run configuration from flags, environment
// variables and an optional coursesync.yaml.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aisystant/coursesync"
	"github.com/aisystant/coursesync/cache"
	"github.com/aisystant/coursesync/content"
	"github.com/aisystant/coursesync/markup"
	"github.com/aisystant/coursesync/provider"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. COURSESYNC_MODEL.
const EnvPrefix = "COURSESYNC"

// ErrMissingCredential is returned when a required token is not set.
var ErrMissingCredential = errors.New("missing credential")

// Cache selects the translation cache backend.
type Cache struct {
	Backend    string `mapstructure:"backend"`
	Dir        string `mapstructure:"dir"`
	RedisURL   string `mapstructure:"redis_url"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// Options converts to cache.Options.
func (c Cache) Options() cache.Options {
	return cache.Options{
		Backend:    c.Backend,
		Dir:        c.Dir,
		RedisURL:   c.RedisURL,
		SQLitePath: c.SQLitePath,
	}
}

// Config is everything a command needs, resolved once.
type Config struct {
	SessionToken      string `mapstructure:"session_token"`
	APIKey            string `mapstructure:"api_key"`
	BaseURL           string `mapstructure:"base_url"`
	ImageBaseURL      string `mapstructure:"image_base_url"`
	Model             string `mapstructure:"model"`
	SourceDir         string `mapstructure:"source_dir"`
	NamingLanguage    string `mapstructure:"naming_language"`
	StrictTermsFile   string `mapstructure:"strict_terms_file"`
	Converter         string `mapstructure:"converter"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
	MaxRetries        int    `mapstructure:"max_retries"`
	LogLevel          string `mapstructure:"log_level"`
	Cache             Cache  `mapstructure:"cache"`
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("session_token", "")
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", content.DefaultBaseURL)
	v.SetDefault("image_base_url", markup.DefaultBaseURL)
	v.SetDefault("model", provider.DefaultModel)
	v.SetDefault("source_dir", coursesync.DefaultSourceDir)
	v.SetDefault("naming_language", coursesync.DefaultNamingLanguage)
	v.SetDefault("strict_terms_file", coursesync.DefaultStrictTermsFile)
	v.SetDefault("converter", "html-to-markdown")
	v.SetDefault("requests_per_minute", 0)
	v.SetDefault("max_retries", coursesync.DefaultRetryConfig().MaxRetries)
	v.SetDefault("log_level", "info")
	v.SetDefault("cache.backend", cache.BackendFile)
	v.SetDefault("cache.dir", "_")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.sqlite_path", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Well-known names take effect without the prefix.
	_ = v.BindEnv("session_token", "AISYSTANT_SESSION_TOKEN", EnvPrefix+"_SESSION_TOKEN")
	_ = v.BindEnv("api_key", "OPENAI_API_KEY", EnvPrefix+"_API_KEY")
	_ = v.BindEnv("log_level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")

	return v
}

// ReadFile reads path, or ./coursesync.yaml when path is empty. A missing
// default file is not an error. It returns the file actually used.
func ReadFile(v *viper.Viper, path string) (string, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(coursesync.Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// RequireSessionToken fails when no content service token is set.
func (c *Config) RequireSessionToken() error {
	if c.SessionToken == "" {
		return fmt.Errorf("%w: set AISYSTANT_SESSION_TOKEN", ErrMissingCredential)
	}
	return nil
}

// RequireAPIKey fails when no translation backend key is set.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: set OPENAI_API_KEY", ErrMissingCredential)
	}
	return nil
}
