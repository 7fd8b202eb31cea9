// Package config loads ParentSphere settings from defaults, an optional
// parentsphere.yml and environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort       = "8080"
	DefaultLanguage   = "en"
	DefaultSessionTTL = 24 * time.Hour
	minSecretKeyLen   = 32
	ExampleSecretKey  = "replace_with_at_least_32_random_characters"
)

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY must not use a placeholder value")
	ErrSecretKeyTooShort    = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLen)
	ErrInvalidPort          = errors.New("PORT must be a number between 1 and 65535")
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production": {},
	ExampleSecretKey:          {},
}

type Config struct {
	SecretKey       string        `mapstructure:"secret_key" yaml:"secret_key"`
	DBPath          string        `mapstructure:"db_path" yaml:"db_path"`
	Port            string        `mapstructure:"port" yaml:"port"`
	Timezone        string        `mapstructure:"tz" yaml:"tz"`
	DefaultLanguage string        `mapstructure:"default_language" yaml:"default_language"`
	CookieSecure    bool          `mapstructure:"cookie_secure" yaml:"cookie_secure"`
	SessionTTL      time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	LogLevel        string        `mapstructure:"log_level" yaml:"log_level"`
}

var envBindings = map[string]string{
	"secret_key":       "SECRET_KEY",
	"db_path":          "DB_PATH",
	"port":             "PORT",
	"tz":               "TZ",
	"default_language": "DEFAULT_LANGUAGE",
	"cookie_secure":    "COOKIE_SECURE",
	"session_ttl":      "SESSION_TTL",
	"log_level":        "LOG_LEVEL",
}

func Defaults() Config {
	return Config{
		DBPath:          filepath.Join("data", "parentsphere.db"),
		Port:            DefaultPort,
		Timezone:        "UTC",
		DefaultLanguage: DefaultLanguage,
		CookieSecure:    false,
		SessionTTL:      DefaultSessionTTL,
		LogLevel:        "info",
	}
}

// Load reads configuration. An explicit path must exist; otherwise
// ./parentsphere.yml is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults := Defaults()
	v.SetDefault("secret_key", defaults.SecretKey)
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("tz", defaults.Timezone)
	v.SetDefault("default_language", defaults.DefaultLanguage)
	v.SetDefault("cookie_secure", defaults.CookieSecure)
	v.SetDefault("session_ttl", defaults.SessionTTL)
	v.SetDefault("log_level", defaults.LogLevel)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	switch {
	case path != "":
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	case fileExists(ProjectPath()):
		v.SetConfigFile(ProjectPath())
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	return &cfg, nil
}

// ValidateServer checks the settings only the HTTP server depends on.
func (cfg *Config) ValidateServer() error {
	if err := ValidateSecretKey(cfg.SecretKey); err != nil {
		return err
	}
	port, err := ValidatePort(cfg.Port)
	if err != nil {
		return err
	}
	cfg.Port = port
	return nil
}

// Location resolves the configured timezone, falling back to UTC.
func (cfg *Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid TZ %q: %w", cfg.Timezone, err)
	}
	return location, nil
}

func ValidateSecretKey(secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return ErrSecretKeyPlaceholder
	}
	if len(secret) < minSecretKeyLen {
		return ErrSecretKeyTooShort
	}
	return nil
}

func ValidatePort(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", ErrInvalidPort
	}
	return strconv.Itoa(port), nil
}

// ProjectPath returns the working-directory config file name.
func ProjectPath() string {
	return "parentsphere.yml"
}

// WriteExample writes the defaults as YAML with a placeholder secret.
func WriteExample(w io.Writer) error {
	example := Defaults()
	example.SecretKey = ExampleSecretKey

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
