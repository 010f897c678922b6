// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

var languageTag = regexp.MustCompile(`^[A-Za-z]{2,3}(_[A-Za-z]{2,4})?$`)

// Config is the top-level application configuration.
type Config struct {
	Sleekshop  SleekshopConfig  `yaml:"sleekshop"`
	Transport  TransportConfig  `yaml:"transport"`
	Session    SessionConfig    `yaml:"session"`
	Categories CategoriesConfig `yaml:"categories"`
	Menu       MenuConfig       `yaml:"menu"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SleekshopConfig defines the backend licence and SDK options.
type SleekshopConfig struct {
	Endpoint                string `yaml:"endpoint"`
	LicenceUsername         string `yaml:"licence_username"`
	LicencePassword         string `yaml:"licence_password"`
	LicenceSecretKey        string `yaml:"licence_secret_key"`
	DefaultLanguage         string `yaml:"default_language"`
	Token                   string `yaml:"token"`
	ProductImageThumbHeight int    `yaml:"product_image_thumb_height"`
	TemplatePath            string `yaml:"template_path"`
	CategoriesID            int    `yaml:"categories_id"`
	ChainingField           string `yaml:"chaining_field"`
}

// Options returns the SDK options described by the config.
func (s *SleekshopConfig) Options() domain.Options {
	return domain.Options{
		DefaultLanguage:         s.DefaultLanguage,
		Token:                   s.Token,
		ProductImageThumbHeight: s.ProductImageThumbHeight,
		TemplatePath:            s.TemplatePath,
		CategoriesID:            s.CategoriesID,
		ChainingField:           s.ChainingField,
	}
}

// TransportConfig defines the HTTP transport settings.
type TransportConfig struct {
	Timeout       time.Duration   `yaml:"timeout"`
	UserAgent     string          `yaml:"user_agent"`
	MaxRetries    uint64          `yaml:"max_retries"` // default: 0, one attempt
	RetryInterval time.Duration   `yaml:"retry_interval"`
	RateLimit     RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines backend rate limiting. A zero rate disables it.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// SessionConfig defines where session tokens are kept.
type SessionConfig struct {
	StorageMethod string        `yaml:"storage_method"` // cookie, session, none
	CookiePath    string        `yaml:"cookie_path"`
	CookieSecure  bool          `yaml:"cookie_secure"`
	Backend       string        `yaml:"backend"` // memory, redis (storage_method session only)
	TTL           time.Duration `yaml:"ttl"`
	Redis         RedisConfig   `yaml:"redis"`
}

// RedisConfig defines the Redis session backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CategoriesConfig defines how category trees are expanded.
type CategoriesConfig struct {
	Expansion   string `yaml:"expansion"` // per_node, concurrent
	Concurrency int    `yaml:"concurrency"`
	MaxDepth    int    `yaml:"max_depth"`
}

// ExpansionStrategy returns the configured expansion strategy.
func (c *CategoriesConfig) ExpansionStrategy() sleekshop.CategoryExpansion {
	if c.Expansion == "concurrent" {
		return sleekshop.ExpandConcurrent(c.Concurrency)
	}
	return sleekshop.ExpandPerNode()
}

// MenuConfig defines the menu cache refresh.
type MenuConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"` // 0 disables scheduled refresh
	Languages       []string      `yaml:"languages"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML config content, performing environment variable
// substitution and validation.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applySleekshopDefaults(&cfg.Sleekshop)
	applyTransportDefaults(&cfg.Transport)
	applySessionDefaults(&cfg.Session)
	applyCategoriesDefaults(&cfg.Categories)
	applyMenuDefaults(&cfg.Menu, cfg.Sleekshop.DefaultLanguage)
	applyServerDefaults(&cfg.Server)
	applyLoggingDefaults(&cfg.Logging)
}

func applySleekshopDefaults(s *SleekshopConfig) {
	defaults := domain.DefaultOptions()
	if s.DefaultLanguage == "" {
		s.DefaultLanguage = defaults.DefaultLanguage
	}
	if s.Token == "" {
		s.Token = defaults.Token
	}
	if s.ProductImageThumbHeight == 0 {
		s.ProductImageThumbHeight = defaults.ProductImageThumbHeight
	}
	if s.ChainingField == "" {
		s.ChainingField = defaults.ChainingField
	}
}

func applyTransportDefaults(t *TransportConfig) {
	if t.Timeout == 0 {
		t.Timeout = 30 * time.Second
	}
	if t.UserAgent == "" {
		t.UserAgent = sleekshop.DefaultUserAgent
	}
	if t.RetryInterval == 0 {
		t.RetryInterval = 500 * time.Millisecond
	}
	if t.RateLimit.PerSecond > 0 && t.RateLimit.Burst == 0 {
		t.RateLimit.Burst = 1
	}
}

func applySessionDefaults(s *SessionConfig) {
	if s.StorageMethod == "" {
		s.StorageMethod = string(sleekshop.StorageCookie)
	}
	if s.CookiePath == "" {
		s.CookiePath = "/"
	}
	if s.Backend == "" {
		s.Backend = "memory"
	}
	if s.TTL == 0 {
		s.TTL = 24 * time.Hour
	}
	if s.Redis.Addr == "" {
		s.Redis.Addr = "localhost:6379"
	}
}

func applyCategoriesDefaults(c *CategoriesConfig) {
	if c.Expansion == "" {
		c.Expansion = "per_node"
	}
	if c.Concurrency == 0 {
		c.Concurrency = 4
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = 32
	}
}

func applyMenuDefaults(m *MenuConfig, lang string) {
	if len(m.Languages) == 0 {
		m.Languages = []string{lang}
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Sleekshop.Endpoint == "" {
		errs = append(errs, fmt.Errorf("sleekshop.endpoint is required"))
	}
	if cfg.Sleekshop.LicenceUsername == "" {
		errs = append(errs, fmt.Errorf("sleekshop.licence_username is required"))
	}
	if cfg.Sleekshop.LicencePassword == "" {
		errs = append(errs, fmt.Errorf("sleekshop.licence_password is required"))
	}
	if cfg.Sleekshop.ProductImageThumbHeight < 0 {
		errs = append(errs, fmt.Errorf("sleekshop.product_image_thumb_height must not be negative"))
	}

	method, err := sleekshop.ParseStorageMethod(cfg.Session.StorageMethod)
	if err != nil {
		errs = append(errs, fmt.Errorf("session.storage_method: %w", err))
	}
	if method == sleekshop.StorageSession {
		switch cfg.Session.Backend {
		case "memory", "redis":
		default:
			errs = append(
				errs,
				fmt.Errorf("session.backend must be one of: memory, redis (got %q)", cfg.Session.Backend),
			)
		}
	}

	switch cfg.Categories.Expansion {
	case "per_node", "concurrent":
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"categories.expansion must be one of: per_node, concurrent (got %q)",
				cfg.Categories.Expansion,
			),
		)
	}
	if cfg.Categories.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("categories.concurrency must be at least 1"))
	}

	for _, lang := range cfg.Menu.Languages {
		if !languageTag.MatchString(lang) {
			errs = append(errs, fmt.Errorf("menu.languages: invalid language tag %q", lang))
		}
	}

	if cfg.Menu.RefreshInterval > 0 && cfg.Sleekshop.TemplatePath == "" {
		errs = append(
			errs,
			fmt.Errorf("sleekshop.template_path is required when menu.refresh_interval is set"),
		)
	}

	return errors.Join(errs...)
}
