package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config with defaults",
			yaml: `
sleekshop:
  endpoint: https://demo.sleekshop.net/srv/service/
  licence_username: shop
  licence_password: secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "https://demo.sleekshop.net/srv/service/", cfg.Sleekshop.Endpoint)
				assert.Equal(t, "en_EN", cfg.Sleekshop.DefaultLanguage)
				assert.Equal(t, 100, cfg.Sleekshop.ProductImageThumbHeight)
				assert.Equal(t, "class", cfg.Sleekshop.ChainingField)
				assert.Equal(t, 30*time.Second, cfg.Transport.Timeout)
				assert.Equal(t, sleekshop.DefaultUserAgent, cfg.Transport.UserAgent)
				assert.Equal(t, uint64(0), cfg.Transport.MaxRetries)
				assert.Equal(t, 500*time.Millisecond, cfg.Transport.RetryInterval)
				assert.Equal(t, "cookie", cfg.Session.StorageMethod)
				assert.Equal(t, "/", cfg.Session.CookiePath)
				assert.Equal(t, "memory", cfg.Session.Backend)
				assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
				assert.Equal(t, "localhost:6379", cfg.Session.Redis.Addr)
				assert.Equal(t, "per_node", cfg.Categories.Expansion)
				assert.Equal(t, 4, cfg.Categories.Concurrency)
				assert.Equal(t, 32, cfg.Categories.MaxDepth)
				assert.Equal(t, []string{"en_EN"}, cfg.Menu.Languages)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
sleekshop:
  endpoint: https://demo.sleekshop.net/srv/service/
  licence_username: shop
  licence_password: "${TEST_SLEEKSHOP_PASSWORD}"
`,
			envVars: map[string]string{
				"TEST_SLEEKSHOP_PASSWORD": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Sleekshop.LicencePassword)
			},
		},
		{
			name: "missing required endpoint",
			yaml: `
sleekshop:
  licence_username: shop
  licence_password: secret
`,
			wantErr: "sleekshop.endpoint is required",
		},
		{
			name: "missing licence credentials",
			yaml: `
sleekshop:
  endpoint: https://demo.sleekshop.net/srv/service/
`,
			wantErr: "sleekshop.licence_username is required",
		},
		{
			name: "negative thumb height",
			yaml: `
sleekshop:
  endpoint: https://demo.sleekshop.net/srv/service/
  licence_username: shop
  licence_password: secret
  product_image_thumb_height: -5
`,
			wantErr: "product_image_thumb_height must not be negative",
		},
		{
			name: "invalid storage method",
			yaml: `
sleekshop:
  endpoint: https://demo.sleekshop.net/srv/service/
  licence_username: shop
  licence_password: secret
session:
  storage_method: database
`,
			wantErr: "session.storage_method",
		},
		{
			name: "invalid session backend",
			yaml: `
sleekshop:
  endpoint: https://demo.sleekshop.net/srv/service/
  licence_username: shop
  licence_password: secret
session:
  storage_method: session
  backend: memcached
`,
			wantErr: `session.backend must be one of: memory, redis (got "memcached")`,
		},
		{
			name: "invalid expansion",
			yaml: `
sleekshop:
  endpoint: https://demo.sleekshop.net/srv/service/
  licence_username: shop
  licence_password: secret
categories:
  expansion: breadth_first
`,
			wantErr: `categories.expansion must be one of: per_node, concurrent (got "breadth_first")`,
		},
		{
			name: "menu refresh without template path",
			yaml: `
sleekshop:
  endpoint: https://demo.sleekshop.net/srv/service/
  licence_username: shop
  licence_password: secret
menu:
  refresh_interval: 10m
`,
			wantErr: "sleekshop.template_path is required",
		},
		{
			name: "invalid menu language",
			yaml: `
sleekshop:
  endpoint: https://demo.sleekshop.net/srv/service/
  licence_username: shop
  licence_password: secret
menu:
  languages: [de_DE, ../evil]
`,
			wantErr: `menu.languages: invalid language tag "../evil"`,
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
sleekshop:
  endpoint: https://shop.example.com/srv/service/
  licence_username: shop
  licence_password: secret
  licence_secret_key: privileged
  default_language: en_EN
  token: abc
  product_image_thumb_height: 250
  template_path: /var/lib/shop
  categories_id: 7
  chaining_field: layout
transport:
  timeout: 10s
  user_agent: custom/1.0
  max_retries: 3
  retry_interval: 1s
  rate_limit:
    per_second: 5
session:
  storage_method: session
  backend: redis
  ttl: 1h
  cookie_secure: true
  redis:
    addr: redis:6379
    db: 2
categories:
  expansion: concurrent
  concurrency: 8
  max_depth: 10
menu:
  refresh_interval: 15m
  languages: [de_DE, en_EN]
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "privileged", cfg.Sleekshop.LicenceSecretKey)
				assert.Equal(t, "en_EN", cfg.Sleekshop.DefaultLanguage)
				assert.Equal(t, 250, cfg.Sleekshop.ProductImageThumbHeight)
				assert.Equal(t, 7, cfg.Sleekshop.CategoriesID)
				assert.Equal(t, 10*time.Second, cfg.Transport.Timeout)
				assert.Equal(t, "custom/1.0", cfg.Transport.UserAgent)
				assert.Equal(t, uint64(3), cfg.Transport.MaxRetries)
				assert.InDelta(t, 5.0, cfg.Transport.RateLimit.PerSecond, 0.001)
				assert.Equal(t, 1, cfg.Transport.RateLimit.Burst)
				assert.Equal(t, "redis", cfg.Session.Backend)
				assert.Equal(t, time.Hour, cfg.Session.TTL)
				assert.True(t, cfg.Session.CookieSecure)
				assert.Equal(t, "redis:6379", cfg.Session.Redis.Addr)
				assert.Equal(t, 2, cfg.Session.Redis.DB)
				assert.Equal(t, 8, cfg.Categories.Concurrency)
				assert.Equal(t, 10, cfg.Categories.MaxDepth)
				assert.Equal(t, 15*time.Minute, cfg.Menu.RefreshInterval)
				assert.Equal(t, []string{"de_DE", "en_EN"}, cfg.Menu.Languages)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestSleekshopConfig_Options(t *testing.T) {
	t.Parallel()

	s := SleekshopConfig{
		DefaultLanguage:         "en_EN",
		Token:                   "tok",
		ProductImageThumbHeight: 80,
		TemplatePath:            "/tmp/shop",
		CategoriesID:            3,
		ChainingField:           "layout",
	}

	opts := s.Options()
	assert.Equal(t, "en_EN", opts.DefaultLanguage)
	assert.Equal(t, "tok", opts.Token)
	assert.Equal(t, 80, opts.ProductImageThumbHeight)
	assert.Equal(t, "/tmp/shop", opts.TemplatePath)
	assert.Equal(t, 3, opts.CategoriesID)
	assert.Equal(t, "layout", opts.ChainingField)
}

func TestCategoriesConfig_ExpansionStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  CategoriesConfig
		want sleekshop.CategoryExpansion
	}{
		{
			name: "per node",
			cfg:  CategoriesConfig{Expansion: "per_node"},
			want: sleekshop.ExpandPerNode(),
		},
		{
			name: "concurrent",
			cfg:  CategoriesConfig{Expansion: "concurrent", Concurrency: 6},
			want: sleekshop.ExpandConcurrent(6),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.ExpansionStrategy())
		})
	}
}
