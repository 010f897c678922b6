package cmd

import (
	"fmt"
	"log/slog"

	"github.com/donaldgifford/sleekshop-go/internal/config"
	"github.com/donaldgifford/sleekshop-go/pkg/logger"
	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// newClient builds an SDK client from the loaded config.
func newClient(cfg *config.Config, log *slog.Logger) *sleekshop.Client {
	topts := []sleekshop.TransportOption{
		sleekshop.WithTimeout(cfg.Transport.Timeout),
		sleekshop.WithUserAgent(cfg.Transport.UserAgent),
	}
	if cfg.Transport.RateLimit.PerSecond > 0 {
		topts = append(topts, sleekshop.WithRateLimiter(
			sleekshop.NewRateLimiter(cfg.Transport.RateLimit.PerSecond, cfg.Transport.RateLimit.Burst),
		))
	}
	if cfg.Transport.MaxRetries > 0 {
		topts = append(topts, sleekshop.WithRetry(cfg.Transport.MaxRetries, cfg.Transport.RetryInterval))
	}

	return sleekshop.New(
		cfg.Sleekshop.Endpoint,
		cfg.Sleekshop.LicenceUsername,
		cfg.Sleekshop.LicencePassword,
		sleekshop.WithSecretKey(cfg.Sleekshop.LicenceSecretKey),
		sleekshop.WithOptions(cfg.Sleekshop.Options()),
		sleekshop.WithTransport(sleekshop.NewHTTPTransport(topts...)),
		sleekshop.WithLogger(log),
		sleekshop.WithCategoryExpansion(cfg.Categories.ExpansionStrategy()),
		sleekshop.WithMaxDepth(cfg.Categories.MaxDepth),
	)
}

// setup loads the config and returns a client logging at the configured level.
func setup() (*config.Config, *sleekshop.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, newClient(cfg, log), nil
}

// result turns an envelope into a value or a command error.
func result[T any](env *domain.Envelope[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if !env.OK() {
		return zero, fmt.Errorf("%s error: %s", env.Kind, env.Message)
	}
	return env.Response, nil
}
