package main

import "errors"

// KnownMetrics is the set of metric names exported by sleekshop-go plus
// the recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Storefront HTTP metrics.
	"sleekshop_http_request_duration_seconds": true,
	"sleekshop_http_requests_total":           true,

	// Health metrics.
	"sleekshop_healthz_up": true,
	"sleekshop_readyz_up":  true,

	// Backend API metrics.
	"sleekshop_api_requests_total":           true,
	"sleekshop_api_request_duration_seconds": true,
	"sleekshop_transport_retries_total":      true,
	"sleekshop_rate_limit_waits_total":       true,

	// Session metrics.
	"sleekshop_session_acquisitions_total":  true,
	"sleekshop_session_invalidations_total": true,

	// Category and menu metrics.
	"sleekshop_category_fetches_total":    true,
	"sleekshop_menu_cache_hits_total":     true,
	"sleekshop_menu_cache_misses_total":   true,
	"sleekshop_menu_refresh_errors_total": true,

	// Recording rules.
	"sleekshop:http_requests:rate5m":       true,
	"sleekshop:http_errors:rate5m":         true,
	"sleekshop:api_requests:rate5m":        true,
	"sleekshop:api_failures:rate5m":        true,
	"sleekshop:session_failures:rate5m":    true,
	"sleekshop:menu_cache_lookups:rate5m":  true,
	"sleekshop:menu_refresh_errors:increase1h": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
