package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate returns a timeseries panel showing the storefront request rate.
func RequestRate() *timeseries.PanelBuilder {
	return timeseriesPanel("Request Rate", "Storefront HTTP requests per second", "reqps").
		Span(8).
		WithTarget(PromQuery(`sleekshop:http_requests:rate5m`, "req/s", "A")).
		Legend(tableLegend("mean", "max"))
}

// LatencyPercentiles returns a timeseries panel showing p50, p95, and p99
// storefront request latencies.
func LatencyPercentiles() *timeseries.PanelBuilder {
	metric := "sleekshop_http_request_duration_seconds"
	return timeseriesPanel("Latency Percentiles", "Storefront request duration percentiles", "s").
		Span(8).
		WithTarget(PromQuery(histogramQuantile(0.50, metric, ""), "p50", "A")).
		WithTarget(PromQuery(histogramQuantile(0.95, metric, ""), "p95", "B")).
		WithTarget(PromQuery(histogramQuantile(0.99, metric, ""), "p99", "C")).
		Legend(tableLegend("mean", "max"))
}

// ErrorRate returns a timeseries panel showing the storefront 5xx rate as
// a percentage.
func ErrorRate() *timeseries.PanelBuilder {
	return timeseriesPanel("Error Rate %", "Storefront 5xx responses as percentage of all requests", "percent").
		Span(8).
		WithTarget(PromQuery(
			`sleekshop:http_errors:rate5m / sleekshop:http_requests:rate5m * 100`,
			"error %", "A",
		)).
		Thresholds(Warn(1, 5)).
		ColorScheme(colorBy(dashboard.FieldColorModeIdThresholds))
}
