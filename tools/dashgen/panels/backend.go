package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APIRequestsByOutcome returns a timeseries panel of backend calls split by
// envelope outcome (success, transport, http, malformed, backend).
func APIRequestsByOutcome() *timeseries.PanelBuilder {
	return timeseriesPanel("Backend Calls by Outcome", "Backend calls per second by envelope kind", "reqps").
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(rate(sleekshop_api_requests_total{job="%s"}[5m])) by (outcome)`, Job),
			"{{outcome}}", "A",
		)).
		Legend(tableLegend("mean", "max"))
}

// APILatencyByRequest returns a timeseries panel of p95 backend latency per
// operation.
func APILatencyByRequest() *timeseries.PanelBuilder {
	return timeseriesPanel("Backend Latency (p95)", "95th percentile backend round trip by request", "s").
		WithTarget(PromQuery(
			histogramQuantile(0.95, "sleekshop_api_request_duration_seconds", "request"),
			"{{request}}", "A",
		)).
		Thresholds(Warn(1, 5))
}

// RetriesStat returns a stat panel of transport retries in the last hour.
func RetriesStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Transport Retries (1h)").
		Description("Backend calls retried after a connection failure").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`increase(sleekshop_transport_retries_total{job="%s"}[1h])`, Job),
			"", "A",
		)).
		Thresholds(Warn(1, 10)).
		ColorScheme(colorBy(dashboard.FieldColorModeIdThresholds)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// RateLimitWaits returns a timeseries panel of calls delayed by the client
// side rate limiter.
func RateLimitWaits() *timeseries.PanelBuilder {
	return timeseriesPanel("Rate Limit Waits", "Backend calls delayed by the rate limiter", "ops").
		Span(StatWidth * 3).
		WithTarget(PromQuery(
			fmt.Sprintf(`rate(sleekshop_rate_limit_waits_total{job="%s"}[5m])`, Job),
			"waits/s", "A",
		))
}
