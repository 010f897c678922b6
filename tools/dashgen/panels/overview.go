package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func upStat(title, description, metric string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(metric, "", "A")).
		Thresholds(Steps("red", Step{1, "green"})).
		ColorScheme(colorBy(dashboard.FieldColorModeIdThresholds)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// HealthzStat returns a stat panel showing the liveness probe status.
func HealthzStat() *stat.PanelBuilder {
	return upStat("Healthz", "Liveness probe status (1 = ok, 0 = failing)", `sleekshop_healthz_up`)
}

// ReadyzStat returns a stat panel showing whether the backend is reachable.
func ReadyzStat() *stat.PanelBuilder {
	return upStat("Readyz", "Backend reachability (1 = ready, 0 = unreachable)", `sleekshop_readyz_up`)
}

// BackendSuccessGauge returns a gauge panel showing the share of backend
// calls that came back as success envelopes.
func BackendSuccessGauge() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("Backend Success %").
		Description("Backend calls returning a success envelope").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`(1 - sleekshop:api_failures:rate5m / sleekshop:api_requests:rate5m) * 100`,
			"", "A",
		)).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(Steps("red", Step{95, "green"})).
		ColorScheme(colorBy(dashboard.FieldColorModeIdThresholds))
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Uptime").
		Description("Time since process start").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`time() - process_start_time_seconds{job="%s"}`, Job),
			"", "A",
		)).
		Unit("s").
		Thresholds(Steps("green")).
		ColorScheme(colorBy(dashboard.FieldColorModeIdThresholds)).
		GraphMode(common.BigValueGraphModeNone)
}
