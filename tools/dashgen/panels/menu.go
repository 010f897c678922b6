package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// MenuCacheHitRatio returns a timeseries panel of the menu cache hit ratio.
func MenuCacheHitRatio() *timeseries.PanelBuilder {
	return timeseriesPanel("Menu Cache Hit %", "Menu lookups served from the file cache", "percent").
		Span(8).
		WithTarget(PromQuery(
			fmt.Sprintf(
				`sum(rate(sleekshop_menu_cache_hits_total{job="%s"}[5m])) / sleekshop:menu_cache_lookups:rate5m * 100`,
				Job,
			),
			"hit %", "A",
		))
}

// CategoryFetches returns a timeseries panel of get_categories round trips
// issued while expanding category trees.
func CategoryFetches() *timeseries.PanelBuilder {
	return timeseriesPanel("Category Fetches", "get_categories round trips per second", "reqps").
		Span(8).
		WithTarget(PromQuery(
			fmt.Sprintf(`rate(sleekshop_category_fetches_total{job="%s"}[5m])`, Job),
			"fetches/s", "A",
		))
}

// MenuRefreshErrors returns a stat panel of failed scheduled refreshes in
// the last hour.
func MenuRefreshErrors() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Menu Refresh Errors (1h)").
		Description("Scheduled menu refreshes that failed").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`sleekshop:menu_refresh_errors:increase1h`, "", "A")).
		Thresholds(Warn(1, 3)).
		ColorScheme(colorBy(dashboard.FieldColorModeIdThresholds)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
