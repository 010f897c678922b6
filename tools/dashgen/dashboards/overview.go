// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/sleekshop-go/tools/dashgen/panels"
)

// BuildOverview constructs the storefront overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Sleekshop Overview").
		Uid("sleekshop-overview").
		Tags([]string{"sleekshop", "storefront"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.BackendSuccessGauge()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("Storefront HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Backend API").
		WithPanel(panels.APIRequestsByOutcome()).
		WithPanel(panels.APILatencyByRequest()).
		WithPanel(panels.RetriesStat()).
		WithPanel(panels.RateLimitWaits()))

	b.WithRow(dashboard.NewRowBuilder("Sessions").
		WithPanel(panels.SessionAcquisitions()).
		WithPanel(panels.SessionInvalidations()))

	b.WithRow(dashboard.NewRowBuilder("Categories & Menu").
		WithPanel(panels.MenuCacheHitRatio()).
		WithPanel(panels.CategoryFetches()).
		WithPanel(panels.MenuRefreshErrors()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
