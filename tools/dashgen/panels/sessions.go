package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SessionAcquisitions returns a timeseries panel of session token
// acquisitions by result.
func SessionAcquisitions() *timeseries.PanelBuilder {
	return timeseriesPanel("Session Acquisitions", "get_new_session calls by result", "ops").
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(rate(sleekshop_session_acquisitions_total{job="%s"}[5m])) by (result)`, Job),
			"{{result}}", "A",
		))
}

// SessionInvalidations returns a timeseries panel of dropped sessions by
// reason.
func SessionInvalidations() *timeseries.PanelBuilder {
	return timeseriesPanel("Session Invalidations", "Sessions dropped after backend errors", "ops").
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(rate(sleekshop_session_invalidations_total{job="%s"}[5m])) by (reason)`, Job),
			"{{reason}}", "A",
		))
}
