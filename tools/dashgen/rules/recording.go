package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("sleekshop-recording-rules", RuleGroup{
		Name: "sleekshop-recording",
		Rules: []Rule{
			{
				Record: "sleekshop:http_requests:rate5m",
				Expr:   `sum(rate(sleekshop_http_requests_total[5m]))`,
			},
			{
				Record: "sleekshop:http_errors:rate5m",
				Expr:   `sum(rate(sleekshop_http_requests_total{status=~"5.."}[5m]))`,
			},
			{
				Record: "sleekshop:api_requests:rate5m",
				Expr:   `sum(rate(sleekshop_api_requests_total[5m]))`,
			},
			{
				Record: "sleekshop:api_failures:rate5m",
				Expr:   `sum(rate(sleekshop_api_requests_total{outcome!="success"}[5m]))`,
			},
			{
				Record: "sleekshop:session_failures:rate5m",
				Expr:   `sum(rate(sleekshop_session_acquisitions_total{result="failure"}[5m]))`,
			},
			{
				Record: "sleekshop:menu_cache_lookups:rate5m",
				Expr:   `sum(rate(sleekshop_menu_cache_hits_total[5m])) + sum(rate(sleekshop_menu_cache_misses_total[5m]))`,
			},
			{
				Record: "sleekshop:menu_refresh_errors:increase1h",
				Expr:   `sum(increase(sleekshop_menu_refresh_errors_total[1h]))`,
			},
		},
	})
}
