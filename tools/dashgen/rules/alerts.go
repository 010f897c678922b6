package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// storefront operational monitoring.
func AlertRules() PrometheusRule {
	return newPrometheusRule("sleekshop-alerts", RuleGroup{
		Name: "sleekshop-alerts",
		Rules: []Rule{
			alert("SleekshopDown",
				`absent(up{job="sleekshop-storefront"})`, "2m", "critical",
				"Sleekshop storefront is down",
				"The sleekshop-storefront job has been absent for more than 2 minutes."),
			alert("SleekshopBackendUnreachable",
				`sleekshop_readyz_up == 0`, "2m", "critical",
				"Sleekshop backend is unreachable",
				"The readiness probe has failed to reach the shop backend for more than 2 minutes."),
			alert("SleekshopHighErrorRate",
				`sleekshop:http_errors:rate5m / sleekshop:http_requests:rate5m > 0.05`, "5m", "warning",
				"High storefront error rate",
				"More than 5% of storefront requests are returning 5xx errors over the last 5 minutes."),
			alert("SleekshopBackendFailures",
				`sleekshop:api_failures:rate5m / sleekshop:api_requests:rate5m > 0.1`, "5m", "warning",
				"Backend calls are failing",
				"More than 10% of backend calls returned an error envelope over the last 5 minutes."),
			alert("SleekshopSessionAcquisitionFailing",
				`sleekshop:session_failures:rate5m > 0`, "5m", "warning",
				"Session tokens cannot be acquired",
				"get_new_session has been failing for more than 5 minutes; carts cannot be created."),
			alert("SleekshopMenuRefreshFailing",
				`sleekshop:menu_refresh_errors:increase1h > 2`, "0m", "warning",
				"Menu cache refreshes are failing",
				"More than two scheduled menu refreshes failed in the last hour; menus may be stale."),
		},
	})
}
