package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var known = map[string]bool{
	"sleekshop_http_requests_total":           true,
	"sleekshop_http_request_duration_seconds": true,
	"sleekshop:http_requests:rate5m":          true,
}

func TestExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		expr       string
		wantErrors int
		wantWarn   int
	}{
		{
			name: "known counter",
			expr: `sum(rate(sleekshop_http_requests_total[5m]))`,
		},
		{
			name: "histogram bucket of known metric",
			expr: `histogram_quantile(0.95, sum(rate(sleekshop_http_request_duration_seconds_bucket[5m])) by (le))`,
		},
		{
			name: "recording rule name",
			expr: `sleekshop:http_requests:rate5m * 100`,
		},
		{
			name: "name matcher",
			expr: `{__name__="sleekshop_http_requests_total"}`,
		},
		{
			name:       "unknown metric",
			expr:       `rate(sleekshop_unknown_total[5m])`,
			wantErrors: 1,
		},
		{
			name:       "bucket of unknown metric",
			expr:       `rate(other_seconds_bucket[5m])`,
			wantErrors: 1,
		},
		{
			name:       "parse error",
			expr:       `sum(rate(`,
			wantErrors: 1,
		},
		{
			name:     "selector without name",
			expr:     `{job=~"sleek.*"}`,
			wantWarn: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := &Result{}
			Expr(res, "test", tt.expr, known)
			assert.Len(t, res.Errors, tt.wantErrors, "errors: %v", res.Errors)
			assert.Len(t, res.Warnings, tt.wantWarn, "warnings: %v", res.Warnings)
			assert.Equal(t, tt.wantErrors == 0, res.Ok())
		})
	}
}
