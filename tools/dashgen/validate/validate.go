// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/sleekshop-go/tools/dashgen/rules"
)

// histogramSuffixes are the series Prometheus derives from a histogram.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings. Errors fail generation, warnings
// do not.
type Result struct {
	Errors   []error
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Errorf(format, args...))
}

// Dashboard validates the Prometheus targets of every panel, including
// panels nested in rows.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) *Result {
	res := &Result{}
	for _, p := range dash.Panels {
		if p.Panel != nil {
			panel(res, *p.Panel, known)
		}
		if p.RowPanel != nil {
			for _, inner := range p.RowPanel.Panels {
				panel(res, inner, known)
			}
		}
	}
	return res
}

// Rules validates every expression of a rule resource.
func Rules(cr rules.PrometheusRule, known map[string]bool) *Result {
	res := &Result{}
	for _, expr := range cr.Exprs() {
		Expr(res, cr.Metadata.Name, expr, known)
	}
	return res
}

func panel(res *Result, p dashboard.Panel, known map[string]bool) {
	title := ""
	if p.Title != nil {
		title = *p.Title
	}
	if len(p.Targets) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q has no targets", title))
		return
	}
	for _, t := range p.Targets {
		expr, err := targetExpr(t)
		if err != nil {
			res.errorf("panel %q: %w", title, err)
			continue
		}
		if expr == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q: skipping %T target", title, t))
			continue
		}
		Expr(res, "panel "+title, expr, known)
	}
}

// targetExpr reads the PromQL expression of a target through its JSON
// form, which is the same for every dataquery variant.
func targetExpr(t any) (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encoding target: %w", err)
	}
	var q struct {
		Expr string `json:"expr"`
	}
	if err := json.Unmarshal(data, &q); err != nil {
		return "", fmt.Errorf("decoding target: %w", err)
	}
	return q.Expr, nil
}

// Expr parses expr and records an error for every selector whose metric
// name is not known. where prefixes the messages.
func Expr(res *Result, where, expr string, known map[string]bool) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("%s: parsing %q: %w", where, expr, err)
		return
	}
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		name := metricName(vs)
		if name == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: selector without metric name in %q", where, expr))
			return nil
		}
		if !isKnown(name, known) {
			res.errorf("%s: unknown metric %q", where, name)
		}
		return nil
	})
}

func metricName(vs *parser.VectorSelector) string {
	if vs.Name != "" {
		return vs.Name
	}
	for _, m := range vs.LabelMatchers {
		if m.Name == labels.MetricName && m.Type == labels.MatchEqual {
			return m.Value
		}
	}
	return ""
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
