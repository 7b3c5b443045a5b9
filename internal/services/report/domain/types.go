// Package domain holds report queries, results and the ports around them
package domain

// Experiment is one collected experiment document, decoded from JSON
type Experiment = map[string]any

// Filter keeps experiments whose value at Key equals Value, or for which Expr is true
// exactly one of Key and Expr is set
type Filter struct {
	Key   string `json:"key,omitempty" yaml:"key,omitempty" validate:"required_without=Expr,excluded_with=Expr,jsonpath"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
	Expr  string `json:"expr,omitempty" yaml:"expr,omitempty"`
}

// Query selects the axes of the chart, the grouping and the filters applied in order
// paths are JSONPath: "params.lr", "$.metrics[0].acc", "$.runs[*].loss"
type Query struct {
	XAxis   string   `json:"x_axis" yaml:"x_axis" validate:"required,jsonpath"`
	YAxis   string   `json:"y_axis" yaml:"y_axis" validate:"required,jsonpath"`
	GroupBy string   `json:"group_by,omitempty" yaml:"group_by,omitempty" validate:"jsonpath"`
	Filters []Filter `json:"filters,omitempty" yaml:"filters,omitempty" validate:"dive"`
}

// DefaultGroupBy is the group path when Query.GroupBy is empty
const DefaultGroupBy = "params"

// LegendEntry maps a series label to the parameters it was grouped on
type LegendEntry struct {
	Label  string `json:"label" yaml:"label"`
	Params any    `json:"params" yaml:"params"`
}

// Series is one line of the chart
type Series struct {
	Label string `json:"label" yaml:"label"`
	X     []any  `json:"x" yaml:"x"`
	Y     []any  `json:"y" yaml:"y"`
}

// Report is the grouped chart data for one query
type Report struct {
	Legend  []LegendEntry `json:"legend" yaml:"legend"`
	Series  []Series      `json:"series" yaml:"series"`
	Loaded  int           `json:"loaded" yaml:"loaded"`
	Matched int           `json:"matched" yaml:"matched"`
	Skipped int           `json:"skipped" yaml:"skipped"`
}

// Points returns the number of points across every series
func (r Report) Points() int {
	n := 0
	for _, s := range r.Series {
		n += len(s.X)
	}
	return n
}
