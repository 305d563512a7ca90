// internal/chart/options.go
// Package chart derives declarative chart options from an accumulated trial
// history and owns the component that keeps a rendering surface up to date.
package chart

// Series types understood by a rendering surface.
const (
	SeriesLine    = "line"
	SeriesBar     = "bar"
	SeriesScatter = "scatter"
)

// Axis types.
const (
	AxisCategory = "category"
	AxisValue    = "value"
)

// Title labels the whole chart.
type Title struct {
	Text string `json:"text,omitempty"`
}

// Tooltip configures hover/inspect behavior on the surface.
type Tooltip struct {
	Trigger string `json:"trigger,omitempty"`
}

// Toolbox lists the interactive tools the surface should expose.
type Toolbox struct {
	Features []string `json:"features,omitempty"`
}

// Legend names the series shown in the chart legend.
type Legend struct {
	Data []string `json:"data,omitempty"`
}

// Grid positions the plotting area within the drawable region.
type Grid struct {
	Left         string `json:"left,omitempty"`
	Right        string `json:"right,omitempty"`
	Bottom       string `json:"bottom,omitempty"`
	ContainLabel bool   `json:"containLabel,omitempty"`
}

// Axis describes one x or y axis. Category axes carry label data; value
// axes carry a name only.
type Axis struct {
	Type string   `json:"type"`
	Name string   `json:"name,omitempty"`
	Data []string `json:"data,omitempty"`
}

// Series is one plotted sequence. Data is index-aligned with the category
// axis labels.
type Series struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	YAxisIndex int       `json:"yAxisIndex"`
	Data       []float64 `json:"data"`
}

// Options is the full, immutable-per-render chart description. It is
// recomputed from the trial history on every update and replaces the
// previous options wholesale; surfaces never patch it incrementally.
type Options struct {
	Title     Title    `json:"title"`
	Tooltip   Tooltip  `json:"tooltip"`
	Toolbox   Toolbox  `json:"toolbox"`
	Legend    Legend   `json:"legend"`
	Grid      Grid     `json:"grid"`
	XAxis     []Axis   `json:"xAxis"`
	YAxis     []Axis   `json:"yAxis"`
	Series    []Series `json:"series"`
	Animation bool     `json:"animation"`
}
