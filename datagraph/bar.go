package datagraph

import (
	"image/color"
	"math"
	"strconv"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/container"
	"github.com/gogpu/compose/text"
)

// Defaults for NewBarChart.
const (
	DefaultPlotHeight = 200
	DefaultBarWidth   = 30
	DefaultBarSpacing = 10
)

// labelWidth bounds a single-line label.
const labelWidth = 1 << 14

type barOptions struct {
	plotHeight int
	barWidth   int
	barSpacing int
	barColor   color.Color
	maxValue   float64
	labelStyle *text.Resolved
	format     func(float64) string
	box        []compose.Option
}

// BarOption configures NewBarChart.
type BarOption func(*barOptions)

// WithPlotHeight sets the height of a bar at the maximum value.
func WithPlotHeight(px int) BarOption {
	return func(o *barOptions) { o.plotHeight = px }
}

// WithBarWidth sets the width of each bar.
func WithBarWidth(px int) BarOption {
	return func(o *barOptions) { o.barWidth = px }
}

// WithBarSpacing sets the gap between bars.
func WithBarSpacing(px int) BarOption {
	return func(o *barOptions) { o.barSpacing = px }
}

// WithBarColor sets the bar fill.
func WithBarColor(c color.Color) BarOption {
	return func(o *barOptions) { o.barColor = c }
}

// WithMaxValue fixes the value drawn at full plot height. By default it is
// the largest value.
func WithMaxValue(v float64) BarOption {
	return func(o *barOptions) { o.maxValue = v }
}

// WithLabelStyle enables value and category labels in style.
func WithLabelStyle(style text.Resolved) BarOption {
	return func(o *barOptions) { o.labelStyle = &style }
}

// WithValueFormat formats value labels. The default is the shortest
// decimal representation.
func WithValueFormat(fn func(float64) string) BarOption {
	return func(o *barOptions) { o.format = fn }
}

// WithBox applies box model options to the chart object.
func WithBox(opts ...compose.Option) BarOption {
	return func(o *barOptions) { o.box = append(o.box, opts...) }
}

// NewBarChart draws one vertical bar per value, bottoms aligned. With a
// label style each bar carries its value above it and its category label
// below it.
func NewBarChart(values []float64, labels []string, opts ...BarOption) (*compose.Object, error) {
	const op = "datagraph.NewBarChart"
	o := barOptions{
		plotHeight: DefaultPlotHeight,
		barWidth:   DefaultBarWidth,
		barSpacing: DefaultBarSpacing,
		barColor:   compose.Hex("#4477aa"),
		format:     func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
	}
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case len(values) == 0:
		return nil, compose.Constructionf(op, "no values")
	case len(labels) != 0 && len(labels) != len(values):
		return nil, compose.Constructionf(op, "%d labels for %d values", len(labels), len(values))
	case o.plotHeight <= 0 || o.barWidth <= 0 || o.barSpacing < 0:
		return nil, compose.Constructionf(op, "invalid plot height, bar width or spacing")
	case o.maxValue < 0:
		return nil, compose.Constructionf(op, "negative maximum %v", o.maxValue)
	}
	top := o.maxValue
	for i, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, compose.Constructionf(op, "value %d is %v", i, v)
		}
		if o.maxValue == 0 {
			top = max(top, v)
		}
	}
	if top == 0 {
		top = 1
	}

	columns := make([]*compose.Object, len(values))
	for i, v := range values {
		var label string
		if len(labels) > 0 {
			label = labels[i]
		}
		col, err := o.column(min(v, top)/top, o.format(v), label)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}
	return container.NewLinear(columns,
		container.WithSpacing(o.barSpacing),
		container.WithAlign(compose.AlignEnd),
		container.WithBox(o.box...))
}

// column builds one bar with its labels.
func (o *barOptions) column(fraction float64, value, label string) (*compose.Object, error) {
	height := int(math.Round(fraction * float64(o.plotHeight)))
	bar, err := compose.NewSpacer(o.barWidth, height, compose.WithBackground(o.barColor))
	if err != nil {
		return nil, err
	}
	if o.labelStyle == nil {
		return bar, nil
	}

	valueLabel, err := o.label(value)
	if err != nil {
		return nil, err
	}
	plot, err := container.NewFixed([]*compose.Object{valueLabel, bar},
		max(o.barWidth, valueLabel.Width()), o.plotHeight+valueLabel.Height(),
		container.WithDirection(container.Vertical),
		container.WithJustify(container.JustifyEnd),
		container.WithAlign(compose.AlignCenter))
	if err != nil {
		return nil, err
	}
	parts := []*compose.Object{plot}
	if label != "" {
		cat, err := o.label(label)
		if err != nil {
			return nil, err
		}
		parts = append(parts, cat)
	}
	return container.NewLinear(parts,
		container.WithDirection(container.Vertical),
		container.WithAlign(compose.AlignCenter))
}

func (o *barOptions) label(s string) (*compose.Object, error) {
	elems, err := text.NewText(s, *o.labelStyle)
	if err != nil {
		return nil, err
	}
	return text.NewParagraph(elems, labelWidth, text.WithAlign(compose.AlignCenter))
}
