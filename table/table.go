package table

import (
	"errors"
	"image/color"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/markup"
	"github.com/gogpu/compose/text"
)

// Cell builds a cell's content for a given column content width. Cells
// may be called more than once: once to measure their natural width and
// again per layout attempt.
type Cell func(width int) (*compose.Object, error)

// Fixed is a cell whose content does not depend on the column width.
func Fixed(obj *compose.Object) Cell {
	return func(int) (*compose.Object, error) { return obj, nil }
}

// Markup is a cell holding a markup paragraph wrapped to the column width.
func Markup(doc *markup.Document, src string, opts ...text.ParagraphOption) Cell {
	return func(width int) (*compose.Object, error) {
		return doc.Paragraph(src, width, opts...)
	}
}

// Text is a cell holding plain text in one style.
func Text(s string, style text.Resolved, opts ...text.ParagraphOption) Cell {
	return func(width int) (*compose.Object, error) {
		elems, err := text.NewText(s, style)
		if err != nil {
			return nil, err
		}
		return text.NewParagraph(elems, width, opts...)
	}
}

type options struct {
	maxWidth    int
	minColumn   int
	threshold   float64
	border      int
	borderColor color.Color
	padding     int
	halign      compose.Align
	valign      compose.Align
	retryStep   int
	retryLimit  int
	box         []compose.Option
}

// Option configures a table.
type Option func(*options)

// WithMaxWidth limits the table's content width. It is required.
func WithMaxWidth(px int) Option {
	return func(o *options) { o.maxWidth = px }
}

// WithMinColumnWidth sets the narrowest allowed column.
func WithMinColumnWidth(px int) Option {
	return func(o *options) { o.minColumn = px }
}

// WithThreshold bounds the spread between widest and narrowest column as
// a fraction of the total width.
func WithThreshold(f float64) Option {
	return func(o *options) { o.threshold = f }
}

// WithBorder draws grid lines of width px around and between cells.
func WithBorder(px int, c color.Color) Option {
	return func(o *options) { o.border, o.borderColor = px, c }
}

// WithCellPadding puts px pixels around each cell's content.
func WithCellPadding(px int) Option {
	return func(o *options) { o.padding = px }
}

// WithCellAlign places cell content that is smaller than its cell.
func WithCellAlign(horizontal, vertical compose.Align) Option {
	return func(o *options) { o.halign, o.valign = horizontal, vertical }
}

// WithRetry retries a failed layout up to limit times, widening the
// maximum width by step each time. A table laid out wider than requested
// is scaled down to fit when drawn.
func WithRetry(step, limit int) Option {
	return func(o *options) { o.retryStep, o.retryLimit = step, limit }
}

// WithBox applies box model options to the table object.
func WithBox(opts ...compose.Option) Option {
	return func(o *options) { o.box = append(o.box, opts...) }
}

// New lays out rows of cells. All rows must have the same number of cells.
func New(rows [][]Cell, opts ...Option) (*compose.Object, error) {
	const op = "table.New"
	o := options{threshold: DefaultThreshold, borderColor: compose.Black}
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case len(rows) == 0 || len(rows[0]) == 0:
		return nil, compose.Constructionf(op, "empty table")
	case o.maxWidth <= 0:
		return nil, compose.Constructionf(op, "WithMaxWidth is required")
	case o.border < 0 || o.padding < 0 || o.minColumn < 0:
		return nil, compose.Constructionf(op, "negative border, padding or column width")
	case o.retryStep < 0 || o.retryLimit < 0:
		return nil, compose.Constructionf(op, "negative retry settings")
	}
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, compose.Constructionf(op, "row %d has %d cells, want %d", i, len(row), len(rows[0]))
		}
		for j, c := range row {
			if c == nil {
				return nil, compose.Constructionf(op, "cell %d,%d is nil", i, j)
			}
		}
	}

	maxWidth := o.maxWidth
	for attempt := 0; ; attempt++ {
		g, err := layout(rows, maxWidth, o)
		if err == nil {
			if maxWidth != o.maxWidth {
				g.target = o.maxWidth
			}
			return compose.New(g, o.box...)
		}
		retryable := errors.Is(err, compose.ErrLayout) || errors.Is(err, ErrMinWidth)
		if !retryable || attempt >= o.retryLimit || o.retryStep == 0 {
			return nil, err
		}
		compose.Logger().Debug("table layout retry",
			"attempt", attempt+1, "max_width", maxWidth, "error", err)
		maxWidth += o.retryStep
	}
}

// layout measures natural widths, normalizes them and builds the cells.
func layout(rows [][]Cell, maxWidth int, o options) (*grid, error) {
	const op = "table.New"
	cols := len(rows[0])
	chrome := (cols+1)*o.border + 2*o.padding*cols
	inner := maxWidth - chrome
	if inner <= 0 {
		return nil, &compose.LayoutError{Op: op, Reason: "borders and padding leave no room", MaxWidth: maxWidth}
	}

	natural := make([]int, cols)
	for _, row := range rows {
		for j, cell := range row {
			obj, err := cell(inner)
			if err != nil {
				return nil, err
			}
			natural[j] = max(natural[j], obj.Width())
		}
	}
	widths, err := NormalizeWidths(natural, inner, o.minColumn, o.threshold)
	if err != nil {
		return nil, err
	}

	g := &grid{o: o, widths: widths, heights: make([]int, len(rows))}
	for i, row := range rows {
		objs := make([]*compose.Object, cols)
		for j, cell := range row {
			obj, err := cell(widths[j])
			if err != nil {
				return nil, err
			}
			if obj.Width() > widths[j] {
				return nil, &compose.LayoutError{Op: op, Reason: "cell wider than its column", MaxWidth: maxWidth}
			}
			objs[j] = obj
			g.heights[i] = max(g.heights[i], obj.Height())
		}
		g.cells = append(g.cells, objs)
	}
	return g, nil
}
