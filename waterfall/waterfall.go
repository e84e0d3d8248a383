package waterfall

import (
	"github.com/gogpu/compose"
	"github.com/gogpu/compose/container"
)

type options struct {
	ordered       bool
	columnSpacing int
	itemSpacing   int
	box           []compose.Option
}

// Option configures New.
type Option func(*options)

// WithOrdered keeps items in reading order down each column and across
// columns. It is on by default; turning it off lets items move between
// columns for a better balance.
func WithOrdered(on bool) Option {
	return func(o *options) { o.ordered = on }
}

// WithColumnSpacing puts px pixels between columns.
func WithColumnSpacing(px int) Option {
	return func(o *options) { o.columnSpacing = px }
}

// WithItemSpacing puts px pixels between items in a column.
func WithItemSpacing(px int) Option {
	return func(o *options) { o.itemSpacing = px }
}

// WithBox applies box model options to the outer object.
func WithBox(opts ...compose.Option) Option {
	return func(o *options) { o.box = append(o.box, opts...) }
}

// New arranges items into columns of balanced height.
func New(items []*compose.Object, columns int, opts ...Option) (*compose.Object, error) {
	const op = "waterfall.New"
	o := options{ordered: true}
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case len(items) == 0:
		return nil, compose.Constructionf(op, "no items")
	case columns <= 0:
		return nil, compose.Constructionf(op, "column count %d", columns)
	case o.columnSpacing < 0 || o.itemSpacing < 0:
		return nil, compose.Constructionf(op, "negative spacing")
	}

	// Columns adopt their members as they are built, so ownership is
	// checked for every item first.
	heights := make([]int, len(items))
	seen := make(map[*compose.Object]bool, len(items))
	for i, it := range items {
		switch {
		case it == nil:
			return nil, compose.Constructionf(op, "item %d is nil", i)
		case it.Parent() != nil || seen[it]:
			return nil, compose.Constructionf(op, "item %d already has an owner", i)
		}
		seen[it] = true
		heights[i] = it.Height() + o.itemSpacing
	}
	split := SplitOrdered
	if !o.ordered {
		split = SplitUnordered
	}
	groups := split(heights, columns)
	compose.Logger().Debug("waterfall split",
		"items", len(items), "columns", len(groups), "ordered", o.ordered)

	cols := make([]*compose.Object, 0, len(groups))
	for _, g := range groups {
		if len(g) == 0 {
			// More columns than items.
			continue
		}
		members := make([]*compose.Object, len(g))
		for j, idx := range g {
			members[j] = items[idx]
		}
		col, err := container.NewLinear(members,
			container.WithDirection(container.Vertical), container.WithSpacing(o.itemSpacing))
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return container.NewLinear(cols,
		container.WithSpacing(o.columnSpacing), container.WithBox(o.box...))
}
