package container

import (
	"github.com/gogpu/compose"
)

// Direction is the main axis of a container.
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Justify distributes free space along the main axis of a Fixed container.
type Justify uint8

const (
	JustifyStart        Justify = iota // pack at start
	JustifyEnd                         // pack at end
	JustifyCenter                      // center the group
	JustifySpaceBetween                // even gaps, none at the edges
	JustifySpaceAround                 // even space around each child
	JustifySpaceEvenly                 // equal gaps including the edges
)

type options struct {
	direction     Direction
	spacing       int
	align         compose.Align
	justify       Justify
	width, height int
	sized         bool
	box           []compose.Option
}

// Option configures a container.
type Option func(*options)

// WithDirection sets the main axis. The default is Horizontal.
func WithDirection(d Direction) Option {
	return func(o *options) { o.direction = d }
}

// WithSpacing puts px pixels between adjacent children.
func WithSpacing(px int) Option {
	return func(o *options) { o.spacing = px }
}

// WithAlign sets cross-axis alignment. Stack containers align on both
// axes.
func WithAlign(a compose.Align) Option {
	return func(o *options) { o.align = a }
}

// WithJustify sets main-axis distribution for Fixed containers.
func WithJustify(j Justify) Option {
	return func(o *options) { o.justify = j }
}

// WithSize gives a Relative container an explicit content size.
func WithSize(width, height int) Option {
	return func(o *options) { o.width, o.height, o.sized = width, height, true }
}

// WithBox applies box model options to the container object.
func WithBox(opts ...compose.Option) Option {
	return func(o *options) { o.box = append(o.box, opts...) }
}

func buildOptions(op string, opts []Option) (options, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.spacing < 0 {
		return o, compose.Constructionf(op, "negative spacing %d", o.spacing)
	}
	if o.width < 0 || o.height < 0 {
		return o, compose.Constructionf(op, "negative size %dx%d", o.width, o.height)
	}
	return o, nil
}

func checkChildren(op string, children []*compose.Object) error {
	for i, c := range children {
		if c == nil {
			return compose.Constructionf(op, "child %d is nil", i)
		}
	}
	return nil
}

// placed is a child at a position inside the container's content box.
type placed struct {
	obj  *compose.Object
	x, y int
}

// drawPlaced renders children onto a w x h canvas.
func drawPlaced(w, h int, children []placed) (*compose.Image, error) {
	out := compose.NewImage(w, h)
	err := out.Edit(func(dst *compose.Image) error {
		for _, c := range children {
			img, err := c.obj.Render()
			if err != nil {
				return err
			}
			dst.Paste(c.x, c.y, img)
		}
		return nil
	})
	return out, err
}

// mainCross maps a child's size to main and cross axis lengths.
func mainCross(d Direction, obj *compose.Object) (int, int) {
	if d == Vertical {
		return obj.Height(), obj.Width()
	}
	return obj.Width(), obj.Height()
}

// point maps main and cross axis offsets back to x, y.
func point(d Direction, main, cross int) (int, int) {
	if d == Vertical {
		return cross, main
	}
	return main, cross
}
