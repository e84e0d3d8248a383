package container

import (
	"fmt"

	"github.com/gogpu/compose"
)

// fixed lays children out along one axis inside an explicit size.
type fixed struct {
	children      []*compose.Object
	width, height int
	o             options
}

// NewFixed places children inside a width x height content box, spreading
// them along the main axis per WithJustify. Children that do not fit are
// a construction error.
func NewFixed(children []*compose.Object, width, height int, opts ...Option) (*compose.Object, error) {
	const op = "container.NewFixed"
	o, err := buildOptions(op, opts)
	if err != nil {
		return nil, err
	}
	if err := checkChildren(op, children); err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, compose.Constructionf(op, "negative size %dx%d", width, height)
	}
	f := &fixed{children: children, width: width, height: height, o: o}
	if _, err := f.layout(); err != nil {
		return nil, compose.Constructionf(op, "%v", err)
	}
	return compose.New(f, o.box...)
}

func (f *fixed) Children() []*compose.Object { return f.children }

func (f *fixed) Size() (int, int) { return f.width, f.height }

func (f *fixed) layout() ([]placed, error) {
	boxMain, boxCross := f.width, f.height
	if f.o.direction == Vertical {
		boxMain, boxCross = f.height, f.width
	}
	used := 0
	for i, c := range f.children {
		m, x := mainCross(f.o.direction, c)
		used += m
		if i > 0 {
			used += f.o.spacing
		}
		if x > boxCross {
			return nil, fmt.Errorf("child %d is %dpx across, box has %dpx", i, x, boxCross)
		}
	}
	if used > boxMain {
		return nil, fmt.Errorf("children need %dpx, box has %dpx", used, boxMain)
	}

	free, n := boxMain-used, len(f.children)
	pos, gap := justifyOffset(f.o.justify, free, n), justifySpacing(f.o.justify, free, n)
	out := make([]placed, n)
	for i, c := range f.children {
		m, x := mainCross(f.o.direction, c)
		px, py := point(f.o.direction, pos, f.o.align.Offset(boxCross, x))
		out[i] = placed{obj: c, x: px, y: py}
		pos += m + f.o.spacing + gap
	}
	return out, nil
}

func (f *fixed) Draw() (*compose.Image, error) {
	children, err := f.layout()
	if err != nil {
		return nil, &compose.RenderError{Resource: "fixed container", Err: err}
	}
	return drawPlaced(f.width, f.height, children)
}

// justifyOffset returns where the first child starts.
func justifyOffset(j Justify, free, n int) int {
	if free <= 0 || n == 0 {
		return 0
	}
	switch j {
	case JustifyEnd:
		return free
	case JustifyCenter:
		return free / 2
	case JustifySpaceAround:
		return free / (n * 2)
	case JustifySpaceEvenly:
		return free / (n + 1)
	default:
		return 0
	}
}

// justifySpacing returns the extra gap between children.
func justifySpacing(j Justify, free, n int) int {
	if free <= 0 || n == 0 {
		return 0
	}
	switch j {
	case JustifySpaceBetween:
		if n == 1 {
			return 0
		}
		return free / (n - 1)
	case JustifySpaceAround:
		return free / n
	case JustifySpaceEvenly:
		return free / (n + 1)
	default:
		return 0
	}
}
