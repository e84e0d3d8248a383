package container

import (
	"github.com/gogpu/compose"
)

// linear lays children out along one axis.
type linear struct {
	children []*compose.Object
	o        options
}

// NewLinear places children in a row or column with uniform spacing and
// cross-axis alignment.
func NewLinear(children []*compose.Object, opts ...Option) (*compose.Object, error) {
	const op = "container.NewLinear"
	o, err := buildOptions(op, opts)
	if err != nil {
		return nil, err
	}
	if err := checkChildren(op, children); err != nil {
		return nil, err
	}
	return compose.New(&linear{children: children, o: o}, o.box...)
}

func (l *linear) Children() []*compose.Object { return l.children }

func (l *linear) extent() (main, cross int) {
	for i, c := range l.children {
		m, x := mainCross(l.o.direction, c)
		main += m
		if i > 0 {
			main += l.o.spacing
		}
		cross = max(cross, x)
	}
	return main, cross
}

func (l *linear) Size() (int, int) {
	main, cross := l.extent()
	return point(l.o.direction, main, cross)
}

func (l *linear) Draw() (*compose.Image, error) {
	_, cross := l.extent()
	out := make([]placed, len(l.children))
	pos := 0
	for i, c := range l.children {
		m, x := mainCross(l.o.direction, c)
		px, py := point(l.o.direction, pos, l.o.align.Offset(cross, x))
		out[i] = placed{obj: c, x: px, y: py}
		pos += m + l.o.spacing
	}
	w, h := l.Size()
	return drawPlaced(w, h, out)
}
