package container

import (
	"github.com/gogpu/compose"
)

// stack draws children over each other.
type stack struct {
	children []*compose.Object
	o        options
}

// NewStack composites children at a common origin in order, so later
// children are drawn on top. The container is as large as its largest
// child; smaller children are placed per WithAlign on both axes.
func NewStack(children []*compose.Object, opts ...Option) (*compose.Object, error) {
	const op = "container.NewStack"
	o, err := buildOptions(op, opts)
	if err != nil {
		return nil, err
	}
	if err := checkChildren(op, children); err != nil {
		return nil, err
	}
	return compose.New(&stack{children: children, o: o}, o.box...)
}

func (s *stack) Children() []*compose.Object { return s.children }

func (s *stack) Size() (w, h int) {
	for _, c := range s.children {
		w, h = max(w, c.Width()), max(h, c.Height())
	}
	return w, h
}

func (s *stack) Draw() (*compose.Image, error) {
	w, h := s.Size()
	out := make([]placed, len(s.children))
	for i, c := range s.children {
		out[i] = placed{obj: c, x: s.o.align.Offset(w, c.Width()), y: s.o.align.Offset(h, c.Height())}
	}
	return drawPlaced(w, h, out)
}
