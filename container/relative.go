package container

import (
	"image"

	"github.com/gogpu/compose"
)

// Ref names what an anchor is relative to: a child already added to the
// builder, or the container itself.
type Ref struct {
	obj *compose.Object
}

// To refers to a sibling.
func To(obj *compose.Object) Ref { return Ref{obj: obj} }

// Parent refers to the container's content box.
var Parent = Ref{}

type axis uint8

const (
	axisX axis = 1 << iota
	axisY
)

// Anchor positions a child on one or both axes.
type Anchor struct {
	ref    Ref
	axes   axis
	place  func(target image.Rectangle, w, h int) (x, y int)
	far    bool // reads the target's right or bottom edge
	dx, dy int
}

func anchor(ref Ref, axes axis, place func(t image.Rectangle, w, h int) (int, int)) Anchor {
	return Anchor{ref: ref, axes: axes, place: place}
}

func farAnchor(ref Ref, axes axis, place func(t image.Rectangle, w, h int) (int, int)) Anchor {
	return Anchor{ref: ref, axes: axes, place: place, far: true}
}

// AlignTop lines up the child's top edge with the target's.
func AlignTop(ref Ref) Anchor {
	return anchor(ref, axisY, func(t image.Rectangle, _, _ int) (int, int) { return 0, t.Min.Y })
}

// AlignBottom lines up the child's bottom edge with the target's.
func AlignBottom(ref Ref) Anchor {
	return farAnchor(ref, axisY, func(t image.Rectangle, _, h int) (int, int) { return 0, t.Max.Y - h })
}

// AlignLeft lines up the child's left edge with the target's.
func AlignLeft(ref Ref) Anchor {
	return anchor(ref, axisX, func(t image.Rectangle, _, _ int) (int, int) { return t.Min.X, 0 })
}

// AlignRight lines up the child's right edge with the target's.
func AlignRight(ref Ref) Anchor {
	return farAnchor(ref, axisX, func(t image.Rectangle, w, _ int) (int, int) { return t.Max.X - w, 0 })
}

// Below places the child under the target.
func Below(ref Ref) Anchor {
	return farAnchor(ref, axisY, func(t image.Rectangle, _, _ int) (int, int) { return 0, t.Max.Y })
}

// Above places the child over the target.
func Above(ref Ref) Anchor {
	return anchor(ref, axisY, func(t image.Rectangle, _, h int) (int, int) { return 0, t.Min.Y - h })
}

// LeftOf places the child to the left of the target.
func LeftOf(ref Ref) Anchor {
	return anchor(ref, axisX, func(t image.Rectangle, w, _ int) (int, int) { return t.Min.X - w, 0 })
}

// RightOf places the child to the right of the target.
func RightOf(ref Ref) Anchor {
	return farAnchor(ref, axisX, func(t image.Rectangle, _, _ int) (int, int) { return t.Max.X, 0 })
}

// CenterX centers the child horizontally on the target.
func CenterX(ref Ref) Anchor {
	return farAnchor(ref, axisX, func(t image.Rectangle, w, _ int) (int, int) {
		return t.Min.X + (t.Dx()-w)/2, 0
	})
}

// CenterY centers the child vertically on the target.
func CenterY(ref Ref) Anchor {
	return farAnchor(ref, axisY, func(t image.Rectangle, _, h int) (int, int) {
		return 0, t.Min.Y + (t.Dy()-h)/2
	})
}

// Center centers the child on the target.
func Center(ref Ref) Anchor {
	return farAnchor(ref, axisX|axisY, func(t image.Rectangle, w, h int) (int, int) {
		return t.Min.X + (t.Dx()-w)/2, t.Min.Y + (t.Dy()-h)/2
	})
}

// Offset shifts the child after all other anchors are applied.
func Offset(dx, dy int) Anchor {
	return Anchor{dx: dx, dy: dy}
}

type relativeChild struct {
	obj     *compose.Object
	anchors []Anchor
}

// Relative builds a container whose children are positioned against
// siblings added before them or against the container.
type Relative struct {
	o        options
	children []relativeChild
	index    map[*compose.Object]int
	err      error
	built    bool
}

// NewRelative starts a relative layout. Anchors to the container's right
// or bottom edge, or its center, need WithSize.
func NewRelative(opts ...Option) *Relative {
	r := &Relative{index: make(map[*compose.Object]int)}
	r.o, r.err = buildOptions("container.NewRelative", opts)
	return r
}

// Add places child per anchors. A child without anchors sits at the
// origin. Anchors may only refer to children added earlier.
func (r *Relative) Add(child *compose.Object, anchors ...Anchor) error {
	const op = "container.Relative.Add"
	if err := r.add(op, child, anchors); err != nil {
		if r.err == nil {
			r.err = err
		}
		return err
	}
	return nil
}

func (r *Relative) add(op string, child *compose.Object, anchors []Anchor) error {
	switch {
	case r.err != nil:
		return r.err
	case r.built:
		return compose.Constructionf(op, "builder already used")
	case child == nil:
		return compose.Constructionf(op, "nil child")
	}
	if _, dup := r.index[child]; dup {
		return compose.Constructionf(op, "child added twice")
	}
	var seen axis
	for _, a := range anchors {
		if a.place == nil {
			continue
		}
		if a.ref.obj != nil {
			if _, ok := r.index[a.ref.obj]; !ok {
				return compose.Constructionf(op, "anchor target has not been added")
			}
		} else if !r.o.sized && a.far {
			return compose.Constructionf(op, "anchor to the container needs WithSize")
		}
		if seen&a.axes != 0 {
			return compose.Constructionf(op, "two anchors for the same axis")
		}
		seen |= a.axes
	}
	r.index[child] = len(r.children)
	r.children = append(r.children, relativeChild{obj: child, anchors: anchors})
	return nil
}

// Build returns the container. The builder cannot be used afterwards.
func (r *Relative) Build() (*compose.Object, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.built {
		return nil, compose.Constructionf("container.Relative.Build", "builder already used")
	}
	r.built = true
	c := &relative{o: r.o, children: r.children}
	return compose.New(c, r.o.box...)
}

// relative is the content of a built Relative.
type relative struct {
	o        options
	children []relativeChild
}

func (c *relative) Children() []*compose.Object {
	out := make([]*compose.Object, len(c.children))
	for i, ch := range c.children {
		out[i] = ch.obj
	}
	return out
}

// layout resolves anchors in insertion order and returns positions
// relative to the content box plus the content size. Without WithSize the
// content box is the union of the origin and all children.
func (c *relative) layout() ([]placed, int, int) {
	parent := image.Rect(0, 0, c.o.width, c.o.height)
	rects := make(map[*compose.Object]image.Rectangle, len(c.children))
	out := make([]placed, len(c.children))
	var minX, minY, maxX, maxY int
	for i, ch := range c.children {
		w, h := ch.obj.Width(), ch.obj.Height()
		var x, y, dx, dy int
		for _, a := range ch.anchors {
			if a.place == nil {
				dx, dy = dx+a.dx, dy+a.dy
				continue
			}
			target := parent
			if a.ref.obj != nil {
				target = rects[a.ref.obj]
			}
			ax, ay := a.place(target, w, h)
			if a.axes&axisX != 0 {
				x = ax
			}
			if a.axes&axisY != 0 {
				y = ay
			}
		}
		x, y = x+dx, y+dy
		rects[ch.obj] = image.Rect(x, y, x+w, y+h)
		out[i] = placed{obj: ch.obj, x: x, y: y}
		minX, minY = min(minX, x), min(minY, y)
		maxX, maxY = max(maxX, x+w), max(maxY, y+h)
	}

	if c.o.sized {
		return out, c.o.width, c.o.height
	}
	for i := range out {
		out[i].x -= minX
		out[i].y -= minY
	}
	return out, maxX - minX, maxY - minY
}

func (c *relative) Size() (int, int) {
	_, w, h := c.layout()
	return w, h
}

func (c *relative) Draw() (*compose.Image, error) {
	children, w, h := c.layout()
	return drawPlaced(w, h, children)
}
