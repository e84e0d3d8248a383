package compose

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/sync/errgroup"
)

// Content is the subclass contract of a box: it knows its own content size
// and how to draw itself. Draw must return an image of exactly Size().
type Content interface {
	Size() (width, height int)
	Draw() (*Image, error)
}

// Parent is implemented by content that owns child objects. New adopts the
// children so that each object has at most one owner.
type Parent interface {
	Children() []*Object
}

// Invalidator is implemented by content that memoizes its own layout.
// WithMutation calls Invalidate when the mutation scope ends.
type Invalidator interface {
	Invalidate()
}

// Validator is implemented by decorations that check their parameters
// when the owning object is built.
type Validator interface {
	Validate() error
}

// Spacing holds per-side distances in pixels.
type Spacing struct {
	Top, Right, Bottom, Left int
}

// Uniform returns a Spacing with the same value on every side.
func Uniform(v int) Spacing { return Spacing{v, v, v, v} }

// Symmetric returns a Spacing with vertical (top/bottom) and horizontal
// (left/right) values.
func Symmetric(vertical, horizontal int) Spacing {
	return Spacing{Top: vertical, Right: horizontal, Bottom: vertical, Left: horizontal}
}

// Horizontal returns Left + Right.
func (s Spacing) Horizontal() int { return s.Left + s.Right }

// Vertical returns Top + Bottom.
func (s Spacing) Vertical() int { return s.Top + s.Bottom }

func (s Spacing) negative() bool {
	return s.Top < 0 || s.Right < 0 || s.Bottom < 0 || s.Left < 0
}

// Object is a box: content plus margin, border, padding, background and an
// ordered list of decorations. Render output is memoized; the memo is only
// cleared by WithMutation.
//
// An Object is owned by at most one parent and must not be rendered from
// several goroutines at once. Independent trees may render concurrently.
type Object struct {
	content Content
	box     boxOptions

	parent   *Object
	mutating bool

	sized           bool
	cwidth, cheight int
	rendered        *Image
}

// New builds an Object around content. It validates the box options and
// decorations and adopts the children of Parent content.
func New(content Content, opts ...Option) (*Object, error) {
	if content == nil {
		return nil, Constructionf("compose.New", "nil content")
	}
	o := defaultBoxOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate("compose.New"); err != nil {
		return nil, err
	}

	obj := &Object{content: content, box: o}
	if p, ok := content.(Parent); ok {
		seen := make(map[*Object]bool)
		for i, child := range p.Children() {
			switch {
			case child == nil:
				return nil, Constructionf("compose.New", "child %d is nil", i)
			case child == obj:
				return nil, Constructionf("compose.New", "object contains itself")
			case child.parent != nil || seen[child]:
				return nil, Constructionf("compose.New", "child %d already has an owner", i)
			}
			seen[child] = true
		}
		for _, child := range p.Children() {
			child.parent = obj
		}
	}
	return obj, nil
}

// Content returns the object's content.
func (o *Object) Content() Content { return o.content }

// Parent returns the owning object, or nil for a root.
func (o *Object) Parent() *Object { return o.parent }

// Margin returns the margin.
func (o *Object) Margin() Spacing { return o.box.margin }

// Padding returns the padding.
func (o *Object) Padding() Spacing { return o.box.padding }

// BorderWidth returns the border width.
func (o *Object) BorderWidth() int { return o.box.borderWidth }

// Decorations returns a copy of the decoration list.
func (o *Object) Decorations() []Decoration {
	return append([]Decoration(nil), o.box.decorations...)
}

func (o *Object) contentSize() (int, int) {
	if !o.sized {
		o.cwidth, o.cheight = o.content.Size()
		o.sized = true
	}
	return o.cwidth, o.cheight
}

// ContentWidth returns the width of the content box.
func (o *Object) ContentWidth() int {
	w, _ := o.contentSize()
	return w
}

// ContentHeight returns the height of the content box.
func (o *Object) ContentHeight() int {
	_, h := o.contentSize()
	return h
}

// Width returns the total occupied width: content, padding, border and margin.
func (o *Object) Width() int {
	return o.ContentWidth() + o.box.padding.Horizontal() + 2*o.box.borderWidth + o.box.margin.Horizontal()
}

// Height returns the total occupied height.
func (o *Object) Height() int {
	return o.ContentHeight() + o.box.padding.Vertical() + 2*o.box.borderWidth + o.box.margin.Vertical()
}

// BorderBox returns the border box within the rendered image, i.e. the
// rendered area minus the margin.
func (o *Object) BorderBox() image.Rectangle {
	m := o.box.margin
	return image.Rect(m.Left, m.Top, o.Width()-m.Right, o.Height()-m.Bottom)
}

// Render composites the object and returns its image, whose size always
// equals Width() x Height(). The result is memoized and shared: treat it
// as read-only and Copy it before editing.
func (o *Object) Render() (*Image, error) {
	if o.rendered != nil {
		return o.rendered, nil
	}

	content, err := o.content.Draw()
	if err != nil {
		return nil, err
	}
	cw, ch := o.contentSize()
	if content.Width() != cw || content.Height() != ch {
		return nil, &RenderError{
			Resource: fmt.Sprintf("%T", o.content),
			Err:      fmt.Errorf("drew %dx%d, want %dx%d", content.Width(), content.Height(), cw, ch),
		}
	}

	box := o.borderBoxImage(content)
	for _, d := range o.box.decorations {
		if d.Overlay() != OverlayNone {
			continue
		}
		if box, err = applyDecoration(d, box, o); err != nil {
			return nil, err
		}
	}

	canvas := NewImage(o.Width(), o.Height())
	_ = canvas.Edit(func(dst *Image) error {
		dst.Paste(o.box.margin.Left, o.box.margin.Top, box)
		return nil
	})
	for _, d := range o.box.decorations {
		if d.Overlay() == OverlayNone {
			continue
		}
		layer, err := applyDecoration(d, canvas, o)
		if err != nil {
			return nil, err
		}
		canvas = composeLayer(canvas, layer, d.Overlay())
	}

	o.rendered = canvas
	return canvas, nil
}

// borderBoxImage draws background, border and content.
func (o *Object) borderBoxImage(content *Image) *Image {
	b, p := o.box.borderWidth, o.box.padding
	w := content.Width() + p.Horizontal() + 2*b
	h := content.Height() + p.Vertical() + 2*b
	box := NewImage(w, h)
	_ = box.Edit(func(dst *Image) error {
		if o.box.background != nil {
			dst.FillRect(image.Rect(b, b, w-b, h-b), o.box.background)
		}
		if b > 0 && o.box.borderColor != nil {
			c := o.box.borderColor
			dst.FillRect(image.Rect(0, 0, w, b), c)
			dst.FillRect(image.Rect(0, h-b, w, h), c)
			dst.FillRect(image.Rect(0, b, b, h-b), c)
			dst.FillRect(image.Rect(w-b, b, w, h-b), c)
		}
		dst.Paste(b+p.Left, b+p.Top, content)
		return nil
	})
	return box
}

func applyDecoration(d Decoration, img *Image, o *Object) (*Image, error) {
	out, err := d.Apply(img, o)
	if err != nil {
		return nil, err
	}
	if out == nil || out.Width() != img.Width() || out.Height() != img.Height() {
		return nil, &RenderError{
			Resource: fmt.Sprintf("%T", d),
			Err:      fmt.Errorf("decoration must preserve the %dx%d image size", img.Width(), img.Height()),
		}
	}
	return out, nil
}

func composeLayer(base, layer *Image, overlay Overlay) *Image {
	switch overlay {
	case OverlayReplace:
		return layer
	case OverlayBelow:
		out := layer.Copy()
		_ = out.Edit(func(dst *Image) error {
			dst.Paste(0, 0, base)
			return nil
		})
		return out
	default:
		out := base.Copy()
		_ = out.Edit(func(dst *Image) error {
			dst.Paste(0, 0, layer)
			return nil
		})
		return out
	}
}

// WithMutation is the only way to change an object after it is built.
// Setters called on o inside fn are allowed; when fn returns, the memoized
// size and image of o and of every ancestor are discarded. Changes to the
// content itself must also happen inside fn.
func WithMutation(o *Object, fn func(obj *Object) error) error {
	o.mutating = true
	defer func() {
		o.mutating = false
		o.invalidate()
	}()
	if err := fn(o); err != nil {
		return err
	}
	return o.box.validate("compose.WithMutation")
}

func (o *Object) invalidate() {
	if inv, ok := o.content.(Invalidator); ok {
		inv.Invalidate()
	}
	for p := o; p != nil; p = p.parent {
		p.sized = false
		p.rendered = nil
		if p != o {
			if inv, ok := p.content.(Invalidator); ok {
				inv.Invalidate()
			}
		}
	}
}

func (o *Object) mustMutate() {
	if !o.mutating {
		panic("compose: Object mutated outside WithMutation")
	}
}

// SetMargin changes the margin. Only valid inside WithMutation.
func (o *Object) SetMargin(s Spacing) {
	o.mustMutate()
	o.box.margin = s
}

// SetPadding changes the padding. Only valid inside WithMutation.
func (o *Object) SetPadding(s Spacing) {
	o.mustMutate()
	o.box.padding = s
}

// SetBorder changes the border. Only valid inside WithMutation.
func (o *Object) SetBorder(width int, c color.Color) {
	o.mustMutate()
	o.box.borderWidth, o.box.borderColor = width, c
}

// SetBackground changes the background; nil removes it. Only valid inside
// WithMutation.
func (o *Object) SetBackground(c color.Color) {
	o.mustMutate()
	o.box.background = c
}

// SetDecorations replaces the decoration list. Only valid inside WithMutation.
func (o *Object) SetDecorations(ds ...Decoration) {
	o.mustMutate()
	o.box.decorations = append([]Decoration(nil), ds...)
}

// RenderAll renders independent trees concurrently. Every object must be
// a distinct root. The result is in argument order.
func RenderAll(ctx context.Context, objs ...*Object) ([]*Image, error) {
	seen := make(map[*Object]bool, len(objs))
	for i, o := range objs {
		if o == nil || o.parent != nil || seen[o] {
			return nil, Constructionf("compose.RenderAll", "object %d is not a distinct root", i)
		}
		seen[o] = true
	}

	out := make([]*Image, len(objs))
	g, ctx := errgroup.WithContext(ctx)
	for i, o := range objs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := o.Render()
			if err != nil {
				return err
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
