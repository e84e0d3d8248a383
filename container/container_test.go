package container

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/compose"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func block(t *testing.T, w, h int, c color.Color) *compose.Object {
	t.Helper()
	obj, err := compose.NewImageObject(compose.NewImageFilled(w, h, c))
	if err != nil {
		t.Fatal(err)
	}
	return obj
}

type pos struct{ X, Y int }

func positions(ps []placed) []pos {
	out := make([]pos, len(ps))
	for i, p := range ps {
		out[i] = pos{p.x, p.y}
	}
	return out
}

func render(t *testing.T, obj *compose.Object) *compose.Image {
	t.Helper()
	img, err := obj.Render()
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestLinear(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		w, h      int
		pixel     pos
		want      color.NRGBA
		transpPos pos
	}{
		{
			name: "horizontal center",
			opts: []Option{WithSpacing(5), WithAlign(compose.AlignCenter)},
			w:    45, h: 20,
			pixel: pos{20, 7}, want: blue,
			transpPos: pos{20, 2},
		},
		{
			name: "vertical end",
			opts: []Option{WithDirection(Vertical), WithAlign(compose.AlignEnd)},
			w:    30, h: 30,
			pixel: pos{25, 5}, want: red,
			transpPos: pos{5, 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := NewLinear([]*compose.Object{block(t, 10, 20, red), block(t, 30, 10, blue)}, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if obj.Width() != tt.w || obj.Height() != tt.h {
				t.Fatalf("size %dx%d, want %dx%d", obj.Width(), obj.Height(), tt.w, tt.h)
			}
			img := render(t, obj)
			if got := img.NRGBAAt(tt.pixel.X, tt.pixel.Y); got != tt.want {
				t.Errorf("pixel %v = %v, want %v", tt.pixel, got, tt.want)
			}
			if a := img.AlphaAt(tt.transpPos.X, tt.transpPos.Y); a != 0 {
				t.Errorf("pixel %v alpha = %d, want 0", tt.transpPos, a)
			}
		})
	}
}

func TestFixedJustify(t *testing.T) {
	tests := []struct {
		justify Justify
		want    []pos
	}{
		{JustifyStart, []pos{{0, 5}, {10, 5}, {20, 5}}},
		{JustifyEnd, []pos{{70, 5}, {80, 5}, {90, 5}}},
		{JustifyCenter, []pos{{35, 5}, {45, 5}, {55, 5}}},
		{JustifySpaceBetween, []pos{{0, 5}, {45, 5}, {90, 5}}},
		{JustifySpaceAround, []pos{{11, 5}, {44, 5}, {77, 5}}},
	}
	for _, tt := range tests {
		f := &fixed{
			children: []*compose.Object{block(t, 10, 10, red), block(t, 10, 10, red), block(t, 10, 10, red)},
			width:    100,
			height:   20,
			o:        options{justify: tt.justify, align: compose.AlignCenter},
		}
		got, err := f.layout()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tt.want, positions(got)); diff != "" {
			t.Errorf("justify %d (-want +got):\n%s", tt.justify, diff)
		}
	}
}

func TestFixed(t *testing.T) {
	obj, err := NewFixed([]*compose.Object{block(t, 10, 10, red)}, 40, 20,
		WithJustify(JustifyEnd), WithBox(compose.WithPadding(compose.Uniform(1))))
	if err != nil {
		t.Fatal(err)
	}
	if obj.Width() != 42 || obj.Height() != 22 {
		t.Errorf("size %dx%d, want 42x22", obj.Width(), obj.Height())
	}
	img := render(t, obj)
	if got := img.NRGBAAt(36, 5); got != red {
		t.Errorf("child not at the end: %v", got)
	}

	for name, children := range map[string][]*compose.Object{
		"main overflow":  {block(t, 30, 10, red), block(t, 30, 10, red)},
		"cross overflow": {block(t, 10, 30, red)},
		"nil child":      {nil},
	} {
		if _, err := NewFixed(children, 40, 20); !errors.Is(err, compose.ErrConstruction) {
			t.Errorf("%s: err = %v, want ErrConstruction", name, err)
		}
	}
}

func TestRelative(t *testing.T) {
	a, b, c := block(t, 20, 10, red), block(t, 10, 10, blue), block(t, 5, 5, red)
	r := NewRelative()
	for _, step := range []struct {
		obj     *compose.Object
		anchors []Anchor
	}{
		{a, nil},
		{b, []Anchor{Below(To(a)), AlignRight(To(a))}},
		{c, []Anchor{LeftOf(To(a))}},
	} {
		if err := r.Add(step.obj, step.anchors...); err != nil {
			t.Fatal(err)
		}
	}
	obj, err := r.Build()
	if err != nil {
		t.Fatal(err)
	}
	content := obj.Content().(*relative)
	placedChildren, w, h := content.layout()
	if w != 25 || h != 20 {
		t.Errorf("size %dx%d, want 25x20", w, h)
	}
	if diff := cmp.Diff([]pos{{5, 0}, {15, 10}, {0, 0}}, positions(placedChildren)); diff != "" {
		t.Errorf("positions (-want +got):\n%s", diff)
	}
	if got := render(t, obj).NRGBAAt(20, 15); got != blue {
		t.Errorf("pixel = %v, want blue", got)
	}
	if a.Parent() != obj {
		t.Error("child not adopted")
	}
}

func TestRelativeParent(t *testing.T) {
	r := NewRelative(WithSize(100, 50))
	center, corner := block(t, 20, 10, red), block(t, 20, 10, blue)
	if err := r.Add(center, Center(Parent)); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(corner, AlignBottom(Parent), AlignRight(Parent), Offset(-1, -1)); err != nil {
		t.Fatal(err)
	}
	obj, err := r.Build()
	if err != nil {
		t.Fatal(err)
	}
	placedChildren, w, h := obj.Content().(*relative).layout()
	if w != 100 || h != 50 {
		t.Errorf("size %dx%d", w, h)
	}
	if diff := cmp.Diff([]pos{{40, 20}, {79, 39}}, positions(placedChildren)); diff != "" {
		t.Errorf("positions (-want +got):\n%s", diff)
	}
}

func TestRelativeErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T) error
	}{
		{"unknown target", func(t *testing.T) error {
			return NewRelative().Add(block(t, 1, 1, red), Below(To(block(t, 1, 1, red))))
		}},
		{"parent without size", func(t *testing.T) error {
			return NewRelative().Add(block(t, 1, 1, red), CenterX(Parent))
		}},
		{"same axis twice", func(t *testing.T) error {
			return NewRelative(WithSize(10, 10)).Add(block(t, 1, 1, red), AlignTop(Parent), Below(Parent))
		}},
		{"nil child", func(t *testing.T) error {
			return NewRelative().Add(nil)
		}},
		{"duplicate", func(t *testing.T) error {
			r, b := NewRelative(), block(t, 1, 1, red)
			_ = r.Add(b)
			return r.Add(b)
		}},
		{"sticky error", func(t *testing.T) error {
			r := NewRelative()
			_ = r.Add(nil)
			_ = r.Add(block(t, 1, 1, red))
			_, err := r.Build()
			return err
		}},
		{"build twice", func(t *testing.T) error {
			r := NewRelative()
			if _, err := r.Build(); err != nil {
				return nil
			}
			_, err := r.Build()
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(t); !errors.Is(err, compose.ErrConstruction) {
				t.Errorf("err = %v, want ErrConstruction", err)
			}
		})
	}
}

func TestStack(t *testing.T) {
	obj, err := NewStack([]*compose.Object{block(t, 10, 10, red), block(t, 4, 4, blue)}, WithAlign(compose.AlignCenter))
	if err != nil {
		t.Fatal(err)
	}
	if obj.Width() != 10 || obj.Height() != 10 {
		t.Fatalf("size %dx%d", obj.Width(), obj.Height())
	}
	img := render(t, obj)
	if got := img.NRGBAAt(5, 5); got != blue {
		t.Errorf("top pixel = %v, want blue", got)
	}
	if got := img.NRGBAAt(1, 1); got != red {
		t.Errorf("bottom pixel = %v, want red", got)
	}
}

func TestChildOwnership(t *testing.T) {
	shared := block(t, 5, 5, red)
	if _, err := NewLinear([]*compose.Object{shared}); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStack([]*compose.Object{shared}); !errors.Is(err, compose.ErrConstruction) {
		t.Errorf("reusing an owned child: err = %v", err)
	}
}

func TestMutationRelayout(t *testing.T) {
	child := block(t, 10, 10, red)
	row, err := NewLinear([]*compose.Object{child, block(t, 10, 10, blue)})
	if err != nil {
		t.Fatal(err)
	}
	if row.Width() != 20 {
		t.Fatalf("width %d", row.Width())
	}
	err = compose.WithMutation(child, func(o *compose.Object) error {
		o.SetMargin(compose.Uniform(2))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if row.Width() != 24 || row.Height() != 14 {
		t.Errorf("after mutation %dx%d, want 24x14", row.Width(), row.Height())
	}
}
