package decoration

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"

	"github.com/gogpu/compose"
)

type contour struct {
	threshold    uint8
	dilation     int
	externalOnly bool
	thickness    float64
	color        color.Color
	overlay      compose.Overlay
}

// ContourOption configures Contour.
type ContourOption func(*contour)

// WithAlphaThreshold sets the alpha at which a pixel counts as part of the
// shape. The default is 128.
func WithAlphaThreshold(a uint8) ContourOption {
	return func(c *contour) { c.threshold = a }
}

// WithDilation grows the shape by r pixels before tracing it.
func WithDilation(r int) ContourOption {
	return func(c *contour) { c.dilation = r }
}

// ExternalOnly skips the borders of holes.
func ExternalOnly() ContourOption {
	return func(c *contour) { c.externalOnly = true }
}

// WithThickness sets the line width. The default is 2.
func WithThickness(px float64) ContourOption {
	return func(c *contour) { c.thickness = px }
}

// WithColor sets the line color. The default is black.
func WithColor(col color.Color) ContourOption {
	return func(c *contour) { c.color = col }
}

// WithOverlay sets how the outline combines with the object. The default
// draws it above.
func WithOverlay(o compose.Overlay) ContourOption {
	return func(c *contour) { c.overlay = o }
}

// Contour outlines the opaque shape of the rendered object.
func Contour(opts ...ContourOption) compose.Decoration {
	c := contour{threshold: 128, thickness: 2, color: compose.Black, overlay: compose.OverlayAbove}
	for _, opt := range opts {
		opt(&c)
	}
	if c.overlay == compose.OverlayNone {
		c.overlay = compose.OverlayAbove
	}
	return c
}

func (c contour) Overlay() compose.Overlay { return c.overlay }

func (c contour) Apply(img *compose.Image, _ *compose.Object) (*compose.Image, error) {
	w, h := img.Width(), img.Height()
	shape := image.NewAlpha(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.AlphaAt(x, y) >= max(c.threshold, 1) {
				shape.Pix[y*shape.Stride+x] = 0xff
			}
		}
	}
	if c.dilation > 0 {
		shape = dilate(shape, c.dilation)
	}

	z := vector.NewRasterizer(w, h)
	r := float32(c.thickness / 2)
	for _, b := range Trace(shape) {
		if c.externalOnly && b.Hole {
			continue
		}
		for _, p := range b.Points {
			cx, cy := float32(p.X)+0.5, float32(p.Y)+0.5
			roundedRect(z, cx-r, cy-r, cx+r, cy+r, r)
		}
	}
	mask := rasterize(z, w, h)

	layer := compose.NewImage(w, h)
	err := layer.Edit(func(dst *compose.Image) error {
		dst.DrawMask(0, 0, mask, c.color)
		return nil
	})
	return layer, err
}

// dilate sets every pixel within distance r of a set pixel. Only edge
// pixels spread since interior pixels are covered by them.
func dilate(src *image.Alpha, r int) *image.Alpha {
	b := src.Rect
	out := image.NewAlpha(b)
	copy(out.Pix, src.Pix)
	set := func(x, y int) bool {
		return image.Pt(x, y).In(b) && src.Pix[y*src.Stride+x] != 0
	}
	r2 := r * r
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !set(x, y) || (set(x-1, y) && set(x+1, y) && set(x, y-1) && set(x, y+1)) {
				continue
			}
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					q := image.Pt(x+dx, y+dy)
					if dx*dx+dy*dy <= r2 && q.In(b) {
						out.Pix[q.Y*out.Stride+q.X] = 0xff
					}
				}
			}
		}
	}
	return out
}
