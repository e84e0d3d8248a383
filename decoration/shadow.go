package decoration

import (
	"image/color"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/internal/filter"
)

type shadow struct {
	dx, dy int
	blur   float64
	color  color.Color
}

// Shadow draws the object's silhouette in c under it, moved by (dx, dy)
// and blurred with standard deviation blur.
func Shadow(dx, dy int, blur float64, c color.Color) compose.Decoration {
	return shadow{dx: dx, dy: dy, blur: blur, color: c}
}

func (shadow) Overlay() compose.Overlay { return compose.OverlayBelow }

func (s shadow) Apply(img *compose.Image, _ *compose.Object) (*compose.Image, error) {
	return compose.Wrap(filter.Shadow(img.RGBA(), s.dx, s.dy, s.blur, s.color)), nil
}

// matrix applies a color matrix to the border box.
type matrix struct {
	m filter.ColorMatrix
}

func (matrix) Overlay() compose.Overlay { return compose.OverlayNone }

func (d matrix) Apply(img *compose.Image, _ *compose.Object) (*compose.Image, error) {
	return compose.Wrap(d.m.Apply(img.RGBA())), nil
}

// Grayscale removes color, keeping luma.
func Grayscale() compose.Decoration { return matrix{m: filter.Grayscale()} }

// Saturation scales color saturation; 0 is gray and 1 is unchanged.
func Saturation(f float64) compose.Decoration { return matrix{m: filter.Saturation(float32(f))} }

// Opacity scales alpha by f.
func Opacity(f float64) compose.Decoration { return matrix{m: filter.Opacity(float32(f))} }

type blur struct {
	radius float64
}

// Blur applies a Gaussian blur with standard deviation radius.
func Blur(radius float64) compose.Decoration { return blur{radius: radius} }

func (blur) Overlay() compose.Overlay { return compose.OverlayNone }

func (b blur) Apply(img *compose.Image, _ *compose.Object) (*compose.Image, error) {
	return compose.Wrap(filter.Blur(img.RGBA(), b.radius)), nil
}
