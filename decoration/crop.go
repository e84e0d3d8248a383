package decoration

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/compose"
)

// kappa places cubic Bezier control points for a quarter circle.
const kappa = 0.5522847498

// maskCrop multiplies the image alpha by a coverage mask.
type maskCrop struct {
	mask func(w, h int) *image.Alpha
}

func (maskCrop) Overlay() compose.Overlay { return compose.OverlayNone }

func (c maskCrop) Apply(img *compose.Image, _ *compose.Object) (*compose.Image, error) {
	out := img.Copy()
	mask := c.mask(img.Width(), img.Height())
	err := out.Edit(func(dst *compose.Image) error {
		dst.MultiplyAlpha(mask)
		return nil
	})
	return out, err
}

// RectCrop clears a band of inset pixels along every edge.
func RectCrop(inset int) compose.Decoration {
	return maskCrop{mask: func(w, h int) *image.Alpha {
		mask := image.NewAlpha(image.Rect(0, 0, w, h))
		r := image.Rect(inset, inset, w-inset, h-inset).Intersect(mask.Rect)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
			for x := r.Min.X; x < r.Max.X; x++ {
				row[x] = 0xff
			}
		}
		return mask
	}}
}

// RoundedCrop rounds the corners with the given radius. The radius is
// limited to half the shorter side.
func RoundedCrop(radius float64) compose.Decoration {
	return maskCrop{mask: func(w, h int) *image.Alpha {
		r := math.Min(math.Max(radius, 0), float64(min(w, h))/2)
		z := vector.NewRasterizer(w, h)
		roundedRect(z, 0, 0, float32(w), float32(h), float32(r))
		return rasterize(z, w, h)
	}}
}

// CircleCrop keeps the largest circle centered in the image.
func CircleCrop() compose.Decoration {
	return maskCrop{mask: func(w, h int) *image.Alpha {
		d := float32(min(w, h))
		x0, y0 := (float32(w)-d)/2, (float32(h)-d)/2
		z := vector.NewRasterizer(w, h)
		roundedRect(z, x0, y0, x0+d, y0+d, d/2)
		return rasterize(z, w, h)
	}}
}

// roundedRect adds a closed rounded rectangle path to z.
func roundedRect(z *vector.Rasterizer, x0, y0, x1, y1, r float32) {
	k := r * (1 - kappa)
	z.MoveTo(x0+r, y0)
	z.LineTo(x1-r, y0)
	z.CubeTo(x1-k, y0, x1, y0+k, x1, y0+r)
	z.LineTo(x1, y1-r)
	z.CubeTo(x1, y1-k, x1-k, y1, x1-r, y1)
	z.LineTo(x0+r, y1)
	z.CubeTo(x0+k, y1, x0, y1-k, x0, y1-r)
	z.LineTo(x0, y0+r)
	z.CubeTo(x0, y0+k, x0+k, y0, x0+r, y0)
	z.ClosePath()
}

func rasterize(z *vector.Rasterizer, w, h int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Rect, image.Opaque, image.Point{})
	return mask
}
