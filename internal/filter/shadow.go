package filter

import (
	"image"
	"image/color"
)

// Shadow returns a layer the size of src holding its silhouette in color c,
// moved by (dx, dy) and blurred with standard deviation radius. The layer is
// meant to be composited under src.
func Shadow(src *image.RGBA, dx, dy int, radius float64, c color.Color) *image.RGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	alpha := make([]float32, w*h)
	for y := 0; y < h; y++ {
		sy := y - dy
		if sy < 0 || sy >= h {
			continue
		}
		for x := 0; x < w; x++ {
			sx := x - dx
			if sx < 0 || sx >= w {
				continue
			}
			alpha[y*w+x] = float32(src.Pix[sy*src.Stride+sx*4+3]) / 255
		}
	}
	alpha = BlurAlpha(alpha, w, h, radius)

	cr, cg, cb, ca := c.RGBA() // premultiplied, 16 bit
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, a := range alpha {
		if a <= 0 {
			continue
		}
		a = min(a, 1)
		dst.Pix[i*4+0] = clampUint8(float32(cr>>8) * a)
		dst.Pix[i*4+1] = clampUint8(float32(cg>>8) * a)
		dst.Pix[i*4+2] = clampUint8(float32(cb>>8) * a)
		dst.Pix[i*4+3] = clampUint8(float32(ca>>8) * a)
	}
	return dst
}
