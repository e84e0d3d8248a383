package decoration

import (
	"image"
	"math"

	"github.com/gogpu/compose"
)

// squircleSamples is the per-axis supersampling factor at the edge.
const squircleSamples = 4

// SquircleExponent returns the superellipse exponent whose diagonal
// matches a rounded rectangle of the given corner radius, where half is
// half of the shorter side. It is 2 (an ellipse) when radius reaches half
// and grows without bound as radius shrinks.
func SquircleExponent(radius, half float64) float64 {
	if radius <= 0 || half <= 0 {
		return math.Inf(1)
	}
	radius = math.Min(radius, half)
	return -math.Ln2 / math.Log(1-radius*(1-1/math.Sqrt2)/half)
}

// SquircleCrop crops to a rounded rectangle whose corners are superellipse
// arcs, so the outline curves continuously. The corners are sized by the
// shorter side and look the same whatever the aspect ratio.
func SquircleCrop(radius float64) compose.Decoration {
	return maskCrop{mask: func(w, h int) *image.Alpha {
		mask := image.NewAlpha(image.Rect(0, 0, w, h))
		n := SquircleExponent(radius, float64(min(w, h))/2)
		if math.IsInf(n, 1) {
			for i := range mask.Pix {
				mask.Pix[i] = 0xff
			}
			return mask
		}
		// Corner quadrants of a superellipse with semi-axes s joined by
		// straight edges along the longer side.
		s := float64(min(w, h)) / 2
		cx, cy := float64(w)/2, float64(h)/2
		inside := func(x, y float64) bool {
			dx := math.Max(math.Abs(x-cx)-(cx-s), 0) / s
			dy := math.Max(math.Abs(y-cy)-(cy-s), 0) / s
			return math.Pow(dx, n)+math.Pow(dy, n) <= 1
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				mask.Pix[y*mask.Stride+x] = coverage(inside, float64(x), float64(y))
			}
		}
		return mask
	}}
}

// coverage returns the share of pixel (x, y) inside the shape. Pixels
// whose corners agree are taken as fully in or out; the rest are
// supersampled.
func coverage(inside func(x, y float64) bool, x, y float64) uint8 {
	c := 0
	for _, p := range [4][2]float64{{x, y}, {x + 1, y}, {x, y + 1}, {x + 1, y + 1}} {
		if inside(p[0], p[1]) {
			c++
		}
	}
	switch c {
	case 4:
		return 0xff
	case 0:
		// A thin sliver can still cross the pixel; the center decides.
		if !inside(x+0.5, y+0.5) {
			return 0
		}
	}
	const s = squircleSamples
	hits := 0
	for sy := 0; sy < s; sy++ {
		for sx := 0; sx < s; sx++ {
			if inside(x+(float64(sx)+0.5)/s, y+(float64(sy)+0.5)/s) {
				hits++
			}
		}
	}
	return uint8(hits * 0xff / (s * s))
}
