package filter

import (
	"image"
	"sync"
)

// edge decides what a kernel reads past the image border.
type edge uint8

const (
	edgeExtend edge = iota // repeat the border pixel
	edgeZero               // treat outside pixels as transparent
)

// Blur applies a separable Gaussian blur with standard deviation radius.
// Border pixels are extended, so a uniform image stays uniform.
func Blur(src *image.RGBA, radius float64) *image.RGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if radius <= 0 || w == 0 || h == 0 {
		copy(dst.Pix, src.Pix)
		return dst
	}

	kernel := Kernel(radius)
	planes := getPlanes(w * h * 4)
	defer putPlanes(planes)
	in, tmp := planes.a, planes.b

	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for i, v := range row {
			in[y*w*4+i] = float32(v)
		}
	}
	convolve(in, tmp, w, h, 4, kernel, true, edgeExtend)
	convolve(tmp, in, w, h, 4, kernel, false, edgeExtend)

	for i, v := range in {
		dst.Pix[i] = clampUint8(v)
	}
	// Premultiplied storage requires color <= alpha after rounding.
	for i := 0; i < len(dst.Pix); i += 4 {
		a := dst.Pix[i+3]
		dst.Pix[i+0] = min(dst.Pix[i+0], a)
		dst.Pix[i+1] = min(dst.Pix[i+1], a)
		dst.Pix[i+2] = min(dst.Pix[i+2], a)
	}
	return dst
}

// BlurAlpha blurs a single-channel coverage buffer of w*h values and
// returns a new buffer. Samples outside the buffer count as zero.
func BlurAlpha(alpha []float32, w, h int, radius float64) []float32 {
	out := make([]float32, len(alpha))
	if radius <= 0 {
		copy(out, alpha)
		return out
	}
	kernel := Kernel(radius)
	tmp := make([]float32, len(alpha))
	convolve(alpha, tmp, w, h, 1, kernel, true, edgeZero)
	convolve(tmp, out, w, h, 1, kernel, false, edgeZero)
	return out
}

// convolve runs a 1D kernel over src along rows (horizontal) or columns.
// Buffers hold w*h pixels of ch interleaved channels.
func convolve(src, dst []float32, w, h, ch int, kernel []float32, horizontal bool, mode edge) {
	half := len(kernel) / 2
	n, stride := w, ch
	if !horizontal {
		n, stride = h, w*ch
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := (y*w + x) * ch
			pos := x
			if !horizontal {
				pos = y
			}
			for c := 0; c < ch; c++ {
				var sum float32
				for k, weight := range kernel {
					p := pos + k - half
					if p < 0 || p >= n {
						if mode == edgeZero {
							continue
						}
						p = min(max(p, 0), n-1)
					}
					sum += src[base+(p-pos)*stride+c] * weight
				}
				dst[base+c] = sum
			}
		}
	}
}

type planePair struct {
	a, b []float32
}

var planePool = sync.Pool{
	New: func() any { return &planePair{} },
}

func getPlanes(size int) *planePair {
	p := planePool.Get().(*planePair)
	if cap(p.a) < size {
		p.a = make([]float32, size)
		p.b = make([]float32, size)
	}
	p.a, p.b = p.a[:size], p.b[:size]
	return p
}

func putPlanes(p *planePair) {
	// Only pool buffers up to 2048x2048.
	if cap(p.a) <= 2048*2048*4 {
		planePool.Put(p)
	}
}

// clampUint8 clamps a float32 to [0, 255] and rounds to the nearest uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
