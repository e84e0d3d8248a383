package filter

import "image"

// ColorMatrix is a 4x5 color transformation in row-major order:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
//
// Channels are straight-alpha values in [0, 255] during the transform; the
// fifth column is a bias in the same range.
type ColorMatrix [20]float32

// Rec. 601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Identity passes colors through unchanged.
func Identity() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Saturation blends between luma (0) and the original colors (1).
func Saturation(factor float32) ColorMatrix {
	inv := 1 - factor
	return ColorMatrix{
		lumaR*inv + factor, lumaG * inv, lumaB * inv, 0, 0,
		lumaR * inv, lumaG*inv + factor, lumaB * inv, 0, 0,
		lumaR * inv, lumaG * inv, lumaB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Grayscale converts to luma and keeps alpha.
func Grayscale() ColorMatrix { return Saturation(0) }

// Brightness scales the color channels: 0 is black, 1 unchanged.
func Brightness(factor float32) ColorMatrix {
	return ColorMatrix{
		factor, 0, 0, 0, 0,
		0, factor, 0, 0, 0,
		0, 0, factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Opacity multiplies alpha by factor.
func Opacity(factor float32) ColorMatrix {
	m := Identity()
	m[18] = factor
	return m
}

// Then returns the matrix that applies m first and then next.
func (m ColorMatrix) Then(next ColorMatrix) ColorMatrix {
	var r ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += next[row*5+k] * m[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = next[row*5+0]*m[4] + next[row*5+1]*m[9] +
			next[row*5+2]*m[14] + next[row*5+3]*m[19] + next[row*5+4]
	}
	return r
}

// Apply returns src transformed by m.
func (m ColorMatrix) Apply(src *image.RGBA) *image.RGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		in := src.Pix[y*src.Stride : y*src.Stride+w*4]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for i := 0; i < len(in); i += 4 {
			a := float32(in[i+3])
			var r, g, b float32
			if a > 0 {
				r = float32(in[i+0]) * 255 / a
				g = float32(in[i+1]) * 255 / a
				b = float32(in[i+2]) * 255 / a
			}

			nr := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
			ng := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
			nb := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
			na := min(max(m[15]*r+m[16]*g+m[17]*b+m[18]*a+m[19], 0), 255)

			f := na / 255
			out[i+0] = clampUint8(min(max(nr, 0), 255) * f)
			out[i+1] = clampUint8(min(max(ng, 0), 255) * f)
			out[i+2] = clampUint8(min(max(nb, 0), 255) * f)
			out[i+3] = clampUint8(na)
		}
	}
	return dst
}
