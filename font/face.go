package font

import (
	"image"
	"image/draw"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/compose"
)

// calibration holds ascenders, descenders and a ring so that the reference
// render touches both vertical extremes of most Latin fonts.
const calibration = "ÅÉgjpqy|"

// Metrics are the vertical metrics of a face in whole pixels.
type Metrics struct {
	Ascent  int
	Descent int
	LineGap int

	// BottomPad is how far glyphs reach below Ascent+Descent, measured by
	// rendering a reference string with and without extra room below.
	BottomPad int

	// TopPad is how far the font bounding box rises above Ascent.
	TopPad int
}

// Face is a Source at a fixed pixel size. Its methods are safe for
// concurrent use; the underlying opentype face is guarded by a mutex.
type Face struct {
	src     *Source
	size    float64
	metrics Metrics

	mu   sync.Mutex
	face xfont.Face
}

func newFace(src *Source, size float64) (*Face, error) {
	face, err := opentype.NewFace(src.otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, &compose.RenderError{Resource: src.name, Err: err}
	}
	f := &Face{src: src, size: size, face: face}

	m := face.Metrics()
	f.metrics = Metrics{
		Ascent:  m.Ascent.Ceil(),
		Descent: m.Descent.Ceil(),
		LineGap: max((m.Height - m.Ascent - m.Descent).Ceil(), 0),
	}
	f.metrics.BottomPad = f.measureOvershoot()

	var buf sfnt.Buffer
	if bounds, err := src.otf.Bounds(&buf, fixed.Int26_6(size*64), xfont.HintingNone); err == nil {
		f.metrics.TopPad = max((-bounds.Min.Y).Ceil()-f.metrics.Ascent, 0)
	}

	compose.Logger().Debug("font: face created", "source", src.name, "size", size,
		"ascent", f.metrics.Ascent, "descent", f.metrics.Descent,
		"bottomPad", f.metrics.BottomPad, "topPad", f.metrics.TopPad)
	return f, nil
}

// measureOvershoot renders the calibration string into a canvas of the
// nominal height and into one with extra room below, and returns how much
// lower the ink reaches in the second.
func (f *Face) measureOvershoot() int {
	width := f.Advance(calibration).Ceil() + 2
	nominal := f.metrics.Ascent + f.metrics.Descent
	extra := nominal + int(f.size) + 1

	inkBottom := func(height int) int {
		dst := image.NewAlpha(image.Rect(0, 0, width, height))
		f.DrawString(dst, fixed.P(0, f.metrics.Ascent), calibration, image.Opaque)
		for y := height - 1; y >= 0; y-- {
			row := dst.Pix[y*dst.Stride : y*dst.Stride+width]
			for _, a := range row {
				if a != 0 {
					return y + 1
				}
			}
		}
		return 0
	}
	return max(inkBottom(extra)-inkBottom(nominal), 0)
}

// Source returns the font file of the face.
func (f *Face) Source() *Source { return f.src }

// Size returns the pixel size.
func (f *Face) Size() float64 { return f.size }

// Metrics returns the face metrics.
func (f *Face) Metrics() Metrics { return f.metrics }

// Advance returns the advance width of s, kerning included.
func (f *Face) Advance(s string) fixed.Int26_6 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return xfont.MeasureString(f.face, s)
}

// DrawString draws s with its baseline origin at dot, filling glyphs from src.
func (f *Face) DrawString(dst draw.Image, dot fixed.Point26_6, s string, src image.Image) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := &xfont.Drawer{Dst: dst, Src: src, Face: f.face, Dot: dot}
	d.DrawString(s)
}

func (f *Face) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.face.Close()
}
