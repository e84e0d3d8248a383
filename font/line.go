package font

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// PlacedRun is a run with its face and horizontal position.
type PlacedRun struct {
	Text    string
	Face    *Face
	X       fixed.Int26_6
	Advance fixed.Int26_6
}

// Line is shaped single-line text: runs placed left to right plus the
// vertical extent of all faces involved.
type Line struct {
	Runs []PlacedRun

	// Width includes ItalicPad.
	Width int
	// Ascent is measured from the top of the line to the baseline and
	// includes the top correction.
	Ascent int
	// Descent includes the bottom correction.
	Descent int

	// Shear is non-zero when italics are simulated; ItalicPad is the extra
	// width reserved on the left for the sheared glyphs.
	Shear     float64
	ItalicPad int

	// DecorationThickness is the underline and strikethrough thickness.
	DecorationThickness int
}

// Height returns Ascent + Descent.
func (l *Line) Height() int { return l.Ascent + l.Descent }

// Shape segments and measures text at size pixels.
func (f *Family) Shape(text string, size float64, bold, italic bool) (*Line, error) {
	reg := f.reg()
	_, simulate := f.Resolve(bold, italic)

	line := &Line{}
	var x fixed.Int26_6
	ascent, descent := 0, 0
	addMetrics := func(face *Face) {
		m := face.Metrics()
		a, d := m.Ascent, m.Descent
		if f.topCorrection {
			a += m.TopPad
		}
		if f.baselineCorrection {
			d += m.BottomPad
		}
		ascent, descent = max(ascent, a), max(descent, d)
	}

	runs := f.Segment(text, bold, italic)
	if len(runs) == 0 {
		primary, _ := f.Resolve(bold, italic)
		face, err := reg.Face(primary, size)
		if err != nil {
			return nil, err
		}
		addMetrics(face)
	}
	for _, run := range runs {
		face, err := reg.Face(run.Source, size)
		if err != nil {
			return nil, err
		}
		adv := face.Advance(run.Text)
		line.Runs = append(line.Runs, PlacedRun{Text: run.Text, Face: face, X: x, Advance: adv})
		x += adv
		addMetrics(face)
	}

	line.Ascent, line.Descent = ascent, descent
	line.Width = x.Ceil()
	if simulate && f.shear > 0 {
		line.Shear = f.shear
		line.ItalicPad = int(math.Ceil(f.shear * float64(line.Height())))
		line.Width += line.ItalicPad
	}
	line.DecorationThickness = f.decorationThickness
	if line.DecorationThickness == 0 {
		line.DecorationThickness = max(int(math.Round(size/16)), 1)
	}
	return line, nil
}

// Draw renders the line in color c onto a transparent image of Width x
// Height with the baseline at Ascent.
func (l *Line) Draw(c color.Color) *image.RGBA {
	w, h := l.Width, l.Height()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	src := image.NewUniform(c)
	origin := fixed.I(l.ItalicPad)
	for _, run := range l.Runs {
		run.Face.DrawString(dst, fixed.Point26_6{X: origin + run.X, Y: fixed.I(l.Ascent)}, run.Text, src)
	}
	if l.Shear == 0 {
		return dst
	}
	return shear(dst, l.Shear)
}

// shear slants img to the right by factor: the top row stays in place and
// each row below moves factor pixels left per pixel of depth.
func shear(img *image.RGBA, factor float64) *image.RGBA {
	out := image.NewRGBA(img.Rect)
	s2d := f64.Aff3{
		1, -factor, 0,
		0, 1, 0,
	}
	xdraw.BiLinear.Transform(out, s2d, img, img.Rect, xdraw.Src, nil)
	return out
}
