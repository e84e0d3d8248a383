package table

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/compose"
)

// grid is the content of a laid out table.
type grid struct {
	o       options
	cells   [][]*compose.Object
	widths  []int // column content widths
	heights []int // row content heights

	// target is the width the table must be scaled down to, or 0.
	target int
}

func (g *grid) Children() []*compose.Object {
	var out []*compose.Object
	for _, row := range g.cells {
		out = append(out, row...)
	}
	return out
}

// edges returns the offsets of the grid lines along one axis for the
// given cell sizes, plus the total length.
func (g *grid) edges(sizes []int) ([]int, int) {
	lines := make([]int, 0, len(sizes)+1)
	pos := 0
	for _, s := range sizes {
		lines = append(lines, pos)
		pos += g.o.border + s + 2*g.o.padding
	}
	lines = append(lines, pos)
	return lines, pos + g.o.border
}

func (g *grid) naturalSize() (int, int) {
	_, w := g.edges(g.widths)
	_, h := g.edges(g.heights)
	return w, h
}

func (g *grid) Size() (int, int) {
	w, h := g.naturalSize()
	if g.target > 0 && w > g.target {
		return g.target, int(math.Round(float64(h) * float64(g.target) / float64(w)))
	}
	return w, h
}

func (g *grid) Draw() (*compose.Image, error) {
	w, h := g.naturalSize()
	xs, _ := g.edges(g.widths)
	ys, _ := g.edges(g.heights)

	out := compose.NewImage(w, h)
	err := out.Edit(func(dst *compose.Image) error {
		inset := g.o.border + g.o.padding
		for i, row := range g.cells {
			for j, cell := range row {
				img, err := cell.Render()
				if err != nil {
					return err
				}
				x := xs[j] + inset + g.o.halign.Offset(g.widths[j], img.Width())
				y := ys[i] + inset + g.o.valign.Offset(g.heights[i], img.Height())
				dst.Paste(x, y, img)
			}
		}
		if g.o.border > 0 {
			dst.DrawMask(0, 0, gridMask(w, h, xs, ys, g.o.border), g.o.borderColor)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if sw, sh := g.Size(); sw != w || sh != h {
		return out.Resize(sw, sh), nil
	}
	return out, nil
}

// gridMask rasterizes vertical lines at xs and horizontal lines at ys,
// each thickness pixels wide.
func gridMask(w, h int, xs, ys []int, thickness int) *image.Alpha {
	z := vector.NewRasterizer(w, h)
	rect := func(x0, y0, x1, y1 int) {
		z.MoveTo(float32(x0), float32(y0))
		z.LineTo(float32(x1), float32(y0))
		z.LineTo(float32(x1), float32(y1))
		z.LineTo(float32(x0), float32(y1))
		z.ClosePath()
	}
	for _, x := range xs {
		rect(x, 0, x+thickness, h)
	}
	for _, y := range ys {
		rect(0, y, w, y+thickness)
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
