package decoration

import (
	"image"
)

// Border is one traced region boundary.
type Border struct {
	// Points run along the border pixels, starting at the topmost-leftmost
	// pixel of an outer border.
	Points []image.Point
	// Hole is set for the border of a hole inside a region.
	Hole bool
	// Parent is the index of the enclosing border, or -1.
	Parent int
}

// neighbours in clockwise order (y down), starting east.
var neighbours = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

func direction(d image.Point) int {
	for i, n := range neighbours {
		if n == d {
			return i
		}
	}
	return 0
}

// Trace follows the borders of the non-zero regions of mask with
// 8-connectivity (Suzuki and Abe, 1985) and returns them with their
// nesting.
func Trace(mask *image.Alpha) []Border {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	// Label grid with a one-pixel zero frame.
	gw := w + 2
	f := make([]int, gw*(h+2))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.AlphaAt(b.Min.X+x, b.Min.Y+y).A != 0 {
				f[(y+1)*gw+x+1] = 1
			}
		}
	}
	at := func(p image.Point) int { return f[p.Y*gw+p.X] }
	set := func(p image.Point, v int) { f[p.Y*gw+p.X] = v }

	var contours []Border
	// Border number 1 is the frame, a hole border without parent.
	hole := map[int]bool{1: true}
	parent := map[int]int{1: 0}
	nbd := 1

	for y := 1; y <= h; y++ {
		lnbd := 1
		for x := 1; x <= w; x++ {
			p := image.Pt(x, y)
			v := at(p)
			var from image.Point
			isHole := false
			switch {
			case v == 1 && at(image.Pt(x-1, y)) == 0:
				from = image.Pt(x-1, y)
			case v >= 1 && at(image.Pt(x+1, y)) == 0:
				from = image.Pt(x+1, y)
				isHole = true
				if v > 1 {
					lnbd = v
				}
			default:
				if v != 0 && v != 1 {
					lnbd = abs(v)
				}
				continue
			}

			nbd++
			hole[nbd] = isHole
			if hole[lnbd] == isHole {
				parent[nbd] = parent[lnbd]
			} else {
				parent[nbd] = lnbd
			}

			points := follow(p, from, nbd, at, set)
			for i := range points {
				points[i] = points[i].Sub(image.Pt(1, 1)).Add(b.Min)
			}
			contours = append(contours, Border{Points: points, Hole: isHole, Parent: parent[nbd] - 2})

			if v := at(p); v != 1 {
				lnbd = abs(v)
			}
		}
	}
	for i := range contours {
		if contours[i].Parent < 0 {
			contours[i].Parent = -1
		}
	}
	return contours
}

// follow traces one border starting at p, entered from the zero pixel
// from, labelling it nbd.
func follow(p, from image.Point, nbd int, at func(image.Point) int, set func(image.Point, int)) []image.Point {
	// Clockwise from the entry neighbour to the first non-zero pixel.
	start := direction(from.Sub(p))
	var p1 image.Point
	found := false
	for k := 0; k < 8; k++ {
		q := p.Add(neighbours[(start+k)%8])
		if at(q) != 0 {
			p1, found = q, true
			break
		}
	}
	if !found {
		set(p, -nbd)
		return []image.Point{p}
	}

	points := []image.Point{}
	p2, p3 := p1, p
	for {
		// Counter-clockwise around p3, starting after p2.
		d := direction(p2.Sub(p3))
		eastZero := false
		var p4 image.Point
		for k := 1; k <= 8; k++ {
			nd := (d - k + 16) % 8
			q := p3.Add(neighbours[nd])
			if at(q) != 0 {
				p4 = q
				break
			}
			if nd == 0 {
				eastZero = true
			}
		}
		switch {
		case eastZero:
			set(p3, -nbd)
		case at(p3) == 1:
			set(p3, nbd)
		}
		points = append(points, p3)
		if p4 == p && p3 == p1 {
			return points
		}
		p2, p3 = p3, p4
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
