package compose

// Align places an item along the cross axis of a row or column.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// String returns the string representation of the alignment.
func (a Align) String() string {
	switch a {
	case AlignStart:
		return "Start"
	case AlignCenter:
		return "Center"
	case AlignEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// Offset returns where an item of size inner starts inside outer.
func (a Align) Offset(outer, inner int) int {
	switch a {
	case AlignCenter:
		return (outer - inner) / 2
	case AlignEnd:
		return outer - inner
	default:
		return 0
	}
}

// ConcatHorizontal places images left to right with spacing pixels between
// them. Images of different heights are placed per align. Nil images are
// skipped.
func ConcatHorizontal(images []*Image, align Align, spacing int) *Image {
	images = nonNil(images)
	w, h := 0, 0
	for i, img := range images {
		if i > 0 {
			w += spacing
		}
		w += img.Width()
		h = max(h, img.Height())
	}
	out := NewImage(w, h)
	_ = out.Edit(func(dst *Image) error {
		x := 0
		for _, img := range images {
			dst.Paste(x, align.Offset(h, img.Height()), img)
			x += img.Width() + spacing
		}
		return nil
	})
	return out
}

// ConcatVertical stacks images top to bottom with spacing pixels between them.
func ConcatVertical(images []*Image, align Align, spacing int) *Image {
	images = nonNil(images)
	w, h := 0, 0
	for i, img := range images {
		if i > 0 {
			h += spacing
		}
		h += img.Height()
		w = max(w, img.Width())
	}
	out := NewImage(w, h)
	_ = out.Edit(func(dst *Image) error {
		y := 0
		for _, img := range images {
			dst.Paste(align.Offset(w, img.Width()), y, img)
			y += img.Height() + spacing
		}
		return nil
	})
	return out
}

func nonNil(images []*Image) []*Image {
	out := images[:0:0]
	for _, img := range images {
		if img != nil {
			out = append(out, img)
		}
	}
	return out
}

// BaselineMode decides how items without a baseline join a text line.
type BaselineMode uint8

const (
	// BaselineTreatBottom uses the bottom edge of such an item as its
	// baseline, so it sits on the text baseline.
	BaselineTreatBottom BaselineMode = iota

	// BaselineAlignBottom aligns the bottom edge of such an item with the
	// bottom of the line, below the text descenders.
	BaselineAlignBottom
)

// BaselineItem is one image in a mixed text/image run.
type BaselineItem struct {
	Image *Image
	// Baseline is the distance from the top of Image to its baseline.
	// Ignored unless HasBaseline is set.
	Baseline    int
	HasBaseline bool
}

// BaselineBox is the size of one item of a baseline-aligned line.
type BaselineBox struct {
	Width, Height int
	Baseline      int
	HasBaseline   bool
}

// BaselineExtent returns the width of a line of boxes and its extent above
// and below the baseline.
func BaselineExtent(boxes []BaselineBox, mode BaselineMode) (width, ascent, descent int) {
	for _, b := range boxes {
		width += b.Width
		switch {
		case b.HasBaseline:
			ascent = max(ascent, b.Baseline)
			descent = max(descent, b.Height-b.Baseline)
		case mode == BaselineTreatBottom:
			ascent = max(ascent, b.Height)
		}
	}
	if mode == BaselineAlignBottom {
		for _, b := range boxes {
			if b.HasBaseline {
				continue
			}
			if extra := b.Height - (ascent + descent); extra > 0 {
				ascent += extra
			}
		}
	}
	return width, ascent, descent
}

// ConcatByBaseline joins items left to right so that their baselines line
// up. It returns the line image and its baseline measured from the top.
func ConcatByBaseline(items []BaselineItem, mode BaselineMode) (*Image, int) {
	boxes := make([]BaselineBox, 0, len(items))
	for _, it := range items {
		if it.Image == nil {
			continue
		}
		boxes = append(boxes, BaselineBox{
			Width:       it.Image.Width(),
			Height:      it.Image.Height(),
			Baseline:    it.Baseline,
			HasBaseline: it.HasBaseline,
		})
	}
	width, ascent, descent := BaselineExtent(boxes, mode)

	height := ascent + descent
	out := NewImage(width, height)
	_ = out.Edit(func(dst *Image) error {
		x := 0
		for _, it := range items {
			if it.Image == nil {
				continue
			}
			var y int
			switch {
			case it.HasBaseline:
				y = ascent - it.Baseline
			case mode == BaselineTreatBottom:
				y = ascent - it.Image.Height()
			default:
				y = height - it.Image.Height()
			}
			dst.Paste(x, y, it.Image)
			x += it.Image.Width()
		}
		return nil
	})
	return out, ascent
}
