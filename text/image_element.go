package text

import (
	"github.com/gogpu/compose"
)

// ImageElement places an image in a line. It never splits.
type ImageElement struct {
	img         *compose.Image
	block       bool
	baseline    int
	hasBaseline bool
}

// ImageOption configures an ImageElement.
type ImageOption func(*ImageElement)

// AsBlock makes the image a block element on a line of its own.
func AsBlock() ImageOption {
	return func(e *ImageElement) { e.block = true }
}

// WithBaseline sets the baseline of the image, measured from its top.
// Without one the image is aligned per the paragraph's baseline mode.
func WithBaseline(y int) ImageOption {
	return func(e *ImageElement) { e.baseline, e.hasBaseline = y, true }
}

// NewImage wraps img as an inline element.
func NewImage(img *compose.Image, opts ...ImageOption) (*ImageElement, error) {
	if img == nil {
		return nil, compose.Constructionf("text.NewImage", "nil image")
	}
	e := &ImageElement{img: img}
	for _, opt := range opts {
		opt(e)
	}
	if e.hasBaseline && (e.baseline < 0 || e.baseline > img.Height()) {
		return nil, compose.Constructionf("text.NewImage", "baseline %d outside image height %d", e.baseline, img.Height())
	}
	return e, nil
}

func (e *ImageElement) Width() int  { return e.img.Width() }
func (e *ImageElement) Height() int { return e.img.Height() }

func (e *ImageElement) Baseline() (int, bool) { return e.baseline, e.hasBaseline }

func (e *ImageElement) Inline() bool    { return !e.block }
func (e *ImageElement) HardBreak() bool { return false }
func (e *ImageElement) Len() int        { return 1 }

// SplitAt returns the whole image when it fits and nothing otherwise.
func (e *ImageElement) SplitAt(width, _ int) (Element, Element, error) {
	if e.Width() <= width {
		return e, nil, nil
	}
	return nil, e, nil
}

func (e *ImageElement) Merge(Element) (Element, bool) { return nil, false }

func (e *ImageElement) Draw() (*compose.Image, error) { return e.img, nil }
