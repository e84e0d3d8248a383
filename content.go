package compose

// imageContent draws a fixed image.
type imageContent struct {
	img *Image
}

func (c *imageContent) Size() (int, int) { return c.img.Width(), c.img.Height() }

func (c *imageContent) Draw() (*Image, error) { return c.img, nil }

// NewImageObject wraps an image as an object's content.
func NewImageObject(img *Image, opts ...Option) (*Object, error) {
	if img == nil {
		return nil, Constructionf("compose.NewImageObject", "nil image")
	}
	return New(&imageContent{img: img}, opts...)
}

// spacer is a transparent content box.
type spacer struct {
	w, h int
}

func (s spacer) Size() (int, int) { return s.w, s.h }

func (s spacer) Draw() (*Image, error) { return NewImage(s.w, s.h), nil }

// NewSpacer returns an empty object of the given content size. Only its
// box options are visible.
func NewSpacer(width, height int, opts ...Option) (*Object, error) {
	if width < 0 || height < 0 {
		return nil, Constructionf("compose.NewSpacer", "negative size %dx%d", width, height)
	}
	return New(spacer{w: width, h: height}, opts...)
}
