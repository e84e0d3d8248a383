package compose

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// Image is an RGBA pixel buffer with alpha-premultiplied storage.
//
// Images are read-only by default. In-place changes happen only inside
// Edit, which holds an exclusive lock for the duration of the callback, so
// no other owner observes a half-mutated buffer. Images created by Wrap
// share their pixels with the caller; the first Edit detaches them.
//
// Image implements image.Image.
type Image struct {
	rgba *image.RGBA

	mu      sync.Mutex
	shared  bool
	editing bool
}

// NewImage creates a transparent image. Negative sizes are treated as zero.
func NewImage(width, height int) *Image {
	return &Image{rgba: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

// NewImageFilled creates an image filled with c.
func NewImageFilled(width, height int, c color.Color) *Image {
	img := NewImage(width, height)
	draw.Draw(img.rgba, img.rgba.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// FromPixels creates an image from straight-alpha RGBA bytes, 4 per pixel,
// row-major without padding. The bytes are copied.
func FromPixels(width, height int, pix []byte) (*Image, error) {
	if width < 0 || height < 0 || len(pix) != width*height*4 {
		return nil, Constructionf("compose.FromPixels", "got %d bytes for %dx%d", len(pix), width, height)
	}
	src := &image.NRGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	return FromStdImage(src), nil
}

// Wrap adopts rgba without copying. The caller keeps its reference, so the
// result is treated as shared: the first Edit copies the pixels before
// writing. A non-zero bounds origin forces an immediate copy.
func Wrap(rgba *image.RGBA) *Image {
	if rgba.Rect.Min != (image.Point{}) {
		return FromStdImage(rgba)
	}
	return &Image{rgba: rgba, shared: true}
}

// FromStdImage copies any image.Image into a new Image.
func FromStdImage(src image.Image) *Image {
	b := src.Bounds()
	img := NewImage(b.Dx(), b.Dy())
	draw.Draw(img.rgba, img.rgba.Bounds(), src, b.Min, draw.Src)
	return img
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.rgba.Rect.Dx() }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.rgba.Rect.Dy() }

// Bounds implements image.Image.
func (img *Image) Bounds() image.Rectangle { return img.rgba.Rect }

// ColorModel implements image.Image.
func (img *Image) ColorModel() color.Model { return color.RGBAModel }

// At implements image.Image.
func (img *Image) At(x, y int) color.Color { return img.rgba.RGBAAt(x, y) }

// NRGBAAt returns the straight-alpha color at (x, y).
func (img *Image) NRGBAAt(x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.rgba.RGBAAt(x, y)).(color.NRGBA)
}

// AlphaAt returns the alpha value at (x, y), 0 outside the bounds.
func (img *Image) AlphaAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}.In(img.rgba.Rect)) {
		return 0
	}
	return img.rgba.Pix[img.rgba.PixOffset(x, y)+3]
}

// RGBA exposes the underlying buffer. It must only be written to inside Edit.
func (img *Image) RGBA() *image.RGBA { return img.rgba }

// Copy returns a deep copy.
func (img *Image) Copy() *Image {
	c := &Image{rgba: image.NewRGBA(img.rgba.Rect)}
	copy(c.rgba.Pix, img.rgba.Pix)
	return c
}

// Crop returns a copy of the region r (clipped to the image bounds).
func (img *Image) Crop(r image.Rectangle) *Image {
	r = r.Intersect(img.rgba.Rect)
	out := NewImage(r.Dx(), r.Dy())
	draw.Draw(out.rgba, out.rgba.Bounds(), img.rgba, r.Min, draw.Src)
	return out
}

// Edit runs fn with exclusive write access to img. Edit must not be nested
// on the same image.
func (img *Image) Edit(fn func(dst *Image) error) error {
	img.mu.Lock()
	defer img.mu.Unlock()

	if img.shared {
		detached := image.NewRGBA(img.rgba.Rect)
		copy(detached.Pix, img.rgba.Pix)
		img.rgba = detached
		img.shared = false
	}
	img.editing = true
	defer func() { img.editing = false }()
	return fn(img)
}

// mustEdit panics when a mutating method is called outside Edit.
func (img *Image) mustEdit() {
	if !img.editing {
		panic("compose: Image mutated outside Edit")
	}
}

// Paste composites src over img with its top-left corner at (x, y).
// Parts of src outside img are clipped.
func (img *Image) Paste(x, y int, src *Image) {
	img.mustEdit()
	if src == nil {
		return
	}
	r := image.Rect(x, y, x+src.Width(), y+src.Height())
	draw.Draw(img.rgba, r, src.rgba, image.Point{}, draw.Over)
}

// Replace copies src into img at (x, y), discarding what was there.
func (img *Image) Replace(x, y int, src *Image) {
	img.mustEdit()
	if src == nil {
		return
	}
	r := image.Rect(x, y, x+src.Width(), y+src.Height())
	draw.Draw(img.rgba, r, src.rgba, image.Point{}, draw.Src)
}

// Fill replaces every pixel with c.
func (img *Image) Fill(c color.Color) {
	img.mustEdit()
	draw.Draw(img.rgba, img.rgba.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect composites c over the rectangle r.
func (img *Image) FillRect(r image.Rectangle, c color.Color) {
	img.mustEdit()
	draw.Draw(img.rgba, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// DrawMask composites the uniform color c through mask placed at (x, y).
func (img *Image) DrawMask(x, y int, mask image.Image, c color.Color) {
	img.mustEdit()
	mb := mask.Bounds()
	r := image.Rect(x, y, x+mb.Dx(), y+mb.Dy())
	draw.DrawMask(img.rgba, r, image.NewUniform(c), image.Point{}, mask, mb.Min, draw.Over)
}

// MultiplyAlpha scales every pixel by the alpha of mask at the same
// coordinates. Pixels outside the mask become transparent. Used for crops.
func (img *Image) MultiplyAlpha(mask *image.Alpha) {
	img.mustEdit()
	w, h := img.Width(), img.Height()
	for y := 0; y < h; y++ {
		row := img.rgba.Pix[y*img.rgba.Stride : y*img.rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			m := uint32(mask.AlphaAt(x, y).A)
			if m == 255 {
				continue
			}
			i := x * 4
			row[i+0] = uint8(uint32(row[i+0]) * m / 255)
			row[i+1] = uint8(uint32(row[i+1]) * m / 255)
			row[i+2] = uint8(uint32(row[i+2]) * m / 255)
			row[i+3] = uint8(uint32(row[i+3]) * m / 255)
		}
	}
}

// Set sets a single pixel, ignoring out-of-bounds coordinates.
func (img *Image) Set(x, y int, c color.Color) {
	img.mustEdit()
	img.rgba.Set(x, y, c)
}

// Resize returns a copy scaled to exactly width x height.
func (img *Image) Resize(width, height int) *Image {
	width, height = max(width, 0), max(height, 0)
	if width == img.Width() && height == img.Height() {
		return img.Copy()
	}
	out := NewImage(width, height)
	if width == 0 || height == 0 || img.Width() == 0 || img.Height() == 0 {
		return out
	}
	xdraw.CatmullRom.Scale(out.rgba, out.rgba.Rect, img.rgba, img.rgba.Rect, xdraw.Src, nil)
	return out
}

// Rescale returns a copy scaled by factor, rounding to whole pixels.
func (img *Image) Rescale(factor float64) *Image {
	return img.Resize(scaled(img.Width(), factor), scaled(img.Height(), factor))
}

// Thumbnail shrinks the image to fit inside maxWidth x maxHeight keeping
// its aspect ratio. It never enlarges. A non-positive bound is ignored.
func (img *Image) Thumbnail(maxWidth, maxHeight int) *Image {
	f := 1.0
	if maxWidth > 0 && img.Width() > maxWidth {
		f = math.Min(f, float64(maxWidth)/float64(img.Width()))
	}
	if maxHeight > 0 && img.Height() > maxHeight {
		f = math.Min(f, float64(maxHeight)/float64(img.Height()))
	}
	if f == 1 {
		return img.Copy()
	}
	return img.Rescale(f)
}

// Cover scales the image, keeping its aspect ratio, to the smallest size
// that is at least minWidth x minHeight.
func (img *Image) Cover(minWidth, minHeight int) *Image {
	if img.Width() == 0 || img.Height() == 0 {
		return img.Copy()
	}
	f := math.Max(float64(minWidth)/float64(img.Width()), float64(minHeight)/float64(img.Height()))
	w := max(int(math.Ceil(float64(img.Width())*f-1e-9)), minWidth)
	h := max(int(math.Ceil(float64(img.Height())*f-1e-9)), minHeight)
	return img.Resize(w, h)
}

// ToStdImage returns a copy as *image.RGBA.
func (img *Image) ToStdImage() *image.RGBA {
	return img.Copy().rgba
}

func scaled(v int, f float64) int {
	return max(int(math.Round(float64(v)*f)), 0)
}
