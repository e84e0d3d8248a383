package compose

// Overlay tells Render how a decoration combines with the object image.
type Overlay uint8

const (
	// OverlayNone transforms the border-box image in place, before the
	// margin is added. Crops and filters use it.
	OverlayNone Overlay = iota

	// OverlayBelow draws the decoration layer under the rendered object.
	OverlayBelow

	// OverlayAbove draws the decoration layer over the rendered object.
	OverlayAbove

	// OverlayReplace uses the decoration layer as the new image.
	OverlayReplace
)

// String returns the overlay name.
func (o Overlay) String() string {
	switch o {
	case OverlayNone:
		return "none"
	case OverlayBelow:
		return "below"
	case OverlayAbove:
		return "above"
	case OverlayReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Decoration post-processes an object image.
//
// For OverlayNone, Apply receives the border-box image and returns its
// transformed version. For the other overlays, Apply receives the full
// image including the margin and returns a layer. Either way the returned
// image must have the same size as the input, otherwise Render fails with
// a RenderError. Apply must not edit img.
type Decoration interface {
	Overlay() Overlay
	Apply(img *Image, obj *Object) (*Image, error)
}

// DecorationFunc adapts a function to the Decoration interface.
type DecorationFunc struct {
	Mode Overlay
	Fn   func(img *Image, obj *Object) (*Image, error)
}

// Overlay returns d.Mode.
func (d DecorationFunc) Overlay() Overlay { return d.Mode }

// Apply calls d.Fn.
func (d DecorationFunc) Apply(img *Image, obj *Object) (*Image, error) { return d.Fn(img, obj) }
