package font

import (
	"github.com/gogpu/compose"
)

// DefaultShear is the horizontal shear used to simulate italics.
const DefaultShear = 0.2

// Family groups the style slots of a typeface with its fallback chain and
// per-family rendering corrections. It is immutable after NewFamily.
type Family struct {
	name       string
	regular    *Source
	bold       *Source
	italic     *Source
	boldItalic *Source
	fallbacks  []*Source

	shear               float64
	decorationThickness int
	baselineCorrection  bool
	topCorrection       bool
	registry            *Registry
}

// FamilyOption configures a Family.
type FamilyOption func(*Family)

// WithBold sets the bold source.
func WithBold(src *Source) FamilyOption {
	return func(f *Family) { f.bold = src }
}

// WithItalic sets the italic source.
func WithItalic(src *Source) FamilyOption {
	return func(f *Family) { f.italic = src }
}

// WithBoldItalic sets the bold italic source.
func WithBoldItalic(src *Source) FamilyOption {
	return func(f *Family) { f.boldItalic = src }
}

// WithFallbacks appends sources tried, in order, for characters the style
// slot does not cover.
func WithFallbacks(srcs ...*Source) FamilyOption {
	return func(f *Family) { f.fallbacks = append(f.fallbacks, srcs...) }
}

// WithShear sets the shear factor of simulated italics.
func WithShear(factor float64) FamilyOption {
	return func(f *Family) { f.shear = factor }
}

// WithDecorationThickness sets the underline and strikethrough thickness in
// pixels. Zero derives it from the font size.
func WithDecorationThickness(px int) FamilyOption {
	return func(f *Family) { f.decorationThickness = px }
}

// WithBaselineCorrection toggles the ascent-overshoot bottom padding.
// It is on by default.
func WithBaselineCorrection(on bool) FamilyOption {
	return func(f *Family) { f.baselineCorrection = on }
}

// WithTopCorrection toggles top padding derived from the font bounding box.
// It is off by default.
func WithTopCorrection(on bool) FamilyOption {
	return func(f *Family) { f.topCorrection = on }
}

// WithRegistry sets the registry that memoizes faces. Default() is used
// otherwise.
func WithRegistry(r *Registry) FamilyOption {
	return func(f *Family) { f.registry = r }
}

// NewFamily builds a family around its regular source.
func NewFamily(name string, regular *Source, opts ...FamilyOption) (*Family, error) {
	f := &Family{
		name:               name,
		regular:            regular,
		shear:              DefaultShear,
		baselineCorrection: true,
	}
	for _, opt := range opts {
		opt(f)
	}

	switch {
	case regular == nil:
		return nil, compose.Constructionf("font.NewFamily", "family %q has no regular source", name)
	case f.shear < 0 || f.shear > 1:
		return nil, compose.Constructionf("font.NewFamily", "shear %v outside [0, 1]", f.shear)
	case f.decorationThickness < 0:
		return nil, compose.Constructionf("font.NewFamily", "negative decoration thickness")
	}
	for i, fb := range f.fallbacks {
		if fb == nil {
			return nil, compose.Constructionf("font.NewFamily", "fallback %d is nil", i)
		}
	}
	return f, nil
}

// Name returns the family name.
func (f *Family) Name() string { return f.name }

// Shear returns the shear factor of simulated italics.
func (f *Family) Shear() float64 { return f.shear }

func (f *Family) reg() *Registry {
	if f.registry != nil {
		return f.registry
	}
	return Default()
}

// Resolve picks the closest real style slot. When no italic file is
// available for an italic request, simulate is true and callers shear the
// rendered text.
func (f *Family) Resolve(bold, italic bool) (src *Source, simulate bool) {
	switch {
	case bold && italic:
		switch {
		case f.boldItalic != nil:
			return f.boldItalic, false
		case f.bold != nil:
			return f.bold, true
		case f.italic != nil:
			return f.italic, false
		}
		return f.regular, true
	case bold:
		if f.bold != nil {
			return f.bold, false
		}
		return f.regular, false
	case italic:
		if f.italic != nil {
			return f.italic, false
		}
		return f.regular, true
	}
	return f.regular, false
}

// Run is a maximal piece of text drawn with one source.
type Run struct {
	Text   string
	Source *Source
}

// Segment splits text into maximal runs. Each character goes to the first
// of [resolved style slot, fallbacks...] that covers it; characters nobody
// covers stay with the style slot and render as its missing-glyph mark.
func (f *Family) Segment(text string, bold, italic bool) []Run {
	primary, _ := f.Resolve(bold, italic)
	var runs []Run
	start := 0
	var cur *Source
	for i, r := range text {
		src := f.sourceFor(primary, r)
		if cur != nil && src != cur {
			runs = append(runs, Run{Text: text[start:i], Source: cur})
			start = i
		}
		cur = src
	}
	if cur != nil {
		runs = append(runs, Run{Text: text[start:], Source: cur})
	}
	return runs
}

func (f *Family) sourceFor(primary *Source, r rune) *Source {
	if primary.Covers(r) {
		return primary
	}
	for _, fb := range f.fallbacks {
		if fb.Covers(r) {
			return fb
		}
	}
	if primary.coverage.warn(r) {
		compose.Logger().Warn("font: no glyph", "family", f.name, "rune", string(r))
	} else {
		compose.Logger().Debug("font: no glyph", "family", f.name, "rune", string(r))
	}
	return primary
}
