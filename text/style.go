package text

import (
	"fmt"
	"image/color"

	"golang.org/x/text/language"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/font"
)

// Size is a font size in pixels, or a multiplier of the enclosing size
// when Relative is set.
type Size struct {
	Value    float64
	Relative bool
}

// Px returns an absolute size.
func Px(v float64) Size { return Size{Value: v} }

// Em returns a size relative to the enclosing absolute size.
func Em(f float64) Size { return Size{Value: f, Relative: true} }

func (s Size) String() string {
	if s.Relative {
		return fmt.Sprintf("%gem", s.Value)
	}
	return fmt.Sprintf("%gpx", s.Value)
}

// Hyphenation selects how words that do not fit are cut.
type Hyphenation uint8

const (
	// HyphenNone moves the word to the next line, cutting it without a
	// marker only when it does not fit any line.
	HyphenNone Hyphenation = iota

	// HyphenAnywhere cuts at the fitting boundary and adds a hyphen.
	HyphenAnywhere

	// HyphenRules cuts at dictionary hyphenation points, falling back to
	// HyphenAnywhere when none fits.
	HyphenRules
)

// String returns the policy name.
func (h Hyphenation) String() string {
	switch h {
	case HyphenNone:
		return "none"
	case HyphenAnywhere:
		return "anywhere"
	case HyphenRules:
		return "rules"
	default:
		return "unknown"
	}
}

// Style is a partial text style. Unset fields inherit from the enclosing
// style; cleared fields resolve to their zero value.
type Style struct {
	Family        Opt[*font.Family]
	Size          Opt[Size]
	Bold          Opt[bool]
	Italic        Opt[bool]
	Underline     Opt[bool]
	Strikethrough Opt[bool]
	Color         Opt[color.Color]
	Background    Opt[color.Color]
	Hyphenation   Opt[Hyphenation]
	Language      Opt[language.Tag]
}

// Inherit fills the unset fields of s from parent. A relative size is
// multiplied by the parent's absolute size; if the parent size is itself
// relative the factors combine and stay relative.
func (s Style) Inherit(parent Style) Style {
	out := Style{
		Family:        s.Family.inherit(parent.Family),
		Size:          s.Size.inherit(parent.Size),
		Bold:          s.Bold.inherit(parent.Bold),
		Italic:        s.Italic.inherit(parent.Italic),
		Underline:     s.Underline.inherit(parent.Underline),
		Strikethrough: s.Strikethrough.inherit(parent.Strikethrough),
		Color:         s.Color.inherit(parent.Color),
		Background:    s.Background.inherit(parent.Background),
		Hyphenation:   s.Hyphenation.inherit(parent.Hyphenation),
		Language:      s.Language.inherit(parent.Language),
	}
	if size, ok := s.Size.Get(); ok && size.Relative {
		if ps, ok := parent.Size.Get(); ok {
			out.Size = Set(Size{Value: size.Value * ps.Value, Relative: ps.Relative})
		}
	}
	return out
}

// Resolved is a complete style with an absolute size.
type Resolved struct {
	Family        *font.Family
	Size          float64
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Color         color.Color
	Background    color.Color // nil for none
	Hyphenation   Hyphenation
	Language      language.Tag
}

// Resolve checks that the family and an absolute size are set and fills
// the remaining fields with defaults: black text, no background, no
// hyphenation, English.
func (s Style) Resolve() (Resolved, error) {
	fam, ok := s.Family.Get()
	if !ok || fam == nil {
		return Resolved{}, compose.Constructionf("text.Style.Resolve", "no font family")
	}
	size, ok := s.Size.Get()
	switch {
	case !ok:
		return Resolved{}, compose.Constructionf("text.Style.Resolve", "no font size")
	case size.Relative:
		return Resolved{}, compose.Constructionf("text.Style.Resolve", "size %v has no absolute reference", size)
	case size.Value <= 0:
		return Resolved{}, compose.Constructionf("text.Style.Resolve", "non-positive size %v", size)
	}
	return Resolved{
		Family:        fam,
		Size:          size.Value,
		Bold:          s.Bold.Or(false),
		Italic:        s.Italic.Or(false),
		Underline:     s.Underline.Or(false),
		Strikethrough: s.Strikethrough.Or(false),
		Color:         s.Color.Or(compose.Black),
		Background:    s.Background.Or(nil),
		Hyphenation:   s.Hyphenation.Or(HyphenNone),
		Language:      s.Language.Or(language.English),
	}, nil
}

// Equal reports whether two resolved styles draw identically.
func (r Resolved) Equal(o Resolved) bool {
	return r.Family == o.Family && r.Size == o.Size &&
		r.Bold == o.Bold && r.Italic == o.Italic &&
		r.Underline == o.Underline && r.Strikethrough == o.Strikethrough &&
		sameColor(r.Color, o.Color) && sameColor(r.Background, o.Background) &&
		r.Hyphenation == o.Hyphenation && r.Language == o.Language
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
