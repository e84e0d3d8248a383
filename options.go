package compose

import (
	"fmt"
	"image/color"
)

// Option configures the box of an Object during creation.
// Use functional options to customize the box model.
//
// Example:
//
//	obj, err := compose.New(content,
//		compose.WithPadding(compose.Uniform(8)),
//		compose.WithBorder(2, compose.Black),
//		compose.WithBackground(compose.White),
//	)
type Option func(*boxOptions)

// boxOptions holds the box model of an Object.
type boxOptions struct {
	margin      Spacing
	padding     Spacing
	borderWidth int
	borderColor color.Color
	background  color.Color
	decorations []Decoration
}

// defaultBoxOptions returns an empty box: no spacing, no border, a
// transparent background and no decorations.
func defaultBoxOptions() boxOptions {
	return boxOptions{
		borderColor: Black,
	}
}

func (o *boxOptions) validate(op string) error {
	switch {
	case o.margin.negative():
		return Constructionf(op, "negative margin %+v", o.margin)
	case o.padding.negative():
		return Constructionf(op, "negative padding %+v", o.padding)
	case o.borderWidth < 0:
		return Constructionf(op, "negative border width %d", o.borderWidth)
	}
	for i, d := range o.decorations {
		if d == nil {
			return Constructionf(op, "decoration %d is nil", i)
		}
		if v, ok := d.(Validator); ok {
			if err := v.Validate(); err != nil {
				return &ConstructionError{Op: op, Reason: fmt.Sprintf("decoration %d", i), Err: err}
			}
		}
	}
	return nil
}

// WithMargin sets the transparent space outside the border.
func WithMargin(s Spacing) Option {
	return func(o *boxOptions) {
		o.margin = s
	}
}

// WithPadding sets the space between the border and the content.
func WithPadding(s Spacing) Option {
	return func(o *boxOptions) {
		o.padding = s
	}
}

// WithBorder sets a solid border of the given width.
func WithBorder(width int, c color.Color) Option {
	return func(o *boxOptions) {
		o.borderWidth = width
		o.borderColor = c
	}
}

// WithBackground fills the padding box. A nil color keeps it transparent.
func WithBackground(c color.Color) Option {
	return func(o *boxOptions) {
		o.background = c
	}
}

// WithDecorations appends decorations. They are applied in order at render
// time; see Overlay for how each one combines with the image.
func WithDecorations(ds ...Decoration) Option {
	return func(o *boxOptions) {
		o.decorations = append(o.decorations, ds...)
	}
}
