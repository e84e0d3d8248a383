package text

import (
	"github.com/gogpu/compose"
)

// Element is one piece of line content: a run of styled text or an image.
type Element interface {
	// Width and Height are the drawn size in pixels.
	Width() int
	Height() int

	// Baseline is the distance from the top to the baseline, if any.
	Baseline() (int, bool)

	// Inline is false for block elements, which get lines of their own.
	Inline() bool

	// HardBreak reports that a line break must follow the element.
	HardBreak() bool

	// Len is the amount of content left, such as a rune count. The line
	// breaker uses it together with Width to detect progress.
	Len() int

	// SplitAt divides the element so that current fits in width. The
	// remainder will be laid out starting on a line of nextWidth. current
	// is nil when nothing fits; remaining is nil when everything fits.
	SplitAt(width, nextWidth int) (current, remaining Element, err error)

	// Merge combines the element with the one that follows it on a line,
	// or reports false when they cannot be combined.
	Merge(next Element) (Element, bool)

	// Draw renders the element at exactly Width x Height.
	Draw() (*compose.Image, error)
}

// trimmer is implemented by elements that can drop trailing whitespace.
type trimmer interface {
	TrimTrailingSpace() (Element, error)
}
