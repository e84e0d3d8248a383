package compose

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by compose and its sub-packages matches
// exactly one of these with errors.Is.
var (
	// ErrConstruction reports an invalid tree: a bad style, decoration or
	// image reference, mismatched markup, or an infeasible table.
	// It is raised while the tree is built, never deferred to Render.
	ErrConstruction = errors.New("compose: invalid construction")

	// ErrLayout reports content that cannot be placed within the given
	// constraints. Callers may retry with a wider maximum width.
	ErrLayout = errors.New("compose: layout failed")

	// ErrRender reports a missing or unreadable resource (font file,
	// image data) or a decoration that violated its size contract.
	ErrRender = errors.New("compose: render failed")
)

// ConstructionError is returned when a tree cannot be built.
type ConstructionError struct {
	Op     string // constructor that failed, e.g. "table.New"
	Reason string
	Err    error // optional cause
}

func (e *ConstructionError) Error() string {
	msg := fmt.Sprintf("compose: %s: %s", e.Op, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

func (e *ConstructionError) Unwrap() error { return e.Err }

// Constructionf builds a ConstructionError with a formatted reason.
func Constructionf(op, format string, args ...any) error {
	return &ConstructionError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// LayoutError is returned when an element cannot be placed even after the
// line breaker exhausted its split attempts.
type LayoutError struct {
	Op       string
	Reason   string
	MaxWidth int
	Err      error
}

func (e *LayoutError) Error() string {
	msg := fmt.Sprintf("compose: %s: %s (max width %d)", e.Op, e.Reason, e.MaxWidth)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LayoutError) Is(target error) bool { return target == ErrLayout }

func (e *LayoutError) Unwrap() error { return e.Err }

// RenderError names the resource that could not be used.
type RenderError struct {
	Resource string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("compose: render %s", e.Resource)
	}
	return fmt.Sprintf("compose: render %s: %v", e.Resource, e.Err)
}

func (e *RenderError) Is(target error) bool { return target == ErrRender }

func (e *RenderError) Unwrap() error { return e.Err }
