package markup

import (
	"github.com/gogpu/compose/text"
)

// Stack tracks nested style scopes.
type Stack struct {
	frames []text.Style
}

// NewStack returns a stack whose outermost scope is base.
func NewStack(base text.Style) *Stack {
	return &Stack{frames: []text.Style{base}}
}

// Push opens a scope. A relative size is multiplied by the nearest
// enclosing absolute size now, so later scopes never rescale it.
func (s *Stack) Push(style text.Style) {
	if size, ok := style.Size.Get(); ok && size.Relative {
		if outer, ok := s.Current().Size.Get(); ok && !outer.Relative {
			style.Size = text.Set(text.Px(size.Value * outer.Value))
		}
	}
	s.frames = append(s.frames, style)
}

// Pop closes the innermost scope. The base scope cannot be popped.
func (s *Stack) Pop() bool {
	if len(s.frames) == 1 {
		return false
	}
	s.frames = s.frames[:len(s.frames)-1]
	return true
}

// Depth returns the number of open scopes above the base.
func (s *Stack) Depth() int { return len(s.frames) - 1 }

// Current returns the innermost style with every unset field taken from
// the nearest enclosing scope that sets it.
func (s *Stack) Current() text.Style {
	cur := s.frames[len(s.frames)-1]
	for i := len(s.frames) - 2; i >= 0; i-- {
		cur = cur.Inherit(s.frames[i])
	}
	return cur
}
