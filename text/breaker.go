package text

import (
	"github.com/gogpu/compose"
)

// DefaultPatience is the number of consecutive attempts without progress
// the breaker tolerates before giving up.
const DefaultPatience = 5

// Breaker fills lines greedily.
type Breaker struct {
	// Patience bounds consecutive splits that fail to shrink an element.
	// Zero means DefaultPatience.
	Patience int

	// FirstLineIndent narrows the first line.
	FirstLineIndent int
}

// BreakLines breaks elems into lines of at most maxWidth with a default
// Breaker.
func BreakLines(elems []Element, maxWidth int) ([][]Element, error) {
	return Breaker{}.Break(elems, maxWidth)
}

// Break distributes elems over lines no wider than maxWidth. A partially
// fitting element is split and its remainder starts the next line. Block
// elements get lines of their own. Each line has trailing whitespace
// removed and adjacent compatible elements merged.
func (b Breaker) Break(elems []Element, maxWidth int) ([][]Element, error) {
	const op = "text.BreakLines"
	if maxWidth <= 0 {
		return nil, &compose.LayoutError{Op: op, Reason: "non-positive width", MaxWidth: maxWidth}
	}
	if b.FirstLineIndent < 0 || b.FirstLineIndent >= maxWidth {
		return nil, &compose.LayoutError{Op: op, Reason: "first line indent leaves no room", MaxWidth: maxWidth}
	}
	patience := b.Patience
	if patience <= 0 {
		patience = DefaultPatience
	}

	var (
		lines  [][]Element
		cur    []Element
		used   int
		stalls int
	)
	lineWidth := func() int {
		if len(lines) == 0 {
			return maxWidth - b.FirstLineIndent
		}
		return maxWidth
	}
	flush := func() error {
		line, err := finishLine(cur)
		if err != nil {
			return err
		}
		lines = append(lines, line)
		cur, used = nil, 0
		return nil
	}

	queue := append([]Element(nil), elems...)
	for i := 0; i < len(queue); {
		e := queue[i]
		if e == nil {
			i++
			continue
		}

		if !e.Inline() {
			if len(cur) > 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			if e.Width() > lineWidth() {
				return nil, &compose.LayoutError{Op: op, Reason: "block element wider than the line", MaxWidth: maxWidth}
			}
			cur = append(cur, e)
			if err := flush(); err != nil {
				return nil, err
			}
			i++
			continue
		}

		avail := lineWidth() - used
		if e.Width() <= avail {
			cur = append(cur, e)
			used += e.Width()
			stalls = 0
			i++
			if e.HardBreak() {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			continue
		}

		current, rest, err := e.SplitAt(avail, maxWidth)
		if err != nil {
			return nil, &compose.LayoutError{Op: op, Reason: "split failed", MaxWidth: maxWidth, Err: err}
		}
		if current != nil {
			if current.Width() > avail {
				return nil, &compose.LayoutError{Op: op, Reason: "split returned an oversized part", MaxWidth: maxWidth}
			}
			cur = append(cur, current)
			used += current.Width()
		}
		if rest == nil {
			stalls = 0
			i++
			if current != nil && current.HardBreak() {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			continue
		}

		// A remainder deferred whole to a fresh line is not a stall.
		stalled := rest.Width() >= e.Width() && (current != nil || len(cur) == 0)
		if stalled {
			stalls++
			if stalls >= patience {
				compose.Logger().Warn("line breaking gave up",
					"max_width", maxWidth, "attempts", stalls, "element_width", e.Width())
				return nil, &compose.LayoutError{Op: op, Reason: "element does not fit and cannot be split", MaxWidth: maxWidth}
			}
		} else {
			stalls = 0
		}

		queue[i] = rest
		if len(cur) > 0 {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if len(cur) > 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// finishLine merges neighbours and strips trailing whitespace. Elements
// left empty by trimming are dropped unless they are all the line has.
func finishLine(cur []Element) ([]Element, error) {
	line := make([]Element, 0, len(cur))
	for _, e := range cur {
		if n := len(line); n > 0 {
			if m, ok := line[n-1].Merge(e); ok {
				line[n-1] = m
				continue
			}
		}
		line = append(line, e)
	}
	for len(line) > 0 {
		n := len(line)
		t, ok := line[n-1].(trimmer)
		if !ok {
			break
		}
		trimmed, err := t.TrimTrailingSpace()
		if err != nil {
			return nil, err
		}
		if trimmed.Len() > 0 || n == 1 {
			line[n-1] = trimmed
			break
		}
		line = line[:n-1]
	}
	return line, nil
}
