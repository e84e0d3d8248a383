package table

import (
	"errors"
	"fmt"

	"github.com/gogpu/compose"
)

// ErrMinWidth is wrapped by the construction error returned when the
// minimum column width times the column count exceeds the maximum width.
var ErrMinWidth = errors.New("table: minimum column widths exceed the maximum width")

// DefaultThreshold disables the spread limit: only the minimum width is
// enforced.
const DefaultThreshold = 1.0

// NormalizeWidths fits natural column widths into maxWidth. Widths are
// scaled down proportionally when they do not fit, then one pixel at a
// time is moved from the widest column to the narrowest until every
// column is at least minWidth and the spread between widest and narrowest
// is at most threshold times the total.
func NormalizeWidths(natural []int, maxWidth, minWidth int, threshold float64) ([]int, error) {
	const op = "table.NormalizeWidths"
	n := len(natural)
	if n == 0 {
		return nil, nil
	}
	if minWidth < 0 || threshold < 0 {
		return nil, compose.Constructionf(op, "negative minimum width or threshold")
	}
	if minWidth*n > maxWidth {
		return nil, &compose.ConstructionError{
			Op:     op,
			Reason: fmt.Sprintf("%d columns of at least %dpx do not fit in %dpx", n, minWidth, maxWidth),
			Err:    ErrMinWidth,
		}
	}

	widths := make([]int, n)
	total := 0
	for i, w := range natural {
		if w < 0 {
			return nil, compose.Constructionf(op, "negative width %d for column %d", w, i)
		}
		widths[i] = w
		total += w
	}
	if total > maxWidth {
		scaled := 0
		for i, w := range natural {
			widths[i] = w * maxWidth / total
			scaled += widths[i]
		}
		total = scaled
	}

	limit := int(threshold * float64(total))
	for {
		lo, hi := extremes(widths)
		short := widths[lo] < minWidth
		if !short && widths[hi]-widths[lo] <= limit {
			break
		}
		if short && total < maxWidth {
			// Room left: widen without taking from another column.
			widths[lo]++
			total++
			continue
		}
		if widths[hi]-widths[lo] <= 1 {
			break
		}
		widths[hi]--
		widths[lo]++
	}
	return widths, nil
}

// extremes returns the indexes of the narrowest and widest columns. Ties
// go to the rightmost narrowest and leftmost widest column.
func extremes(widths []int) (lo, hi int) {
	for i, w := range widths {
		if w <= widths[lo] {
			lo = i
		}
		if w > widths[hi] {
			hi = i
		}
	}
	return lo, hi
}
