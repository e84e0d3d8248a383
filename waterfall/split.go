package waterfall

import (
	"slices"
)

// BruteForceLimit is the largest number of candidate splits SplitOrdered
// enumerates exhaustively.
const BruteForceLimit = 20000

// SplitOrdered divides items 0..n-1 into k contiguous groups with column
// sums as even as possible. When k exceeds n every item gets its own group
// and the trailing groups are empty.
func SplitOrdered(heights []int, k int) [][]int {
	n := len(heights)
	if n == 0 || k <= 0 {
		return nil
	}
	if k >= n {
		out := make([][]int, k)
		for i := range n {
			out[i] = []int{i}
		}
		return out
	}
	var cuts []int
	if binomial(n-1, k-1, BruteForceLimit) <= BruteForceLimit {
		cuts = bestCuts(heights, k)
	} else {
		cuts = thresholdCuts(heights, k)
	}
	return groups(cuts, n)
}

// groups turns cut positions into index groups.
func groups(cuts []int, n int) [][]int {
	out := make([][]int, 0, len(cuts)+1)
	start := 0
	for _, c := range append(slices.Clone(cuts), n) {
		g := make([]int, 0, c-start)
		for i := start; i < c; i++ {
			g = append(g, i)
		}
		out = append(out, g)
		start = c
	}
	return out
}

// binomial returns C(n, r), or a value above limit once it exceeds it.
func binomial(n, r, limit int) int {
	r = min(r, n-r)
	c := 1
	for i := 1; i <= r; i++ {
		c = c * (n - r + i) / i
		if c > limit {
			return limit + 1
		}
	}
	return c
}

// bestCuts tries every way to place k-1 cuts and keeps the one with the
// smallest spread between the tallest and shortest column.
func bestCuts(heights []int, k int) []int {
	n := len(heights)
	prefix := prefixSums(heights)
	cuts := make([]int, k-1)
	for i := range cuts {
		cuts[i] = i + 1
	}
	best := slices.Clone(cuts)
	bestSpread := spread(prefix, cuts)
	for next(cuts, n) {
		if s := spread(prefix, cuts); s < bestSpread {
			bestSpread = s
			copy(best, cuts)
		}
	}
	return best
}

// next advances cuts to the next combination of k-1 positions in 1..n-1.
func next(cuts []int, n int) bool {
	r := len(cuts)
	for i := r - 1; i >= 0; i-- {
		if cuts[i] < n-r+i {
			cuts[i]++
			for j := i + 1; j < r; j++ {
				cuts[j] = cuts[j-1] + 1
			}
			return true
		}
	}
	return false
}

func prefixSums(heights []int) []int {
	prefix := make([]int, len(heights)+1)
	for i, h := range heights {
		prefix[i+1] = prefix[i] + h
	}
	return prefix
}

func spread(prefix, cuts []int) int {
	lo, hi := -1, 0
	start := 0
	for i := 0; i <= len(cuts); i++ {
		c := len(prefix) - 1
		if i < len(cuts) {
			c = cuts[i]
		}
		s := prefix[c] - prefix[start]
		if lo < 0 || s < lo {
			lo = s
		}
		hi = max(hi, s)
		start = c
	}
	return hi - lo
}

// thresholdCuts binary searches the smallest column limit for which a
// greedy split needs at most k columns, then splits the largest groups
// until there are exactly k.
func thresholdCuts(heights []int, k int) []int {
	lo, hi := 0, 0
	for _, h := range heights {
		lo = max(lo, h)
		hi += h
	}
	for lo < hi {
		mid := lo + (hi-lo)/2
		if len(greedyCuts(heights, mid))+1 <= k {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	cuts := greedyCuts(heights, lo)
	prefix := prefixSums(heights)
	for len(cuts)+1 < k {
		cuts = splitLargest(prefix, cuts)
	}
	return cuts
}

// greedyCuts fills each column up to limit before starting the next.
func greedyCuts(heights []int, limit int) []int {
	var cuts []int
	sum := 0
	for i, h := range heights {
		if sum+h > limit && i > 0 {
			cuts = append(cuts, i)
			sum = 0
		}
		sum += h
	}
	return cuts
}

// splitLargest divides the tallest group of at least two items at its
// most balanced point.
func splitLargest(prefix, cuts []int) []int {
	n := len(prefix) - 1
	bounds := append(append([]int{0}, cuts...), n)
	best, bestSum := -1, -1
	for i := 0; i+1 < len(bounds); i++ {
		a, b := bounds[i], bounds[i+1]
		if b-a >= 2 && prefix[b]-prefix[a] > bestSum {
			best, bestSum = i, prefix[b]-prefix[a]
		}
	}
	if best < 0 {
		return cuts
	}
	a, b := bounds[best], bounds[best+1]
	cut, diff := a+1, -1
	for c := a + 1; c < b; c++ {
		left, right := prefix[c]-prefix[a], prefix[b]-prefix[c]
		d := max(left-right, right-left)
		if diff < 0 || d < diff {
			cut, diff = c, d
		}
	}
	out := append(slices.Clone(cuts), cut)
	slices.Sort(out)
	return out
}

// SplitUnordered assigns items to k columns freely, tallest first into
// the currently shortest column. Each column lists its items in index
// order and columns are ordered by their first item. Columns left over
// when k exceeds n come last and are empty.
func SplitUnordered(heights []int, k int) [][]int {
	n := len(heights)
	if n == 0 || k <= 0 {
		return nil
	}
	extra := max(k-n, 0)
	k = min(k, n)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return heights[b] - heights[a] })

	cols := make([][]int, k)
	sums := make([]int, k)
	for _, idx := range order {
		c := 0
		for j := 1; j < k; j++ {
			// Empty columns first so that zero heights still spread out.
			if empty, cEmpty := len(cols[j]) == 0, len(cols[c]) == 0; empty != cEmpty {
				if empty {
					c = j
				}
				continue
			}
			if sums[j] < sums[c] {
				c = j
			}
		}
		cols[c] = append(cols[c], idx)
		sums[c] += heights[idx]
	}
	for _, col := range cols {
		slices.Sort(col)
	}
	slices.SortFunc(cols, func(a, b []int) int { return a[0] - b[0] })
	return append(cols, make([][]int, extra)...)
}
