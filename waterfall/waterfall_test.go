package waterfall

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/container"
)

func TestSplitOrdered(t *testing.T) {
	tests := []struct {
		name    string
		heights []int
		k       int
		want    [][]int
	}{
		{"one column", []int{3, 1, 4}, 1, [][]int{{0, 1, 2}}},
		{"k equals n", []int{3, 1, 4}, 3, [][]int{{0}, {1}, {2}}},
		{"k above n", []int{3, 1}, 4, [][]int{{0}, {1}, nil, nil}},
		{"balanced pair", []int{1, 1, 1, 1}, 2, [][]int{{0, 1}, {2, 3}}},
		{"uneven", []int{5, 1, 1, 1, 1, 1}, 2, [][]int{{0}, {1, 2, 3, 4, 5}}},
		{"three", []int{2, 2, 2, 3, 3, 6}, 3, [][]int{{0, 1, 2}, {3, 4}, {5}}},
		{"empty", nil, 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitOrdered(tt.heights, tt.k)); diff != "" {
				t.Errorf("SplitOrdered (-want +got):\n%s", diff)
			}
		})
	}
}

func columnSums(heights []int, groups [][]int) (lo, hi int) {
	lo = -1
	for _, g := range groups {
		s := 0
		for _, i := range g {
			s += heights[i]
		}
		if lo < 0 || s < lo {
			lo = s
		}
		hi = max(hi, s)
	}
	return lo, hi
}

func TestSplitOrderedLarge(t *testing.T) {
	heights := make([]int, 200)
	for i := range heights {
		heights[i] = 10 + (i*37)%23
	}
	const k = 6
	if binomial(len(heights)-1, k-1, BruteForceLimit) <= BruteForceLimit {
		t.Fatal("input small enough for brute force")
	}
	groups := SplitOrdered(heights, k)
	if len(groups) != k {
		t.Fatalf("%d groups, want %d", len(groups), k)
	}
	next := 0
	for _, g := range groups {
		if len(g) == 0 {
			t.Fatal("empty group")
		}
		for _, i := range g {
			if i != next {
				t.Fatalf("groups are not contiguous at %d", i)
			}
			next++
		}
	}
	total, tallest := 0, 0
	for _, h := range heights {
		total += h
		tallest = max(tallest, h)
	}
	if _, hi := columnSums(heights, groups); hi > total/k+tallest {
		t.Errorf("tallest column %d exceeds %d", hi, total/k+tallest)
	}
}

func TestSplitOrderedCorrection(t *testing.T) {
	// One huge item forces a threshold that a greedy pass meets with
	// fewer columns than requested.
	heights := []int{1000}
	for i := 0; i < 40; i++ {
		heights = append(heights, 1)
	}
	cuts := thresholdCuts(heights, 8)
	if len(cuts) != 7 {
		t.Fatalf("%d cuts, want 7", len(cuts))
	}
}

func TestSplitUnordered(t *testing.T) {
	tests := []struct {
		name    string
		heights []int
		k       int
		want    [][]int
	}{
		{"greedy", []int{1, 5, 2, 4}, 2, [][]int{{0, 1}, {2, 3}}},
		{"reading order", []int{1, 1, 9}, 2, [][]int{{0, 1}, {2}}},
		{"zero heights", []int{0, 0, 0}, 3, [][]int{{0}, {1}, {2}}},
		{"k above n", []int{2, 3}, 4, [][]int{{0}, {1}, nil, nil}},
		{"one column", []int{2, 3, 1}, 1, [][]int{{0, 1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitUnordered(tt.heights, tt.k)); diff != "" {
				t.Errorf("SplitUnordered (-want +got):\n%s", diff)
			}
		})
	}
}

func items(t *testing.T, heights ...int) []*compose.Object {
	t.Helper()
	out := make([]*compose.Object, len(heights))
	for i, h := range heights {
		obj, err := compose.NewSpacer(10, h)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = obj
	}
	return out
}

func TestNew(t *testing.T) {
	obj, err := New(items(t, 10, 10, 10, 10), 2, WithColumnSpacing(4), WithItemSpacing(2))
	if err != nil {
		t.Fatal(err)
	}
	if obj.Width() != 24 || obj.Height() != 22 {
		t.Errorf("size %dx%d, want 24x22", obj.Width(), obj.Height())
	}
	if _, err := obj.Render(); err != nil {
		t.Fatal(err)
	}

	unordered, err := New(items(t, 30, 10, 10, 10), 2, WithOrdered(false))
	if err != nil {
		t.Fatal(err)
	}
	if unordered.Height() != 30 {
		t.Errorf("unordered height %d, want 30", unordered.Height())
	}
}

func TestNewMoreColumnsThanItems(t *testing.T) {
	obj, err := New(items(t, 10, 20), 4, WithColumnSpacing(5))
	if err != nil {
		t.Fatal(err)
	}
	if obj.Width() != 25 || obj.Height() != 20 {
		t.Errorf("size %dx%d, want 25x20", obj.Width(), obj.Height())
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name    string
		items   []*compose.Object
		columns int
	}{
		{"no items", nil, 2},
		{"no columns", items(t, 1), 0},
		{"nil item", []*compose.Object{nil}, 1},
		{"duplicate item", duplicated(t), 2},
		{"owned item", owned(t), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.items, tt.columns); !errors.Is(err, compose.ErrConstruction) {
				t.Errorf("err = %v, want ErrConstruction", err)
			}
		})
	}
}

// duplicated lists the same object at both ends.
func duplicated(t *testing.T) []*compose.Object {
	its := items(t, 10, 20, 30)
	return append(its, its[0])
}

// owned ends with an object already adopted by another container.
func owned(t *testing.T) []*compose.Object {
	its := items(t, 10, 20, 30)
	if _, err := container.NewLinear(its[2:]); err != nil {
		t.Fatal(err)
	}
	return its
}

func TestNewErrorLeavesItemsUnowned(t *testing.T) {
	its := duplicated(t)
	if _, err := New(its, 2); err == nil {
		t.Fatal("New accepted a duplicated item")
	}
	for i, it := range its {
		if it.Parent() != nil {
			t.Errorf("item %d adopted by a failed layout", i)
		}
	}
}
