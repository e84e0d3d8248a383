package text

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/text/language"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/font"
)

// monoStyle uses Go Mono so that every rune has the same advance.
func monoStyle(t *testing.T) Resolved {
	t.Helper()
	src, err := font.NewSource("mono", gomono.TTF)
	if err != nil {
		t.Fatal(err)
	}
	fam, err := font.NewFamily("mono", src, font.WithRegistry(font.NewRegistry()))
	if err != nil {
		t.Fatal(err)
	}
	style, err := Style{Family: Set(fam), Size: Set(Px(20))}.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	return style
}

func mustText(t *testing.T, s string, style Resolved) *TextElement {
	t.Helper()
	elems, err := NewText(s, style)
	if err != nil {
		t.Fatal(err)
	}
	if len(elems) != 1 {
		t.Fatalf("NewText(%q) gave %d elements", s, len(elems))
	}
	return elems[0].(*TextElement)
}

func charWidth(t *testing.T, style Resolved) int {
	t.Helper()
	one, ten := mustText(t, "m", style), mustText(t, "mmmmmmmmmm", style)
	if ten.Width() != 10*one.Width() {
		t.Fatalf("advance is not uniform: %d vs %d", ten.Width(), one.Width())
	}
	return one.Width()
}

func texts(elems []Element) []string {
	out := make([]string, len(elems))
	for i, e := range elems {
		if te, ok := e.(*TextElement); ok {
			out[i] = te.Text()
		} else {
			out[i] = "<img>"
		}
	}
	return out
}

func TestNewText(t *testing.T) {
	style := monoStyle(t)
	elems, err := NewText("ab\ncd\r\n", style)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"ab", "cd", ""}, texts(elems)); diff != "" {
		t.Errorf("texts (-want +got):\n%s", diff)
	}
	var hard []bool
	for _, e := range elems {
		hard = append(hard, e.HardBreak())
	}
	if diff := cmp.Diff([]bool{true, true, false}, hard); diff != "" {
		t.Errorf("hard breaks (-want +got):\n%s", diff)
	}

	nfc := mustText(t, "é", style)
	if nfc.Len() != 1 || nfc.Text() != "é" {
		t.Errorf("NFC: got %q (%d runes)", nfc.Text(), nfc.Len())
	}

	if _, err := NewText("x", Resolved{Size: 10}); !errors.Is(err, compose.ErrConstruction) {
		t.Errorf("missing family: err = %v", err)
	}
}

func TestStyleResolve(t *testing.T) {
	style := monoStyle(t)
	base := Style{Family: Set(style.Family), Size: Set(Px(20)), Bold: Set(true)}

	child := Style{Size: Set(Em(1.5)), Bold: Clear[bool]()}.Inherit(base)
	r, err := child.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if r.Size != 30 || r.Bold {
		t.Errorf("resolved size=%v bold=%v, want 30 false", r.Size, r.Bold)
	}
	if r.Language != language.English || r.Hyphenation != HyphenNone {
		t.Errorf("defaults: %v %v", r.Language, r.Hyphenation)
	}

	bad := []Style{
		{Size: Set(Px(10))},
		{Family: Set(style.Family)},
		{Family: Set(style.Family), Size: Set(Em(2))},
		{Family: Set(style.Family), Size: Set(Px(0))},
	}
	for i, s := range bad {
		if _, err := s.Resolve(); !errors.Is(err, compose.ErrConstruction) {
			t.Errorf("case %d: err = %v, want ErrConstruction", i, err)
		}
	}
}

func TestSplitAt(t *testing.T) {
	style := monoStyle(t)
	cw := charWidth(t, style)
	withPolicy := func(h Hyphenation) Resolved {
		s := style
		s.Hyphenation = h
		return s
	}

	tests := []struct {
		name      string
		text      string
		style     Resolved
		width     int
		next      int
		current   string // "" for nil
		hyphen    bool
		remaining string // "" for nil
	}{
		{"fits", "hello", style, 5 * cw, 5 * cw, "hello", false, ""},
		{"at space", "hello world", style, 7*cw + 1, 20 * cw, "hello ", false, "world"},
		{"space run", "aaa   bbb", style, 4 * cw, 20 * cw, "aaa ", false, "bbb"},
		{"closing punctuation", "hi there.", style, 8*cw + 1, 20 * cw, "hi ", false, "there."},
		{"punctuation fits", "hi there. ok", style, 9 * cw, 20 * cw, "hi there.", false, "ok"},
		{"defer word", "abcdefghij", style, 4*cw + 2, 20 * cw, "", false, "abcdefghij"},
		{"hard cut", "abcdefghij", style, 4*cw + 2, 5 * cw, "abcd", false, "efghij"},
		{"anywhere", "abcdefghij", withPolicy(HyphenAnywhere), 4*cw + 2, 5 * cw, "abc", true, "defghij"},
		{"anywhere keeps minimum", "xx abcdefghij", withPolicy(HyphenAnywhere), 4*cw + 2, 20 * cw, "xx ", false, "abcdefghij"},
		{"anywhere inside", "xx abcdefghij", withPolicy(HyphenAnywhere), 6*cw + 2, 20 * cw, "xx ab", true, "cdefghij"},
		{"rules", "hyphenation", withPolicy(HyphenRules), 7*cw + 2, 20 * cw, "hyphen", true, "ation"},
		{"rules earlier point", "hyphenation", withPolicy(HyphenRules), 5*cw + 2, 20 * cw, "hy", true, "phenation"},
		{"cjk", "中文字符", style, 2*mustText(t, "中", style).Width() + 1, 20 * cw, "中文", false, "字符"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustText(t, tt.text, tt.style)
			cur, rem, err := e.SplitAt(tt.width, tt.next)
			if err != nil {
				t.Fatal(err)
			}
			got := struct {
				Current, Remaining string
				Hyphen             bool
			}{}
			if cur != nil {
				got.Current = cur.(*TextElement).Text()
				got.Hyphen = cur.(*TextElement).Hyphenated()
				if cur.Width() > tt.width {
					t.Errorf("current width %d exceeds %d", cur.Width(), tt.width)
				}
			}
			if rem != nil {
				got.Remaining = rem.(*TextElement).Text()
			}
			want := struct {
				Current, Remaining string
				Hyphen             bool
			}{tt.current, tt.remaining, tt.hyphen}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("SplitAt (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeAndTrim(t *testing.T) {
	style := monoStyle(t)
	a, b := mustText(t, "foo ", style), mustText(t, "bar  ", style)

	m, ok := a.Merge(b)
	if !ok || m.(*TextElement).Text() != "foo bar  " {
		t.Fatalf("Merge = %v, %v", m, ok)
	}

	bold := style
	bold.Bold = true
	if _, ok := a.Merge(mustText(t, "x", bold)); ok {
		t.Error("merged different styles")
	}
	elems, _ := NewText("x\ny", style)
	if _, ok := elems[0].Merge(elems[1]); ok {
		t.Error("merged across a hard break")
	}

	trimmed, err := m.(*TextElement).TrimTrailingSpace()
	if err != nil {
		t.Fatal(err)
	}
	if got := trimmed.(*TextElement).Text(); got != "foo bar" {
		t.Errorf("trimmed = %q", got)
	}
}

func TestTextDraw(t *testing.T) {
	style := monoStyle(t)
	style.Underline = true
	style.Background = compose.White
	e := mustText(t, "ab", style)
	img, err := e.Draw()
	if err != nil {
		t.Fatal(err)
	}
	if img.Width() != e.Width() || img.Height() != e.Height() {
		t.Fatalf("drawn %dx%d, element %dx%d", img.Width(), img.Height(), e.Width(), e.Height())
	}
	if a := img.AlphaAt(0, 0); a != 255 {
		t.Errorf("background alpha = %d", a)
	}
	base, _ := e.Baseline()
	dark := false
	for y := base; y < img.Height(); y++ {
		if c := img.NRGBAAt(e.Width()/2, y); c.R < 64 {
			dark = true
		}
	}
	if !dark {
		t.Error("no underline below the baseline")
	}
}

// stub is an Element with scripted splits.
type stub struct {
	w, n  int
	split func(s stub) (Element, Element)
}

func (s stub) Width() int {
	return s.w
}

func (s stub) Height() int {
	return 10
}

func (s stub) Baseline() (int, bool) {
	return 10, true
}

func (s stub) Inline() bool {
	return true
}

func (s stub) HardBreak() bool {
	return false
}

func (s stub) Len() int {
	return s.n
}

func (s stub) Merge(Element) (Element, bool) {
	return nil, false
}

func (s stub) Draw() (*compose.Image, error) {
	return compose.NewImage(s.w, 10), nil
}

func (s stub) SplitAt(int, int) (Element, Element, error) {
	cur, rest := s.split(s)
	return cur, rest, nil
}

// stubborn splits off a sliver but never shrinks.
func stubborn(w int) stub {
	return stub{w: w, n: 1, split: func(s stub) (Element, Element) {
		return stub{w: 1, n: 1, split: s.split}, s
	}}
}

// restless returns itself whole with a length that keeps changing.
func restless(w int) stub {
	return stub{w: w, n: 5, split: func(s stub) (Element, Element) {
		s.n = 11 - s.n
		return nil, s
	}}
}

// oversized splits off a part wider than the space offered.
func oversized(w int) stub {
	return stub{w: w, n: 2, split: func(s stub) (Element, Element) {
		return stub{w: s.w - 1, n: 1, split: s.split}, stub{w: 1, n: 1, split: s.split}
	}}
}

func TestBreakLines(t *testing.T) {
	style := monoStyle(t)
	cw := charWidth(t, style)
	textElems := func(s string) []Element {
		elems, err := NewText(s, style)
		if err != nil {
			t.Fatal(err)
		}
		return elems
	}
	block, err := NewImage(compose.NewImage(3*cw, 5), AsBlock())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		elems []Element
		width int
		want  [][]string
	}{
		{"single line", textElems("aaa bbb"), 10 * cw, [][]string{{"aaa bbb"}}},
		{"wrap", textElems("aaa bbb ccc"), 7 * cw, [][]string{{"aaa bbb"}, {"ccc"}}},
		{"hard break", textElems("aa\nbb"), 10 * cw, [][]string{{"aa"}, {"bb"}}},
		{"trailing newline", textElems("aa\n"), 10 * cw, [][]string{{"aa"}, {""}}},
		{"merge runs", append(textElems("aa "), textElems("bb")...), 10 * cw, [][]string{{"aa bb"}}},
		{
			"block",
			append(append(textElems("aa"), block), textElems("bb")...),
			10 * cw,
			[][]string{{"aa"}, {"<img>"}, {"bb"}},
		},
		{"long word", textElems("abcdefghij"), 4 * cw, [][]string{{"abcd"}, {"efgh"}, {"ij"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := BreakLines(tt.elems, tt.width)
			if err != nil {
				t.Fatal(err)
			}
			var got [][]string
			for _, l := range lines {
				got = append(got, texts(l))
				w := 0
				for _, e := range l {
					w += e.Width()
				}
				if w > tt.width {
					t.Errorf("line %v is %d wide, max %d", texts(l), w, tt.width)
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lines (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBreakLinesErrors(t *testing.T) {
	wide, err := NewImage(compose.NewImage(100, 10))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		breaker Breaker
		elems   []Element
		width   int
	}{
		{"image too wide", Breaker{}, []Element{wide}, 50},
		{"no progress", Breaker{Patience: 3}, []Element{stubborn(100)}, 50},
		{"length changes, width does not", Breaker{Patience: 3}, []Element{restless(100)}, 50},
		{"oversized split", Breaker{}, []Element{oversized(100)}, 50},
		{"zero width", Breaker{}, []Element{wide}, 0},
		{"indent", Breaker{FirstLineIndent: 60}, []Element{wide}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.breaker.Break(tt.elems, tt.width)
			if !errors.Is(err, compose.ErrLayout) {
				t.Fatalf("err = %v, want ErrLayout", err)
			}
		})
	}
}

func TestParagraph(t *testing.T) {
	style := monoStyle(t)
	cw := charWidth(t, style)
	h := mustText(t, "x", style).Height()
	elems, err := NewText("aaa bbb ccc", style)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		opts   []ParagraphOption
		width  int
		height int
	}{
		{"default", nil, 7 * cw, 2 * h},
		{"spacing", []ParagraphOption{WithLineSpacing(4)}, 7 * cw, 2*h + 4},
		{"ratio", []ParagraphOption{WithLineSpacingRatio(0.5)}, 7 * cw, 2*h + (h+1)/2},
		{"full width", []ParagraphOption{WithFullWidth()}, 7*cw + 3, 2 * h},
		{"box", []ParagraphOption{WithBox(compose.WithPadding(compose.Uniform(2)))}, 7*cw + 4, 2*h + 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := NewParagraph(elems, 7*cw+3, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if obj.Width() != tt.width || obj.Height() != tt.height {
				t.Errorf("size %dx%d, want %dx%d", obj.Width(), obj.Height(), tt.width, tt.height)
			}
			img, err := obj.Render()
			if err != nil {
				t.Fatal(err)
			}
			if img.Width() != tt.width || img.Height() != tt.height {
				t.Errorf("rendered %dx%d", img.Width(), img.Height())
			}
		})
	}
}

func TestParagraphAlign(t *testing.T) {
	style := monoStyle(t)
	cw := charWidth(t, style)
	elems, _ := NewText("aaa bbb c", style)

	tests := []struct {
		align compose.Align
		want  int
	}{
		{compose.AlignStart, 0},
		{compose.AlignCenter, 3 * cw},
		{compose.AlignEnd, 6 * cw},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			p, err := layoutParagraph(elems, 7*cw, paragraphOptions{align: tt.align})
			if err != nil {
				t.Fatal(err)
			}
			if p.Lines() != 2 {
				t.Fatalf("lines = %d", p.Lines())
			}
			if got := p.lines[1].x; got != tt.want {
				t.Errorf("second line x = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParagraphIndent(t *testing.T) {
	style := monoStyle(t)
	cw := charWidth(t, style)
	elems, _ := NewText("aaa bbb", style)

	p, err := layoutParagraph(elems, 7*cw, paragraphOptions{indent: 2 * cw})
	if err != nil {
		t.Fatal(err)
	}
	if p.Lines() != 2 || p.lines[0].x != 2*cw || p.lines[1].x != 0 {
		t.Errorf("indent layout: %d lines, x0=%d", p.Lines(), p.lines[0].x)
	}
}
