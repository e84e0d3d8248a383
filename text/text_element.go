package text

import (
	"image"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/font"
	"github.com/gogpu/compose/hyphen"
)

// MinFragment is the minimum number of runes kept on each side of a
// hyphenated cut.
const MinFragment = 2

// TextElement is a run of text in one resolved style.
type TextElement struct {
	runes  []rune
	style  Resolved
	line   *font.Line
	hard   bool // a line break follows
	hyphen bool // drawn with a trailing hyphen

	breaks []bool
	widths map[int]int // prefix widths, negative keys for hyphenated prefixes
}

// NewText normalizes s to NFC and returns one element per line of s. Every
// element but the last carries a hard break.
func NewText(s string, style Resolved) ([]Element, error) {
	if style.Family == nil {
		return nil, compose.Constructionf("text.NewText", "style has no font family")
	}
	if style.Size <= 0 {
		return nil, compose.Constructionf("text.NewText", "non-positive size %v", style.Size)
	}
	s = strings.ReplaceAll(norm.NFC.String(s), "\r\n", "\n")
	parts := strings.Split(s, "\n")
	elems := make([]Element, 0, len(parts))
	for i, p := range parts {
		e, err := newTextElement([]rune(p), style, i < len(parts)-1, false)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return elems, nil
}

func newTextElement(runes []rune, style Resolved, hard, hyphen bool) (*TextElement, error) {
	display := string(runes)
	if hyphen {
		display += "-"
	}
	line, err := style.Family.Shape(display, style.Size, style.Bold, style.Italic)
	if err != nil {
		return nil, err
	}
	return &TextElement{runes: runes, style: style, line: line, hard: hard, hyphen: hyphen}, nil
}

// Text returns the element's text without an inserted hyphen.
func (e *TextElement) Text() string { return string(e.runes) }

// Style returns the resolved style.
func (e *TextElement) Style() Resolved { return e.style }

// Hyphenated reports whether the element ends with an inserted hyphen.
func (e *TextElement) Hyphenated() bool { return e.hyphen }

// Width returns the shaped width, including an inserted hyphen and the
// padding reserved for simulated italics.
func (e *TextElement) Width() int { return e.line.Width }

// Height returns ascent plus descent of the line, corrections included.
func (e *TextElement) Height() int { return e.line.Height() }

// Baseline returns the distance from the top to the baseline. Text
// always has one.
func (e *TextElement) Baseline() (int, bool) { return e.line.Ascent, true }

// Inline reports true: text flows within a line.
func (e *TextElement) Inline() bool { return true }

// HardBreak reports whether a newline followed the text.
func (e *TextElement) HardBreak() bool { return e.hard }

// Len returns the number of runes, not counting an inserted hyphen.
func (e *TextElement) Len() int { return len(e.runes) }

// prefixWidth measures runes[:k], plus a hyphen when hyphen is set.
func (e *TextElement) prefixWidth(k int, hyphen bool) (int, error) {
	if k == 0 && !hyphen {
		return 0, nil
	}
	key := k
	if hyphen {
		key = -k - 1
	}
	if w, ok := e.widths[key]; ok {
		return w, nil
	}
	s := string(e.runes[:k])
	if hyphen {
		s += "-"
	}
	line, err := e.style.Family.Shape(s, e.style.Size, e.style.Bold, e.style.Italic)
	if err != nil {
		return 0, err
	}
	if e.widths == nil {
		e.widths = make(map[int]int)
	}
	e.widths[key] = line.Width
	return line.Width, nil
}

func (e *TextElement) breakAt(i int) bool {
	if e.breaks == nil {
		e.breaks = breakOpportunities(e.runes)
	}
	return i > 0 && i < len(e.runes) && e.breaks[i]
}

// SplitAt cuts the text so that the first part fits in width.
func (e *TextElement) SplitAt(width, nextWidth int) (Element, Element, error) {
	n := len(e.runes)
	if e.Width() <= width {
		return e, nil, nil
	}

	// Longest prefix that fits.
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi + 1) / 2
		w, err := e.prefixWidth(mid, false)
		if err != nil {
			return nil, nil, err
		}
		if w <= width {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	k := lo
	if k == n {
		return e, nil, nil
	}

	// Closing punctuation stays with the text before it.
	if k > 0 && isClosing(e.runes[k]) {
		w, err := e.prefixWidth(k+1, false)
		if err != nil {
			return nil, nil, err
		}
		if w > width {
			return e.cut(e.wordStart(k - 1))
		}
		k++
		if k == n {
			return e, nil, nil
		}
	}

	if isSpace(e.runes[k]) || e.breakAt(k) {
		// Spaces at the cut are dropped from the next line.
		j := k
		for j < n && isSpace(e.runes[j]) {
			j++
		}
		return e.cutSkip(k, j)
	}
	return e.splitWord(k, width, nextWidth)
}

// splitWord handles a cut point k that falls inside a word.
func (e *TextElement) splitWord(k, width, nextWidth int) (Element, Element, error) {
	ws, we := e.wordStart(k), e.wordEnd(k)
	wordWidth, err := e.measure(e.runes[ws:we])
	if err != nil {
		return nil, nil, err
	}
	fitsNext := wordWidth <= nextWidth

	switch e.style.Hyphenation {
	case HyphenRules:
		if c, ok, err := e.ruleCut(ws, we, width); err != nil || ok {
			if err != nil {
				return nil, nil, err
			}
			return e.cutHyphen(c)
		}
		fallthrough
	case HyphenAnywhere:
		c, ok, err := e.hyphenCut(ws+MinFragment, we-MinFragment, width)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			return e.cutHyphen(c)
		}
		if fitsNext {
			return e.cut(ws)
		}
		// The word fits no line: cut it anyway, ignoring fragment minimums.
		if c, ok, err = e.hyphenCut(ws+1, we-1, width); err != nil || ok {
			if err != nil {
				return nil, nil, err
			}
			return e.cutHyphen(c)
		}
		if ws > 0 {
			return e.cut(ws)
		}
		return e.cut(k)
	default:
		if ws > 0 || fitsNext {
			return e.cut(ws)
		}
		return e.cut(k)
	}
}

// hyphenCut returns the largest c in [from, to] where runes[:c] plus a
// hyphen fits in width.
func (e *TextElement) hyphenCut(from, to, width int) (int, bool, error) {
	for c := to; c >= from && c > 0; c-- {
		w, err := e.prefixWidth(c, true)
		if err != nil {
			return 0, false, err
		}
		if w <= width {
			return c, true, nil
		}
	}
	return 0, false, nil
}

// ruleCut returns the rightmost dictionary hyphenation point that fits.
func (e *TextElement) ruleCut(ws, we, width int) (int, bool, error) {
	dict, ok := hyphen.Lookup(e.style.Language)
	if !ok {
		return 0, false, nil
	}
	end := ws
	for end < we && unicode.IsLetter(e.runes[end]) {
		end++
	}
	points := dict.Points(string(e.runes[ws:end]))
	for i := len(points) - 1; i >= 0; i-- {
		c := ws + points[i]
		w, err := e.prefixWidth(c, true)
		if err != nil {
			return 0, false, err
		}
		if w <= width {
			return c, true, nil
		}
	}
	return 0, false, nil
}

func (e *TextElement) wordStart(k int) int {
	for i := k; i > 0; i-- {
		if e.breakAt(i) {
			return i
		}
	}
	return 0
}

func (e *TextElement) wordEnd(k int) int {
	for i := k + 1; i < len(e.runes); i++ {
		if e.breakAt(i) || isSpace(e.runes[i]) {
			return i
		}
	}
	return len(e.runes)
}

func (e *TextElement) measure(runes []rune) (int, error) {
	line, err := e.style.Family.Shape(string(runes), e.style.Size, e.style.Bold, e.style.Italic)
	if err != nil {
		return 0, err
	}
	return line.Width, nil
}

// cut splits before rune c without a marker. A cut at 0 places nothing.
func (e *TextElement) cut(c int) (Element, Element, error) {
	return e.cutSkip(c, c)
}

// cutSkip keeps runes[:c] and continues with runes[next:].
func (e *TextElement) cutSkip(c, next int) (Element, Element, error) {
	if c <= 0 && next == 0 {
		return nil, e, nil
	}
	if next >= len(e.runes) {
		if c == len(e.runes) {
			return e, nil, nil
		}
		cur, err := newTextElement(e.runes[:c], e.style, e.hard, false)
		if err != nil {
			return nil, nil, err
		}
		return cur, nil, nil
	}
	var cur Element
	if c > 0 {
		te, err := newTextElement(e.runes[:c], e.style, false, false)
		if err != nil {
			return nil, nil, err
		}
		cur = te
	}
	rem, err := newTextElement(e.runes[next:], e.style, e.hard, e.hyphen)
	if err != nil {
		return nil, nil, err
	}
	return cur, rem, nil
}

// cutHyphen splits before rune c and draws a hyphen after the first part.
func (e *TextElement) cutHyphen(c int) (Element, Element, error) {
	if !unicode.IsLetter(e.runes[c-1]) && !unicode.IsDigit(e.runes[c-1]) {
		return e.cut(c)
	}
	cur, err := newTextElement(e.runes[:c], e.style, false, true)
	if err != nil {
		return nil, nil, err
	}
	rem, err := newTextElement(e.runes[c:], e.style, e.hard, e.hyphen)
	if err != nil {
		return nil, nil, err
	}
	return cur, rem, nil
}

// TrimTrailingSpace drops trailing spaces and tabs.
func (e *TextElement) TrimTrailingSpace() (Element, error) {
	end := len(e.runes)
	for end > 0 && isSpace(e.runes[end-1]) {
		end--
	}
	if end == len(e.runes) {
		return e, nil
	}
	return newTextElement(e.runes[:end], e.style, e.hard, e.hyphen)
}

// Merge joins two adjacent runs of the same style.
func (e *TextElement) Merge(next Element) (Element, bool) {
	o, ok := next.(*TextElement)
	if !ok || e.hard || e.hyphen || !e.style.Equal(o.style) {
		return nil, false
	}
	runes := make([]rune, 0, len(e.runes)+len(o.runes))
	runes = append(append(runes, e.runes...), o.runes...)
	merged, err := newTextElement(runes, e.style, o.hard, o.hyphen)
	if err != nil {
		return nil, false
	}
	return merged, true
}

// Draw renders background, glyphs, underline and strikethrough.
func (e *TextElement) Draw() (*compose.Image, error) {
	l := e.line
	out := compose.NewImage(l.Width, l.Height())
	err := out.Edit(func(dst *compose.Image) error {
		if e.style.Background != nil {
			dst.Fill(e.style.Background)
		}
		dst.Paste(0, 0, compose.Wrap(l.Draw(e.style.Color)))

		t := l.DecorationThickness
		if e.style.Underline {
			y := l.Ascent + max(t, l.Descent/3)
			dst.FillRect(image.Rect(0, y, l.Width, y+t), e.style.Color)
		}
		if e.style.Strikethrough {
			y := l.Ascent - l.Ascent*3/10
			dst.FillRect(image.Rect(0, y, l.Width, y+t), e.style.Color)
		}
		return nil
	})
	return out, err
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }
