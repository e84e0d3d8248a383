package markup

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/font"
	"github.com/gogpu/compose/text"
)

func TestParse(t *testing.T) {
	got, err := Parse(`a<b>c\<</b><img/>`)
	if err != nil {
		t.Fatal(err)
	}
	want := []Node{
		{Kind: NodeText, Text: "a", Pos: 0},
		{Kind: NodeScope, Name: "b", Pos: 1, Children: []Node{
			{Kind: NodeText, Text: "c<", Pos: 4},
		}},
		{Kind: NodeImage, Name: "img", Pos: 11},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src string
		pos int
	}{
		{"<b>x", 0},
		{"<b>x</i>", 4},
		{"x</b>", 1},
		{"<>", 0},
		{"</>", 0},
		{"<a b>", 0},
		{`a\`, 1},
		{`\x`, 0},
		{"a>b", 1},
		{"<b", 0},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Parse(tt.src)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if pe.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d (%s)", pe.Pos, tt.pos, pe.Msg)
			}
			if !errors.Is(err, compose.ErrConstruction) {
				t.Error("ParseError does not match ErrConstruction")
			}
		})
	}
}

func TestEscape(t *testing.T) {
	for _, s := range []string{"", "plain", `a<b>c\d`, "<<>>", `\\`} {
		esc := Escape(s)
		back, err := Unescape(esc)
		if err != nil {
			t.Fatalf("Unescape(%q): %v", esc, err)
		}
		if back != s {
			t.Errorf("round trip %q -> %q -> %q", s, esc, back)
		}
		nodes, err := Parse(esc)
		if err != nil {
			t.Fatalf("Parse(%q): %v", esc, err)
		}
		if s != "" && (len(nodes) != 1 || nodes[0].Text != s) {
			t.Errorf("Parse(Escape(%q)) = %+v", s, nodes)
		}
	}
	for _, bad := range []string{`\q`, `a\`} {
		if _, err := Unescape(bad); err == nil {
			t.Errorf("Unescape(%q) succeeded", bad)
		}
	}
}

func regularFamily(t *testing.T) *font.Family {
	t.Helper()
	src, err := font.NewSource("regular", goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	fam, err := font.NewFamily("go", src, font.WithRegistry(font.NewRegistry()))
	if err != nil {
		t.Fatal(err)
	}
	return fam
}

func TestStack(t *testing.T) {
	fam := regularFamily(t)
	s := NewStack(text.Style{Family: text.Set(fam), Size: text.Set(text.Px(20))})

	size := func() float64 {
		t.Helper()
		r, err := s.Current().Resolve()
		if err != nil {
			t.Fatal(err)
		}
		return r.Size
	}

	s.Push(text.Style{Size: text.Set(text.Em(1.5)), Bold: text.Set(true)})
	if got := size(); got != 30 {
		t.Errorf("size after 1.5em = %v", got)
	}
	s.Push(text.Style{Size: text.Set(text.Em(0.5))})
	if got := size(); got != 15 {
		t.Errorf("size after 0.5em = %v", got)
	}
	if bold := s.Current().Bold.Or(false); !bold {
		t.Error("bold not inherited")
	}
	if s.Depth() != 2 {
		t.Errorf("Depth = %d", s.Depth())
	}
	s.Pop()
	s.Pop()
	if s.Pop() {
		t.Error("popped the base scope")
	}
	if got := size(); got != 20 {
		t.Errorf("base size = %v", got)
	}
}

func newDoc(t *testing.T) *Document {
	t.Helper()
	fam := regularFamily(t)
	doc, err := New(
		text.Style{Family: text.Set(fam), Size: text.Set(text.Px(20))},
		WithStyle("b", text.Style{Bold: text.Set(true)}),
		WithStyle("big", text.Style{Size: text.Set(text.Em(2))}),
		WithStyle("plain", text.Style{}),
		WithImage("dot", compose.NewImageFilled(4, 4, compose.Black)),
	)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestFlatten(t *testing.T) {
	doc := newDoc(t)

	type span struct {
		Text  string
		Size  float64
		Bold  bool
		Image bool
	}
	summarize := func(c Content) []span {
		var out []span
		for _, s := range c {
			out = append(out, span{s.Text, s.Style.Size, s.Style.Bold, s.Image != nil})
		}
		return out
	}

	tests := []struct {
		src  string
		want []span
	}{
		{"hello", []span{{"hello", 20, false, false}}},
		{"a<b>b</b><big>c<b>d</b></big>", []span{
			{"a", 20, false, false},
			{"b", 20, true, false},
			{"c", 40, false, false},
			{"d", 40, true, false},
		}},
		{"x<plain>y</plain>z", []span{{"xyz", 20, false, false}}},
		{"a<dot/>b", []span{{"a", 20, false, false}, {"", 0, false, true}, {"b", 20, false, false}}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := doc.Flatten(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, summarize(got)); diff != "" {
				t.Errorf("Flatten (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlattenErrors(t *testing.T) {
	doc := newDoc(t)
	for _, src := range []string{"<nope>x</nope>", "<dot>x</dot>", "<b/>", "<nope/>"} {
		t.Run(src, func(t *testing.T) {
			_, err := doc.Flatten(src)
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Pos != 0 {
				t.Errorf("err = %v, want ParseError at 0", err)
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"duplicate", []Option{WithStyle("x", text.Style{}), WithStyle("x", text.Style{})}},
		{"style and image", []Option{WithStyle("x", text.Style{}), WithImage("x", compose.NewImage(1, 1))}},
		{"bad name", []Option{WithStyle("a b", text.Style{})}},
		{"nil image", []Option{WithImage("x", nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(text.Style{}, tt.opts...); !errors.Is(err, compose.ErrConstruction) {
				t.Errorf("err = %v, want ErrConstruction", err)
			}
		})
	}
}

func TestParagraph(t *testing.T) {
	doc := newDoc(t)
	narrow, err := doc.Paragraph("hello <b>bold</b> world <dot/> and more words", 80)
	if err != nil {
		t.Fatal(err)
	}
	wide, err := doc.Paragraph("hello <b>bold</b> world <dot/> and more words", 2000)
	if err != nil {
		t.Fatal(err)
	}
	if narrow.Width() > 80 {
		t.Errorf("width %d exceeds 80", narrow.Width())
	}
	if narrow.Height() <= wide.Height() {
		t.Errorf("narrow paragraph (%d) not taller than wide one (%d)", narrow.Height(), wide.Height())
	}
	if _, err := narrow.Render(); err != nil {
		t.Fatal(err)
	}
}
