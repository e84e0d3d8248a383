package markup

import (
	"fmt"
	"strings"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/text"
)

// Document holds the named styles and images a markup source may use.
type Document struct {
	base   text.Style
	styles map[string]text.Style
	images map[string]*text.ImageElement
	err    error
}

// Option configures a Document.
type Option func(*Document)

// WithStyle declares a style usable as <name>...</name>.
func WithStyle(name string, style text.Style) Option {
	return func(d *Document) {
		if d.err != nil {
			return
		}
		if d.err = d.declare(name); d.err != nil {
			return
		}
		d.styles[name] = style
	}
}

// WithImage declares an image usable as <name/>.
func WithImage(name string, img *compose.Image, opts ...text.ImageOption) Option {
	return func(d *Document) {
		if d.err != nil {
			return
		}
		if d.err = d.declare(name); d.err != nil {
			return
		}
		elem, err := text.NewImage(img, opts...)
		if err != nil {
			d.err = err
			return
		}
		d.images[name] = elem
	}
}

func (d *Document) declare(name string) error {
	if err := checkName(name, 0); err != nil {
		return compose.Constructionf("markup.New", "invalid name %q", name)
	}
	_, isStyle := d.styles[name]
	_, isImage := d.images[name]
	if isStyle || isImage {
		return compose.Constructionf("markup.New", "name %q declared twice", name)
	}
	return nil
}

// New returns a document whose text defaults to base.
func New(base text.Style, opts ...Option) (*Document, error) {
	d := &Document{
		base:   base,
		styles: make(map[string]text.Style),
		images: make(map[string]*text.ImageElement),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.err != nil {
		return nil, d.err
	}
	return d, nil
}

// Span is a run of text in one style, or an image when Image is set.
type Span struct {
	Text  string
	Style text.Resolved
	Image *text.ImageElement
}

// Content is a flattened document.
type Content []Span

// Text returns the concatenated text of all text spans.
func (c Content) Text() string {
	var b strings.Builder
	for _, s := range c {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Flatten parses src and resolves every text run to a style. Adjacent
// runs of equal style are joined.
func (d *Document) Flatten(src string) (Content, error) {
	nodes, err := Parse(src)
	if err != nil {
		return nil, err
	}
	f := flattener{doc: d, stack: NewStack(d.base)}
	if err := f.walk(nodes); err != nil {
		return nil, err
	}
	return f.out, nil
}

type flattener struct {
	doc   *Document
	stack *Stack
	out   Content
}

func (f *flattener) walk(nodes []Node) error {
	for _, n := range nodes {
		switch n.Kind {
		case NodeText:
			style, err := f.stack.Current().Resolve()
			if err != nil {
				return err
			}
			if last := len(f.out) - 1; last >= 0 && f.out[last].Image == nil && f.out[last].Style.Equal(style) {
				f.out[last].Text += n.Text
				continue
			}
			f.out = append(f.out, Span{Text: n.Text, Style: style})
		case NodeImage:
			img, ok := f.doc.images[n.Name]
			if !ok {
				return f.unknown(n, "image")
			}
			f.out = append(f.out, Span{Image: img})
		case NodeScope:
			style, ok := f.doc.styles[n.Name]
			if !ok {
				return f.unknown(n, "style")
			}
			f.stack.Push(style)
			err := f.walk(n.Children)
			f.stack.Pop()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *flattener) unknown(n Node, kind string) error {
	msg := fmt.Sprintf("undeclared %s %q", kind, n.Name)
	if _, isImage := f.doc.images[n.Name]; isImage && kind == "style" {
		msg = fmt.Sprintf("image %q used as a style; write <%s/>", n.Name, n.Name)
	}
	if _, isStyle := f.doc.styles[n.Name]; isStyle && kind == "image" {
		msg = fmt.Sprintf("style %q used as an image", n.Name)
	}
	return &ParseError{Pos: n.Pos, Msg: msg}
}

// Elements flattens src into line breaker elements.
func (d *Document) Elements(src string) ([]text.Element, error) {
	content, err := d.Flatten(src)
	if err != nil {
		return nil, err
	}
	var elems []text.Element
	for _, span := range content {
		if span.Image != nil {
			elems = append(elems, span.Image)
			continue
		}
		te, err := text.NewText(span.Text, span.Style)
		if err != nil {
			return nil, err
		}
		elems = append(elems, te...)
	}
	return elems, nil
}

// Paragraph lays out src as a paragraph of at most maxWidth.
func (d *Document) Paragraph(src string, maxWidth int, opts ...text.ParagraphOption) (*compose.Object, error) {
	elems, err := d.Elements(src)
	if err != nil {
		return nil, err
	}
	return text.NewParagraph(elems, maxWidth, opts...)
}
