package text

import (
	"math"

	"github.com/gogpu/compose"
)

type paragraphOptions struct {
	spacing    int
	ratio      float64
	useRatio   bool
	align      compose.Align
	baseline   compose.BaselineMode
	indent     int
	patience   int
	fullWidth  bool
	boxOptions []compose.Option
}

// ParagraphOption configures NewParagraph.
type ParagraphOption func(*paragraphOptions)

// WithLineSpacing puts px pixels between lines.
func WithLineSpacing(px int) ParagraphOption {
	return func(o *paragraphOptions) { o.spacing, o.useRatio = px, false }
}

// WithLineSpacingRatio puts a fraction of the preceding line's height
// between lines.
func WithLineSpacingRatio(f float64) ParagraphOption {
	return func(o *paragraphOptions) { o.ratio, o.useRatio = f, true }
}

// WithAlign sets the horizontal alignment of lines.
func WithAlign(a compose.Align) ParagraphOption {
	return func(o *paragraphOptions) { o.align = a }
}

// WithBaselineMode sets how images without a baseline sit in a line.
func WithBaselineMode(m compose.BaselineMode) ParagraphOption {
	return func(o *paragraphOptions) { o.baseline = m }
}

// WithFirstLineIndent indents the first line by px pixels.
func WithFirstLineIndent(px int) ParagraphOption {
	return func(o *paragraphOptions) { o.indent = px }
}

// WithPatience overrides DefaultPatience.
func WithPatience(n int) ParagraphOption {
	return func(o *paragraphOptions) { o.patience = n }
}

// WithFullWidth makes the paragraph exactly maxWidth wide instead of as
// wide as its longest line.
func WithFullWidth() ParagraphOption {
	return func(o *paragraphOptions) { o.fullWidth = true }
}

// WithBox applies box model options to the paragraph object.
func WithBox(opts ...compose.Option) ParagraphOption {
	return func(o *paragraphOptions) { o.boxOptions = append(o.boxOptions, opts...) }
}

type paragraphLine struct {
	elems   []Element
	x, y    int
	width   int
	ascent  int
	descent int
}

// Paragraph is laid out text and inline images.
type Paragraph struct {
	lines         []paragraphLine
	width, height int
	mode          compose.BaselineMode
}

// NewParagraph breaks elems into lines of at most maxWidth and returns
// them as an object. Line breaking happens here, so a layout failure is
// reported by the constructor.
func NewParagraph(elems []Element, maxWidth int, opts ...ParagraphOption) (*compose.Object, error) {
	o := paragraphOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.spacing < 0 || o.ratio < 0 {
		return nil, compose.Constructionf("text.NewParagraph", "negative line spacing")
	}
	p, err := layoutParagraph(elems, maxWidth, o)
	if err != nil {
		return nil, err
	}
	return compose.New(p, o.boxOptions...)
}

func layoutParagraph(elems []Element, maxWidth int, o paragraphOptions) (*Paragraph, error) {
	lines, err := Breaker{Patience: o.patience, FirstLineIndent: o.indent}.Break(elems, maxWidth)
	if err != nil {
		return nil, err
	}

	p := &Paragraph{mode: o.baseline}
	y := 0
	for i, elems := range lines {
		boxes := make([]compose.BaselineBox, len(elems))
		for j, e := range elems {
			base, ok := e.Baseline()
			boxes[j] = compose.BaselineBox{Width: e.Width(), Height: e.Height(), Baseline: base, HasBaseline: ok}
		}
		w, a, d := compose.BaselineExtent(boxes, o.baseline)
		if i > 0 {
			prev := p.lines[i-1]
			if o.useRatio {
				y += int(math.Round(o.ratio * float64(prev.ascent+prev.descent)))
			} else {
				y += o.spacing
			}
		}
		x := 0
		if i == 0 {
			x = o.indent
		}
		p.lines = append(p.lines, paragraphLine{elems: elems, x: x, y: y, width: w, ascent: a, descent: d})
		p.width = max(p.width, x+w)
		y += a + d
	}
	p.height = y
	if o.fullWidth {
		p.width = maxWidth
	}
	for i := range p.lines {
		l := &p.lines[i]
		l.x += o.align.Offset(p.width-l.x, l.width)
	}
	return p, nil
}

// Lines returns the number of lines.
func (p *Paragraph) Lines() int { return len(p.lines) }

func (p *Paragraph) Size() (int, int) { return p.width, p.height }

func (p *Paragraph) Draw() (*compose.Image, error) {
	out := compose.NewImage(p.width, p.height)
	err := out.Edit(func(dst *compose.Image) error {
		for _, l := range p.lines {
			items := make([]compose.BaselineItem, len(l.elems))
			for i, e := range l.elems {
				img, err := e.Draw()
				if err != nil {
					return err
				}
				base, ok := e.Baseline()
				items[i] = compose.BaselineItem{Image: img, Baseline: base, HasBaseline: ok}
			}
			img, _ := compose.ConcatByBaseline(items, p.mode)
			dst.Paste(l.x, l.y, img)
		}
		return nil
	})
	return out, err
}
