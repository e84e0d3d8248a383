package font

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"

	"github.com/gogpu/compose"
)

// ErrEmptyFontData is returned when font data is empty.
var ErrEmptyFontData = errors.New("font: empty font data")

var sourceIDs atomic.Uint64

// Source is one parsed font file. It is immutable and safe for concurrent
// use; sized faces are obtained through a Registry.
type Source struct {
	id   uint64
	name string
	otf  *opentype.Font
	cmap *gotext.Font

	coverage *runeSet
}

// NewSource parses TrueType or OpenType data. name identifies the source
// in errors and logs. Failures are *compose.RenderError values.
func NewSource(name string, data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, &compose.RenderError{Resource: name, Err: ErrEmptyFontData}
	}
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, &compose.RenderError{Resource: name, Err: err}
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &compose.RenderError{Resource: name, Err: err}
	}
	return &Source{
		id:       sourceIDs.Add(1),
		name:     name,
		otf:      otf,
		cmap:     face.Font,
		coverage: newRuneSet(),
	}, nil
}

// LoadSource reads and parses a font file.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, &compose.RenderError{Resource: path, Err: err}
	}
	return NewSource(path, data)
}

// Name returns the name given at construction.
func (s *Source) Name() string { return s.name }

// Covers reports whether the font maps r to a glyph. Answers are memoized.
func (s *Source) Covers(r rune) bool {
	if covered, checked := s.coverage.lookup(r); checked {
		return covered
	}
	_, covered := s.cmap.NominalGlyph(r)
	s.coverage.store(r, covered)
	return covered
}

func (s *Source) String() string { return "font.Source(" + s.name + ")" }
