package font

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/compose"
)

func mustSource(t *testing.T, name string, data []byte) *Source {
	t.Helper()
	src, err := NewSource(name, data)
	if err != nil {
		t.Fatalf("NewSource(%s): %v", name, err)
	}
	return src
}

func TestNewSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not a font")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSource(tt.name, tt.data)
			if !errors.Is(err, compose.ErrRender) {
				t.Fatalf("err = %v, want ErrRender", err)
			}
			var re *compose.RenderError
			if !errors.As(err, &re) || re.Resource != tt.name {
				t.Errorf("resource not named in %v", err)
			}
		})
	}
}

func TestCovers(t *testing.T) {
	src := mustSource(t, "regular", goregular.TTF)
	for _, r := range "Aaé€Ж" {
		if !src.Covers(r) {
			t.Errorf("Covers(%q) = false", r)
		}
	}
	if src.Covers('中') {
		t.Error("Go Regular should not cover CJK")
	}
	// Memoized answer.
	if covered, checked := src.coverage.lookup('中'); !checked || covered {
		t.Errorf("lookup = %v, %v; want false, true", covered, checked)
	}
}

func TestResolve(t *testing.T) {
	regular := mustSource(t, "regular", goregular.TTF)
	bold := mustSource(t, "bold", gobold.TTF)
	italic := mustSource(t, "italic", goitalic.TTF)

	full, _ := NewFamily("full", regular, WithBold(bold), WithItalic(italic), WithBoldItalic(bold))
	plain, _ := NewFamily("plain", regular)
	boldOnly, _ := NewFamily("boldOnly", regular, WithBold(bold))

	tests := []struct {
		name         string
		fam          *Family
		bold, italic bool
		want         *Source
		simulate     bool
	}{
		{"full regular", full, false, false, regular, false},
		{"full italic", full, false, true, italic, false},
		{"full bold italic", full, true, true, bold, false},
		{"plain italic", plain, false, true, regular, true},
		{"plain bold", plain, true, false, regular, false},
		{"boldOnly bold italic", boldOnly, true, true, bold, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, sim := tt.fam.Resolve(tt.bold, tt.italic)
			if got != tt.want || sim != tt.simulate {
				t.Errorf("Resolve = %v, %v; want %v, %v", got, sim, tt.want, tt.simulate)
			}
		})
	}
}

func TestNewFamilyValidation(t *testing.T) {
	regular := mustSource(t, "regular", goregular.TTF)
	tests := []struct {
		name    string
		regular *Source
		opts    []FamilyOption
	}{
		{"nil regular", nil, nil},
		{"bad shear", regular, []FamilyOption{WithShear(2)}},
		{"nil fallback", regular, []FamilyOption{WithFallbacks(nil)}},
		{"negative thickness", regular, []FamilyOption{WithDecorationThickness(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFamily("f", tt.regular, tt.opts...); !errors.Is(err, compose.ErrConstruction) {
				t.Errorf("err = %v, want ErrConstruction", err)
			}
		})
	}
}

func TestSegment(t *testing.T) {
	regular := mustSource(t, "regular", goregular.TTF)
	cjk := mustSource(t, "cjk", gomono.TTF)
	// Pretend the second font covers these ideographs.
	cjk.coverage.store('中', true)
	cjk.coverage.store('文', true)

	fam, _ := NewFamily("seg", regular, WithFallbacks(cjk))
	runs := fam.Segment("ab中文cd", false, false)

	want := []Run{{"ab", regular}, {"中文", cjk}, {"cd", regular}}
	if len(runs) != len(want) {
		t.Fatalf("runs = %v, want %v", runs, want)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Errorf("run %d = %v, want %v", i, runs[i], want[i])
		}
	}

	// Nobody covers this one: it stays with the primary font.
	runs = fam.Segment("a࿿", false, false)
	if len(runs) != 1 || runs[0].Source != regular {
		t.Errorf("uncovered rune runs = %v", runs)
	}

	if runs := fam.Segment("", false, false); len(runs) != 0 {
		t.Errorf("empty text runs = %v", runs)
	}
}

func TestMissingGlyphWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	compose.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer compose.SetLogger(nil)

	fam, _ := NewFamily("warn", mustSource(t, "regular", goregular.TTF))
	for range 3 {
		fam.Segment("a࿿b", false, false)
	}

	out := buf.String()
	if n := strings.Count(out, "level=WARN"); n != 1 {
		t.Errorf("WARN records = %d, want 1\n%s", n, out)
	}
	if n := strings.Count(out, "level=DEBUG"); n != 2 {
		t.Errorf("DEBUG records = %d, want 2\n%s", n, out)
	}
}

func TestRegistryFaceMemoized(t *testing.T) {
	reg := NewRegistry()
	src := mustSource(t, "regular", goregular.TTF)

	a, err := reg.Face(src, 16)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	b, _ := reg.Face(src, 16)
	c, _ := reg.Face(src, 17)
	if a != b {
		t.Error("same size should return the memoized face")
	}
	if a == c {
		t.Error("different sizes should not share a face")
	}

	m := a.Metrics()
	if m.Ascent <= 0 || m.Descent <= 0 || m.BottomPad < 0 || m.TopPad < 0 {
		t.Errorf("unexpected metrics %+v", m)
	}

	if _, err := reg.Face(src, 0); !errors.Is(err, compose.ErrConstruction) {
		t.Errorf("size 0: err = %v, want ErrConstruction", err)
	}
}

func TestRegistryLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}

	reg := NewRegistry()
	var wg sync.WaitGroup
	got := make([]*Source, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src, err := reg.Load(path)
			if err != nil {
				t.Errorf("Load: %v", err)
			}
			got[i] = src
		}()
	}
	wg.Wait()
	for i := range got {
		if got[i] == nil || got[i] != got[0] {
			t.Fatalf("load %d returned a different source", i)
		}
	}

	if _, err := reg.Load(filepath.Join(t.TempDir(), "missing.ttf")); !errors.Is(err, compose.ErrRender) {
		t.Errorf("missing file: err = %v, want ErrRender", err)
	}
}

func TestRegistryClose(t *testing.T) {
	reg := NewRegistry()
	src := mustSource(t, "regular", goregular.TTF)
	if _, err := reg.Face(src, 12); err != nil {
		t.Fatalf("Face: %v", err)
	}
	if err := reg.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	_, err := reg.Face(src, 12)
	if !errors.Is(err, ErrRegistryClosed) || !errors.Is(err, compose.ErrRender) {
		t.Errorf("err = %v, want ErrRegistryClosed", err)
	}
	if _, err := reg.Load("x.ttf"); !errors.Is(err, ErrRegistryClosed) {
		t.Errorf("Load after Close: err = %v", err)
	}
	if reg.Stats().Len != 0 {
		t.Error("Close should clear cached faces")
	}
}

func TestShapeAndDraw(t *testing.T) {
	regular := mustSource(t, "regular", goregular.TTF)
	italic := mustSource(t, "italic", goitalic.TTF)
	reg := NewRegistry()

	plain, _ := NewFamily("plain", regular, WithRegistry(reg))
	withItalic, _ := NewFamily("real", regular, WithItalic(italic), WithRegistry(reg))

	upright, err := plain.Shape("Hello", 20, false, false)
	if err != nil {
		t.Fatalf("Shape: %v", err)
	}
	if upright.Width <= 0 || upright.Height() <= 0 || upright.ItalicPad != 0 {
		t.Fatalf("upright line = %+v", upright)
	}

	simulated, _ := plain.Shape("Hello", 20, false, true)
	if simulated.ItalicPad == 0 || simulated.Width != upright.Width+simulated.ItalicPad {
		t.Errorf("simulated italic width %d pad %d, upright %d",
			simulated.Width, simulated.ItalicPad, upright.Width)
	}
	if want := int(math.Ceil(DefaultShear * float64(simulated.Height()))); simulated.ItalicPad != want {
		t.Errorf("ItalicPad = %d, want %d", simulated.ItalicPad, want)
	}

	realItalic, _ := withItalic.Shape("Hello", 20, false, true)
	if realItalic.ItalicPad != 0 || realItalic.Shear != 0 {
		t.Error("a real italic face must not be sheared")
	}

	for _, line := range []*Line{upright, simulated} {
		img := line.Draw(compose.Black)
		if img.Rect.Dx() != line.Width || img.Rect.Dy() != line.Height() {
			t.Errorf("draw size %v, want %dx%d", img.Rect, line.Width, line.Height())
		}
		ink := false
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] != 0 {
				ink = true
				break
			}
		}
		if !ink {
			t.Error("line drew no ink")
		}
	}
}

func TestShapeEmpty(t *testing.T) {
	fam, _ := NewFamily("plain", mustSource(t, "regular", goregular.TTF))
	line, err := fam.Shape("", 14, false, false)
	if err != nil {
		t.Fatalf("Shape: %v", err)
	}
	if line.Width != 0 || line.Height() == 0 {
		t.Errorf("empty line should keep the font height: %+v", line)
	}
}

func TestDecorationThickness(t *testing.T) {
	src := mustSource(t, "regular", goregular.TTF)
	auto, _ := NewFamily("auto", src)
	fixedFam, _ := NewFamily("fixed", src, WithDecorationThickness(3))

	if l, _ := auto.Shape("x", 32, false, false); l.DecorationThickness != 2 {
		t.Errorf("derived thickness = %d, want 2", l.DecorationThickness)
	}
	if l, _ := fixedFam.Shape("x", 32, false, false); l.DecorationThickness != 3 {
		t.Errorf("fixed thickness = %d, want 3", l.DecorationThickness)
	}
}
