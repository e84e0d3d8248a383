// Package font resolves font files and measures and draws text runs.
//
// A Source is one parsed font file. A Family groups up to four style slots
// (regular, bold, italic, bold italic) and an ordered fallback chain. A
// Registry loads files once and memoizes per-size faces together with their
// metric corrections.
//
//	regular, _ := font.NewSource("Go", goregular.TTF)
//	fam, _ := font.NewFamily("Go", regular, font.WithFallbacks(emoji))
//	line, _ := fam.Shape("Hello", 16, false, true)
//	img := line.Draw(compose.Black)
//
// Glyph metrics and rasterization use golang.org/x/image/font/opentype;
// per-codepoint coverage tables come from github.com/go-text/typesetting.
package font
