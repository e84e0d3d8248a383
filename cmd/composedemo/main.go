// Command composedemo lays out a small report card and saves it as PNG.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/container"
	"github.com/gogpu/compose/datagraph"
	"github.com/gogpu/compose/decoration"
	"github.com/gogpu/compose/font"
	"github.com/gogpu/compose/markup"
	"github.com/gogpu/compose/table"
	"github.com/gogpu/compose/text"
	"github.com/gogpu/compose/waterfall"
)

func main() {
	var (
		width   = flag.Int("width", 640, "content width")
		output  = flag.String("output", "compose.png", "output file")
		verbose = flag.Bool("v", false, "log layout decisions")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	compose.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	card, err := build(*width)
	if err != nil {
		log.Fatalf("Failed to build: %v", err)
	}
	img, err := card.Render()
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := img.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Card saved to %s (%dx%d)\n", *output, img.Width(), img.Height())
}

func family() (*font.Family, error) {
	load := func(name string, data []byte) *font.Source {
		src, err := font.NewSource(name, data)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", name, err)
		}
		return src
	}
	return font.NewFamily("Go",
		load("goregular", goregular.TTF),
		font.WithBold(load("gobold", gobold.TTF)),
		font.WithItalic(load("goitalic", goitalic.TTF)),
		font.WithBoldItalic(load("gobolditalic", gobolditalic.TTF)),
	)
}

func build(width int) (*compose.Object, error) {
	fam, err := family()
	if err != nil {
		return nil, err
	}
	base := text.Style{
		Family:      text.Set(fam),
		Size:        text.Set(text.Px(16)),
		Color:       text.Set[color.Color](compose.Hex("#222222")),
		Hyphenation: text.Set(text.HyphenRules),
		Language:    text.Set(language.English),
	}

	badge := compose.NewImageFilled(14, 14, compose.Hex("#ee6644"))
	doc, err := markup.New(base,
		markup.WithStyle("h", text.Style{Size: text.Set(text.Em(1.6)), Bold: text.Set(true)}),
		markup.WithStyle("em", text.Style{Italic: text.Set(true)}),
		markup.WithStyle("u", text.Style{Underline: text.Set(true)}),
		markup.WithStyle("mark", text.Style{Background: text.Set[color.Color](compose.Hex("#ffee88"))}),
		markup.WithImage("dot", badge, text.WithBaseline(12)),
	)
	if err != nil {
		return nil, err
	}

	title, err := doc.Paragraph(`<h>Quarterly summary</h>`, width)
	if err != nil {
		return nil, err
	}
	intro, err := doc.Paragraph(
		`<dot/> The <em>composition engine</em> measures every element before drawing it, `+
			`so paragraphs, tables and charts can be <u>nested freely</u>. Internationalization `+
			`and characteristically long words are hyphenated by <mark>dictionary rules</mark>.`,
		width, text.WithLineSpacingRatio(0.3), text.WithAlign(compose.AlignStart))
	if err != nil {
		return nil, err
	}

	small, err := text.Style{Size: text.Set(text.Px(13))}.Inherit(base).Resolve()
	if err != nil {
		return nil, err
	}
	grid, err := table.New([][]table.Cell{
		{table.Markup(doc, "<em>Region</em>"), table.Markup(doc, "<em>Revenue</em>"), table.Markup(doc, "<em>Notes</em>")},
		{table.Text("North", small), table.Text("1,204", small), table.Text("Steady growth after the spring campaign.", small)},
		{table.Text("South", small), table.Text("987", small), table.Text("Two stores closed for renovation.", small)},
	},
		table.WithMaxWidth(width),
		table.WithBorder(1, compose.Hex("#999999")),
		table.WithCellPadding(4),
		table.WithRetry(20, 5),
		table.WithBox(compose.WithMargin(compose.Symmetric(12, 0))),
	)
	if err != nil {
		return nil, err
	}

	chart, err := datagraph.NewBarChart([]float64{1204, 987, 1530, 640}, []string{"N", "S", "E", "W"},
		datagraph.WithPlotHeight(120),
		datagraph.WithLabelStyle(small),
		datagraph.WithValueFormat(func(v float64) string { return fmt.Sprintf("%.0f", v) }),
		datagraph.WithBox(compose.WithDecorations(decoration.Contour(decoration.WithDilation(2), decoration.ExternalOnly(),
			decoration.WithColor(compose.Hex("#cccccc")), decoration.WithOverlay(compose.OverlayBelow)))),
	)
	if err != nil {
		return nil, err
	}

	var tiles []*compose.Object
	for i, h := range []int{40, 70, 30, 55, 80, 45} {
		tile, err := compose.NewSpacer(60, h,
			compose.WithBackground(compose.HSL(float64(i)*50, 0.5, 0.6)),
			compose.WithMargin(compose.Uniform(4)),
			compose.WithDecorations(decoration.RoundedCrop(8), decoration.Shadow(2, 2, 1.5, compose.Black.WithAlpha(0.4))))
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, tile)
	}
	gallery, err := waterfall.New(tiles, 3, waterfall.WithColumnSpacing(6), waterfall.WithItemSpacing(6))
	if err != nil {
		return nil, err
	}

	row, err := container.NewLinear([]*compose.Object{chart, gallery},
		container.WithDirection(container.Horizontal), container.WithSpacing(24), container.WithAlign(compose.AlignEnd))
	if err != nil {
		return nil, err
	}

	return container.NewLinear([]*compose.Object{title, intro, grid, row},
		container.WithDirection(container.Vertical),
		container.WithSpacing(8),
		container.WithBox(
			compose.WithPadding(compose.Uniform(20)),
			compose.WithBackground(compose.White),
			compose.WithMargin(compose.Uniform(16)),
			compose.WithDecorations(decoration.SquircleCrop(24), decoration.Shadow(0, 4, 6, compose.Black.WithAlpha(0.3))),
		),
	)
}
