// Package text lays out styled text and inline images into lines.
//
// Text is split into Elements. The Breaker fills lines greedily, splitting
// an element that does not fit and retrying its remainder on the next line.
// A Paragraph draws each line by baseline concatenation and stacks lines
// vertically.
//
//	style := text.Style{Family: text.Set(fam), Size: text.Set(text.Px(16))}
//	resolved, _ := style.Resolve()
//	elems, _ := text.NewText("Hello, world", resolved)
//	para, _ := text.NewParagraph(elems, 200)
//	img, _ := para.Render()
package text
