// Package markup turns a small tag language into styled text elements.
//
// A document names styles and images up front. In the source text,
// <name>...</name> applies the named style to its contents and <name/>
// inserts the named image. The characters <, > and \ are written \<, \>
// and \\.
//
//	doc, err := markup.New(base,
//		markup.WithStyle("b", text.Style{Bold: text.Set(true)}),
//		markup.WithImage("logo", logo))
//	obj, err := doc.Paragraph(`Hello <b>world</b> <logo/>`, 400)
package markup
