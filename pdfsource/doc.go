// Package pdfsource loads pages from PDF files with pdfcpu and exposes
// them in the form the interpreter consumes: decoded content bytes, a font
// lookup with raw ToUnicode streams and a lazy Form XObject lookup.
//
//	doc, err := pdfsource.Open("map.pdf")
//	if err != nil {
//		return err
//	}
//	page, err := doc.Page(1)
//	if err != nil {
//		return err
//	}
//	res, err := interpreter.New(
//		interpreter.WithFonts(page.Fonts),
//		interpreter.WithXObjects(page.XObjects),
//	).Run(page.Content)
//
// Resource dictionaries are identified by object number when they are
// indirect, which keeps equally named fonts of different forms apart in a
// shared CMap cache.
package pdfsource
