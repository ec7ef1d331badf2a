// Package gellyscape provides a fluent API for turning PDF page content
// into pixel-space paths and positioned text.
//
// Basic usage:
//
//	pages, warnings, err := gellyscape.Open("map.pdf").Extract()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", gellyscape.FormatWarnings(warnings))
//	}
//	for _, el := range pages[0].Elements {
//	    fmt.Println(el.Markup())
//	}
//
// With options:
//
//	pages, _, err := gellyscape.Open("map.pdf").
//	    Pages(2).
//	    UseCropBox().
//	    Transform(svgpath.WithOutputSize(2048, 2048), svgpath.WithPrecision(2)).
//	    Extract()
//
// Content streams that are already decoded can be interpreted directly:
//
//	pages, _, err := gellyscape.FromContent(data).Extract()
//
// The lower-level interpreter and svgpath packages are also available.
package gellyscape

import "github.com/dirtybirdnj/gellyscape/diag"

// Warning describes a tolerated problem found during extraction.
type Warning = diag.Warning

// Open returns an Extractor for the PDF file at filename. Nothing is read
// until a terminal operation such as Extract is called.
//
// Example:
//
//	pages, warnings, err := gellyscape.Open("map.pdf").Extract()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromContent returns an Extractor for one decoded content stream, treated
// as page 1. Fonts and XObjects can be supplied with Fonts and XObjects.
//
// Example:
//
//	pages, _, err := gellyscape.FromContent([]byte("0 0 m 100 100 l S")).Extract()
func FromContent(data []byte) *Extractor {
	return &Extractor{
		content:     data,
		fromContent: true,
		options:     defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustExtract wraps a call to Extract and panics if the error is non-nil.
// Warnings are discarded.
//
// Example:
//
//	pages := gellyscape.MustExtract(gellyscape.Open("map.pdf").Extract())
func MustExtract[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// FormatWarnings joins warnings into a multi-line string.
func FormatWarnings(warnings []Warning) string {
	return diag.Format(warnings)
}
