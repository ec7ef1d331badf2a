package gellyscape

import (
	"github.com/dirtybirdnj/gellyscape/diag"
	"github.com/dirtybirdnj/gellyscape/font"
	"github.com/dirtybirdnj/gellyscape/interpreter"
	"github.com/dirtybirdnj/gellyscape/svgpath"
)

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	// Page selection (1-indexed)
	pages []int

	// Resources for FromContent; PDF files bring their own.
	fonts    font.Lookup
	xobjects interpreter.XObjectLookup

	transform  []svgpath.Option
	useCropBox bool

	sink           diag.Sink
	operationLimit int
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.pages != nil {
		newOpts.pages = append([]int(nil), o.pages...)
	}
	if o.transform != nil {
		newOpts.transform = append([]svgpath.Option(nil), o.transform...)
	}
	return newOpts
}
