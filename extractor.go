package gellyscape

import (
	"fmt"
	"sort"

	"github.com/dirtybirdnj/gellyscape/diag"
	"github.com/dirtybirdnj/gellyscape/font"
	"github.com/dirtybirdnj/gellyscape/graphicsstate"
	"github.com/dirtybirdnj/gellyscape/interpreter"
	"github.com/dirtybirdnj/gellyscape/model"
	"github.com/dirtybirdnj/gellyscape/pdfsource"
	"github.com/dirtybirdnj/gellyscape/svgpath"
	"github.com/dirtybirdnj/gellyscape/text"
)

// Page is the extracted content of one page.
type Page struct {
	Number int

	// Output size of the page.
	Width, Height float64

	// Interpreted geometry in PDF user space.
	Paths []graphicsstate.Path
	Texts []text.Run

	// The same content in output coordinates.
	Elements     []svgpath.PathElement
	TextElements []svgpath.TextElement

	// Bounds covers all output geometry; HasBounds is false for empty
	// pages.
	Bounds    model.BBox
	HasBounds bool

	Operations int
}

// Extractor provides a fluent interface for extracting page geometry.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename    string
	content     []byte
	fromContent bool

	// Configuration
	options ExtractOptions
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:    e.filename,
		content:     e.content,
		fromContent: e.fromContent,
		options:     e.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to extract from (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	pages, _, err := gellyscape.Open("atlas.pdf").Pages(1, 3).Extract()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to extract (1-indexed, inclusive).
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Fonts sets the font resources used to decode text of a FromContent
// stream. PDF files use their own page resources.
func (e *Extractor) Fonts(fonts font.Lookup) *Extractor {
	newExt := e.clone()
	newExt.options.fonts = fonts
	return newExt
}

// XObjects sets the Form XObjects available to a FromContent stream.
func (e *Extractor) XObjects(xobjects interpreter.XObjectLookup) *Extractor {
	newExt := e.clone()
	newExt.options.xobjects = xobjects
	return newExt
}

// Transform adds coordinate transformer options. They are applied after
// the page size and crop box taken from the file, so they can override
// both. Multiple calls are cumulative.
//
// Example:
//
//	pages, _, err := gellyscape.Open("map.pdf").
//	    Transform(svgpath.WithOutputSize(1024, 1024)).
//	    Extract()
func (e *Extractor) Transform(opts ...svgpath.Option) *Extractor {
	newExt := e.clone()
	newExt.options.transform = append(newExt.options.transform, opts...)
	return newExt
}

// UseCropBox limits output to each page's crop box when it has one.
func (e *Extractor) UseCropBox() *Extractor {
	newExt := e.clone()
	newExt.options.useCropBox = true
	return newExt
}

// Sink forwards every warning to sink as it happens, in addition to
// returning it from Extract.
func (e *Extractor) Sink(sink diag.Sink) *Extractor {
	newExt := e.clone()
	newExt.options.sink = sink
	return newExt
}

// OperationLimit stops interpreting a page after n operators. Zero means
// no limit.
func (e *Extractor) OperationLimit(n int) *Extractor {
	newExt := e.clone()
	newExt.options.operationLimit = n
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Extract interprets the configured pages.
//
// Returns the pages in ascending order, the warnings raised while
// interpreting them, and an error if the source could not be read or the
// configuration is invalid. A page that fails to load is reported as a
// warning and skipped.
//
// Example:
//
//	pages, warnings, err := gellyscape.Open("map.pdf").Extract()
func (e *Extractor) Extract() ([]Page, []Warning, error) {
	collector := &diag.Collector{}
	sink := diag.Multi(collector, e.options.sink)

	if e.fromContent {
		numbers, err := e.resolvePages(1)
		if err != nil {
			return nil, nil, err
		}
		var pages []Page
		if len(numbers) > 0 {
			page, err := e.extractContent(diag.ForPage(sink, 1))
			if err != nil {
				return nil, collector.Warnings(), err
			}
			pages = append(pages, page)
		}
		return pages, collector.Warnings(), nil
	}

	if e.filename == "" {
		return nil, nil, fmt.Errorf("no filename specified")
	}
	doc, err := pdfsource.Open(e.filename, pdfsource.WithSink(sink))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	numbers, err := e.resolvePages(doc.PageCount())
	if err != nil {
		return nil, nil, err
	}

	cache := font.NewCache()
	pages := make([]Page, 0, len(numbers))
	for _, n := range numbers {
		pageSink := diag.ForPage(sink, n)
		src, err := doc.Page(n)
		if err != nil {
			pageSink.Warn(diag.Warning{Stage: diag.StageSource, Offset: -1, Message: err.Error()})
			continue
		}
		page, err := e.extractPage(src, cache, pageSink)
		if err != nil {
			return nil, collector.Warnings(), fmt.Errorf("page %d: %w", n, err)
		}
		pages = append(pages, page)
	}
	return pages, collector.Warnings(), nil
}

func (e *Extractor) extractContent(sink diag.Sink) (Page, error) {
	tr, err := svgpath.NewTransformer(e.options.transform...)
	if err != nil {
		return Page{}, err
	}
	in := interpreter.New(
		interpreter.WithFonts(e.options.fonts),
		interpreter.WithXObjects(e.options.xobjects),
		interpreter.WithSink(sink),
		interpreter.WithOperationLimit(e.options.operationLimit),
	)
	return e.interpret(1, in, tr, e.content, model.Identity()), nil
}

func (e *Extractor) extractPage(src *pdfsource.Page, cache *font.Cache, sink diag.Sink) (Page, error) {
	upright, width, height := src.Upright()

	opts := []svgpath.Option{svgpath.WithPageSize(width, height)}
	if e.options.useCropBox {
		if box, ok := src.VisibleBox(); ok {
			opts = append(opts, svgpath.WithCropBox(box), svgpath.WithOutputSize(box.Width, box.Height))
		}
	}
	tr, err := svgpath.NewTransformer(append(opts, e.options.transform...)...)
	if err != nil {
		return Page{}, err
	}

	in := interpreter.New(
		interpreter.WithFonts(src.Fonts),
		interpreter.WithXObjects(src.XObjects),
		interpreter.WithCMapCache(cache),
		interpreter.WithSink(sink),
		interpreter.WithOperationLimit(e.options.operationLimit),
	)
	return e.interpret(src.Number, in, tr, src.Content, upright), nil
}

// interpret runs content and maps the result to output space. page is
// applied after every recorded CTM to bring the page upright.
func (e *Extractor) interpret(number int, in *interpreter.Interpreter, tr *svgpath.Transformer, content []byte, page model.Matrix) Page {
	// The limit has already been reported to the sink; keep what was
	// produced before it.
	res, _ := in.Run(content)
	if !page.IsIdentity() {
		applyPageMatrix(res, page)
	}

	cfg := tr.Config()
	out := Page{
		Number:       number,
		Width:        cfg.SVGWidth,
		Height:       cfg.SVGHeight,
		Paths:        res.Paths,
		Texts:        res.Texts,
		Elements:     tr.Emit(res.Paths),
		TextElements: tr.EmitText(res.Texts),
		Operations:   res.Operations,
	}
	out.Bounds, out.HasBounds = tr.Bounds(res.Paths, res.Texts)
	return out
}

func applyPageMatrix(res *interpreter.Result, page model.Matrix) {
	for i := range res.Paths {
		res.Paths[i].Transform = res.Paths[i].Transform.Multiply(page)
	}
	for i := range res.Texts {
		res.Texts[i].CTM = res.Texts[i].CTM.Multiply(page)
	}
}

// resolvePages validates the selected page numbers against pageCount and
// returns them sorted without duplicates. No selection means all pages.
func (e *Extractor) resolvePages(pageCount int) ([]int, error) {
	if len(e.options.pages) == 0 {
		numbers := make([]int, pageCount)
		for i := range numbers {
			numbers[i] = i + 1
		}
		return numbers, nil
	}

	seen := make(map[int]bool)
	var numbers []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p] {
			seen[p] = true
			numbers = append(numbers, p)
		}
	}
	sort.Ints(numbers)
	return numbers, nil
}
