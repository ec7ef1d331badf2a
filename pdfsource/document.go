package pdfsource

import (
	"fmt"
	"io"
	"os"

	"github.com/dirtybirdnj/gellyscape/diag"
	"github.com/dirtybirdnj/gellyscape/model"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Document is an open PDF file.
type Document struct {
	ctx  *pdfmodel.Context
	sink diag.Sink
}

// Option configures a Document.
type Option func(*Document)

// WithSink reports resources that could not be resolved.
func WithSink(sink diag.Sink) Option {
	return func(d *Document) {
		d.sink = sink
	}
}

// Open reads the PDF at path.
func Open(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return Read(f, opts...)
}

// Read parses a PDF from rs.
func Read(rs io.ReadSeeker, opts ...Option) (*Document, error) {
	if err := sniff(rs); err != nil {
		return nil, err
	}
	ctx, err := api.ReadContext(rs, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}
	d := &Document{ctx: ctx}
	for _, opt := range opts {
		opt(d)
	}
	d.sink = diag.OrDiscard(d.sink)
	return d, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Page loads page n (1-based). Content streams are decoded and joined;
// fonts and XObjects are resolved lazily.
func (d *Document) Page(n int) (*Page, error) {
	if n < 1 || n > d.ctx.PageCount {
		return nil, fmt.Errorf("page %d out of range [1, %d]", n, d.ctx.PageCount)
	}
	pageDict, _, attrs, err := d.ctx.PageDict(n, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get page %d: %w", n, err)
	}
	if pageDict == nil {
		return nil, fmt.Errorf("page %d: missing page dictionary", n)
	}

	p := &Page{Number: n, MediaBox: model.NewBBox(0, 0, 612, 792)}
	var resDict types.Dict
	if attrs != nil {
		if attrs.MediaBox != nil {
			p.MediaBox = bbox(attrs.MediaBox)
		}
		if attrs.CropBox != nil {
			box := bbox(attrs.CropBox)
			p.CropBox = &box
		}
		p.Rotate = normalizeRotation(attrs.Rotate)
		resDict = attrs.Resources
	}

	if _, ok := pageDict.Find("Contents"); ok {
		r, err := pdfcpu.ExtractPageContent(d.ctx, n)
		if err != nil {
			return nil, fmt.Errorf("failed to decode content of page %d: %w", n, err)
		}
		if r != nil {
			if p.Content, err = io.ReadAll(r); err != nil {
				return nil, fmt.Errorf("failed to read content of page %d: %w", n, err)
			}
		}
	}

	scope := fmt.Sprintf("page %d", n)
	if ref, ok := pageDict["Resources"].(types.IndirectRef); ok {
		scope = refScope(ref)
	}
	res := &resources{doc: d, dict: resDict, scope: scope, page: n}
	p.Fonts = res.fonts()
	p.XObjects = res.xobjects()
	return p, nil
}

func (d *Document) warn(page int, format string, args ...any) {
	d.sink.Warn(diag.Warning{
		Stage:   diag.StageSource,
		Offset:  -1,
		Page:    page,
		Message: fmt.Sprintf(format, args...),
	})
}

func bbox(r *types.Rectangle) model.BBox {
	return model.NewBBoxFromPoints(
		model.Point{X: r.LL.X, Y: r.LL.Y},
		model.Point{X: r.UR.X, Y: r.UR.Y},
	)
}

func normalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg - deg%90
}

func refScope(ref types.IndirectRef) string {
	return fmt.Sprintf("obj %d %d", ref.ObjectNumber.Value(), ref.GenerationNumber.Value())
}
