package pdfsource

import (
	"github.com/dirtybirdnj/gellyscape/font"
	"github.com/dirtybirdnj/gellyscape/interpreter"
	"github.com/dirtybirdnj/gellyscape/model"
)

// Page is one page ready for interpretation.
type Page struct {
	Number   int
	MediaBox model.BBox
	CropBox  *model.BBox // nil when the page has none
	Rotate   int         // clockwise display rotation: 0, 90, 180 or 270

	// Content is the decoded page content, streams joined by newlines.
	Content []byte

	Fonts    font.Lookup
	XObjects interpreter.XObjectLookup
}

// Upright returns the matrix that moves the media box origin to (0, 0)
// and applies the page rotation, together with the size of the page as
// displayed.
func (p *Page) Upright() (m model.Matrix, width, height float64) {
	w, h := p.MediaBox.Width, p.MediaBox.Height
	m = model.Translate(-p.MediaBox.X, -p.MediaBox.Y)
	switch p.Rotate {
	case 90:
		return m.Multiply(model.Matrix{0, -1, 1, 0, 0, w}), h, w
	case 180:
		return m.Multiply(model.Matrix{-1, 0, 0, -1, w, h}), w, h
	case 270:
		return m.Multiply(model.Matrix{0, 1, -1, 0, h, 0}), h, w
	}
	return m, w, h
}

// VisibleBox returns the crop box mapped into upright page space, or
// false when the page has no crop box.
func (p *Page) VisibleBox() (model.BBox, bool) {
	if p.CropBox == nil {
		return model.BBox{}, false
	}
	m, _, _ := p.Upright()
	c := *p.CropBox
	return model.NewBBoxFromPoints(
		m.Transform(model.Point{X: c.Left(), Y: c.Bottom()}),
		m.Transform(model.Point{X: c.Right(), Y: c.Top()}),
	), true
}
