package svgpath

import (
	"math"

	"github.com/dirtybirdnj/gellyscape/graphicsstate"
	"github.com/dirtybirdnj/gellyscape/model"
	"github.com/dirtybirdnj/gellyscape/text"
)

// PathElement is one painted path ready for output.
type PathElement struct {
	D     string
	Style string
	Shape Shape

	Fill        graphicsstate.Color
	Stroke      graphicsstate.Color
	StrokeWidth float64 // in output units
	FillRule    graphicsstate.FillRule
	Operation   graphicsstate.PaintOp
}

// TextElement is one text run in output coordinates.
type TextElement struct {
	X, Y      float64
	Text      string
	Font      string
	FontSize  float64
	Fill      graphicsstate.Color
	Direction text.Direction
	Precision int // decimal places used by Node
}

// Emit converts paths in paint order.
func (t *Transformer) Emit(paths []graphicsstate.Path) []PathElement {
	out := make([]PathElement, 0, len(paths))
	for _, p := range paths {
		shape := t.Path(p)
		el := PathElement{
			D:         t.D(shape),
			Style:     t.Style(p.Operation, p.Style),
			Shape:     shape,
			Fill:      graphicsstate.None,
			Stroke:    graphicsstate.None,
			FillRule:  p.Style.FillRule,
			Operation: p.Operation,
		}
		if p.Operation.Fills() {
			el.Fill = p.Style.Fill
		}
		if p.Operation.Strokes() {
			el.Stroke = p.Style.Stroke
			el.StrokeWidth = p.Style.StrokeWidth * t.StrokeScale()
		}
		out = append(out, el)
	}
	return out
}

// EmitText converts text runs. The anchor is the run position mapped like
// a path point; the size is the font size scaled by the text matrix, the
// CTM when transforms are enabled, and the vertical output scale.
func (t *Transformer) EmitText(runs []text.Run) []TextElement {
	out := make([]TextElement, 0, len(runs))
	for _, r := range runs {
		p := t.Point(model.Point{X: r.X, Y: r.Y}, r.CTM)
		size := r.FontSize * r.TextMatrix.VerticalScale()
		if t.cfg.ApplyTransform {
			size *= r.CTM.VerticalScale()
		}
		size = math.Abs(size * t.scaleY)
		out = append(out, TextElement{
			X:         p.X,
			Y:         p.Y,
			Text:      r.Text,
			Font:      r.Font,
			FontSize:  size,
			Fill:      r.FillColor,
			Direction: r.Direction,
			Precision: t.cfg.Precision,
		})
	}
	return out
}

// Bounds returns the smallest box holding every mapped path point and text
// anchor. It reports false when there is nothing to bound.
func (t *Transformer) Bounds(paths []graphicsstate.Path, runs []text.Run) (model.BBox, bool) {
	var (
		box   model.BBox
		found bool
	)
	add := func(p model.Point) {
		if !found {
			box = model.BBox{X: p.X, Y: p.Y}
			found = true
			return
		}
		box = box.Extend(p)
	}
	for _, p := range paths {
		for _, pt := range t.Path(p).Points() {
			add(pt)
		}
	}
	for _, el := range t.EmitText(runs) {
		add(model.Point{X: el.X, Y: el.Y})
	}
	return box, found
}
