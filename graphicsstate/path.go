package graphicsstate

import "github.com/dirtybirdnj/gellyscape/model"

// SegmentKind distinguishes straight and curved segments.
type SegmentKind int

const (
	// SegmentLine is a straight line to To
	SegmentLine SegmentKind = iota
	// SegmentCubic is a cubic Bézier curve through CP1 and CP2 to To
	SegmentCubic
)

func (k SegmentKind) String() string {
	if k == SegmentCubic {
		return "cubic"
	}
	return "line"
}

// Segment is one drawing step of a subpath. Points are in the user space
// that was current when the segment was recorded.
type Segment struct {
	Kind     SegmentKind
	CP1, CP2 model.Point // only for SegmentCubic
	To       model.Point
}

// Subpath is a contiguous run of segments starting at Start.
type Subpath struct {
	Start    model.Point
	Segments []Segment
	Closed   bool
}

// Points returns every point of the subpath in drawing order, control
// points included.
func (s Subpath) Points() []model.Point {
	pts := []model.Point{s.Start}
	for _, seg := range s.Segments {
		if seg.Kind == SegmentCubic {
			pts = append(pts, seg.CP1, seg.CP2)
		}
		pts = append(pts, seg.To)
	}
	return pts
}

// PaintOp is what a painting operator does with a path.
type PaintOp int

const (
	PaintNone PaintOp = iota
	PaintStroke
	PaintFill
	PaintFillStroke
)

func (op PaintOp) String() string {
	switch op {
	case PaintStroke:
		return "stroke"
	case PaintFill:
		return "fill"
	case PaintFillStroke:
		return "fill-stroke"
	default:
		return "null"
	}
}

// Strokes reports whether the operation strokes the path.
func (op PaintOp) Strokes() bool {
	return op == PaintStroke || op == PaintFillStroke
}

// Fills reports whether the operation fills the path.
func (op PaintOp) Fills() bool {
	return op == PaintFill || op == PaintFillStroke
}

// FillRule selects how the interior of a filled path is determined.
type FillRule int

const (
	FillNonZero FillRule = iota
	FillEvenOdd
)

func (r FillRule) String() string {
	if r == FillEvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// Style is the paint applied to a path, captured when it is painted.
type Style struct {
	Fill            Color // None when the path is not filled
	FillRule        FillRule
	Stroke          Color // None when the path is not stroked
	StrokeWidth     float64
	StrokeLinecap   LineCap
	StrokeLinejoin  LineJoin
	StrokeDasharray string
}

// NewStyle captures the parts of gs that op uses.
func NewStyle(gs GraphicsState, op PaintOp, rule FillRule) Style {
	st := Style{
		Fill:            None,
		FillRule:        rule,
		Stroke:          None,
		StrokeWidth:     gs.LineWidth,
		StrokeLinecap:   gs.LineCap,
		StrokeLinejoin:  gs.LineJoin,
		StrokeDasharray: gs.DashArray,
	}
	if op.Fills() {
		st.Fill = gs.FillColor
	}
	if op.Strokes() {
		st.Stroke = gs.StrokeColor
	}
	return st
}

// Path is a painted path.
type Path struct {
	Subpaths     []Subpath
	CurrentPoint model.Point
	Operation    PaintOp
	Style        Style

	// Transform is the CTM at the time the path was painted.
	Transform model.Matrix
}

// Points returns every point of every subpath in drawing order.
func (p Path) Points() []model.Point {
	var pts []model.Point
	for _, sp := range p.Subpaths {
		pts = append(pts, sp.Points()...)
	}
	return pts
}

// Builder assembles paths from construction and painting operators.
//
// A path opens on the first m or re and stays open until a painting
// operator records it or n discards it. Methods that extend a subpath
// report false when there is none to extend; the call then has no effect.
type Builder struct {
	current *Path
	paths   []Path
}

// Open reports whether a path is under construction.
func (b *Builder) Open() bool {
	return b.current != nil
}

func (b *Builder) path() *Path {
	if b.current == nil {
		b.current = &Path{}
	}
	return b.current
}

func (b *Builder) last() *Subpath {
	if b.current == nil || len(b.current.Subpaths) == 0 {
		return nil
	}
	return &b.current.Subpaths[len(b.current.Subpaths)-1]
}

func (b *Builder) appendSegment(seg Segment) bool {
	sp := b.last()
	if sp == nil {
		return false
	}
	sp.Segments = append(sp.Segments, seg)
	b.current.CurrentPoint = seg.To
	return true
}

// MoveTo begins a new subpath (m operator).
func (b *Builder) MoveTo(x, y float64) {
	p := b.path()
	pt := model.Point{X: x, Y: y}
	p.Subpaths = append(p.Subpaths, Subpath{Start: pt})
	p.CurrentPoint = pt
}

// LineTo appends a straight segment (l operator).
func (b *Builder) LineTo(x, y float64) bool {
	return b.appendSegment(Segment{Kind: SegmentLine, To: model.Point{X: x, Y: y}})
}

// CurveTo appends a cubic Bézier segment (c operator).
func (b *Builder) CurveTo(x1, y1, x2, y2, x3, y3 float64) bool {
	return b.appendSegment(Segment{
		Kind: SegmentCubic,
		CP1:  model.Point{X: x1, Y: y1},
		CP2:  model.Point{X: x2, Y: y2},
		To:   model.Point{X: x3, Y: y3},
	})
}

// CurveToV appends a cubic whose first control point is the current point
// (v operator).
func (b *Builder) CurveToV(x2, y2, x3, y3 float64) bool {
	if b.last() == nil {
		return false
	}
	cp := b.current.CurrentPoint
	return b.CurveTo(cp.X, cp.Y, x2, y2, x3, y3)
}

// CurveToY appends a cubic whose second control point is the end point
// (y operator).
func (b *Builder) CurveToY(x1, y1, x3, y3 float64) bool {
	return b.CurveTo(x1, y1, x3, y3, x3, y3)
}

// ClosePath marks the current subpath closed (h operator). The current
// point returns to the subpath start.
func (b *Builder) ClosePath() bool {
	sp := b.last()
	if sp == nil {
		return false
	}
	sp.Closed = true
	b.current.CurrentPoint = sp.Start
	return true
}

// Rectangle appends a closed four-corner subpath (re operator).
func (b *Builder) Rectangle(x, y, width, height float64) {
	p := b.path()
	p.Subpaths = append(p.Subpaths, Subpath{
		Start: model.Point{X: x, Y: y},
		Segments: []Segment{
			{Kind: SegmentLine, To: model.Point{X: x + width, Y: y}},
			{Kind: SegmentLine, To: model.Point{X: x + width, Y: y + height}},
			{Kind: SegmentLine, To: model.Point{X: x, Y: y + height}},
		},
		Closed: true,
	})
	p.CurrentPoint = model.Point{X: x, Y: y}
}

// Paint records the open path with the style taken from gs. With closeFirst
// set, the last subpath is closed first (s, b, b*). Paint reports false if
// no path is open.
func (b *Builder) Paint(op PaintOp, evenOdd, closeFirst bool, gs GraphicsState) bool {
	if b.current == nil {
		return false
	}
	if closeFirst {
		b.ClosePath()
	}
	rule := FillNonZero
	if evenOdd {
		rule = FillEvenOdd
	}
	p := b.current
	p.Operation = op
	p.Style = NewStyle(gs, op, rule)
	p.Transform = gs.CTM
	b.paths = append(b.paths, *p)
	b.current = nil
	return true
}

// EndPath discards the open path without recording it (n operator).
func (b *Builder) EndPath() bool {
	open := b.current != nil
	b.current = nil
	return open
}

// Paths returns the recorded paths in paint order.
func (b *Builder) Paths() []Path {
	return b.paths
}

// Reset drops both the open path and all recorded paths.
func (b *Builder) Reset() {
	b.current = nil
	b.paths = nil
}
