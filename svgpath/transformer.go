package svgpath

import (
	"math"

	"github.com/dirtybirdnj/gellyscape/graphicsstate"
	"github.com/dirtybirdnj/gellyscape/model"
)

// Transformer maps PDF user-space geometry to output coordinates. It is
// immutable and safe for concurrent use.
type Transformer struct {
	cfg             Config
	offsetX         float64
	offsetY         float64
	effectiveHeight float64
	scaleX          float64
	scaleY          float64
}

// NewTransformer builds a transformer from DefaultConfig and opts.
func NewTransformer(opts ...Option) (*Transformer, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	t := &Transformer{cfg: cfg}
	width, height := cfg.PDFWidth, cfg.PDFHeight
	if cfg.CropBox != nil {
		box := *cfg.CropBox
		t.cfg.CropBox = &box
		t.offsetX, t.offsetY = box.X, box.Y
		width, height = box.Width, box.Height
	}
	t.effectiveHeight = height
	t.scaleX = cfg.SVGWidth / width
	t.scaleY = cfg.SVGHeight / height
	return t, nil
}

// Config returns the effective configuration.
func (t *Transformer) Config() Config {
	return t.cfg
}

func (t *Transformer) ScaleX() float64 { return t.scaleX }
func (t *Transformer) ScaleY() float64 { return t.scaleY }

// StrokeScale is the factor applied to stroke widths.
func (t *Transformer) StrokeScale() float64 {
	return math.Min(t.scaleX, t.scaleY)
}

// Point maps p: through ctm when transforms are enabled, then by the crop
// offset, the Y flip and the output scale, in that order.
func (t *Transformer) Point(p model.Point, ctm model.Matrix) model.Point {
	if t.cfg.ApplyTransform {
		p = ctm.Transform(p)
	}
	p.X -= t.offsetX
	p.Y -= t.offsetY
	if t.cfg.FlipY {
		p.Y = t.effectiveHeight - p.Y
	}
	p.X *= t.scaleX
	p.Y *= t.scaleY
	return p
}

// Contour is a subpath in output coordinates.
type Contour struct {
	Start    model.Point
	Segments []graphicsstate.Segment
	Closed   bool
}

// Shape is the output geometry of one path.
type Shape struct {
	Contours []Contour
}

// Points returns every point of the shape, control points included.
func (s Shape) Points() []model.Point {
	var pts []model.Point
	for _, c := range s.Contours {
		pts = append(pts, c.Start)
		for _, seg := range c.Segments {
			if seg.Kind == graphicsstate.SegmentCubic {
				pts = append(pts, seg.CP1, seg.CP2)
			}
			pts = append(pts, seg.To)
		}
	}
	return pts
}

// Path maps every point of p through its painting-time transform.
// Curves keep their kind: mapping control points is exact under affine
// maps.
func (t *Transformer) Path(p graphicsstate.Path) Shape {
	shape := Shape{Contours: make([]Contour, 0, len(p.Subpaths))}
	for _, sp := range p.Subpaths {
		c := Contour{
			Start:    t.Point(sp.Start, p.Transform),
			Segments: make([]graphicsstate.Segment, len(sp.Segments)),
			Closed:   sp.Closed,
		}
		for i, seg := range sp.Segments {
			out := graphicsstate.Segment{Kind: seg.Kind, To: t.Point(seg.To, p.Transform)}
			if seg.Kind == graphicsstate.SegmentCubic {
				out.CP1 = t.Point(seg.CP1, p.Transform)
				out.CP2 = t.Point(seg.CP2, p.Transform)
			}
			c.Segments[i] = out
		}
		shape.Contours = append(shape.Contours, c)
	}
	return shape
}
