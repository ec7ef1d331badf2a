package model

// Point is a position in some 2D coordinate space.
type Point struct {
	X, Y float64
}

// BBox is an axis-aligned box anchored at its minimum corner. In PDF space
// Y is the bottom edge; in output space with a flipped axis it is the top.
type BBox struct {
	X, Y          float64
	Width, Height float64
}

func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromPoints spans two opposite corners given in any order.
func NewBBoxFromPoints(p1, p2 Point) BBox {
	x0, x1 := min(p1.X, p2.X), max(p1.X, p2.X)
	y0, y1 := min(p1.Y, p2.Y), max(p1.Y, p2.Y)
	return BBox{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func (b BBox) Left() float64   { return b.X }
func (b BBox) Right() float64  { return b.X + b.Width }
func (b BBox) Bottom() float64 { return b.Y }
func (b BBox) Top() float64    { return b.Y + b.Height }

// Union covers both b and o.
func (b BBox) Union(o BBox) BBox {
	return NewBBoxFromPoints(
		Point{min(b.Left(), o.Left()), min(b.Bottom(), o.Bottom())},
		Point{max(b.Right(), o.Right()), max(b.Top(), o.Top())},
	)
}

// Extend grows b until it covers p.
func (b BBox) Extend(p Point) BBox {
	return b.Union(BBox{X: p.X, Y: p.Y})
}

// IsValid reports whether b has a positive area.
func (b BBox) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}
