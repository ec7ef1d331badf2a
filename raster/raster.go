package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/dirtybirdnj/gellyscape/graphicsstate"
	"github.com/dirtybirdnj/gellyscape/model"
	"github.com/dirtybirdnj/gellyscape/svgpath"
	"golang.org/x/image/vector"
)

// curveSteps is the number of lines a cubic is flattened into for
// stroking.
const curveSteps = 16

// minStrokeWidth keeps hairlines visible.
const minStrokeWidth = 1.0

// Render paints elems in order on a white canvas of the given size.
// Element coordinates are taken as pixels.
func Render(elems []svgpath.PathElement, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if width <= 0 || height <= 0 {
		return img
	}

	r := vector.NewRasterizer(width, height)
	for _, el := range elems {
		if el.Operation.Fills() {
			if c, ok := toRGBA(el.Fill); ok {
				r.Reset(width, height)
				fillShape(r, el.Shape)
				r.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
			}
		}
		if el.Operation.Strokes() {
			if c, ok := toRGBA(el.Stroke); ok {
				r.Reset(width, height)
				strokeShape(r, el.Shape, math.Max(el.StrokeWidth, minStrokeWidth))
				r.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
			}
		}
	}
	return img
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func toRGBA(c graphicsstate.Color) (color.RGBA, bool) {
	r, g, b, ok := c.Components()
	if !ok {
		return color.RGBA{}, false
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, true
}

// fillShape adds every contour as a closed area. Fills use the nonzero
// rule of the rasterizer whatever the element's fill rule.
func fillShape(r *vector.Rasterizer, s svgpath.Shape) {
	for _, c := range s.Contours {
		r.MoveTo(float32(c.Start.X), float32(c.Start.Y))
		for _, seg := range c.Segments {
			if seg.Kind == graphicsstate.SegmentCubic {
				r.CubeTo(float32(seg.CP1.X), float32(seg.CP1.Y),
					float32(seg.CP2.X), float32(seg.CP2.Y),
					float32(seg.To.X), float32(seg.To.Y))
				continue
			}
			r.LineTo(float32(seg.To.X), float32(seg.To.Y))
		}
		r.ClosePath()
	}
}

// strokeShape expands every flattened segment into a quad of the given
// width. The quads all wind the same way so overlaps do not cancel.
func strokeShape(r *vector.Rasterizer, s svgpath.Shape, width float64) {
	hw := width / 2
	for _, c := range s.Contours {
		pts := flatten(c)
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			dx, dy := b.X-a.X, b.Y-a.Y
			length := math.Hypot(dx, dy)
			if length == 0 {
				continue
			}
			nx, ny := -dy/length*hw, dx/length*hw
			r.MoveTo(float32(a.X+nx), float32(a.Y+ny))
			r.LineTo(float32(b.X+nx), float32(b.Y+ny))
			r.LineTo(float32(b.X-nx), float32(b.Y-ny))
			r.LineTo(float32(a.X-nx), float32(a.Y-ny))
			r.ClosePath()
		}
	}
}

// flatten turns a contour into a polyline, repeating the start point at
// the end of closed contours.
func flatten(c svgpath.Contour) []model.Point {
	pts := []model.Point{c.Start}
	cur := c.Start
	for _, seg := range c.Segments {
		if seg.Kind == graphicsstate.SegmentCubic {
			for i := 1; i <= curveSteps; i++ {
				pts = append(pts, cubicAt(cur, seg.CP1, seg.CP2, seg.To, float64(i)/curveSteps))
			}
		} else {
			pts = append(pts, seg.To)
		}
		cur = seg.To
	}
	if c.Closed && cur != c.Start {
		pts = append(pts, c.Start)
	}
	return pts
}

func cubicAt(p0, p1, p2, p3 model.Point, t float64) model.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	cc := 3 * mt * t * t
	d := t * t * t
	return model.Point{
		X: a*p0.X + b*p1.X + cc*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + cc*p2.Y + d*p3.Y,
	}
}
