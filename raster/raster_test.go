package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/dirtybirdnj/gellyscape/graphicsstate"
	"github.com/dirtybirdnj/gellyscape/model"
	"github.com/dirtybirdnj/gellyscape/svgpath"
)

func rect(x0, y0, x1, y1 float64) svgpath.Shape {
	return svgpath.Shape{Contours: []svgpath.Contour{{
		Start: model.Point{X: x0, Y: y0},
		Segments: []graphicsstate.Segment{
			{Kind: graphicsstate.SegmentLine, To: model.Point{X: x1, Y: y0}},
			{Kind: graphicsstate.SegmentLine, To: model.Point{X: x1, Y: y1}},
			{Kind: graphicsstate.SegmentLine, To: model.Point{X: x0, Y: y1}},
		},
		Closed: true,
	}}}
}

func TestRender_Fill(t *testing.T) {
	img := Render([]svgpath.PathElement{{
		Shape:     rect(2, 2, 8, 8),
		Fill:      "#ff0000",
		Stroke:    graphicsstate.None,
		Operation: graphicsstate.PaintFill,
	}}, 10, 10)

	if got := img.RGBAAt(5, 5); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("inside = %v, want red", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("outside = %v, want white", got)
	}
}

func TestRender_Stroke(t *testing.T) {
	line := svgpath.Shape{Contours: []svgpath.Contour{{
		Start:    model.Point{X: 0, Y: 5},
		Segments: []graphicsstate.Segment{{Kind: graphicsstate.SegmentLine, To: model.Point{X: 20, Y: 5}}},
	}}}
	img := Render([]svgpath.PathElement{{
		Shape:       line,
		Fill:        graphicsstate.None,
		Stroke:      "#0000ff",
		StrokeWidth: 4,
		Operation:   graphicsstate.PaintStroke,
	}}, 20, 10)

	if got := img.RGBAAt(10, 5); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("on line = %v, want blue", got)
	}
	if got := img.RGBAAt(10, 0); got.B != 255 || got.R != 255 {
		t.Errorf("off line = %v, want white", got)
	}
}

func TestRender_PaintOrder(t *testing.T) {
	img := Render([]svgpath.PathElement{
		{Shape: rect(0, 0, 10, 10), Fill: "#ff0000", Operation: graphicsstate.PaintFill},
		{Shape: rect(0, 0, 5, 10), Fill: "#00ff00", Operation: graphicsstate.PaintFill},
	}, 10, 10)
	if got := img.RGBAAt(2, 5); got.G != 255 || got.R != 0 {
		t.Errorf("left = %v, want green", got)
	}
	if got := img.RGBAAt(8, 5); got.R != 255 || got.G != 0 {
		t.Errorf("right = %v, want red", got)
	}
}

func TestFlatten(t *testing.T) {
	c := svgpath.Contour{
		Start: model.Point{X: 0, Y: 0},
		Segments: []graphicsstate.Segment{
			{Kind: graphicsstate.SegmentCubic, CP1: model.Point{X: 0, Y: 10}, CP2: model.Point{X: 10, Y: 10}, To: model.Point{X: 10, Y: 0}},
		},
		Closed: true,
	}
	pts := flatten(c)
	if len(pts) != curveSteps+2 {
		t.Fatalf("got %d points, want %d", len(pts), curveSteps+2)
	}
	if pts[curveSteps] != (model.Point{X: 10, Y: 0}) {
		t.Errorf("curve end = %v", pts[curveSteps])
	}
	if mid := pts[curveSteps/2]; mid.X != 5 || mid.Y != 7.5 {
		t.Errorf("curve midpoint = %v, want (5, 7.5)", mid)
	}
	if pts[len(pts)-1] != c.Start {
		t.Errorf("closed contour does not return to start")
	}
}

func TestEncodePNG(t *testing.T) {
	img := Render(nil, 3, 2)
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
}
