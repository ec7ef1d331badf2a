package main

import (
	"github.com/dirtybirdnj/gellyscape"
	"github.com/dirtybirdnj/gellyscape/model"
)

type pageJSON struct {
	Number int        `json:"number"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Bounds *bboxJSON  `json:"bounds,omitempty"`
	Paths  []pathJSON `json:"paths"`
	Texts  []textJSON `json:"texts"`
}

type bboxJSON struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type pathJSON struct {
	D           string  `json:"d"`
	Style       string  `json:"style"`
	Operation   string  `json:"operation"`
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	FillRule    string  `json:"fillRule,omitempty"`
}

type textJSON struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Text      string  `json:"text"`
	Font      string  `json:"font,omitempty"`
	FontSize  float64 `json:"fontSize"`
	Fill      string  `json:"fill,omitempty"`
	Direction string  `json:"direction"`
}

func toJSON(pages []gellyscape.Page) []pageJSON {
	out := make([]pageJSON, 0, len(pages))
	for _, p := range pages {
		pj := pageJSON{
			Number: p.Number,
			Width:  p.Width,
			Height: p.Height,
			Paths:  make([]pathJSON, 0, len(p.Elements)),
			Texts:  make([]textJSON, 0, len(p.TextElements)),
		}
		if p.HasBounds {
			pj.Bounds = newBBoxJSON(p.Bounds)
		}
		for _, el := range p.Elements {
			path := pathJSON{
				D:         el.D,
				Style:     el.Style,
				Operation: el.Operation.String(),
			}
			if el.Operation.Fills() {
				path.Fill = string(el.Fill)
				path.FillRule = el.FillRule.String()
			}
			if el.Operation.Strokes() {
				path.Stroke = string(el.Stroke)
				path.StrokeWidth = el.StrokeWidth
			}
			pj.Paths = append(pj.Paths, path)
		}
		for _, el := range p.TextElements {
			pj.Texts = append(pj.Texts, textJSON{
				X:         el.X,
				Y:         el.Y,
				Text:      el.Text,
				Font:      el.Font,
				FontSize:  el.FontSize,
				Fill:      string(el.Fill),
				Direction: el.Direction.String(),
			})
		}
		out = append(out, pj)
	}
	return out
}

func newBBoxJSON(b model.BBox) *bboxJSON {
	return &bboxJSON{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}
