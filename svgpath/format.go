package svgpath

import (
	"strconv"
	"strings"

	"github.com/dirtybirdnj/gellyscape/graphicsstate"
)

// formatNumber formats v with at most prec decimals, without trailing
// zeros and without a negative zero.
func formatNumber(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

func (t *Transformer) num(v float64) string {
	return formatNumber(v, t.cfg.Precision)
}

// D renders shape as path data: M, L, C and Z commands separated by
// spaces.
func (t *Transformer) D(shape Shape) string {
	var sb strings.Builder
	write := func(cmd string, vals ...float64) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(cmd)
		for _, v := range vals {
			sb.WriteByte(' ')
			sb.WriteString(t.num(v))
		}
	}
	for _, c := range shape.Contours {
		write("M", c.Start.X, c.Start.Y)
		for _, seg := range c.Segments {
			switch seg.Kind {
			case graphicsstate.SegmentCubic:
				write("C", seg.CP1.X, seg.CP1.Y, seg.CP2.X, seg.CP2.Y, seg.To.X, seg.To.Y)
			default:
				write("L", seg.To.X, seg.To.Y)
			}
		}
		if c.Closed {
			write("Z")
		}
	}
	return sb.String()
}

// Style renders the style attribute for a painted path.
func (t *Transformer) Style(op graphicsstate.PaintOp, st graphicsstate.Style) string {
	var parts []string
	if op.Fills() {
		parts = append(parts, "fill:"+string(st.Fill))
		if st.FillRule == graphicsstate.FillEvenOdd {
			parts = append(parts, "fill-rule:evenodd")
		}
	} else {
		parts = append(parts, "fill:none")
	}
	if !op.Strokes() {
		return strings.Join(append(parts, "stroke:none"), ";")
	}
	parts = append(parts,
		"stroke:"+string(st.Stroke),
		"stroke-width:"+t.num(st.StrokeWidth*t.StrokeScale()),
	)
	if st.StrokeLinecap != graphicsstate.CapButt {
		parts = append(parts, "stroke-linecap:"+st.StrokeLinecap.String())
	}
	if st.StrokeLinejoin != graphicsstate.JoinMiter {
		parts = append(parts, "stroke-linejoin:"+st.StrokeLinejoin.String())
	}
	if st.StrokeDasharray != "" {
		parts = append(parts, "stroke-dasharray:"+st.StrokeDasharray)
	}
	return strings.Join(parts, ";")
}
