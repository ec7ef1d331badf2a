package graphicsstate

import (
	"strconv"
	"strings"

	"github.com/dirtybirdnj/gellyscape/model"
)

// LineCap is the shape at the open ends of stroked lines.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return "butt"
	}
}

// ParseLineCap converts a J operand. Values outside 0..2 report false.
func ParseLineCap(v float64) (LineCap, bool) {
	switch v {
	case 0:
		return CapButt, true
	case 1:
		return CapRound, true
	case 2:
		return CapSquare, true
	}
	return CapButt, false
}

// LineJoin is the shape at corners of stroked paths.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

// ParseLineJoin converts a j operand. Values outside 0..2 report false.
func ParseLineJoin(v float64) (LineJoin, bool) {
	switch v {
	case 0:
		return JoinMiter, true
	case 1:
		return JoinRound, true
	case 2:
		return JoinBevel, true
	}
	return JoinMiter, false
}

// GraphicsState is the device-independent drawing state of a content
// stream. It is a plain value: assigning it copies it, so saved states never
// alias the live one.
type GraphicsState struct {
	FillColor   Color
	StrokeColor Color

	LineWidth  float64
	LineCap    LineCap
	LineJoin   LineJoin
	MiterLimit float64

	// DashArray is the comma-joined dash pattern, empty for solid lines.
	DashArray string
	DashPhase float64

	// Current Transformation Matrix
	CTM model.Matrix
}

// Default returns the initial graphics state of a page.
func Default() GraphicsState {
	return GraphicsState{
		FillColor:   Black,
		StrokeColor: Black,
		LineWidth:   1.0,
		LineCap:     CapButt,
		LineJoin:    JoinMiter,
		MiterLimit:  10.0,
		CTM:         model.Identity(),
	}
}

// Concat right-multiplies the CTM by m (cm operator), so the CTM is the
// product of the cm operands in operator order.
func (gs *GraphicsState) Concat(m model.Matrix) {
	gs.CTM = gs.CTM.Multiply(m)
}

// SetDash sets the dash pattern (d operator).
func (gs *GraphicsState) SetDash(pattern []float64, phase float64) {
	gs.DashArray = FormatDash(pattern)
	gs.DashPhase = phase
}

// FormatDash joins dash lengths with commas using the shortest exact
// decimal form of each value.
func FormatDash(pattern []float64) string {
	parts := make([]string, len(pattern))
	for i, v := range pattern {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Stack holds graphics states saved by q.
type Stack struct {
	saved []GraphicsState
}

// Save pushes a copy of gs (q operator).
func (s *Stack) Save(gs GraphicsState) {
	s.saved = append(s.saved, gs)
}

// Restore pops the most recently saved state into gs (Q operator). With
// nothing saved, gs is left unchanged and Restore reports false.
func (s *Stack) Restore(gs *GraphicsState) bool {
	if len(s.saved) == 0 {
		return false
	}
	*gs = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return true
}

// Depth returns the number of saved states.
func (s *Stack) Depth() int {
	return len(s.saved)
}
