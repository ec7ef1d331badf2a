package text

import (
	"github.com/dirtybirdnj/gellyscape/contentstream"
	"github.com/dirtybirdnj/gellyscape/font"
	"github.com/dirtybirdnj/gellyscape/graphicsstate"
	"github.com/dirtybirdnj/gellyscape/model"
)

// LineAdvance is the T* line step as a multiple of the font size.
const LineAdvance = 1.2

// State is the text state of a content stream.
type State struct {
	InTextObject   bool
	TextMatrix     model.Matrix
	TextLineMatrix model.Matrix

	Font     string // resource name with leading slash, e.g. "/F1"
	FontSize float64

	// Tracked but not used for positioning.
	Leading           float64
	CharSpacing       float64
	WordSpacing       float64
	HorizontalScaling float64 // percent
	Rise              float64
	RenderMode        int
}

// NewState returns the initial text state.
func NewState() State {
	return State{
		TextMatrix:        model.Identity(),
		TextLineMatrix:    model.Identity(),
		HorizontalScaling: 100,
	}
}

// Position returns the translation of the text matrix.
func (s State) Position() (x, y float64) {
	return s.TextMatrix[4], s.TextMatrix[5]
}

// Run is one shown string, positioned at the text matrix translation in
// effect when it was shown.
type Run struct {
	Text      string
	X, Y      float64
	Font      string
	FontSize  float64
	FillColor graphicsstate.Color
	Direction Direction

	CTM        model.Matrix
	TextMatrix model.Matrix
}

// Decoder converts a string operand in lexical form to text.
type Decoder interface {
	Decode(fontName, operand string) string
}

// Tracker applies text operators and collects runs.
//
// Positioning is deliberately simple: Td and TD translate the line matrix
// without a full matrix product, T* steps down by FontSize*LineAdvance
// regardless of TL, and every string of a TJ array is placed at the same
// position.
type Tracker struct {
	State State
	dec   Decoder
	runs  []Run
}

// NewTracker creates a tracker. A nil decoder decodes raw bytes as
// Latin-1.
func NewTracker(dec Decoder) *Tracker {
	if dec == nil {
		dec = font.NewDecoder(nil, nil, nil)
	}
	return &Tracker{State: NewState(), dec: dec}
}

// Runs returns the collected runs in show order.
func (t *Tracker) Runs() []Run {
	return t.runs
}

// Begin starts a text object (BT).
func (t *Tracker) Begin() {
	t.State.InTextObject = true
	t.State.TextMatrix = model.Identity()
	t.State.TextLineMatrix = model.Identity()
}

// End ends a text object (ET).
func (t *Tracker) End() {
	t.State.InTextObject = false
}

// SetFont sets the font resource name and size (Tf).
func (t *Tracker) SetFont(name string, size float64) {
	if name != "" && name[0] != '/' {
		name = "/" + name
	}
	t.State.Font = name
	t.State.FontSize = size
}

// SetMatrix replaces both text matrices (Tm).
func (t *Tracker) SetMatrix(m model.Matrix) {
	t.State.TextMatrix = m
	t.State.TextLineMatrix = m
}

// Move offsets the line matrix translation and starts a new line there
// (Td).
func (t *Tracker) Move(tx, ty float64) {
	t.State.TextLineMatrix[4] += tx
	t.State.TextLineMatrix[5] += ty
	t.State.TextMatrix = t.State.TextLineMatrix
}

// MoveSetLeading records -ty as the leading, then moves (TD).
func (t *Tracker) MoveSetLeading(tx, ty float64) {
	t.State.Leading = -ty
	t.Move(tx, ty)
}

// NextLine moves down one line (T*).
func (t *Tracker) NextLine() {
	t.State.TextLineMatrix[5] -= t.State.FontSize * LineAdvance
	t.State.TextMatrix = t.State.TextLineMatrix
}

func (t *Tracker) SetLeading(v float64)           { t.State.Leading = v }
func (t *Tracker) SetCharSpacing(v float64)       { t.State.CharSpacing = v }
func (t *Tracker) SetWordSpacing(v float64)       { t.State.WordSpacing = v }
func (t *Tracker) SetHorizontalScaling(v float64) { t.State.HorizontalScaling = v }
func (t *Tracker) SetRise(v float64)              { t.State.Rise = v }
func (t *Tracker) SetRenderMode(v int)            { t.State.RenderMode = v }

// Show emits a run for one string operand (Tj). It reports false outside a
// text object, where nothing is shown.
func (t *Tracker) Show(operand string, gs graphicsstate.GraphicsState) bool {
	if !t.State.InTextObject {
		return false
	}
	t.emit(operand, gs)
	return true
}

// ShowArray emits a run for every string element of a TJ array. Numeric
// adjustments are ignored.
func (t *Tracker) ShowArray(elems []contentstream.Token, gs graphicsstate.GraphicsState) bool {
	if !t.State.InTextObject {
		return false
	}
	for _, tok := range elems {
		if tok.IsString() {
			t.emit(tok.Value, gs)
		}
	}
	return true
}

// NextLineShow moves to the next line and shows operand (').
func (t *Tracker) NextLineShow(operand string, gs graphicsstate.GraphicsState) bool {
	if !t.State.InTextObject {
		return false
	}
	t.NextLine()
	t.emit(operand, gs)
	return true
}

// SpacingNextLineShow sets word and character spacing, then behaves like
// NextLineShow (").
func (t *Tracker) SpacingNextLineShow(aw, ac float64, operand string, gs graphicsstate.GraphicsState) bool {
	if !t.State.InTextObject {
		return false
	}
	t.State.WordSpacing = aw
	t.State.CharSpacing = ac
	return t.NextLineShow(operand, gs)
}

func (t *Tracker) emit(operand string, gs graphicsstate.GraphicsState) {
	s := t.dec.Decode(t.State.Font, operand)
	x, y := t.State.Position()
	t.runs = append(t.runs, Run{
		Text:       s,
		X:          x,
		Y:          y,
		Font:       t.State.Font,
		FontSize:   t.State.FontSize,
		FillColor:  gs.FillColor,
		Direction:  DetectDirection(s),
		CTM:        gs.CTM,
		TextMatrix: t.State.TextMatrix,
	})
}
