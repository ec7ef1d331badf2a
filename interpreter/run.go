package interpreter

import (
	"fmt"

	"github.com/dirtybirdnj/gellyscape/contentstream"
	"github.com/dirtybirdnj/gellyscape/diag"
	"github.com/dirtybirdnj/gellyscape/font"
	"github.com/dirtybirdnj/gellyscape/graphicsstate"
	"github.com/dirtybirdnj/gellyscape/model"
	"github.com/dirtybirdnj/gellyscape/text"
)

// run is the mutable state of one content stream. Forms get their own run
// that writes into the same Result.
type run struct {
	in  *Interpreter
	res *Result

	gs    graphicsstate.GraphicsState
	stack graphicsstate.Stack
	path  graphicsstate.Builder
	text  *text.Tracker

	fonts    font.Lookup
	xobjects XObjectLookup
	depth    int

	// emitted counts builder paths and tracker runs already copied to res.
	emittedPaths int
	emittedTexts int
}

func (r *run) exec(data []byte) error {
	p := contentstream.NewParser(data)
	for {
		op, ok := p.Next()
		if !ok {
			return nil
		}
		if r.in.opLimit > 0 && r.res.Operations >= r.in.opLimit {
			r.warn(diag.StageOperator, op, "operation limit of %d reached", r.in.opLimit)
			return ErrOperationLimit
		}
		r.res.Operations++
		if err := r.dispatch(op); err != nil {
			return err
		}
	}
}

func (r *run) warn(stage diag.Stage, op contentstream.Operation, format string, args ...any) {
	r.in.sink.Warn(diag.Warning{
		Stage:    stage,
		Operator: op.Name,
		Offset:   op.Offset,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *run) missing(stage diag.Stage, op contentstream.Operation) {
	r.warn(stage, op, "missing or invalid operands (%d given)", len(op.Operands))
}

// numbers parses the last n operands, reporting when they are unusable.
func (r *run) numbers(stage diag.Stage, op contentstream.Operation, n int) ([]float64, bool) {
	v, ok := op.Numbers(n)
	if !ok {
		r.missing(stage, op)
	}
	return v, ok
}

func (r *run) dispatch(op contentstream.Operation) error {
	switch op.Op {
	case contentstream.OpUnknown:
		r.warn(diag.StageOperator, op, "unknown operator")

	// General graphics state
	case contentstream.OpSave:
		r.stack.Save(r.gs)
	case contentstream.OpRestore:
		if !r.stack.Restore(&r.gs) {
			r.warn(diag.StageOperator, op, "restore without matching save")
		}
	case contentstream.OpConcat:
		if v, ok := r.numbers(diag.StageOperator, op, 6); ok {
			r.gs.Concat(model.Matrix{v[0], v[1], v[2], v[3], v[4], v[5]})
		}
	case contentstream.OpSetLineWidth:
		if v, ok := r.numbers(diag.StageOperator, op, 1); ok {
			r.gs.LineWidth = v[0]
		}
	case contentstream.OpSetLineCap:
		if v, ok := r.numbers(diag.StageOperator, op, 1); ok {
			if c, ok := graphicsstate.ParseLineCap(v[0]); ok {
				r.gs.LineCap = c
			} else {
				r.warn(diag.StageOperator, op, "invalid line cap %v", v[0])
			}
		}
	case contentstream.OpSetLineJoin:
		if v, ok := r.numbers(diag.StageOperator, op, 1); ok {
			if j, ok := graphicsstate.ParseLineJoin(v[0]); ok {
				r.gs.LineJoin = j
			} else {
				r.warn(diag.StageOperator, op, "invalid line join %v", v[0])
			}
		}
	case contentstream.OpSetMiterLimit:
		if v, ok := r.numbers(diag.StageOperator, op, 1); ok {
			r.gs.MiterLimit = v[0]
		}
	case contentstream.OpSetDash:
		r.setDash(op)
	case contentstream.OpSetIntent, contentstream.OpSetFlatness, contentstream.OpSetExtGState:
		// Not modeled.

	// Path construction
	case contentstream.OpMoveTo:
		if v, ok := r.numbers(diag.StagePath, op, 2); ok {
			r.path.MoveTo(v[0], v[1])
		}
	case contentstream.OpLineTo:
		if v, ok := r.numbers(diag.StagePath, op, 2); ok {
			r.extended(op, r.path.LineTo(v[0], v[1]))
		}
	case contentstream.OpCurveTo:
		if v, ok := r.numbers(diag.StagePath, op, 6); ok {
			r.extended(op, r.path.CurveTo(v[0], v[1], v[2], v[3], v[4], v[5]))
		}
	case contentstream.OpCurveToV:
		if v, ok := r.numbers(diag.StagePath, op, 4); ok {
			r.extended(op, r.path.CurveToV(v[0], v[1], v[2], v[3]))
		}
	case contentstream.OpCurveToY:
		if v, ok := r.numbers(diag.StagePath, op, 4); ok {
			r.extended(op, r.path.CurveToY(v[0], v[1], v[2], v[3]))
		}
	case contentstream.OpClosePath:
		r.extended(op, r.path.ClosePath())
	case contentstream.OpRectangle:
		if v, ok := r.numbers(diag.StagePath, op, 4); ok {
			r.path.Rectangle(v[0], v[1], v[2], v[3])
		}

	// Path painting
	case contentstream.OpStroke:
		r.paint(graphicsstate.PaintStroke, false, false)
	case contentstream.OpCloseStroke:
		r.paint(graphicsstate.PaintStroke, false, true)
	case contentstream.OpFill, contentstream.OpFillCompat:
		r.paint(graphicsstate.PaintFill, false, false)
	case contentstream.OpFillEvenOdd:
		r.paint(graphicsstate.PaintFill, true, false)
	case contentstream.OpFillStroke:
		r.paint(graphicsstate.PaintFillStroke, false, false)
	case contentstream.OpFillStrokeEvenOdd:
		r.paint(graphicsstate.PaintFillStroke, true, false)
	case contentstream.OpCloseFillStroke:
		r.paint(graphicsstate.PaintFillStroke, false, true)
	case contentstream.OpCloseFillStrokeEvenOdd:
		r.paint(graphicsstate.PaintFillStroke, true, true)
	case contentstream.OpEndPath:
		r.path.EndPath()

	case contentstream.OpClip, contentstream.OpClipEvenOdd:
		// Clipping is not modeled; the path stays open for the painting
		// operator that follows.

	// Text objects and state
	case contentstream.OpBeginText:
		if r.text.State.InTextObject {
			r.warn(diag.StageText, op, "nested text object")
		}
		r.text.Begin()
	case contentstream.OpEndText:
		if !r.text.State.InTextObject {
			r.warn(diag.StageText, op, "end of text object without begin")
		}
		r.text.End()
	case contentstream.OpSetCharSpacing:
		if v, ok := r.numbers(diag.StageText, op, 1); ok {
			r.text.SetCharSpacing(v[0])
		}
	case contentstream.OpSetWordSpacing:
		if v, ok := r.numbers(diag.StageText, op, 1); ok {
			r.text.SetWordSpacing(v[0])
		}
	case contentstream.OpSetHorizScale:
		if v, ok := r.numbers(diag.StageText, op, 1); ok {
			r.text.SetHorizontalScaling(v[0])
		}
	case contentstream.OpSetLeading:
		if v, ok := r.numbers(diag.StageText, op, 1); ok {
			r.text.SetLeading(v[0])
		}
	case contentstream.OpSetRenderMode:
		if v, ok := r.numbers(diag.StageText, op, 1); ok {
			r.text.SetRenderMode(int(v[0]))
		}
	case contentstream.OpSetRise:
		if v, ok := r.numbers(diag.StageText, op, 1); ok {
			r.text.SetRise(v[0])
		}
	case contentstream.OpSetFont:
		r.setFont(op)

	// Text positioning
	case contentstream.OpMoveText:
		if v, ok := r.numbers(diag.StageText, op, 2); ok {
			r.text.Move(v[0], v[1])
		}
	case contentstream.OpMoveTextSetLeading:
		if v, ok := r.numbers(diag.StageText, op, 2); ok {
			r.text.MoveSetLeading(v[0], v[1])
		}
	case contentstream.OpSetTextMatrix:
		if v, ok := r.numbers(diag.StageText, op, 6); ok {
			r.text.SetMatrix(model.Matrix{v[0], v[1], v[2], v[3], v[4], v[5]})
		}
	case contentstream.OpNextLine:
		r.text.NextLine()

	// Text showing
	case contentstream.OpShowText, contentstream.OpShowTextArray,
		contentstream.OpNextLineShowText, contentstream.OpSetSpacingShowText:
		r.showText(op)

	case contentstream.OpSetCharWidth, contentstream.OpSetCacheDevice:
		// Type 3 glyph metrics; not modeled.

	// Color
	case contentstream.OpSetStrokeColorSpace, contentstream.OpSetFillColorSpace,
		contentstream.OpSetStrokeColor, contentstream.OpSetStrokeColorN,
		contentstream.OpSetFillColor, contentstream.OpSetFillColorN:
		// Color spaces are not resolved.
	case contentstream.OpSetStrokeGray:
		if v, ok := r.numbers(diag.StageOperator, op, 1); ok {
			r.gs.StrokeColor = graphicsstate.Gray(v[0])
		}
	case contentstream.OpSetFillGray:
		if v, ok := r.numbers(diag.StageOperator, op, 1); ok {
			r.gs.FillColor = graphicsstate.Gray(v[0])
		}
	case contentstream.OpSetStrokeRGB:
		if v, ok := r.numbers(diag.StageOperator, op, 3); ok {
			r.gs.StrokeColor = graphicsstate.RGB(v[0], v[1], v[2])
		}
	case contentstream.OpSetFillRGB:
		if v, ok := r.numbers(diag.StageOperator, op, 3); ok {
			r.gs.FillColor = graphicsstate.RGB(v[0], v[1], v[2])
		}
	case contentstream.OpSetStrokeCMYK:
		if v, ok := r.numbers(diag.StageOperator, op, 4); ok {
			r.gs.StrokeColor = graphicsstate.CMYK(v[0], v[1], v[2], v[3])
		}
	case contentstream.OpSetFillCMYK:
		if v, ok := r.numbers(diag.StageOperator, op, 4); ok {
			r.gs.FillColor = graphicsstate.CMYK(v[0], v[1], v[2], v[3])
		}

	case contentstream.OpShade:
		// Shadings are not modeled.
	case contentstream.OpBeginImage, contentstream.OpBeginImageData, contentstream.OpEndImage:
		// Inline image data is skipped by the lexer.
	case contentstream.OpPaintXObject:
		return r.paintXObject(op)

	case contentstream.OpMarkPoint, contentstream.OpMarkPointProps,
		contentstream.OpBeginMarked, contentstream.OpBeginMarkedProps, contentstream.OpEndMarked,
		contentstream.OpBeginCompat, contentstream.OpEndCompat:
		// Marked content and compatibility sections carry no geometry.

	default:
		r.warn(diag.StageOperator, op, "unhandled operator %v", op.Op)
	}
	return nil
}

func (r *run) extended(op contentstream.Operation, ok bool) {
	if !ok {
		r.warn(diag.StagePath, op, "no current subpath")
	}
}

func (r *run) paint(kind graphicsstate.PaintOp, evenOdd, closeFirst bool) {
	if !r.path.Paint(kind, evenOdd, closeFirst, r.gs) {
		return
	}
	paths := r.path.Paths()
	for ; r.emittedPaths < len(paths); r.emittedPaths++ {
		r.res.Paths = append(r.res.Paths, paths[r.emittedPaths])
	}
}

func (r *run) flushTexts() {
	runs := r.text.Runs()
	for ; r.emittedTexts < len(runs); r.emittedTexts++ {
		r.res.Texts = append(r.res.Texts, runs[r.emittedTexts])
	}
}

// setDash handles "[a b ...] phase d".
func (r *run) setDash(op contentstream.Operation) {
	n := len(op.Operands)
	if n < 3 {
		r.missing(diag.StageOperator, op)
		return
	}
	phase, ok := op.Operands[n-1].Number()
	if !ok {
		r.missing(diag.StageOperator, op)
		return
	}
	elems, ok := trailingArray(op.Operands[:n-1])
	if !ok {
		r.missing(diag.StageOperator, op)
		return
	}
	pattern := make([]float64, 0, len(elems))
	for _, tok := range elems {
		v, ok := tok.Number()
		if !ok {
			r.warn(diag.StageOperator, op, "non-numeric dash element %q", tok.Value)
			return
		}
		pattern = append(pattern, v)
	}
	r.gs.SetDash(pattern, phase)
}

// setFont handles "/Name size Tf".
func (r *run) setFont(op contentstream.Operation) {
	toks, ok := op.Last(2)
	if !ok {
		r.missing(diag.StageText, op)
		return
	}
	size, ok := toks[1].Number()
	if !ok || toks[0].Kind != contentstream.TokenName {
		r.missing(diag.StageText, op)
		return
	}
	r.text.SetFont(toks[0].Value, size)
}

func (r *run) showText(op contentstream.Operation) {
	var shown bool
	switch op.Op {
	case contentstream.OpShowTextArray:
		elems, ok := trailingArray(op.Operands)
		if !ok {
			r.missing(diag.StageText, op)
			return
		}
		shown = r.text.ShowArray(elems, r.gs)
	case contentstream.OpSetSpacingShowText:
		toks, ok := op.Last(3)
		if !ok || !toks[2].IsString() {
			r.missing(diag.StageText, op)
			return
		}
		aw, ok1 := toks[0].Number()
		ac, ok2 := toks[1].Number()
		if !ok1 || !ok2 {
			r.missing(diag.StageText, op)
			return
		}
		shown = r.text.SpacingNextLineShow(aw, ac, toks[2].Value, r.gs)
	default:
		toks, ok := op.Last(1)
		if !ok || !toks[0].IsString() {
			r.missing(diag.StageText, op)
			return
		}
		if op.Op == contentstream.OpNextLineShowText {
			shown = r.text.NextLineShow(toks[0].Value, r.gs)
		} else {
			shown = r.text.Show(toks[0].Value, r.gs)
		}
	}
	if !shown {
		r.warn(diag.StageText, op, "text shown outside a text object")
		return
	}
	r.flushTexts()
}

// paintXObject runs a Form XObject in a child run that shares the result.
func (r *run) paintXObject(op contentstream.Operation) error {
	toks, ok := op.Last(1)
	if !ok || toks[0].Kind != contentstream.TokenName {
		r.missing(diag.StageXObject, op)
		return nil
	}
	if r.xobjects == nil {
		return nil
	}
	form, ok := r.xobjects.Form(toks[0].Value)
	if !ok {
		return nil
	}
	if r.depth >= r.in.maxDepth {
		r.warn(diag.StageXObject, op, "form %s nested deeper than %d", toks[0].Value, r.in.maxDepth)
		return nil
	}

	// The form matrix maps form space into the caller's user space, so it
	// is applied before the caller's CTM, unlike cm.
	gs := r.gs
	m := form.Matrix
	if m == (model.Matrix{}) {
		m = model.Identity()
	}
	gs.CTM = m.Multiply(gs.CTM)

	fonts := form.Fonts
	if fonts == nil {
		fonts = r.fonts
	}
	xobjects := form.XObjects
	if xobjects == nil {
		xobjects = r.xobjects
	}
	child := r.in.newRun(r.res, gs, fonts, xobjects, r.depth+1)
	// Text state is part of the graphics state the form inherits; changes
	// made inside the form do not leak back.
	child.text.State = r.text.State
	child.text.State.InTextObject = false
	return child.exec(form.Content)
}

// trailingArray returns the elements of the array that ends the operand
// list. Nested arrays are returned with their brackets.
func trailingArray(toks []contentstream.Token) ([]contentstream.Token, bool) {
	n := len(toks)
	if n == 0 || toks[n-1].Kind != contentstream.TokenArrayEnd {
		return nil, false
	}
	depth := 0
	for i := n - 1; i >= 0; i-- {
		switch toks[i].Kind {
		case contentstream.TokenArrayEnd:
			depth++
		case contentstream.TokenArrayStart:
			depth--
			if depth == 0 {
				return toks[i+1 : n-1], true
			}
		}
	}
	return nil, false
}
