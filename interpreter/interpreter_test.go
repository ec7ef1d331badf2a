package interpreter

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/dirtybirdnj/gellyscape/diag"
	"github.com/dirtybirdnj/gellyscape/font"
	"github.com/dirtybirdnj/gellyscape/graphicsstate"
	"github.com/dirtybirdnj/gellyscape/model"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/matrix"
)

func mustRun(t *testing.T, content string, opts ...Option) *Result {
	t.Helper()
	res, err := New(opts...).Run([]byte(content))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return res
}

func pt(x, y float64) model.Point { return model.Point{X: x, Y: y} }

// TestRun_StrokedSquare tests a closed red square stroke
func TestRun_StrokedSquare(t *testing.T) {
	res := mustRun(t, "1 0 0 RG 10 10 m 50 10 l 50 50 l 10 50 l h S")

	if len(res.Paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(res.Paths))
	}
	p := res.Paths[0]
	if p.Operation != graphicsstate.PaintStroke {
		t.Errorf("Operation = %v, want stroke", p.Operation)
	}
	if p.Style.Stroke != "#ff0000" {
		t.Errorf("Stroke = %q, want #ff0000", p.Style.Stroke)
	}
	if p.Style.Fill != graphicsstate.None {
		t.Errorf("Fill = %q, want none", p.Style.Fill)
	}
	want := []graphicsstate.Subpath{{
		Start: pt(10, 10),
		Segments: []graphicsstate.Segment{
			{Kind: graphicsstate.SegmentLine, To: pt(50, 10)},
			{Kind: graphicsstate.SegmentLine, To: pt(50, 50)},
			{Kind: graphicsstate.SegmentLine, To: pt(10, 50)},
		},
		Closed: true,
	}}
	if diff := cmp.Diff(want, p.Subpaths); diff != "" {
		t.Errorf("subpaths mismatch (-want +got):\n%s", diff)
	}
}

// TestRun_SimpleText tests text with no font resources
func TestRun_SimpleText(t *testing.T) {
	res := mustRun(t, "BT /F1 12 Tf 100 700 Td (Hi) Tj ET")

	if len(res.Texts) != 1 {
		t.Fatalf("got %d texts, want 1", len(res.Texts))
	}
	r := res.Texts[0]
	if r.Text != "Hi" || r.Font != "/F1" || r.FontSize != 12 || r.X != 100 || r.Y != 700 {
		t.Errorf("unexpected run %+v", r)
	}
}

// TestRun_UnknownOperator tests that a stray operator does not disturb its
// neighbours
func TestRun_UnknownOperator(t *testing.T) {
	clean := mustRun(t, "0 0 m 10 10 l S BT /F1 10 Tf (a) Tj ET")

	var sink diag.Collector
	noisy := mustRun(t, "0 0 m zz 10 10 l S 5 zz BT /F1 10 Tf (a) Tj ET", WithSink(&sink))

	if diff := cmp.Diff(clean.Paths, noisy.Paths); diff != "" {
		t.Errorf("paths changed (-clean +noisy):\n%s", diff)
	}
	if diff := cmp.Diff(clean.Texts, noisy.Texts); diff != "" {
		t.Errorf("texts changed (-clean +noisy):\n%s", diff)
	}
	ws := sink.Warnings()
	if len(ws) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(ws), ws)
	}
	for _, w := range ws {
		if w.Operator != "zz" || w.Stage != diag.StageOperator {
			t.Errorf("unexpected warning %v", w)
		}
	}
}

// TestRun_ConcatMatchesReference tests cm composition against an
// independent matrix implementation
func TestRun_ConcatMatchesReference(t *testing.T) {
	seqs := [][]matrix.Matrix{
		{{2, 0, 0, 2, 0, 0}},
		{{1, 0, 0, 1, 10, 20}, {2, 0, 0, 3, 0, 0}},
		{{0, 1, -1, 0, 0, 0}, {1, 0, 0, 1, 5, 7}, {0.5, 0, 0, 0.5, 0, 0}},
		{{1, 0.2, 0.3, 1, 4, -2}, {1, 0, 0, -1, 0, 792}, {3, 1, 1, 2, 8, 9}, {0.25, 0, 0, 4, -1, -1}},
	}
	for i, seq := range seqs {
		var sb strings.Builder
		ref := matrix.Identity
		for _, m := range seq {
			for _, v := range m {
				sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
				sb.WriteByte(' ')
			}
			sb.WriteString("cm ")
			ref = ref.Mul(m)
		}
		sb.WriteString("0 0 m 1 1 l S")

		res := mustRun(t, sb.String())
		if len(res.Paths) != 1 {
			t.Fatalf("seq %d: got %d paths", i, len(res.Paths))
		}
		got := res.Paths[0].Transform
		for k := range got {
			if math.Abs(got[k]-ref[k]) > 1e-9 {
				t.Errorf("seq %d: CTM = %v, want %v", i, got, ref)
				break
			}
		}
	}
}

// TestRun_SaveRestore tests q/Q restores state exactly
func TestRun_SaveRestore(t *testing.T) {
	content := `0.5 g 2 w 1 J 2 j [3 1] 0 d 1 0 0 1 5 5 cm
q 1 0 0 RG 9 w 0 J [] 0 d 2 0 0 2 0 0 cm 0 0 1 1 re f Q
0 0 m 1 1 l S`
	res := mustRun(t, content)
	if len(res.Paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(res.Paths))
	}

	after := res.Paths[1]
	want := graphicsstate.Style{
		Fill:            graphicsstate.None,
		Stroke:          graphicsstate.Black,
		StrokeWidth:     2,
		StrokeLinecap:   graphicsstate.CapRound,
		StrokeLinejoin:  graphicsstate.JoinBevel,
		StrokeDasharray: "3,1",
	}
	if diff := cmp.Diff(want, after.Style); diff != "" {
		t.Errorf("style after Q mismatch (-want +got):\n%s", diff)
	}
	if after.Transform != (model.Matrix{1, 0, 0, 1, 5, 5}) {
		t.Errorf("Transform after Q = %v", after.Transform)
	}
	if inner := res.Paths[0]; inner.Style.Fill != "#808080" || inner.Transform != (model.Matrix{2, 0, 0, 2, 5, 5}) {
		t.Errorf("inner path style %+v transform %v", inner.Style, inner.Transform)
	}
}

// TestRun_UnbalancedRestore tests that Q on an empty stack is ignored
func TestRun_UnbalancedRestore(t *testing.T) {
	var sink diag.Collector
	res := mustRun(t, "0 0 1 rg Q 0 0 5 5 re f", WithSink(&sink))
	if got := res.Paths[0].Style.Fill; got != "#0000ff" {
		t.Errorf("Fill = %q, want #0000ff", got)
	}
	if sink.Len() != 1 {
		t.Errorf("got %d warnings, want 1", sink.Len())
	}
}

// TestRun_Rectangle tests re with negative extents
func TestRun_Rectangle(t *testing.T) {
	res := mustRun(t, "10 20 -5 -8 re n 10 20 -5 -8 re f")
	if len(res.Paths) != 1 {
		t.Fatalf("got %d paths, want 1 (n must not record)", len(res.Paths))
	}
	sp := res.Paths[0].Subpaths[0]
	got := []model.Point{sp.Start}
	for _, s := range sp.Segments {
		got = append(got, s.To)
	}
	want := []model.Point{pt(10, 20), pt(5, 20), pt(5, 12), pt(10, 12)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("corners mismatch (-want +got):\n%s", diff)
	}
	if !sp.Closed {
		t.Error("rectangle not closed")
	}
}

// TestRun_PaintOperators tests operation and fill rule per painting operator
func TestRun_PaintOperators(t *testing.T) {
	tests := []struct {
		op     string
		want   graphicsstate.PaintOp
		rule   graphicsstate.FillRule
		closed bool
	}{
		{"S", graphicsstate.PaintStroke, graphicsstate.FillNonZero, false},
		{"s", graphicsstate.PaintStroke, graphicsstate.FillNonZero, true},
		{"f", graphicsstate.PaintFill, graphicsstate.FillNonZero, false},
		{"F", graphicsstate.PaintFill, graphicsstate.FillNonZero, false},
		{"f*", graphicsstate.PaintFill, graphicsstate.FillEvenOdd, false},
		{"B", graphicsstate.PaintFillStroke, graphicsstate.FillNonZero, false},
		{"B*", graphicsstate.PaintFillStroke, graphicsstate.FillEvenOdd, false},
		{"b", graphicsstate.PaintFillStroke, graphicsstate.FillNonZero, true},
		{"b*", graphicsstate.PaintFillStroke, graphicsstate.FillEvenOdd, true},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			res := mustRun(t, "0 0 m 10 0 l 10 10 l "+tt.op)
			if len(res.Paths) != 1 {
				t.Fatalf("got %d paths", len(res.Paths))
			}
			p := res.Paths[0]
			if p.Operation != tt.want || p.Style.FillRule != tt.rule || p.Subpaths[0].Closed != tt.closed {
				t.Errorf("got op %v rule %v closed %v", p.Operation, p.Style.FillRule, p.Subpaths[0].Closed)
			}
		})
	}
}

// TestRun_CurveVariants tests v and y control point synthesis
func TestRun_CurveVariants(t *testing.T) {
	res := mustRun(t, "0 0 m 1 1 2 2 3 3 c 4 4 5 5 v 6 6 7 7 y S")
	segs := res.Paths[0].Subpaths[0].Segments
	want := []graphicsstate.Segment{
		{Kind: graphicsstate.SegmentCubic, CP1: pt(1, 1), CP2: pt(2, 2), To: pt(3, 3)},
		{Kind: graphicsstate.SegmentCubic, CP1: pt(3, 3), CP2: pt(4, 4), To: pt(5, 5)},
		{Kind: graphicsstate.SegmentCubic, CP1: pt(6, 6), CP2: pt(7, 7), To: pt(7, 7)},
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

// TestRun_MissingOperands tests that short operand lists are no-ops
func TestRun_MissingOperands(t *testing.T) {
	var sink diag.Collector
	res := mustRun(t, "5 w 1 RG 10 l 0 0 m 3 l 1 1 l 0.5 0 cm S", WithSink(&sink))

	if len(res.Paths) != 1 {
		t.Fatalf("got %d paths", len(res.Paths))
	}
	p := res.Paths[0]
	if p.Style.Stroke != graphicsstate.Black || p.Style.StrokeWidth != 5 {
		t.Errorf("style = %+v", p.Style)
	}
	if len(p.Subpaths[0].Segments) != 1 {
		t.Errorf("got %d segments, want 1", len(p.Subpaths[0].Segments))
	}
	if !p.Transform.IsIdentity() {
		t.Errorf("Transform = %v, want identity", p.Transform)
	}
	if sink.Len() != 4 {
		t.Errorf("got %d warnings, want 4: %s", sink.Len(), diag.Format(sink.Warnings()))
	}
}

// TestRun_LastOperands tests that handlers read the trailing operands
func TestRun_LastOperands(t *testing.T) {
	res := mustRun(t, "99 98 0 0 m 7 1 2 l S")
	sp := res.Paths[0].Subpaths[0]
	if sp.Start != pt(0, 0) || sp.Segments[0].To != pt(1, 2) {
		t.Errorf("subpath = %+v", sp)
	}
}

// TestRun_LineToWithoutPath tests l before any m
func TestRun_LineToWithoutPath(t *testing.T) {
	var sink diag.Collector
	res := mustRun(t, "10 10 l 20 20 l S", WithSink(&sink))
	if len(res.Paths) != 0 {
		t.Errorf("got %d paths, want 0", len(res.Paths))
	}
	if sink.Len() != 2 {
		t.Errorf("got %d warnings, want 2", sink.Len())
	}
}

// TestRun_Colors tests the device color operators
func TestRun_Colors(t *testing.T) {
	tests := []struct {
		content string
		fill    graphicsstate.Color
		stroke  graphicsstate.Color
	}{
		{"0 0 0 0 k 0 0 0 1 K", "#ffffff", "#000000"},
		{"0.25 g 0.75 G", "#404040", "#bfbfbf"},
		{"0 1 0 rg 0 0 1 RG", "#00ff00", "#0000ff"},
		{"/P1 scn 1 0 0 rg /CS0 cs 0.3 sc", "#ff0000", "#000000"},
		{"2 -1 0.5 rg", "#ff0080", "#000000"},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			res := mustRun(t, tt.content+" 0 0 1 1 re B")
			st := res.Paths[0].Style
			if st.Fill != tt.fill || st.Stroke != tt.stroke {
				t.Errorf("fill %q stroke %q, want %q %q", st.Fill, st.Stroke, tt.fill, tt.stroke)
			}
		})
	}
}

// TestRun_Dash tests the d operator
func TestRun_Dash(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"[3 2] 0 d", "3,2"},
		{"[0.5 1.25 2] 1 d", "0.5,1.25,2"},
		{"[4] 0 d [] 0 d", ""},
		{"[(x)] 0 d", ""},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			res := mustRun(t, tt.content+" 0 0 m 1 1 l S")
			if got := res.Paths[0].Style.StrokeDasharray; got != tt.want {
				t.Errorf("dasharray = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestRun_ShowTextArray tests TJ and the quote operators
func TestRun_ShowTextArray(t *testing.T) {
	res := mustRun(t, `BT /F1 10 Tf 50 600 Td [(Map) -250 (Key)] TJ (Next) ' 1 2 (Last) " ET`)
	type pos struct {
		Text string
		X, Y float64
	}
	var got []pos
	for _, r := range res.Texts {
		got = append(got, pos{r.Text, r.X, r.Y})
	}
	want := []pos{{"Map", 50, 600}, {"Key", 50, 600}, {"Next", 50, 588}, {"Last", 50, 576}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
}

// TestRun_TextOutsideObject tests that Tj outside BT/ET shows nothing
func TestRun_TextOutsideObject(t *testing.T) {
	var sink diag.Collector
	res := mustRun(t, "/F1 12 Tf (lost) Tj BT (kept) Tj ET", WithSink(&sink))
	if len(res.Texts) != 1 || res.Texts[0].Text != "kept" {
		t.Errorf("texts = %+v", res.Texts)
	}
	if res.Texts[0].Font != "/F1" {
		t.Errorf("Font = %q, want /F1", res.Texts[0].Font)
	}
	if sink.Len() != 1 {
		t.Errorf("got %d warnings, want 1", sink.Len())
	}
}

// TestRun_TextUsesFillColorAndCTM tests the run snapshot of graphics state
func TestRun_TextUsesFillColorAndCTM(t *testing.T) {
	res := mustRun(t, "1 0 0 1 0 10 cm 0 0 1 rg BT /F2 8 Tf (x) Tj ET")
	r := res.Texts[0]
	if r.FillColor != "#0000ff" || r.CTM != (model.Matrix{1, 0, 0, 1, 0, 10}) {
		t.Errorf("run = %+v", r)
	}
}

// TestRun_ToUnicode tests text decoding through font resources
func TestRun_ToUnicode(t *testing.T) {
	fonts := font.MapLookup{ID: "page", Fonts: map[string]font.Resource{
		"F1": {Subtype: "Type0", ToUnicode: &font.Stream{Data: []byte(`beginbfrange <0041> <0043> <0061> endbfrange`)}},
	}}
	cache := font.NewCache()
	res := mustRun(t, "BT /F1 12 Tf <004100420043> Tj (AB) Tj ET", WithFonts(fonts), WithCMapCache(cache))
	var got []string
	for _, r := range res.Texts {
		got = append(got, r.Text)
	}
	if diff := cmp.Diff([]string{"abc", "ab"}, got); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	if cache.Len() != 1 {
		t.Errorf("cache has %d entries, want 1", cache.Len())
	}
}

// TestRun_FormXObject tests Do with a form and its resources
func TestRun_FormXObject(t *testing.T) {
	formFonts := font.MapLookup{ID: "form", Fonts: map[string]font.Resource{
		"F1": {ToUnicode: &font.Stream{Data: []byte(`beginbfchar <01> <0058> endbfchar`)}},
	}}
	xobjects := MapXObjects{
		"Fm1": {
			Content: []byte("0 0 1 1 re f BT /F1 10 Tf <01> Tj ET"),
			Matrix:  model.Matrix{2, 0, 0, 2, 0, 0},
			Fonts:   formFonts,
		},
		"Im1": {},
	}
	content := "0 1 0 rg 1 0 0 1 100 100 cm 5 5 m 6 6 l S /Fm1 Do 1 0 0 rg 0 0 3 3 re f /Im9 Do"
	res := mustRun(t, content, WithXObjects(xobjects))

	if len(res.Paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(res.Paths))
	}
	form := res.Paths[1]
	if form.Transform != (model.Matrix{2, 0, 0, 2, 100, 100}) {
		t.Errorf("form Transform = %v", form.Transform)
	}
	if form.Style.Fill != "#00ff00" {
		t.Errorf("form fill = %q, want inherited #00ff00", form.Style.Fill)
	}
	if res.Paths[2].Transform != (model.Matrix{1, 0, 0, 1, 100, 100}) {
		t.Errorf("form leaked its matrix: %v", res.Paths[2].Transform)
	}
	if len(res.Texts) != 1 || res.Texts[0].Text != "X" {
		t.Errorf("texts = %+v", res.Texts)
	}
}

// TestRun_FormInheritsTextState tests that a form sees the caller's font
// and that font changes inside the form stay there
func TestRun_FormInheritsTextState(t *testing.T) {
	xobjects := MapXObjects{
		"Fm1": {Content: []byte("BT (in) Tj ET BT /F2 3 Tf (in2) Tj ET")},
	}
	res := mustRun(t, "BT /F1 7 Tf ET /Fm1 Do BT (out) Tj ET", WithXObjects(xobjects))

	type fontRun struct {
		Text string
		Font string
		Size float64
	}
	var got []fontRun
	for _, run := range res.Texts {
		got = append(got, fontRun{run.Text, run.Font, run.FontSize})
	}
	want := []fontRun{
		{"in", "/F1", 7},
		{"in2", "/F2", 3},
		{"out", "/F1", 7},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
}

// TestRun_FormRecursion tests the nesting limit on self-referencing forms
func TestRun_FormRecursion(t *testing.T) {
	xobjects := MapXObjects{
		"Loop": {Content: []byte("0 0 1 1 re f /Loop Do")},
	}
	var sink diag.Collector
	res := mustRun(t, "/Loop Do", WithXObjects(xobjects), WithMaxDepth(3), WithSink(&sink))
	if len(res.Paths) != 3 {
		t.Errorf("got %d paths, want 3", len(res.Paths))
	}
	ws := sink.Warnings()
	if len(ws) != 1 || ws[0].Stage != diag.StageXObject {
		t.Errorf("warnings = %v", ws)
	}
}

// TestRun_OperationLimit tests the caller-imposed budget
func TestRun_OperationLimit(t *testing.T) {
	res, err := New(WithOperationLimit(4)).Run([]byte("0 0 m 1 1 l S 0 0 m 2 2 l S"))
	if !errors.Is(err, ErrOperationLimit) {
		t.Fatalf("err = %v, want ErrOperationLimit", err)
	}
	if res.Operations != 4 || len(res.Paths) != 1 {
		t.Errorf("Operations = %d, paths = %d", res.Operations, len(res.Paths))
	}
}

// TestRun_InitialState tests WithInitialState
func TestRun_InitialState(t *testing.T) {
	gs := graphicsstate.Default()
	gs.CTM = model.Matrix{1, 0, 0, -1, 0, 792}
	gs.LineWidth = 0.5
	res := mustRun(t, "0 0 m 1 1 l S", WithInitialState(gs))
	p := res.Paths[0]
	if p.Transform != gs.CTM || p.Style.StrokeWidth != 0.5 {
		t.Errorf("path = %+v", p)
	}
}

// TestRun_Deterministic tests that repeated runs give equal results
func TestRun_Deterministic(t *testing.T) {
	content := "q 0.2 0.4 0.6 rg 1 0 0 1 3 4 cm 0 0 10 10 re f Q BT /F1 9 Tf 1 2 Td (a) Tj ET"
	in := New()
	a, _ := in.Run([]byte(content))
	b, _ := in.Run([]byte(content))
	if diff := cmp.Diff(a, b, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("results differ:\n%s", diff)
	}
}

// TestRunReader tests reading the stream first
func TestRunReader(t *testing.T) {
	res, err := New().RunReader(strings.NewReader("0 0 1 1 re f"))
	if err != nil {
		t.Fatalf("RunReader() error = %v", err)
	}
	if len(res.Paths) != 1 {
		t.Errorf("got %d paths, want 1", len(res.Paths))
	}

	boom := errors.New("boom")
	if _, err := New().RunReader(iotest.ErrReader(boom)); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
}

func TestTrailingArray(t *testing.T) {
	tests := []struct {
		in   string
		want []string
		ok   bool
	}{
		{"[1 2]", []string{"1", "2"}, true},
		{"9 [] ", nil, true},
		{"[(a) [1] (b)]", []string{"(a)", "[", "1", "]", "(b)"}, true},
		{"1 2", nil, false},
		{"1 2]", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			toks, ok := trailingArray(tokenize(tt.in))
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			var got []string
			for _, tok := range toks {
				got = append(got, tok.Value)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("elements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
