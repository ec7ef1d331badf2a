package contentstream

import "testing"

// TestLookupOp tests keyword to operator mapping
func TestLookupOp(t *testing.T) {
	tests := []struct {
		keyword string
		want    Op
	}{
		{"q", OpSave},
		{"Q", OpRestore},
		{"cm", OpConcat},
		{"re", OpRectangle},
		{"f*", OpFillEvenOdd},
		{"b*", OpCloseFillStrokeEvenOdd},
		{"T*", OpNextLine},
		{"'", OpNextLineShowText},
		{`"`, OpSetSpacingShowText},
		{"scn", OpSetFillColorN},
		{"Do", OpPaintXObject},
		{"BDC", OpBeginMarkedProps},
		{"d1", OpSetCacheDevice},
		{"zz", OpUnknown},
		{"", OpUnknown},
		{"true", OpUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			if got := LookupOp(tt.keyword); got != tt.want {
				t.Errorf("LookupOp(%q) = %v, want %v", tt.keyword, got, tt.want)
			}
		})
	}
}

// TestOpStringRoundTrip tests that every operator maps back to itself
func TestOpStringRoundTrip(t *testing.T) {
	seen := make(map[string]Op)
	for op := OpUnknown + 1; op < opCount; op++ {
		kw := op.String()
		if kw == "" {
			t.Errorf("operator %d has no keyword", int(op))
			continue
		}
		if prev, dup := seen[kw]; dup {
			t.Errorf("keyword %q used by %d and %d", kw, int(prev), int(op))
		}
		seen[kw] = op
		if LookupOp(kw) != op {
			t.Errorf("LookupOp(%q) = %v, want %v", kw, LookupOp(kw), op)
		}
	}
	if OpUnknown.String() != "Op(0)" {
		t.Errorf("OpUnknown.String() = %q", OpUnknown.String())
	}
}

func TestOpClasses(t *testing.T) {
	for _, op := range []Op{OpStroke, OpCloseStroke, OpFill, OpFillCompat, OpFillEvenOdd,
		OpFillStroke, OpFillStrokeEvenOdd, OpCloseFillStroke, OpCloseFillStrokeEvenOdd, OpEndPath} {
		if !op.IsPathPainting() {
			t.Errorf("%v should be path painting", op)
		}
	}
	if OpClip.IsPathPainting() || OpRectangle.IsPathPainting() {
		t.Error("W and re are not painting operators")
	}

	for _, op := range []Op{OpShowText, OpShowTextArray, OpNextLineShowText, OpSetSpacingShowText} {
		if !op.IsTextShowing() {
			t.Errorf("%v should be text showing", op)
		}
	}
	if OpNextLine.IsTextShowing() {
		t.Error("T* does not show text")
	}
}
