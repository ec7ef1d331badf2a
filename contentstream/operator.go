package contentstream

import "strconv"

// Op identifies a content stream operator. The set is closed: keywords that
// are not listed map to OpUnknown.
type Op int

const (
	OpUnknown Op = iota

	// General graphics state
	OpSave          // q
	OpRestore       // Q
	OpConcat        // cm
	OpSetLineWidth  // w
	OpSetLineCap    // J
	OpSetLineJoin   // j
	OpSetMiterLimit // M
	OpSetDash       // d
	OpSetIntent     // ri
	OpSetFlatness   // i
	OpSetExtGState  // gs

	// Path construction
	OpMoveTo    // m
	OpLineTo    // l
	OpCurveTo   // c
	OpCurveToV  // v
	OpCurveToY  // y
	OpClosePath // h
	OpRectangle // re

	// Path painting
	OpStroke                 // S
	OpCloseStroke            // s
	OpFill                   // f
	OpFillCompat             // F
	OpFillEvenOdd            // f*
	OpFillStroke             // B
	OpFillStrokeEvenOdd      // B*
	OpCloseFillStroke        // b
	OpCloseFillStrokeEvenOdd // b*
	OpEndPath                // n

	// Clipping
	OpClip        // W
	OpClipEvenOdd // W*

	// Text objects and state
	OpBeginText      // BT
	OpEndText        // ET
	OpSetCharSpacing // Tc
	OpSetWordSpacing // Tw
	OpSetHorizScale  // Tz
	OpSetLeading     // TL
	OpSetFont        // Tf
	OpSetRenderMode  // Tr
	OpSetRise        // Ts

	// Text positioning
	OpMoveText           // Td
	OpMoveTextSetLeading // TD
	OpSetTextMatrix      // Tm
	OpNextLine           // T*

	// Text showing
	OpShowText           // Tj
	OpShowTextArray      // TJ
	OpNextLineShowText   // '
	OpSetSpacingShowText // "

	// Type 3 glyphs
	OpSetCharWidth   // d0
	OpSetCacheDevice // d1

	// Color
	OpSetStrokeColorSpace // CS
	OpSetFillColorSpace   // cs
	OpSetStrokeColor      // SC
	OpSetStrokeColorN     // SCN
	OpSetFillColor        // sc
	OpSetFillColorN       // scn
	OpSetStrokeGray       // G
	OpSetFillGray         // g
	OpSetStrokeRGB        // RG
	OpSetFillRGB          // rg
	OpSetStrokeCMYK       // K
	OpSetFillCMYK         // k

	OpShade // sh

	// Inline images
	OpBeginImage     // BI
	OpBeginImageData // ID
	OpEndImage       // EI

	OpPaintXObject // Do

	// Marked content
	OpMarkPoint        // MP
	OpMarkPointProps   // DP
	OpBeginMarked      // BMC
	OpBeginMarkedProps // BDC
	OpEndMarked        // EMC

	// Compatibility
	OpBeginCompat // BX
	OpEndCompat   // EX

	opCount
)

var opKeywords = [opCount]string{
	OpUnknown: "",

	OpSave:          "q",
	OpRestore:       "Q",
	OpConcat:        "cm",
	OpSetLineWidth:  "w",
	OpSetLineCap:    "J",
	OpSetLineJoin:   "j",
	OpSetMiterLimit: "M",
	OpSetDash:       "d",
	OpSetIntent:     "ri",
	OpSetFlatness:   "i",
	OpSetExtGState:  "gs",

	OpMoveTo:    "m",
	OpLineTo:    "l",
	OpCurveTo:   "c",
	OpCurveToV:  "v",
	OpCurveToY:  "y",
	OpClosePath: "h",
	OpRectangle: "re",

	OpStroke:                 "S",
	OpCloseStroke:            "s",
	OpFill:                   "f",
	OpFillCompat:             "F",
	OpFillEvenOdd:            "f*",
	OpFillStroke:             "B",
	OpFillStrokeEvenOdd:      "B*",
	OpCloseFillStroke:        "b",
	OpCloseFillStrokeEvenOdd: "b*",
	OpEndPath:                "n",

	OpClip:        "W",
	OpClipEvenOdd: "W*",

	OpBeginText:      "BT",
	OpEndText:        "ET",
	OpSetCharSpacing: "Tc",
	OpSetWordSpacing: "Tw",
	OpSetHorizScale:  "Tz",
	OpSetLeading:     "TL",
	OpSetFont:        "Tf",
	OpSetRenderMode:  "Tr",
	OpSetRise:        "Ts",

	OpMoveText:           "Td",
	OpMoveTextSetLeading: "TD",
	OpSetTextMatrix:      "Tm",
	OpNextLine:           "T*",

	OpShowText:           "Tj",
	OpShowTextArray:      "TJ",
	OpNextLineShowText:   "'",
	OpSetSpacingShowText: `"`,

	OpSetCharWidth:   "d0",
	OpSetCacheDevice: "d1",

	OpSetStrokeColorSpace: "CS",
	OpSetFillColorSpace:   "cs",
	OpSetStrokeColor:      "SC",
	OpSetStrokeColorN:     "SCN",
	OpSetFillColor:        "sc",
	OpSetFillColorN:       "scn",
	OpSetStrokeGray:       "G",
	OpSetFillGray:         "g",
	OpSetStrokeRGB:        "RG",
	OpSetFillRGB:          "rg",
	OpSetStrokeCMYK:       "K",
	OpSetFillCMYK:         "k",

	OpShade: "sh",

	OpBeginImage:     "BI",
	OpBeginImageData: "ID",
	OpEndImage:       "EI",

	OpPaintXObject: "Do",

	OpMarkPoint:        "MP",
	OpMarkPointProps:   "DP",
	OpBeginMarked:      "BMC",
	OpBeginMarkedProps: "BDC",
	OpEndMarked:        "EMC",

	OpBeginCompat: "BX",
	OpEndCompat:   "EX",
}

var opsByKeyword = func() map[string]Op {
	m := make(map[string]Op, opCount)
	for op := OpUnknown + 1; op < opCount; op++ {
		m[opKeywords[op]] = op
	}
	return m
}()

// LookupOp maps an operator keyword to its Op. Unlisted keywords return
// OpUnknown.
func LookupOp(keyword string) Op {
	return opsByKeyword[keyword]
}

// String returns the operator keyword, or "Op(n)" for OpUnknown and values
// outside the enumeration.
func (op Op) String() string {
	if op > OpUnknown && op < opCount {
		return opKeywords[op]
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// IsPathPainting reports whether op ends a path.
func (op Op) IsPathPainting() bool {
	return op >= OpStroke && op <= OpEndPath
}

// IsTextShowing reports whether op shows text.
func (op Op) IsTextShowing() bool {
	return op >= OpShowText && op <= OpSetSpacingShowText
}
