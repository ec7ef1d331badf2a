// Package graphicsstate models the PDF graphics state and the paths built
// while interpreting a content stream.
//
// [GraphicsState] is a plain value holding colors, line style and the
// current transformation matrix (CTM). Saving is a copy, so the q/Q stack is
// a slice of values:
//
//	gs := graphicsstate.Default()
//	var stack graphicsstate.Stack
//	stack.Save(gs)                       // q
//	gs.Concat(model.Translate(10, 20))   // cm
//	gs.StrokeColor = graphicsstate.RGB(1, 0, 0)
//	stack.Restore(&gs)                   // Q
//
// # Paths
//
// [Builder] implements path construction (m l c v y h re) and painting
// (S s f F f* B B* b b* n). A painted [Path] carries its subpaths in user
// space, the CTM at paint time, and a [Style] captured from the graphics
// state at that instant.
//
// # Colors
//
// [Gray], [RGB] and [CMYK] convert device color operands to "#rrggbb".
// CMYK uses the naive (1-c)(1-k) conversion.
package graphicsstate
