// Package model provides the geometry primitives shared by the interpreter
// and the emitter.
//
//   - [Point] - 2D point
//   - [BBox] - axis-aligned rectangle used for crop boxes and bounds
//   - [Matrix] - 2D affine transformation matrix in PDF order [a b c d e f]
//
// Matrices compose in the PDF row-vector convention: a.Multiply(b) applies a
// first and b second, so the cm operator computes M.Multiply(CTM).
package model
