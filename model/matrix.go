package model

import "math"

// Matrix is an affine transform stored as the PDF operand list
// [a b c d e f]. It maps (x, y) to (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Transform maps p through m.
func (m Matrix) Transform(p Point) Point {
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	return Point{X: a*p.X + c*p.Y + e, Y: b*p.X + d*p.Y + f}
}

// Multiply composes m with n so that the result applies m, then n.
func (m Matrix) Multiply(n Matrix) Matrix {
	var out Matrix
	for row := 0; row < 3; row++ {
		x, y := m[2*row], m[2*row+1]
		out[2*row] = x*n[0] + y*n[2]
		out[2*row+1] = x*n[1] + y*n[3]
	}
	out[4] += n[4]
	out[5] += n[5]
	return out
}

func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// VerticalScale is the length m gives a unit vertical vector. Font sizes
// are multiplied by it.
func (m Matrix) VerticalScale() float64 {
	return math.Hypot(m[2], m[3])
}
