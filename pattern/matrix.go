package pattern

import (
	"fmt"
	"math"
)

// rotationEpsilon is the angle magnitude, in degrees, below which a rotation
// is treated as zero and the composed matrix degenerates to the pure scale.
const rotationEpsilon = 1e-6

// Matrix is a 2x3 affine transform using cairo's component layout:
//
//	x' = XX*x + XY*y + X0
//	y' = YX*x + YY*y + Y0
//
// The zero value is not the identity; use Identity().
type Matrix struct {
	XX, YX float64
	XY, YY float64
	X0, Y0 float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{XX: 1, YY: 1}
}

// NewScale returns a transform scaling X by sx and Y by sy.
func NewScale(sx, sy float64) Matrix {
	return Matrix{XX: sx, YY: sy}
}

// NewRotate returns a rotation by rad radians. With Y pointing down, a
// positive angle in the device-to-source direction reads as counter-clockwise
// on screen.
func NewRotate(rad float64) Matrix {
	sin, cos := math.Sincos(rad)
	return Matrix{XX: cos, YX: sin, XY: -sin, YY: cos}
}

// NewTranslate returns a translation by (tx, ty).
func NewTranslate(tx, ty float64) Matrix {
	return Matrix{XX: 1, YY: 1, X0: tx, Y0: ty}
}

// Mul composes two transforms. The receiver is applied first, then n:
// m.Mul(n).Apply(x, y) == n.Apply(m.Apply(x, y)).
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		XX: n.XX*m.XX + n.XY*m.YX,
		YX: n.YX*m.XX + n.YY*m.YX,
		XY: n.XX*m.XY + n.XY*m.YY,
		YY: n.YX*m.XY + n.YY*m.YY,
		X0: n.XX*m.X0 + n.XY*m.Y0 + n.X0,
		Y0: n.YX*m.X0 + n.YY*m.Y0 + n.Y0,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.XX*x + m.XY*y + m.X0, m.YX*x + m.YY*y + m.Y0
}

// Invert returns the inverse transform, or an error if the matrix is
// singular.
func (m Matrix) Invert() (Matrix, error) {
	det := m.XX*m.YY - m.XY*m.YX
	if det == 0 {
		return Matrix{}, fmt.Errorf("matrix %+v is not invertible", m)
	}
	inv := Matrix{
		XX: m.YY / det,
		XY: -m.XY / det,
		YX: -m.YX / det,
		YY: m.XX / det,
	}
	inv.X0 = -(inv.XX*m.X0 + inv.XY*m.Y0)
	inv.Y0 = -(inv.YX*m.X0 + inv.YY*m.Y0)
	return inv, nil
}

// rotateAbout returns a rotation by rad radians pivoted at (cx, cy).
func rotateAbout(cx, cy, rad float64) Matrix {
	return NewTranslate(-cx, -cy).Mul(NewRotate(rad)).Mul(NewTranslate(cx, cy))
}

// Compose builds the device-to-source transform for painting a srcW x srcH
// source stretched to targetW x targetH and rotated thetaDegrees
// counter-clockwise.
//
// The source is stretched first and rotated after; the rotation always
// pivots about the resized image's own center, whatever the scale factors
// are. Target points run through the scale step before the rotation, so the
// pivot is the target center carried into source coordinates.
func Compose(srcW, srcH, targetW, targetH, thetaDegrees float64) Matrix {
	sx := srcW / targetW
	sy := srcH / targetH
	scale := NewScale(sx, sy)

	if math.Abs(thetaDegrees) < rotationEpsilon {
		return scale
	}

	rad := thetaDegrees * math.Pi / 180
	cx := targetW * sx * 0.5
	cy := targetH * sy * 0.5
	return scale.Mul(rotateAbout(cx, cy, rad))
}
