// Package spatialmath defines the spatial math primitives used by the
// interpolation engine: unit quaternion handling, spherical interpolation and
// orientation rate estimation.
package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// If the dot product of two unit quaternions is above this threshold the arc
// between them is too short for numerically stable slerp, and a normalized
// linear blend is used instead.
const SlerpDotThreshold = 0.9995

// NewZeroOrientation returns the identity quaternion, i.e. no rotation.
func NewZeroOrientation() quat.Number {
	return quat.Number{Real: 1}
}

// Norm returns the norm of the quaternion, i.e. the sqrt of the squares of the imaginary parts.
func Norm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation
// but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// Dot returns the four-component dot product of two quaternions.
func Dot(q0, q1 quat.Number) float64 {
	return q0.Real*q1.Real + q0.Imag*q1.Imag + q0.Jmag*q1.Jmag + q0.Kmag*q1.Kmag
}

// Normalize returns the unit quaternion pointing in the same direction as q.
// An all-zero quaternion normalizes to the identity rather than to NaN.
func Normalize(q quat.Number) quat.Number {
	length := quat.Abs(q)
	if length == 0 {
		return NewZeroOrientation()
	}
	if math.Abs(length-1) < 1e-10 {
		return q
	}
	return quat.Scale(1/length, q)
}

// QuaternionAlmostEqual compares two quaternions component-wise within the given tolerance,
// treating q and -q as equal since they represent the same orientation.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	if Dot(a, b) < 0 {
		b = Flip(b)
	}
	return math.Abs(a.Real-b.Real) < tol &&
		math.Abs(a.Imag-b.Imag) < tol &&
		math.Abs(a.Jmag-b.Jmag) < tol &&
		math.Abs(a.Kmag-b.Kmag) < tol
}

// Lerp returns the normalized linear blend (1-f)*q0 + f*q1. The result is
// renormalized to correct for the drift the plain blend accumulates.
func Lerp(q0, q1 quat.Number, f float64) quat.Number {
	return Normalize(quat.Add(quat.Scale(1-f, q0), quat.Scale(f, q1)))
}

// Slerp spherically interpolates between two quaternions at constant angular
// rate, with f in [0, 1]. The goal quaternion is flipped if needed so the
// rotation takes the short path. Near-parallel quaternion pairs fall back to a
// normalized linear blend to avoid dividing by a vanishing sin(omega).
func Slerp(q0, q1 quat.Number, f float64) quat.Number {
	q0 = Normalize(q0)
	q1 = Normalize(q1)
	d := Dot(q0, q1)
	if d < 0 {
		q1 = Flip(q1)
		d = -d
	}
	if d > SlerpDotThreshold {
		return Lerp(q0, q1, f)
	}
	omega := math.Acos(d)
	sinOmega := math.Sin(omega)
	s0 := math.Sin((1-f)*omega) / sinOmega
	s1 := math.Sin(f*omega) / sinOmega
	return quat.Add(quat.Scale(s0, q0), quat.Scale(s1, q1))
}
