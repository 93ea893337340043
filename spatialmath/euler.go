package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/guidedmotion/egm/utils"
)

// EulerAngles are three angles (in radians) used to represent the rotation of an object in 3D
// Euclidean space. The Tait-Bryan angle formalism is used, with rotation order z-y'-x''.
type EulerAngles struct {
	Roll  float64 // rotation about the x axis
	Pitch float64 // rotation about the y axis
	Yaw   float64 // rotation about the z axis
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Roll: 0, Pitch: 0, Yaw: 0}
}

// QuatToEulerAngles converts a rotation unit quaternion to Euler angles.
// See the following wikipedia page for the formulas used here:
// https://en.wikipedia.org/wiki/Conversion_between_quaternions_and_Euler_angles
func QuatToEulerAngles(q quat.Number) *EulerAngles {
	w := q.Real
	x := q.Imag
	y := q.Jmag
	z := q.Kmag

	return &EulerAngles{
		Roll:  math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y)),
		Pitch: math.Asin(utils.Clamp(2*(w*y-x*z), -1, 1)),
		Yaw:   math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z)),
	}
}

// Quaternion returns the rotation unit quaternion representation of the Euler angles.
func (ea *EulerAngles) Quaternion() quat.Number {
	cy := math.Cos(ea.Yaw / 2)
	sy := math.Sin(ea.Yaw / 2)
	cp := math.Cos(ea.Pitch / 2)
	sp := math.Sin(ea.Pitch / 2)
	cr := math.Cos(ea.Roll / 2)
	sr := math.Sin(ea.Roll / 2)

	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}

// wrappedAngleDiff returns b-a wrapped to (-pi, pi], so rate estimates do not
// spike when an angle crosses the +/-pi seam.
func wrappedAngleDiff(a, b float64) float64 {
	diff := math.Mod(b-a, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff <= -math.Pi {
		diff += 2 * math.Pi
	}
	return diff
}
