package spatialmath

import (
	"github.com/golang/geo/r3"
)

// AngularVelocity contains angular velocity in rad/s across x/y/z axes,
// expressed as Euler angle rates.
type AngularVelocity r3.Vector

// Scale returns the angular velocity scaled by the given factor.
func (av AngularVelocity) Scale(factor float64) AngularVelocity {
	return AngularVelocity{
		X: factor * av.X,
		Y: factor * av.Y,
		Z: factor * av.Z,
	}
}

// IsZero reports whether all components of the angular velocity are zero.
func (av AngularVelocity) IsZero() bool {
	return av.X == 0 && av.Y == 0 && av.Z == 0
}

// EulerRate estimates an angular velocity from the change between two
// orientations over a time difference, as component-wise Euler angle rates.
func EulerRate(prev, curr *EulerAngles, dt float64) AngularVelocity {
	return AngularVelocity{
		X: wrappedAngleDiff(prev.Roll, curr.Roll) / dt,
		Y: wrappedAngleDiff(prev.Pitch, curr.Pitch) / dt,
		Z: wrappedAngleDiff(prev.Yaw, curr.Yaw) / dt,
	}
}
