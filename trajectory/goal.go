// Package trajectory defines the motion state messages exchanged between a
// supervisory planner and the interpolation engine. The transport that
// delivers them is deliberately out of scope; this package only describes the
// shape of what arrives.
package trajectory

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/guidedmotion/egm/spatialmath"
)

// MaxRobotJoints is the largest joint block a single goal can carry, for
// either the robot or the external axes.
const MaxRobotJoints = 6

// JointGoal is a snapshot of one joint block's state. Velocity and
// acceleration are optional; a missing value reads as zero.
type JointGoal struct {
	Position     []float64
	Velocity     []float64
	Acceleration []float64
}

// PositionAt returns the position of joint i, or zero if the message does not carry it.
func (g *JointGoal) PositionAt(i int) float64 {
	return valueAt(g.Position, i)
}

// VelocityAt returns the velocity of joint i, or zero if the message does not carry it.
func (g *JointGoal) VelocityAt(i int) float64 {
	return valueAt(g.Velocity, i)
}

// AccelerationAt returns the acceleration of joint i, or zero if the message does not carry it.
func (g *JointGoal) AccelerationAt(i int) float64 {
	return valueAt(g.Acceleration, i)
}

// SetPositionAt sets the position of joint i, growing the block as needed.
func (g *JointGoal) SetPositionAt(i int, v float64) {
	g.Position = setAt(g.Position, i, v)
}

// SetVelocityAt sets the velocity of joint i, growing the block as needed.
func (g *JointGoal) SetVelocityAt(i int, v float64) {
	g.Velocity = setAt(g.Velocity, i, v)
}

// SetAccelerationAt sets the acceleration of joint i, growing the block as needed.
func (g *JointGoal) SetAccelerationAt(i int, v float64) {
	g.Acceleration = setAt(g.Acceleration, i, v)
}

// Clone returns a deep copy of the joint goal.
func (g *JointGoal) Clone() JointGoal {
	return JointGoal{
		Position:     copyFloats(g.Position),
		Velocity:     copyFloats(g.Velocity),
		Acceleration: copyFloats(g.Acceleration),
	}
}

// CartesianGoal is a snapshot of the tool frame's Cartesian state.
type CartesianGoal struct {
	Position           r3.Vector
	Orientation        quat.Number
	LinearVelocity     r3.Vector
	AngularVelocity    spatialmath.AngularVelocity
	LinearAcceleration r3.Vector
}

// PointGoal is a snapshot of full motion state at one instant: a robot joint
// block, an external joint block, and a Cartesian pose. Which blocks are
// meaningful depends on the active interpolation mode.
type PointGoal struct {
	Robot     JointGoal
	External  JointGoal
	Cartesian CartesianGoal
}

// NewPointGoal returns a PointGoal with joint blocks sized for the given
// degrees of freedom.
func NewPointGoal(robotDOF, externalDOF int) *PointGoal {
	return &PointGoal{
		Robot: JointGoal{
			Position: make([]float64, robotDOF),
			Velocity: make([]float64, robotDOF),
		},
		External: JointGoal{
			Position: make([]float64, externalDOF),
			Velocity: make([]float64, externalDOF),
		},
		Cartesian: CartesianGoal{Orientation: spatialmath.NewZeroOrientation()},
	}
}

// Clone returns a deep copy of the point goal.
func (p *PointGoal) Clone() PointGoal {
	return PointGoal{
		Robot:     p.Robot.Clone(),
		External:  p.External.Clone(),
		Cartesian: p.Cartesian,
	}
}

func valueAt(s []float64, i int) float64 {
	if i >= 0 && i < len(s) {
		return s[i]
	}
	return 0
}

func setAt(s []float64, i int, v float64) []float64 {
	for len(s) <= i {
		s = append(s, 0)
	}
	s[i] = v
	return s
}

func copyFloats(s []float64) []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
