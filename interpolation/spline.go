package interpolation

import (
	"github.com/golang/geo/r3"

	"github.com/guidedmotion/egm/trajectory"
	"github.com/guidedmotion/egm/utils"
)

// Axis specifies which Cartesian axis a spline channel tracks.
type Axis int

// The three Cartesian axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// SplineConditions are the boundary conditions for a single scalar channel:
// position, velocity and acceleration pinned at t=0 and t=Duration. One value
// is derived fresh per channel on every session update.
type SplineConditions struct {
	Duration          float64
	StartPosition     float64
	StartVelocity     float64
	StartAcceleration float64
	GoalPosition      float64
	GoalVelocity      float64
	GoalAcceleration  float64
	Method            SplineMethod
	DoRampDown        bool
	RampDownFactor    float64
}

// NewSplineConditions seeds channel conditions from the session conditions.
// The boundary values themselves are filled in by the Set*Conditions calls.
func NewSplineConditions(c Conditions) SplineConditions {
	return SplineConditions{
		Duration:       c.Duration,
		Method:         c.SplineMethod,
		DoRampDown:     c.Operation == OperationRampDown,
		RampDownFactor: c.RampDownFactor,
	}
}

// SetJointConditions extracts the boundary values for joint index i from a
// start/goal joint block pair. Velocities and accelerations the messages do
// not carry default to zero.
func (sc *SplineConditions) SetJointConditions(i int, start, goal *trajectory.JointGoal) {
	sc.StartPosition = start.PositionAt(i)
	sc.StartVelocity = start.VelocityAt(i)
	sc.StartAcceleration = start.AccelerationAt(i)
	sc.GoalPosition = goal.PositionAt(i)
	sc.GoalVelocity = goal.VelocityAt(i)
	sc.GoalAcceleration = goal.AccelerationAt(i)
}

// SetCartesianConditions extracts the boundary values for one Cartesian axis
// from a start/goal pair.
func (sc *SplineConditions) SetCartesianConditions(axis Axis, start, goal *trajectory.CartesianGoal) {
	sc.StartPosition = axisComponent(start.Position, axis)
	sc.StartVelocity = axisComponent(start.LinearVelocity, axis)
	sc.StartAcceleration = axisComponent(start.LinearAcceleration, axis)
	sc.GoalPosition = axisComponent(goal.Position, axis)
	sc.GoalVelocity = axisComponent(goal.LinearVelocity, axis)
	sc.GoalAcceleration = axisComponent(goal.LinearAcceleration, axis)
}

// SplinePolynomial is a spline interpolation polynomial of degree 5 or lower
// for one scalar channel, i.e. A + B*t + C*t^2 + D*t^3 + E*t^4 + F*t^5.
// Evaluation after a Fit is stateless.
type SplinePolynomial struct {
	a, b, c, d, e, f float64
}

// Fit computes the coefficients satisfying the given boundary conditions in
// closed form. The conditions must carry a positive duration; a zero duration
// divides by zero here and is a precondition violation the session-level
// validation prevents.
func (p *SplinePolynomial) Fit(sc SplineConditions) {
	t := sc.Duration

	if sc.DoRampDown {
		// Taper the channel's velocity linearly from the start velocity to
		// RampDownFactor times itself, starting from the current position.
		p.a = sc.StartPosition
		p.b = sc.StartVelocity
		p.c = (sc.RampDownFactor*sc.StartVelocity - p.b) / (2.0 * t)
		p.d, p.e, p.f = 0, 0, 0
		return
	}

	switch sc.Method {
	case SplineLinear:
		// Conditions: pos(0) and pos(t).
		p.a = sc.StartPosition
		p.b = (sc.GoalPosition - p.a) / t
		p.c, p.d, p.e, p.f = 0, 0, 0, 0

	case SplineSquare:
		// Conditions: pos(0), vel(0) and pos(t).
		p.a = sc.StartPosition
		p.b = sc.StartVelocity
		p.c = (sc.GoalPosition - p.a - p.b*t) / utils.Square(t)
		p.d, p.e, p.f = 0, 0, 0

	case SplineQuintic:
		fallthrough
	default:
		// Conditions: pos, vel and acc at both 0 and t.
		t2 := utils.Square(t)
		deltaPos := sc.GoalPosition - sc.StartPosition
		p.a = sc.StartPosition
		p.b = sc.StartVelocity
		p.c = sc.StartAcceleration / 2.0
		p.d = (20.0*deltaPos - t*(12.0*sc.StartVelocity+8.0*sc.GoalVelocity) -
			t2*(3.0*sc.StartAcceleration-sc.GoalAcceleration)) / (2.0 * t * t2)
		p.e = (-30.0*deltaPos + t*(16.0*sc.StartVelocity+14.0*sc.GoalVelocity) +
			t2*(3.0*sc.StartAcceleration-2.0*sc.GoalAcceleration)) / (2.0 * t2 * t2)
		p.f = (12.0*deltaPos - t*6.0*(sc.StartVelocity+sc.GoalVelocity) -
			t2*(sc.StartAcceleration-sc.GoalAcceleration)) / (2.0 * t2 * t2 * t)
	}
}

// Position evaluates the polynomial at time t [s].
func (p *SplinePolynomial) Position(t float64) float64 {
	return p.a + t*(p.b+t*(p.c+t*(p.d+t*(p.e+t*p.f))))
}

// Velocity evaluates the polynomial's first derivative at time t [s].
func (p *SplinePolynomial) Velocity(t float64) float64 {
	return p.b + t*(2.0*p.c+t*(3.0*p.d+t*(4.0*p.e+t*5.0*p.f)))
}

// Acceleration evaluates the polynomial's second derivative at time t [s].
func (p *SplinePolynomial) Acceleration(t float64) float64 {
	return 2.0*p.c + t*(6.0*p.d+t*(12.0*p.e+t*20.0*p.f))
}

// evaluateJoint writes the channel's state at time t into joint index i.
func (p *SplinePolynomial) evaluateJoint(out *trajectory.JointGoal, i int, t float64) {
	out.SetPositionAt(i, p.Position(t))
	out.SetVelocityAt(i, p.Velocity(t))
	out.SetAccelerationAt(i, p.Acceleration(t))
}

// evaluateCartesian writes the channel's state at time t into one Cartesian axis.
func (p *SplinePolynomial) evaluateCartesian(out *trajectory.CartesianGoal, axis Axis, t float64) {
	setAxisComponent(&out.Position, axis, p.Position(t))
	setAxisComponent(&out.LinearVelocity, axis, p.Velocity(t))
	setAxisComponent(&out.LinearAcceleration, axis, p.Acceleration(t))
}

func axisComponent(v r3.Vector, axis Axis) float64 {
	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	default:
		return 0
	}
}

func setAxisComponent(v *r3.Vector, axis Axis, value float64) {
	switch axis {
	case AxisX:
		v.X = value
	case AxisY:
		v.Y = value
	case AxisZ:
		v.Z = value
	}
}
