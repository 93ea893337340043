package interpolation

import (
	"math"

	"github.com/guidedmotion/egm/spatialmath"
	"github.com/guidedmotion/egm/trajectory"
)

// SoftRamp produces a cosine-shaped blend between a frozen start state and a
// goal state. It ramps positions or velocities in toward a static goal, and
// ramps angular velocities down toward a fraction of their starting value.
//
// The ramp factor over a session of duration D is:
//   - ramping down:               0.5*cos(pi*t/D) + 0.5      (1 -> 0)
//   - ramping in pos or velocity: 0.5*cos(pi*t/D + pi) + 0.5 (0 -> 1)
type SoftRamp struct {
	duration       float64
	operation      Operation
	rampDownFactor float64
	start          trajectory.PointGoal
	goal           trajectory.PointGoal
	startAngVel    spatialmath.AngularVelocity

	// Previous orientation sample for the ramp down finite difference. This
	// is the engine's only state carried between Evaluate calls; it is reset
	// by Update and mutated only by evaluateRampDownOrientation.
	prevEuler *spatialmath.EulerAngles
}

// Update binds the session's start and goal states. The start's angular
// velocity is snapshotted as the value a ramp down decays from.
func (r *SoftRamp) Update(start, goal *trajectory.PointGoal, c Conditions) {
	r.duration = c.Duration
	r.operation = c.Operation
	r.rampDownFactor = c.RampDownFactor
	r.start = start.Clone()
	r.goal = goal.Clone()
	r.startAngVel = start.Cartesian.AngularVelocity
	r.prevEuler = nil
}

// Factor returns the ramp factor at time t [s] for the bound operation.
func (r *SoftRamp) Factor(t float64) float64 {
	if r.operation == OperationRampDown {
		return 0.5*math.Cos(math.Pi*t/r.duration) + 0.5
	}
	return 0.5*math.Cos(math.Pi*t/r.duration+math.Pi) + 0.5
}

// EvaluateJoints writes the ramped joint state at time t into the output.
// The robot flag selects the robot joint block; otherwise the external block
// is used. Only the ramp in operations touch joint blocks: a ramp down on
// joints is expressed through the spline channels instead.
func (r *SoftRamp) EvaluateJoints(out *trajectory.JointGoal, robot bool, sampleTime, t float64) {
	start := &r.start.External
	goal := &r.goal.External
	if robot {
		start = &r.start.Robot
		goal = &r.goal.Robot
	}

	factor := r.Factor(t)
	switch r.operation {
	case OperationRampInPosition:
		for i := range goal.Position {
			from := start.PositionAt(i)
			out.SetPositionAt(i, from+factor*(goal.PositionAt(i)-from))
		}
	case OperationRampInVelocity:
		for i := range goal.Velocity {
			from := start.VelocityAt(i)
			out.SetVelocityAt(i, from+factor*(goal.VelocityAt(i)-from))
		}
		// Hold positions at the frozen start while the velocity ramps in.
		for i := range start.Position {
			out.SetPositionAt(i, start.PositionAt(i))
		}
	}
}

// EvaluateCartesian writes the ramped Cartesian state at time t into the
// output. For ramp down, the positional channels are left to the spline
// polynomials; only the orientation and the angular velocity are produced
// here. The sample time is used to estimate instantaneous Euler rates by
// finite difference against the previous Evaluate call.
func (r *SoftRamp) EvaluateCartesian(out *trajectory.CartesianGoal, sampleTime, t float64) {
	factor := r.Factor(t)
	switch r.operation {
	case OperationRampDown:
		r.evaluateRampDown(out, sampleTime, t, factor)

	case OperationRampInPosition:
		start := &r.start.Cartesian
		goal := &r.goal.Cartesian
		for axis := AxisX; axis <= AxisZ; axis++ {
			from := axisComponent(start.Position, axis)
			to := axisComponent(goal.Position, axis)
			setAxisComponent(&out.Position, axis, from+factor*(to-from))
		}
		// The ramp factor substitutes for slerp's time fraction, giving a
		// cosine-profiled orientation approach instead of constant rate.
		out.Orientation = spatialmath.Slerp(start.Orientation, goal.Orientation, factor)

	case OperationRampInVelocity:
		start := &r.start.Cartesian
		goal := &r.goal.Cartesian
		for axis := AxisX; axis <= AxisZ; axis++ {
			from := axisComponent(start.LinearVelocity, axis)
			to := axisComponent(goal.LinearVelocity, axis)
			setAxisComponent(&out.LinearVelocity, axis, from+factor*(to-from))
			setAxisComponent(&out.Position, axis, axisComponent(start.Position, axis))
		}
		out.AngularVelocity = spatialmath.AngularVelocity{
			X: start.AngularVelocity.X + factor*(goal.AngularVelocity.X-start.AngularVelocity.X),
			Y: start.AngularVelocity.Y + factor*(goal.AngularVelocity.Y-start.AngularVelocity.Y),
			Z: start.AngularVelocity.Z + factor*(goal.AngularVelocity.Z-start.AngularVelocity.Z),
		}
		out.Orientation = start.Orientation
	}
}

// evaluateRampDown scales the starting angular velocity toward
// rampDownFactor times itself while blending the orientation to rest at the
// goal. The factor runs 1 -> 0, so the blend fraction is its complement and
// the velocity scale ends at the configured fraction, not at zero.
func (r *SoftRamp) evaluateRampDown(out *trajectory.CartesianGoal, sampleTime, t, factor float64) {
	out.Orientation = spatialmath.Slerp(
		r.start.Cartesian.Orientation, r.goal.Cartesian.Orientation, 1-factor)

	if !r.startAngVel.IsZero() {
		scale := factor + (1-factor)*r.rampDownFactor
		out.AngularVelocity = r.startAngVel.Scale(scale)
		return
	}

	// No angular velocity snapshot in the start message: estimate the rate of
	// the blended orientation by finite difference against the previous call.
	curr := spatialmath.QuatToEulerAngles(out.Orientation)
	if r.prevEuler != nil && sampleTime > 0 {
		out.AngularVelocity = spatialmath.EulerRate(r.prevEuler, curr, sampleTime)
	} else {
		out.AngularVelocity = spatialmath.AngularVelocity{}
	}
	r.prevEuler = curr
}
