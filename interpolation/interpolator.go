package interpolation

import (
	"github.com/guidedmotion/egm/trajectory"
)

// MaxSplines is the fixed spline channel capacity: up to 6 robot joints plus
// up to 6 external joints, with the first 3 slots reused for the Cartesian
// axes in pose mode.
const MaxSplines = 12

// Interpolator owns one spline polynomial per scalar channel, one slerp and
// one soft ramp, and dispatches between them per the session's operation.
// It is a deterministic function of its last Update call and the time passed
// to Evaluate, meant to be driven from a single real-time control thread; it
// performs no locking, I/O or per-call allocation of its own.
type Interpolator struct {
	conditions  Conditions
	robotDOF    int
	externalDOF int
	// offset is the index of the first external joint channel in splines:
	// after the robot joints in joint mode, after X/Y/Z in pose mode.
	offset   int
	splines  [MaxSplines]SplinePolynomial
	slerp    Slerp
	softRamp SoftRamp
}

// NewInterpolator returns an interpolator ready for its first Update.
func NewInterpolator() *Interpolator {
	return &Interpolator{}
}

// Update reconfigures the interpolator for a new session, e.g. after a new
// goal has been chosen. All per-channel spline fits, the slerp and the soft
// ramp are replaced. Invalid conditions or mismatched joint blocks are
// rejected outright and leave the previous session untouched.
func (ip *Interpolator) Update(start, goal *trajectory.PointGoal, c Conditions) error {
	if err := c.Validate(); err != nil {
		return err
	}

	robotDOF := len(start.Robot.Position)
	externalDOF := len(start.External.Position)
	if len(goal.Robot.Position) != robotDOF {
		return NewDOFMismatchError(robotDOF, len(goal.Robot.Position))
	}
	if len(goal.External.Position) != externalDOF {
		return NewDOFMismatchError(externalDOF, len(goal.External.Position))
	}

	offset := robotDOF
	if c.Mode == ModePose {
		offset = 3
	}
	if offset+externalDOF > MaxSplines || robotDOF > trajectory.MaxRobotJoints {
		return NewTooManyChannelsError(offset + externalDOF)
	}

	ip.conditions = c
	ip.robotDOF = robotDOF
	ip.externalDOF = externalDOF
	ip.offset = offset

	// The splines are always fitted: normal operation uses them directly and
	// the other operations use them for any channel the ramp does not override.
	sc := NewSplineConditions(c)
	if c.Mode == ModeJoint {
		for i := 0; i < robotDOF; i++ {
			sc.SetJointConditions(i, &start.Robot, &goal.Robot)
			ip.splines[i].Fit(sc)
		}
	} else {
		for axis := AxisX; axis <= AxisZ; axis++ {
			sc.SetCartesianConditions(axis, &start.Cartesian, &goal.Cartesian)
			ip.splines[int(axis)].Fit(sc)
		}
	}
	for i := 0; i < externalDOF; i++ {
		sc.SetJointConditions(i, &start.External, &goal.External)
		ip.splines[offset+i].Fit(sc)
	}

	ip.slerp.Update(start.Cartesian.Orientation, goal.Cartesian.Orientation, c)
	ip.softRamp.Update(start, goal, c)
	return nil
}

// Evaluate computes the interpolated state at time t [s] into the output.
// The sample time [s] is only consulted by the ramp down finite difference.
// The caller must keep t within [0, duration]; values outside the fitted
// interval extrapolate numerically and are not clamped here.
func (ip *Interpolator) Evaluate(out *trajectory.PointGoal, sampleTime, t float64) {
	switch ip.conditions.Operation {
	case OperationNormal, OperationRampDown:
		if ip.conditions.Mode == ModeJoint {
			for i := 0; i < ip.robotDOF; i++ {
				ip.splines[i].evaluateJoint(&out.Robot, i, t)
			}
		} else {
			for axis := AxisX; axis <= AxisZ; axis++ {
				ip.splines[int(axis)].evaluateCartesian(&out.Cartesian, axis, t)
			}
			if ip.conditions.Operation == OperationNormal {
				ip.slerp.evaluateCartesian(&out.Cartesian, t)
			} else {
				ip.softRamp.EvaluateCartesian(&out.Cartesian, sampleTime, t)
			}
		}
		for i := 0; i < ip.externalDOF; i++ {
			ip.splines[ip.offset+i].evaluateJoint(&out.External, i, t)
		}

	case OperationRampInPosition, OperationRampInVelocity:
		if ip.conditions.Mode == ModeJoint {
			ip.softRamp.EvaluateJoints(&out.Robot, true, sampleTime, t)
		} else {
			ip.softRamp.EvaluateCartesian(&out.Cartesian, sampleTime, t)
		}
		ip.softRamp.EvaluateJoints(&out.External, false, sampleTime, t)
	}
}

// Duration returns the valid duration [s] for the current interpolation session.
func (ip *Interpolator) Duration() float64 {
	return ip.conditions.Duration
}
