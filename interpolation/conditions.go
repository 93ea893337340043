// Package interpolation implements the real-time trajectory interpolation
// engine for an externally guided motion channel. Given a start and a goal
// state plus session conditions, it produces kinematically smooth
// intermediate states at servo-loop rate using boundary-constrained spline
// polynomials, quaternion slerp and cosine soft ramps.
//
// No kinematics are considered, i.e. joint limits can be exceeded; limit
// checking belongs to the surrounding planner.
package interpolation

// Mode selects which state space is active for interpolation.
type Mode int

const (
	// ModeJoint interpolates the robot and external joint blocks.
	ModeJoint Mode = iota
	// ModePose interpolates the Cartesian pose plus the external joint block.
	ModePose
)

// Operation selects the interpolation behavior for one session. The caller
// picks it per Update call; no transitions happen inside the engine.
type Operation int

const (
	// OperationNormal uses spline and slerp interpolation.
	OperationNormal Operation = iota
	// OperationRampDown decelerates toward a fraction of the current velocity.
	OperationRampDown
	// OperationRampInPosition ramps positions in toward a static goal.
	OperationRampInPosition
	// OperationRampInVelocity ramps velocities in toward a static goal.
	OperationRampInVelocity
)

// SplineMethod selects the polynomial degree used for normal operation.
type SplineMethod int

const (
	// SplineQuintic fits position, velocity and acceleration at both ends.
	SplineQuintic SplineMethod = iota
	// SplineSquare fits start position/velocity and goal position.
	SplineSquare
	// SplineLinear fits start and goal position only.
	SplineLinear
)

// Conditions configures one interpolation session. A Conditions value is
// bound wholesale by Update and stays fixed until the next Update.
type Conditions struct {
	// Duration is the length [s] of the interpolation session.
	Duration float64
	// Mode is the active state space.
	Mode Mode
	// Operation is the requested interpolation operation.
	Operation Operation
	// RampDownFactor is the fraction, in [0, 1], of the current velocity to
	// use as the end velocity for ramp down calculations.
	RampDownFactor float64
	// SplineMethod is the spline method to use for normal operation.
	SplineMethod SplineMethod
}

// Validate rejects configurations that would produce plausible-looking but
// physically wrong motion, rather than silently clamping them.
func (c Conditions) Validate() error {
	if c.Duration <= 0 {
		return NewInvalidDurationError(c.Duration)
	}
	if c.RampDownFactor < 0 || c.RampDownFactor > 1 {
		return NewInvalidRampDownFactorError(c.RampDownFactor)
	}
	return nil
}
