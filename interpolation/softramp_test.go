package interpolation

import (
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/guidedmotion/egm/spatialmath"
	"github.com/guidedmotion/egm/trajectory"
)

func TestRampFactorBoundaries(t *testing.T) {
	var down SoftRamp
	down.Update(trajectory.NewPointGoal(0, 0), trajectory.NewPointGoal(0, 0),
		Conditions{Duration: 1, Operation: OperationRampDown})
	test.That(t, down.Factor(0), test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, down.Factor(1), test.ShouldAlmostEqual, 0, 1e-9)

	var up SoftRamp
	up.Update(trajectory.NewPointGoal(0, 0), trajectory.NewPointGoal(0, 0),
		Conditions{Duration: 1, Operation: OperationRampInPosition})
	test.That(t, up.Factor(0), test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, up.Factor(1), test.ShouldAlmostEqual, 1, 1e-9)
}

func TestRampFactorMonotonic(t *testing.T) {
	var down, up SoftRamp
	down.Update(trajectory.NewPointGoal(0, 0), trajectory.NewPointGoal(0, 0),
		Conditions{Duration: 2, Operation: OperationRampDown})
	up.Update(trajectory.NewPointGoal(0, 0), trajectory.NewPointGoal(0, 0),
		Conditions{Duration: 2, Operation: OperationRampInVelocity})

	for tt := 0.1; tt <= 2.0; tt += 0.1 {
		test.That(t, down.Factor(tt), test.ShouldBeLessThan, down.Factor(tt-0.1))
		test.That(t, up.Factor(tt), test.ShouldBeGreaterThan, up.Factor(tt-0.1))
	}
}

func TestRampInPositionJoints(t *testing.T) {
	start := trajectory.NewPointGoal(2, 0)
	start.Robot.Position = []float64{1, -1}
	goal := trajectory.NewPointGoal(2, 0)
	goal.Robot.Position = []float64{3, 1}

	var r SoftRamp
	r.Update(start, goal, Conditions{Duration: 1, Operation: OperationRampInPosition})

	var out trajectory.JointGoal
	r.EvaluateJoints(&out, true, 0.004, 0)
	test.That(t, out.PositionAt(0), test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, out.PositionAt(1), test.ShouldAlmostEqual, -1, 1e-9)

	r.EvaluateJoints(&out, true, 0.004, 0.5)
	test.That(t, out.PositionAt(0), test.ShouldAlmostEqual, 2, 1e-9)
	test.That(t, out.PositionAt(1), test.ShouldAlmostEqual, 0, 1e-9)

	r.EvaluateJoints(&out, true, 0.004, 1)
	test.That(t, out.PositionAt(0), test.ShouldAlmostEqual, 3, 1e-9)
	test.That(t, out.PositionAt(1), test.ShouldAlmostEqual, 1, 1e-9)
}

func TestRampInVelocityJoints(t *testing.T) {
	start := trajectory.NewPointGoal(1, 0)
	start.Robot.Position = []float64{5}
	goal := trajectory.NewPointGoal(1, 0)
	goal.Robot.Velocity = []float64{2}

	var r SoftRamp
	r.Update(start, goal, Conditions{Duration: 1, Operation: OperationRampInVelocity})

	var out trajectory.JointGoal
	r.EvaluateJoints(&out, true, 0.004, 0)
	test.That(t, out.VelocityAt(0), test.ShouldAlmostEqual, 0, 1e-9)

	r.EvaluateJoints(&out, true, 0.004, 1)
	test.That(t, out.VelocityAt(0), test.ShouldAlmostEqual, 2, 1e-9)
	// position holds at the frozen start while the velocity ramps in
	test.That(t, out.PositionAt(0), test.ShouldAlmostEqual, 5, 1e-9)
}

func TestRampInExternalJoints(t *testing.T) {
	start := trajectory.NewPointGoal(0, 1)
	goal := trajectory.NewPointGoal(0, 1)
	goal.External.Position = []float64{4}

	var r SoftRamp
	r.Update(start, goal, Conditions{Duration: 2, Operation: OperationRampInPosition})

	var out trajectory.JointGoal
	r.EvaluateJoints(&out, false, 0.004, 1)
	test.That(t, out.PositionAt(0), test.ShouldAlmostEqual, 2, 1e-9)
}

func TestRampDownAngularVelocity(t *testing.T) {
	start := trajectory.NewPointGoal(0, 0)
	start.Cartesian.AngularVelocity = spatialmath.AngularVelocity{X: 1, Y: -2, Z: 4}
	goal := trajectory.NewPointGoal(0, 0)

	var r SoftRamp
	r.Update(start, goal, Conditions{
		Duration:       1,
		Operation:      OperationRampDown,
		RampDownFactor: 0.5,
	})

	var out trajectory.CartesianGoal
	r.EvaluateCartesian(&out, 0.004, 0)
	test.That(t, out.AngularVelocity.X, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, out.AngularVelocity.Z, test.ShouldAlmostEqual, 4, 1e-9)

	// at the end of the session the angular velocity is the configured
	// fraction of its starting value, not zero
	r.EvaluateCartesian(&out, 0.004, 1)
	test.That(t, out.AngularVelocity.X, test.ShouldAlmostEqual, 0.5, 1e-9)
	test.That(t, out.AngularVelocity.Y, test.ShouldAlmostEqual, -1, 1e-9)
	test.That(t, out.AngularVelocity.Z, test.ShouldAlmostEqual, 2, 1e-9)
}

func TestRampDownOrientationBlend(t *testing.T) {
	start := trajectory.NewPointGoal(0, 0)
	start.Cartesian.AngularVelocity = spatialmath.AngularVelocity{Z: 1}
	goal := trajectory.NewPointGoal(0, 0)
	goal.Cartesian.Orientation = quat.Number{Real: math.Sqrt2 / 2, Kmag: math.Sqrt2 / 2}

	var r SoftRamp
	r.Update(start, goal, Conditions{Duration: 1, Operation: OperationRampDown})

	var out trajectory.CartesianGoal
	r.EvaluateCartesian(&out, 0.004, 0)
	test.That(t, spatialmath.QuaternionAlmostEqual(out.Orientation, identity, 1e-9), test.ShouldBeTrue)

	r.EvaluateCartesian(&out, 0.004, 1)
	test.That(t, spatialmath.QuaternionAlmostEqual(
		out.Orientation, goal.Cartesian.Orientation, 1e-9), test.ShouldBeTrue)
}

func TestRampDownFiniteDifference(t *testing.T) {
	// without an angular velocity snapshot the rate comes from finite
	// differencing the blended orientation across calls
	start := trajectory.NewPointGoal(0, 0)
	goal := trajectory.NewPointGoal(0, 0)
	goal.Cartesian.Orientation = quat.Number{Real: math.Cos(0.5), Kmag: math.Sin(0.5)}

	var r SoftRamp
	r.Update(start, goal, Conditions{Duration: 1, Operation: OperationRampDown})

	var out trajectory.CartesianGoal
	// first call has no previous sample to difference against
	r.EvaluateCartesian(&out, 0.004, 0)
	test.That(t, out.AngularVelocity.IsZero(), test.ShouldBeTrue)

	r.EvaluateCartesian(&out, 0.004, 0.5)
	test.That(t, out.AngularVelocity.Z, test.ShouldBeGreaterThan, 0)

	// a repeated identical-t call sees a zero orientation change, so the
	// velocity-derived term collapses to zero while all else is unchanged
	prevOrientation := out.Orientation
	r.EvaluateCartesian(&out, 0.004, 0.5)
	test.That(t, out.Orientation, test.ShouldResemble, prevOrientation)
	test.That(t, out.AngularVelocity.IsZero(), test.ShouldBeTrue)
}

func TestRampInPositionCartesian(t *testing.T) {
	start := trajectory.NewPointGoal(0, 0)
	start.Cartesian.Position.X = 1
	goal := trajectory.NewPointGoal(0, 0)
	goal.Cartesian.Position.X = 3
	goal.Cartesian.Orientation = quat.Number{Real: math.Sqrt2 / 2, Kmag: math.Sqrt2 / 2}

	var r SoftRamp
	r.Update(start, goal, Conditions{Duration: 2, Operation: OperationRampInPosition})

	var out trajectory.CartesianGoal
	r.EvaluateCartesian(&out, 0.004, 1)
	test.That(t, out.Position.X, test.ShouldAlmostEqual, 2, 1e-9)

	// the orientation follows the cosine ramp factor, so halfway through it
	// is the slerp midpoint: 45 degrees about z
	expect := quat.Number{Real: math.Cos(math.Pi / 8), Kmag: math.Sin(math.Pi / 8)}
	test.That(t, spatialmath.QuaternionAlmostEqual(out.Orientation, expect, 1e-9), test.ShouldBeTrue)
}

func TestUpdateSnapshotsState(t *testing.T) {
	// the ramp owns deep copies; later caller mutation must not leak in
	start := trajectory.NewPointGoal(1, 0)
	start.Robot.Position = []float64{1}
	goal := trajectory.NewPointGoal(1, 0)
	goal.Robot.Position = []float64{2}

	var r SoftRamp
	r.Update(start, goal, Conditions{Duration: 1, Operation: OperationRampInPosition})
	start.Robot.Position[0] = 100
	goal.Robot.Position[0] = 100

	var out trajectory.JointGoal
	r.EvaluateJoints(&out, true, 0.004, 1)
	test.That(t, out.PositionAt(0), test.ShouldAlmostEqual, 2, 1e-9)
}
