package interpolation

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/guidedmotion/egm/spatialmath"
	"github.com/guidedmotion/egm/trajectory"
)

// Slerp interpolates between two unit quaternions over a session's duration
// at constant angular rate. The angle between the quaternions is computed
// once per Update so each Evaluate costs the same regardless of input.
type Slerp struct {
	duration  float64
	omega     float64
	q0        quat.Number
	q1        quat.Number
	useLinear bool
}

// Update binds the session's boundary quaternions and precomputes the angle
// between them. The goal quaternion is flipped if needed so interpolation
// takes the short path. Pairs closer than the slerp dot threshold switch to a
// normalized linear blend, since sin(omega) would vanish.
func (s *Slerp) Update(start, goal quat.Number, c Conditions) {
	s.duration = c.Duration
	s.q0 = spatialmath.Normalize(start)
	s.q1 = spatialmath.Normalize(goal)

	d := spatialmath.Dot(s.q0, s.q1)
	if d < 0 {
		s.q1 = spatialmath.Flip(s.q1)
		d = -d
	}

	if d > spatialmath.SlerpDotThreshold {
		s.useLinear = true
		s.omega = 0
		return
	}
	s.useLinear = false
	s.omega = math.Acos(d)
}

// Evaluate returns the interpolated unit quaternion at time t [s]. The caller
// is responsible for keeping t within [0, duration].
func (s *Slerp) Evaluate(t float64) quat.Number {
	f := t / s.duration
	if s.useLinear {
		return spatialmath.Lerp(s.q0, s.q1, f)
	}
	sinOmega := math.Sin(s.omega)
	a := math.Sin((1-f)*s.omega) / sinOmega
	b := math.Sin(f*s.omega) / sinOmega
	return quat.Add(quat.Scale(a, s.q0), quat.Scale(b, s.q1))
}

// evaluateCartesian writes the interpolated orientation at time t into the output.
func (s *Slerp) evaluateCartesian(out *trajectory.CartesianGoal, t float64) {
	out.Orientation = s.Evaluate(t)
}
