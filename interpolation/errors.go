package interpolation

import "github.com/pkg/errors"

// NewInvalidDurationError returns an error indicating a non-positive session duration.
func NewInvalidDurationError(duration float64) error {
	return errors.Errorf("session duration must be positive, got %f", duration)
}

// NewInvalidRampDownFactorError returns an error indicating a ramp down factor outside [0, 1].
func NewInvalidRampDownFactorError(factor float64) error {
	return errors.Errorf("ramp down factor must be in [0, 1], got %f", factor)
}

// NewDOFMismatchError returns an error indicating start and goal carry different joint counts.
func NewDOFMismatchError(startDOF, goalDOF int) error {
	return errors.Errorf("start has %d joints but goal has %d", startDOF, goalDOF)
}

// NewTooManyChannelsError returns an error indicating the goals need more scalar
// channels than the engine's fixed spline capacity.
func NewTooManyChannelsError(needed int) error {
	return errors.Errorf("goals need %d scalar channels, engine capacity is %d", needed, MaxSplines)
}
