// Package motion runs the externally guided motion channel: a fixed-period
// loop that steps the interpolation engine through each session and hands the
// interpolated states to the controller-facing sink.
package motion

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Config configures a motion channel.
type Config struct {
	// SamplePeriod is the fixed control tick period.
	SamplePeriod time.Duration `json:"sample_period"`
	// RobotJoints is the robot joint block size carried by the channel's outputs.
	RobotJoints int `json:"robot_joints"`
	// ExternalJoints is the external joint block size carried by the channel's outputs.
	ExternalJoints int `json:"external_joints"`

	// Clock is used to pace the loop; tests substitute a mock. Defaults to
	// the wall clock.
	Clock clock.Clock `json:"-"`
}

// Validate checks the channel configuration, reporting every violation at once.
func (c *Config) Validate() error {
	var err error
	if c.SamplePeriod <= 0 {
		err = multierr.Append(err, errors.Errorf("sample period must be positive, got %v", c.SamplePeriod))
	}
	if c.RobotJoints < 0 || c.ExternalJoints < 0 {
		err = multierr.Append(err, errors.New("joint block sizes cannot be negative"))
	}
	return err
}
