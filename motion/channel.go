package motion

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/guidedmotion/egm/interpolation"
	"github.com/guidedmotion/egm/trajectory"
	"github.com/guidedmotion/egm/utils"
)

// Sink receives one interpolated state per control tick.
type Sink func(*trajectory.PointGoal)

// Channel drives one interpolator at a fixed period. A supervisory caller
// streams goals in via SetGoal; the channel fills in the motion between them
// and delivers an interpolated state to the sink every tick. All interpolator
// access is serialized by the channel's mutex, since the engine itself makes
// no concurrency guarantee.
type Channel struct {
	mu      sync.Mutex
	cfg     Config
	logger  golog.Logger
	clock   clock.Clock
	interp  *interpolation.Interpolator
	out     *trajectory.PointGoal
	elapsed float64
	active  bool

	cancel                  func()
	activeBackgroundWorkers sync.WaitGroup
	started                 bool
}

// NewChannel returns a motion channel for the given configuration.
func NewChannel(cfg Config, logger golog.Logger) (*Channel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Channel{
		cfg:    cfg,
		logger: logger,
		clock:  clk,
		interp: interpolation.NewInterpolator(),
		out:    trajectory.NewPointGoal(cfg.RobotJoints, cfg.ExternalJoints),
	}, nil
}

// SetGoal binds a new interpolation session from the robot's current state to
// the given goal. It may be called at any time, including mid-session; the
// engine replaces all per-channel fits atomically with respect to the tick
// loop. A rejected update leaves the previous session running.
func (c *Channel) SetGoal(start, goal *trajectory.PointGoal, conditions interpolation.Conditions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.interp.Update(start, goal, conditions); err != nil {
		return errors.Wrap(err, "rejecting goal")
	}
	c.elapsed = 0
	c.active = true
	c.logger.Debugw("bound new interpolation session",
		"duration", conditions.Duration,
		"operation", conditions.Operation,
		"mode", conditions.Mode)
	return nil
}

// Start launches the tick loop. The sink is invoked from the loop goroutine
// once per period while a session is active.
func (c *Channel) Start(ctx context.Context, sink Sink) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return errors.New("motion channel already started")
	}
	c.started = true

	cancelCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	ticker := c.clock.Ticker(c.cfg.SamplePeriod)

	c.activeBackgroundWorkers.Add(1)
	goutils.PanicCapturingGo(func() {
		defer c.activeBackgroundWorkers.Done()
		defer ticker.Stop()
		for {
			select {
			case <-cancelCtx.Done():
				return
			case <-ticker.C:
				c.tick(sink)
			}
		}
	})
	return nil
}

// tick advances the active session by one sample period and delivers the
// interpolated state. The engine itself never clamps t; the channel owns the
// clamp to the session duration, after which the session is complete and the
// final state is held.
func (c *Channel) tick(sink Sink) {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}

	period := c.cfg.SamplePeriod.Seconds()
	c.elapsed += period
	duration := c.interp.Duration()
	t := utils.Clamp(c.elapsed, 0, duration)

	c.interp.Evaluate(c.out, period, t)
	done := c.elapsed >= duration
	if done {
		c.active = false
	}
	out := c.out.Clone()
	c.mu.Unlock()

	sink(&out)
	if done {
		c.logger.Debugw("interpolation session complete", "duration", duration)
	}
}

// Active reports whether an interpolation session is currently in progress.
func (c *Channel) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Close stops the tick loop and waits for it to exit.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
	c.activeBackgroundWorkers.Wait()
}
