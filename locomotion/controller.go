package locomotion

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/chain"
	"github.com/pthm-cable/gridsnake/config"
	"github.com/pthm-cable/gridsnake/geom"
)

// State is the phase of the current move-cycle.
type State uint8

const (
	StateIdle      State = iota // between cycles
	StateAdvancing              // interpolating toward the cycle targets
	StateSnapping               // forcing every segment onto its target
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAdvancing:
		return "advancing"
	case StateSnapping:
		return "snapping"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// TurnType is a turn request relative to the current heading.
type TurnType int

const (
	TurnLeft TurnType = iota
	TurnRight
)

func (t TurnType) String() string {
	switch t {
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return fmt.Sprintf("TurnType(%d)", int(t))
	}
}

// IntentKind enumerates the abstract inputs the controller accepts.
type IntentKind int

const (
	IntentTurnLeft IntentKind = iota
	IntentTurnRight
	IntentSpeed
	IntentToggleFreeze
)

// Intent is one input from the player or the autopilot.
type Intent struct {
	Kind  IntentKind
	Delta float64 // speed change, IntentSpeed only
}

var (
	// ErrInvalidTurn is returned for a TurnType outside TurnLeft and TurnRight.
	ErrInvalidTurn = errors.New("invalid turn type")

	// ErrInvalidIntent is returned for an unknown IntentKind.
	ErrInvalidIntent = errors.New("invalid intent")
)

// Options configures a controller.
type Options struct {
	Speed        float64 // world units per second
	MinSpeed     float64
	MaxSpeed     float64
	HeadTurnRate float64 // head orientation smoothing, multiplied by speed
	Logger       *slog.Logger
}

// OptionsFromConfig builds controller options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Speed:        cfg.Snake.MoveSpeed,
		MinSpeed:     cfg.Snake.MinSpeed,
		MaxSpeed:     cfg.Snake.MaxSpeed,
		HeadTurnRate: cfg.Snake.HeadTurnRate,
	}
}

// Controller drives a chain one move-cycle at a time. It is advanced by Tick
// from a single goroutine; nothing runs in the background.
type Controller struct {
	chain   *chain.Chain
	body    *Body
	lattice geom.Lattice
	logger  *slog.Logger

	state    State
	elapsed  float64
	duration float64
	cycle    int

	speed    float64
	minSpeed float64
	maxSpeed float64
	turnRate float64
	paused   bool

	// One turn in flight: set on request, cleared when the cycle that
	// committed it ends.
	turnPending   bool
	turnCommitted bool
}

// NewController creates a controller for c at rest.
func NewController(c *chain.Chain, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxSpeed < opts.MinSpeed {
		opts.MaxSpeed = opts.MinSpeed
	}
	ctrl := &Controller{
		chain:    c,
		body:     NewBody(c, logger),
		lattice:  c.Lattice(),
		logger:   logger,
		minSpeed: opts.MinSpeed,
		maxSpeed: opts.MaxSpeed,
		turnRate: opts.HeadTurnRate,
	}
	ctrl.speed = ctrl.clampSpeed(opts.Speed)
	return ctrl
}

// Chain returns the driven chain.
func (c *Controller) Chain() *chain.Chain { return c.chain }

// Body returns the follower driver.
func (c *Controller) Body() *Body { return c.body }

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Cycle returns the number of completed move-cycles.
func (c *Controller) Cycle() int { return c.cycle }

// Speed returns the current speed.
func (c *Controller) Speed() float64 { return c.speed }

// Paused reports whether time is frozen.
func (c *Controller) Paused() bool { return c.paused }

// TurnPending reports whether a turn is requested or in flight.
func (c *Controller) TurnPending() bool { return c.turnPending }

// Progress returns the fraction of the current cycle already covered.
func (c *Controller) Progress() float64 {
	if c.state != StateAdvancing || c.duration <= 0 {
		return 0
	}
	return math.Min(c.elapsed/c.duration, 1)
}

// Tick advances simulated time by dt seconds and reports whether a move-cycle
// completed during the call. A paused controller does nothing.
func (c *Controller) Tick(dt float64) bool {
	if c.paused {
		return false
	}
	if c.state == StateIdle {
		c.beginCycle()
	}

	c.smoothHead(dt)

	c.elapsed += dt
	if c.elapsed >= c.duration {
		c.snap()
		return true
	}
	c.apply(c.elapsed / c.duration)
	return false
}

// Turn requests a turn at the next grid point. It is ignored while another
// turn is pending or in flight.
func (c *Controller) Turn(t TurnType) error {
	var sign float64
	switch t {
	case TurnLeft:
		sign = -1
	case TurnRight:
		sign = 1
	default:
		return fmt.Errorf("%w: %d", ErrInvalidTurn, int(t))
	}

	if c.turnPending {
		c.logger.Debug("turn ignored, one already in flight", "turn", t, "cycle", c.cycle)
		return nil
	}

	head := c.chain.Head()
	rot := r3.NewRotation(sign*c.lattice.TurnAngle(), geom.Up)
	dir := c.nearestDirection(rot.Rotate(head.Motion.Direction()))
	head.Motion.SetPending(dir)
	c.turnPending = true
	return nil
}

// ChangeSpeed adjusts the speed by delta within the configured range and
// returns the new speed. The cycle in progress keeps its duration.
func (c *Controller) ChangeSpeed(delta float64) float64 {
	c.speed = c.clampSpeed(c.speed + delta)
	return c.speed
}

// ToggleFreeze pauses or resumes time without touching the cycle in progress.
func (c *Controller) ToggleFreeze() bool {
	c.paused = !c.paused
	return c.paused
}

// Apply dispatches an intent.
func (c *Controller) Apply(in Intent) error {
	switch in.Kind {
	case IntentTurnLeft:
		return c.Turn(TurnLeft)
	case IntentTurnRight:
		return c.Turn(TurnRight)
	case IntentSpeed:
		c.ChangeSpeed(in.Delta)
	case IntentToggleFreeze:
		c.ToggleFreeze()
	default:
		return fmt.Errorf("%w: %d", ErrInvalidIntent, int(in.Kind))
	}
	return nil
}

// beginCycle plans the head, then the followers behind it.
func (c *Controller) beginCycle() {
	head := c.chain.Head()
	start := c.lattice.Snap(head.Pose.Position)

	before := head.Motion.Direction()
	if c.turnPending && !c.turnCommitted && head.Motion.CommitPending(c.lattice.OnGrid(start)) {
		c.turnCommitted = head.Motion.Direction() != before
		if !c.turnCommitted {
			// The request resolved to the current heading; nothing to wait for.
			c.turnPending = false
		}
	}

	dir := head.Motion.Direction()
	step := c.lattice.Step()
	target := c.lattice.Snap(r3.Add(start, r3.Scale(step, dir)))
	head.Motion.Plan(start, target)

	c.body.OnCycleStart()

	c.duration = step / c.speed
	c.elapsed = 0
	c.state = StateAdvancing
}

// apply moves every segment to fraction t of the cycle.
func (c *Controller) apply(t float64) {
	head := c.chain.Head()
	head.Pose.Position = geom.Lerp(head.Motion.Start(), head.Motion.Target(), t)
	c.body.OnCycleTick(t)
}

// snap ends the cycle with every segment exactly on its target.
func (c *Controller) snap() {
	c.state = StateSnapping

	head := c.chain.Head()
	head.Pose.Position = c.lattice.Snap(head.Motion.Target())
	head.Motion.Settle()
	c.body.OnCycleEnd()

	if c.turnCommitted {
		c.turnCommitted = false
		c.turnPending = false
	}
	c.cycle++
	c.elapsed = 0
	c.state = StateIdle
}

// smoothHead eases the head orientation toward its heading.
func (c *Controller) smoothHead(dt float64) {
	head := c.chain.Head()
	want, ok := geom.LookRotation(head.Motion.Direction())
	if !ok {
		return
	}
	f := math.Min(1, dt*c.speed*c.turnRate)
	if f <= 0 {
		return
	}
	head.Pose.Rotation = geom.SlerpRotation(head.Pose.Rotation, want, f)
}

// nearestDirection snaps dir to the closest lattice heading so repeated turns
// do not accumulate rounding error.
func (c *Controller) nearestDirection(dir r3.Vec) r3.Vec {
	best, bestDot := dir, math.Inf(-1)
	for _, d := range c.lattice.Directions() {
		if dot := r3.Dot(d, dir); dot > bestDot {
			best, bestDot = d, dot
		}
	}
	return best
}

func (c *Controller) clampSpeed(v float64) float64 {
	return math.Max(c.minSpeed, math.Min(c.maxSpeed, v))
}
