// Package chain owns the snake's segments: the head and its followers, stored
// as entities in an ECS world, plus the decorative attachments derived from
// their poses.
package chain

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/components"
	"github.com/pthm-cable/gridsnake/config"
	"github.com/pthm-cable/gridsnake/geom"
)

// ErrTooShort is returned when a chain would have no followers.
var ErrTooShort = errors.New("chain needs at least one follower")

// Settings configures a new chain.
type Settings struct {
	Lattice    geom.Lattice
	Followers  int     // segments behind the head
	BodyRadius float64 // cross-section radius of the head and followers
	Profile    Profile
}

// FromConfig builds chain settings from the loaded configuration.
func FromConfig(cfg *config.Config) Settings {
	h := cfg.Head
	return Settings{
		Lattice:    cfg.Derived.Lattice,
		Followers:  cfg.Snake.InitialLength,
		BodyRadius: cfg.Snake.BodyRadius,
		Profile: Profile{
			Tip:    Cap(h.Tip),
			Middle: Cap(h.Middle),
			Tail:   Cap(h.Tail),
			Eyes:   Eyes(h.Eyes),
		},
	}
}

// Segment is a resolved view of one link's components. The pointers stay
// valid for the chain's lifetime because segments are only spawned in New.
type Segment struct {
	Index   int // 0 is the head
	Entity  ecs.Entity
	Pose    *components.Pose
	Motion  *components.Motion
	Turn    *components.Turn
	Section *components.Section
}

// Chain is an ordered head-first sequence of segments with a fixed length.
type Chain struct {
	world    *ecs.World
	mapper   *ecs.Map4[components.Pose, components.Motion, components.Turn, components.Section]
	lattice  geom.Lattice
	profile  Profile
	segments []Segment
}

// New spawns the head at the origin and the followers behind it along -Z,
// one step apart, all heading +Z.
func New(s Settings) (*Chain, error) {
	if s.Followers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrTooShort, s.Followers)
	}
	if !s.Lattice.Valid() {
		return nil, fmt.Errorf("chain: invalid lattice %+v", s.Lattice)
	}

	world := ecs.NewWorld()
	c := &Chain{
		world: world,
		mapper: ecs.NewMap4[
			components.Pose,
			components.Motion,
			components.Turn,
			components.Section,
		](world),
		lattice: s.Lattice,
		profile: s.Profile,
	}

	step := s.Lattice.Step()
	entities := make([]ecs.Entity, s.Followers+1)
	for i := range entities {
		pos := r3.Vec{Z: -step * float64(i)}
		pose := components.NewPose(pos)
		motion := components.NewMotion(pos, geom.Forward)
		turn := components.Turn{}
		section := components.Uniform(s.BodyRadius)
		entities[i] = c.mapper.NewEntity(&pose, &motion, &turn, &section)
	}

	// Resolve views only once every entity exists; spawning may move storage.
	c.segments = make([]Segment, len(entities))
	for i, e := range entities {
		pose, motion, turn, section := c.mapper.Get(e)
		c.segments[i] = Segment{
			Index:   i,
			Entity:  e,
			Pose:    pose,
			Motion:  motion,
			Turn:    turn,
			Section: section,
		}
	}

	return c, nil
}

// Lattice returns the grid the chain moves on.
func (c *Chain) Lattice() geom.Lattice { return c.lattice }

// Len returns the number of segments including the head.
func (c *Chain) Len() int { return len(c.segments) }

// Head returns the head segment.
func (c *Chain) Head() *Segment { return &c.segments[0] }

// Follower returns the i-th follower, 0 being directly behind the head.
func (c *Chain) Follower(i int) *Segment { return &c.segments[i+1] }

// Followers returns the followers front to back. The slice aliases the chain.
func (c *Chain) Followers() []Segment { return c.segments[1:] }

// Last returns the tail-most segment.
func (c *Chain) Last() *Segment { return &c.segments[len(c.segments)-1] }

// Segment returns segment i, 0 being the head.
func (c *Chain) Segment(i int) *Segment { return &c.segments[i] }
