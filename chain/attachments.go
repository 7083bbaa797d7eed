package chain

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/skin"
)

// Cap is an extra cross-section placed along a segment's forward axis.
type Cap struct {
	Offset  float64
	RadiusX float64
	RadiusY float64
}

// Eyes positions the eyes relative to the head middle cap. Right is mirrored
// for the left eye.
type Eyes struct {
	Forward float64
	Right   float64
	Up      float64
	Radius  float64
}

// Profile shapes the head and tail.
type Profile struct {
	Tip    Cap // ahead of the head
	Middle Cap // ahead of the head, widened
	Tail   Cap // behind the last segment
	Eyes   Eyes
}

// DefaultProfile returns the stock head and tail shape.
func DefaultProfile() Profile {
	return Profile{
		Tip:    Cap{Offset: 0.9, RadiusX: 0.01, RadiusY: 0.01},
		Middle: Cap{Offset: 0.35, RadiusX: 0.35, RadiusY: 0.25},
		Tail:   Cap{Offset: 1.0, RadiusX: 0.01, RadiusY: 0.01},
		Eyes:   Eyes{Forward: 0.1, Right: 0.25, Up: 0.1, Radius: 0.05},
	}
}

// Attachments are the world positions of the decorative parts for the
// current frame.
type Attachments struct {
	Tip      r3.Vec
	Middle   r3.Vec
	LeftEye  r3.Vec
	RightEye r3.Vec
	Tail     r3.Vec
}

// Attachments evaluates the decorative parts from the head and last poses.
func (c *Chain) Attachments() Attachments {
	head := c.Head().Pose
	last := c.Last().Pose
	p := c.profile

	eyeFwd := p.Middle.Offset + p.Eyes.Forward
	return Attachments{
		Tip:      head.Offset(p.Tip.Offset, 0, 0),
		Middle:   head.Offset(p.Middle.Offset, 0, 0),
		RightEye: head.Offset(eyeFwd, p.Eyes.Right, p.Eyes.Up),
		LeftEye:  head.Offset(eyeFwd, -p.Eyes.Right, p.Eyes.Up),
		Tail:     last.Offset(-p.Tail.Offset, 0, 0),
	}
}

// EyeRadius returns the radius the eyes are drawn with.
func (c *Chain) EyeRadius() float64 { return c.profile.Eyes.Radius }

// HeadSpans is the number of skin spans between the tip and the head section.
const HeadSpans = 2

// Sections appends the skin input to dst, ordered tip, middle, head,
// followers, tail, and returns the extended slice.
func (c *Chain) Sections(dst []skin.Section) []skin.Section {
	a := c.Attachments()
	head := c.Head().Pose
	last := c.Last().Pose
	p := c.profile

	dst = append(dst,
		skin.Section{Position: a.Tip, Rotation: head.Rotation, RadiusX: p.Tip.RadiusX, RadiusY: p.Tip.RadiusY},
		skin.Section{Position: a.Middle, Rotation: head.Rotation, RadiusX: p.Middle.RadiusX, RadiusY: p.Middle.RadiusY},
	)
	for i := range c.segments {
		s := &c.segments[i]
		dst = append(dst, skin.Section{
			Position: s.Pose.Position,
			Rotation: s.Pose.Rotation,
			RadiusX:  s.Section.RadiusX,
			RadiusY:  s.Section.RadiusY,
		})
	}
	return append(dst, skin.Section{Position: a.Tail, Rotation: last.Rotation, RadiusX: p.Tail.RadiusX, RadiusY: p.Tail.RadiusY})
}
