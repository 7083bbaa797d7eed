package components

// Section holds the cross-section radii used when skinning a segment.
// RadiusX spans the right/left vertices, RadiusY the up/down ones.
type Section struct {
	RadiusX float64
	RadiusY float64
}

// Uniform returns a round section.
func Uniform(radius float64) Section {
	return Section{RadiusX: radius, RadiusY: radius}
}
