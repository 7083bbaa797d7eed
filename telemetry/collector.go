package telemetry

// Collector accumulates locomotion events within windows of move-cycles and
// produces WindowStats.
type Collector struct {
	windowCycles int

	// Current window tracking
	windowStartCycle int
	simTime          float64

	// Event counters for current window
	turnsRequested int
	turnsIgnored   int
	cornersBegun   int
	degenerate     int
	pathLength     float64
	speeds         []float64
}

// NewCollector creates a new stats collector that flushes every windowCycles
// move-cycles.
func NewCollector(windowCycles int) *Collector {
	if windowCycles < 1 {
		windowCycles = 1
	}
	return &Collector{windowCycles: windowCycles}
}

// RecordTurn records a turn request and whether the controller accepted it.
func (c *Collector) RecordTurn(accepted bool) {
	c.turnsRequested++
	if !accepted {
		c.turnsIgnored++
	}
}

// RecordCycle records one completed move-cycle.
// corners: followers that started a new arc this cycle
// distance: distance the head covered
// duration: simulated seconds the cycle took
func (c *Collector) RecordCycle(corners int, distance, duration, speed float64) {
	c.cornersBegun += corners
	c.pathLength += distance
	c.simTime += duration
	c.speeds = append(c.speeds, speed)
}

// RecordDegenerate records corners that fell back to straight motion.
func (c *Collector) RecordDegenerate(n int) {
	c.degenerate += n
}

// ShouldFlush returns true if enough cycles have passed to flush the window.
func (c *Collector) ShouldFlush(currentCycle int) bool {
	return currentCycle-c.windowStartCycle >= c.windowCycles
}

// Flush produces a WindowStats and resets counters for the next window.
// segments is the chain length; headX and headZ the head's resting position.
func (c *Collector) Flush(currentCycle, segments int, headX, headZ float64) WindowStats {
	speed := SummarizeSpeeds(c.speeds)

	var ignoreRate float64
	if c.turnsRequested > 0 {
		ignoreRate = float64(c.turnsIgnored) / float64(c.turnsRequested)
	}

	stats := WindowStats{
		WindowStartCycle: c.windowStartCycle,
		WindowEndCycle:   currentCycle,
		SimTimeSec:       c.simTime,

		Segments: segments,
		HeadX:    headX,
		HeadZ:    headZ,

		TurnsRequested: c.turnsRequested,
		TurnsIgnored:   c.turnsIgnored,
		IgnoreRate:     ignoreRate,
		CornersBegun:   c.cornersBegun,
		Degenerate:     c.degenerate,
		PathLength:     c.pathLength,

		SpeedMean: speed.Mean,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,
	}

	// Reset for next window; sim time keeps accumulating.
	c.windowStartCycle = currentCycle
	c.turnsRequested = 0
	c.turnsIgnored = 0
	c.cornersBegun = 0
	c.degenerate = 0
	c.pathLength = 0
	c.speeds = c.speeds[:0]

	return stats
}

// WindowCycles returns the number of cycles per window.
func (c *Collector) WindowCycles() int {
	return c.windowCycles
}
