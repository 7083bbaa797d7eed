package telemetry

import (
	"fmt"
	"log/slog"
	"time"
)

// Phase identifies one stage of a frame update.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseLocomotion
	PhaseSkin
	PhaseTelemetry
	PhaseCount
)

var phaseNames = [PhaseCount]string{
	PhaseInput:      "input",
	PhaseLocomotion: "locomotion",
	PhaseSkin:       "skin",
	PhaseTelemetry:  "telemetry",
}

func (p Phase) String() string {
	if p < 0 || p >= PhaseCount {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Phases lists every phase in update order.
var Phases = [PhaseCount]Phase{PhaseInput, PhaseLocomotion, PhaseSkin, PhaseTelemetry}

// updateSample is the timing of one update.
type updateSample struct {
	total  time.Duration
	phases [PhaseCount]time.Duration
}

// PerfCollector times updates and their phases over a rolling window of the
// most recent updates.
type PerfCollector struct {
	ring   []updateSample
	next   int
	filled int

	current     updateSample
	updateStart time.Time
	phaseStart  time.Time
	phase       Phase
	inPhase     bool

	// Frame timing (windowed mode)
	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over the last window
// updates (for example 120 for two seconds at 60 fps).
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{ring: make([]updateSample, window)}
}

// StartTick begins timing an update.
func (p *PerfCollector) StartTick() {
	p.updateStart = time.Now()
	p.current = updateSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = phase >= 0 && phase < PhaseCount
}

// EndTick closes the running phase and stores the update in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.updateStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// RecordFrame measures the time since the previous call. Call once per
// rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarises the window.
type PerfStats struct {
	Updates   int // updates in the window
	AvgUpdate time.Duration
	MinUpdate time.Duration
	MaxUpdate time.Duration

	PhaseAvg [PhaseCount]time.Duration
	PhasePct [PhaseCount]float64 // share of the average update

	UpdatesPerSecond float64 // throughput if updates ran back to back

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Updates: p.filled, FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phases [PhaseCount]time.Duration
	for i, u := range p.ring[:p.filled] {
		total += u.total
		if i == 0 || u.total < s.MinUpdate {
			s.MinUpdate = u.total
		}
		s.MaxUpdate = max(s.MaxUpdate, u.total)
		for ph, d := range u.phases {
			phases[ph] += d
		}
	}

	n := time.Duration(p.filled)
	s.AvgUpdate = total / n
	for ph := range phases {
		s.PhaseAvg[ph] = phases[ph] / n
		if s.AvgUpdate > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgUpdate) * 100
		}
	}
	if s.AvgUpdate > 0 {
		s.UpdatesPerSecond = float64(time.Second) / float64(s.AvgUpdate)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("updates", s.Updates),
		slog.Int64("avg_update_us", s.AvgUpdate.Microseconds()),
		slog.Int64("max_update_us", s.MaxUpdate.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range Phases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the window via slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Cycle         int     `csv:"cycle"`
	Updates       int     `csv:"updates"`
	AvgUpdateUS   int64   `csv:"avg_update_us"`
	MinUpdateUS   int64   `csv:"min_update_us"`
	MaxUpdateUS   int64   `csv:"max_update_us"`
	UpdatesPerSec float64 `csv:"updates_per_sec"`
	FPS           float64 `csv:"fps"`
	InputPct      float64 `csv:"input_pct"`
	LocomotionPct float64 `csv:"locomotion_pct"`
	SkinPct       float64 `csv:"skin_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the row written at cycle.
func (s PerfStats) ToCSV(cycle int) PerfStatsCSV {
	return PerfStatsCSV{
		Cycle:         cycle,
		Updates:       s.Updates,
		AvgUpdateUS:   s.AvgUpdate.Microseconds(),
		MinUpdateUS:   s.MinUpdate.Microseconds(),
		MaxUpdateUS:   s.MaxUpdate.Microseconds(),
		UpdatesPerSec: s.UpdatesPerSecond,
		FPS:           s.FPS,
		InputPct:      s.PhasePct[PhaseInput],
		LocomotionPct: s.PhasePct[PhaseLocomotion],
		SkinPct:       s.PhasePct[PhaseSkin],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
