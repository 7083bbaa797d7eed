package game

import (
	"fmt"
	"io"
	"time"

	"github.com/pthm-cable/gridsnake/telemetry"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logPerfStats logs the per-phase breakdown of recent updates.
func (g *Game) logPerfStats() {
	stats := g.perf.Stats()
	Logf("=== Perf @ Cycle %d | FPS: %.0f ===", g.ctrl.Cycle(), stats.FPS)
	Logf("Avg update time: %s (min %s, max %s)", stats.AvgUpdate.Round(time.Microsecond),
		stats.MinUpdate.Round(time.Microsecond), stats.MaxUpdate.Round(time.Microsecond))

	for _, phase := range telemetry.Phases {
		Logf("  %-12s %10s  %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), stats.PhasePct[phase])
	}
	Logf("")
}

// logChainState logs the current pose of every segment.
func (g *Game) logChainState() {
	head := g.chain.Head()
	dir := head.Motion.Direction()
	Logf("=== Chain @ Cycle %d (%s, speed %.0f, paused %v) ===",
		g.ctrl.Cycle(), g.ctrl.State(), g.ctrl.Speed(), g.ctrl.Paused())
	Logf("Grid: %s spacing %.2f | Heading: (%.2f, %.2f) | Turn pending: %v",
		g.chain.Lattice().Type, g.chain.Lattice().Spacing, dir.X, dir.Z, g.ctrl.TurnPending())

	for i := 0; i < g.chain.Len(); i++ {
		seg := g.chain.Segment(i)
		p := seg.Pose.Position
		state := "straight"
		switch {
		case seg.Turn.Turning() && seg.Turn.HalfDone():
			state = "arc 2/2"
		case seg.Turn.Turning():
			state = "arc 1/2"
		}
		Logf("  [%2d] (%7.3f, %7.3f, %7.3f)  %s", i, p.X, p.Y, p.Z, state)
	}

	if deg := g.ctrl.Body().Degenerate(); deg > 0 {
		Logf("Degenerate corners: %d", deg)
	}
	Logf("")
}
