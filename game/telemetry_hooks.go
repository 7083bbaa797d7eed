package game

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/telemetry"
)

// onCycleEnd records a completed move-cycle and flushes the stats window
// when it is full.
func (g *Game) onCycleEnd() {
	head := g.chain.Head()
	pos := head.Pose.Position

	// Followers that finished the first half of an arc began their corner
	// this cycle.
	var corners, turning int
	for _, seg := range g.chain.Followers() {
		if seg.Turn.Turning() {
			turning++
			if seg.Turn.HalfDone() {
				corners++
			}
		}
	}

	degenerate := g.ctrl.Body().Degenerate()
	g.collector.RecordDegenerate(degenerate - g.lastDegenerate)
	g.lastDegenerate = degenerate

	duration := g.simTime - g.lastCycleTime
	g.lastCycleTime = g.simTime
	g.collector.RecordCycle(corners, r3.Norm(r3.Sub(pos, g.lastHead)), duration, g.ctrl.Speed())
	g.lastHead = pos

	if g.output != nil {
		if err := g.output.WriteCycle(g.cycleRecord(turning)); err != nil {
			g.logger.Error("failed to write cycle", "error", err)
		}
	}

	g.flushTelemetry()
}

// cycleRecord captures the resting state after a cycle.
func (g *Game) cycleRecord(turning int) telemetry.CycleRecord {
	head := g.chain.Head()
	tail := g.chain.Attachments().Tail
	dir := head.Motion.Direction()

	return telemetry.CycleRecord{
		Cycle:    g.ctrl.Cycle(),
		SimTime:  g.simTime,
		Speed:    g.ctrl.Speed(),
		HeadX:    head.Pose.Position.X,
		HeadY:    head.Pose.Position.Y,
		HeadZ:    head.Pose.Position.Z,
		DirX:     dir.X,
		DirZ:     dir.Z,
		TailX:    tail.X,
		TailY:    tail.Y,
		TailZ:    tail.Z,
		Turning:  turning,
		Vertices: g.mesh.VertexCount(),
	}
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	cycle := g.ctrl.Cycle()
	if !g.collector.ShouldFlush(cycle) {
		return
	}

	head := g.chain.Head().Pose.Position
	stats := g.collector.Flush(cycle, g.chain.Len(), head.X, head.Z)
	perfStats := g.perf.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.output != nil {
		if err := g.output.WriteStats(stats); err != nil {
			g.logger.Error("failed to write stats", "error", err)
		}
		if err := g.output.WritePerf(perfStats, cycle); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
	}
}
