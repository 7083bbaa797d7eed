package telemetry

import (
	"log/slog"
	"slices"
)

// WindowStats holds aggregated statistics for a window of move-cycles.
type WindowStats struct {
	WindowStartCycle int     `csv:"-"`
	WindowEndCycle   int     `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Chain state at window end
	Segments int     `csv:"segments"`
	HeadX    float64 `csv:"head_x"`
	HeadZ    float64 `csv:"head_z"`

	// Steering
	TurnsRequested int     `csv:"turns_requested"`
	TurnsIgnored   int     `csv:"turns_ignored"`
	IgnoreRate     float64 `csv:"ignore_rate"`
	CornersBegun   int     `csv:"corners_begun"`
	Degenerate     int     `csv:"degenerate"` // corners replaced by straight motion

	// Travel
	PathLength float64 `csv:"path_length"`
	SpeedMean  float64 `csv:"speed_mean"`
	SpeedP10   float64 `csv:"speed_p10"`
	SpeedP50   float64 `csv:"speed_p50"`
	SpeedP90   float64 `csv:"speed_p90"`
}

// SpeedSummary describes the cycle speeds seen in a window.
type SpeedSummary struct {
	Mean, P10, P50, P90 float64
}

// SummarizeSpeeds computes the mean and deciles of speeds without
// reordering the input. An empty input gives the zero summary.
func SummarizeSpeeds(speeds []float64) SpeedSummary {
	if len(speeds) == 0 {
		return SpeedSummary{}
	}
	sorted := slices.Clone(speeds)
	slices.Sort(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return SpeedSummary{
		Mean: sum / float64(len(sorted)),
		P10:  Quantile(sorted, 0.1),
		P50:  Quantile(sorted, 0.5),
		P90:  Quantile(sorted, 0.9),
	}
}

// Quantile interpolates linearly between the closest ranks of an ascending
// slice. q is clamped to [0, 1].
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case q <= 0 || n == 1:
		return sorted[0]
	case q >= 1:
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	i := int(pos)
	return sorted[i] + (sorted[i+1]-sorted[i])*(pos-float64(i))
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("cycles", s.WindowEndCycle-s.WindowStartCycle),
		slog.Int("window_end", s.WindowEndCycle),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("segments", s.Segments),
		slog.Group("head", slog.Float64("x", s.HeadX), slog.Float64("z", s.HeadZ)),
		slog.Group("turns",
			slog.Int("requested", s.TurnsRequested),
			slog.Int("ignored", s.TurnsIgnored),
			slog.Int("corners", s.CornersBegun),
			slog.Int("degenerate", s.Degenerate),
		),
		slog.Float64("path_length", s.PathLength),
		slog.Group("speed", slog.Float64("mean", s.SpeedMean), slog.Float64("p50", s.SpeedP50)),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
