package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseLocomotion)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseSkin)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Updates != 5 {
		t.Errorf("expected 5 updates, got %d", stats.Updates)
	}
	if stats.AvgUpdate <= 0 {
		t.Error("expected positive average update duration")
	}
	if stats.MinUpdate > stats.AvgUpdate || stats.AvgUpdate > stats.MaxUpdate {
		t.Errorf("expected min <= avg <= max, got %v %v %v", stats.MinUpdate, stats.AvgUpdate, stats.MaxUpdate)
	}
	if stats.PhaseAvg[PhaseInput] != 0 {
		t.Errorf("expected untimed input phase, got %v", stats.PhaseAvg[PhaseInput])
	}
	if stats.PhasePct[PhaseSkin] <= stats.PhasePct[PhaseLocomotion] {
		t.Errorf("expected skin (%v%%) > locomotion (%v%%)",
			stats.PhasePct[PhaseSkin], stats.PhasePct[PhaseLocomotion])
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 12; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseLocomotion)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Updates != 5 {
		t.Errorf("expected window capped at 5, got %d", stats.Updates)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.Updates != 0 || stats.AvgUpdate != 0 || stats.UpdatesPerSecond != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if row := stats.ToCSV(3); row.Cycle != 3 || row.AvgUpdateUS != 0 {
		t.Errorf("unexpected CSV row %+v", row)
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70], got %v", stats.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseInput, "input"},
		{PhaseLocomotion, "locomotion"},
		{PhaseSkin, "skin"},
		{PhaseTelemetry, "telemetry"},
		{PhaseCount, "Phase(4)"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.phase), got, tt.want)
		}
	}
}
