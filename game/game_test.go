package game

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/config"
	"github.com/pthm-cable/gridsnake/geom"
	"github.com/pthm-cable/gridsnake/locomotion"
	"github.com/pthm-cable/gridsnake/telemetry"
)

func newHeadless(t *testing.T, seed int64, turnChance float64, outputDir string) *Game {
	t.Helper()
	g, err := NewGameWithOptions(Options{
		Config:     config.Default(),
		Seed:       seed,
		OutputDir:  outputDir,
		Headless:   true,
		TurnChance: turnChance,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	return g
}

// runCycles updates g until n cycles have completed.
func runCycles(t *testing.T, g *Game, n int) {
	t.Helper()
	for i := 0; g.Cycle() < n; i++ {
		if i > n*100 {
			t.Fatalf("stuck at cycle %d after %d updates", g.Cycle(), i)
		}
		g.UpdateHeadless()
	}
}

func TestHeadlessAdvancesCycles(t *testing.T) {
	g := newHeadless(t, 1, 0, "")
	defer g.Unload()

	start := g.Chain().Head().Pose.Position
	runCycles(t, g, 10)

	// No turns: ten half-steps straight ahead.
	got := g.Chain().Head().Pose.Position
	want := r3.Add(start, r3.Scale(10*g.Chain().Lattice().Step(), geom.Forward))
	if !geom.ApproxEqual(got, want, 1e-9) {
		t.Errorf("expected head at %v, got %v", want, got)
	}
}

func TestSameSeedSamePath(t *testing.T) {
	a := newHeadless(t, 7, 0.5, "")
	b := newHeadless(t, 7, 0.5, "")
	defer a.Unload()
	defer b.Unload()

	for i := 0; i < 1200; i++ {
		a.UpdateHeadless()
		b.UpdateHeadless()
	}

	if a.Cycle() != b.Cycle() {
		t.Fatalf("cycle mismatch: %d vs %d", a.Cycle(), b.Cycle())
	}
	for i := 0; i < a.Chain().Len(); i++ {
		pa := a.Chain().Segment(i).Pose.Position
		pb := b.Chain().Segment(i).Pose.Position
		if pa != pb {
			t.Errorf("segment %d: %v vs %v", i, pa, pb)
		}
	}
}

func TestHeadlessStaysOnLattice(t *testing.T) {
	g := newHeadless(t, 42, 0.6, "")
	defer g.Unload()

	lat := g.Chain().Lattice()
	for c := 1; c <= 200; c++ {
		runCycles(t, g, c)
		for i := 0; i < g.Chain().Len(); i++ {
			seg := g.Chain().Segment(i)
			logical := seg.Motion.Start()
			if !geom.ApproxEqual(lat.Snap(logical), logical, 1e-9) {
				t.Fatalf("cycle %d: segment %d off the lattice at %v", c, i, logical)
			}
			// Between arc halves a follower rests on the arc midpoint.
			if !seg.Turn.Turning() && seg.Pose.Position != logical {
				t.Fatalf("cycle %d: segment %d resting at %v, logical %v", c, i, seg.Pose.Position, logical)
			}
		}
	}
}

func TestFrozenSessionHolds(t *testing.T) {
	g := newHeadless(t, 3, 0, "")
	defer g.Unload()

	runCycles(t, g, 2)
	g.apply(locomotion.Intent{Kind: locomotion.IntentToggleFreeze})

	before := g.Chain().Head().Pose.Position
	for i := 0; i < 120; i++ {
		g.UpdateHeadless()
	}
	if g.Cycle() != 2 {
		t.Errorf("expected cycle to stay at 2, got %d", g.Cycle())
	}
	if after := g.Chain().Head().Pose.Position; after != before {
		t.Errorf("head moved while frozen: %v -> %v", before, after)
	}
}

func TestMeshTracksChain(t *testing.T) {
	g := newHeadless(t, 5, 0.5, "")
	defer g.Unload()

	// tip, middle, head, followers, tail
	spans := g.Chain().Len() + 2
	runCycles(t, g, 20)

	m := g.Mesh()
	if got, want := m.VertexCount(), spans*8; got != want {
		t.Errorf("expected %d vertices, got %d", want, got)
	}
	if got, want := len(m.Submeshes), spans; got != want {
		t.Errorf("expected %d submeshes, got %d", want, got)
	}
}

func TestOutputFiles(t *testing.T) {
	dir := t.TempDir()
	g := newHeadless(t, 9, 0.4, dir)

	runCycles(t, g, 60)
	g.Unload()

	for _, name := range []string{"config.yaml", "cycles.csv", "stats.csv", "perf.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("expected %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("expected %s to be non-empty", name)
		}
	}

	f, err := os.Open(filepath.Join(dir, "cycles.csv"))
	if err != nil {
		t.Fatalf("open cycles.csv: %v", err)
	}
	defer f.Close()

	var records []*telemetry.CycleRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		t.Fatalf("unmarshal cycles.csv: %v", err)
	}
	if len(records) != 60 {
		t.Fatalf("expected 60 cycle records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.Cycle != i+1 {
			t.Errorf("record %d: expected cycle %d, got %d", i, i+1, rec.Cycle)
		}
	}
}
