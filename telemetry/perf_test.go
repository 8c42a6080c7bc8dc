package telemetry

import (
	"math"
	"testing"
	"time"
)

// fakeClock is advanced explicitly by tests.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPerf(window int) (*PerfCollector, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clk.now
	return pc, clk
}

// frame records one frame with the given phase durations in order.
func frame(pc *PerfCollector, clk *fakeClock, phases []string, durs ...time.Duration) {
	pc.StartFrame()
	for i, phase := range phases {
		pc.StartPhase(phase)
		clk.advance(durs[i])
	}
	pc.EndFrame()
}

func TestPerfCollector_PhaseBreakdown(t *testing.T) {
	pc, clk := newTestPerf(10)

	phases := []string{PhaseEvents, PhaseSimulate, PhasePresent}
	for i := 0; i < 4; i++ {
		frame(pc, clk, phases, time.Millisecond, 3*time.Millisecond, time.Millisecond)
	}

	stats := pc.Stats()

	if stats.Frames != 4 {
		t.Errorf("expected 4 frames, got %d", stats.Frames)
	}
	if stats.AvgFrame != 5*time.Millisecond || stats.MinFrame != 5*time.Millisecond ||
		stats.MaxFrame != 5*time.Millisecond || stats.P99Frame != 5*time.Millisecond {
		t.Errorf("unexpected frame timings %+v", stats)
	}
	if math.Abs(stats.Headroom-200) > 0.001 {
		t.Errorf("expected headroom 200 fps, got %v", stats.Headroom)
	}

	want := map[string]float64{PhaseEvents: 20, PhaseSimulate: 60, PhasePresent: 20}
	for phase, pct := range want {
		if math.Abs(stats.PhasePct[phase]-pct) > 0.001 {
			t.Errorf("%s: expected %v%%, got %v%%", phase, pct, stats.PhasePct[phase])
		}
	}
	if stats.PhaseAvg[PhaseSimulate] != 3*time.Millisecond {
		t.Errorf("expected simulate avg 3ms, got %v", stats.PhaseAvg[PhaseSimulate])
	}
	if _, ok := stats.PhaseAvg[PhaseTelemetry]; ok {
		t.Error("telemetry phase was never started")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clk := newTestPerf(2)

	for _, d := range []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond} {
		frame(pc, clk, []string{PhaseSimulate}, d)
	}

	stats := pc.Stats()
	if stats.Frames != 2 {
		t.Fatalf("expected window of 2, got %d", stats.Frames)
	}
	if stats.MinFrame != 2*time.Millisecond || stats.MaxFrame != 3*time.Millisecond {
		t.Errorf("expected oldest frame evicted, got min %v max %v", stats.MinFrame, stats.MaxFrame)
	}
	if stats.AvgFrame != 2500*time.Microsecond {
		t.Errorf("expected avg 2.5ms, got %v", stats.AvgFrame)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(0)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgFrame != 0 || stats.Frames != 0 {
		t.Error("expected zero stats for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_Present(t *testing.T) {
	pc, clk := newTestPerf(10)

	// First call establishes baseline
	pc.RecordPresent()
	clk.advance(20 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()
	if stats.Interval != 20*time.Millisecond {
		t.Errorf("expected 20ms interval, got %v", stats.Interval)
	}
	if math.Abs(stats.FPS-50) > 0.001 {
		t.Errorf("expected 50 fps, got %v", stats.FPS)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	pc, clk := newTestPerf(4)
	frame(pc, clk, []string{PhaseEvents, PhaseSimulate, PhasePresent, PhaseTelemetry},
		time.Millisecond, time.Millisecond, time.Millisecond, time.Millisecond)

	row := pc.Stats().ToCSV(42)
	if row.WindowEnd != 42 || row.AvgFrameUS != 4000 {
		t.Errorf("unexpected row %+v", row)
	}
	for name, pct := range map[string]float64{
		"events": row.EventsPct, "simulate": row.SimulatePct,
		"present": row.PresentPct, "telemetry": row.TelemetryPct,
	} {
		if math.Abs(pct-25) > 0.001 {
			t.Errorf("%s: expected 25%%, got %v", name, pct)
		}
	}
}
