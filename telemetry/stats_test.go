package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/backdrop/field"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.0},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.0},
		{"below range", []float64{1, 2, 3}, -0.5, 1.0},
		{"above range", []float64{1, 2, 3}, 1.5, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	values := []float64{5, 2, 9, 4, 7, 4, 5, 4}
	mean, std, p50, p90 := Summarize(values)

	if math.Abs(mean-5) > 0.001 {
		t.Errorf("mean = %v, want 5", mean)
	}
	if math.Abs(std-math.Sqrt(32.0/7.0)) > 0.001 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(32.0/7.0))
	}
	if p50 != 4 {
		t.Errorf("p50 = %v, want 4", p50)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}

	// Input order is preserved
	if values[0] != 5 || values[2] != 9 {
		t.Errorf("Summarize reordered its input: %v", values)
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	mean, std, p50, p90 := Summarize(nil)
	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 {
		t.Errorf("expected zeros for empty input, got %v %v %v %v", mean, std, p50, p90)
	}

	mean, std, p50, p90 = Summarize([]float64{7})
	if mean != 7 || std != 0 || p50 != 7 || p90 != 7 {
		t.Errorf("single value: got %v %v %v %v", mean, std, p50, p90)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(3)

	frames := []field.FrameStats{
		{Frame: 1, Particles: 70, Links: 10, Repelled: 0, Reflections: 1},
		{Frame: 2, Particles: 70, Links: 20, Repelled: 2, Reflections: 1},
		{Frame: 3, Particles: 40, Links: 30, Repelled: 5, Reflections: 1},
	}
	for i, fs := range frames {
		if c.ShouldFlush() {
			t.Fatalf("flush requested after %d frames", i)
		}
		c.Record(fs)
	}
	c.RecordResize()

	if !c.ShouldFlush() {
		t.Fatal("expected flush after a full window")
	}

	s := c.Flush()
	if s.WindowStartFrame != 0 || s.WindowEndFrame != 3 || s.Frames != 3 {
		t.Errorf("unexpected window bounds %+v", s)
	}
	if s.Particles != 40 {
		t.Errorf("particles = %d, want the last frame's 40", s.Particles)
	}
	if math.Abs(s.LinksMean-20) > 0.001 || s.LinksP50 != 20 || s.LinksP90 != 30 {
		t.Errorf("links mean/p50/p90 = %v/%v/%v", s.LinksMean, s.LinksP50, s.LinksP90)
	}
	if math.Abs(s.RepelledMean-7.0/3.0) > 0.001 || s.RepelledMax != 5 || s.RepelledFrames != 2 {
		t.Errorf("repelled mean/max/frames = %v/%d/%d", s.RepelledMean, s.RepelledMax, s.RepelledFrames)
	}
	if s.Reflections != 3 || s.Resizes != 1 {
		t.Errorf("reflections/resizes = %d/%d", s.Reflections, s.Resizes)
	}

	// Counters reset for the next window
	if c.ShouldFlush() {
		t.Error("expected empty window after flush")
	}
	c.Record(field.FrameStats{Frame: 4, Particles: 40, Links: 1})
	next := c.Flush()
	if next.WindowStartFrame != 3 || next.WindowEndFrame != 4 || next.Frames != 1 {
		t.Errorf("unexpected second window %+v", next)
	}
	if next.Reflections != 0 || next.Resizes != 0 || next.RepelledMax != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0)
	if c.WindowFrames() != 1 {
		t.Errorf("expected window clamped to 1, got %d", c.WindowFrames())
	}
	c.Record(field.FrameStats{Frame: 1})
	if !c.ShouldFlush() {
		t.Error("expected flush after one frame")
	}
}
