// Package telemetry aggregates per-frame field statistics and frame timings
// and writes them as CSV run output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated frame statistics for one window.
type WindowStats struct {
	WindowStartFrame int64 `csv:"-"`
	WindowEndFrame   int64 `csv:"window_end"`
	Frames           int   `csv:"frames"`

	// Population at window end
	Particles int `csv:"particles"`

	// Links drawn per frame
	LinksMean float64 `csv:"links_mean"`
	LinksStd  float64 `csv:"links_std"`
	LinksP50  float64 `csv:"links_p50"`
	LinksP90  float64 `csv:"links_p90"`

	// Pointer interaction
	RepelledMean   float64 `csv:"repelled_mean"`
	RepelledMax    int     `csv:"repelled_max"`
	RepelledFrames int     `csv:"repelled_frames"` // Frames with at least one particle pushed

	// Boundary bounces and population recreations during the window
	Reflections int `csv:"reflections"`
	Resizes     int `csv:"resizes"`
}

// Percentile returns the p-th percentile of a sorted slice as an actual
// sample value (the smallest value whose empirical CDF reaches p).
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Summarize returns mean, standard deviation, median and 90th percentile.
func Summarize(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std = stat.MeanStdDev(sorted, nil)
	if n == 1 {
		std = 0
	}
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Int("frames", s.Frames),
		slog.Int("particles", s.Particles),
		slog.Float64("links_mean", s.LinksMean),
		slog.Float64("links_std", s.LinksStd),
		slog.Float64("links_p50", s.LinksP50),
		slog.Float64("links_p90", s.LinksP90),
		slog.Float64("repelled_mean", s.RepelledMean),
		slog.Int("repelled_max", s.RepelledMax),
		slog.Int("repelled_frames", s.RepelledFrames),
		slog.Int("reflections", s.Reflections),
		slog.Int("resizes", s.Resizes),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
