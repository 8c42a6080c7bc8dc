package game

import "log/slog"

// recordFrame feeds the last frame to the collector and flushes full windows.
func (g *Game) recordFrame() {
	g.collector.Record(g.last)
	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush()
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Console output
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
