package telemetry

import "github.com/pthm-cable/backdrop/field"

// Collector accumulates frame stats within windows and produces WindowStats.
type Collector struct {
	windowFrames int

	// Current window tracking
	windowStartFrame int64
	lastFrame        int64
	particles        int

	links       []float64
	repelled    []float64
	repelledMax int
	repelledN   int
	reflections int
	resizes     int
}

// NewCollector creates a new stats collector.
// windowFrames: how many frames each stats window spans.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: windowFrames,
		links:        make([]float64, 0, windowFrames),
		repelled:     make([]float64, 0, windowFrames),
	}
}

// Record adds one frame to the current window.
func (c *Collector) Record(s field.FrameStats) {
	c.lastFrame = s.Frame
	c.particles = s.Particles
	c.links = append(c.links, float64(s.Links))
	c.repelled = append(c.repelled, float64(s.Repelled))
	if s.Repelled > c.repelledMax {
		c.repelledMax = s.Repelled
	}
	if s.Repelled > 0 {
		c.repelledN++
	}
	c.reflections += s.Reflections
}

// RecordResize records a particle set recreation.
func (c *Collector) RecordResize() {
	c.resizes++
}

// ShouldFlush returns true once the window holds enough frames.
func (c *Collector) ShouldFlush() bool {
	return len(c.links) >= c.windowFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush() WindowStats {
	linksMean, linksStd, linksP50, linksP90 := Summarize(c.links)
	repelledMean, _, _, _ := Summarize(c.repelled)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   c.lastFrame,
		Frames:           len(c.links),
		Particles:        c.particles,
		LinksMean:        linksMean,
		LinksStd:         linksStd,
		LinksP50:         linksP50,
		LinksP90:         linksP90,
		RepelledMean:     repelledMean,
		RepelledMax:      c.repelledMax,
		RepelledFrames:   c.repelledN,
		Reflections:      c.reflections,
		Resizes:          c.resizes,
	}

	// Reset for next window
	c.windowStartFrame = c.lastFrame
	c.links = c.links[:0]
	c.repelled = c.repelled[:0]
	c.repelledMax = 0
	c.repelledN = 0
	c.reflections = 0
	c.resizes = 0

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int {
	return c.windowFrames
}
