package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame.
const (
	PhaseEvents    = "events"
	PhaseSimulate  = "simulate"
	PhasePresent   = "present"
	PhaseTelemetry = "telemetry"
)

// Phases lists the frame phases in execution order.
var Phases = []string{PhaseEvents, PhaseSimulate, PhasePresent, PhaseTelemetry}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame timings over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    map[string]time.Duration
	frameStart time.Time
	phaseStart time.Time
	lastPhase  string

	// Wall-clock interval between presented frames
	lastPresent time.Time
	interval    time.Duration

	now func() time.Time
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to aggregate over (e.g., 120 for 2 seconds at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		current:    make(map[string]time.Duration),
		now:        time.Now,
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.current = make(map[string]time.Duration, len(Phases))
	p.lastPhase = ""
}

// StartPhase closes the running phase and starts timing the next one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and stores the sample.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.current,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordPresent records the wall-clock time a frame reached the screen.
func (p *PerfCollector) RecordPresent() {
	now := p.now()
	if !p.lastPresent.IsZero() {
		p.interval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Frames int

	// Work time per frame
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration
	P99Frame time.Duration

	// Phase breakdown
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Frames per second the work alone would allow
	Headroom float64

	// Measured presentation rate
	Interval time.Duration
	FPS      float64
}

// Stats aggregates the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Frames:   p.sampleCount,
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
		Interval: p.interval,
	}
	if p.interval > 0 {
		s.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.sampleCount == 0 {
		return s
	}

	durations := make([]float64, p.sampleCount)
	phaseSum := make(map[string]float64)
	for i := 0; i < p.sampleCount; i++ {
		durations[i] = float64(p.samples[i].FrameDuration)
		for phase, d := range p.samples[i].Phases {
			phaseSum[phase] += float64(d)
		}
	}
	sort.Float64s(durations)

	avg := stat.Mean(durations, nil)
	s.AvgFrame = time.Duration(avg)
	s.MinFrame = time.Duration(floats.Min(durations))
	s.MaxFrame = time.Duration(floats.Max(durations))
	s.P99Frame = time.Duration(Percentile(durations, 0.99))

	n := float64(p.sampleCount)
	for phase, sum := range phaseSum {
		s.PhaseAvg[phase] = time.Duration(sum / n)
		if avg > 0 {
			s.PhasePct[phase] = sum / n / avg * 100
		}
	}
	if avg > 0 {
		s.Headroom = float64(time.Second) / avg
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Int64("p99_frame_us", s.P99Frame.Microseconds()),
		slog.Float64("headroom_fps", s.Headroom),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	P99FrameUS   int64   `csv:"p99_frame_us"`
	Headroom     float64 `csv:"headroom_fps"`
	FPS          float64 `csv:"fps"`
	EventsPct    float64 `csv:"events_pct"`
	SimulatePct  float64 `csv:"simulate_pct"`
	PresentPct   float64 `csv:"present_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgFrameUS:   s.AvgFrame.Microseconds(),
		MinFrameUS:   s.MinFrame.Microseconds(),
		MaxFrameUS:   s.MaxFrame.Microseconds(),
		P99FrameUS:   s.P99Frame.Microseconds(),
		Headroom:     s.Headroom,
		FPS:          s.FPS,
		EventsPct:    s.PhasePct[PhaseEvents],
		SimulatePct:  s.PhasePct[PhaseSimulate],
		PresentPct:   s.PhasePct[PhasePresent],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
