package field

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLoopRunning is returned by Start when the loop is already running.
var ErrLoopRunning = errors.New("field: loop already running")

// DefaultFrameInterval is one display refresh at 60 Hz.
const DefaultFrameInterval = time.Second / 60

// Loop drives a Field from a frame clock on a single goroutine. Pointer and
// resize events may be posted from any goroutine; they are queued and applied
// on the loop goroutine, in arrival order, before the next frame runs.
type Loop struct {
	field    *Field
	interval time.Duration
	clock    <-chan time.Time
	hook     func(FrameStats)

	mu      sync.Mutex
	pending []func(*Field)
	cancel  context.CancelFunc
	done    chan struct{}
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithFrameInterval sets the ticker period used when no clock is given.
func WithFrameInterval(d time.Duration) LoopOption {
	return func(l *Loop) { l.interval = d }
}

// WithFrameClock drives frames from c instead of an internal ticker.
// The loop also stops when c is closed.
func WithFrameClock(c <-chan time.Time) LoopOption {
	return func(l *Loop) { l.clock = c }
}

// WithFrameHook runs fn on the loop goroutine after every frame.
func WithFrameHook(fn func(FrameStats)) LoopOption {
	return func(l *Loop) { l.hook = fn }
}

// NewLoop creates a stopped loop for f.
func NewLoop(f *Field, opts ...LoopOption) *Loop {
	l := &Loop{field: f, interval: DefaultFrameInterval}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start launches the frame goroutine. It runs until ctx is cancelled, Stop
// is called or the frame clock is closed.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != nil {
		select {
		case <-l.done:
		default:
			return ErrLoopRunning
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})

	clock := l.clock
	var ticker *time.Ticker
	if clock == nil {
		ticker = time.NewTicker(l.interval)
		clock = ticker.C
	}

	go l.run(ctx, clock, ticker, l.done)
	return nil
}

func (l *Loop) run(ctx context.Context, clock <-chan time.Time, ticker *time.Ticker, done chan struct{}) {
	defer close(done)
	if ticker != nil {
		defer ticker.Stop()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-clock:
			if !ok {
				return
			}
			l.drain()
			stats := l.field.Frame()
			if l.hook != nil {
				l.hook(stats)
			}
		}
	}
}

// drain applies queued events to the field.
func (l *Loop) drain() {
	l.mu.Lock()
	events := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, ev := range events {
		ev(l.field)
	}
}

// Stop cancels the loop and waits for the frame goroutine to exit.
// Calling Stop on a stopped loop does nothing.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done is closed when the frame goroutine exits. It is nil before Start.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

func (l *Loop) post(ev func(*Field)) {
	l.mu.Lock()
	l.pending = append(l.pending, ev)
	l.mu.Unlock()
}

// MovePointer queues a pointer move.
func (l *Loop) MovePointer(x, y float64) {
	l.post(func(f *Field) { f.MovePointer(x, y) })
}

// LeavePointer queues a pointer leave.
func (l *Loop) LeavePointer() {
	l.post(func(f *Field) { f.LeavePointer() })
}

// Resize queues a resize and particle set recreation.
func (l *Loop) Resize(vp Viewport) {
	l.post(func(f *Field) { f.Resize(vp) })
}

// Do queues an arbitrary mutation to run on the loop goroutine.
func (l *Loop) Do(fn func(*Field)) {
	l.post(fn)
}
