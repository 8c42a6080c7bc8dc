package field

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

func newTestLoop(t *testing.T) (*Loop, *Field, chan time.Time, chan FrameStats) {
	t.Helper()
	f := New(NewRecorder(0, 0), desktop, DefaultOptions(), rand.New(rand.NewSource(1)))
	clock := make(chan time.Time)
	frames := make(chan FrameStats, 16)
	l := NewLoop(f, WithFrameClock(clock), WithFrameHook(func(s FrameStats) { frames <- s }))
	return l, f, clock, frames
}

func tick(t *testing.T, clock chan time.Time, frames chan FrameStats) FrameStats {
	t.Helper()
	select {
	case clock <- time.Now():
	case <-time.After(time.Second):
		t.Fatal("loop did not accept a tick")
	}
	select {
	case s := <-frames:
		return s
	case <-time.After(time.Second):
		t.Fatal("loop did not finish a frame")
	}
	return FrameStats{}
}

func TestLoopRunsFramesInOrder(t *testing.T) {
	l, _, clock, frames := newTestLoop(t)
	if err := l.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer l.Stop()

	for i := int64(1); i <= 3; i++ {
		s := tick(t, clock, frames)
		if s.Frame != i {
			t.Errorf("expected frame %d, got %d", i, s.Frame)
		}
		if s.Particles != 70 {
			t.Errorf("expected 70 particles, got %d", s.Particles)
		}
	}
}

func TestLoopAppliesEventsBeforeFrame(t *testing.T) {
	l, f, clock, frames := newTestLoop(t)
	if err := l.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	l.Resize(Viewport{Width: 500, Height: 400})
	l.MovePointer(250, 200)
	s := tick(t, clock, frames)
	if s.Particles != 40 {
		t.Errorf("expected resize to apply before the frame, got %d particles", s.Particles)
	}

	l.LeavePointer()
	s = tick(t, clock, frames)
	if s.Repelled != 0 {
		t.Errorf("expected no repulsion after leave, got %d", s.Repelled)
	}

	l.Stop()
	if p := f.Pointer(); p.Active {
		t.Error("pointer should be absent after leave")
	}
	if w, h := f.Bounds(); w != 500 || h != 400 {
		t.Errorf("expected bounds 500x400, got %vx%v", w, h)
	}
}

func TestLoopStartTwice(t *testing.T) {
	l, _, _, _ := newTestLoop(t)
	if err := l.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer l.Stop()

	if err := l.Start(context.Background()); !errors.Is(err, ErrLoopRunning) {
		t.Errorf("expected ErrLoopRunning, got %v", err)
	}
}

func TestLoopStopIsIdempotent(t *testing.T) {
	l, _, clock, frames := newTestLoop(t)
	l.Stop() // never started

	if err := l.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	tick(t, clock, frames)
	l.Stop()
	l.Stop()

	select {
	case <-l.Done():
	default:
		t.Error("expected Done to be closed after Stop")
	}

	// A stopped loop can be started again
	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s := tick(t, clock, frames); s.Frame != 2 {
		t.Errorf("expected frame 2 after restart, got %d", s.Frame)
	}
	l.Stop()
}

func TestLoopStopsOnContextCancel(t *testing.T) {
	l, _, _, _ := newTestLoop(t)
	ctx, cancel := context.WithCancel(context.Background())
	if err := l.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after cancel")
	}
}

func TestLoopStopsWhenClockCloses(t *testing.T) {
	l, _, clock, _ := newTestLoop(t)
	if err := l.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	close(clock)

	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after clock closed")
	}
}

func TestLoopTicker(t *testing.T) {
	f := New(NewRecorder(0, 0), desktop, DefaultOptions(), rand.New(rand.NewSource(1)))
	frames := make(chan FrameStats, 1)
	l := NewLoop(f, WithFrameInterval(time.Millisecond), WithFrameHook(func(s FrameStats) {
		select {
		case frames <- s:
		default:
		}
	}))
	if err := l.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer l.Stop()

	select {
	case <-frames:
	case <-time.After(2 * time.Second):
		t.Fatal("ticker never produced a frame")
	}
}
