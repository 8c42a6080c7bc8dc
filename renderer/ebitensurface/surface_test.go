package ebitensurface

import (
	"image/color"
	"testing"

	"github.com/pthm-cable/backdrop/field"
)

func TestNewOpaqueBackground(t *testing.T) {
	s := New(field.Paint{R: 10, G: 20, B: 30, Alpha: 0})
	want := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	if s.bg != want {
		t.Errorf("background = %v, want %v", s.bg, want)
	}
}

func TestDrawWithoutTarget(t *testing.T) {
	s := New(field.Paint{})
	s.SetSize(640, 480)

	// Driving a full field with no target must not touch ebiten.
	f := field.New(s, field.Viewport{Width: 640, Height: 480}, field.DefaultOptions(), nil)
	f.MovePointer(320, 240)
	for i := 0; i < 3; i++ {
		f.Frame()
	}

	if w, h := s.Size(); w != 640 || h != 480 {
		t.Errorf("size = %vx%v, want 640x480", w, h)
	}
}
