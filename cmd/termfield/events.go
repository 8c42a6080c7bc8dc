package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/backdrop/field"
	"github.com/pthm-cable/backdrop/renderer/termsurface"
)

// eventSink is the part of field.Loop driven by terminal events.
type eventSink interface {
	MovePointer(x, y float64)
	LeavePointer()
	Resize(vp field.Viewport)
	Do(fn func(*field.Field))
}

// resizeRecorder counts particle set recreations. It is only touched on
// the loop goroutine.
type resizeRecorder interface {
	RecordResize()
}

// handleEvent translates one terminal event. It returns true when the user
// asked to quit.
func handleEvent(ev tcell.Event, sink eventSink, surf *termsurface.Surface, rec resizeRecorder) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			sink.Do(func(f *field.Field) { f.Respawn() })
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		sink.MovePointer(surf.CellCenter(col, row))

	case *tcell.EventFocus:
		if !ev.Focused {
			sink.LeavePointer()
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		sink.Resize(surf.Viewport(cols, rows))
		sink.Do(func(*field.Field) { rec.RecordResize() })
	}
	return false
}
