package field

// Surface is the drawing target. Coordinates are surface pixels.
type Surface interface {
	// Size returns the backing buffer dimensions.
	Size() (w, h float64)
	// SetSize resizes the backing buffer.
	SetSize(w, h float64)
	// Clear wipes the whole surface.
	Clear()
	// FillCircle draws a filled disc.
	FillCircle(x, y, r float64, p Paint)
	// StrokeLine draws a straight segment of the given width.
	StrokeLine(x0, y0, x1, y1, width float64, p Paint)
}

// Discard is a Surface that keeps its size and draws nothing.
type Discard struct {
	w, h float64
}

func (d *Discard) Size() (float64, float64) { return d.w, d.h }
func (d *Discard) SetSize(w, h float64) { d.w, d.h = w, h }
func (d *Discard) Clear() {}
func (d *Discard) FillCircle(_, _, _ float64, _ Paint) {}
func (d *Discard) StrokeLine(_, _, _, _, _ float64, _ Paint) {}

// OpKind identifies a recorded drawing operation.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpCircle
	OpLine
)

// Op is one recorded drawing call. Circles use X0, Y0 and R; lines use both
// endpoints and Width.
type Op struct {
	Kind           OpKind
	X0, Y0, X1, Y1 float64
	R, Width       float64
	Paint          Paint
}

// Recorder is a Surface that keeps a display list of the current frame.
// Clear starts a new list.
type Recorder struct {
	w, h float64
	ops  []Op
}

// NewRecorder creates a recorder with the given size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{w: w, h: h}
}

func (r *Recorder) Size() (float64, float64) { return r.w, r.h }
func (r *Recorder) SetSize(w, h float64) { r.w, r.h = w, h }

func (r *Recorder) Clear() {
	r.ops = append(r.ops[:0], Op{Kind: OpClear})
}

func (r *Recorder) FillCircle(x, y, rad float64, p Paint) {
	r.ops = append(r.ops, Op{Kind: OpCircle, X0: x, Y0: y, R: rad, Paint: p})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, p Paint) {
	r.ops = append(r.ops, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Paint: p})
}

// Ops returns the recorded operations. The slice is reused by the next Clear.
func (r *Recorder) Ops() []Op { return r.ops }

// Replay issues the recorded operations against dst in order.
func (r *Recorder) Replay(dst Surface) {
	for i := range r.ops {
		op := &r.ops[i]
		switch op.Kind {
		case OpClear:
			dst.Clear()
		case OpCircle:
			dst.FillCircle(op.X0, op.Y0, op.R, op.Paint)
		case OpLine:
			dst.StrokeLine(op.X0, op.Y0, op.X1, op.Y1, op.Width, op.Paint)
		}
	}
}
