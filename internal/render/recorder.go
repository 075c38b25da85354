package render

import (
	"image/color"
)

type OpKind int

const (
	OpClear OpKind = iota
	OpAlpha
	OpCircle
	OpLine
)

// Op is one recorded Canvas call.
type Op struct {
	Kind           OpKind
	X0, Y0, X1, Y1 float64
	Size           float64 // radius or line width
	Alpha          float64 // global alpha in effect
	Color          color.Color
}

// Recorder is a Canvas that records calls instead of drawing.
type Recorder struct {
	Ops   []Op
	alpha float64
}

func NewRecorder() *Recorder {
	return &Recorder{alpha: 1}
}

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Alpha: r.alpha})
}

func (r *Recorder) SetGlobalAlpha(a float64) {
	r.alpha = a
	r.Ops = append(r.Ops, Op{Kind: OpAlpha, Alpha: a})
}

func (r *Recorder) FillCircle(x, y, radius float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X0: x, Y0: y, Size: radius, Alpha: r.alpha, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Size: width, Alpha: r.alpha, Color: c})
}

// Alpha is the global alpha currently in effect.
func (r *Recorder) Alpha() float64 { return r.alpha }

// Count returns how many ops of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

