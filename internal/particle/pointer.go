package particle

import (
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pointer is a snapshot of the hover position. Present is false when the
// pointer is absent from the surface.
type Pointer struct {
	Pos     r2.Vec
	Present bool
}

// Absent is the zero Pointer.
var Absent = Pointer{}

// PointerSlot is a single-writer slot for pointer updates. Host callbacks
// overwrite it at any time; the tick reads it once. Last write wins.
type PointerSlot struct {
	v atomic.Pointer[r2.Vec]
}

// Move records the pointer at x, y. Coordinates that are not finite are
// ignored and the previous state stays.
func (s *PointerSlot) Move(x, y float64) {
	if !Finite(x, y) {
		return
	}
	s.v.Store(&r2.Vec{X: x, Y: y})
}

func (s *PointerSlot) Leave() {
	s.v.Store(nil)
}

func (s *PointerSlot) Load() Pointer {
	v := s.v.Load()
	if v == nil {
		return Absent
	}
	return Pointer{Pos: *v, Present: true}
}
