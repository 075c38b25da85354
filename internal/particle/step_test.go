package particle

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestStepReflectsAndClampsAtLeftEdge(t *testing.T) {
	ps := []Particle{{Pos: r2.Vec{X: 0, Y: 50}, Vel: r2.Vec{X: -0.3}, Radius: 1, Opacity: 0.5}}
	Step(ps, Absent, Bounds{Width: 100, Height: 100}, DefaultParams())

	if ps[0].Vel.X != 0.3 {
		t.Errorf("Vel.X = %v, want 0.3", ps[0].Vel.X)
	}
	if ps[0].Pos.X != 0 {
		t.Errorf("Pos.X = %v, want 0", ps[0].Pos.X)
	}
}

func TestStepReflectsEveryEdge(t *testing.T) {
	b := Bounds{Width: 10, Height: 20}
	tests := []struct {
		name    string
		pos     r2.Vec
		vel     r2.Vec
		wantPos r2.Vec
		wantVel r2.Vec
	}{
		{"right", r2.Vec{X: 9.9, Y: 5}, r2.Vec{X: 0.2}, r2.Vec{X: 10, Y: 5}, r2.Vec{X: -0.2}},
		{"top", r2.Vec{X: 5, Y: 0.1}, r2.Vec{Y: -0.4}, r2.Vec{X: 5, Y: 0}, r2.Vec{Y: 0.4}},
		{"bottom", r2.Vec{X: 5, Y: 19.9}, r2.Vec{Y: 0.4}, r2.Vec{X: 5, Y: 20}, r2.Vec{Y: -0.4}},
		{"inside", r2.Vec{X: 5, Y: 5}, r2.Vec{X: 0.1, Y: 0.1}, r2.Vec{X: 5.1, Y: 5.1}, r2.Vec{X: 0.1, Y: 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := []Particle{{Pos: tt.pos, Vel: tt.vel, Radius: 1, Opacity: 1}}
			Step(ps, Absent, b, DefaultParams())
			if !near(ps[0].Pos, tt.wantPos) {
				t.Errorf("Pos = %v, want %v", ps[0].Pos, tt.wantPos)
			}
			if !near(ps[0].Vel, tt.wantVel) {
				t.Errorf("Vel = %v, want %v", ps[0].Vel, tt.wantVel)
			}
		})
	}
}

// A fast particle far outside only gets its sign flipped once per tick, and
// stays pinned at the edge until its velocity points back inside.
func TestStepOvershootIsClampedNotMirrored(t *testing.T) {
	ps := []Particle{{Pos: r2.Vec{X: 95, Y: 5}, Vel: r2.Vec{X: 30}, Radius: 1, Opacity: 1}}
	b := Bounds{Width: 100, Height: 10}
	Step(ps, Absent, b, DefaultParams())

	if ps[0].Pos.X != 100 {
		t.Errorf("Pos.X = %v, want 100", ps[0].Pos.X)
	}
	if ps[0].Vel.X >= 0 {
		t.Errorf("Vel.X = %v, want negative", ps[0].Vel.X)
	}
}

func TestStepBoundedness(t *testing.T) {
	rng := NewRand(7)
	b := Bounds{Width: 320, Height: 200}
	ps := Spawn(rng, 80, b)
	for i := range ps {
		ps[i].Vel = r2.Scale(40, ps[i].Vel)
	}
	ptr := Pointer{Pos: r2.Vec{X: 160, Y: 100}, Present: true}

	for tick := 0; tick < 500; tick++ {
		Step(ps, ptr, b, DefaultParams())
		for i, p := range ps {
			if !b.Contains(p.Pos) {
				t.Fatalf("tick %d particle %d at %v outside %v", tick, i, p.Pos, b)
			}
		}
	}
}

func TestStepDampingConverges(t *testing.T) {
	ps := []Particle{{Pos: r2.Vec{X: 500, Y: 500}, Vel: r2.Vec{X: 1.5, Y: 1.5}, Radius: 1, Opacity: 1}}
	b := Bounds{Width: 1e9, Height: 1e9}
	prm := DefaultParams()

	// 0.99^n * |v| <= 1 needs n >= ln(1/|v|)/ln(0.99)
	limit := int(math.Ceil(math.Log(1/ps[0].Speed())/math.Log(prm.Damping))) + 1

	prev := ps[0].Speed()
	for tick := 0; tick < limit; tick++ {
		Step(ps, Absent, b, prm)
		speed := ps[0].Speed()
		if prev > prm.SpeedCap && speed >= prev {
			t.Fatalf("tick %d speed %v did not decrease from %v", tick, speed, prev)
		}
		prev = speed
	}
	if prev > prm.SpeedCap {
		t.Errorf("speed after %d ticks = %v, want <= %v", limit, prev, prm.SpeedCap)
	}

	// Below the cap damping no longer applies.
	Step(ps, Absent, b, prm)
	if ps[0].Speed() != prev {
		t.Errorf("speed under cap changed from %v to %v", prev, ps[0].Speed())
	}
}

func TestStepPointerRepels(t *testing.T) {
	ps := []Particle{{Pos: r2.Vec{X: 100, Y: 100}, Radius: 1, Opacity: 1}}
	ptr := Pointer{Pos: r2.Vec{X: 50, Y: 100}, Present: true}
	Step(ps, ptr, Bounds{Width: 200, Height: 200}, DefaultParams())

	// dist 50 of 150: force 2/3, along +x
	want := (150.0 - 50.0) / 150.0 * 0.02
	if math.Abs(ps[0].Vel.X-want) > 1e-12 || ps[0].Vel.Y != 0 {
		t.Errorf("Vel = %v, want {%v 0}", ps[0].Vel, want)
	}
}

func TestStepPointerOutsideRadius(t *testing.T) {
	ps := []Particle{{Pos: r2.Vec{X: 160, Y: 0}, Radius: 1, Opacity: 1}}
	ptr := Pointer{Pos: r2.Vec{X: 10, Y: 0}, Present: true}
	Step(ps, ptr, Bounds{Width: 200, Height: 200}, DefaultParams())

	if ps[0].Vel != (r2.Vec{}) {
		t.Errorf("Vel = %v, want zero at the influence boundary", ps[0].Vel)
	}
}

func TestStepPointerCoincidentIsSkipped(t *testing.T) {
	ps := []Particle{{Pos: r2.Vec{X: 40, Y: 40}, Vel: r2.Vec{X: 0.5}, Radius: 1, Opacity: 1}}
	// After integration the particle sits exactly on the pointer.
	ptr := Pointer{Pos: r2.Vec{X: 40.5, Y: 40}, Present: true}
	Step(ps, ptr, Bounds{Width: 100, Height: 100}, DefaultParams())

	if ps[0].Vel != (r2.Vec{X: 0.5}) {
		t.Errorf("Vel = %v, want unchanged", ps[0].Vel)
	}
	if math.IsNaN(ps[0].Vel.X) || math.IsNaN(ps[0].Vel.Y) {
		t.Error("velocity became NaN")
	}
}

func TestStepPointerAbsentMatchesNoForce(t *testing.T) {
	b := Bounds{Width: 400, Height: 300}
	a := Spawn(NewRand(3), 80, b)
	c := make([]Particle, len(a))
	copy(c, a)

	noForce := DefaultParams()
	noForce.Force = 0
	ptr := Pointer{Pos: r2.Vec{X: 200, Y: 150}, Present: true}

	for tick := 0; tick < 200; tick++ {
		Step(a, Absent, b, DefaultParams())
		Step(c, ptr, b, noForce)
	}
	for i := range a {
		if a[i] != c[i] {
			t.Fatalf("particle %d diverged: %+v vs %+v", i, a[i], c[i])
		}
	}
}

func TestStepShrunkBoundsClampsInOneTick(t *testing.T) {
	ps := []Particle{{Pos: r2.Vec{X: 900, Y: 700}, Vel: r2.Vec{X: 0.1, Y: -0.1}, Radius: 1, Opacity: 1}}
	b := Bounds{Width: 300, Height: 200}
	Step(ps, Absent, b, DefaultParams())
	if !b.Contains(ps[0].Pos) {
		t.Errorf("Pos = %v outside %v", ps[0].Pos, b)
	}
}

func TestStepDegenerateBounds(t *testing.T) {
	ps := Spawn(NewRand(1), 10, Bounds{Width: 50, Height: 50})
	Step(ps, Pointer{Present: true}, Bounds{}, DefaultParams())
	for i, p := range ps {
		if p.Pos != (r2.Vec{}) {
			t.Errorf("particle %d at %v, want origin", i, p.Pos)
		}
	}

	Step(ps, Absent, Bounds{Width: -5, Height: -5}, DefaultParams())
	for i, p := range ps {
		if p.Pos != (r2.Vec{}) {
			t.Errorf("negative bounds: particle %d at %v, want origin", i, p.Pos)
		}
	}
}

func near(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestStepNonFinitePointerIsIgnored(t *testing.T) {
	tests := []struct {
		name string
		at   r2.Vec
	}{
		{"nan x", r2.Vec{X: math.NaN(), Y: 100}},
		{"nan both", r2.Vec{X: math.NaN(), Y: math.NaN()}},
		{"inf", r2.Vec{X: math.Inf(1), Y: 100}},
		{"neg inf", r2.Vec{X: 100, Y: math.Inf(-1)}},
	}

	b := Bounds{Width: 320, Height: 200}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := Spawn(NewRand(11), 80, b)
			want := make([]Particle, len(ps))
			copy(want, ps)

			ptr := Pointer{Pos: tt.at, Present: true}
			for tick := 0; tick < 3; tick++ {
				Step(ps, ptr, b, DefaultParams())
				Step(want, Absent, b, DefaultParams())
			}
			for i := range ps {
				if !b.Contains(ps[i].Pos) {
					t.Fatalf("particle %d at %v outside %v", i, ps[i].Pos, b)
				}
				if ps[i] != want[i] {
					t.Fatalf("particle %d = %+v, want %+v as with no pointer", i, ps[i], want[i])
				}
			}
		})
	}
}

func TestClampNaN(t *testing.T) {
	tests := []struct {
		v, hi, want float64
	}{
		{math.NaN(), 10, 0},
		{-1, 10, 0},
		{11, 10, 10},
		{math.Inf(1), 10, 10},
		{math.Inf(-1), 10, 0},
		{4, 10, 4},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.hi); got != tt.want {
			t.Errorf("clamp(%v, %v) = %v, want %v", tt.v, tt.hi, got, tt.want)
		}
	}
}
