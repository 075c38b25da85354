package render

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/particle-field/internal/particle"
)

func at(x, y float64) particle.Particle {
	return particle.Particle{Pos: r2.Vec{X: x, Y: y}, Radius: 1, Opacity: 0.5, Class: particle.Primary}
}

func TestEdgeAlphaLimits(t *testing.T) {
	tests := []struct {
		name string
		dist float64
		want float64
	}{
		{"zero distance", 0, 0.15},
		{"half", 90, 0.075},
		{"threshold", 180, 0},
		{"beyond", 400, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EdgeAlpha(tt.dist, 180, 0.15)
			if diff := got - tt.want; diff > 1e-12 || diff < -1e-12 {
				t.Errorf("EdgeAlpha(%v) = %v, want %v", tt.dist, got, tt.want)
			}
		})
	}
}

func TestConnectSymmetric(t *testing.T) {
	r := NewRenderer()
	pairs := [][2]particle.Particle{
		{at(10, 10), at(100, 70)},
		{at(0.3, 17.9), at(150.2, 3.7)},
		{at(5, 5), at(5, 5)},
	}
	for _, p := range pairs {
		d1, a1, ok1 := r.Connect(p[0], p[1])
		d2, a2, ok2 := r.Connect(p[1], p[0])
		if d1 != d2 || a1 != a2 || ok1 != ok2 {
			t.Errorf("Connect(%v,%v) = (%v,%v,%v), reversed (%v,%v,%v)",
				p[0].Pos, p[1].Pos, d1, a1, ok1, d2, a2, ok2)
		}
	}
}

func TestConnectThreshold(t *testing.T) {
	r := NewRenderer()
	if _, alpha, ok := r.Connect(at(0, 0), at(180, 0)); ok || alpha != 0 {
		t.Errorf("at threshold: alpha %v ok %v, want 0 false", alpha, ok)
	}
	if _, alpha, ok := r.Connect(at(3, 4), at(3, 4)); !ok || alpha != 0.15 {
		t.Errorf("coincident: alpha %v ok %v, want 0.15 true", alpha, ok)
	}
}

func TestFrameDrawsEachPairOnce(t *testing.T) {
	r := NewRenderer()
	rec := NewRecorder()
	ps := []particle.Particle{at(0, 0), at(10, 0), at(20, 0), at(1000, 1000)}

	r.Frame(rec, ps)

	if n := rec.Count(OpLine); n != 3 {
		t.Fatalf("lines = %d, want 3", n)
	}
	seen := map[[2]float64]bool{}
	for _, op := range rec.Ops {
		if op.Kind != OpLine {
			continue
		}
		lo, hi := op.X0, op.X1
		if lo > hi {
			lo, hi = hi, lo
		}
		key := [2]float64{lo, hi}
		if seen[key] {
			t.Errorf("pair %v drawn twice", key)
		}
		seen[key] = true
		if op.Alpha <= 0 || op.Alpha > 0.15 {
			t.Errorf("pair %v alpha %v outside (0, 0.15]", key, op.Alpha)
		}
	}
	for _, want := range [][2]float64{{0, 10}, {0, 20}, {10, 20}} {
		if !seen[want] {
			t.Errorf("pair %v not drawn", want)
		}
	}
}

func TestFrameDrawsAndResetsAlpha(t *testing.T) {
	r := NewRenderer()
	rec := NewRecorder()
	ps := []particle.Particle{at(0, 0), at(10, 0), at(500, 500)}
	ps[2].Class = particle.Accent
	ps[2].Opacity = 0.3

	r.Frame(rec, ps)

	if rec.Ops[0].Kind != OpClear {
		t.Errorf("first op = %v, want clear", rec.Ops[0].Kind)
	}
	if n := rec.Count(OpCircle); n != 3 {
		t.Errorf("circles = %d, want 3", n)
	}
	if n := rec.Count(OpLine); n != 1 {
		t.Errorf("lines = %d, want 1", n)
	}
	if rec.Alpha() != 1 {
		t.Errorf("alpha after frame = %v, want 1", rec.Alpha())
	}

	for _, op := range rec.Ops {
		switch op.Kind {
		case OpLine:
			if op.Size != 0.5 {
				t.Errorf("line width = %v, want 0.5", op.Size)
			}
			if op.Alpha > 0.15 {
				t.Errorf("line alpha = %v, want <= 0.15", op.Alpha)
			}
			if op.Color != r.Palette.Edge {
				t.Errorf("line colour = %v, want edge colour", op.Color)
			}
		case OpCircle:
			if op.X0 == 500 {
				if op.Alpha != 0.3 {
					t.Errorf("circle alpha = %v, want opacity 0.3", op.Alpha)
				}
				if op.Color != r.Palette.Accent {
					t.Errorf("accent particle colour = %v", op.Color)
				}
			}
		}
	}
}

func TestFrameEmpty(t *testing.T) {
	rec := NewRecorder()
	NewRenderer().Frame(rec, nil)
	if len(rec.Ops) != 2 || rec.Ops[0].Kind != OpClear || rec.Alpha() != 1 {
		t.Errorf("ops = %+v, want clear then alpha reset", rec.Ops)
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	tests := []struct {
		class particle.ColorClass
		want  string
	}{
		{particle.Accent, "#00f0ff"},
		{particle.Primary, "#0066ff"},
		{particle.Dim, "#1a3a5c"},
	}
	for _, tt := range tests {
		if got := p.Color(tt.class).Hex(); got != tt.want {
			t.Errorf("Color(%v) = %s, want %s", tt.class, got, tt.want)
		}
	}

	if _, err := ParseColor("not a colour"); err == nil {
		t.Error("ParseColor accepted garbage")
	}
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(DefaultPalette().Accent, 0.5)
	if c.R != 0 || c.G != 0xf0 || c.B != 0xff || c.A != 128 {
		t.Errorf("WithAlpha = %+v", c)
	}
	if WithAlpha(c, 2).A != 255 || WithAlpha(c, -1).A != 0 {
		t.Error("alpha not clamped")
	}
}
