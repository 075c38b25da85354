// Package field runs an animated particle network on a surface: it owns the
// particles, steps and renders them once per frame, and stops on request.
package field

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/frame"
	"github.com/iburimskiy/particle-field/internal/particle"
	"github.com/iburimskiy/particle-field/internal/render"
	"github.com/iburimskiy/particle-field/internal/surface"
)

var (
	ErrNoSurface = errors.New("field: no surface")
	ErrNoFrames  = errors.New("field: no frame source")
)

// Surface is a resizable canvas.
type Surface interface {
	surface.Target
	render.Canvas
}

// State of a Controller. Stopped is terminal.
type State int32

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Controller animates one field. Instances share nothing.
//
// Pointer, resize and reinitialize notifications may arrive from any
// goroutine; they are posted into slots the tick reads once. The tick itself
// only ever runs from the frame source.
type Controller struct {
	surface  Surface
	frames   frame.Source
	renderer *render.Renderer
	params   particle.Params
	count    int
	rng      *rand.Rand
	logger   *log.Logger

	// tick-owned
	particles []particle.Particle
	bounds    particle.Bounds

	pointer  particle.PointerSlot
	resized  atomic.Bool
	reinit   atomic.Bool
	state    atomic.Int32
	ticks    atomic.Uint64
	lastTick atomic.Int64 // tick duration in ns

	mu      sync.Mutex // guards handle and the Running->Stopped edge
	handle  frame.Handle
	started time.Time

	snapMu sync.Mutex
	snap   []particle.Particle
}

type Option func(*Controller)

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithSeed makes the initial field reproducible.
func WithSeed(seed uint64) Option {
	return func(c *Controller) { c.rng = particle.NewRand(seed) }
}

// WithRenderer replaces the default renderer, e.g. to use another palette.
func WithRenderer(r *render.Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// New sizes s, spawns the particles, draws the first frame and schedules the
// next one on frames. The returned Controller is Running.
func New(s Surface, frames frame.Source, opts ...Option) (*Controller, error) {
	if s == nil {
		return nil, ErrNoSurface
	}
	if frames == nil {
		return nil, ErrNoFrames
	}

	c := &Controller{
		surface:  s,
		frames:   frames,
		renderer: render.NewRenderer(),
		params:   particle.DefaultParams(),
		count:    config.ParticleCount,
		logger:   log.Default(),
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = particle.NewRand(uint64(time.Now().UnixNano()))
	}

	c.bounds = surface.Fit(s)
	c.particles = particle.Spawn(c.rng, c.count, c.bounds)
	c.logger.Debug("field started", "particles", c.count, "width", c.bounds.Width, "height", c.bounds.Height)

	c.tick()
	return c, nil
}

// PointerMove records the pointer at surface-relative logical coordinates.
func (c *Controller) PointerMove(x, y float64) { c.pointer.Move(x, y) }

// PointerLeave marks the pointer absent.
func (c *Controller) PointerLeave() { c.pointer.Leave() }

// Resize asks for the surface to be re-measured before the next tick.
func (c *Controller) Resize() { c.resized.Store(true) }

// Reinitialize asks for a fresh set of particles before the next tick.
func (c *Controller) Reinitialize() { c.reinit.Store(true) }

// Stop cancels the pending frame. No tick runs afterwards. Calling Stop
// again is a no-op; a stopped Controller cannot be restarted.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if State(c.state.Load()) == Stopped {
		return
	}
	c.state.Store(int32(Stopped))
	c.frames.Cancel(c.handle)
	c.handle = 0
	c.logger.Debug("field stopped", "ticks", c.ticks.Load(), "uptime", time.Since(c.started).Round(time.Millisecond))
}

func (c *Controller) State() State { return State(c.state.Load()) }

// Ticks returns the number of completed ticks.
func (c *Controller) Ticks() uint64 { return c.ticks.Load() }

// LastTick returns how long the most recent tick took.
func (c *Controller) LastTick() time.Duration { return time.Duration(c.lastTick.Load()) }

// Snapshot returns a copy of the particles as of the last completed tick.
func (c *Controller) Snapshot() []particle.Particle {
	c.snapMu.Lock()
	defer c.snapMu.Unlock()
	out := make([]particle.Particle, len(c.snap))
	copy(out, c.snap)
	return out
}

// Bounds returns the logical size as of the last completed tick.
func (c *Controller) Bounds() particle.Bounds {
	c.snapMu.Lock()
	defer c.snapMu.Unlock()
	return c.bounds
}

func (c *Controller) tick() {
	if c.State() == Stopped {
		return
	}
	start := time.Now()

	if err := c.advance(); err != nil {
		c.logger.Error("tick failed, stopping", "tick", c.ticks.Load(), "err", err)
		c.Stop()
		return
	}

	c.lastTick.Store(int64(time.Since(start)))
	c.ticks.Add(1)
	c.schedule()
}

// advance runs one step and one render. A panic is turned into an error so
// the loop ends with a diagnostic instead of silently.
func (c *Controller) advance() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if c.resized.Swap(false) {
		b := surface.Fit(c.surface)
		c.snapMu.Lock()
		c.bounds = b
		c.snapMu.Unlock()
		c.logger.Debug("surface resized", "width", b.Width, "height", b.Height)
	}
	if c.reinit.Swap(false) {
		c.particles = particle.Spawn(c.rng, c.count, c.bounds)
		c.logger.Debug("particles reinitialized", "particles", c.count)
	}

	particle.Step(c.particles, c.pointer.Load(), c.bounds, c.params)
	c.renderer.Frame(c.surface, c.particles)

	c.snapMu.Lock()
	c.snap = append(c.snap[:0], c.particles...)
	c.snapMu.Unlock()
	return nil
}

func (c *Controller) schedule() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.State() == Stopped {
		return
	}
	c.handle = c.frames.Request(c.tick)
}
