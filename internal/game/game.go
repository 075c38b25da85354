// Package game hosts a particle field in an ebiten window.
package game

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/frame"
	"github.com/iburimskiy/particle-field/internal/surface"
)

const tapSize = 120

// Game adapts a field.Controller to ebiten's Update/Draw/Layout loop. The
// field is constructed on the first Draw, when the window has a size and a
// screen to draw on; every later tick runs from Draw through the frame queue.
type Game struct {
	ctx    context.Context
	logger *log.Logger
	opts   []field.Option

	ctrl   *field.Controller
	frames *frame.Queue
	canvas *canvas
	tap    *tickTap

	// outside size in logical units and the device scale factor
	outsideW, outsideH float64
	scale              float64

	pointerIn bool
	hud       bool
	err       error
}

func New(ctx context.Context, cfg config.Config, logger *log.Logger, opts ...field.Option) (*Game, error) {
	bg, err := parseBackground(cfg.Background)
	if err != nil {
		return nil, err
	}
	g := &Game{
		ctx:    ctx,
		logger: logger,
		opts:   append([]field.Option{field.WithLogger(logger)}, opts...),
		frames: frame.NewQueue(),
		tap:    newTickTap(tapSize),
		scale:  1,
		hud:    cfg.Window.HUD,
	}
	g.canvas = newCanvas(g, bg)
	return g, nil
}

// Run opens the window and blocks until it is closed, Esc/Q is pressed or
// ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger, opts ...field.Option) error {
	g, err := New(ctx, cfg, logger, opts...)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	err = ebiten.RunGame(g)
	g.stop()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return g.err
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.stop()
		return ebiten.Termination
	}
	if g.ctrl == nil {
		return nil
	}
	if g.ctrl.State() == field.Stopped {
		return fmt.Errorf("field stopped after %d ticks", g.ctrl.Ticks())
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Reinitialize()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	g.trackPointer()
	return nil
}

// trackPointer forwards the cursor in logical units. Leaving the window or
// losing focus counts as pointer-leave.
func (g *Game) trackPointer() {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx)/g.scale, float64(cy)/g.scale
	inside := ebiten.IsFocused() && x >= 0 && y >= 0 && x < g.outsideW && y < g.outsideH

	switch {
	case inside:
		g.ctrl.PointerMove(x, y)
	case g.pointerIn:
		g.ctrl.PointerLeave()
	}
	g.pointerIn = inside
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.bind(screen)
	defer g.canvas.bind(nil)

	if g.ctrl == nil {
		if g.err != nil {
			return
		}
		ctrl, err := field.New(g.canvas, g.frames, g.opts...)
		if err != nil {
			g.err = err
			return
		}
		g.ctrl = ctrl
	} else {
		g.frames.Fire()
	}
	g.tap.record(g.ctrl.LastTick())

	if g.hud {
		g.drawHUD(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	b := g.ctrl.Bounds()
	status := fmt.Sprintf("TPS %.0f  FPS %.0f  tick %s  %dx%d @%.1fx  ticks %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), formatTick(g.tap.mean()),
		int(b.Width), int(b.Height), g.scale, g.ctrl.Ticks())
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
	ebitenutil.DebugPrintAt(screen, "R: respawn  H: hud  Esc/Q: quit", 12, 28)
}

// LayoutF keeps the screen at the window's physical resolution so drawing is
// not blurred on high-density displays.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if outsideWidth != g.outsideW || outsideHeight != g.outsideH || scale != g.scale {
		g.outsideW, g.outsideH, g.scale = outsideWidth, outsideHeight, scale
		if g.ctrl != nil {
			g.ctrl.Resize()
		}
	}
	r := surface.Measure(outsideWidth, outsideHeight, scale)
	return float64(r.BackingWidth), float64(r.BackingHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

func (g *Game) stop() {
	if g.ctrl != nil {
		g.ctrl.Stop()
	}
}

func parseBackground(hex string) (color.Color, error) {
	if hex == "" {
		hex = config.BackgroundHex
	}
	c, err := parseHex(hex)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	return c, nil
}
