// Package term hosts a particle field in a terminal. Frames are rasterized
// off-screen and shown as half-block cells, two pixels per cell.
package term

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/frame"
	"github.com/iburimskiy/particle-field/internal/raster"
	"github.com/iburimskiy/particle-field/internal/render"
)

const halfBlock = '▀'

// Host drives one field on a tcell screen. Each cell is CellWidth x
// CellHeight logical units, so the field behaves as it would on a window of
// the same apparent size.
type Host struct {
	screen   tcell.Screen
	surf     *raster.Surface
	frames   *frame.Queue
	ctrl     *field.Controller
	logger   *log.Logger
	cellW    float64
	cellH    float64
	interval time.Duration
}

// New takes an initialized screen and starts a field on it.
func New(screen tcell.Screen, cfg config.Config, logger *log.Logger, opts ...field.Option) (*Host, error) {
	bg, err := render.ParseColor(cfg.Background)
	if err != nil {
		return nil, err
	}

	h := &Host{
		screen:   screen,
		frames:   frame.NewQueue(),
		logger:   logger,
		cellW:    cfg.Terminal.CellWidth,
		cellH:    cfg.Terminal.CellHeight,
		interval: frame.Interval(cfg.Terminal.TPS),
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	cols, rows := screen.Size()
	w, hgt, ratio := h.container(cols, rows)
	h.surf = raster.New(w, hgt, ratio, bg)

	opts = append([]field.Option{field.WithLogger(logger)}, opts...)
	h.ctrl, err = field.New(h.surf, h.frames, opts...)
	if err != nil {
		return nil, err
	}
	h.present()
	return h, nil
}

// Run opens the terminal, runs until q/Esc/Ctrl-C or ctx is cancelled, and
// restores the terminal.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger, opts ...field.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	h, err := New(screen, cfg, logger, opts...)
	if err != nil {
		return err
	}
	return h.Run(ctx)
}

// Run pumps frames on the calling goroutine while a second goroutine turns
// terminal events into field notifications.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			if !h.handle(ev) {
				cancel()
				return
			}
		}
	}()

	err := frame.Pump(ctx, h.frames, h.interval, h.present)
	h.ctrl.Stop()
	h.logger.Debug("terminal host done", "ticks", h.ctrl.Ticks())

	switch {
	case errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, frame.ErrIdle):
		return fmt.Errorf("field stopped after %d ticks", h.ctrl.Ticks())
	}
	return err
}

func (h *Host) Controller() *field.Controller { return h.ctrl }

// handle reports false when the user asked to quit.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			h.ctrl.Reinitialize()
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.ctrl.PointerMove((float64(x)+0.5)*h.cellW, (float64(y)+0.5)*h.cellH)
	case *tcell.EventFocus:
		if !ev.Focused {
			h.ctrl.PointerLeave()
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		w, hgt, ratio := h.container(cols, rows)
		h.surf.SetContainer(w, hgt, ratio)
		h.ctrl.Resize()
		h.screen.Sync()
	}
	return true
}

// container maps a cell grid to logical size and density. One backing pixel
// is CellWidth units wide.
func (h *Host) container(cols, rows int) (w, hgt, ratio float64) {
	return float64(cols) * h.cellW, float64(rows) * h.cellH, 1 / h.cellW
}

// present copies the raster onto the screen, sampling an upper and a lower
// pixel per cell.
func (h *Host) present() {
	img := h.surf.Image()
	cols, rows := h.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	b := img.Bounds()

	for cy := 0; cy < rows; cy++ {
		top := sampleRow(b, rows, float64(cy)+0.25)
		bottom := sampleRow(b, rows, float64(cy)+0.75)
		for cx := 0; cx < cols; cx++ {
			x := b.Min.X + clampIndex(int((float64(cx)+0.5)*float64(b.Dx())/float64(cols)), b.Dx())
			style := tcell.StyleDefault.
				Foreground(cellColor(img, x, top)).
				Background(cellColor(img, x, bottom))
			h.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	h.screen.Show()
}

func sampleRow(b image.Rectangle, rows int, at float64) int {
	return b.Min.Y + clampIndex(int(at*float64(b.Dy())/float64(rows)), b.Dy())
}

func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func cellColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
