package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/frame"
	"github.com/iburimskiy/particle-field/internal/particle"
	"github.com/iburimskiy/particle-field/internal/raster"
	"github.com/iburimskiy/particle-field/internal/render"
)

// previewOpts holds the flags of the preview command.
type previewOpts struct {
	output  string  // PNG path, "-" for stdout
	ticks   int     // ticks to run before capturing
	width   float64 // logical width
	height  float64 // logical height
	ratio   float64 // pixel density
	pointer string  // "x,y" pointer held over the field, empty for none
}

func newPreviewCmd(root *rootOpts) *cobra.Command {
	opts := previewOpts{
		output: "field.png",
		ticks:  120,
		width:  config.WindowWidth,
		height: config.WindowHeight,
		ratio:  1,
	}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the field headlessly to a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := opts.validate(); err != nil {
				return err
			}
			if opts.output == "-" {
				return runPreview(cmd.Context(), cmd.OutOrStdout(), root, opts)
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			f, err := os.Create(opts.output)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := f.Close(); err == nil {
					err = cerr
				}
			}()
			if err := runPreview(cmd.Context(), f, root, opts); err != nil {
				return err
			}
			prog.done("preview written", "path", opts.output, "ticks", opts.ticks)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "PNG output path (- for stdout)")
	cmd.Flags().IntVarP(&opts.ticks, "ticks", "n", opts.ticks, "ticks to run before capturing")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "logical width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "logical height")
	cmd.Flags().Float64Var(&opts.ratio, "ratio", opts.ratio, "pixel density")
	cmd.Flags().StringVar(&opts.pointer, "pointer", "", `pointer position "x,y" held during the run`)

	return cmd
}

// runPreview runs a field on an off-screen surface for opts.ticks frames and
// writes the last frame as PNG.
func runPreview(ctx context.Context, w io.Writer, root *rootOpts, opts previewOpts) error {
	if err := opts.validate(); err != nil {
		return err
	}
	bg, err := render.ParseColor(root.cfg.Background)
	if err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	surf := raster.New(opts.width, opts.height, opts.ratio, bg)
	frames := frame.NewQueue()

	fieldOpts := append([]field.Option{field.WithLogger(logger)}, root.fieldOptions()...)
	ctrl, err := field.New(surf, frames, fieldOpts...)
	if err != nil {
		return err
	}
	defer ctrl.Stop()

	if opts.pointer != "" {
		x, y, err := parsePoint(opts.pointer)
		if err != nil {
			return err
		}
		ctrl.PointerMove(x, y)
	}

	// New already ran the first tick.
	for i := 1; i < opts.ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if frames.Fire() == 0 {
			return fmt.Errorf("field stopped after %d ticks", ctrl.Ticks())
		}
	}
	return surf.EncodePNG(w)
}

// validate checks the flags that need no output yet.
func (o previewOpts) validate() error {
	if o.ticks < 1 {
		return fmt.Errorf("%w: ticks must be at least 1", config.ErrInvalid)
	}
	if o.pointer != "" {
		if _, _, err := parsePoint(o.pointer); err != nil {
			return err
		}
	}
	return nil
}

// parsePoint reads "x,y". Both coordinates must be finite.
func parsePoint(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: pointer %q, want x,y", config.ErrInvalid, s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, fmt.Errorf("%w: pointer x: %v", config.ErrInvalid, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, fmt.Errorf("%w: pointer y: %v", config.ErrInvalid, err)
	}
	if !particle.Finite(x, y) {
		return 0, 0, fmt.Errorf("%w: pointer %q is not finite", config.ErrInvalid, s)
	}
	return x, y, nil
}
