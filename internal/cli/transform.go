package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-science/internal/imaging"
)

// ErrNotSaved is returned when the encoder declined to write the output.
var ErrNotSaved = errors.New("image not saved")

// transform opens src, derives an image with fn and saves it to dst.
func (a *App) transform(src, dst string, fn func(*imaging.Handle, func(*imaging.Handle) error) error) error {
	return imaging.WithImage(a.eng, src, func(img *imaging.Handle) error {
		return fn(img, func(out *imaging.Handle) error {
			saved, err := out.Save(dst)
			if err != nil {
				return err
			}
			if !saved {
				return fmt.Errorf("%w: %s", ErrNotSaved, dst)
			}
			fmt.Fprintf(a.stdout, "wrote %s (%dx%d)\n", dst, out.Width(), out.Height())
			return nil
		})
	})
}

// newResizeCmd creates the resize command.
func (a *App) newResizeCmd() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "resize SRC DST",
		Short: "Resize an image to an exact size",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(args[0], args[1], func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
				return img.WithResize(width, height, fn)
			})
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Output width in pixels (required)")
	cmd.Flags().IntVar(&height, "height", 0, "Output height in pixels (required)")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

// newThumbnailCmd creates the thumbnail command.
func (a *App) newThumbnailCmd() *cobra.Command {
	var size float64

	cmd := &cobra.Command{
		Use:   "thumbnail SRC DST",
		Short: "Create a proportional thumbnail",
		Long: `Create a thumbnail whose longest edge is --size.

The other edge keeps the aspect ratio and is truncated toward zero.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(args[0], args[1], func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
				return img.WithThumbnail(size, fn)
			})
		},
	}

	cmd.Flags().Float64Var(&size, "size", 0, "Longest edge in pixels (required)")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

// newCroppedThumbnailCmd creates the cropped-thumbnail command.
func (a *App) newCroppedThumbnailCmd() *cobra.Command {
	var size float64

	cmd := &cobra.Command{
		Use:   "cropped-thumbnail SRC DST",
		Short: "Crop to a centred square and thumbnail it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(args[0], args[1], func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
				return img.WithCroppedThumbnail(size, fn)
			})
		},
	}

	cmd.Flags().Float64Var(&size, "size", 0, "Edge of the square in pixels (required)")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

// newFitCmd creates the fit command.
func (a *App) newFitCmd() *cobra.Command {
	var maxWidth, maxHeight int

	cmd := &cobra.Command{
		Use:   "fit SRC DST",
		Short: "Scale an image to fit a box without enlarging it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(args[0], args[1], func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
				return img.WithFitWithin(maxWidth, maxHeight, fn)
			})
		},
	}

	cmd.Flags().IntVar(&maxWidth, "max-width", 0, "Box width in pixels (required)")
	cmd.Flags().IntVar(&maxHeight, "max-height", 0, "Box height in pixels (required)")
	_ = cmd.MarkFlagRequired("max-width")
	_ = cmd.MarkFlagRequired("max-height")

	return cmd
}

// cropOptions holds options for the crop command.
type cropOptions struct {
	x1, y1, x2, y2 int
	region         string
}

// newCropCmd creates the crop command.
func (a *App) newCropCmd() *cobra.Command {
	opts := &cropOptions{}

	cmd := &cobra.Command{
		Use:   "crop SRC DST",
		Short: "Extract a rectangle or named region",
		Long: `Extract the rectangle (--x1,--y1)-(--x2,--y2), or a named --region.

The left and top edges are inclusive, the right and bottom edges exclusive.

Regions:
  top-left, top-right, bottom-left, bottom-right,
  top-half, bottom-half, left-half, right-half, center`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(args[0], args[1], func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
				rect := imaging.CropRect{Left: opts.x1, Top: opts.y1, Right: opts.x2, Bottom: opts.y2}
				if opts.region != "" {
					var err error
					if rect, err = imaging.PlanRegion(opts.region, img.Width(), img.Height()); err != nil {
						return err
					}
				}
				return img.WithCrop(rect, fn)
			})
		},
	}

	cmd.Flags().IntVar(&opts.x1, "x1", 0, "Left edge (inclusive)")
	cmd.Flags().IntVar(&opts.y1, "y1", 0, "Top edge (inclusive)")
	cmd.Flags().IntVar(&opts.x2, "x2", 0, "Right edge (exclusive)")
	cmd.Flags().IntVar(&opts.y2, "y2", 0, "Bottom edge (exclusive)")
	cmd.Flags().StringVar(&opts.region, "region", "", "Named region instead of coordinates")
	cmd.MarkFlagsMutuallyExclusive("region", "x1")
	cmd.MarkFlagsMutuallyExclusive("region", "x2")

	return cmd
}

// newConvertCmd creates the convert command.
func (a *App) newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert SRC DST",
		Short: "Re-encode an image in the format of the DST extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(args[0], args[1], func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
				return fn(img)
			})
		},
	}
}
