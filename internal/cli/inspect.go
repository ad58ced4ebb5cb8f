package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-science/internal/imaging"
)

// printJSON writes v as indented JSON.
func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newInfoCmd creates the info command.
func (a *App) newInfoCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "info PATH",
		Short: "Show dimensions, format and colour type of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := imaging.LoadImageInfo(a.eng, args[0])
			if err != nil {
				return err
			}
			if outputJSON {
				return a.printJSON(info)
			}

			fmt.Fprintf(a.stdout, "%s\n", args[0])
			fmt.Fprintf(a.stdout, "  Size:       %dx%d\n", info.Width, info.Height)
			fmt.Fprintf(a.stdout, "  Format:     %s\n", info.Format)
			fmt.Fprintf(a.stdout, "  Depth:      %d bpp\n", info.Depth)
			fmt.Fprintf(a.stdout, "  Color type: %s\n", info.ColorType)
			fmt.Fprintf(a.stdout, "  File size:  %d bytes\n", info.FileSizeBytes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	return cmd
}

// newTypeCmd creates the type command.
func (a *App) newTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "type PATH...",
		Short: "Print the detected file type without decoding",
		Long: `Print the symbolic file type (PNG, JPEG, GIF, ...) of each file.

The type is read from the file header, falling back to the extension.
Files whose type cannot be determined print "unknown".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				name := imaging.ImageType(a.eng, path)
				if name == "" {
					name = "unknown"
				}
				if len(args) == 1 {
					fmt.Fprintln(a.stdout, name)
				} else {
					fmt.Fprintf(a.stdout, "%s: %s\n", path, name)
				}
			}
			return nil
		},
	}
}

// newColorCmd creates the color command.
func (a *App) newColorCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "color PATH X Y",
		Short: "Sample the colour of one pixel",
		Long: `Sample the colour of the pixel at (X, Y).

The origin is the top-left corner and Y grows downward.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid x coordinate: %w", err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid y coordinate: %w", err)
			}

			var c *imaging.ColorResult
			err = imaging.WithImage(a.eng, args[0], func(img *imaging.Handle) error {
				var serr error
				c, serr = img.SampleColor(x, y)
				return serr
			})
			if err != nil {
				return err
			}

			if outputJSON {
				return a.printJSON(c)
			}
			fmt.Fprintf(a.stdout, "%s rgb(%d,%d,%d) alpha %d hsl(%d,%d%%,%d%%)\n",
				c.Hex, c.RGB.R, c.RGB.G, c.RGB.B, c.RGBA.A, c.HSL.H, c.HSL.S, c.HSL.L)
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	return cmd
}
