package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-science/internal/config"
	"github.com/ironsheep/image-science/internal/server"
	"github.com/ironsheep/image-science/internal/watch"
)

// newServeCmd creates the serve command.
func (a *App) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin and stdout",
		Long: `Run the MCP (Model Context Protocol) server.

Requests are read from stdin, one JSON-RPC message per line, and responses
are written to stdout. Logs go to stderr. Configure the command in your MCP
client.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.New(a.eng, Version).Serve(a.stdin, a.stdout)
		},
	}
}

// watchOptions holds flag overrides for the watch command.
type watchOptions struct {
	mode      string
	size      float64
	maxWidth  int
	maxHeight int
	suffix    string
	format    string
	outputDir string
	initial   bool
}

// newWatchCmd creates the watch command.
func (a *App) newWatchCmd() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Generate derivatives for images dropped into a directory",
		Long: `Watch a directory and write a derivative for every image created in it.

Modes:
  thumbnail  longest edge becomes --size
  cropped    centred square crop, then --size
  fit        largest size within --max-width x --max-height

Flags override the watch section of the configuration file.

Examples:
  # Thumbnail new uploads into a separate directory
  image-science watch uploads --output-dir thumbs --size 200

  # Square avatars as JPEG, including files already present
  image-science watch avatars --mode cropped --size 96 --format jpg --initial`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Watch
			flags := cmd.Flags()
			if flags.Changed("mode") {
				cfg.Mode = opts.mode
			}
			if flags.Changed("size") {
				cfg.Size = opts.size
			}
			if flags.Changed("max-width") {
				cfg.MaxWidth = opts.maxWidth
			}
			if flags.Changed("max-height") {
				cfg.MaxHeight = opts.maxHeight
			}
			if flags.Changed("suffix") {
				cfg.Suffix = opts.suffix
			}
			if flags.Changed("format") {
				cfg.Format = opts.format
			}
			if flags.Changed("output-dir") {
				cfg.OutputDir = opts.outputDir
			}

			check := *a.cfg
			check.Watch = cfg
			if err := check.Validate(); err != nil {
				return err
			}

			w := watch.New(a.eng, cfg)
			if opts.initial {
				results, err := w.ProcessDir(args[0])
				if err != nil {
					return err
				}
				for _, r := range results {
					fmt.Fprintf(a.stdout, "wrote %s (%dx%d)\n", r.Output, r.Width, r.Height)
				}
			}
			return w.Run(cmd.Context(), args[0])
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", config.ModeThumbnail, "Derivative mode (thumbnail, cropped, fit)")
	cmd.Flags().Float64Var(&opts.size, "size", 0, "Longest edge for thumbnail and cropped modes")
	cmd.Flags().IntVar(&opts.maxWidth, "max-width", 0, "Bounding box width for fit mode")
	cmd.Flags().IntVar(&opts.maxHeight, "max-height", 0, "Bounding box height for fit mode")
	cmd.Flags().StringVar(&opts.suffix, "suffix", "", "Suffix appended to derivative base names")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output extension (default: source extension)")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory for derivatives (default: next to source)")
	cmd.Flags().BoolVar(&opts.initial, "initial", false, "Process images already in the directory first")

	return cmd
}
