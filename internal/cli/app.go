// Package cli provides the image-science command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-science/internal/config"
	"github.com/ironsheep/image-science/internal/engine"
	"github.com/ironsheep/image-science/internal/logging"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	logLevel   string
	engine     string
}

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	opts globalOptions
	cfg  *config.Config
	eng  engine.Engine
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "image-science",
		Short: "Image geometry and thumbnail tool",
		Long: `image-science loads images, derives resized, thumbnailed and cropped
copies, and samples pixel colours. It runs as a one-shot command, as an MCP
server on stdio, or as a directory watcher that thumbnails new files.

Configuration comes from --config (YAML or JSON), then IMAGE_SCIENCE_*
environment variables, then flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}

	flags := app.root.PersistentFlags()
	flags.StringVarP(&app.opts.configPath, "config", "c", "", "Path to configuration file (.yaml, .yml or .json)")
	flags.StringVar(&app.opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&app.opts.engine, "engine", "", "Imaging engine (imaging, bild)")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newServeCmd(),
		app.newWatchCmd(),
		app.newInfoCmd(),
		app.newTypeCmd(),
		app.newColorCmd(),
		app.newResizeCmd(),
		app.newThumbnailCmd(),
		app.newCroppedThumbnailCmd(),
		app.newFitCmd(),
		app.newCropCmd(),
		app.newConvertCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// WithInput sets the reader the serve command reads requests from.
func (a *App) WithInput(stdin io.Reader) *App {
	a.stdin = stdin
	a.root.SetIn(stdin)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// setup resolves the configuration, installs the logger and builds the
// engine before any command runs.
func (a *App) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(a.opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if a.opts.logLevel != "" || a.opts.engine != "" {
		if a.opts.logLevel != "" {
			cfg.Log.Level = a.opts.logLevel
		}
		if a.opts.engine != "" {
			cfg.Engine = a.opts.engine
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logCfg := cfg.LoggingConfig()
	logCfg.Output = a.stderr
	logging.SetDefault(logging.New(logCfg))

	eng, err := config.NewEngine(cfg)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.eng = eng

	logging.Debug().
		Add(logging.Component("cli")).
		Add(logging.Operation(cmd.Name())).
		Add(logging.Engine(eng.Name())).
		Msg("configured")
	return nil
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// The version needs no configuration or engine.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "image-science version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}
