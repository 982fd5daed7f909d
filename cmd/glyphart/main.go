package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dorcha-inc/glyphart"
	"github.com/dorcha-inc/glyphart/imageutil"
	"github.com/dorcha-inc/glyphart/internal/config"
	"github.com/dorcha-inc/glyphart/internal/logging"
)

var (
	version   string // Set via -ldflags at build time
	buildDate string // Set via -ldflags at build time
)

func init() {
	if version == "" {
		version = "dev"
	}
	if buildDate == "" {
		buildDate = "unknown"
	}
}

// rootFlags are the flags that are not configuration keys.
type rootFlags struct {
	configPath string
	outputPath string
	pngPath    string
}

// addConfigFlags registers one persistent flag per configuration key so
// every subcommand resolves the same configuration.
func addConfigFlags(cmd *cobra.Command, flags *rootFlags) {
	d := config.Defaults()
	pf := cmd.PersistentFlags()

	pf.StringVar(&flags.configPath, "config", "", "Path to a glyphart.yaml config file")

	pf.Int("width", d["width"].(int), "Output width in cells (the positional width wins)")
	pf.String("palette", d["palette"].(string), "Glyph palette: block, ascii, or literal glyphs from darkest to lightest")
	pf.Float64("darkening", d["darkening"].(float64), "Factor luminance is scaled by before glyph selection")
	pf.Int("alpha-threshold", d["alpha_threshold"].(int), "Lowest alpha drawn as a glyph (0-255)")
	pf.String("color-mode", d["color_mode"].(string), "Escape grammar: 256 or truecolor")
	pf.String("filter", d["filter"].(string), "Resampling filter: "+strings.Join(imageutil.FilterNames(), ", "))
	pf.Int("workers", d["workers"].(int), "Rows classified concurrently (0 = GOMAXPROCS)")
	pf.Bool("auto-orient", d["auto_orient"].(bool), "Apply EXIF orientation when decoding")

	pf.Float64("gamma", d["gamma"].(float64), "Gamma correction (1 = unchanged)")
	pf.Float64("brightness", d["brightness"].(float64), "Brightness adjustment in [-100, 100]")
	pf.Float64("contrast", d["contrast"].(float64), "Contrast adjustment in [-100, 100]")
	pf.Float64("saturation", d["saturation"].(float64), "Saturation adjustment in [-100, 500]")
	pf.Float64("sharpen", d["sharpen"].(float64), "Unsharp mask sigma (0 = off)")
	pf.Bool("invert", d["invert"].(bool), "Invert colors before classification")

	pf.Int("preview-scale", d["preview_scale"].(int), "Integer upscale of the PNG preview")
	pf.Float64("preview-font-size", d["preview_font_size"].(float64), "Point size of the PNG preview font")

	pf.String("log-format", d["log_format"].(string), "Log format: pretty or json")
	pf.String("log-level", d["log_level"].(string), "Log level: debug, info, warn or error")
}

// loadConfig resolves the configuration for cmd and installs the global
// logger it describes.
func loadConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := logging.Init(cfg.LogFormat, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// parseWidth parses the optional positional width argument.
func parseWidth(arg string) (int, error) {
	width, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("width must be an integer, got %q", arg)
	}
	if width <= 0 || width > glyphart.MaxCells {
		return 0, fmt.Errorf("%w: width must be between 1 and %d cells, got %d",
			glyphart.ErrInvalidDimension, glyphart.MaxCells, width)
	}
	return width, nil
}

// writeArt writes the rendered cells and a final newline to w.
func writeArt(w io.Writer, cells [][]glyphart.Cell, mode glyphart.ColorMode) error {
	if err := glyphart.WriteANSI(w, cells, mode); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeArtFile(path string, cells [][]glyphart.Cell, mode glyphart.ColorMode) (err error) {
	f, err := os.Create(path) // #nosec G304 -- path comes from the user's own flag
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()
	return writeArt(f, cells, mode)
}

// convert runs the pipeline for one image and writes the art, plus a
// trailing newline, to out.
func convert(ctx context.Context, cfg *config.Config, imagePath string, flags *rootFlags, out io.Writer) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	conv := glyphart.NewConverter(append(opts, glyphart.WithLogger(zap.L()))...)

	cells, err := conv.CellsFile(ctx, imagePath)
	if err != nil {
		return err
	}

	if flags.outputPath != "" {
		if err := writeArtFile(flags.outputPath, cells, conv.ColorMode); err != nil {
			return err
		}
		zap.L().Info("Wrote character art", zap.String("path", flags.outputPath))
	} else if err := writeArt(out, cells, conv.ColorMode); err != nil {
		return err
	}

	if flags.pngPath == "" {
		return nil
	}
	if len(cells) == 0 {
		zap.L().Warn("Skipping PNG preview of an empty grid", zap.String("path", flags.pngPath))
		return nil
	}
	if err := glyphart.SavePreview(cells, flags.pngPath, cfg.PreviewOptions()); err != nil {
		return err
	}
	zap.L().Info("Wrote PNG preview", zap.String("path", flags.pngPath))
	return nil
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "glyphart [flags] <imagePath|-> [width]",
		Short: "Render images as colored character art for 256-color terminals",
		Long: `glyphart converts a raster image into lines of glyphs, each wrapped in
an xterm 256-color escape sequence, and prints them to stdout.

The image is resampled to width columns and width * h/w * 0.5 rows, so
the art keeps its proportions in terminal cells. Transparent pixels
become blank cells. Use "-" to read the image from stdin.

Settings are read from defaults, then glyphart.yaml (or --config), then
GLYPHART_* environment variables, then flags.`,
		Version:       fmt.Sprintf("%s (built: %s)", version, buildDate),
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags.configPath)
			if err != nil {
				return err
			}
			defer zap.L().Sync() //nolint:errcheck // Ignore sync errors on stderr

			if len(args) == 2 {
				width, err := parseWidth(args[1])
				if err != nil {
					return err
				}
				cfg.Width = width
			}
			return convert(cmd.Context(), cfg, args[0], flags, cmd.OutOrStdout())
		},
	}

	addConfigFlags(cmd, flags)
	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Write the art to a file instead of stdout")
	cmd.Flags().StringVar(&flags.pngPath, "png", "", "Also write a PNG preview of the art to this path")

	cmd.AddCommand(newConfigCmd(flags))
	cmd.AddCommand(newSwatchCmd())

	return cmd
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(stderr, "Error: interrupted")
			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
