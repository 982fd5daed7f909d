package glyphart

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dorcha-inc/glyphart/imageutil"
)

// Converter holds the configuration of the image to character art
// pipeline. A Converter keeps no state between calls, so one value can
// convert any number of images, concurrently if need be.
type Converter struct {
	// Configuration options
	Width       int
	Classifier  Classifier
	ColorMode   ColorMode
	Filter      imageutil.Filter
	Adjustments imageutil.Adjustments
	Workers     int
	Decoder     imageutil.Decoder

	logger *zap.Logger
}

// Option is a functional option for configuring a Converter.
type Option func(*Converter)

// NewConverter creates a new Converter with the given options.
// Default values: Width=40, full block palette, Darkening=0.3,
// AlphaThreshold=128, ColorMode256, nearest-neighbour sampling, no
// adjustments, GOMAXPROCS workers and the imageutil.DefaultDecoder.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		Width:      DefaultWidth,
		Classifier: DefaultClassifier(),
		ColorMode:  ColorMode256,
		Filter:     imageutil.FilterNearest,
		Decoder:    imageutil.DefaultDecoder,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithWidth sets the output width in cells.
func WithWidth(width int) Option {
	return func(c *Converter) {
		c.Width = width
	}
}

// WithPalette sets the glyph palette, darkest glyph first.
func WithPalette(p GlyphPalette) Option {
	return func(c *Converter) {
		c.Classifier.Palette = p
	}
}

// WithDarkening sets the factor luminance is scaled by before glyph
// selection.
func WithDarkening(factor float64) Option {
	return func(c *Converter) {
		c.Classifier.Darkening = factor
	}
}

// WithAlphaThreshold sets the lowest alpha rendered as a glyph.
func WithAlphaThreshold(threshold uint8) Option {
	return func(c *Converter) {
		c.Classifier.AlphaThreshold = threshold
	}
}

// WithColorMode selects 256-color or true-color escapes.
func WithColorMode(mode ColorMode) Option {
	return func(c *Converter) {
		c.ColorMode = mode
	}
}

// WithFilter sets the resampling filter.
func WithFilter(f imageutil.Filter) Option {
	return func(c *Converter) {
		c.Filter = f
	}
}

// WithAdjustments sets tonal adjustments applied before resampling.
func WithAdjustments(adj imageutil.Adjustments) Option {
	return func(c *Converter) {
		c.Adjustments = adj
	}
}

// WithWorkers bounds the number of rows classified concurrently.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.Workers = n
	}
}

// WithDecoder replaces the decoder used by ConvertFile.
func WithDecoder(dec imageutil.Decoder) Option {
	return func(c *Converter) {
		c.Decoder = dec
	}
}

// WithLogger sets the logger stage timings are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Validate checks the configuration before any image work starts.
func (c *Converter) Validate() error {
	if c.Width <= 0 || c.Width > MaxCells {
		return fmt.Errorf("%w: width must be between 1 and %d cells, got %d",
			ErrInvalidDimension, MaxCells, c.Width)
	}
	if err := c.Classifier.Palette.Validate(); err != nil {
		return err
	}
	if _, ok := colorModeNames[c.ColorMode]; !ok {
		return fmt.Errorf("%w: %v", ErrUnknownColorMode, c.ColorMode)
	}
	return nil
}

// Cells runs the loader-independent part of the pipeline: adjust,
// resample and classify. The returned grid has TargetSize rows, which may
// be none.
func (c *Converter) Cells(ctx context.Context, img *imageutil.NRGBAImage) ([][]Cell, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	width, height, err := TargetSize(img.Width(), img.Height(), c.Width)
	if err != nil {
		return nil, err
	}
	grid := imageutil.PrepareForText(img, width, height, c.Adjustments, c.Filter)
	c.logger.Debug("Resampled image",
		zap.Int("source_width", img.Width()),
		zap.Int("source_height", img.Height()),
		zap.Int("columns", width),
		zap.Int("rows", height),
		zap.Stringer("filter", c.Filter),
		zap.Duration("elapsed", time.Since(start)),
	)

	start = time.Now()
	cells, err := c.Classifier.ClassifyImage(ctx, grid, c.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to classify cells: %w", err)
	}
	c.logger.Debug("Classified cells",
		zap.Int("cells", width*height),
		zap.Duration("elapsed", time.Since(start)),
	)
	return cells, nil
}

// Convert renders img as character art. Identical images and options
// always produce byte-identical output.
func (c *Converter) Convert(ctx context.Context, img *imageutil.NRGBAImage) (string, error) {
	cells, err := c.Cells(ctx, img)
	if err != nil {
		return "", err
	}
	return RenderANSI(cells, c.ColorMode), nil
}

// Load decodes the image at path with the converter's decoder. A path of
// "-" reads standard input.
func (c *Converter) Load(path string) (*imageutil.NRGBAImage, error) {
	start := time.Now()
	img, err := imageutil.LoadImageWith(path, c.Decoder)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Loaded image",
		zap.String("path", path),
		zap.Int("width", img.Width()),
		zap.Int("height", img.Height()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return img, nil
}

// CellsFile loads path and classifies it. The configuration is validated
// before the file is opened.
func (c *Converter) CellsFile(ctx context.Context, path string) ([][]Cell, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return c.Cells(ctx, img)
}

// ConvertFile loads path and renders it as character art.
func (c *Converter) ConvertFile(ctx context.Context, path string) (string, error) {
	cells, err := c.CellsFile(ctx, path)
	if err != nil {
		return "", err
	}
	return RenderANSI(cells, c.ColorMode), nil
}
