package glyphart

import (
	"context"
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dorcha-inc/glyphart/imageutil"
)

const (
	// DefaultDarkening scales luminance before glyph selection. Values in
	// [0.2, 0.9] are the useful range.
	DefaultDarkening = 0.3

	// DefaultAlphaThreshold is the lowest alpha treated as opaque; pixels
	// below it render as background.
	DefaultAlphaThreshold = 128
)

// Cell is one classified output position.
type Cell struct {
	// Glyph is the character drawn in the cell.
	Glyph rune
	// Color is the xterm 256-color index the glyph is drawn in.
	Color ColorIndex
	// RGB is the sampled pixel color, used by true-color output. Zero for
	// transparent cells.
	RGB imageutil.RGB
	// Transparent marks background cells.
	Transparent bool
}

// BackgroundCell is the cell every transparent pixel classifies to.
var BackgroundCell = Cell{Glyph: ' ', Color: ColorBlack, Transparent: true}

// Classifier turns sampled pixels into cells. The zero value is not
// useful; start from DefaultClassifier.
type Classifier struct {
	Palette        GlyphPalette
	Darkening      float64
	AlphaThreshold uint8
}

// DefaultClassifier returns the full-block palette, 0.3 darkening and a
// 50% opacity threshold.
func DefaultClassifier() Classifier {
	return Classifier{
		Palette:        DefaultGlyphPalette,
		Darkening:      DefaultDarkening,
		AlphaThreshold: DefaultAlphaThreshold,
	}
}

// Classify maps a single straight-alpha pixel to a cell. It is a pure
// function of the four channels.
func (c Classifier) Classify(px color.NRGBA) Cell {
	if px.A < c.AlphaThreshold {
		return BackgroundCell
	}
	darkened := imageutil.LuminanceOf(px) * c.Darkening
	return Cell{
		Glyph: c.Palette.Glyph(darkened),
		Color: QuantizeXterm256(px.R, px.G, px.B),
		RGB:   imageutil.RGBFromColor(px),
	}
}

// ClassifyImage classifies every pixel of grid, returning one row of
// cells per pixel row. Rows are classified concurrently by up to workers
// goroutines (GOMAXPROCS when workers <= 0). Each cell is written exactly
// once, so the result does not depend on the worker count. If ctx is
// cancelled no cells are returned.
func (c Classifier) ClassifyImage(ctx context.Context, grid *imageutil.NRGBAImage, workers int) ([][]Cell, error) {
	width, height := grid.Width(), grid.Height()
	cells := make([][]Cell, height)
	if height == 0 {
		return cells, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := 0; y < height; y++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := make([]Cell, width)
			for x := range row {
				row[x] = c.Classify(grid.NRGBAAt(x, y))
			}
			cells[y] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cells, nil
}
