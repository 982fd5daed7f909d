package glyphart

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/dorcha-inc/glyphart/imageutil"
)

// PreviewOptions control PNG previews of rendered cells.
type PreviewOptions struct {
	// Mode picks the color a cell is painted with: its palette entry for
	// ColorMode256, its sampled RGB for ColorModeTrueColor.
	Mode ColorMode
	// FontSize is the Go Mono point size at 72 DPI.
	FontSize float64
	// Scale is an integer nearest-neighbour upscale of the finished image.
	Scale int
}

// DefaultPreviewOptions renders 256-color cells with 12pt Go Mono.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{Mode: ColorMode256, FontSize: 12, Scale: 1}
}

var (
	previewFontOnce sync.Once
	previewFont     *truetype.Font
	previewFontErr  error
)

// loadPreviewFont parses the embedded Go Mono font once. Go Mono covers
// the WGL4 block elements, including the default full block.
func loadPreviewFont() (*truetype.Font, error) {
	previewFontOnce.Do(func() {
		previewFont, previewFontErr = freetype.ParseFont(gomono.TTF)
		if previewFontErr != nil {
			previewFontErr = fmt.Errorf("failed to parse preview font: %w", previewFontErr)
		}
	})
	return previewFont, previewFontErr
}

// PreviewCellSize returns the pixel size of one cell before scaling and
// the baseline offset from the top of the cell.
func PreviewCellSize(opts PreviewOptions) (width, height, baseline int, err error) {
	ttf, err := loadPreviewFont()
	if err != nil {
		return 0, 0, 0, err
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	advance, ok := face.GlyphAdvance('M')
	if !ok {
		return 0, 0, 0, fmt.Errorf("preview font has no advance for 'M'")
	}
	metrics := face.Metrics()
	return advance.Ceil(), metrics.Height.Ceil(), metrics.Ascent.Ceil(), nil
}

// Preview rasterises cells the way a terminal with a black background
// would show them. Background cells stay black; every other cell's glyph
// is drawn in its color.
func Preview(cells [][]Cell, opts PreviewOptions) (*image.RGBA, error) {
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultPreviewOptions().FontSize
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}

	rows := len(cells)
	cols := 0
	for _, row := range cells {
		cols = max(cols, len(row))
	}
	if rows == 0 || cols == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0)), nil
	}

	ttf, err := loadPreviewFont()
	if err != nil {
		return nil, err
	}
	cellW, cellH, baseline, err := PreviewCellSize(opts)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(opts.FontSize)
	ctx.SetClip(canvas.Bounds())
	ctx.SetDst(canvas)
	ctx.SetHinting(font.HintingFull)

	for y, row := range cells {
		for x, cell := range row {
			if cell.Transparent || cell.Glyph == ' ' {
				continue
			}
			rgb := cell.Color.RGB()
			if opts.Mode == ColorModeTrueColor {
				rgb = cell.RGB
			}
			ctx.SetSrc(image.NewUniform(rgb.ToColor()))
			pt := freetype.Pt(x*cellW, y*cellH+baseline)
			if _, err := ctx.DrawString(string(cell.Glyph), pt); err != nil {
				return nil, fmt.Errorf("failed to draw glyph %q at (%d,%d): %w", cell.Glyph, x, y, err)
			}
		}
	}

	if opts.Scale == 1 {
		return canvas, nil
	}
	scaled := image.NewRGBA(image.Rect(0, 0, canvas.Bounds().Dx()*opts.Scale, canvas.Bounds().Dy()*opts.Scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return scaled, nil
}

// SavePreview renders cells with Preview and writes them to path. The
// format follows the extension (.png, .jpg, .gif) and defaults to PNG.
// A grid without cells is an error.
func SavePreview(cells [][]Cell, path string, opts PreviewOptions) error {
	img, err := Preview(cells, opts)
	if err != nil {
		return err
	}
	if img.Bounds().Empty() {
		return fmt.Errorf("%w: nothing to preview in an empty grid", ErrInvalidDimension)
	}
	if err := imageutil.SaveImage(img, path); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}
