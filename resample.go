package glyphart

import (
	"fmt"
	"math"

	"github.com/dorcha-inc/glyphart/imageutil"
)

const (
	// DefaultWidth is the output width in cells when none is given.
	DefaultWidth = 40

	// AspectCorrection halves the row count because terminal cells are
	// about twice as tall as they are wide.
	AspectCorrection = 0.5

	// MaxCells bounds the number of cells in one output grid.
	MaxCells = 1 << 24
)

// TargetSize returns the cell grid for a srcW x srcH image rendered width
// cells wide. The height is
//
//	floor(width * (srcH / srcW) * AspectCorrection)
//
// and may be 0 for very wide images at small widths, which is not an
// error. A width <= 0, or a grid of more than MaxCells cells, returns
// ErrInvalidDimension.
func TargetSize(srcW, srcH, width int) (int, int, error) {
	if width <= 0 {
		return 0, 0, fmt.Errorf("%w: width must be a positive number of cells, got %d",
			ErrInvalidDimension, width)
	}
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, fmt.Errorf("%w: source image is %dx%d", ErrInvalidDimension, srcW, srcH)
	}
	aspectRatio := float64(srcH) / float64(srcW)
	rows := float64(width) * aspectRatio * AspectCorrection
	// Compared in floating point so the product cannot overflow int.
	if width > MaxCells || float64(width)*math.Floor(rows) > MaxCells {
		return 0, 0, fmt.Errorf("%w: %d cells wide gives %.0f rows, over the %d cell limit",
			ErrInvalidDimension, width, math.Floor(rows), MaxCells)
	}
	return width, max(int(rows), 0), nil
}

// Resample downsizes img to its TargetSize grid with filter. With
// imageutil.FilterNearest each cell is an exact copy of one source pixel.
func Resample(img *imageutil.NRGBAImage, width int, filter imageutil.Filter) (*imageutil.NRGBAImage, error) {
	w, h, err := TargetSize(img.Width(), img.Height(), width)
	if err != nil {
		return nil, err
	}
	return imageutil.Resize(img, w, h, filter), nil
}
