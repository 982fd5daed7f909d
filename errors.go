package glyphart

import (
	"errors"

	"github.com/dorcha-inc/glyphart/imageutil"
)

var (
	// ErrDecode is matched by errors from loading a path that is missing,
	// unreadable or not a supported raster format.
	ErrDecode = imageutil.ErrDecode

	// ErrInvalidDimension is returned when the requested width is not a
	// positive number of cells or the grid would exceed MaxCells.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrEmptyPalette is returned when a glyph palette has no glyphs.
	ErrEmptyPalette = errors.New("glyph palette is empty")

	// ErrUnknownColorMode is returned by ParseColorMode.
	ErrUnknownColorMode = errors.New("unknown color mode")

	// ErrUnknownFilter is returned for a resampling filter name that is not
	// one of imageutil.FilterNames.
	ErrUnknownFilter = imageutil.ErrUnknownFilter
)
