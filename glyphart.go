// Package glyphart converts raster images into colorized character art
// for 256-color terminals.
//
// The pipeline is a pure function of the image and the options:
//
//  1. the image is decoded into a straight-alpha NRGBA grid
//     (imageutil.LoadImage),
//  2. resampled to width x floor(width * h/w * 0.5) cells with
//     nearest-neighbour sampling (Resample),
//  3. each sampled pixel is classified into a glyph and an xterm color
//     index (Classifier.Classify),
//  4. every cell is written as ESC[38;5;{n}m{glyph}ESC[0m, rows joined by
//     newlines (RenderANSI).
//
// Pixels with alpha below 128 become a space in color 16. Opaque pixels
// pick a glyph from an ordered palette by BT.601 luminance scaled by 0.3,
// and their color from the 6x6x6 cube.
package glyphart

import (
	"context"
)

// ImageToANSI converts an image to character art. The function takes the
// path to an image file and the output width in cells and returns the
// ANSI string, using the default palette, darkening and threshold.
func ImageToANSI(imagePath string, width int) (string, error) {
	return NewConverter(WithWidth(width)).ConvertFile(context.Background(), imagePath)
}

// ImageToCells converts an image to its classified cell grid. The function
// takes the path to an image file and the output width in cells, and
// returns one row of cells per output line.
func ImageToCells(imagePath string, width int) ([][]Cell, error) {
	return NewConverter(WithWidth(width)).CellsFile(context.Background(), imagePath)
}
