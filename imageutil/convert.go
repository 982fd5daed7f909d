package imageutil

import "image/color"

// BT.601 luma weights.
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// Luminance returns the perceived brightness of an 8-bit RGB triple in
// [0, 255] using the BT.601 weighting Y = 0.299*R + 0.587*G + 0.114*B,
// the same weights OpenCV's COLOR_BGR2GRAY uses.
func Luminance(r, g, b uint8) float64 {
	return LumaR*float64(r) + LumaG*float64(g) + LumaB*float64(b)
}

// LuminanceOf is Luminance for a color.NRGBA, ignoring alpha.
func LuminanceOf(c color.NRGBA) float64 {
	return Luminance(c.R, c.G, c.B)
}
