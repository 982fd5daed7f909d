package glyphart

import (
	"fmt"

	"github.com/dorcha-inc/glyphart/imageutil"
)

// ColorIndex selects one entry of the xterm 256-color palette: 0-15 are
// the system colors, 16-231 the 6x6x6 color cube and 232-255 the
// grayscale ramp.
type ColorIndex uint8

const (
	// ColorBlack is the cube corner (0,0,0). Transparent cells use it.
	ColorBlack ColorIndex = 16
	// ColorWhite is the cube corner (5,5,5).
	ColorWhite ColorIndex = 231
)

// cubeLevels are the channel intensities of the six cube steps.
var cubeLevels = [6]uint8{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}

// systemColors are the xterm defaults for indices 0-15.
var systemColors = [16]imageutil.RGB{
	{0x00, 0x00, 0x00}, {0x80, 0x00, 0x00}, {0x00, 0x80, 0x00}, {0x80, 0x80, 0x00},
	{0x00, 0x00, 0x80}, {0x80, 0x00, 0x80}, {0x00, 0x80, 0x80}, {0xc0, 0xc0, 0xc0},
	{0x80, 0x80, 0x80}, {0xff, 0x00, 0x00}, {0x00, 0xff, 0x00}, {0xff, 0xff, 0x00},
	{0x00, 0x00, 0xff}, {0xff, 0x00, 0xff}, {0x00, 0xff, 0xff}, {0xff, 0xff, 0xff},
}

// xtermPalette maps every ColorIndex to its RGB value. Built once at init
// and never written afterwards.
var xtermPalette = buildXtermPalette()

func buildXtermPalette() [256]imageutil.RGB {
	var p [256]imageutil.RGB
	copy(p[:16], systemColors[:])
	for i := 0; i < 216; i++ {
		p[16+i] = imageutil.RGB{
			R: cubeLevels[i/36],
			G: cubeLevels[(i/6)%6],
			B: cubeLevels[i%6],
		}
	}
	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		p[232+i] = imageutil.RGB{R: v, G: v, B: v}
	}
	return p
}

// RGB returns the color the xterm palette displays for c.
func (c ColorIndex) RGB() imageutil.RGB {
	return xtermPalette[c]
}

func (c ColorIndex) String() string {
	return fmt.Sprintf("%d", uint8(c))
}

// QuantizeXterm256 maps an 8-bit RGB triple onto the xterm 6x6x6 color
// cube. Near-black and near-white grays snap to the cube corners; every
// other color lands on
//
//	16 + 36*r6 + 6*g6 + b6, where c6 = floor(c/255 * 5)
//
// so the result is always in [16, 231].
func QuantizeXterm256(r, g, b uint8) ColorIndex {
	if r == g && g == b {
		if r < 8 {
			return ColorBlack
		}
		if r > 248 {
			return ColorWhite
		}
	}
	return ColorIndex(16 + 36*cubeStep(r) + 6*cubeStep(g) + cubeStep(b))
}

// cubeStep truncates c/255*5 to an integer in [0, 5].
func cubeStep(c uint8) int {
	return int(float64(c) / 255.0 * 5)
}

// Cube returns the color cube index for cube coordinates r, g, b in [0,5].
// Values outside that range are clamped.
func Cube(r, g, b int) ColorIndex {
	clamp := func(v int) int { return min(max(v, 0), 5) }
	return ColorIndex(16 + 36*clamp(r) + 6*clamp(g) + clamp(b))
}
