package glyphart

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	ESC = "\u001b"

	// Reset clears all SGR attributes.
	Reset = ESC + "[0m"
)

// ColorMode selects the SGR foreground sequence written before each glyph.
type ColorMode int

const (
	// ColorMode256 writes ESC[38;5;{index}m.
	ColorMode256 ColorMode = iota
	// ColorModeTrueColor writes ESC[38;2;{r};{g};{b}m with the sampled
	// pixel color instead of its palette index.
	ColorModeTrueColor
)

var colorModeNames = map[ColorMode]string{
	ColorMode256:       "256",
	ColorModeTrueColor: "truecolor",
}

func (m ColorMode) String() string {
	if name, ok := colorModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ColorMode(%d)", int(m))
}

// ParseColorMode accepts "256" and "truecolor" (also "24bit").
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "256", "ansi256":
		return ColorMode256, nil
	case "truecolor", "24bit":
		return ColorModeTrueColor, nil
	}
	return ColorMode256, fmt.Errorf("%w: %q", ErrUnknownColorMode, s)
}

// appendCell appends one styled cell: the color prefix, the glyph and a
// reset, so no attribute leaks into the next cell or line.
func appendCell(b []byte, c Cell, mode ColorMode) []byte {
	b = append(b, ESC...)
	if mode == ColorModeTrueColor {
		b = append(b, "[38;2;"...)
		b = strconv.AppendUint(b, uint64(c.RGB.R), 10)
		b = append(b, ';')
		b = strconv.AppendUint(b, uint64(c.RGB.G), 10)
		b = append(b, ';')
		b = strconv.AppendUint(b, uint64(c.RGB.B), 10)
	} else {
		b = append(b, "[38;5;"...)
		b = strconv.AppendUint(b, uint64(c.Color), 10)
	}
	b = append(b, 'm')
	b = append(b, string(c.Glyph)...)
	return append(b, Reset...)
}

// RenderLine renders one row of cells without a line terminator.
func RenderLine(row []Cell, mode ColorMode) string {
	var b []byte
	for _, c := range row {
		b = appendCell(b, c, mode)
	}
	return string(b)
}

// RenderANSI renders a grid of cells to an ANSI string. The function
// takes rows of cells and returns one line per row, joined by "\n" with
// no trailing newline. Each cell is wrapped as
// ESC[38;5;{n}m{glyph}ESC[0m (or the true-color form). An empty grid
// renders as the empty string.
func RenderANSI(cells [][]Cell, mode ColorMode) string {
	var sb strings.Builder
	_ = writeANSI(&sb, cells, mode)
	return sb.String()
}

// WriteANSI writes the RenderANSI form of cells to w.
func WriteANSI(w io.Writer, cells [][]Cell, mode ColorMode) error {
	bw := bufio.NewWriter(w)
	if err := writeANSI(bw, cells, mode); err != nil {
		return err
	}
	return bw.Flush()
}

func writeANSI(w io.Writer, cells [][]Cell, mode ColorMode) error {
	var line []byte
	for y, row := range cells {
		line = line[:0]
		if y > 0 {
			line = append(line, '\n')
		}
		for _, c := range row {
			line = appendCell(line, c, mode)
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

// Swatch renders the 216-color cube as six 6x6 faces side by side, one
// red level per face, using the same escape grammar as RenderANSI.
func Swatch() string {
	cells := make([][]Cell, 6)
	for g := 0; g < 6; g++ {
		row := make([]Cell, 0, 6*7)
		for r := 0; r < 6; r++ {
			for b := 0; b < 6; b++ {
				idx := Cube(r, g, b)
				row = append(row, Cell{Glyph: '█', Color: idx, RGB: idx.RGB()})
			}
			if r < 5 {
				row = append(row, BackgroundCell)
			}
		}
		cells[g] = row
	}
	return RenderANSI(cells, ColorMode256)
}
