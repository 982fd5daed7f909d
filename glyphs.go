package glyphart

import (
	"fmt"
	"math"
)

// GlyphPalette is an ordered list of glyphs from darkest to lightest.
// A darkened luminance in [0, 255] selects the glyph at
//
//	clamp(floor(darkened/255 * (len-1)), 0, len-1)
//
// so extending the palette needs no change to the mapping.
type GlyphPalette []rune

// DefaultGlyphPalette is a single full block. With one glyph every opaque
// cell gets the same character and the picture is carried by color alone.
var DefaultGlyphPalette = GlyphPalette{'█'}

// ASCIIGlyphPalette is a ten step ASCII ramp for monochrome-friendly output.
var ASCIIGlyphPalette = GlyphPalette(" .:-=+*#%@")

// ParseGlyphPalette returns the palette spelled by s, one glyph per rune.
func ParseGlyphPalette(s string) (GlyphPalette, error) {
	p := GlyphPalette(s)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate returns ErrEmptyPalette for a palette without glyphs.
func (p GlyphPalette) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPalette
	}
	return nil
}

// Index returns the palette position for a darkened luminance.
func (p GlyphPalette) Index(darkened float64) int {
	last := len(p) - 1
	if last <= 0 || math.IsNaN(darkened) {
		return 0
	}
	idx := int(darkened / 255.0 * float64(last))
	return min(max(idx, 0), last)
}

// Glyph returns the glyph for a darkened luminance. An empty palette
// yields a space.
func (p GlyphPalette) Glyph(darkened float64) rune {
	if len(p) == 0 {
		return ' '
	}
	return p[p.Index(darkened)]
}

func (p GlyphPalette) String() string {
	return string(p)
}

// GoString makes palettes readable in test failures.
func (p GlyphPalette) GoString() string {
	return fmt.Sprintf("GlyphPalette(%q)", string(p))
}
