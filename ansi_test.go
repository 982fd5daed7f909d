package glyphart

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorcha-inc/glyphart/imageutil"
)

var cellPattern = regexp.MustCompile(`^(\x1b\[38;5;(\d{1,3})m(.)\x1b\[0m)*$`)

func TestRenderANSI_Grammar(t *testing.T) {
	cells := [][]Cell{
		{{Glyph: '█', Color: 34}, {Glyph: '@', Color: 196}},
		{BackgroundCell, {Glyph: '.', Color: 231}},
	}

	got := RenderANSI(cells, ColorMode256)
	assert.Equal(t,
		"\x1b[38;5;34m█\x1b[0m\x1b[38;5;196m@\x1b[0m\n"+
			"\x1b[38;5;16m \x1b[0m\x1b[38;5;231m.\x1b[0m",
		got)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Regexp(t, cellPattern, line)
	}
}

func TestRenderANSI_NoTrailingNewline(t *testing.T) {
	cells := [][]Cell{{BackgroundCell}, {BackgroundCell}, {BackgroundCell}}
	got := RenderANSI(cells, ColorMode256)
	assert.Equal(t, 2, strings.Count(got, "\n"))
	assert.False(t, strings.HasSuffix(got, "\n"))
}

func TestRenderANSI_Empty(t *testing.T) {
	assert.Equal(t, "", RenderANSI(nil, ColorMode256))
	assert.Equal(t, "", RenderANSI([][]Cell{}, ColorModeTrueColor))
}

func TestRenderANSI_SingleTransparentPixel(t *testing.T) {
	grid := imageutil.CreateSolidImage(1, 1, imageutil.RGB{R: 200, G: 10, B: 10}, 0)
	cells, err := DefaultClassifier().ClassifyImage(context.Background(), grid, 1)
	require.NoError(t, err)

	assert.Equal(t, "\x1b[38;5;16m \x1b[0m", RenderANSI(cells, ColorMode256))
}

func TestRenderANSI_TrueColor(t *testing.T) {
	cells := [][]Cell{{
		{Glyph: '█', Color: 34, RGB: imageutil.RGB{R: 0, G: 154, B: 0}},
		BackgroundCell,
	}}
	assert.Equal(t,
		"\x1b[38;2;0;154;0m█\x1b[0m\x1b[38;2;0;0;0m \x1b[0m",
		RenderANSI(cells, ColorModeTrueColor))
}

func TestRenderLine(t *testing.T) {
	row := []Cell{{Glyph: 'x', Color: 21}}
	assert.Equal(t, "\x1b[38;5;21mx\x1b[0m", RenderLine(row, ColorMode256))
	assert.Equal(t, "", RenderLine(nil, ColorMode256))
}

func TestWriteANSI_MatchesRenderANSI(t *testing.T) {
	grid := imageutil.CreateColorBarsImage(20, 10)
	cells, err := DefaultClassifier().ClassifyImage(context.Background(), grid, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteANSI(&buf, cells, ColorMode256))
	assert.Equal(t, RenderANSI(cells, ColorMode256), buf.String())
}

func TestParseColorMode(t *testing.T) {
	for _, s := range []string{"", "256", "ANSI256", " 256 "} {
		m, err := ParseColorMode(s)
		require.NoError(t, err, s)
		assert.Equal(t, ColorMode256, m)
	}
	for _, s := range []string{"truecolor", "24bit", "TrueColor"} {
		m, err := ParseColorMode(s)
		require.NoError(t, err, s)
		assert.Equal(t, ColorModeTrueColor, m)
	}

	_, err := ParseColorMode("16")
	assert.ErrorIs(t, err, ErrUnknownColorMode)
	assert.Equal(t, "truecolor", ColorModeTrueColor.String())
	assert.Equal(t, "ColorMode(9)", ColorMode(9).String())
}

func TestSwatch(t *testing.T) {
	s := Swatch()
	lines := strings.Split(s, "\n")
	require.Len(t, lines, 6)

	for g, line := range lines {
		// 36 cube cells plus 5 separators per row.
		assert.Equal(t, 41, strings.Count(line, Reset), "row %d", g)
		assert.Contains(t, line, RenderLine([]Cell{{Glyph: '█', Color: Cube(0, g, 0)}}, ColorMode256))
		assert.Contains(t, line, RenderLine([]Cell{{Glyph: '█', Color: Cube(5, g, 5)}}, ColorMode256))
	}
}
