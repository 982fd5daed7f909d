package glyphart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorcha-inc/glyphart/imageutil"
)

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name             string
		srcW, srcH, want int
		wantW, wantH     int
	}{
		{"square", 100, 100, 40, 40, 20},
		{"landscape", 640, 480, 80, 80, 30},
		{"portrait", 300, 600, 10, 10, 10},
		{"floors", 3, 2, 5, 5, 1},
		{"wide image collapses", 1000, 10, 40, 40, 0},
		{"width one", 1, 1, 1, 1, 0},
		{"width two", 1, 1, 2, 2, 1},
		{"upscale", 2, 2, 120, 120, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := TargetSize(tt.srcW, tt.srcH, tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestTargetSize_Property(t *testing.T) {
	for srcW := 1; srcW < 60; srcW += 7 {
		for srcH := 1; srcH < 60; srcH += 5 {
			for width := 1; width < 90; width += 11 {
				_, h, err := TargetSize(srcW, srcH, width)
				require.NoError(t, err)
				exact := float64(width) * (float64(srcH) / float64(srcW)) * 0.5
				assert.LessOrEqual(t, float64(h), exact)
				assert.Greater(t, float64(h)+1, exact)
			}
		}
	}
}

func TestTargetSize_InvalidWidth(t *testing.T) {
	for _, width := range []int{0, -1, -40} {
		_, _, err := TargetSize(10, 10, width)
		assert.ErrorIs(t, err, ErrInvalidDimension, "width %d", width)
	}
	_, _, err := TargetSize(0, 10, 10)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestTargetSize_CellLimit(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		width      int
	}{
		{"huge width on a pixel", 1, 1, 1 << 30},
		{"width just over the limit", 1000, 1, MaxCells + 1},
		{"tall source", 1, 1 << 20, 4096},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := TargetSize(tt.srcW, tt.srcH, tt.width)
			assert.ErrorIs(t, err, ErrInvalidDimension)
		})
	}

	w, h, err := TargetSize(100, 100, 4096)
	require.NoError(t, err)
	assert.Equal(t, 4096, w)
	assert.Equal(t, 2048, h)
	assert.LessOrEqual(t, w*h, MaxCells)

	w, h, err = TargetSize(1<<26, 1, MaxCells)
	require.NoError(t, err, "a single-row grid at the limit is allowed")
	assert.Equal(t, MaxCells, w)
	assert.Zero(t, h)
}

func TestResample(t *testing.T) {
	img := imageutil.CreateColorBarsImage(64, 32)

	grid, err := Resample(img, 16, imageutil.FilterNearest)
	require.NoError(t, err)
	assert.Equal(t, 16, grid.Width())
	assert.Equal(t, 4, grid.Height())

	// Every nearest sample is a source pixel.
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			sx := (2*x + 1) * 64 / 32
			sy := (2*y + 1) * 32 / 8
			assert.Equal(t, img.NRGBAAt(sx, sy), grid.NRGBAAt(x, y))
		}
	}

	_, err = Resample(img, 0, imageutil.FilterNearest)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}
