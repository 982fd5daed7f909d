package imageutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// Filter specifies the resampling method for resizing.
type Filter int

const (
	// FilterNearest picks the single source pixel whose centre is closest
	// to the destination pixel centre. No blending, bit reproducible.
	FilterNearest Filter = iota

	// FilterBox averages every source pixel under the destination pixel.
	FilterBox

	// FilterLinear uses bilinear interpolation.
	FilterLinear

	// FilterCatmullRom uses the Catmull-Rom cubic.
	FilterCatmullRom

	// FilterLanczos uses a Lanczos-3 window. Sharpest, slowest.
	FilterLanczos
)

// ErrUnknownFilter is returned by ParseFilter for an unrecognised name.
var ErrUnknownFilter = errors.New("unknown resampling filter")

var filterNames = map[Filter]string{
	FilterNearest:    "nearest",
	FilterBox:        "box",
	FilterLinear:     "linear",
	FilterCatmullRom: "catmullrom",
	FilterLanczos:    "lanczos",
}

func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// ParseFilter returns the Filter with the given name, case-insensitively.
func ParseFilter(name string) (Filter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range filterNames {
		if n == name {
			return f, nil
		}
	}
	return FilterNearest, fmt.Errorf("%w %q", ErrUnknownFilter, name)
}

// FilterNames lists the accepted filter names in Filter order.
func FilterNames() []string {
	names := make([]string, len(filterNames))
	for f, n := range filterNames {
		names[f] = n
	}
	return names
}

// Resize resizes an image to the specified dimensions using the given
// filter. A zero width or height yields an empty image.
func Resize(img *NRGBAImage, width, height int, filter Filter) *NRGBAImage {
	if width <= 0 || height <= 0 || img.Empty() {
		return NewNRGBAImage(max(width, 0), max(height, 0))
	}

	var rf imaging.ResampleFilter
	switch filter {
	case FilterNearest:
		return ResizeNearest(img, width, height)
	case FilterBox:
		rf = imaging.Box
	case FilterLinear:
		rf = imaging.Linear
	case FilterCatmullRom:
		rf = imaging.CatmullRom
	case FilterLanczos:
		rf = imaging.Lanczos
	default:
		return ResizeNearest(img, width, height)
	}
	return &NRGBAImage{NRGBA: imaging.Resize(img.NRGBA, width, height, rf)}
}

// ResizeNearest resizes with nearest-neighbour sampling. Destination pixel
// (dx, dy) copies source pixel
//
//	sx = (2*dx + 1) * srcW / (2 * dstW)
//	sy = (2*dy + 1) * srcH / (2 * dstH)
//
// in integer arithmetic, the pixel-centre mapping used by
// x/image/draw.NearestNeighbor. All four channels are copied verbatim, so
// partially transparent pixels keep their straight RGB values.
func ResizeNearest(img *NRGBAImage, width, height int) *NRGBAImage {
	dst := NewNRGBAImage(max(width, 0), max(height, 0))
	if dst.Empty() || img.Empty() {
		return dst
	}

	srcW, srcH := img.Width(), img.Height()
	origin := img.Rect.Min

	cols := make([]int, width)
	for dx := range cols {
		sx := (2*dx + 1) * srcW / (2 * width)
		if sx >= srcW {
			sx = srcW - 1
		}
		cols[dx] = sx
	}

	for dy := 0; dy < height; dy++ {
		sy := (2*dy + 1) * srcH / (2 * height)
		if sy >= srcH {
			sy = srcH - 1
		}
		row := dst.Pix[dy*dst.Stride : dy*dst.Stride+width*4]
		for dx, sx := range cols {
			off := img.PixOffset(origin.X+sx, origin.Y+sy)
			copy(row[dx*4:dx*4+4], img.Pix[off:off+4])
		}
	}
	return dst
}
