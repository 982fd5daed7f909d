package imageutil

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dorcha-inc/glyphart/internal/logging"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// StdinPath is the path LoadImage treats as standard input.
const StdinPath = "-"

// ErrDecode is matched by every error LoadImage and Decoder
// implementations in this package return.
var ErrDecode = errors.New("cannot decode image")

// DecodeError reports a path that could not be turned into an image,
// either because it could not be read or because its contents are not a
// supported raster format.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrDecode, e.Err)
	}
	return fmt.Sprintf("%v %s: %v", ErrDecode, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDecode) hold for any DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Decoder turns an encoded raster image into an NRGBA grid. Format
// dispatch lives entirely behind this interface.
type Decoder interface {
	Decode(r io.Reader) (*NRGBAImage, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.Reader) (*NRGBAImage, error)

// Decode calls f(r).
func (f DecoderFunc) Decode(r io.Reader) (*NRGBAImage, error) { return f(r) }

// FormatDecoder decodes every format registered with the image package:
// PNG, JPEG and GIF from the standard library plus BMP, TIFF and WebP.
type FormatDecoder struct {
	// AutoOrient applies the EXIF orientation tag of JPEG sources.
	AutoOrient bool
}

// DefaultDecoder is the decoder LoadImage uses. It keeps the stored pixel
// layout and ignores EXIF orientation.
var DefaultDecoder Decoder = FormatDecoder{}

// Decode implements Decoder.
func (d FormatDecoder) Decode(r io.Reader) (*NRGBAImage, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(d.AutoOrient))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	out := NRGBAImageFromImage(img)
	if out.Empty() {
		return nil, &DecodeError{Err: fmt.Errorf("image has no pixels (%dx%d)",
			out.Width(), out.Height())}
	}
	return out, nil
}

// LoadImage loads an image from the specified path with DefaultDecoder.
// A path of "-" reads standard input.
func LoadImage(path string) (*NRGBAImage, error) {
	return LoadImageWith(path, DefaultDecoder)
}

// LoadImageWith loads an image from path using dec. Every failure is a
// *DecodeError carrying the path.
func LoadImageWith(path string, dec Decoder) (*NRGBAImage, error) {
	if dec == nil {
		dec = DefaultDecoder
	}

	var r io.Reader
	if path == StdinPath {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, &DecodeError{Path: path, Err: fmt.Errorf("failed to open image: %w", err)}
		}
		defer logging.LogDeferredError(f.Close)
		r = f
	}

	img, err := dec.Decode(r)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return nil, &DecodeError{Path: path, Err: de.Err}
		}
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// SaveImage saves an image to the specified path.
// Format is determined by file extension (png, jpg/jpeg, gif).
func SaveImage(img image.Image, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".gif":
		err = gif.Encode(f, img, nil)
	default:
		// PNG, also for unknown extensions
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
