package imageutil

import "github.com/disintegration/imaging"

// Adjustments are tonal corrections applied to the source image before it
// is resampled. The zero value changes nothing.
type Adjustments struct {
	// Gamma of 1.0 (or 0, meaning unset) keeps the image; below 1.0
	// darkens and above 1.0 lightens.
	Gamma float64 `yaml:"gamma" mapstructure:"gamma" validate:"gte=0"`
	// Brightness in [-100, 100]; -100 is solid black, 100 solid white.
	Brightness float64 `yaml:"brightness" mapstructure:"brightness" validate:"gte=-100,lte=100"`
	// Contrast in [-100, 100]; -100 is solid grey.
	Contrast float64 `yaml:"contrast" mapstructure:"contrast" validate:"gte=-100,lte=100"`
	// Saturation in [-100, 500]; -100 is grayscale.
	Saturation float64 `yaml:"saturation" mapstructure:"saturation" validate:"gte=-100,lte=500"`
	// Sharpen is the sigma of the unsharp mask; 0 disables it.
	Sharpen float64 `yaml:"sharpen" mapstructure:"sharpen" validate:"gte=0"`
	// Invert negates the colour channels. Alpha is kept.
	Invert bool `yaml:"invert" mapstructure:"invert"`
}

// IsZero reports whether a leaves every image untouched.
func (a Adjustments) IsZero() bool {
	return (a.Gamma == 0 || a.Gamma == 1) &&
		a.Brightness == 0 &&
		a.Contrast == 0 &&
		a.Saturation == 0 &&
		a.Sharpen == 0 &&
		!a.Invert
}

// Apply returns a copy of img with the adjustments applied in a fixed
// order: gamma, brightness, contrast, saturation, sharpen, invert. When a
// is the zero value img itself is returned.
func (a Adjustments) Apply(img *NRGBAImage) *NRGBAImage {
	if a.IsZero() || img.Empty() {
		return img
	}

	out := img.NRGBA
	if a.Gamma != 0 && a.Gamma != 1 {
		out = imaging.AdjustGamma(out, a.Gamma)
	}
	if a.Brightness != 0 {
		out = imaging.AdjustBrightness(out, a.Brightness)
	}
	if a.Contrast != 0 {
		out = imaging.AdjustContrast(out, a.Contrast)
	}
	if a.Saturation != 0 {
		out = imaging.AdjustSaturation(out, a.Saturation)
	}
	if a.Sharpen != 0 {
		out = imaging.Sharpen(out, a.Sharpen)
	}
	if a.Invert {
		out = imaging.Invert(out)
	}
	return &NRGBAImage{NRGBA: out}
}
