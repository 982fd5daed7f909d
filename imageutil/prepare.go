package imageutil

// PrepareForText prepares an image for conversion to character art.
//
// The function:
// 1. Applies the tonal adjustments (a no-op for the zero value)
// 2. Resizes to exactly width x height cells with the given filter
//
// Adjustments run at source resolution so that sharpening and contrast see
// the full detail before it is sampled away.
//
// Parameters:
//   - img: The input image
//   - width: Target width in character cells
//   - height: Target height in character cells, already aspect corrected
//   - adj: Tonal adjustments
//   - filter: Resampling filter; FilterNearest for exact sampling
//
// Returns:
//   - The width x height grid, one pixel per cell. Empty if height is 0.
func PrepareForText(img *NRGBAImage, width, height int, adj Adjustments, filter Filter) *NRGBAImage {
	if width <= 0 || height <= 0 {
		return NewNRGBAImage(max(width, 0), max(height, 0))
	}
	return Resize(adj.Apply(img), width, height, filter)
}
