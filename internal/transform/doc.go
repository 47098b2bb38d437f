// Package transform implements the pixel transforms of image-science as pure
// functions over raster.Buffer values.
//
// Every function returns a newly allocated buffer and leaves its input
// untouched. Nothing in this package reads or writes files.
//
// # Resampling
//
// Resize is separable: a horizontal pass followed by a vertical pass. For
// each destination sample the source footprint is derived from the scale
// factor, the filter kernel is evaluated across it, the weights are
// normalized and the weighted sum is clamped to [0,255]. When shrinking, the
// kernel support is stretched by the scale factor so every source pixel
// contributes. RGBA buffers are resampled with alpha-weighted sums.
//
// # Rotation
//
// Angles are in degrees, counter-clockwise, and may be any finite value.
// Multiples of 90 degrees are served by pure index permutation (no
// interpolation, no loss). Any other angle is rendered by inverse mapping
// with bilinear interpolation onto a canvas sized to the rotated bounding
// box; samples that map outside the source take the Fill color.
package transform
