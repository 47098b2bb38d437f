// Package raster provides the in-memory pixel container used by every other
// package in image-science.
//
// A Buffer is a width x height grid of 8-bit samples stored row-major with
// 1 (gray), 3 (RGB) or 4 (non-premultiplied RGBA) interleaved channels.
// The backing slice always holds exactly width*height*channels bytes; there
// are no partial buffers and no implicit resizing.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Ownership
//
// A Buffer is created by a decode or by a transform and belongs to whoever
// produced it. Release drops the pixel slice so the memory can be reclaimed
// as soon as the owning handle closes. A Buffer is not safe for concurrent
// mutation.
package raster
