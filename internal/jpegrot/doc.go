// Package jpegrot rotates JPEG files by a quarter turn without touching
// pixels outside whole minimum coded units (MCUs).
//
// A JPEG is stored as a grid of MCUs whose size follows from the chroma
// subsampling of the file (8x8 for 4:4:4 and grayscale, 16x16 for 4:2:0 and
// so on). A rotation is lossless only when every edge that ends up on the
// top or left of the result consists of whole MCUs. When that is not the
// case the partial MCU is trimmed away, or, when the caller asked for a
// perfect rotation, the request is rejected before anything is written.
//
// # Backends
//
// Jpegtran runs the jpegtran program from libjpeg and transforms the
// compressed stream directly. Reencode is the pure-Go fallback used when
// jpegtran is not installed: it decodes, trims to the same geometry, rotates
// by index permutation and encodes again. Its output therefore has the
// jpegtran geometry but is subject to one generation of JPEG loss.
//
// # Error Handling
//
//   - ErrNotFound: the source file does not exist; no destination is created
//   - ErrLossyRotationRejected: a perfect rotation was requested but the
//     source is not MCU-aligned; no destination is created
//   - ErrJpegtranUnavailable: the jpegtran backend has no executable
package jpegrot
