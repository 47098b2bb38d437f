// Package codec moves images between encoded bytes and raster.Buffer values.
//
// Decoding is delegated to the format decoders registered with the standard
// image package (PNG, JPEG and GIF from the standard library; BMP, TIFF and
// WebP from golang.org/x/image) through github.com/disintegration/imaging,
// which also applies EXIF auto-orientation when asked to. Encoding goes
// through imaging.Encode and supports PNG, JPEG, GIF, BMP and TIFF.
//
// # Formats
//
// A Format is chosen from the file extension when there is a recognized one
// and from the decoded stream otherwise. WebP can be read but not written.
//
// # Writing Files
//
// WriteFile and AtomicWrite never leave a partial destination: output goes
// to a temporary file in the destination directory which is renamed over the
// destination only after encoding and closing succeed. On any failure the
// temporary file is removed and the destination is untouched.
//
// # Error Handling
//
// Errors wrap one of the package sentinels so callers can use errors.Is:
//   - ErrUnsupportedFormat: empty input, unknown container, or a format that
//     cannot be encoded
//   - ErrNotFound: the source path does not exist
//   - ErrPixelLimitExceeded: the decoded image would exceed MaxPixels
package codec
