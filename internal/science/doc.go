// Package science is the scoped image handle of image-science.
//
// An Image owns one decoded pixel buffer from Open until Close. Transforms
// never modify their receiver: Resize, Rotate, WithCrop, Thumbnail and
// CroppedThumbnail hand a new Image to a callback and close it when the
// callback returns, whether it returns normally, with an error, or by
// panicking.
//
//	err := science.WithImage("photo.png", func(img *science.Image) error {
//		return img.Resize(100, 100, func(thumb *science.Image) error {
//			return thumb.Save("thumb.png")
//		})
//	})
//
// # Error Handling
//
// All errors can be matched with errors.Is:
//   - ErrInvalidArgument: non-positive or non-finite sizes, bad crop boxes
//   - ErrUnsupportedFormat: empty or unrecognized input, unwritable format
//   - ErrNotFound: missing source file; such errors also match ErrIO
//   - ErrIO: reading or writing a file failed
//   - ErrLossyRotationRejected: RotateJPG with perfect set on an image that
//     is not MCU-aligned
//   - ErrUseAfterClose: any call on a closed Image
//
// No operation leaves a partial or empty destination file behind.
package science
