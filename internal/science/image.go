package science

import (
	"errors"
	"fmt"
	"image"
	"io"

	"go.uber.org/zap"

	"github.com/ironsheep/image-science/internal/codec"
	"github.com/ironsheep/image-science/internal/jpegrot"
	"github.com/ironsheep/image-science/internal/raster"
	"github.com/ironsheep/image-science/internal/transform"
)

var (
	// ErrUseAfterClose is returned by every method of a closed Image.
	ErrUseAfterClose = errors.New("image is closed")
	// ErrIO is returned when reading or writing a file fails.
	ErrIO = errors.New("image i/o error")

	// Sentinels of the component packages, so callers need only this one.
	ErrInvalidArgument       = transform.ErrInvalidArgument
	ErrUnsupportedFormat     = codec.ErrUnsupportedFormat
	ErrNotFound              = codec.ErrNotFound
	ErrLossyRotationRejected = jpegrot.ErrLossyRotationRejected
)

// Image is a decoded image. It is not safe for concurrent use.
type Image struct {
	buf    *raster.Buffer
	format codec.Format
	opts   *options
}

// Open decodes the image file at path.
func Open(path string, opts ...Option) (*Image, error) {
	o := newOptions(opts)
	data, err := codec.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	img, err := decode(data, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	o.logger.Debug("opened image",
		zap.String("path", path),
		zap.Stringer("format", img.format),
		zap.Int("width", img.buf.Width()),
		zap.Int("height", img.buf.Height()),
	)
	return img, nil
}

// OpenBytes decodes an in-memory image. Empty input fails with
// ErrUnsupportedFormat.
func OpenBytes(data []byte, opts ...Option) (*Image, error) {
	return decode(data, newOptions(opts))
}

func decode(data []byte, o *options) (*Image, error) {
	buf, format, err := codec.Decode(data, o.decode)
	if err != nil {
		return nil, err
	}
	if codec.IsAnimated(data, format) {
		o.logger.Warn("animated image, using the first frame only", zap.Stringer("format", format))
	}
	return &Image{buf: buf, format: format, opts: o}, nil
}

// WithImage opens path, passes the image to fn and closes it afterwards.
func WithImage(path string, fn func(*Image) error, opts ...Option) error {
	img, err := Open(path, opts...)
	if err != nil {
		return err
	}
	defer img.Close()
	return fn(img)
}

// WithImageFromMemory is WithImage for encoded bytes.
func WithImageFromMemory(data []byte, fn func(*Image) error, opts ...Option) error {
	img, err := OpenBytes(data, opts...)
	if err != nil {
		return err
	}
	defer img.Close()
	return fn(img)
}

func (img *Image) check() error {
	if img == nil || img.buf == nil {
		return ErrUseAfterClose
	}
	return nil
}

// Width returns the width in pixels.
func (img *Image) Width() (int, error) {
	if err := img.check(); err != nil {
		return 0, err
	}
	return img.buf.Width(), nil
}

// Height returns the height in pixels.
func (img *Image) Height() (int, error) {
	if err := img.check(); err != nil {
		return 0, err
	}
	return img.buf.Height(), nil
}

// Format returns the format the image was decoded from.
func (img *Image) Format() (codec.Format, error) {
	if err := img.check(); err != nil {
		return codec.Unknown, err
	}
	return img.format, nil
}

// Save encodes the image into path. The format follows the extension of
// path when it names one, and the source format otherwise.
func (img *Image) Save(path string) error {
	if err := img.check(); err != nil {
		return err
	}
	format := codec.FormatFromPath(path)
	if format == codec.Unknown {
		format = img.format
	}
	if err := codec.WriteFile(path, img.buf, format, img.opts.encode); err != nil {
		if errors.Is(err, codec.ErrUnsupportedFormat) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	img.opts.logger.Debug("saved image", zap.String("path", path), zap.Stringer("format", format))
	return nil
}

// Encode writes the image to w in the given format.
func (img *Image) Encode(w io.Writer, format codec.Format) error {
	if err := img.check(); err != nil {
		return err
	}
	return codec.Encode(w, img.buf, format, img.opts.encode)
}

// Close releases the pixel buffer. Closing twice returns ErrUseAfterClose.
func (img *Image) Close() error {
	if err := img.check(); err != nil {
		return err
	}
	img.buf.Release()
	img.buf = nil
	return nil
}

// yield wraps buf in a new Image, runs fn with it and closes it.
func (img *Image) yield(buf *raster.Buffer, fn func(*Image) error) error {
	child := &Image{buf: buf, format: img.format, opts: img.opts}
	defer child.Close()
	if fn == nil {
		return nil
	}
	return fn(child)
}

// Resize scales the image to width x height pixels. Fractions are truncated;
// sizes that truncate to zero or less fail with ErrInvalidArgument.
func (img *Image) Resize(width, height float64, fn func(*Image) error) error {
	if err := img.check(); err != nil {
		return err
	}
	buf, err := transform.Resize(img.buf, width, height, img.opts.filter)
	if err != nil {
		return err
	}
	return img.yield(buf, fn)
}

// Rotate turns the image counter-clockwise by angle degrees. The canvas
// grows to fit, so rotating a 50x70 image by 90 yields 70x50.
func (img *Image) Rotate(angle float64, fn func(*Image) error) error {
	if err := img.check(); err != nil {
		return err
	}
	buf, err := transform.Rotate(img.buf, angle, img.opts.fill)
	if err != nil {
		return err
	}
	return img.yield(buf, fn)
}

// Flip mirrors the image about axis: "horizontal", "vertical", "transpose"
// or "transverse". Unknown axes fail with ErrInvalidArgument.
func (img *Image) Flip(axis string, fn func(*Image) error) error {
	if err := img.check(); err != nil {
		return err
	}
	buf, err := transform.Flip(img.buf, axis)
	if err != nil {
		return err
	}
	return img.yield(buf, fn)
}

// WithCrop cuts out the box from (left, top) inclusive to (right, bottom)
// exclusive.
func (img *Image) WithCrop(left, top, right, bottom int, fn func(*Image) error) error {
	if err := img.check(); err != nil {
		return err
	}
	r := image.Rectangle{Min: image.Pt(left, top), Max: image.Pt(right, bottom)}
	buf, err := transform.Crop(img.buf, r)
	if err != nil {
		return err
	}
	return img.yield(buf, fn)
}

// Thumbnail scales the image so its longer side is size pixels.
func (img *Image) Thumbnail(size float64, fn func(*Image) error) error {
	if err := img.check(); err != nil {
		return err
	}
	buf, err := transform.Thumbnail(img.buf, size, img.opts.filter)
	if err != nil {
		return err
	}
	return img.yield(buf, fn)
}

// CroppedThumbnail crops the centered square and scales it to size x size.
func (img *Image) CroppedThumbnail(size float64, fn func(*Image) error) error {
	if err := img.check(); err != nil {
		return err
	}
	buf, err := transform.CroppedThumbnail(img.buf, size, img.opts.filter)
	if err != nil {
		return err
	}
	return img.yield(buf, fn)
}
