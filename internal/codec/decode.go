package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-science/internal/raster"
)

// DecodeOptions controls decoding.
type DecodeOptions struct {
	// AutoOrientation applies the EXIF orientation tag of JPEG sources.
	AutoOrientation bool
	// MaxPixels rejects images with more than this many pixels. Zero means
	// no limit.
	MaxPixels int
}

// Decode decodes an in-memory image.
//
// Empty input and streams no registered decoder recognizes fail with
// ErrUnsupportedFormat; nothing is allocated for them.
func Decode(data []byte, opts DecodeOptions) (*raster.Buffer, Format, error) {
	if len(data) == 0 {
		return nil, Unknown, fmt.Errorf("%w: empty input", ErrUnsupportedFormat)
	}

	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, Unknown, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, Unknown, fmt.Errorf("%w: failed to read image header: %v", ErrUnsupportedFormat, err)
	}
	format := ParseFormat(name)

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, format, fmt.Errorf("%w: %s image has no pixels", ErrUnsupportedFormat, format)
	}
	if opts.MaxPixels > 0 && cfg.Width*cfg.Height > opts.MaxPixels {
		return nil, format, fmt.Errorf("%w: %dx%d", ErrPixelLimitExceeded, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(opts.AutoOrientation))
	if err != nil {
		return nil, format, fmt.Errorf("%w: failed to decode %s image: %v", ErrUnsupportedFormat, format, err)
	}

	buf, err := ToBuffer(img)
	if err != nil {
		return nil, format, err
	}
	return buf, format, nil
}

// ReadFile reads an image file into memory. A missing path yields an error
// wrapping both ErrNotFound and fs.ErrNotExist.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return data, nil
}
