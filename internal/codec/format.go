package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

var (
	// ErrUnsupportedFormat is returned for empty or unrecognized input and for
	// formats that cannot be encoded.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrNotFound is returned when a source file does not exist.
	ErrNotFound = errors.New("image not found")
	// ErrPixelLimitExceeded is returned when an image has more pixels than the
	// configured limit.
	ErrPixelLimitExceeded = errors.New("the image exceeds max pixels limit")
)

// Format identifies an image container.
type Format string

// Known formats. Unknown is the zero value.
const (
	Unknown Format = ""
	PNG     Format = "png"
	JPEG    Format = "jpeg"
	GIF     Format = "gif"
	BMP     Format = "bmp"
	TIFF    Format = "tiff"
	WebP    Format = "webp"
)

func (f Format) String() string {
	if f == Unknown {
		return "unknown"
	}
	return string(f)
}

// Extension returns the canonical file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return ".jpg"
	case Unknown:
		return ""
	}
	return "." + string(f)
}

// MimeType returns the media type of the format.
func (f Format) MimeType() string {
	if f == Unknown {
		return "application/octet-stream"
	}
	return "image/" + string(f)
}

// Encodable reports whether images can be written in this format.
func (f Format) Encodable() bool {
	_, err := f.imaging()
	return err == nil
}

func (f Format) imaging() (imaging.Format, error) {
	switch f {
	case PNG:
		return imaging.PNG, nil
	case JPEG:
		return imaging.JPEG, nil
	case GIF:
		return imaging.GIF, nil
	case BMP:
		return imaging.BMP, nil
	case TIFF:
		return imaging.TIFF, nil
	}
	return 0, fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, f)
}

// ParseFormat maps a format name as reported by image.DecodeConfig
// ("png", "jpeg", ...) or a bare extension ("jpg", "tif") to a Format.
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return PNG
	case "jpeg", "jpg":
		return JPEG
	case "gif":
		return GIF
	case "bmp":
		return BMP
	case "tiff", "tif":
		return TIFF
	case "webp":
		return WebP
	}
	return Unknown
}

// FormatFromPath determines the format from the file extension.
func FormatFromPath(path string) Format {
	if f, err := imaging.FormatFromFilename(path); err == nil {
		return ParseFormat(f.String())
	}
	return ParseFormat(filepath.Ext(path))
}
