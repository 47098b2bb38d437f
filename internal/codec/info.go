package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"

	"github.com/sapphi-red/midec"
	_ "github.com/sapphi-red/midec/gif"  // Register GIF animation detector
	_ "github.com/sapphi-red/midec/png"  // Register APNG animation detector
	_ "github.com/sapphi-red/midec/webp" // Register WebP animation detector
)

// Info contains metadata about an image file, read from its header only.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the container detected from the file contents.
	Format Format `json:"format"`

	// ExtensionFormat is the format implied by the file extension, which may
	// disagree with Format.
	ExtensionFormat Format `json:"extension_format"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the color model carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// Animated is true for GIF, APNG and WebP files with more than one frame.
	// Only the first frame is ever decoded.
	Animated bool `json:"animated"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Dimensions contains the width and height of an image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Stat reads the header of the image at path without decoding pixels.
//
// # Errors
//
//   - ErrNotFound if the file does not exist
//   - ErrUnsupportedFormat if no registered decoder recognizes it
func Stat(path string) (*Info, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrUnsupportedFormat, path)
	}

	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch cfg.ColorModel {
	case color.RGBAModel, color.NRGBAModel:
		hasAlpha = true
	case color.RGBA64Model, color.NRGBA64Model:
		hasAlpha = true
		colorDepth = "16-bit"
	case color.Gray16Model:
		colorDepth = "16-bit"
	}
	if p, ok := cfg.ColorModel.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				hasAlpha = true
				break
			}
		}
	}

	format := ParseFormat(name)

	return &Info{
		Width:           cfg.Width,
		Height:          cfg.Height,
		Format:          format,
		ExtensionFormat: FormatFromPath(path),
		ColorDepth:      colorDepth,
		HasAlpha:        hasAlpha,
		Animated:        IsAnimated(data, format),
		FileSizeBytes:   stat.Size(),
	}, nil
}

// GetDimensions returns only the width and height of the image at path.
func GetDimensions(path string) (*Dimensions, error) {
	info, err := Stat(path)
	if err != nil {
		return nil, err
	}
	return &Dimensions{Width: info.Width, Height: info.Height}, nil
}

// IsAnimated reports whether data holds more than one frame. Formats that
// cannot be animated, and streams midec cannot parse, report false.
func IsAnimated(data []byte, format Format) bool {
	switch format {
	case GIF, PNG, WebP:
	default:
		return false
	}
	animated, err := midec.IsAnimated(bytes.NewReader(data))
	return err == nil && animated
}
