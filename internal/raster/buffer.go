package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a buffer is allocated with a
	// non-positive width or height.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrInvalidChannels is returned for a channel count other than 1, 3 or 4.
	ErrInvalidChannels = errors.New("invalid channel count")
	// ErrOutOfBounds is returned when a sample outside the buffer is addressed.
	ErrOutOfBounds = errors.New("coordinates out of bounds")
)

// Gray, RGB and RGBA are the supported channel layouts.
const (
	Gray = 1
	RGB  = 3
	RGBA = 4
)

// Buffer is a row-major 8-bit raster.
type Buffer struct {
	width    int
	height   int
	channels int
	pix      []uint8
}

// New allocates a zeroed buffer.
//
// Returns ErrInvalidDimension when width or height is not positive and
// ErrInvalidChannels when channels is not Gray, RGB or RGBA.
func New(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if !validChannels(channels) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	return &Buffer{
		width:    width,
		height:   height,
		channels: channels,
		pix:      make([]uint8, width*height*channels),
	}, nil
}

// FromPix wraps an existing sample slice. The slice is used as-is, so its
// length must match width*height*channels exactly.
func FromPix(width, height, channels int, pix []uint8) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if !validChannels(channels) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if len(pix) != width*height*channels {
		return nil, fmt.Errorf("%w: %d samples for %dx%dx%d", ErrInvalidDimension, len(pix), width, height, channels)
	}
	return &Buffer{width: width, height: height, channels: channels, pix: pix}, nil
}

func validChannels(c int) bool {
	return c == Gray || c == RGB || c == RGBA
}

// Width returns the width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Buffer) Height() int { return b.height }

// Channels returns the number of interleaved channels per pixel.
func (b *Buffer) Channels() int { return b.channels }

// Stride returns the number of bytes per row.
func (b *Buffer) Stride() int { return b.width * b.channels }

// Pix returns the backing sample slice. Writes through it are visible to the
// buffer.
func (b *Buffer) Pix() []uint8 { return b.pix }

// Row returns the samples of row y without copying.
func (b *Buffer) Row(y int) []uint8 {
	s := b.Stride()
	return b.pix[y*s : (y+1)*s : (y+1)*s]
}

func (b *Buffer) offset(x, y, c int) (int, error) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || c < 0 || c >= b.channels {
		return 0, fmt.Errorf("%w: (%d,%d) channel %d in %dx%dx%d", ErrOutOfBounds, x, y, c, b.width, b.height, b.channels)
	}
	return (y*b.width+x)*b.channels + c, nil
}

// At returns the sample of channel c at (x, y).
func (b *Buffer) At(x, y, c int) (uint8, error) {
	i, err := b.offset(x, y, c)
	if err != nil {
		return 0, err
	}
	return b.pix[i], nil
}

// Set stores v into channel c at (x, y).
func (b *Buffer) Set(x, y, c int, v uint8) error {
	i, err := b.offset(x, y, c)
	if err != nil {
		return err
	}
	b.pix[i] = v
	return nil
}

// Pixel returns the samples of the pixel at (x, y) without copying.
func (b *Buffer) Pixel(x, y int) ([]uint8, error) {
	i, err := b.offset(x, y, 0)
	if err != nil {
		return nil, err
	}
	return b.pix[i : i+b.channels : i+b.channels], nil
}

// Fill sets every pixel to the given samples. Extra samples are ignored and
// missing ones are left untouched.
func (b *Buffer) Fill(samples ...uint8) {
	n := min(len(samples), b.channels)
	for i := 0; i < len(b.pix); i += b.channels {
		copy(b.pix[i:i+n], samples[:n])
	}
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{width: b.width, height: b.height, channels: b.channels, pix: pix}
}

// Release drops the sample slice. A released buffer reports a 0x0 size.
func (b *Buffer) Release() {
	b.pix = nil
	b.width = 0
	b.height = 0
}

// Released reports whether Release has been called.
func (b *Buffer) Released() bool { return b.pix == nil }
