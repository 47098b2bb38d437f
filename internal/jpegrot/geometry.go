package jpegrot

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/ironsheep/image-science/internal/codec"
)

// Direction is the sense of a quarter turn.
type Direction int

const (
	// Left rotates counter-clockwise (jpegtran -rotate 270).
	Left Direction = iota
	// Right rotates clockwise (jpegtran -rotate 90).
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// degrees returns the clockwise angle jpegtran expects.
func (d Direction) degrees() string {
	if d == Right {
		return "90"
	}
	return "270"
}

// Geometry is the pixel size of a JPEG and the size of its MCU.
type Geometry struct {
	Width, Height       int
	MCUWidth, MCUHeight int
}

// Aligned reports whether both dimensions are whole multiples of the MCU.
func (g Geometry) Aligned() bool {
	return g.Width%g.MCUWidth == 0 && g.Height%g.MCUHeight == 0
}

// Retained returns the source region that survives a trimmed rotation.
//
// Rotating right moves the bottom edge to the left, so partial MCU rows at
// the bottom are dropped. Rotating left moves the right edge to the top, so
// partial MCU columns on the right are dropped. An image smaller than one
// MCU along the trimmed axis is kept whole.
func (g Geometry) Retained(d Direction) image.Rectangle {
	r := image.Rect(0, 0, g.Width, g.Height)
	switch d {
	case Right:
		if h := g.Height / g.MCUHeight * g.MCUHeight; h > 0 {
			r.Max.Y = h
		}
	case Left:
		if w := g.Width / g.MCUWidth * g.MCUWidth; w > 0 {
			r.Max.X = w
		}
	}
	return r
}

// Rotated returns the output size of a trimmed rotation.
func (g Geometry) Rotated(d Direction) (width, height int) {
	r := g.Retained(d)
	return r.Dy(), r.Dx()
}

// MCUSize returns the MCU size in pixels for a chroma subsampling ratio.
func MCUSize(ratio image.YCbCrSubsampleRatio) (width, height int) {
	switch ratio {
	case image.YCbCrSubsampleRatio422:
		return 16, 8
	case image.YCbCrSubsampleRatio440:
		return 8, 16
	case image.YCbCrSubsampleRatio420:
		return 16, 16
	case image.YCbCrSubsampleRatio411:
		return 32, 8
	case image.YCbCrSubsampleRatio410:
		return 32, 16
	}
	return 8, 8
}

// Source is a JPEG file loaded for rotation.
type Source struct {
	Data     []byte
	Geometry Geometry
	// Image is the decoded source.
	Image image.Image
	// MCUKnown is false when the MCU size could not be derived from the
	// decoded image and Geometry carries the 8x8 default.
	MCUKnown bool
}

// Inspect decodes data and derives its geometry. Input that is not a JPEG
// fails with codec.ErrUnsupportedFormat.
func Inspect(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", codec.ErrUnsupportedFormat)
	}
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", codec.ErrUnsupportedFormat, err)
	}
	if name != "jpeg" {
		return nil, fmt.Errorf("%w: lossless rotation needs a JPEG, got %s", codec.ErrUnsupportedFormat, name)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode JPEG: %v", codec.ErrUnsupportedFormat, err)
	}

	g := Geometry{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}
	var known bool
	g.MCUWidth, g.MCUHeight, known = mcuOf(img)
	return &Source{Data: data, Geometry: g, Image: img, MCUKnown: known}, nil
}

// mcuOf returns the MCU size of a decoded JPEG. image/jpeg exposes the
// sampling factors of YCbCr and grayscale images only; for CMYK and YCCK
// sources it reports 8x8 with known set to false.
func mcuOf(img image.Image) (width, height int, known bool) {
	switch m := img.(type) {
	case *image.YCbCr:
		width, height = MCUSize(m.SubsampleRatio)
		return width, height, true
	case *image.Gray:
		return 8, 8, true
	}
	return 8, 8, false
}
