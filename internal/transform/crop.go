package transform

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/image-science/internal/raster"
)

// Crop extracts the rectangle r from src.
//
// r uses half-open coordinates: (Min.X, Min.Y) inclusive, (Max.X, Max.Y)
// exclusive. It must be non-empty and lie within the source.
func Crop(src *raster.Buffer, r image.Rectangle) (*raster.Buffer, error) {
	bounds := image.Rect(0, 0, src.Width(), src.Height())
	if r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y {
		return nil, fmt.Errorf("%w: crop region %v is empty", ErrInvalidArgument, r)
	}
	if !r.In(bounds) {
		return nil, fmt.Errorf("%w: crop region %v outside image bounds %v", ErrInvalidArgument, r, bounds)
	}

	ch := src.Channels()
	dst, err := raster.New(r.Dx(), r.Dy(), ch)
	if err != nil {
		return nil, err
	}
	for y := 0; y < r.Dy(); y++ {
		line := src.Row(r.Min.Y + y)
		copy(dst.Row(y), line[r.Min.X*ch:r.Max.X*ch])
	}
	return dst, nil
}

// Region returns the rectangle of a named region of a width x height image.
//
// Supported names: top-left, top-right, bottom-left, bottom-right, top-half,
// bottom-half, left-half, right-half and center (the middle 50%).
func Region(width, height int, name string) (image.Rectangle, error) {
	midX := width / 2
	midY := height / 2

	switch name {
	case "top-left":
		return image.Rect(0, 0, midX, midY), nil
	case "top-right":
		return image.Rect(midX, 0, width, midY), nil
	case "bottom-left":
		return image.Rect(0, midY, midX, height), nil
	case "bottom-right":
		return image.Rect(midX, midY, width, height), nil
	case "top-half":
		return image.Rect(0, 0, width, midY), nil
	case "bottom-half":
		return image.Rect(0, midY, width, height), nil
	case "left-half":
		return image.Rect(0, 0, midX, height), nil
	case "right-half":
		return image.Rect(midX, 0, width, height), nil
	case "center":
		qW := width / 4
		qH := height / 4
		return image.Rect(qW, qH, width-qW, height-qH), nil
	}
	return image.Rectangle{}, fmt.Errorf("%w: unknown region %q", ErrInvalidArgument, name)
}

// ThumbnailSize returns the dimensions of a w x h image scaled so that its
// longer side equals size. Neither side drops below one pixel.
func ThumbnailSize(w, h, size int) (int, int) {
	scale := float64(size) / float64(max(w, h))
	tw := max(1, int(math.Trunc(float64(w)*scale)))
	th := max(1, int(math.Trunc(float64(h)*scale)))
	return tw, th
}

// Thumbnail scales src proportionally so its longer side is size pixels.
func Thumbnail(src *raster.Buffer, size float64, filter Filter) (*raster.Buffer, error) {
	s, err := Dimension(size)
	if err != nil {
		return nil, fmt.Errorf("thumbnail size: %w", err)
	}
	tw, th := ThumbnailSize(src.Width(), src.Height(), s)
	return Resize(src, float64(tw), float64(th), filter)
}

// SquareRegion returns the largest centered square inside a w x h image.
func SquareRegion(w, h int) image.Rectangle {
	half := abs(w-h) / 2
	switch {
	case w > h:
		return image.Rect(half, 0, half+h, h)
	case h > w:
		return image.Rect(0, half, w, half+w)
	}
	return image.Rect(0, 0, w, h)
}

// CroppedThumbnail crops src to its centered square and scales the square to
// size x size.
func CroppedThumbnail(src *raster.Buffer, size float64, filter Filter) (*raster.Buffer, error) {
	s, err := Dimension(size)
	if err != nil {
		return nil, fmt.Errorf("thumbnail size: %w", err)
	}
	square, err := Crop(src, SquareRegion(src.Width(), src.Height()))
	if err != nil {
		return nil, err
	}
	defer square.Release()
	return Resize(square, float64(s), float64(s), filter)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
