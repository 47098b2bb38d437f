package transform

import (
	"fmt"

	"github.com/ironsheep/image-science/internal/raster"
)

// remap builds a dstW x dstH buffer whose pixel (x, y) is copied from the
// source pixel at from(x, y). Every right-angle transform is one of these.
func remap(src *raster.Buffer, dstW, dstH int, from func(x, y int) (int, int)) (*raster.Buffer, error) {
	ch := src.Channels()
	dst, err := raster.New(dstW, dstH, ch)
	if err != nil {
		return nil, err
	}
	spix, sstride := src.Pix(), src.Stride()
	for y := 0; y < dstH; y++ {
		row := dst.Row(y)
		for x := 0; x < dstW; x++ {
			sx, sy := from(x, y)
			i := sy*sstride + sx*ch
			copy(row[x*ch:x*ch+ch], spix[i:i+ch])
		}
	}
	return dst, nil
}

// Rotate90 rotates src 90 degrees counter-clockwise.
func Rotate90(src *raster.Buffer) (*raster.Buffer, error) {
	w, h := src.Width(), src.Height()
	return remap(src, h, w, func(x, y int) (int, int) { return w - 1 - y, x })
}

// Rotate180 rotates src 180 degrees.
func Rotate180(src *raster.Buffer) (*raster.Buffer, error) {
	w, h := src.Width(), src.Height()
	return remap(src, w, h, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y })
}

// Rotate270 rotates src 270 degrees counter-clockwise (90 clockwise).
func Rotate270(src *raster.Buffer) (*raster.Buffer, error) {
	w, h := src.Width(), src.Height()
	return remap(src, h, w, func(x, y int) (int, int) { return y, h - 1 - x })
}

// FlipH mirrors src left to right.
func FlipH(src *raster.Buffer) (*raster.Buffer, error) {
	w, h := src.Width(), src.Height()
	return remap(src, w, h, func(x, y int) (int, int) { return w - 1 - x, y })
}

// FlipV mirrors src top to bottom.
func FlipV(src *raster.Buffer) (*raster.Buffer, error) {
	w, h := src.Width(), src.Height()
	return remap(src, w, h, func(x, y int) (int, int) { return x, h - 1 - y })
}

// Transpose flips src horizontally and rotates it 90 degrees counter-clockwise.
func Transpose(src *raster.Buffer) (*raster.Buffer, error) {
	w, h := src.Width(), src.Height()
	return remap(src, h, w, func(x, y int) (int, int) { return y, x })
}

// Transverse flips src vertically and rotates it 90 degrees counter-clockwise.
func Transverse(src *raster.Buffer) (*raster.Buffer, error) {
	w, h := src.Width(), src.Height()
	return remap(src, h, w, func(x, y int) (int, int) { return w - 1 - y, h - 1 - x })
}

// Flip axes accepted by Flip.
const (
	Horizontal = "horizontal"
	Vertical   = "vertical"
	Diagonal   = "transpose"
	AntiDiag   = "transverse"
)

// FlipAxes lists the names accepted by Flip.
var FlipAxes = []string{Horizontal, Vertical, Diagonal, AntiDiag}

// Flip mirrors src about the named axis: horizontal (left to right),
// vertical (top to bottom), transpose (main diagonal) or transverse (anti
// diagonal). Diagonal flips swap width and height.
func Flip(src *raster.Buffer, axis string) (*raster.Buffer, error) {
	switch axis {
	case Horizontal:
		return FlipH(src)
	case Vertical:
		return FlipV(src)
	case Diagonal:
		return Transpose(src)
	case AntiDiag:
		return Transverse(src)
	}
	return nil, fmt.Errorf("%w: unknown flip axis %q", ErrInvalidArgument, axis)
}
