package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/image-science/internal/raster"
)

// NormalizeAngle maps any finite angle in degrees into [0,360).
func NormalizeAngle(angle float64) float64 {
	a := angle - math.Floor(angle/360)*360
	if a >= 360 {
		a = 0
	}
	return a
}

// Rotate rotates src counter-clockwise by angle degrees.
//
// The canvas grows to the bounding box of the rotated source. Angles that
// normalize to 0, 90, 180 or 270 are lossless permutations; any other angle
// is bilinearly interpolated with fill in the uncovered corners.
func Rotate(src *raster.Buffer, angle float64, fill Fill) (*raster.Buffer, error) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return nil, fmt.Errorf("%w: angle %v is not finite", ErrInvalidArgument, angle)
	}

	a := NormalizeAngle(angle)
	switch a {
	case 0:
		return src.Clone(), nil
	case 90:
		return Rotate90(src)
	case 180:
		return Rotate180(src)
	case 270:
		return Rotate270(src)
	}
	return rotateInterpolated(src, a, fill)
}

// RotatedSize returns the canvas size that holds a w x h rectangle rotated
// by angle degrees.
func RotatedSize(w, h int, angle float64) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	switch NormalizeAngle(angle) {
	case 0, 180:
		return w, h
	case 90, 270:
		return h, w
	}

	sin, cos := math.Sincos(math.Pi * angle / 180)
	x1, y1 := rotatePoint(float64(w-1), 0, sin, cos)
	x2, y2 := rotatePoint(float64(w-1), float64(h-1), sin, cos)
	x3, y3 := rotatePoint(0, float64(h-1), sin, cos)

	minx := math.Min(x1, math.Min(x2, math.Min(x3, 0)))
	maxx := math.Max(x1, math.Max(x2, math.Max(x3, 0)))
	miny := math.Min(y1, math.Min(y2, math.Min(y3, 0)))
	maxy := math.Max(y1, math.Max(y2, math.Max(y3, 0)))

	neww := maxx - minx + 1
	if neww-math.Floor(neww) > 0.1 {
		neww++
	}
	newh := maxy - miny + 1
	if newh-math.Floor(newh) > 0.1 {
		newh++
	}
	return int(neww), int(newh)
}

func rotatePoint(x, y, sin, cos float64) (float64, float64) {
	return x*cos - y*sin, x*sin + y*cos
}

func rotateInterpolated(src *raster.Buffer, angle float64, fill Fill) (*raster.Buffer, error) {
	srcW, srcH := src.Width(), src.Height()
	dstW, dstH := RotatedSize(srcW, srcH, angle)
	if dstW > MaxDimension || dstH > MaxDimension {
		return nil, fmt.Errorf("%w: rotated canvas %dx%d exceeds %d", ErrInvalidArgument, dstW, dstH, MaxDimension)
	}
	ch := src.Channels()
	dst, err := raster.New(dstW, dstH, ch)
	if err != nil {
		return nil, err
	}

	srcXOff := float64(srcW)/2 - 0.5
	srcYOff := float64(srcH)/2 - 0.5
	dstXOff := float64(dstW)/2 - 0.5
	dstYOff := float64(dstH)/2 - 0.5

	bg := fill.samples(ch)
	dst.Fill(bg...)
	sin, cos := math.Sincos(math.Pi * angle / 180)

	for dstY := 0; dstY < dstH; dstY++ {
		row := dst.Row(dstY)
		for dstX := 0; dstX < dstW; dstX++ {
			xf, yf := rotatePoint(float64(dstX)-dstXOff, float64(dstY)-dstYOff, sin, cos)
			xf, yf = xf+srcXOff, yf+srcYOff
			interpolatePoint(row[dstX*ch:dstX*ch+ch:dstX*ch+ch], src, xf, yf, bg)
		}
	}
	return dst, nil
}

// interpolatePoint samples src at the fractional position (xf, yf) into d.
// Neighbors outside the source contribute the background samples. Points
// with no source neighbor leave d untouched; the canvas is pre-filled.
func interpolatePoint(d []uint8, src *raster.Buffer, xf, yf float64, bg []uint8) {
	ch := src.Channels()
	w, h := src.Width(), src.Height()

	x0 := int(math.Floor(xf))
	y0 := int(math.Floor(yf))
	if x0 < -1 || y0 < -1 || x0 >= w || y0 >= h {
		return
	}

	xq := xf - float64(x0)
	yq := yf - float64(y0)
	xs := [4]int{x0, x0 + 1, x0, x0 + 1}
	ys := [4]int{y0, y0, y0 + 1, y0 + 1}
	weights := [4]float64{
		(1 - xq) * (1 - yq),
		xq * (1 - yq),
		(1 - xq) * yq,
		xq * yq,
	}

	pix := src.Pix()
	stride := src.Stride()
	sample := func(i int) []uint8 {
		x, y := xs[i], ys[i]
		if x < 0 || y < 0 || x >= w || y >= h {
			return bg
		}
		j := y*stride + x*ch
		return pix[j : j+ch : j+ch]
	}

	if ch == raster.RGBA {
		var r, g, b, a float64
		for i := 0; i < 4; i++ {
			s := sample(i)
			wa := float64(s[3]) * weights[i]
			r += float64(s[0]) * wa
			g += float64(s[1]) * wa
			b += float64(s[2]) * wa
			a += wa
		}
		if a != 0 {
			aInv := 1 / a
			d[0] = clamp(r * aInv)
			d[1] = clamp(g * aInv)
			d[2] = clamp(b * aInv)
			d[3] = clamp(a)
		} else {
			clear(d)
		}
		return
	}

	var sums [4]float64
	for i := 0; i < 4; i++ {
		s := sample(i)
		for c := 0; c < ch; c++ {
			sums[c] += float64(s[c]) * weights[i]
		}
	}
	for c := 0; c < ch; c++ {
		d[c] = clamp(sums[c])
	}
}
