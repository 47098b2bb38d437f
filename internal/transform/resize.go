package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/image-science/internal/raster"
)

// ErrInvalidArgument is returned for non-positive, non-finite or oversized
// target dimensions, out-of-range crop rectangles and unknown filters.
var ErrInvalidArgument = errors.New("invalid argument")

// MaxDimension is the largest width or height a transform will allocate.
const MaxDimension = 1 << 16

// Dimension truncates a requested size toward zero and validates it.
//
// 25.7 becomes 25. Zero, negative, NaN, infinite values and values whose
// truncation is zero (such as 0.5) are rejected with ErrInvalidArgument.
func Dimension(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: dimension %v is not finite", ErrInvalidArgument, v)
	}
	t := math.Trunc(v)
	if t <= 0 {
		return 0, fmt.Errorf("%w: dimension %v must be positive", ErrInvalidArgument, v)
	}
	if t > MaxDimension {
		return 0, fmt.Errorf("%w: dimension %v exceeds %d", ErrInvalidArgument, v, MaxDimension)
	}
	return int(t), nil
}

// Resize resamples src to width x height using filter.
//
// Fractional dimensions are truncated toward zero (see Dimension). When the
// target matches the source size a copy is returned.
func Resize(src *raster.Buffer, width, height float64, filter Filter) (*raster.Buffer, error) {
	dstW, err := Dimension(width)
	if err != nil {
		return nil, fmt.Errorf("resize width: %w", err)
	}
	dstH, err := Dimension(height)
	if err != nil {
		return nil, fmt.Errorf("resize height: %w", err)
	}
	if filter.Kernel == nil {
		filter = Linear
	}

	srcW, srcH := src.Width(), src.Height()
	if srcW == dstW && srcH == dstH {
		return src.Clone(), nil
	}

	if srcW != dstW && srcH != dstH {
		tmp, err := resizeHorizontal(src, dstW, filter)
		if err != nil {
			return nil, err
		}
		defer tmp.Release()
		return resizeVertical(tmp, dstH, filter)
	}
	if srcW != dstW {
		return resizeHorizontal(src, dstW, filter)
	}
	return resizeVertical(src, dstH, filter)
}

func resizeHorizontal(src *raster.Buffer, width int, filter Filter) (*raster.Buffer, error) {
	ch := src.Channels()
	dst, err := raster.New(width, src.Height(), ch)
	if err != nil {
		return nil, err
	}
	weights := precomputeWeights(width, src.Width(), filter)
	for y := 0; y < src.Height(); y++ {
		line := src.Row(y)
		out := dst.Row(y)
		for x := range weights {
			accumulate(out[x*ch:x*ch+ch:x*ch+ch], line, ch, weights[x])
		}
	}
	return dst, nil
}

func resizeVertical(src *raster.Buffer, height int, filter Filter) (*raster.Buffer, error) {
	ch := src.Channels()
	w := src.Width()
	dst, err := raster.New(w, height, ch)
	if err != nil {
		return nil, err
	}
	weights := precomputeWeights(height, src.Height(), filter)

	// Gather each column into a contiguous scan line so the inner loop is
	// shared with the horizontal pass.
	line := make([]uint8, src.Height()*ch)
	pix := src.Pix()
	stride := src.Stride()
	dpix := dst.Pix()
	dstride := dst.Stride()
	for x := 0; x < w; x++ {
		for y := 0; y < src.Height(); y++ {
			copy(line[y*ch:y*ch+ch], pix[y*stride+x*ch:])
		}
		for y := range weights {
			j := y*dstride + x*ch
			accumulate(dpix[j:j+ch:j+ch], line, ch, weights[y])
		}
	}
	return dst, nil
}

// accumulate writes the weighted sum of the samples in line selected by ws
// into out. RGBA samples are weighted by their alpha.
func accumulate(out, line []uint8, ch int, ws []indexWeight) {
	if ch == raster.RGBA {
		var r, g, b, a float64
		for _, w := range ws {
			i := w.index * 4
			s := line[i : i+4 : i+4]
			aw := float64(s[3]) * w.weight
			r += float64(s[0]) * aw
			g += float64(s[1]) * aw
			b += float64(s[2]) * aw
			a += aw
		}
		if a != 0 {
			aInv := 1 / a
			out[0] = clamp(r * aInv)
			out[1] = clamp(g * aInv)
			out[2] = clamp(b * aInv)
			out[3] = clamp(a)
		}
		return
	}

	var sums [4]float64
	for _, w := range ws {
		i := w.index * ch
		for c := 0; c < ch; c++ {
			sums[c] += float64(line[i+c]) * w.weight
		}
	}
	for c := 0; c < ch; c++ {
		out[c] = clamp(sums[c])
	}
}
