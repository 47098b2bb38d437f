package transform

import (
	"fmt"
	"math"
	"strings"
)

// Filter is a resampling kernel with bounded support.
type Filter struct {
	Name    string
	Support float64
	Kernel  func(float64) float64
}

// Box averages every source pixel in the footprint with equal weight.
var Box = Filter{
	Name:    "box",
	Support: 0.5,
	Kernel: func(x float64) float64 {
		x = math.Abs(x)
		if x <= 0.5 {
			return 1.0
		}
		return 0
	},
}

// Linear is the triangle (bilinear) filter.
var Linear = Filter{
	Name:    "linear",
	Support: 1.0,
	Kernel: func(x float64) float64 {
		x = math.Abs(x)
		if x < 1.0 {
			return 1.0 - x
		}
		return 0
	},
}

// CatmullRom is the cubic Catmull-Rom spline (B=0, C=0.5).
var CatmullRom = Filter{
	Name:    "catmullrom",
	Support: 2.0,
	Kernel: func(x float64) float64 {
		return bcspline(x, 0.0, 0.5)
	},
}

func bcspline(x, b, c float64) float64 {
	var y float64
	x = math.Abs(x)
	if x < 1.0 {
		y = ((12-9*b-6*c)*x*x*x + (-18+12*b+6*c)*x*x + (6 - 2*b)) / 6
	} else if x < 2.0 {
		y = ((-b-6*c)*x*x*x + (6*b+30*c)*x*x + (-12*b-48*c)*x + (8*b + 24*c)) / 6
	}
	return y
}

// FilterByName looks up a filter by its Name, case-insensitively.
func FilterByName(name string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "box":
		return Box, nil
	case "linear", "bilinear", "triangle", "":
		return Linear, nil
	case "catmullrom", "bicubic":
		return CatmullRom, nil
	}
	return Filter{}, fmt.Errorf("%w: unknown filter %q", ErrInvalidArgument, name)
}

type indexWeight struct {
	index  int
	weight float64
}

// precomputeWeights returns, for every destination index, the source indexes
// and normalized weights that contribute to it.
func precomputeWeights(dstSize, srcSize int, filter Filter) [][]indexWeight {
	du := float64(srcSize) / float64(dstSize)
	scale := du
	if scale < 1.0 {
		scale = 1.0
	}
	ru := math.Ceil(scale * filter.Support)

	out := make([][]indexWeight, dstSize)
	tmp := make([]indexWeight, 0, dstSize*int(ru+2)*2)

	for v := 0; v < dstSize; v++ {
		fu := (float64(v)+0.5)*du - 0.5

		begin := int(math.Ceil(fu - ru))
		if begin < 0 {
			begin = 0
		}
		end := int(math.Floor(fu + ru))
		if end > srcSize-1 {
			end = srcSize - 1
		}

		var sum float64
		for u := begin; u <= end; u++ {
			w := filter.Kernel((float64(u) - fu) / scale)
			if w != 0 {
				sum += w
				tmp = append(tmp, indexWeight{index: u, weight: w})
			}
		}
		if sum != 0 {
			for i := range tmp {
				tmp[i].weight /= sum
			}
		} else {
			// Kernel vanished over the footprint; fall back to the nearest sample.
			nearest := int(math.Round(fu))
			nearest = max(0, min(srcSize-1, nearest))
			tmp = append(tmp[:0], indexWeight{index: nearest, weight: 1})
		}

		out[v] = tmp
		tmp = tmp[len(tmp):]
	}

	return out
}

// clamp rounds x to the nearest integer and clamps it to [0,255].
func clamp(x float64) uint8 {
	v := int64(x + 0.5)
	if v > 255 {
		return 255
	}
	if v > 0 {
		return uint8(v)
	}
	return 0
}
