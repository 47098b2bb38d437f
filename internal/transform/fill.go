package transform

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-science/internal/raster"
)

// Fill is the non-premultiplied RGBA color painted where a rotated image
// does not cover its canvas.
type Fill struct {
	R, G, B, A uint8
}

// Transparent is the default fill: transparent black, which renders as plain
// black on buffers without an alpha channel.
var Transparent = Fill{}

// ParseFill parses "transparent", "#RGB", "#RRGGBB" or "#RRGGBBAA".
func ParseFill(s string) (Fill, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "transparent" || s == "none" {
		return Transparent, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	switch len(s) {
	case 4, 7, 9:
	default:
		return Fill{}, fmt.Errorf("%w: fill color %q", ErrInvalidArgument, s)
	}

	alpha := uint8(255)
	if len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return Fill{}, fmt.Errorf("%w: fill color %q", ErrInvalidArgument, s)
		}
		alpha = a
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Fill{}, fmt.Errorf("%w: fill color %q: %v", ErrInvalidArgument, s, err)
	}
	r, g, b := c.RGB255()
	return Fill{R: r, G: g, B: b, A: alpha}, nil
}

// String formats the fill as "#RRGGBBAA".
func (f Fill) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", f.R, f.G, f.B, f.A)
}

// samples returns the fill as ch interleaved samples.
func (f Fill) samples(ch int) []uint8 {
	switch ch {
	case raster.Gray:
		// BT.601 luma, matching color.GrayModel.
		y := (19595*uint32(f.R) + 38470*uint32(f.G) + 7471*uint32(f.B) + 1<<15) >> 16
		return []uint8{uint8(y)}
	case raster.RGB:
		return []uint8{f.R, f.G, f.B}
	}
	return []uint8{f.R, f.G, f.B, f.A}
}
