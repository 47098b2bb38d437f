package transform

import (
	"image"
	"math"
	"testing"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-science/internal/codec"
	"github.com/ironsheep/image-science/internal/raster"
)

// gradient returns an opaque buffer whose samples vary with position so
// that misplaced pixels are detectable.
func gradient(t *testing.T, w, h, ch int) *raster.Buffer {
	t.Helper()
	b, err := raster.New(w, h, ch)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := lo.Must(b.Pixel(x, y))
			for c := range p {
				p[c] = uint8((x*11 + y*7 + c*50) % 256)
			}
			if ch == raster.RGBA {
				p[3] = 255
			}
		}
	}
	return b
}

func solid(t *testing.T, w, h int, samples ...uint8) *raster.Buffer {
	t.Helper()
	b, err := raster.New(w, h, len(samples))
	require.NoError(t, err)
	b.Fill(samples...)
	return b
}

func maxDiff(a, b []uint8) int {
	d := 0
	for i := range a {
		v := int(a[i]) - int(b[i])
		if v < 0 {
			v = -v
		}
		d = max(d, v)
	}
	return d
}

func TestDimension(t *testing.T) {
	t.Parallel()

	valid := []struct {
		in   float64
		want int
	}{
		{25, 25},
		{25.2, 25},
		{25.7, 25},
		{1, 1},
		{1.999, 1},
	}
	for _, tt := range valid {
		got, err := Dimension(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	invalid := []float64{0, -25, -0.1, 0.5, math.NaN(), math.Inf(1), math.Inf(-1), MaxDimension + 1}
	for _, v := range invalid {
		_, err := Dimension(v)
		assert.ErrorIs(t, err, ErrInvalidArgument, v)
	}
}

func TestResize_Dimensions(t *testing.T) {
	t.Parallel()

	src := gradient(t, 50, 50, raster.RGB)

	tests := []struct {
		name         string
		w, h         float64
		wantW, wantH int
	}{
		{"integers", 25, 25, 25, 25},
		{"floats", 25.2, 25.7, 25, 25},
		{"upscale", 80, 120, 80, 120},
		{"width only", 10, 50, 10, 50},
		{"height only", 50, 10, 50, 10},
		{"same size", 50, 50, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := Resize(src, tt.w, tt.h, Linear)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, dst.Width())
			assert.Equal(t, tt.wantH, dst.Height())
			assert.Equal(t, src.Channels(), dst.Channels())
		})
	}
}

func TestResize_InvalidArgument(t *testing.T) {
	t.Parallel()

	src := gradient(t, 50, 50, raster.RGB)

	tests := []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 25},
		{"zero height", 25, 0},
		{"negative width", -25, 25},
		{"negative height", 25, -25},
		{"fraction below one", 0.9, 25},
		{"nan", math.NaN(), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := Resize(src, tt.w, tt.h, Linear)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, dst)
		})
	}
}

func TestResize_DoesNotMutateSource(t *testing.T) {
	t.Parallel()

	src := gradient(t, 20, 20, raster.RGB)
	before := src.Clone()

	_, err := Resize(src, 7, 9, Linear)
	require.NoError(t, err)
	assert.Equal(t, before.Pix(), src.Pix())

	same, err := Resize(src, 20, 20, Linear)
	require.NoError(t, err)
	same.Pix()[0]++
	assert.Equal(t, before.Pix(), src.Pix(), "same-size resize must copy")
}

func TestResize_UniformColorPreserved(t *testing.T) {
	t.Parallel()

	for _, f := range []Filter{Box, Linear, CatmullRom} {
		t.Run(f.Name, func(t *testing.T) {
			src := solid(t, 50, 50, 12, 200, 99)
			dst, err := Resize(src, 17, 33, f)
			require.NoError(t, err)
			for i := 0; i < len(dst.Pix()); i += 3 {
				require.Equal(t, []uint8{12, 200, 99}, dst.Pix()[i:i+3])
			}
		})
	}
}

func TestResize_BoxAveragesBlocks(t *testing.T) {
	t.Parallel()

	src := lo.Must(raster.FromPix(4, 2, raster.Gray, []uint8{
		0, 100, 10, 30,
		200, 100, 50, 70,
	}))

	dst, err := Resize(src, 2, 1, Box)
	require.NoError(t, err)
	assert.Equal(t, []uint8{100, 40}, dst.Pix())
}

func TestResize_MatchesImagingLinear(t *testing.T) {
	t.Parallel()

	src := gradient(t, 50, 70, raster.RGBA)
	want := imaging.Resize(codec.ToImage(src), 23, 31, imaging.Linear)

	got, err := Resize(src, 23, 31, Linear)
	require.NoError(t, err)
	require.Equal(t, want.Bounds().Dx(), got.Width())
	require.Equal(t, want.Bounds().Dy(), got.Height())
	assert.LessOrEqual(t, maxDiff(want.Pix, got.Pix()), 1)
}

func TestResize_TransparentPixelsDoNotBleed(t *testing.T) {
	t.Parallel()

	src := lo.Must(raster.FromPix(2, 1, raster.RGBA, []uint8{
		255, 0, 0, 255,
		0, 255, 0, 0,
	}))

	dst, err := Resize(src, 1, 1, Box)
	require.NoError(t, err)
	p := dst.Pix()
	assert.Equal(t, uint8(255), p[0])
	assert.Equal(t, uint8(0), p[1], "color of a fully transparent pixel must not leak")
	assert.InDelta(t, 128, int(p[3]), 1)
}

func TestFilterByName(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]string{
		"box": "box", "Linear": "linear", "bilinear": "linear", "": "linear",
		"catmullrom": "catmullrom", "bicubic": "catmullrom",
	} {
		f, err := FilterByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, f.Name, name)
	}

	_, err := FilterByName("lanczos9")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNormalizeAngle(t *testing.T) {
	t.Parallel()

	tests := map[float64]float64{
		0: 0, 90: 90, 360: 0, 450: 90, -90: 270, -270: 90, 720: 0, 45.5: 45.5,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeAngle(in), in)
	}
}

func TestRotate_RightAngleDimensions(t *testing.T) {
	t.Parallel()

	src := gradient(t, 50, 70, raster.RGB)

	tests := []struct {
		angle        float64
		wantW, wantH int
	}{
		{90, 70, 50},
		{90.0, 70, 50},
		{-90, 70, 50},
		{180, 50, 70},
		{270, 70, 50},
		{360, 50, 70},
		{0, 50, 70},
	}

	for _, tt := range tests {
		dst, err := Rotate(src, tt.angle, Transparent)
		require.NoError(t, err, tt.angle)
		assert.Equal(t, tt.wantW, dst.Width(), tt.angle)
		assert.Equal(t, tt.wantH, dst.Height(), tt.angle)
	}
}

func TestRotate_IntAndFloatAgree(t *testing.T) {
	t.Parallel()

	src := gradient(t, 13, 9, raster.RGB)
	a, err := Rotate(src, float64(90), Transparent)
	require.NoError(t, err)
	b, err := Rotate(src, 90.0, Transparent)
	require.NoError(t, err)
	c, err := Rotate(src, -270, Transparent)
	require.NoError(t, err)

	assert.Equal(t, a.Pix(), b.Pix())
	assert.Equal(t, a.Pix(), c.Pix())
}

func TestRotate90_PixelMapping(t *testing.T) {
	t.Parallel()

	// 3x2:
	//  1 2 3
	//  4 5 6
	src := lo.Must(raster.FromPix(3, 2, raster.Gray, []uint8{1, 2, 3, 4, 5, 6}))

	ccw, err := Rotate90(src)
	require.NoError(t, err)
	assert.Equal(t, []uint8{3, 6, 2, 5, 1, 4}, ccw.Pix())

	half, err := Rotate180(src)
	require.NoError(t, err)
	assert.Equal(t, []uint8{6, 5, 4, 3, 2, 1}, half.Pix())

	cw, err := Rotate270(src)
	require.NoError(t, err)
	assert.Equal(t, []uint8{4, 1, 5, 2, 6, 3}, cw.Pix())

	tr, err := Transpose(src)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 4, 2, 5, 3, 6}, tr.Pix())

	tv, err := Transverse(src)
	require.NoError(t, err)
	assert.Equal(t, []uint8{6, 3, 5, 2, 4, 1}, tv.Pix())
}

func TestRotate_RightAnglesMatchImaging(t *testing.T) {
	t.Parallel()

	src := gradient(t, 11, 7, raster.RGBA)
	img := codec.ToImage(src)

	tests := []struct {
		name string
		ours func(*raster.Buffer) (*raster.Buffer, error)
		want *image.NRGBA
	}{
		{"rotate90", Rotate90, imaging.Rotate90(img)},
		{"rotate180", Rotate180, imaging.Rotate180(img)},
		{"rotate270", Rotate270, imaging.Rotate270(img)},
		{"transpose", Transpose, imaging.Transpose(img)},
		{"transverse", Transverse, imaging.Transverse(img)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ours(src)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Pix, got.Pix())
		})
	}
}

func TestFlips_MatchBild(t *testing.T) {
	t.Parallel()

	src := gradient(t, 9, 5, raster.RGBA)
	img := codec.ToImage(src)

	h, err := FlipH(src)
	require.NoError(t, err)
	assert.Equal(t, transform.FlipH(img).Pix, h.Pix())

	v, err := FlipV(src)
	require.NoError(t, err)
	assert.Equal(t, transform.FlipV(img).Pix, v.Pix())
}

func TestFlip(t *testing.T) {
	t.Parallel()

	// 3x2 single channel:
	// 1 2 3
	// 4 5 6
	src, err := raster.New(3, 2, raster.Gray)
	require.NoError(t, err)
	copy(src.Pix(), []uint8{1, 2, 3, 4, 5, 6})

	tests := []struct {
		axis         string
		wantW, wantH int
		want         []uint8
	}{
		{Horizontal, 3, 2, []uint8{3, 2, 1, 6, 5, 4}},
		{Vertical, 3, 2, []uint8{4, 5, 6, 1, 2, 3}},
		{Diagonal, 2, 3, []uint8{1, 4, 2, 5, 3, 6}},
		{AntiDiag, 2, 3, []uint8{6, 3, 5, 2, 4, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.axis, func(t *testing.T) {
			dst, err := Flip(src, tt.axis)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, dst.Width())
			assert.Equal(t, tt.wantH, dst.Height())
			assert.Equal(t, tt.want, dst.Pix())
		})
	}

	_, err = Flip(src, "sideways")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRotate_FourQuarterTurnsIsIdentity(t *testing.T) {
	t.Parallel()

	src := gradient(t, 17, 5, raster.RGB)
	cur := src
	for i := 0; i < 4; i++ {
		next, err := Rotate(cur, 90, Transparent)
		require.NoError(t, err)
		cur = next
	}
	assert.Equal(t, src.Pix(), cur.Pix())
}

func TestRotate_ArbitraryAngle(t *testing.T) {
	t.Parallel()

	src := solid(t, 40, 20, 255, 255, 255, 255)
	fill := Fill{R: 10, G: 20, B: 30, A: 255}

	dst, err := Rotate(src, 45, fill)
	require.NoError(t, err)

	w, h := RotatedSize(40, 20, 45)
	assert.Equal(t, w, dst.Width())
	assert.Equal(t, h, dst.Height())
	assert.Greater(t, dst.Width(), 40)
	assert.Greater(t, dst.Height(), 20)

	corner := lo.Must(dst.Pixel(0, 0))
	assert.Equal(t, []uint8{10, 20, 30, 255}, corner)

	center := lo.Must(dst.Pixel(dst.Width()/2, dst.Height()/2))
	assert.Equal(t, []uint8{255, 255, 255, 255}, center)
}

func TestRotate_ArbitraryAngleDefaultFill(t *testing.T) {
	t.Parallel()

	src := solid(t, 30, 30, 200, 200, 200)
	dst, err := Rotate(src, 30, Transparent)
	require.NoError(t, err)
	assert.Equal(t, raster.RGB, dst.Channels())
	assert.Equal(t, []uint8{0, 0, 0}, lo.Must(dst.Pixel(0, 0)))

	gray := solid(t, 30, 30, 200)
	gdst, err := Rotate(gray, 30, Fill{R: 255, G: 255, B: 255, A: 255})
	require.NoError(t, err)
	assert.Equal(t, []uint8{255}, lo.Must(gdst.Pixel(0, 0)))
}

func TestRotate_TransparentSourceKeepsTransparency(t *testing.T) {
	t.Parallel()

	// Pixels inside a fully transparent source stay transparent even when
	// the uncovered canvas gets an opaque fill.
	src := solid(t, 40, 40, 90, 90, 90, 0)
	dst, err := Rotate(src, 30, Fill{R: 255, A: 255})
	require.NoError(t, err)

	assert.Equal(t, []uint8{255, 0, 0, 255}, lo.Must(dst.Pixel(0, 0)))
	assert.Equal(t, []uint8{0, 0, 0, 0}, lo.Must(dst.Pixel(dst.Width()/2, dst.Height()/2)))
}

func TestRotate_InvalidAngle(t *testing.T) {
	t.Parallel()

	src := solid(t, 3, 3, 1)
	for _, a := range []float64{math.NaN(), math.Inf(1)} {
		_, err := Rotate(src, a, Transparent)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestRotatedSize(t *testing.T) {
	t.Parallel()

	w, h := RotatedSize(50, 70, 90)
	assert.Equal(t, 70, w)
	assert.Equal(t, 50, h)

	w, h = RotatedSize(50, 70, 180)
	assert.Equal(t, 50, w)
	assert.Equal(t, 70, h)

	w, h = RotatedSize(0, 70, 45)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestParseFill(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Fill
	}{
		{"", Transparent},
		{"transparent", Transparent},
		{"#ffffff", Fill{255, 255, 255, 255}},
		{"ff0000", Fill{255, 0, 0, 255}},
		{"#00ff0080", Fill{0, 255, 0, 128}},
	}
	for _, tt := range tests {
		got, err := ParseFill(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"#zzzzzz", "blue", "#12345"} {
		_, err := ParseFill(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, bad)
	}

	assert.Equal(t, "#00ff0080", Fill{0, 255, 0, 128}.String())
}
