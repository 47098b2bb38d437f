package codec

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-science/internal/raster"
)

// ToBuffer copies a decoded image into a raster.Buffer.
//
// Gray images become 1-channel buffers, opaque images 3-channel buffers and
// everything else non-premultiplied 4-channel buffers.
func ToBuffer(img image.Image) (*raster.Buffer, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		buf, err := raster.New(w, h, raster.Gray)
		if err != nil {
			return nil, err
		}
		if g, ok := img.(*image.Gray); ok {
			for y := 0; y < h; y++ {
				i := g.PixOffset(bounds.Min.X, bounds.Min.Y+y)
				copy(buf.Row(y), g.Pix[i:i+w])
			}
			return buf, nil
		}
		for y := 0; y < h; y++ {
			row := buf.Row(y)
			for x := 0; x < w; x++ {
				row[x] = color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray).Y
			}
		}
		return buf, nil
	}

	if isOpaque(img) {
		// Premultiplied and straight alpha agree on opaque pixels.
		rgba := clone.AsShallowRGBA(img)
		rb := rgba.Bounds()
		buf, err := raster.New(w, h, raster.RGB)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			row := buf.Row(y)
			i := rgba.PixOffset(rb.Min.X, rb.Min.Y+y)
			src := rgba.Pix[i : i+w*4]
			for x := 0; x < w; x++ {
				copy(row[x*3:x*3+3], src[x*4:x*4+3])
			}
		}
		return buf, nil
	}

	// imaging.Clone always yields a zero-origin NRGBA with a tight stride.
	nrgba := imaging.Clone(img)
	return raster.FromPix(w, h, raster.RGBA, nrgba.Pix)
}

func isOpaque(img image.Image) bool {
	o, ok := img.(interface{ Opaque() bool })
	return ok && o.Opaque()
}

// ToImage exposes buf as an image.Image for encoding. Gray and RGBA buffers
// share their samples with the returned image; RGB buffers are expanded to
// opaque NRGBA.
func ToImage(buf *raster.Buffer) image.Image {
	w, h := buf.Width(), buf.Height()
	rect := image.Rect(0, 0, w, h)

	switch buf.Channels() {
	case raster.Gray:
		return &image.Gray{Pix: buf.Pix(), Stride: buf.Stride(), Rect: rect}
	case raster.RGBA:
		return &image.NRGBA{Pix: buf.Pix(), Stride: buf.Stride(), Rect: rect}
	}

	dst := image.NewNRGBA(rect)
	for y := 0; y < h; y++ {
		src := buf.Row(y)
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < w; x++ {
			copy(out[x*4:x*4+3], src[x*3:x*3+3])
			out[x*4+3] = 0xff
		}
	}
	return dst
}
