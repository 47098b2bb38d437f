package jpegrot

import (
	"bytes"
	"context"

	"github.com/ironsheep/image-science/internal/codec"
	"github.com/ironsheep/image-science/internal/raster"
	"github.com/ironsheep/image-science/internal/transform"
)

// Reencode rotates by decoding, trimming, permuting and encoding again.
// Output geometry matches Jpegtran; pixel values go through one more JPEG
// generation.
type Reencode struct {
	// Quality is the JPEG quality of the output. Zero selects 95.
	Quality int
}

// Name implements Rotator.
func (r *Reencode) Name() string { return "reencode" }

// Rotate implements Rotator. perfect is enforced by the caller through the
// geometry check; a perfect rotation of an aligned image trims nothing.
func (r *Reencode) Rotate(ctx context.Context, src *Source, d Direction, _ bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf, err := codec.ToBuffer(src.Image)
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	kept, err := transform.Crop(buf, src.Geometry.Retained(d))
	if err != nil {
		return nil, err
	}
	defer kept.Release()

	var rotated *raster.Buffer
	if d == Right {
		rotated, err = transform.Rotate270(kept)
	} else {
		rotated, err = transform.Rotate90(kept)
	}
	if err != nil {
		return nil, err
	}
	defer rotated.Release()

	opts := codec.DefaultEncodeOptions()
	if r.Quality > 0 {
		opts.JPEGQuality = r.Quality
	}
	var out bytes.Buffer
	if err := codec.Encode(&out, rotated, codec.JPEG, opts); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
