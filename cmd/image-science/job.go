package main

import (
	"context"
	"fmt"
	"image"

	"github.com/ironsheep/image-science/internal/science"
	"github.com/ironsheep/image-science/internal/transform"
)

// Operations of a job.
const (
	opResize    = "resize"
	opRotate    = "rotate"
	opRotateJPG = "rotate-jpg"
	opThumbnail = "thumbnail"
	opCrop      = "crop"
	opFlip      = "flip"
)

var operations = []string{opResize, opRotate, opRotateJPG, opThumbnail, opCrop, opFlip}

// job is one image operation applied to a source file, writing a
// destination file.
type job struct {
	op string

	width, height float64 // resize
	angle         float64 // rotate
	size          float64 // thumbnail
	square        bool    // thumbnail

	rotateRight, perfect bool // rotate-jpg

	axis string // flip

	region string          // crop, overrides rect when set
	rect   image.Rectangle // crop
	scale  float64         // crop, 0 keeps the cropped size
}

func (j *job) run(ctx context.Context, src, dst string, opts []science.Option) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	save := func(out *science.Image) error {
		return out.Save(dst)
	}

	switch j.op {
	case opRotateJPG:
		return science.RotateJPGContext(ctx, src, dst, j.rotateRight, j.perfect, opts...)
	case opResize:
		return science.WithImage(src, func(img *science.Image) error {
			return img.Resize(j.width, j.height, save)
		}, opts...)
	case opRotate:
		return science.WithImage(src, func(img *science.Image) error {
			return img.Rotate(j.angle, save)
		}, opts...)
	case opThumbnail:
		return science.WithImage(src, func(img *science.Image) error {
			if j.square {
				return img.CroppedThumbnail(j.size, save)
			}
			return img.Thumbnail(j.size, save)
		}, opts...)
	case opCrop:
		return science.WithImage(src, func(img *science.Image) error {
			return j.crop(img, save)
		}, opts...)
	case opFlip:
		return science.WithImage(src, func(img *science.Image) error {
			return img.Flip(j.axis, save)
		}, opts...)
	}
	return fmt.Errorf("%w: unknown operation %q", science.ErrInvalidArgument, j.op)
}

func (j *job) crop(img *science.Image, save func(*science.Image) error) error {
	r := j.rect
	if len(j.region) > 0 {
		w, err := img.Width()
		if err != nil {
			return err
		}
		h, err := img.Height()
		if err != nil {
			return err
		}
		if r, err = transform.Region(w, h, j.region); err != nil {
			return err
		}
	}
	return img.WithCrop(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, func(cropped *science.Image) error {
		if j.scale == 0 || j.scale == 1 {
			return save(cropped)
		}
		w, err := cropped.Width()
		if err != nil {
			return err
		}
		h, err := cropped.Height()
		if err != nil {
			return err
		}
		return cropped.Resize(float64(w)*j.scale, float64(h)*j.scale, save)
	})
}
