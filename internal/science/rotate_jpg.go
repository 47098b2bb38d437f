package science

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ironsheep/image-science/internal/jpegrot"
)

var (
	defaultRotator     *jpegrot.Engine
	defaultRotatorOnce sync.Once
)

func rotator(o *options) *jpegrot.Engine {
	if o.rotator != nil {
		return o.rotator
	}
	defaultRotatorOnce.Do(func() {
		defaultRotator = jpegrot.New(jpegrot.DefaultConfig(), nil)
	})
	return defaultRotator
}

// RotateJPG turns the JPEG at srcPath a quarter turn, clockwise when
// rotateRight is set, and writes it to dstPath without re-encoding when
// jpegtran is available.
//
// Without perfect, partial MCUs on the edge that would move to the top or
// left are trimmed, so the result may be a few pixels smaller than the
// source. With perfect, such sources fail with ErrLossyRotationRejected.
// dstPath is never created when the call fails. Failures to read the source
// or write the destination, and jpegtran failures, wrap ErrIO.
func RotateJPG(srcPath, dstPath string, rotateRight, perfect bool, opts ...Option) error {
	return RotateJPGContext(context.Background(), srcPath, dstPath, rotateRight, perfect, opts...)
}

// RotateJPGContext is RotateJPG with a context bounding the jpegtran run.
func RotateJPGContext(ctx context.Context, srcPath, dstPath string, rotateRight, perfect bool, opts ...Option) error {
	o := newOptions(opts)
	err := rotator(o).RotateJPG(ctx, srcPath, dstPath, rotateRight, perfect)
	switch {
	case err == nil,
		errors.Is(err, ErrLossyRotationRejected),
		errors.Is(err, ErrUnsupportedFormat),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}
