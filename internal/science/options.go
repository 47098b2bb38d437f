package science

import (
	"go.uber.org/zap"

	"github.com/ironsheep/image-science/internal/codec"
	"github.com/ironsheep/image-science/internal/jpegrot"
	"github.com/ironsheep/image-science/internal/transform"
)

type options struct {
	filter  transform.Filter
	fill    transform.Fill
	decode  codec.DecodeOptions
	encode  codec.EncodeOptions
	logger  *zap.Logger
	rotator *jpegrot.Engine
}

// Option configures Open, WithImage and RotateJPG.
type Option func(*options)

// WithFilter sets the resampling filter. The default is transform.Linear.
func WithFilter(f transform.Filter) Option {
	return func(o *options) { o.filter = f }
}

// WithFill sets the color of areas left uncovered by arbitrary rotations.
func WithFill(f transform.Fill) Option {
	return func(o *options) { o.fill = f }
}

// WithDecodeOptions sets the decoder options.
func WithDecodeOptions(d codec.DecodeOptions) Option {
	return func(o *options) { o.decode = d }
}

// WithEncodeOptions sets the encoder options used by Save.
func WithEncodeOptions(e codec.EncodeOptions) Option {
	return func(o *options) { o.encode = e }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRotator sets the engine used by RotateJPG.
func WithRotator(e *jpegrot.Engine) Option {
	return func(o *options) { o.rotator = e }
}

func newOptions(opts []Option) *options {
	o := &options{
		filter: transform.Linear,
		fill:   transform.Transparent,
		encode: codec.DefaultEncodeOptions(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
