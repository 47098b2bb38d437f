package jpegrot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/image-science/internal/codec"
)

var (
	// ErrNotFound is returned when the source file does not exist. It is the
	// same value as codec.ErrNotFound.
	ErrNotFound = codec.ErrNotFound
	// ErrLossyRotationRejected is returned when a perfect rotation was
	// requested for a source that is not MCU-aligned.
	ErrLossyRotationRejected = errors.New("lossless rotation is not possible without trimming")
	// ErrJpegtranUnavailable is returned when jpegtran cannot be run.
	ErrJpegtranUnavailable = errors.New("jpegtran is unavailable")
)

// Rotator performs the quarter turn on a loaded source and returns the
// encoded result.
type Rotator interface {
	Name() string
	Rotate(ctx context.Context, src *Source, d Direction, perfect bool) ([]byte, error)
}

// Config selects and tunes the backend.
type Config struct {
	// JpegtranPath is the jpegtran executable. Empty searches PATH.
	JpegtranPath string
	// Timeout bounds one jpegtran run.
	Timeout time.Duration
	// Quality is the JPEG quality of the re-encoding fallback.
	Quality int
}

// DefaultConfig returns the configuration used by package-level callers.
func DefaultConfig() Config {
	return Config{Timeout: DefaultTimeout, Quality: 95}
}

// Engine validates requests, runs a Rotator and writes the result.
type Engine struct {
	rotator Rotator
	logger  *zap.Logger
}

// New returns an Engine backed by jpegtran when its executable can be found
// and by Reencode otherwise.
func New(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	name := cfg.JpegtranPath
	if len(name) == 0 {
		name = "jpegtran"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		logger.Debug("jpegtran not found, using re-encoding fallback", zap.String("jpegtran", name), zap.Error(err))
		return NewWithRotator(&Reencode{Quality: cfg.Quality}, logger)
	}
	return NewWithRotator(&Jpegtran{Path: path, Timeout: cfg.Timeout}, logger)
}

// NewWithRotator returns an Engine using r.
func NewWithRotator(r Rotator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{rotator: r, logger: logger}
}

// Backend returns the name of the rotator in use.
func (e *Engine) Backend() string {
	return e.rotator.Name()
}

// RotateJPG rotates the JPEG at srcPath a quarter turn into dstPath.
//
// The source is checked before anything is written: a missing file fails
// with ErrNotFound and a perfect request on an unaligned image, or on a
// CMYK/YCCK image whose MCU size is unknown, fails with
// ErrLossyRotationRejected. dstPath appears only once the whole result has
// been written.
func (e *Engine) RotateJPG(ctx context.Context, srcPath, dstPath string, rotateRight, perfect bool) error {
	data, err := codec.ReadFile(srcPath)
	if err != nil {
		return err
	}
	src, err := Inspect(data)
	if err != nil {
		return fmt.Errorf("%s: %w", srcPath, err)
	}

	d := Left
	if rotateRight {
		d = Right
	}
	return e.rotateSource(ctx, src, srcPath, dstPath, d, perfect)
}

func (e *Engine) rotateSource(ctx context.Context, src *Source, srcPath, dstPath string, d Direction, perfect bool) error {
	g := src.Geometry
	if perfect && !src.MCUKnown {
		return fmt.Errorf("%w: MCU layout of %T sources is unknown", ErrLossyRotationRejected, src.Image)
	}
	if perfect && !g.Aligned() {
		return fmt.Errorf("%w: %dx%d is not a multiple of the %dx%d MCU",
			ErrLossyRotationRejected, g.Width, g.Height, g.MCUWidth, g.MCUHeight)
	}

	out, err := e.rotator.Rotate(ctx, src, d, perfect)
	if err != nil {
		return err
	}
	if err := codec.AtomicWrite(dstPath, func(w io.Writer) error {
		_, err := w.Write(out)
		return err
	}); err != nil {
		return err
	}

	w, h := g.Rotated(d)
	e.logger.Debug("rotated jpeg",
		zap.String("src", srcPath),
		zap.String("dst", dstPath),
		zap.Stringer("direction", d),
		zap.Bool("perfect", perfect),
		zap.String("backend", e.rotator.Name()),
		zap.Int("width", w),
		zap.Int("height", h),
	)
	return nil
}
