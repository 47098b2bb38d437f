package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/image-science/internal/codec"
	"github.com/ironsheep/image-science/internal/science"
	"github.com/ironsheep/image-science/internal/transform"
)

// batchCommand applies one operation to many files in parallel
func batchCommand() *cobra.Command {
	var (
		outDir string
		format string
	)
	j := job{}

	cmd := cobra.Command{
		Use:   "batch <file>...",
		Short: "Apply one operation to many files in parallel",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			logger := getLogger()
			defer logger.Sync()

			if !lo.Contains(operations, j.op) {
				logger.Fatal("unknown operation", zap.String("op", j.op), zap.Strings("supported", operations))
			}
			ext, err := outputExtension(j.op, format)
			if err != nil {
				logger.Fatal("invalid output format", zap.String("format", format), zap.Error(err))
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				logger.Fatal("failed to create output directory", zap.Error(err))
			}

			opts := imageOptions(logger)
			if j.op == opRotateJPG {
				opts = append(opts, science.WithRotator(rotator(logger)))
			}

			b := batch{
				job:         &j,
				outDir:      outDir,
				ext:         ext,
				concurrency: c.Batch.Concurrency,
				opts:        opts,
				logger:      logger.Named("batch"),
			}
			if err := b.run(cmd.Context(), args); err != nil {
				logger.Fatal("batch failed", zap.Error(err))
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&j.op, "op", opThumbnail, "operation: "+strings.Join(operations, ", "))
	flags.StringVarP(&outDir, "out-dir", "o", ".", "output directory")
	flags.StringVar(&format, "format", "", "output format, empty keeps each source extension")
	flags.Float64Var(&j.width, "width", 0, "resize: target width")
	flags.Float64Var(&j.height, "height", 0, "resize: target height")
	flags.Float64Var(&j.angle, "angle", 0, "rotate: counter-clockwise angle in degrees")
	flags.BoolVar(&j.rotateRight, "right", false, "rotate-jpg: rotate clockwise")
	flags.BoolVar(&j.perfect, "perfect", false, "rotate-jpg: fail instead of trimming")
	flags.Float64Var(&j.size, "size", 0, "thumbnail: length of the longer side")
	flags.BoolVar(&j.square, "square", false, "thumbnail: crop the centered square first")
	flags.StringVar(&j.region, "region", "center", "crop: named region")
	flags.Float64Var(&j.scale, "scale", 1, "crop: scale factor applied after cropping")
	flags.StringVar(&j.axis, "axis", transform.Horizontal, "flip: "+strings.Join(transform.FlipAxes, ", "))

	return &cmd
}

// outputExtension returns the extension replacing each source extension, or
// "" to keep it. rotate-jpg always writes JPEG.
func outputExtension(op, format string) (string, error) {
	if len(format) == 0 {
		return "", nil
	}
	f := codec.ParseFormat(format)
	if !f.Encodable() {
		return "", fmt.Errorf("%w: %q", codec.ErrUnsupportedFormat, format)
	}
	if op == opRotateJPG && f != codec.JPEG {
		return "", fmt.Errorf("%w: %s writes JPEG, not %s", science.ErrInvalidArgument, opRotateJPG, f)
	}
	return f.Extension(), nil
}

// errDuplicateDestination marks inputs that map onto the same output file.
var errDuplicateDestination = errors.New("several inputs map to the same output file")

// batch runs a job over many files with bounded parallelism. A failing file
// does not stop the others. Inputs whose names collide in the output
// directory are not processed and count as failures.
type batch struct {
	job         *job
	outDir      string
	ext         string
	concurrency int
	opts        []science.Option
	logger      *zap.Logger
}

// destination maps a source path into the output directory.
func (b *batch) destination(src string) string {
	name := filepath.Base(src)
	if len(b.ext) > 0 {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + b.ext
	}
	return filepath.Join(b.outDir, name)
}

func (b *batch) run(ctx context.Context, files []string) error {
	if b.logger == nil {
		b.logger = zap.NewNop()
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	eg := errgroup.Group{}
	eg.SetLimit(max(b.concurrency, 1))

	files = lo.Uniq(files)
	byDst := lo.GroupBy(files, b.destination)
	for dst, srcs := range byDst {
		if len(srcs) > 1 {
			b.logger.Warn("skipped", zap.String("dst", dst), zap.Strings("srcs", srcs))
			for _, src := range srcs {
				errs = append(errs, fmt.Errorf("%s: %w: %s", src, errDuplicateDestination, dst))
			}
		}
	}

	for _, src := range files {
		dst := b.destination(src)
		if len(byDst[dst]) > 1 {
			continue
		}
		eg.Go(func() error {
			if err := b.job.run(ctx, src, dst, b.opts); err != nil {
				b.logger.Warn("failed", zap.String("src", src), zap.Error(err))
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", src, err))
				mu.Unlock()
				return nil
			}
			b.logger.Info(b.job.op, zap.String("src", src), zap.String("dst", dst))
			return nil
		})
	}
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files failed: %w", len(errs), len(files), errors.Join(errs...))
	}
	return nil
}
