package main

import (
	"fmt"
	"image"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/image-science/internal/codec"
	"github.com/ironsheep/image-science/internal/science"
	"github.com/ironsheep/image-science/internal/transform"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// infoCommand prints the header information of image files as JSON
func infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>...",
		Short: "Print image header information",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			logger := getLogger()
			defer logger.Sync()

			failed := false
			for _, path := range args {
				info, err := codec.Stat(path)
				if err != nil {
					logger.Error("failed to read image", zap.String("path", path), zap.Error(err))
					failed = true
					continue
				}
				bs, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					logger.Fatal("failed to marshal info", zap.Error(err))
				}
				fmt.Println(string(bs))
			}
			if failed {
				os.Exit(1)
			}
		},
	}
}

// runJob executes j on one file and exits on failure.
func runJob(cmd *cobra.Command, j *job, src, dst string) {
	logger := getLogger()
	defer logger.Sync()

	opts := imageOptions(logger)
	if j.op == opRotateJPG {
		opts = append(opts, science.WithRotator(rotator(logger)))
	}
	if err := j.run(cmd.Context(), src, dst, opts); err != nil {
		logger.Fatal("failed to "+j.op,
			zap.String("src", src),
			zap.String("dst", dst),
			zap.Error(err),
		)
	}
	logger.Info(j.op, zap.String("src", src), zap.String("dst", dst))
}

// resizeCommand resizes to exact dimensions
func resizeCommand() *cobra.Command {
	j := job{op: opResize}

	cmd := cobra.Command{
		Use:   "resize <src> <dst>",
		Short: "Resize an image to exact dimensions",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runJob(cmd, &j, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&j.width, "width", 0, "target width in pixels")
	flags.Float64Var(&j.height, "height", 0, "target height in pixels")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")

	return &cmd
}

// rotateCommand rotates counter-clockwise by any angle
func rotateCommand() *cobra.Command {
	j := job{op: opRotate}

	cmd := cobra.Command{
		Use:   "rotate <src> <dst>",
		Short: "Rotate an image counter-clockwise by any angle",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runJob(cmd, &j, args[0], args[1])
		},
	}

	cmd.Flags().Float64Var(&j.angle, "angle", 0, "counter-clockwise angle in degrees")
	_ = cmd.MarkFlagRequired("angle")

	return &cmd
}

// rotateJPGCommand rotates a JPEG a quarter turn without recompression
func rotateJPGCommand() *cobra.Command {
	j := job{op: opRotateJPG}

	cmd := cobra.Command{
		Use:   "rotate-jpg <src> <dst>",
		Short: "Rotate a JPEG a quarter turn without recompression",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runJob(cmd, &j, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&j.rotateRight, "right", false, "rotate clockwise")
	flags.BoolVar(&j.perfect, "perfect", false, "fail instead of trimming partial MCU blocks")

	return &cmd
}

// thumbnailCommand fits the longer side to a size
func thumbnailCommand() *cobra.Command {
	j := job{op: opThumbnail}

	cmd := cobra.Command{
		Use:   "thumbnail <src> <dst>",
		Short: "Scale an image so its longer side is size pixels",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runJob(cmd, &j, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&j.size, "size", 0, "length of the longer side in pixels")
	flags.BoolVar(&j.square, "square", false, "crop the centered square first")
	_ = cmd.MarkFlagRequired("size")

	return &cmd
}

// cropCommand cuts out a rectangle or a named region
func cropCommand() *cobra.Command {
	var rect []int
	j := job{op: opCrop}

	cmd := cobra.Command{
		Use:   "crop <src> <dst>",
		Short: "Crop a rectangle or a named region",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if len(j.region) == 0 {
				if len(rect) != 4 {
					_ = cmd.Usage()
					os.Exit(2)
				}
				j.rect = image.Rectangle{Min: image.Pt(rect[0], rect[1]), Max: image.Pt(rect[2], rect[3])}
			}
			runJob(cmd, &j, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.IntSliceVar(&rect, "rect", nil, "x1,y1,x2,y2 with x2 and y2 exclusive")
	flags.StringVar(&j.region, "region", "", "named region: top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half or center")
	flags.Float64Var(&j.scale, "scale", 1, "scale factor applied after cropping")
	cmd.MarkFlagsMutuallyExclusive("rect", "region")

	return &cmd
}


// flipCommand mirrors an image
func flipCommand() *cobra.Command {
	j := job{op: opFlip}

	cmd := cobra.Command{
		Use:   "flip <src> <dst>",
		Short: "Mirror an image about an axis",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runJob(cmd, &j, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&j.axis, "axis", transform.Horizontal, "axis: "+strings.Join(transform.FlipAxes, ", "))

	return &cmd
}
