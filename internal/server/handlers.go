package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"time"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ironsheep/image-science/internal/codec"
	"github.com/ironsheep/image-science/internal/science"
	"github.com/ironsheep/image-science/internal/transform"
)

// errInvalidParams marks argument errors, reported with code -32602.
var errInvalidParams = errors.New("invalid params")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_info", "image_resize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments jsoniter.RawMessage `json:"arguments"`
}

// ImageResult describes an image file written by a tool.
type ImageResult struct {
	Output string       `json:"output"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Format codec.Format `json:"format"`
}

// CropResult contains the cropped image data
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument errors, including out-of-range sizes and crop boxes, return code
// -32602; tool execution errors return -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	call := uuid.Must(uuid.NewV4())
	label := params.Name
	if !lo.ContainsBy(GetToolDefinitions(), func(t Tool) bool { return t.Name == label }) {
		label = "unknown"
	}

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	elapsed := time.Since(start)
	toolCallDuration.WithLabelValues(label).Observe(elapsed.Seconds())

	if err != nil {
		toolCallCounter.WithLabelValues(label, "error").Inc()
		s.logger.Info("tool call failed",
			zap.Stringer("call", call),
			zap.String("tool", params.Name),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		if errors.Is(err, errInvalidParams) || errors.Is(err, science.ErrInvalidArgument) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	toolCallCounter.WithLabelValues(label, "ok").Inc()
	s.logger.Debug("tool call",
		zap.Stringer("call", call),
		zap.String("tool", params.Name),
		zap.Duration("elapsed", elapsed),
	)

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals and validates its arguments
//  2. Applies default values for optional parameters
//  3. Opens the image through the science package
//  4. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args jsoniter.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_info":
		return s.handleImageInfo(ctx, args)
	case "image_dimensions":
		return s.handleImageDimensions(ctx, args)

	// Transform Operations
	case "image_resize":
		return s.handleImageResize(args)
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_rotate_jpg":
		return s.handleImageRotateJPG(ctx, args)
	case "image_thumbnail":
		return s.handleImageThumbnail(args)
	case "image_flip":
		return s.handleImageFlip(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// decodeArgs unmarshals and validates tool arguments.
func decodeArgs(args jsoniter.RawMessage, v vd.Validatable) error {
	if len(args) == 0 {
		args = []byte("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	return nil
}

// options returns the server's image options followed by extra.
func (s *Server) options(extra ...science.Option) []science.Option {
	out := make([]science.Option, 0, len(s.opts)+len(extra))
	out = append(out, s.opts...)
	return append(out, extra...)
}

// saveResult saves img to path and describes the written file.
func saveResult(img *science.Image, path string) (*ImageResult, error) {
	if err := img.Save(path); err != nil {
		return nil, err
	}
	w, err := img.Width()
	if err != nil {
		return nil, err
	}
	h, err := img.Height()
	if err != nil {
		return nil, err
	}
	format := codec.FormatFromPath(path)
	if format == codec.Unknown {
		format, _ = img.Format()
	}
	return &ImageResult{Output: path, Width: w, Height: h, Format: format}, nil
}

// === Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (a *imagePathArgs) Validate() error {
	return vd.ValidateStruct(a,
		vd.Field(&a.Path, vd.Required),
	)
}

func (s *Server) handleImageInfo(ctx context.Context, args jsoniter.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.stat(ctx, a.Path)
}

func (s *Server) handleImageDimensions(ctx context.Context, args jsoniter.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	info, err := s.stat(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	return &codec.Dimensions{Width: info.Width, Height: info.Height}, nil
}

// === Transform Operation Handlers ===

type imageResizeArgs struct {
	Path   string  `json:"path"`
	Output string  `json:"output"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (a *imageResizeArgs) Validate() error {
	return vd.ValidateStruct(a,
		vd.Field(&a.Path, vd.Required),
		vd.Field(&a.Output, vd.Required),
	)
}

func (s *Server) handleImageResize(args jsoniter.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	var res *ImageResult
	err := science.WithImage(a.Path, func(img *science.Image) error {
		return img.Resize(a.Width, a.Height, func(out *science.Image) (err error) {
			res, err = saveResult(out, a.Output)
			return err
		})
	}, s.options()...)
	return res, err
}

type imageRotateArgs struct {
	Path   string  `json:"path"`
	Output string  `json:"output"`
	Angle  float64 `json:"angle"`
}

func (a *imageRotateArgs) Validate() error {
	return vd.ValidateStruct(a,
		vd.Field(&a.Path, vd.Required),
		vd.Field(&a.Output, vd.Required),
	)
}

func (s *Server) handleImageRotate(args jsoniter.RawMessage) (interface{}, error) {
	var a imageRotateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	var res *ImageResult
	err := science.WithImage(a.Path, func(img *science.Image) error {
		return img.Rotate(a.Angle, func(out *science.Image) (err error) {
			res, err = saveResult(out, a.Output)
			return err
		})
	}, s.options()...)
	return res, err
}

type imageRotateJPGArgs struct {
	Path        string `json:"path"`
	Output      string `json:"output"`
	RotateRight bool   `json:"rotate_right"`
	Perfect     bool   `json:"perfect"`
}

func (a *imageRotateJPGArgs) Validate() error {
	return vd.ValidateStruct(a,
		vd.Field(&a.Path, vd.Required),
		vd.Field(&a.Output, vd.Required),
	)
}

func (s *Server) handleImageRotateJPG(ctx context.Context, args jsoniter.RawMessage) (interface{}, error) {
	var a imageRotateJPGArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	err := science.RotateJPGContext(ctx, a.Path, a.Output, a.RotateRight, a.Perfect,
		s.options(science.WithRotator(s.rotator))...)
	if err != nil {
		return nil, err
	}
	dims, err := codec.GetDimensions(a.Output)
	if err != nil {
		return nil, err
	}
	return &ImageResult{Output: a.Output, Width: dims.Width, Height: dims.Height, Format: codec.JPEG}, nil
}

type imageThumbnailArgs struct {
	Path   string  `json:"path"`
	Output string  `json:"output"`
	Size   float64 `json:"size"`
	Square bool    `json:"square"`
}

func (a *imageThumbnailArgs) Validate() error {
	return vd.ValidateStruct(a,
		vd.Field(&a.Path, vd.Required),
		vd.Field(&a.Output, vd.Required),
	)
}

func (s *Server) handleImageThumbnail(args jsoniter.RawMessage) (interface{}, error) {
	var a imageThumbnailArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	var res *ImageResult
	save := func(out *science.Image) (err error) {
		res, err = saveResult(out, a.Output)
		return err
	}
	err := science.WithImage(a.Path, func(img *science.Image) error {
		if a.Square {
			return img.CroppedThumbnail(a.Size, save)
		}
		return img.Thumbnail(a.Size, save)
	}, s.options()...)
	return res, err
}

type imageFlipArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
	Axis   string `json:"axis"`
}

func (a *imageFlipArgs) Validate() error {
	return vd.ValidateStruct(a,
		vd.Field(&a.Path, vd.Required),
		vd.Field(&a.Output, vd.Required),
		vd.Field(&a.Axis, vd.Required, vd.In(lo.ToAnySlice(transform.FlipAxes)...)),
	)
}

func (s *Server) handleImageFlip(args jsoniter.RawMessage) (interface{}, error) {
	var a imageFlipArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	var res *ImageResult
	err := science.WithImage(a.Path, func(img *science.Image) error {
		return img.Flip(a.Axis, func(out *science.Image) (err error) {
			res, err = saveResult(out, a.Output)
			return err
		})
	}, s.options()...)
	return res, err
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path   string  `json:"path"`
	X1     int     `json:"x1"`
	Y1     int     `json:"y1"`
	X2     int     `json:"x2"`
	Y2     int     `json:"y2"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
	Output string  `json:"output"`
}

func (a *imageCropArgs) Validate() error {
	return vd.ValidateStruct(a,
		vd.Field(&a.Path, vd.Required),
		vd.Field(&a.Region, vd.In("top-left", "top-right", "bottom-left", "bottom-right",
			"top-half", "bottom-half", "left-half", "right-half", "center")),
		vd.Field(&a.Scale, vd.Min(0.0)),
	)
}

func (s *Server) handleImageCrop(args jsoniter.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	var res interface{}
	emit := func(out *science.Image) error {
		if len(a.Output) > 0 {
			r, err := saveResult(out, a.Output)
			res = r
			return err
		}
		r, err := encodeCrop(out)
		res = r
		return err
	}

	err := science.WithImage(a.Path, func(img *science.Image) error {
		r := image.Rectangle{Min: image.Pt(a.X1, a.Y1), Max: image.Pt(a.X2, a.Y2)}
		if len(a.Region) > 0 {
			w, err := img.Width()
			if err != nil {
				return err
			}
			h, err := img.Height()
			if err != nil {
				return err
			}
			if r, err = transform.Region(w, h, a.Region); err != nil {
				return err
			}
		}
		return img.WithCrop(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, func(cropped *science.Image) error {
			if a.Scale == 1.0 {
				return emit(cropped)
			}
			w, err := cropped.Width()
			if err != nil {
				return err
			}
			h, err := cropped.Height()
			if err != nil {
				return err
			}
			return cropped.Resize(float64(w)*a.Scale, float64(h)*a.Scale, emit)
		})
	}, s.options()...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func encodeCrop(img *science.Image) (*CropResult, error) {
	var buf bytes.Buffer
	if err := img.Encode(&buf, codec.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}
	w, err := img.Width()
	if err != nil {
		return nil, err
	}
	h, err := img.Height()
	if err != nil {
		return nil, err
	}
	return &CropResult{
		Width:       w,
		Height:      h,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    codec.PNG.MimeType(),
	}, nil
}
