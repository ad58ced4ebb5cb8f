package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ironsheep/image-science/internal/engine"
	"github.com/ironsheep/image-science/internal/imaging"
	"github.com/ironsheep/image-science/internal/logging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_thumbnail").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		logging.Warn().
			Add(logging.ToolName(params.Name)).
			Add(logging.Duration(time.Since(start))).
			Add(logging.ErrorField(err)).
			Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	logging.Debug().
		Add(logging.ToolName(params.Name)).
		Add(logging.Duration(time.Since(start))).
		Add(logging.Live(s.eng.Live())).
		Msg("tool completed")

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
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Opens the image in a scope that releases it before returning
//  4. Calls the appropriate imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_file_type":
		return s.handleImageFileType(args)

	// Derivative Images
	case "image_resize":
		return s.handleImageResize(args)
	case "image_thumbnail":
		return s.handleImageThumbnail(args)
	case "image_cropped_thumbnail":
		return s.handleImageCroppedThumbnail(args)
	case "image_fit_within":
		return s.handleImageFitWithin(args)
	case "image_convert":
		return s.handleImageConvert(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_crop_quadrant":
		return s.handleImageCropQuadrant(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.eng, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.eng, a.Path)
}

// FileTypeResult is the result of image_file_type.
type FileTypeResult struct {
	Format   string `json:"format"`
	Code     int    `json:"code"`
	Known    bool   `json:"known"`
	Readable bool   `json:"readable"`
	Writable bool   `json:"writable"`
}

func (s *Server) handleImageFileType(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, ok := imaging.FileType(s.eng, a.Path)
	return &FileTypeResult{
		Format:   f.String(),
		Code:     int(f),
		Known:    ok,
		Readable: f.CanRead(),
		Writable: f.CanWrite(),
	}, nil
}

// === Derivative Image Handlers ===

// outputArgs selects where a derived image goes. With Output set the image
// is saved there; otherwise it is returned base64-encoded in Format
// (default png).
type outputArgs struct {
	Output string `json:"output,omitempty"`
	Format string `json:"format,omitempty"`
}

// TransformResult describes a derived image.
type TransformResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      string `json:"format"`
	Output      string `json:"output,omitempty"`
	Saved       bool   `json:"saved"`
	MimeType    string `json:"mime_type,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// emit saves or encodes img as requested by out.
func (s *Server) emit(img *imaging.Handle, out outputArgs) (*TransformResult, error) {
	result := &TransformResult{Width: img.Width(), Height: img.Height()}

	if out.Output != "" {
		format := engine.FormatFromFilename(out.Output)
		if format == engine.FormatUnknown {
			format = img.FileType()
		}
		saved, err := img.Save(out.Output)
		if err != nil {
			return nil, err
		}
		result.Format = format.String()
		result.Output = out.Output
		result.Saved = saved
		return result, nil
	}

	ext := out.Format
	if ext == "" {
		ext = "png"
	}
	data, err := img.Buffer(ext)
	if err != nil {
		return nil, err
	}
	format := engine.FormatFromExtension(ext)
	result.Format = format.String()
	result.MimeType = format.MimeType()
	result.ImageBase64 = base64.StdEncoding.EncodeToString(data)
	return result, nil
}

// derive opens path, applies transform and emits the result. Both the
// source and the derived image are released before derive returns.
func (s *Server) derive(path string, out outputArgs, transform func(*imaging.Handle, func(*imaging.Handle) error) error) (*TransformResult, error) {
	var result *TransformResult
	err := imaging.WithImage(s.eng, path, func(img *imaging.Handle) error {
		return transform(img, func(derived *imaging.Handle) error {
			var err error
			result, err = s.emit(derived, out)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type imageResizeArgs struct {
	Path   string  `json:"path"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	outputArgs
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.derive(a.Path, a.outputArgs, func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
		return img.WithResize(int(a.Width), int(a.Height), fn)
	})
}

type imageThumbnailArgs struct {
	Path string  `json:"path"`
	Size float64 `json:"size"`
	outputArgs
}

func (s *Server) handleImageThumbnail(args json.RawMessage) (interface{}, error) {
	var a imageThumbnailArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.derive(a.Path, a.outputArgs, func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
		return img.WithThumbnail(a.Size, fn)
	})
}

func (s *Server) handleImageCroppedThumbnail(args json.RawMessage) (interface{}, error) {
	var a imageThumbnailArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.derive(a.Path, a.outputArgs, func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
		return img.WithCroppedThumbnail(a.Size, fn)
	})
}

type imageFitWithinArgs struct {
	Path      string  `json:"path"`
	MaxWidth  float64 `json:"max_width"`
	MaxHeight float64 `json:"max_height"`
	outputArgs
}

func (s *Server) handleImageFitWithin(args json.RawMessage) (interface{}, error) {
	var a imageFitWithinArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.derive(a.Path, a.outputArgs, func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
		return img.WithFitWithin(int(a.MaxWidth), int(a.MaxHeight), fn)
	})
}

type imageConvertArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
}

func (s *Server) handleImageConvert(args json.RawMessage) (interface{}, error) {
	var a imageConvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output path is required")
	}
	return s.derive(a.Path, outputArgs{Output: a.Output}, func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
		return fn(img)
	})
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
	outputArgs
}

// scaled applies an optional scale factor to a cropped image.
func scaled(scale float64, fn func(*imaging.Handle) error) func(*imaging.Handle) error {
	if scale == 0 || scale == 1 {
		return fn
	}
	return func(img *imaging.Handle) error {
		w := int(float64(img.Width()) * scale)
		h := int(float64(img.Height()) * scale)
		return img.WithResize(w, h, fn)
	}
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	rect := imaging.CropRect{Left: a.X1, Top: a.Y1, Right: a.X2, Bottom: a.Y2}
	return s.derive(a.Path, a.outputArgs, func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
		return img.WithCrop(rect, scaled(a.Scale, fn))
	})
}

type imageCropQuadrantArgs struct {
	Path   string  `json:"path"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
	outputArgs
}

func (s *Server) handleImageCropQuadrant(args json.RawMessage) (interface{}, error) {
	var a imageCropQuadrantArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.derive(a.Path, a.outputArgs, func(img *imaging.Handle, fn func(*imaging.Handle) error) error {
		rect, err := imaging.PlanRegion(a.Region, img.Width(), img.Height())
		if err != nil {
			return err
		}
		return img.WithCrop(rect, scaled(a.Scale, fn))
	})
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var result *imaging.ColorResult
	err := imaging.WithImage(s.eng, a.Path, func(img *imaging.Handle) error {
		var err error
		result, err = img.SampleColor(a.X, a.Y)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}

	var result *imaging.MultiColorResult
	err := imaging.WithImage(s.eng, a.Path, func(img *imaging.Handle) error {
		var err error
		result, err = img.SampleColorsMulti(points)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type imageDominantColorsArgs struct {
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Region *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region,omitempty"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}

	var region *imaging.CropRect
	if a.Region != nil {
		region = &imaging.CropRect{Left: a.Region.X1, Top: a.Region.Y1, Right: a.Region.X2, Bottom: a.Region.Y2}
	}

	var result *imaging.DominantColorsResult
	err := imaging.WithImage(s.eng, a.Path, func(img *imaging.Handle) error {
		var err error
		result, err = img.DominantColors(a.Count, region)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
