package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/gemini-image-mcp/internal/params"
	"github.com/ironsheep/gemini-image-mcp/internal/raster"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "gemini_generate_image", "im_resize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<result>"}]
//	}
//
// Tools report expected failures (missing files, bad arguments) as
// "Error: ..." result strings, which still travel as successful responses.
// Unexpected faults return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var tcParams ToolCallParams
	if err := codec.Unmarshal(req.Params, &tcParams); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, tcParams.Name, tcParams.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": result,
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
//  3. Calls the appropriate gemini or raster operation
//  4. Returns the result string or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (string, error) {
	switch name {
	// Gemini Generation
	case "gemini_generate_image":
		return s.handleGenerateImage(ctx, args)
	case "gemini_edit_image":
		return s.handleEditImage(ctx, args)
	case "gemini_generate_with_references":
		return s.handleGenerateWithReferences(ctx, args)
	case "gemini_describe_image":
		return s.handleDescribeImage(ctx, args)

	// Geometry
	case "im_resize":
		return s.handleResize(args)
	case "im_crop":
		return s.handleCrop(args)
	case "im_rotate":
		return s.handleRotate(args)
	case "im_flip":
		return s.handleFlip(args)

	// Format and Effects
	case "im_convert":
		return s.handleConvert(args)
	case "im_effects":
		return s.handleEffects(args)
	case "im_composite":
		return s.handleComposite(args)

	// Derived Images and Metadata
	case "im_thumbnail":
		return s.handleThumbnail(args)
	case "im_info":
		return s.handleInfo(args)
	case "im_border":
		return s.handleBorder(args)

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
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

// === Gemini Generation Handlers ===

type generateImageArgs struct {
	Prompt      string `json:"prompt"`
	Model       string `json:"model"`
	AspectRatio string `json:"aspect_ratio"`
	Resolution  string `json:"resolution"`
	OutputPath  string `json:"output_path"`
}

func (s *Server) handleGenerateImage(ctx context.Context, args json.RawMessage) (string, error) {
	var a generateImageArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	applyGenerationDefaults(&a.Model, &a.AspectRatio, &a.Resolution)
	return s.gemini.GenerateImage(ctx, a.Prompt, a.Model, a.AspectRatio, a.Resolution, a.OutputPath)
}

type editImageArgs struct {
	ImagePath  string `json:"image_path"`
	Prompt     string `json:"prompt"`
	Model      string `json:"model"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleEditImage(ctx context.Context, args json.RawMessage) (string, error) {
	var a editImageArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.Model == "" {
		a.Model = params.DefaultModel
	}
	return s.gemini.EditImage(ctx, a.ImagePath, a.Prompt, a.Model, a.OutputPath)
}

type generateWithReferencesArgs struct {
	Prompt          string   `json:"prompt"`
	ReferenceImages []string `json:"reference_images"`
	Model           string   `json:"model"`
	AspectRatio     string   `json:"aspect_ratio"`
	Resolution      string   `json:"resolution"`
	OutputPath      string   `json:"output_path"`
}

func (s *Server) handleGenerateWithReferences(ctx context.Context, args json.RawMessage) (string, error) {
	var a generateWithReferencesArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	applyGenerationDefaults(&a.Model, &a.AspectRatio, &a.Resolution)
	return s.gemini.GenerateWithReferences(ctx, a.Prompt, a.ReferenceImages, a.Model, a.AspectRatio, a.Resolution, a.OutputPath)
}

type describeImageArgs struct {
	ImagePath   string `json:"image_path"`
	DetailLevel string `json:"detail_level"`
}

func (s *Server) handleDescribeImage(ctx context.Context, args json.RawMessage) (string, error) {
	var a describeImageArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.DetailLevel == "" {
		a.DetailLevel = "detailed"
	}
	return s.gemini.DescribeImage(ctx, a.ImagePath, a.DetailLevel)
}

// applyGenerationDefaults fills empty generation parameters so that absent
// arguments do not trip the validators' invalid-value warnings.
func applyGenerationDefaults(model, aspectRatio, resolution *string) {
	if *model == "" {
		*model = params.DefaultModel
	}
	if *aspectRatio == "" {
		*aspectRatio = params.DefaultAspectRatio
	}
	if *resolution == "" {
		*resolution = params.DefaultResolution
	}
}

// === Geometry Handlers ===

type resizeArgs struct {
	ImagePath      string `json:"image_path"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	MaintainAspect *bool  `json:"maintain_aspect"`
	OutputPath     string `json:"output_path"`
}

func (s *Server) handleResize(args json.RawMessage) (string, error) {
	var a resizeArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	maintainAspect := true
	if a.MaintainAspect != nil {
		maintainAspect = *a.MaintainAspect
	}
	return s.raster.Resize(a.ImagePath, a.Width, a.Height, maintainAspect, a.OutputPath)
}

type cropArgs struct {
	ImagePath  string `json:"image_path"`
	Left       *int   `json:"left"`
	Top        *int   `json:"top"`
	Right      *int   `json:"right"`
	Bottom     *int   `json:"bottom"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Gravity    string `json:"gravity"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleCrop(args json.RawMessage) (string, error) {
	var a cropArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.Gravity == "" {
		a.Gravity = "center"
	}
	return s.raster.Crop(a.ImagePath, a.Left, a.Top, a.Right, a.Bottom, a.Width, a.Height, a.Gravity, a.OutputPath)
}

type rotateArgs struct {
	ImagePath       string  `json:"image_path"`
	Degrees         float64 `json:"degrees"`
	BackgroundColor string  `json:"background_color"`
	OutputPath      string  `json:"output_path"`
}

func (s *Server) handleRotate(args json.RawMessage) (string, error) {
	var a rotateArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.BackgroundColor == "" {
		a.BackgroundColor = "transparent"
	}
	return s.raster.Rotate(a.ImagePath, a.Degrees, a.BackgroundColor, a.OutputPath)
}

type flipArgs struct {
	ImagePath  string `json:"image_path"`
	Direction  string `json:"direction"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleFlip(args json.RawMessage) (string, error) {
	var a flipArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.Direction == "" {
		a.Direction = "horizontal"
	}
	return s.raster.Flip(a.ImagePath, a.Direction, a.OutputPath)
}

// === Format and Effects Handlers ===

type convertArgs struct {
	ImagePath  string `json:"image_path"`
	Format     string `json:"format"`
	Quality    int    `json:"quality"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleConvert(args json.RawMessage) (string, error) {
	var a convertArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.Quality == 0 {
		a.Quality = 90
	}
	return s.raster.Convert(a.ImagePath, a.Format, a.Quality, a.OutputPath)
}

type effectsArgs struct {
	ImagePath  string   `json:"image_path"`
	Blur       *float64 `json:"blur"`
	Sharpen    *float64 `json:"sharpen"`
	Brightness *float64 `json:"brightness"`
	Contrast   *float64 `json:"contrast"`
	Saturation *float64 `json:"saturation"`
	Grayscale  bool     `json:"grayscale"`
	Sepia      bool     `json:"sepia"`
	Negative   bool     `json:"negative"`
	OutputPath string   `json:"output_path"`
}

func (s *Server) handleEffects(args json.RawMessage) (string, error) {
	var a effectsArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	opts := raster.EffectOptions{
		Blur:       a.Blur,
		Sharpen:    a.Sharpen,
		Brightness: a.Brightness,
		Contrast:   a.Contrast,
		Saturation: a.Saturation,
		Grayscale:  a.Grayscale,
		Sepia:      a.Sepia,
		Negative:   a.Negative,
	}
	return s.raster.Effects(a.ImagePath, opts, a.OutputPath)
}

type compositeArgs struct {
	BaseImage    string   `json:"base_image"`
	OverlayImage string   `json:"overlay_image"`
	PositionX    int      `json:"position_x"`
	PositionY    int      `json:"position_y"`
	Opacity      *float64 `json:"opacity"`
	OutputPath   string   `json:"output_path"`
}

func (s *Server) handleComposite(args json.RawMessage) (string, error) {
	var a compositeArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	opacity := 1.0
	if a.Opacity != nil {
		opacity = *a.Opacity
	}
	return s.raster.Composite(a.BaseImage, a.OverlayImage, a.PositionX, a.PositionY, opacity, a.OutputPath)
}

// === Derived Image and Metadata Handlers ===

type thumbnailArgs struct {
	ImagePath  string `json:"image_path"`
	Size       int    `json:"size"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleThumbnail(args json.RawMessage) (string, error) {
	var a thumbnailArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.Size == 0 {
		a.Size = 256
	}
	return s.raster.Thumbnail(a.ImagePath, a.Size, a.OutputPath)
}

type infoArgs struct {
	ImagePath string `json:"image_path"`
}

func (s *Server) handleInfo(args json.RawMessage) (string, error) {
	var a infoArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	return s.raster.Info(a.ImagePath)
}

type borderArgs struct {
	ImagePath   string `json:"image_path"`
	BorderSize  int    `json:"border_size"`
	BorderColor string `json:"border_color"`
	OutputPath  string `json:"output_path"`
}

func (s *Server) handleBorder(args json.RawMessage) (string, error) {
	var a borderArgs
	if err := codec.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.BorderSize == 0 {
		a.BorderSize = 10
	}
	if a.BorderColor == "" {
		a.BorderColor = "black"
	}
	return s.raster.Border(a.ImagePath, a.BorderSize, a.BorderColor, a.OutputPath)
}
