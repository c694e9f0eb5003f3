package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Gemini Generation
		{
			Name:        "gemini_generate_image",
			Description: "Generate an image from a text prompt using Gemini. The image is saved to the output directory with a filename derived from the prompt.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"prompt": map[string]interface{}{
						"type":        "string",
						"description": "Text description of the image to generate",
					},
					"model": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"gemini-2.5-flash-image", "gemini-3-pro-image-preview"},
						"description": "Model to use. Default gemini-2.5-flash-image",
						"default":     "gemini-2.5-flash-image",
					},
					"aspect_ratio": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"1:1", "2:3", "3:2", "3:4", "4:3", "4:5", "5:4", "9:16", "16:9", "21:9"},
						"description": "Aspect ratio of the generated image. Default 1:1",
						"default":     "1:1",
					},
					"resolution": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"1K", "2K", "4K"},
						"description": "Output resolution. Default 1K",
						"default":     "1K",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional explicit output file path. Defaults to a derived name in the output directory",
					},
				},
				"required": []string{"prompt"},
			},
		},
		{
			Name:        "gemini_edit_image",
			Description: "Edit an existing image with a text instruction using Gemini. The source image and instruction are sent together and the edited result is saved.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the image to edit",
					},
					"prompt": map[string]interface{}{
						"type":        "string",
						"description": "Edit instruction (e.g., 'make the sky purple')",
					},
					"model": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"gemini-2.5-flash-image", "gemini-3-pro-image-preview"},
						"description": "Model to use. Default gemini-2.5-flash-image",
						"default":     "gemini-2.5-flash-image",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional explicit output file path",
					},
				},
				"required": []string{"image_path", "prompt"},
			},
		},
		{
			Name:        "gemini_generate_with_references",
			Description: "Generate an image guided by reference images (style, characters, products). Flash models accept up to 3 references, pro models up to 14.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"prompt": map[string]interface{}{
						"type":        "string",
						"description": "Text description of the image to generate",
					},
					"reference_images": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Paths to reference images",
					},
					"model": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"gemini-2.5-flash-image", "gemini-3-pro-image-preview"},
						"description": "Model to use. Default gemini-2.5-flash-image",
						"default":     "gemini-2.5-flash-image",
					},
					"aspect_ratio": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"1:1", "2:3", "3:2", "3:4", "4:3", "4:5", "5:4", "9:16", "16:9", "21:9"},
						"description": "Aspect ratio of the generated image. Default 1:1",
						"default":     "1:1",
					},
					"resolution": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"1K", "2K", "4K"},
						"description": "Output resolution. Default 1K",
						"default":     "1K",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional explicit output file path",
					},
				},
				"required": []string{"prompt", "reference_images"},
			},
		},
		{
			Name:        "gemini_describe_image",
			Description: "Describe an image using Gemini. Detail levels: brief (1-2 sentences), detailed (composition and subjects), technical (lighting, camera, post-processing).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the image to describe",
					},
					"detail_level": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"brief", "detailed", "technical"},
						"description": "How thorough the description should be. Default detailed",
						"default":     "detailed",
					},
				},
				"required": []string{"image_path"},
			},
		},

		// Geometry
		{
			Name:        "im_resize",
			Description: "Resize an image. Specify width, height, or both; with maintain_aspect the missing dimension is computed from the original ratio.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the source image",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height in pixels",
					},
					"maintain_aspect": map[string]interface{}{
						"type":        "boolean",
						"description": "Preserve the aspect ratio when only one dimension is given. Default true",
						"default":     true,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional explicit output file path",
					},
				},
				"required": []string{"image_path"},
			},
		},
		{
			Name:        "im_crop",
			Description: "Crop an image, either with absolute coordinates (left, top, right, bottom) or a gravity-anchored width x height window.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the source image",
					},
					"left": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (absolute mode)",
					},
					"top": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (absolute mode)",
					},
					"right": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate, exclusive (absolute mode)",
					},
					"bottom": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate, exclusive (absolute mode)",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Crop window width (gravity mode)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Crop window height (gravity mode)",
					},
					"gravity": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"center", "north", "south", "east", "west", "north_east", "north_west", "south_east", "south_west"},
						"description": "Where to anchor the crop window. Default center",
						"default":     "center",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional explicit output file path",
					},
				},
				"required": []string{"image_path"},
			},
		},
		{
			Name:        "im_rotate",
			Description: "Rotate an image by an arbitrary angle (clockwise for positive degrees). Exposed corners are filled with the background color; output is PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the source image",
					},
					"degrees": map[string]interface{}{
						"type":        "number",
						"description": "Rotation angle in degrees, clockwise",
					},
					"background_color": map[string]interface{}{
						"type":        "string",
						"description": "Fill color for exposed corners: a name, #hex, or 'transparent'. Default transparent",
						"default":     "transparent",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional explicit output file path",
					},
				},
				"required": []string{"image_path", "degrees"},
			},
		},
		{
			Name:        "im_flip",
			Description: "Mirror an image horizontally (left-right) or vertically (top-bottom).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the source image",
					},
					"direction": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"horizontal", "vertical"},
						"description": "Mirror axis. Default horizontal",
						"default":     "horizontal",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional explicit output file path",
					},
				},
				"required": []string{"image_path"},
			},
		},

		// Format and Effects
		{
			Name:        "im_convert",
			Description: "Convert an image to another format (png, jpg, jpeg, webp, gif, bmp, tiff). Quality applies to lossy targets.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the source image",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpg", "jpeg", "webp", "gif", "bmp", "tiff"},
						"description": "Target format",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "Encoding quality 1-100 for lossy formats. Default 90",
						"default":     90,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional explicit output file path",
					},
				},
				"required": []string{"image_path", "format"},
			},
		},
		{
			Name:        "im_effects",
			Description: "Apply one or more effects to an image: blur, sharpen, brightness, contrast, saturation adjustments, grayscale, sepia, negative.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the source image",
					},
					"blur": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur radius",
					},
					"sharpen": map[string]interface{}{
						"type":        "number",
						"description": "Sharpen amount",
					},
					"brightness": map[string]interface{}{
						"type":        "number",
						"description": "Brightness adjustment, -100 to 100",
					},
					"contrast": map[string]interface{}{
						"type":        "number",
						"description": "Contrast adjustment, -100 to 100",
					},
					"saturation": map[string]interface{}{
						"type":        "number",
						"description": "Saturation adjustment, -100 to 100",
					},
					"grayscale": map[string]interface{}{
						"type":        "boolean",
						"description": "Convert to grayscale",
					},
					"sepia": map[string]interface{}{
						"type":        "boolean",
						"description": "Apply a sepia tone",
					},
					"negative": map[string]interface{}{
						"type":        "boolean",
						"description": "Invert colors",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional explicit output file path",
					},
				},
				"required": []string{"image_path"},
			},
		},
		{
			Name:        "im_composite",
			Description: "Overlay one image onto another at the given position with optional transparency.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"base_image": map[string]interface{}{
						"type":        "string",
						"description": "Path to the base image",
					},
					"overlay_image": map[string]interface{}{
						"type":        "string",
						"description": "Path to the overlay image",
					},
					"position_x": map[string]interface{}{
						"type":        "integer",
						"description": "X offset of the overlay's top-left corner. Default 0",
						"default":     0,
					},
					"position_y": map[string]interface{}{
						"type":        "integer",
						"description": "Y offset of the overlay's top-left corner. Default 0",
						"default":     0,
					},
					"opacity": map[string]interface{}{
						"type":        "number",
						"description": "Overlay opacity, 0.0 to 1.0. Default 1.0",
						"default":     1.0,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional explicit output file path",
					},
				},
				"required": []string{"base_image", "overlay_image"},
			},
		},

		// Derived Images and Metadata
		{
			Name:        "im_thumbnail",
			Description: "Create a square thumbnail: scale to cover, then center-crop to size x size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the source image",
					},
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Thumbnail edge length in pixels. Default 256",
						"default":     256,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional explicit output file path",
					},
				},
				"required": []string{"image_path"},
			},
		},
		{
			Name:        "im_info",
			Description: "Report image metadata: format, dimensions, bit depth, colorspace, alpha, file size, and resolution (DPI) when present.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the image file",
					},
				},
				"required": []string{"image_path"},
			},
		},
		{
			Name:        "im_border",
			Description: "Add a solid-color border around an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the source image",
					},
					"border_size": map[string]interface{}{
						"type":        "integer",
						"description": "Border thickness in pixels. Default 10",
						"default":     10,
					},
					"border_color": map[string]interface{}{
						"type":        "string",
						"description": "Border color: a name, #hex, or 'transparent'. Default black",
						"default":     "black",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional explicit output file path",
					},
				},
				"required": []string{"image_path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
