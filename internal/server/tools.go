package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// schema property helpers

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func numberProperty(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

// objectSchema builds an object schema. Derived-image tools also accept the
// output and format properties.
func objectSchema(properties map[string]interface{}, derived bool, required ...string) map[string]interface{} {
	properties["path"] = pathProperty()
	if derived {
		properties["output"] = map[string]interface{}{
			"type":        "string",
			"description": "Optional path to save the result to. The extension selects the format; an unknown extension keeps the source format. When omitted the image is returned base64-encoded.",
		}
		properties["format"] = map[string]interface{}{
			"type":        "string",
			"description": "Format of the base64 result when no output is given: png, jpg, gif, bmp or tiff. Default png",
			"default":     "png",
		}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   append([]string{"path"}, required...),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, colour depth and colour type.",
			InputSchema: objectSchema(map[string]interface{}{}, false),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: objectSchema(map[string]interface{}{}, false),
		},
		{
			Name:        "image_file_type",
			Description: "Detect the format of a file from its header, falling back to its extension, without decoding pixels.",
			InputSchema: objectSchema(map[string]interface{}{}, false),
		},

		// Derivative Images
		{
			Name:        "image_resize",
			Description: "Resize an image to exactly width x height. Fractional values are truncated; both must be at least 1.",
			InputSchema: objectSchema(map[string]interface{}{
				"width":  numberProperty("Target width in pixels"),
				"height": numberProperty("Target height in pixels"),
			}, true, "width", "height"),
		},
		{
			Name:        "image_thumbnail",
			Description: "Create a proportional thumbnail whose longest edge is size pixels.",
			InputSchema: objectSchema(map[string]interface{}{
				"size": numberProperty("Length of the longest edge in pixels"),
			}, true, "size"),
		},
		{
			Name:        "image_cropped_thumbnail",
			Description: "Crop the image to a centred square and thumbnail it to size x size pixels.",
			InputSchema: objectSchema(map[string]interface{}{
				"size": numberProperty("Edge length of the square thumbnail in pixels"),
			}, true, "size"),
		},
		{
			Name:        "image_fit_within",
			Description: "Scale an image to the largest size that fits within max_width x max_height, keeping its aspect ratio. Images are never enlarged.",
			InputSchema: objectSchema(map[string]interface{}{
				"max_width":  numberProperty("Maximum width in pixels"),
				"max_height": numberProperty("Maximum height in pixels"),
			}, true, "max_width", "max_height"),
		},
		{
			Name:        "image_convert",
			Description: "Re-encode an image into the format implied by the output file extension.",
			InputSchema: objectSchema(map[string]interface{}{
				"output": map[string]interface{}{
					"type":        "string",
					"description": "Destination path; its extension selects the format",
				},
			}, false, "output"),
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image. Use this to zoom into areas that need detailed examination.",
			InputSchema: objectSchema(map[string]interface{}{
				"x1":    intProperty("Left edge X coordinate (0-based)"),
				"y1":    intProperty("Top edge Y coordinate (0-based)"),
				"x2":    intProperty("Right edge X coordinate (exclusive)"),
				"y2":    intProperty("Bottom edge Y coordinate (exclusive)"),
				"scale": numberProperty("Optional scale factor (e.g., 2.0 to double size). Default 1.0"),
			}, true, "x1", "y1", "x2", "y2"),
		},
		{
			Name:        "image_crop_quadrant",
			Description: "Crop a named region of an image: top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half or center.",
			InputSchema: objectSchema(map[string]interface{}{
				"region": map[string]interface{}{
					"type": "string",
					"enum": []string{
						"top-left", "top-right", "bottom-left", "bottom-right",
						"top-half", "bottom-half", "left-half", "right-half", "center",
					},
					"description": "Named region to extract",
				},
				"scale": numberProperty("Optional scale factor. Default 1.0"),
			}, true, "region"),
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel. The origin is the top-left corner and y grows downward.",
			InputSchema: objectSchema(map[string]interface{}{
				"x": intProperty("X coordinate (0-based)"),
				"y": intProperty("Y coordinate (0-based)"),
			}, false, "x", "y"),
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at multiple points in one call.",
			InputSchema: objectSchema(map[string]interface{}{
				"points": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x":     map[string]interface{}{"type": "integer"},
							"y":     map[string]interface{}{"type": "integer"},
							"label": map[string]interface{}{"type": "string"},
						},
						"required": []string{"x", "y"},
					},
					"description": "Points to sample",
				},
			}, false, "points"),
		},
		{
			Name:        "image_dominant_colors",
			Description: "List the most common colors in an image or a region of it.",
			InputSchema: objectSchema(map[string]interface{}{
				"count": map[string]interface{}{
					"type":        "integer",
					"description": "Number of colors to return. Default 5",
					"default":     5,
				},
				"region": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"x1": map[string]interface{}{"type": "integer"},
						"y1": map[string]interface{}{"type": "integer"},
						"x2": map[string]interface{}{"type": "integer"},
						"y2": map[string]interface{}{"type": "integer"},
					},
					"required": []string{"x1", "y1", "x2", "y2"},
				},
			}, false),
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
