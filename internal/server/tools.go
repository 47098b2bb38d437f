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
		// Image Information
		{
			Name:        "image_info",
			Description: "Read the header of an image file: dimensions, detected format, format implied by the extension, color depth, alpha, animation and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Transform Operations
		{
			Name:        "image_resize",
			Description: "Resize an image to exactly width x height pixels and save it. Fractional sizes are truncated; sizes below one pixel are rejected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the result. The extension selects the format.",
					},
					"width": map[string]interface{}{
						"type":        "number",
						"description": "Target width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "number",
						"description": "Target height in pixels",
					},
				},
				"required": []string{"path", "output", "width", "height"},
			},
		},
		{
			Name:        "image_rotate",
			Description: "Rotate an image counter-clockwise by any angle in degrees and save it. The canvas grows to fit; multiples of 90 are lossless.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the result. The extension selects the format.",
					},
					"angle": map[string]interface{}{
						"type":        "number",
						"description": "Counter-clockwise angle in degrees",
					},
				},
				"required": []string{"path", "output", "angle"},
			},
		},
		{
			Name:        "image_rotate_jpg",
			Description: "Rotate a JPEG a quarter turn without re-encoding. Partial MCU blocks on the edge that would move to the top or left are trimmed unless perfect is set, in which case such images are rejected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source JPEG",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the rotated JPEG",
					},
					"rotate_right": map[string]interface{}{
						"type":        "boolean",
						"description": "Rotate clockwise instead of counter-clockwise. Default false",
						"default":     false,
					},
					"perfect": map[string]interface{}{
						"type":        "boolean",
						"description": "Fail instead of trimming when the image is not MCU-aligned. Default false",
						"default":     false,
					},
				},
				"required": []string{"path", "output"},
			},
		},
		{
			Name:        "image_thumbnail",
			Description: "Scale an image so its longer side is size pixels, or crop the centered square first when square is set, and save it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the result. The extension selects the format.",
					},
					"size": map[string]interface{}{
						"type":        "number",
						"description": "Length of the longer side in pixels",
					},
					"square": map[string]interface{}{
						"type":        "boolean",
						"description": "Crop the centered square before scaling. Default false",
						"default":     false,
					},
				},
				"required": []string{"path", "output", "size"},
			},
		},

		{
			Name:        "image_flip",
			Description: "Mirror an image left to right (horizontal), top to bottom (vertical), or about a diagonal (transpose, transverse) and save it. Diagonal flips swap width and height.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the result. The extension selects the format.",
					},
					"axis": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"horizontal", "vertical", "transpose", "transverse"},
						"description": "Mirror axis",
					},
				},
				"required": []string{"path", "output", "axis"},
			},
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangle or a named region (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center). Saves to output when given, otherwise returns base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
						"description": "Named region to extract instead of coordinates",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute path of the result",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}
