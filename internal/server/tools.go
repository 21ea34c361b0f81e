package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// targetProperties are the schema properties shared by every tool that
// takes a target map, either from a file or inline.
func targetProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to a coordinates file with one \"x,y\" pair per line. Takes precedence over points.",
		},
		"points": map[string]interface{}{
			"type":        "array",
			"description": "Inline target list, used when path is not given",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{"type": "integer"},
					"y": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"x", "y"},
			},
		},
		"grid_size": map[string]interface{}{
			"type":        "integer",
			"description": "Side of the square grid. Defaults to the configured grid size (100).",
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	radius := map[string]interface{}{
		"type":        "number",
		"description": "Strike radius in grid units. Must be positive.",
	}

	return []Tool{
		{
			Name:        "strike_optimize",
			Description: "Find the integer grid point where a circular strike of the given radius covers the most targets.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(targetProperties(), map[string]interface{}{
					"radius": radius,
				}),
				"required": []string{"radius"},
			},
		},
		{
			Name:        "strike_coverage",
			Description: "Count and list the targets a strike centered at (x, y) would cover.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(targetProperties(), map[string]interface{}{
					"x":      map[string]interface{}{"type": "integer", "description": "Strike center X"},
					"y":      map[string]interface{}{"type": "integer", "description": "Strike center Y"},
					"radius": radius,
				}),
				"required": []string{"x", "y", "radius"},
			},
		},
		{
			Name:        "strike_generate",
			Description: "Generate a random target map. Returns the targets, and writes them to output_path when given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of targets. Default 10",
						"default":     10,
					},
					"grid_size": map[string]interface{}{
						"type":        "integer",
						"description": "Side of the square grid. Defaults to the configured grid size (100).",
					},
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "Random seed. Zero or absent uses the configured seed, or a time-based one.",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to write the map to",
					},
				},
			},
		},
		{
			Name:        "strike_render",
			Description: "Optimize a strike and render the result as a PNG heat map with targets, strike circle and center marked. Returns base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(targetProperties(), map[string]interface{}{
					"radius": radius,
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per grid cell (1-32). Defaults to the configured render scale.",
					},
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Cells between grid lines. 0 disables the grid. Defaults to the configured spacing.",
					},
					"caption": map[string]interface{}{
						"type":        "boolean",
						"description": "Write the strike report along the bottom edge. Default true",
						"default":     true,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional PNG file to save the map to",
					},
				}),
				"required": []string{"radius"},
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
