package mcp

import "github.com/urmzd/huemcp/pkg/schema"

// registerTools registers all MCP tools with the registry
func (s *Server) registerTools() error {
	tools := []Tool{
		{
			Name:        ToolGetGroups,
			Description: "Get an array of Phillips Hue light groups with English and Swedish names.",
			Schema:      schema.Empty,
			ReadOnly:    true,
			Handler:     s.handleGetGroups,
		},
		{
			Name:        ToolSetColor,
			Description: "Set the color for Phillips Hue light groups.",
			Schema:      schema.SetColors,
			Handler:     s.handleSetColor,
		},
		{
			Name:        ToolGetBrightness,
			Description: "Get the brightness of Phillips Hue light groups.",
			Schema:      schema.GetBrightness,
			ReadOnly:    true,
			Handler:     s.handleGetBrightness,
		},
		{
			Name:        ToolSetBrightness,
			Description: "Set the brightness of Phillips Hue light groups.",
			Schema:      schema.SetBrightness,
			Handler:     s.handleSetBrightness,
		},
		{
			Name:        ToolSetLocalizedName,
			Description: "Set the Swedish name of a Phillips Hue light group.",
			Schema:      schema.SetLocalizedName,
			Handler:     s.handleSetLocalizedName,
		},
	}

	for _, tool := range tools {
		if err := s.registry.Register(tool); err != nil {
			return err
		}
	}
	return nil
}
