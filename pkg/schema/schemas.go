package schema

import "encoding/json"

// Input schemas shared by the MCP tools and the REST API.
var (
	// Empty accepts any object; the list tool takes no arguments.
	Empty = json.RawMessage(`{"type":"object","properties":{}}`)

	SetColors = json.RawMessage(`{
		"type": "object",
		"properties": {
			"groups": {
				"type": "array",
				"description": "Array of light groups with IDs and colors.",
				"items": {
					"type": "object",
					"properties": {
						"id": {"type": "string", "description": "ID of the light group."},
						"color": {
							"type": "string",
							"minLength": 6,
							"maxLength": 6,
							"pattern": "^[0-9A-Fa-f]{6}$",
							"description": "Six-letter hexadecimal color code (e.g. FF5733)"
						}
					},
					"required": ["id", "color"]
				}
			}
		},
		"required": ["groups"]
	}`)

	GetBrightness = json.RawMessage(`{
		"type": "object",
		"properties": {
			"groups": {
				"type": "array",
				"description": "Array of light groups with IDs.",
				"items": {
					"type": "object",
					"properties": {
						"id": {"type": "string", "description": "ID of the light group."}
					},
					"required": ["id"]
				}
			}
		},
		"required": ["groups"]
	}`)

	SetBrightness = json.RawMessage(`{
		"type": "object",
		"properties": {
			"groups": {
				"type": "array",
				"description": "Array of light groups with IDs and brightness levels.",
				"items": {
					"type": "object",
					"properties": {
						"id": {"type": "string", "description": "ID of the light group."},
						"brightness": {
							"type": "integer",
							"minimum": 0,
							"maximum": 100,
							"description": "Brightness level (0-100)."
						}
					},
					"required": ["id", "brightness"]
				}
			}
		},
		"required": ["groups"]
	}`)

	SetLocalizedName = json.RawMessage(`{
		"type": "object",
		"properties": {
			"id": {"type": "string", "minLength": 1, "description": "ID of the light group."},
			"name": {"type": "string", "minLength": 1, "description": "Swedish name of the light group."}
		},
		"required": ["id", "name"]
	}`)

	// LocalizedNameBody is the REST body for renaming; the id is in the path.
	LocalizedNameBody = json.RawMessage(`{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1}
		},
		"required": ["name"]
	}`)
)
