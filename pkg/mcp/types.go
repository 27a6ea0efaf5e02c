package mcp

import "github.com/urmzd/huemcp/pkg/lights"

// Tool names
const (
	ToolGetGroups        = "get-philips-hue-light-groups"
	ToolSetColor         = "set-philips-hue-light-groups-color"
	ToolGetBrightness    = "get-philips-hue-light-groups-brightness"
	ToolSetBrightness    = "set-philips-hue-light-groups-brightness"
	ToolSetLocalizedName = "set-philips-hue-light-group-name-sv"
)

// ColorSetMessage is the confirmation returned when every group took its color
const ColorSetMessage = "Light groups color set successfully."

// SetColorInput is the input for the set color tool
type SetColorInput struct {
	Groups []lights.ColorAssignment `json:"groups"`
}

// GroupRef names a group by ID
type GroupRef struct {
	ID string `json:"id"`
}

// GetBrightnessInput is the input for the get brightness tool
type GetBrightnessInput struct {
	Groups []GroupRef `json:"groups"`
}

// IDs returns the group IDs in input order
func (in GetBrightnessInput) IDs() []string {
	ids := make([]string, 0, len(in.Groups))
	for _, g := range in.Groups {
		ids = append(ids, g.ID)
	}
	return ids
}

// SetBrightnessInput is the input for the set brightness tool
type SetBrightnessInput struct {
	Groups []lights.BrightnessAssignment `json:"groups"`
}

// SetLocalizedNameInput is the input for the localized name tool
type SetLocalizedNameInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
