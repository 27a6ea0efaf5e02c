package types

import (
	"time"

	"github.com/urmzd/huemcp/pkg/lights"
)

// --- Request DTOs ---

// SetColorsRequest is the request body for PUT /groups/color
type SetColorsRequest struct {
	Groups []lights.ColorAssignment `json:"groups"`
}

// GroupRef names a group by ID
type GroupRef struct {
	ID string `json:"id"`
}

// GetBrightnessRequest is the request body for POST /groups/brightness/query
type GetBrightnessRequest struct {
	Groups []GroupRef `json:"groups"`
}

// IDs returns the requested group IDs in order
func (r GetBrightnessRequest) IDs() []string {
	ids := make([]string, 0, len(r.Groups))
	for _, g := range r.Groups {
		ids = append(ids, g.ID)
	}
	return ids
}

// SetBrightnessRequest is the request body for PUT /groups/brightness
type SetBrightnessRequest struct {
	Groups []lights.BrightnessAssignment `json:"groups"`
}

// SetLocalizedNameRequest is the request body for PUT /groups/:id/name_sv
type SetLocalizedNameRequest struct {
	Name string `json:"name"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Bridge    string    `json:"bridge"`
	Timestamp time.Time `json:"timestamp"`
}

// ListGroupsResponse is returned from GET /groups
type ListGroupsResponse struct {
	Groups []lights.LightGroup `json:"groups"`
	Count  int                 `json:"count"`
}

// MessageResponse is a plain confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// BrightnessResponse is returned from POST /groups/brightness/query
type BrightnessResponse struct {
	Groups []lights.GroupBrightness `json:"groups"`
}

// LevelsResponse is returned from PUT /groups/brightness
type LevelsResponse struct {
	Levels []int `json:"levels"`
}
