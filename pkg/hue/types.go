package hue

import "context"

// Identity is the fixed address and application key of the bridge this
// process talks to. It is read-only for the lifetime of the process.
type Identity struct {
	Address  string `json:"address"`  // Host or host:port, optionally with scheme
	Username string `json:"username"` // Whitelisted application key (bridge id/credential)
}

// Group represents a light group as reported by the bridge.
type Group struct {
	ID     string `json:"id"`             // Opaque group identifier, stable per bridge
	Name   string `json:"name"`           // Display name configured on the bridge
	Type   string `json:"type,omitempty"` // Room, Zone, LightGroup, ...
	Lights int    `json:"lights"`         // Number of lights in the group
}

// Bridge defines the group-level operations supported against a Hue bridge.
// Implementations must be safe for concurrent use: a single batch issues
// one call per group in parallel.
type Bridge interface {
	// ListGroups returns all light groups known to the bridge, ordered by ID
	ListGroups(ctx context.Context) ([]Group, error)

	// SetGroupColor sets the color of a group from a six-digit hex RGB code
	SetGroupColor(ctx context.Context, groupID, hexColor string) error

	// SetGroupBrightness sets the brightness (0-100) of a group and returns
	// the level that was actually applied after clamping
	SetGroupBrightness(ctx context.Context, groupID string, level int) (int, error)

	// GetGroupBrightness returns the current brightness (0-100) of a group
	GetGroupBrightness(ctx context.Context, groupID string) (int, error)

	// Ping checks that the bridge is reachable and accepts the credential
	Ping(ctx context.Context) error
}
