package lights

import (
	"context"
	"errors"
)

// ErrUnknownGroup indicates a group ID the bridge does not know
var ErrUnknownGroup = errors.New("unknown light group")

// LightGroup is a bridge group with its localized name
type LightGroup struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameSv string `json:"name_sv"`
}

// ColorAssignment asks for one group to take a six-digit hex color
type ColorAssignment struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// BrightnessAssignment asks for one group to take a 0-100 brightness
type BrightnessAssignment struct {
	ID         string `json:"id"`
	Brightness int    `json:"brightness"`
}

// GroupBrightness is a single read brightness
type GroupBrightness struct {
	ID         string `json:"id"`
	Brightness int    `json:"brightness"`
}

// Outcome is the result for one group of a batch.
type Outcome struct {
	ID         string `json:"id"`
	OK         bool   `json:"ok"`
	Brightness *int   `json:"brightness,omitempty"`
	Error      string `json:"error,omitempty"`
	Kind       string `json:"kind,omitempty"`
}

// BatchResult holds one Outcome per input group, in input order.
type BatchResult struct {
	Results   []Outcome `json:"results"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
}

// OK reports whether every group succeeded
func (r BatchResult) OK() bool {
	return r.Failed == 0
}

// Partial reports whether some but not all groups failed
func (r BatchResult) Partial() bool {
	return r.Failed > 0 && r.Succeeded > 0
}

// AllFailed reports whether a non-empty batch failed for every group
func (r BatchResult) AllFailed() bool {
	return r.Failed > 0 && r.Succeeded == 0
}

// Levels returns the brightness of each outcome in order
func (r BatchResult) Levels() []int {
	levels := make([]int, 0, len(r.Results))
	for _, o := range r.Results {
		if o.Brightness != nil {
			levels = append(levels, *o.Brightness)
		}
	}
	return levels
}

// Brightnesses returns {id, brightness} pairs in order
func (r BatchResult) Brightnesses() []GroupBrightness {
	out := make([]GroupBrightness, 0, len(r.Results))
	for _, o := range r.Results {
		if o.Brightness != nil {
			out = append(out, GroupBrightness{ID: o.ID, Brightness: *o.Brightness})
		}
	}
	return out
}

// Kinds returns the distinct error kinds of the failed outcomes
func (r BatchResult) Kinds() []string {
	seen := make(map[string]bool)
	var kinds []string
	for _, o := range r.Results {
		if o.OK || seen[o.Kind] {
			continue
		}
		seen[o.Kind] = true
		kinds = append(kinds, o.Kind)
	}
	return kinds
}

// LabelStore persists localized group names keyed by group ID
type LabelStore interface {
	List(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, groupID, name string) error
}
