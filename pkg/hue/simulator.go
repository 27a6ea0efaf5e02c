package hue

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// defaultSimulatedLevel is the brightness every simulated group starts at.
const defaultSimulatedLevel = 50

type simGroup struct {
	Group
	level int
	color string
}

// Simulator is an in-memory Bridge used when no bridge is configured and
// in tests. Failures and latency can be injected per group.
type Simulator struct {
	mu       sync.Mutex
	groups   []*simGroup
	failures map[string]error
	calls    map[string]int
	delay    time.Duration
}

// NewSimulator creates a simulator seeded with the default groups.
func NewSimulator() *Simulator {
	return NewSimulatorWithGroups([]Group{
		{ID: "1", Name: "living room", Type: "Room", Lights: 3},
		{ID: "2", Name: "kitchen table", Type: "Zone", Lights: 2},
	})
}

// NewSimulatorWithGroups creates a simulator holding the given groups.
func NewSimulatorWithGroups(groups []Group) *Simulator {
	s := &Simulator{
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
	for _, g := range groups {
		s.groups = append(s.groups, &simGroup{Group: g, level: defaultSimulatedLevel})
	}
	return s
}

// Fail makes every subsequent call touching groupID return err.
// A nil err clears the failure.
func (s *Simulator) Fail(groupID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, groupID)
		return
	}
	s.failures[groupID] = err
}

// SetDelay makes every call sleep for d (or until its context ends).
func (s *Simulator) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Calls returns how many times op was invoked. op is one of list_groups,
// set_color, set_brightness, get_brightness, ping; an empty op returns the
// total over all operations.
func (s *Simulator) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if op == "" {
		total := 0
		for _, n := range s.calls {
			total += n
		}
		return total
	}
	return s.calls[op]
}

// Color returns the last color applied to groupID.
func (s *Simulator) Color(groupID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g := s.find(groupID); g != nil {
		return g.color
	}
	return ""
}

// ListGroups implements Bridge
func (s *Simulator) ListGroups(ctx context.Context) ([]Group, error) {
	if err := s.enter(ctx, "list_groups", ""); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g.Group)
	}
	return out, nil
}

// SetGroupColor implements Bridge
func (s *Simulator) SetGroupColor(ctx context.Context, groupID, hexColor string) error {
	if _, err := ParseColor(hexColor); err != nil {
		return &BridgeError{Op: "set_color", GroupID: groupID, Err: err}
	}
	if err := s.enter(ctx, "set_color", groupID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.find(groupID)
	if g == nil {
		return unknownGroup("set_color", groupID)
	}
	g.color = strings.ToUpper(hexColor)
	return nil
}

// SetGroupBrightness implements Bridge
func (s *Simulator) SetGroupBrightness(ctx context.Context, groupID string, level int) (int, error) {
	level = ClampBrightness(level)
	if err := s.enter(ctx, "set_brightness", groupID); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.find(groupID)
	if g == nil {
		return 0, unknownGroup("set_brightness", groupID)
	}
	g.level = level
	return level, nil
}

// GetGroupBrightness implements Bridge
func (s *Simulator) GetGroupBrightness(ctx context.Context, groupID string) (int, error) {
	if err := s.enter(ctx, "get_brightness", groupID); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.find(groupID)
	if g == nil {
		return 0, unknownGroup("get_brightness", groupID)
	}
	return g.level, nil
}

// Ping implements Bridge
func (s *Simulator) Ping(ctx context.Context) error {
	return s.enter(ctx, "ping", "")
}

// enter records the call, applies the injected delay and failure.
func (s *Simulator) enter(ctx context.Context, op, groupID string) error {
	s.mu.Lock()
	s.calls[op]++
	delay := s.delay
	failure := s.failures[groupID]
	s.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return &BridgeError{Op: op, GroupID: groupID, Err: classify(ctx.Err())}
		case <-timer.C:
		}
	}

	if failure != nil {
		return &BridgeError{Op: op, GroupID: groupID, Err: classify(failure)}
	}
	return nil
}

// find must be called with s.mu held.
func (s *Simulator) find(groupID string) *simGroup {
	for _, g := range s.groups {
		if g.ID == groupID {
			return g
		}
	}
	return nil
}

func unknownGroup(op, groupID string) error {
	return &BridgeError{
		Op:      op,
		GroupID: groupID,
		Err:     fmt.Errorf("%w: unknown group %q", ErrRejected, groupID),
	}
}
