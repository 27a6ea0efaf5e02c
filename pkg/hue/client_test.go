package hue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "testuser"

// fakeBridge emulates the subset of the Hue v1 API used by Client.
type fakeBridge struct {
	mu     sync.Mutex
	groups map[string]map[string]any
	puts   map[string][]map[string]any
	delay  time.Duration
}

func newFakeBridge(t *testing.T) (*fakeBridge, *httptest.Server) {
	t.Helper()
	fb := &fakeBridge{
		groups: map[string]map[string]any{
			"1": {
				"name":   "Living room",
				"type":   "Room",
				"lights": []string{"1", "2", "3"},
				"state":  map[string]any{"all_on": true, "any_on": true},
				"action": map[string]any{"on": true, "bri": 127},
			},
			"2": {
				"name":   "Kitchen table",
				"type":   "Zone",
				"lights": []string{"4"},
				"state":  map[string]any{"all_on": false, "any_on": false},
				"action": map[string]any{"on": false, "bri": 254},
			},
			"10": {
				"name":   "Hallway",
				"type":   "Room",
				"lights": []string{"5"},
				"state":  map[string]any{"all_on": true, "any_on": true},
				"action": map[string]any{"on": true, "bri": 254},
			},
		},
		puts: make(map[string][]map[string]any),
	}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBridge) serve(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	delay := fb.delay
	fb.mu.Unlock()
	if delay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(delay):
		}
	}

	prefix := "/api/" + testUser + "/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		writeJSON(w, []any{map[string]any{"error": map[string]any{
			"type": 1, "address": "/", "description": "unauthorized user",
		}}})
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, prefix), "/")

	fb.mu.Lock()
	defer fb.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && len(parts) == 1 && parts[0] == "groups":
		writeJSON(w, fb.groups)

	case r.Method == http.MethodGet && len(parts) == 2 && parts[0] == "groups":
		g, ok := fb.groups[parts[1]]
		if !ok {
			writeJSON(w, []any{notAvailable("/groups/" + parts[1])})
			return
		}
		writeJSON(w, g)

	case r.Method == http.MethodPut && len(parts) == 3 && parts[0] == "groups" && parts[2] == "action":
		if _, ok := fb.groups[parts[1]]; !ok {
			writeJSON(w, []any{notAvailable("/groups/" + parts[1] + "/action")})
			return
		}
		body, _ := io.ReadAll(r.Body)
		var state map[string]any
		_ = json.Unmarshal(body, &state)
		fb.puts[parts[1]] = append(fb.puts[parts[1]], state)

		var resp []any
		for k, v := range state {
			resp = append(resp, map[string]any{
				"success": map[string]any{"/groups/" + parts[1] + "/action/" + k: v},
			})
		}
		writeJSON(w, resp)

	default:
		http.NotFound(w, r)
	}
}

func (fb *fakeBridge) setDelay(d time.Duration) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.delay = d
}

func (fb *fakeBridge) putsFor(groupID string) []map[string]any {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]map[string]any(nil), fb.puts[groupID]...)
}

func notAvailable(address string) map[string]any {
	return map[string]any{"error": map[string]any{
		"type":        3,
		"address":     address,
		"description": "resource, " + address + ", not available",
	}}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, srv *httptest.Server, opts Options) *Client {
	t.Helper()
	if opts.RateLimit == 0 {
		opts.RateLimit = 1000
	}
	c, err := NewClient(Identity{Address: srv.URL, Username: testUser}, opts)
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresIdentity(t *testing.T) {
	_, err := NewClient(Identity{Address: "192.168.1.2"}, Options{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(Identity{Username: "abc"}, Options{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(Identity{Address: "192.168.68.60", Username: "abc"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, c.timeout)
	assert.Equal(t, "192.168.68.60", c.Identity().Address)
}

func TestBridgeHost(t *testing.T) {
	assert.Equal(t, "http://192.168.68.60", bridgeHost("192.168.68.60"))
	assert.Equal(t, "http://10.0.0.2:8080", bridgeHost("http://10.0.0.2:8080/"))
	assert.Equal(t, "HTTPS://bridge.local", bridgeHost("HTTPS://bridge.local"))
}

func TestClient_ListGroups(t *testing.T) {
	_, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	groups, err := c.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "1", groups[0].ID)
	assert.Equal(t, "Living room", groups[0].Name)
	assert.Equal(t, 3, groups[0].Lights)
	assert.Equal(t, "2", groups[1].ID)
	assert.Equal(t, "10", groups[2].ID, "IDs sort numerically")
}

func TestClient_ListGroups_Idempotent(t *testing.T) {
	_, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	first, err := c.ListGroups(context.Background())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := c.ListGroups(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClient_GetGroupBrightness(t *testing.T) {
	_, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	level, err := c.GetGroupBrightness(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 50, level)

	level, err = c.GetGroupBrightness(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, 0, level, "group with all lights off")
}

func TestClient_GetGroupBrightness_UnknownGroup(t *testing.T) {
	_, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	_, err := c.GetGroupBrightness(context.Background(), "99")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)

	var bridgeErr *BridgeError
	require.ErrorAs(t, err, &bridgeErr)
	assert.Equal(t, "get_brightness", bridgeErr.Op)
	assert.Equal(t, "99", bridgeErr.GroupID)
}

func TestClient_NonNumericGroupNeverReachesBridge(t *testing.T) {
	fb, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	_, err := c.SetGroupBrightness(context.Background(), "living-room", 40)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Empty(t, fb.putsFor("living-room"))
}

func TestClient_SetGroupBrightness(t *testing.T) {
	fb, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	applied, err := c.SetGroupBrightness(context.Background(), "1", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, applied)

	puts := fb.putsFor("1")
	require.Len(t, puts, 1)
	assert.Equal(t, true, puts[0]["on"])
	assert.Equal(t, float64(127), puts[0]["bri"])
}

func TestClient_SetGroupBrightness_Clamps(t *testing.T) {
	fb, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	applied, err := c.SetGroupBrightness(context.Background(), "1", 101)
	require.NoError(t, err)
	assert.Equal(t, 100, applied)

	applied, err = c.SetGroupBrightness(context.Background(), "1", -5)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	puts := fb.putsFor("1")
	require.Len(t, puts, 2)
	assert.Equal(t, float64(254), puts[0]["bri"])
	assert.Equal(t, false, puts[1]["on"], "level 0 switches the group off")
}

func TestClient_SetGroupColor(t *testing.T) {
	fb, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	require.NoError(t, c.SetGroupColor(context.Background(), "2", "FF5733"))

	puts := fb.putsFor("2")
	require.Len(t, puts, 1)
	assert.Equal(t, true, puts[0]["on"])
	xy, ok := puts[0]["xy"].([]any)
	require.True(t, ok, "xy must be sent")
	assert.Len(t, xy, 2)
}

func TestClient_SetGroupColor_Black(t *testing.T) {
	fb, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	require.NoError(t, c.SetGroupColor(context.Background(), "1", "000000"))

	puts := fb.putsFor("1")
	require.Len(t, puts, 1)
	assert.Equal(t, false, puts[0]["on"], "black switches the group off")
	assert.NotContains(t, puts[0], "xy")
}

func TestColorState(t *testing.T) {
	for _, hex := range []string{"000000", "000001", "010000", "FFFFFF", "ff5733", "00FF00"} {
		rgb, err := ParseColor(hex)
		require.NoError(t, err)

		state := colorState(rgb)
		if !state.On {
			assert.Empty(t, state.Xy, hex)
			continue
		}
		require.Len(t, state.Xy, 2, hex)
		for _, v := range state.Xy {
			assert.False(t, math.IsNaN(float64(v)), hex)
		}
		_, err = json.Marshal(state)
		assert.NoError(t, err, hex)
	}

	black, err := ParseColor("000000")
	require.NoError(t, err)
	assert.False(t, colorState(black).On)
}

func TestClient_SetGroupColor_InvalidColorMakesNoCall(t *testing.T) {
	fb, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	err := c.SetGroupColor(context.Background(), "1", "FF57")
	assert.ErrorIs(t, err, ErrInvalidColor)
	assert.Empty(t, fb.putsFor("1"))
}

func TestClient_SetGroupColor_UnknownGroup(t *testing.T) {
	_, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	err := c.SetGroupColor(context.Background(), "42", "00FF00")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, KindRejected, Kind(err))
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := NewClient(Identity{Address: srv.URL, Username: testUser}, Options{RateLimit: 1000})
	require.NoError(t, err)

	_, err = c.GetGroupBrightness(context.Background(), "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, KindUnreachable, Kind(err))

	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnreachable)
}

func TestClient_Timeout(t *testing.T) {
	fb, srv := newFakeBridge(t)
	fb.setDelay(500 * time.Millisecond)
	c := newTestClient(t, srv, Options{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := c.GetGroupBrightness(context.Background(), "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestClient_Unauthorized(t *testing.T) {
	_, srv := newFakeBridge(t)
	c, err := NewClient(Identity{Address: srv.URL, Username: "someone-else"}, Options{RateLimit: 1000})
	require.NoError(t, err)

	err = c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrRejected)
}

func TestClient_ConcurrentWritesAcrossGroups(t *testing.T) {
	fb, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for i := 0; i < 10; i++ {
		for _, id := range []string{"1", "2", "10"} {
			wg.Add(1)
			go func(id string, level int) {
				defer wg.Done()
				if _, err := c.SetGroupBrightness(context.Background(), id, level); err != nil {
					errs <- err
				}
			}(id, i*10)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	assert.Len(t, fb.putsFor("1"), 10)
	assert.Len(t, fb.putsFor("2"), 10)
	assert.Len(t, fb.putsFor("10"), 10)
}

func TestClient_ContextCanceled(t *testing.T) {
	_, srv := newFakeBridge(t)
	c := newTestClient(t, srv, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetGroupBrightness(ctx, "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, KindCanceled, Kind(err))
}
