package lights

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/huemcp/pkg/hue"
	"github.com/urmzd/huemcp/pkg/schema"
)

type memoryLabels struct {
	mu     sync.Mutex
	names  map[string]string
	setErr error
}

func newMemoryLabels() *memoryLabels {
	return &memoryLabels{names: map[string]string{}}
}

func (m *memoryLabels) List(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.names))
	for k, v := range m.names {
		out[k] = v
	}
	return out, nil
}

func (m *memoryLabels) Set(ctx context.Context, groupID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.names[groupID] = name
	return nil
}

// gatedBridge holds every per-group call until n calls are in flight.
type gatedBridge struct {
	*hue.Simulator
	n        int32
	inFlight atomic.Int32
	peak     atomic.Int32
	release  chan struct{}
	once     sync.Once
}

func newGatedBridge(sim *hue.Simulator, n int) *gatedBridge {
	return &gatedBridge{Simulator: sim, n: int32(n), release: make(chan struct{})}
}

func (b *gatedBridge) enter(ctx context.Context) (func(), error) {
	cur := b.inFlight.Add(1)
	for {
		peak := b.peak.Load()
		if cur <= peak || b.peak.CompareAndSwap(peak, cur) {
			break
		}
	}
	if cur == b.n {
		b.once.Do(func() { close(b.release) })
	}
	select {
	case <-b.release:
		return func() { b.inFlight.Add(-1) }, nil
	case <-ctx.Done():
		b.inFlight.Add(-1)
		return nil, ctx.Err()
	}
}

func (b *gatedBridge) GetGroupBrightness(ctx context.Context, groupID string) (int, error) {
	done, err := b.enter(ctx)
	if err != nil {
		return 0, err
	}
	defer done()
	return b.Simulator.GetGroupBrightness(ctx, groupID)
}

func (b *gatedBridge) SetGroupBrightness(ctx context.Context, groupID string, level int) (int, error) {
	done, err := b.enter(ctx)
	if err != nil {
		return 0, err
	}
	defer done()
	return b.Simulator.SetGroupBrightness(ctx, groupID, level)
}

func (b *gatedBridge) SetGroupColor(ctx context.Context, groupID, hexColor string) error {
	done, err := b.enter(ctx)
	if err != nil {
		return err
	}
	defer done()
	return b.Simulator.SetGroupColor(ctx, groupID, hexColor)
}

// assertConcurrent checks that all n calls of a gated batch were in flight
// together and returned in input order.
func assertConcurrent(t *testing.T, bridge *gatedBridge, result BatchResult, ids []string) {
	t.Helper()
	n := len(ids)
	require.True(t, result.OK(), "results: %+v", result.Results)
	assert.Len(t, result.Results, n)
	assert.Equal(t, int32(n), bridge.peak.Load())
	assert.Equal(t, int32(0), bridge.inFlight.Load())
	for i, o := range result.Results {
		assert.Equal(t, ids[i], o.ID)
	}
}

func groupIDs(n int) []string {
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		ids = append(ids, strconv.Itoa(i))
	}
	return ids
}

func manyGroups(n int) []hue.Group {
	groups := make([]hue.Group, 0, n)
	for i := 1; i <= n; i++ {
		groups = append(groups, hue.Group{ID: strconv.Itoa(i), Name: "group " + strconv.Itoa(i)})
	}
	return groups
}

func TestListGroups_FallsBackToBridgeName(t *testing.T) {
	labels := newMemoryLabels()
	labels.names["1"] = "vardagsrum"
	svc := NewService(hue.NewSimulator(), labels)

	groups, err := svc.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []LightGroup{
		{ID: "1", Name: "living room", NameSv: "vardagsrum"},
		{ID: "2", Name: "kitchen table", NameSv: "kitchen table"},
	}, groups)
}

func TestListGroups_Idempotent(t *testing.T) {
	svc := NewService(hue.NewSimulator(), nil)

	first, err := svc.ListGroups(context.Background())
	require.NoError(t, err)
	second, err := svc.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListGroups_BridgeDown(t *testing.T) {
	sim := hue.NewSimulator()
	sim.Fail("", hue.ErrUnreachable)
	svc := NewService(sim, nil)

	_, err := svc.ListGroups(context.Background())
	assert.ErrorIs(t, err, hue.ErrUnreachable)
}

func TestSetColors_OneWritePerGroup(t *testing.T) {
	sim := hue.NewSimulator()
	svc := NewService(sim, nil)

	result, err := svc.SetColors(context.Background(), []ColorAssignment{
		{ID: "1", Color: "FF5733"},
		{ID: "2", Color: "00ff00"},
	})
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 2, sim.Calls("set_color"))
	assert.Equal(t, "FF5733", sim.Color("1"))
	assert.Equal(t, "00FF00", sim.Color("2"))
}

func TestSetColors_InvalidColorMakesNoCalls(t *testing.T) {
	sim := hue.NewSimulator()
	svc := NewService(sim, nil)

	_, err := svc.SetColors(context.Background(), []ColorAssignment{
		{ID: "1", Color: "FF5733"},
		{ID: "2", Color: "FF57"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrValidation)

	var verr *schema.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "/groups/1/color", verr.Field)
	assert.Equal(t, 0, sim.Calls(""))
}

func TestSetColors_PartialFailure(t *testing.T) {
	sim := hue.NewSimulator()
	sim.Fail("2", hue.ErrUnreachable)
	svc := NewService(sim, nil)

	result, err := svc.SetColors(context.Background(), []ColorAssignment{
		{ID: "1", Color: "FF5733"},
		{ID: "2", Color: "FF5733"},
	})
	require.NoError(t, err)
	assert.True(t, result.Partial())
	assert.False(t, result.AllFailed())
	require.Len(t, result.Results, 2)
	assert.True(t, result.Results[0].OK)
	assert.False(t, result.Results[1].OK)
	assert.Equal(t, hue.KindUnreachable, result.Results[1].Kind)
	assert.NotEmpty(t, result.Results[1].Error)
	assert.Equal(t, []string{hue.KindUnreachable}, result.Kinds())

	// The healthy group was still written
	assert.Equal(t, "FF5733", sim.Color("1"))
}

func TestGetBrightness_InputOrder(t *testing.T) {
	sim := hue.NewSimulator()
	svc := NewService(sim, nil)
	_, err := sim.SetGroupBrightness(context.Background(), "2", 80)
	require.NoError(t, err)

	result := svc.GetBrightness(context.Background(), []string{"2", "1"})
	require.True(t, result.OK())
	assert.Equal(t, []GroupBrightness{
		{ID: "2", Brightness: 80},
		{ID: "1", Brightness: 50},
	}, result.Brightnesses())
	for _, level := range result.Levels() {
		assert.GreaterOrEqual(t, level, 0)
		assert.LessOrEqual(t, level, 100)
	}
}

func TestGetBrightness_UnknownGroup(t *testing.T) {
	svc := NewService(hue.NewSimulator(), nil)

	result := svc.GetBrightness(context.Background(), []string{"1", "9"})
	assert.True(t, result.Partial())
	assert.Equal(t, hue.KindRejected, result.Results[1].Kind)
	assert.Nil(t, result.Results[1].Brightness)
}

func TestGetBrightness_AllFailed(t *testing.T) {
	sim := hue.NewSimulator()
	sim.Fail("1", hue.ErrTimeout)
	sim.Fail("2", hue.ErrTimeout)
	svc := NewService(sim, nil)

	result := svc.GetBrightness(context.Background(), []string{"1", "2"})
	assert.True(t, result.AllFailed())
	assert.Equal(t, 2, result.Failed)
	assert.Empty(t, result.Levels())
}

func TestGetBrightness_Concurrent(t *testing.T) {
	const n = 12
	bridge := newGatedBridge(hue.NewSimulatorWithGroups(manyGroups(n)), n)
	svc := NewService(bridge, nil)
	ids := groupIDs(n)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Every read blocks until all n are in flight, so this only returns if
	// the batch is issued concurrently.
	result := svc.GetBrightness(ctx, ids)
	assertConcurrent(t, bridge, result, ids)
}

func TestSetColors_Concurrent(t *testing.T) {
	const n = 12
	sim := hue.NewSimulatorWithGroups(manyGroups(n))
	bridge := newGatedBridge(sim, n)
	svc := NewService(bridge, nil)
	ids := groupIDs(n)

	assignments := make([]ColorAssignment, 0, n)
	for _, id := range ids {
		assignments = append(assignments, ColorAssignment{ID: id, Color: "FF5733"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := svc.SetColors(ctx, assignments)
	require.NoError(t, err)
	assertConcurrent(t, bridge, result, ids)
	assert.Equal(t, n, sim.Calls("set_color"))
}

func TestSetBrightness_Concurrent(t *testing.T) {
	const n = 12
	sim := hue.NewSimulatorWithGroups(manyGroups(n))
	bridge := newGatedBridge(sim, n)
	svc := NewService(bridge, nil)
	ids := groupIDs(n)

	assignments := make([]BrightnessAssignment, 0, n)
	for _, id := range ids {
		assignments = append(assignments, BrightnessAssignment{ID: id, Brightness: 70})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := svc.SetBrightness(ctx, assignments)
	assertConcurrent(t, bridge, result, ids)
	assert.Equal(t, n, sim.Calls("set_brightness"))
	for _, level := range result.Levels() {
		assert.Equal(t, 70, level)
	}
}

func TestSetBrightness_Clamps(t *testing.T) {
	sim := hue.NewSimulator()
	svc := NewService(sim, nil)

	result := svc.SetBrightness(context.Background(), []BrightnessAssignment{
		{ID: "1", Brightness: 101},
		{ID: "2", Brightness: -5},
	})
	require.True(t, result.OK())
	assert.Equal(t, []int{100, 0}, result.Levels())
	assert.Equal(t, 2, sim.Calls("set_brightness"))
}

func TestSetBrightness_Empty(t *testing.T) {
	sim := hue.NewSimulator()
	svc := NewService(sim, nil)

	result := svc.SetBrightness(context.Background(), nil)
	assert.True(t, result.OK())
	assert.False(t, result.AllFailed())
	assert.Empty(t, result.Levels())
	assert.Equal(t, 0, sim.Calls(""))
}

func TestSetLocalizedName(t *testing.T) {
	labels := newMemoryLabels()
	svc := NewService(hue.NewSimulator(), labels)

	group, err := svc.SetLocalizedName(context.Background(), "2", "köksbord")
	require.NoError(t, err)
	assert.Equal(t, LightGroup{ID: "2", Name: "kitchen table", NameSv: "köksbord"}, group)

	groups, err := svc.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "köksbord", groups[1].NameSv)
}

func TestSetLocalizedName_UnknownGroup(t *testing.T) {
	labels := newMemoryLabels()
	svc := NewService(hue.NewSimulator(), labels)

	_, err := svc.SetLocalizedName(context.Background(), "42", "hall")
	assert.ErrorIs(t, err, ErrUnknownGroup)
	assert.Empty(t, labels.names)
}

func TestSetLocalizedName_Validation(t *testing.T) {
	svc := NewService(hue.NewSimulator(), newMemoryLabels())

	_, err := svc.SetLocalizedName(context.Background(), "1", "")
	assert.ErrorIs(t, err, schema.ErrValidation)

	_, err = svc.SetLocalizedName(context.Background(), "", "hall")
	assert.ErrorIs(t, err, schema.ErrValidation)
}

func TestSetLocalizedName_StoreFailure(t *testing.T) {
	labels := newMemoryLabels()
	labels.setErr = errors.New("disk full")
	svc := NewService(hue.NewSimulator(), labels)

	_, err := svc.SetLocalizedName(context.Background(), "1", "vardagsrum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
