package hue

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/amimof/huego"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultRateLimit = 10.0
)

// Options tunes how the client talks to the bridge.
type Options struct {
	Timeout   time.Duration // Per-call deadline (default 5s)
	RateLimit float64       // Bridge-wide requests per second (default 10)
}

// Client implements Bridge against the Hue v1 REST API using huego.
// Every call is single-attempt, rate limited, bounded by Options.Timeout and
// traced. Writes to the same group are serialized.
type Client struct {
	identity Identity
	bridge   *huego.Bridge
	timeout  time.Duration
	limiter  *rate.Limiter
	tracer   trace.Tracer

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewClient creates a client for the bridge described by identity.
func NewClient(identity Identity, opts Options) (*Client, error) {
	if identity.Address == "" || identity.Username == "" {
		return nil, ErrNotConfigured
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	burst := int(opts.RateLimit)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		identity: identity,
		bridge:   huego.New(bridgeHost(identity.Address), identity.Username),
		timeout:  opts.Timeout,
		limiter:  rate.NewLimiter(rate.Limit(opts.RateLimit), burst),
		tracer:   otel.Tracer("github.com/urmzd/huemcp/pkg/hue"),
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

// bridgeHost returns address with an explicit scheme. huego rewrites a
// scheme-less host in place on every request, which races under fan-out.
func bridgeHost(address string) string {
	lower := strings.ToLower(address)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return strings.TrimRight(address, "/")
	}
	return "http://" + strings.TrimRight(address, "/")
}

// Identity returns the bridge identity this client was created with
func (c *Client) Identity() Identity {
	return c.identity
}

// ListGroups returns all groups on the bridge ordered by numeric ID.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var groups []huego.Group
	err := c.do(ctx, "list_groups", "", func(ctx context.Context) error {
		var err error
		groups, err = c.bridge.GetGroupsContext(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]Group, 0, len(groups))
	for i := range groups {
		out = append(out, toGroup(&groups[i]))
	}
	sort.Slice(out, func(i, j int) bool {
		return lessGroupID(out[i].ID, out[j].ID)
	})
	return out, nil
}

// SetGroupColor switches the group on with the given RGB color. Black has
// no chromaticity and switches the group off instead.
func (c *Client) SetGroupColor(ctx context.Context, groupID, hexColor string) error {
	rgb, err := ParseColor(hexColor)
	if err != nil {
		return &BridgeError{Op: "set_color", GroupID: groupID, Err: err}
	}
	id, err := groupNumber("set_color", groupID)
	if err != nil {
		return err
	}

	state := colorState(rgb)

	unlock := c.lockGroup(groupID)
	defer unlock()

	return c.do(ctx, "set_color", groupID, func(ctx context.Context) error {
		_, err := c.bridge.SetGroupStateContext(ctx, id, state)
		return err
	})
}

// SetGroupBrightness clamps level to 0-100 and applies it. Level 0 switches
// the group off.
func (c *Client) SetGroupBrightness(ctx context.Context, groupID string, level int) (int, error) {
	level = ClampBrightness(level)
	id, err := groupNumber("set_brightness", groupID)
	if err != nil {
		return 0, err
	}

	state := huego.State{On: level > 0, Bri: levelToBri(level)}

	unlock := c.lockGroup(groupID)
	defer unlock()

	err = c.do(ctx, "set_brightness", groupID, func(ctx context.Context) error {
		_, err := c.bridge.SetGroupStateContext(ctx, id, state)
		return err
	})
	if err != nil {
		return 0, err
	}
	return level, nil
}

// GetGroupBrightness reads the group's last applied brightness.
func (c *Client) GetGroupBrightness(ctx context.Context, groupID string) (int, error) {
	id, err := groupNumber("get_brightness", groupID)
	if err != nil {
		return 0, err
	}

	var group *huego.Group
	err = c.do(ctx, "get_brightness", groupID, func(ctx context.Context) error {
		var err error
		group, err = c.bridge.GetGroupContext(ctx, id)
		return err
	})
	if err != nil {
		return 0, err
	}

	anyOn := false
	if group.GroupState != nil {
		anyOn = group.GroupState.AnyOn
	}
	var bri uint8
	if group.State != nil {
		bri = group.State.Bri
	}
	return briToLevel(anyOn, bri), nil
}

// Ping lists groups to check connectivity and the credential.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", "", func(ctx context.Context) error {
		_, err := c.bridge.GetGroupsContext(ctx)
		return err
	})
}

// do runs a single bridge call with rate limiting, a deadline and a span.
func (c *Client) do(ctx context.Context, op, groupID string, fn func(ctx context.Context) error) error {
	ctx, span := c.tracer.Start(ctx, "hue."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("hue.op", op),
			attribute.String("hue.group_id", groupID),
		),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := c.limiter.Wait(ctx)
	if err != nil {
		// The limiter refuses early when the wait would outlive the deadline
		if ctx.Err() == nil {
			err = fmt.Errorf("%w: %v", ErrTimeout, err)
		}
	} else {
		err = fn(ctx)
	}

	if err != nil {
		bridgeErr := &BridgeError{Op: op, GroupID: groupID, Err: classify(err)}
		span.RecordError(bridgeErr)
		span.SetStatus(codes.Error, Kind(bridgeErr))
		log.Debug().
			Err(err).
			Str("op", op).
			Str("group", groupID).
			Str("kind", Kind(bridgeErr)).
			Dur("took", time.Since(start)).
			Msg("Bridge call failed")
		return bridgeErr
	}

	log.Debug().
		Str("op", op).
		Str("group", groupID).
		Dur("took", time.Since(start)).
		Msg("Bridge call completed")
	return nil
}

// lockGroup serializes writes to a single group.
func (c *Client) lockGroup(groupID string) func() {
	c.locksMu.Lock()
	mu, ok := c.locks[groupID]
	if !ok {
		mu = &sync.Mutex{}
		c.locks[groupID] = mu
	}
	c.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// groupNumber converts an opaque group ID to the v1 API's numeric ID. A
// non-numeric ID can never name a group on this bridge.
func groupNumber(op, groupID string) (int, error) {
	id, err := strconv.Atoi(groupID)
	if err != nil || id < 0 {
		return 0, &BridgeError{
			Op:      op,
			GroupID: groupID,
			Err:     fmt.Errorf("%w: unknown group %q", ErrRejected, groupID),
		}
	}
	return id, nil
}

// colorState builds the group action for rgb. huego divides by the summed
// tristimulus values, so zero luminance yields NaN which cannot be encoded.
func colorState(rgb color.RGBA) huego.State {
	xy, _ := huego.ConvertRGBToXy(rgb)
	if len(xy) != 2 || math.IsNaN(float64(xy[0])) || math.IsNaN(float64(xy[1])) {
		return huego.State{On: false}
	}
	return huego.State{On: true, Xy: xy}
}

func toGroup(g *huego.Group) Group {
	return Group{
		ID:     strconv.Itoa(g.ID),
		Name:   g.Name,
		Type:   g.Type,
		Lights: len(g.Lights),
	}
}

// lessGroupID orders numeric IDs numerically and everything else lexically.
func lessGroupID(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}
