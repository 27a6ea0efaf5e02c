package lights

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/urmzd/huemcp/pkg/hue"
	"github.com/urmzd/huemcp/pkg/schema"
)

// Service fans batched light-group requests out to the bridge
type Service struct {
	bridge hue.Bridge
	labels LabelStore
}

// NewService creates a Service. labels may be nil, in which case localized
// names fall back to the bridge names and cannot be changed.
func NewService(bridge hue.Bridge, labels LabelStore) *Service {
	return &Service{bridge: bridge, labels: labels}
}

// Bridge returns the underlying bridge
func (s *Service) Bridge() hue.Bridge {
	return s.bridge
}

// ListGroups returns every bridge group with its localized name.
func (s *Service) ListGroups(ctx context.Context) ([]LightGroup, error) {
	groups, err := s.bridge.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	labels := map[string]string{}
	if s.labels != nil {
		labels, err = s.labels.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load localized names: %w", err)
		}
	}

	out := make([]LightGroup, 0, len(groups))
	for _, g := range groups {
		nameSv := labels[g.ID]
		if nameSv == "" {
			nameSv = g.Name
		}
		out = append(out, LightGroup{ID: g.ID, Name: g.Name, NameSv: nameSv})
	}
	return out, nil
}

// SetColors applies each color to its group. Every color is checked before
// the first bridge call; a bad one returns a *schema.ValidationError and
// nothing is sent.
func (s *Service) SetColors(ctx context.Context, assignments []ColorAssignment) (BatchResult, error) {
	for i, a := range assignments {
		if !hue.ValidColor(a.Color) {
			return BatchResult{}, schema.Invalid(
				"/groups/"+strconv.Itoa(i)+"/color",
				fmt.Sprintf("%q is not a six digit hex color", a.Color),
			)
		}
	}

	return s.fanOut(ctx, "set_color", len(assignments), func(ctx context.Context, i int) Outcome {
		a := assignments[i]
		if err := s.bridge.SetGroupColor(ctx, a.ID, a.Color); err != nil {
			return failed(a.ID, err)
		}
		return Outcome{ID: a.ID, OK: true}
	}), nil
}

// GetBrightness reads the brightness of each group.
func (s *Service) GetBrightness(ctx context.Context, ids []string) BatchResult {
	return s.fanOut(ctx, "get_brightness", len(ids), func(ctx context.Context, i int) Outcome {
		level, err := s.bridge.GetGroupBrightness(ctx, ids[i])
		if err != nil {
			return failed(ids[i], err)
		}
		return Outcome{ID: ids[i], OK: true, Brightness: &level}
	})
}

// SetBrightness applies each brightness, clamped to 0-100.
func (s *Service) SetBrightness(ctx context.Context, assignments []BrightnessAssignment) BatchResult {
	return s.fanOut(ctx, "set_brightness", len(assignments), func(ctx context.Context, i int) Outcome {
		a := assignments[i]
		applied, err := s.bridge.SetGroupBrightness(ctx, a.ID, hue.ClampBrightness(a.Brightness))
		if err != nil {
			return failed(a.ID, err)
		}
		return Outcome{ID: a.ID, OK: true, Brightness: &applied}
	})
}

// SetLocalizedName stores the localized name of a group that exists on the
// bridge and returns the updated group.
func (s *Service) SetLocalizedName(ctx context.Context, groupID, name string) (LightGroup, error) {
	if groupID == "" {
		return LightGroup{}, schema.Invalid("/id", "must not be empty")
	}
	if name == "" {
		return LightGroup{}, schema.Invalid("/name", "must not be empty")
	}
	if s.labels == nil {
		return LightGroup{}, fmt.Errorf("localized names are not configured")
	}

	groups, err := s.bridge.ListGroups(ctx)
	if err != nil {
		return LightGroup{}, err
	}
	var found *hue.Group
	for i := range groups {
		if groups[i].ID == groupID {
			found = &groups[i]
			break
		}
	}
	if found == nil {
		return LightGroup{}, fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}

	if err := s.labels.Set(ctx, groupID, name); err != nil {
		return LightGroup{}, fmt.Errorf("failed to store localized name: %w", err)
	}
	log.Info().Str("group", groupID).Str("name_sv", name).Msg("Localized name updated")

	return LightGroup{ID: found.ID, Name: found.Name, NameSv: name}, nil
}

// fanOut runs task once per index concurrently and waits for all of them.
// Each task owns its result slot, so one failure never cancels the others.
func (s *Service) fanOut(ctx context.Context, op string, n int, task func(context.Context, int) Outcome) BatchResult {
	results := make([]Outcome, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			results[i] = task(ctx, i)
			return nil
		})
	}
	_ = g.Wait()

	batch := BatchResult{Results: results}
	for _, o := range results {
		if o.OK {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}

	if batch.Failed > 0 {
		log.Warn().
			Str("op", op).
			Int("succeeded", batch.Succeeded).
			Int("failed", batch.Failed).
			Strs("kinds", batch.Kinds()).
			Msg("Batch completed with failures")
	} else {
		log.Debug().Str("op", op).Int("groups", n).Msg("Batch completed")
	}
	return batch
}

func failed(groupID string, err error) Outcome {
	return Outcome{ID: groupID, Error: err.Error(), Kind: hue.Kind(err)}
}
