package cooldowns

//go:generate mockgen -destination=mock/mock_repository.go -package=mockcooldowns -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/ability-engine/internal/ability"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// Repository stores per-entity cooldown snapshots
type Repository interface {
	// Save replaces the snapshot stored for snap.EntityID
	Save(ctx context.Context, snap *ability.Snapshot) error

	// Get returns the snapshot for an entity or a not found error
	Get(ctx context.Context, entityID string) (*ability.Snapshot, error)

	// Delete removes an entity's snapshot and its world index entry
	Delete(ctx context.Context, entityID string) error

	// ListByWorld returns every stored snapshot indexed under a world
	ListByWorld(ctx context.Context, worldID string) ([]*ability.Snapshot, error)
}

func validate(snap *ability.Snapshot) error {
	if snap == nil {
		return apperr.InvalidArgument("snapshot cannot be nil")
	}
	if snap.EntityID == "" {
		return apperr.InvalidArgument("snapshot entity ID cannot be empty")
	}
	return nil
}

func clone(snap *ability.Snapshot) *ability.Snapshot {
	out := *snap
	out.Cooldowns = make(map[string]uint32, len(snap.Cooldowns))
	for name, remaining := range snap.Cooldowns {
		out.Cooldowns[name] = remaining
	}
	if snap.State != nil {
		out.State = make(map[string]map[string]any, len(snap.State))
		for name, fields := range snap.State {
			copied := make(map[string]any, len(fields))
			for k, v := range fields {
				copied[k] = v
			}
			out.State[name] = copied
		}
	}
	return &out
}
