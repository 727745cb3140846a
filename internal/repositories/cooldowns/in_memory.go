package cooldowns

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/ability-engine/internal/ability"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// InMemoryRepository keeps snapshots in process. Used when Redis is not
// configured and in tests.
type InMemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*ability.Snapshot
}

// NewInMemoryRepository creates an empty in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		snapshots: make(map[string]*ability.Snapshot),
	}
}

func (r *InMemoryRepository) Save(_ context.Context, snap *ability.Snapshot) error {
	if err := validate(snap); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[snap.EntityID] = clone(snap)
	return nil
}

func (r *InMemoryRepository) Get(_ context.Context, entityID string) (*ability.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, ok := r.snapshots[entityID]
	if !ok {
		return nil, apperr.NotFoundf("cooldown snapshot for %s not found", entityID)
	}
	return clone(snap), nil
}

func (r *InMemoryRepository) Delete(_ context.Context, entityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.snapshots[entityID]; !ok {
		return apperr.NotFoundf("cooldown snapshot for %s not found", entityID)
	}
	delete(r.snapshots, entityID)
	return nil
}

// ListByWorld returns snapshots sorted by entity ID
func (r *InMemoryRepository) ListByWorld(_ context.Context, worldID string) ([]*ability.Snapshot, error) {
	if worldID == "" {
		return nil, apperr.InvalidArgument("world ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*ability.Snapshot
	for _, snap := range r.snapshots {
		if snap.WorldID == worldID {
			out = append(out, clone(snap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID < out[j].EntityID })

	return out, nil
}
