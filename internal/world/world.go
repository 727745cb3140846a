// Package world runs the fixed-rate simulation loop that drives every
// creature's combat manager.
package world

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/ability-engine/internal/ability"
	"github.com/KirkDiggler/ability-engine/internal/creature"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/KirkDiggler/ability-engine/internal/repositories/cooldowns"
	"github.com/KirkDiggler/ability-engine/internal/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
)

const defaultTickRate = 20

// Config holds the dependencies of a World
type Config struct {
	ID       string
	Registry *ability.Registry

	// Optional
	TickRate   int
	Repository cooldowns.Repository
	UUID       uuid.Generator
	Publisher  ability.Publisher
	Tracer     trace.Tracer
}

// SpawnConfig describes a creature to add to the world
type SpawnConfig struct {
	// ID is generated when empty
	ID         string
	Name       string
	MaxHealth  int
	Reactions  creature.Reactions
	Priorities []*ability.Type
	// ThinkInterval is how often, in ticks, the creature picks an ability
	ThinkInterval uint32
}

// World owns the clock and the creatures. Step is its only mutator of
// ability state; Run calls it at the configured rate.
type World struct {
	id        string
	interval  time.Duration
	registry  *ability.Registry
	repo      cooldowns.Repository
	uuid      uuid.Generator
	publisher ability.Publisher
	tracer    trace.Tracer

	tick atomic.Uint64

	mu        sync.Mutex
	creatures []*creature.Creature
	brains    map[string]*creature.Brain
}

// New creates an empty world at tick 0
func New(cfg *Config) *World {
	if cfg == nil || cfg.Registry == nil {
		panic("world requires an ability registry")
	}

	rate := cfg.TickRate
	if rate <= 0 {
		rate = defaultTickRate
	}

	w := &World{
		id:        cfg.ID,
		interval:  time.Second / time.Duration(rate),
		registry:  cfg.Registry,
		repo:      cfg.Repository,
		uuid:      cfg.UUID,
		publisher: cfg.Publisher,
		tracer:    cfg.Tracer,
		brains:    make(map[string]*creature.Brain),
	}
	if w.uuid == nil {
		w.uuid = uuid.NewGoogleUUIDGenerator()
	}
	if w.tracer == nil {
		w.tracer = noop.NewTracerProvider().Tracer("world")
	}
	if w.id == "" {
		w.id = w.uuid.New()
	}

	return w
}

func (w *World) ID() string { return w.id }

// CurrentTick returns the simulation tick. Safe to call from any goroutine.
func (w *World) CurrentTick() ability.Tick {
	return ability.Tick(w.tick.Load())
}

// Interval is the wall-clock time between ticks
func (w *World) Interval() time.Duration {
	return w.interval
}

// Spawn adds a creature. Creatures tick in spawn order.
func (w *World) Spawn(cfg *SpawnConfig) (*creature.Creature, error) {
	if cfg == nil {
		return nil, apperr.InvalidArgument("spawn config cannot be nil")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	id := cfg.ID
	if id == "" {
		id = w.uuid.New()
	}
	for _, existing := range w.creatures {
		if existing.ID() == id {
			return nil, apperr.AlreadyExistsf("creature %s already exists", id).WithMeta("world_id", w.id)
		}
	}

	c := creature.New(&creature.Config{
		ID:        id,
		Name:      cfg.Name,
		MaxHealth: cfg.MaxHealth,
		Clock:     w,
		Registry:  w.registry,
		Reactions: cfg.Reactions,
		Publisher: w.publisher,
		Tracer:    w.tracer,
	})
	w.creatures = append(w.creatures, c)

	if len(cfg.Priorities) > 0 {
		w.brains[id] = creature.NewBrain(c, cfg.ThinkInterval, cfg.Priorities...)
	}

	log.Printf("World: %s spawned %s (%s)", w.id, c.Name(), id)
	return c, nil
}

// Creature looks up a creature by ID
func (w *World) Creature(id string) (*creature.Creature, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, c := range w.creatures {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Creatures returns the creatures in spawn order
func (w *World) Creatures() []*creature.Creature {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]*creature.Creature, len(w.creatures))
	copy(out, w.creatures)
	return out
}

// Step advances the clock one tick, counts down conditions, lets every
// brain request abilities and then ticks every combat manager.
func (w *World) Step() ability.Tick {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := ability.Tick(w.tick.Add(1))

	for _, c := range w.creatures {
		c.AdvanceConditions(now)
	}

	for _, c := range w.creatures {
		if !c.IsAlive() {
			continue
		}
		if brain, ok := w.brains[c.ID()]; ok {
			brain.Think()
		}
	}

	for _, c := range w.creatures {
		c.Manager().Tick()
	}

	return now
}

// Run steps the world at its tick rate until ctx is done
func (w *World) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("World: %s running at %v per tick", w.id, w.interval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("World: %s stopped at tick %d", w.id, w.CurrentTick())
			return nil
		case <-ticker.C:
			w.Step()
		}
	}
}

// Save interrupts every running ability and stores each creature's
// remaining cooldowns
func (w *World) Save(ctx context.Context) error {
	if w.repo == nil {
		return apperr.New(apperr.CodeUnavailable, "world has no cooldown repository")
	}

	ctx, span := w.tracer.Start(ctx, "world.save", trace.WithAttributes(attribute.String("world.id", w.id)))
	defer span.End()

	w.mu.Lock()
	snaps := make([]*ability.Snapshot, 0, len(w.creatures))
	for _, c := range w.creatures {
		c.Manager().InterruptAll()
		snap := c.Manager().Snapshot()
		snap.WorldID = w.id
		snaps = append(snaps, snap)
	}
	w.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, snap := range snaps {
		snap := snap
		g.Go(func() error {
			return w.repo.Save(ctx, snap)
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return apperr.Wrapf(err, "failed to save world %s", w.id)
	}

	span.SetAttributes(attribute.Int("world.snapshots", len(snaps)))
	log.Printf("World: %s saved %d cooldown snapshots at tick %d", w.id, len(snaps), w.CurrentTick())
	return nil
}

// Load restores stored cooldowns onto the spawned creatures. Creatures
// without a stored snapshot are left alone.
func (w *World) Load(ctx context.Context) error {
	if w.repo == nil {
		return apperr.New(apperr.CodeUnavailable, "world has no cooldown repository")
	}

	ctx, span := w.tracer.Start(ctx, "world.load", trace.WithAttributes(attribute.String("world.id", w.id)))
	defer span.End()

	creatures := w.Creatures()
	snaps := make([]*ability.Snapshot, len(creatures))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range creatures {
		i, c := i, c
		g.Go(func() error {
			snap, err := w.repo.Get(gctx, c.ID())
			if err != nil {
				if apperr.IsNotFound(err) {
					return nil
				}
				return err
			}
			snaps[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return apperr.Wrapf(err, "failed to load world %s", w.id)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	restored := 0
	for i, snap := range snaps {
		if snap == nil {
			continue
		}
		creatures[i].Manager().Restore(snap)
		restored++
	}

	log.Printf("World: %s restored cooldowns for %d of %d creatures", w.id, restored, len(creatures))
	return nil
}
