package main

import (
	"context"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/ability-engine/internal/abilities"
	"github.com/KirkDiggler/ability-engine/internal/ability"
	"github.com/KirkDiggler/ability-engine/internal/catalog"
	"github.com/KirkDiggler/ability-engine/internal/config"
	"github.com/KirkDiggler/ability-engine/internal/creature"
	"github.com/KirkDiggler/ability-engine/internal/dice"
	"github.com/KirkDiggler/ability-engine/internal/events"
	"github.com/KirkDiggler/ability-engine/internal/repositories/cooldowns"
	"github.com/KirkDiggler/ability-engine/internal/script"
	"github.com/KirkDiggler/ability-engine/internal/telemetry"
	"github.com/KirkDiggler/ability-engine/internal/uuid"
	"github.com/KirkDiggler/ability-engine/internal/world"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer := telemetry.NoopTracer()
	if cfg.Telemetry.Enabled {
		shutdown, setupErr := telemetry.Setup(ctx)
		if setupErr != nil {
			log.Printf("Failed to set up telemetry: %v", setupErr)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Printf("Telemetry shutdown error: %v", err)
				}
			}()
			tracer = telemetry.Tracer("simulate")
		}
	}

	seed := cfg.World.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("Dice seed: %d", seed)
	roller := dice.NewRandomRoller(seed)

	var scripts fs.FS = catalog.DefaultScripts()
	if cfg.Abilities.ScriptDir != "" {
		scripts = os.DirFS(cfg.Abilities.ScriptDir)
	}
	scriptRuntime := script.NewRuntime(&script.RuntimeConfig{FS: scripts, Roller: roller})

	abilityCatalog := catalog.Default()
	if cfg.Abilities.CatalogPath != "" {
		abilityCatalog, err = catalog.LoadFile(cfg.Abilities.CatalogPath)
		if err != nil {
			log.Fatalf("Failed to load ability catalog: %v", err)
		}
	}

	registry := ability.NewRegistry()
	if _, err := abilityCatalog.Build(registry, abilities.Behaviors(roller), scriptRuntime); err != nil {
		log.Fatalf("Failed to build ability catalog: %v", err)
	}
	log.Printf("Registered %d abilities: %v", registry.Len(), registry.Names())

	if cfg.Abilities.WatchScripts {
		watcher, watchErr := script.NewWatcher(cfg.Abilities.ScriptDir)
		if watchErr != nil {
			log.Fatalf("Failed to watch scripts: %v", watchErr)
		}
		defer watcher.Close()
		go scriptRuntime.Watch(ctx, watcher, cfg.Abilities.ScriptDir)
		log.Printf("Watching %s for script changes", cfg.Abilities.ScriptDir)
	}

	var repo cooldowns.Repository
	if cfg.Redis.Enabled() {
		client, redisErr := connectRedis(ctx, &cfg.Redis)
		if redisErr != nil {
			log.Printf("Failed to connect to Redis: %v", redisErr)
			log.Println("Falling back to in-memory cooldowns")
		} else {
			defer client.Close()
			repo = cooldowns.NewRedisRepository(&cooldowns.RedisRepoConfig{
				Client: client,
				TTL:    cfg.Redis.SnapshotTTL,
			})
		}
	}
	if repo == nil {
		repo = cooldowns.NewInMemoryRepository()
	}

	bus := events.NewBus()
	logFinished := func(e events.Event) error {
		if ev, ok := e.(*events.AbilityEvent); ok {
			log.Printf("Tick %d: %s %s %s after %d ticks", ev.Tick, ev.EntityID, ev.Ability, ev.GetType(), ev.TicksInUse)
		}
		return nil
	}
	bus.SubscribeFunc(events.EventTypeAbilityCompleted, "log-completed", events.PriorityDiagnostics, logFinished)
	bus.SubscribeFunc(events.EventTypeAbilityInterrupted, "log-interrupted", events.PriorityDiagnostics, logFinished)

	lair := world.New(&world.Config{
		ID:         cfg.World.ID,
		TickRate:   cfg.World.TickRate,
		Registry:   registry,
		Repository: repo,
		UUID:       uuid.NewGoogleUUIDGenerator(),
		Publisher:  bus,
		Tracer:     tracer,
	})

	if err := spawnEncounter(lair, registry); err != nil {
		log.Fatalf("Failed to spawn encounter: %v", err)
	}
	if err := lair.Load(ctx); err != nil {
		log.Printf("Failed to restore cooldowns: %v", err)
	}

	if err := lair.Run(ctx); err != nil {
		log.Printf("World stopped with error: %v", err)
	}

	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := lair.Save(saveCtx); err != nil {
		log.Printf("Failed to save cooldowns: %v", err)
	}

	log.Println("Shutting down")
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	log.Printf("Connected to Redis at %s", opts.Addr)
	return client, nil
}

// spawnEncounter sets up a dragon and a knight that fight each other.
// Abilities missing from a custom catalog are skipped.
func spawnEncounter(w *world.World, registry *ability.Registry) error {
	lookup := func(names ...string) []*ability.Type {
		var out []*ability.Type
		for _, name := range names {
			if t, ok := registry.Get(name); ok {
				out = append(out, t)
			}
		}
		return out
	}
	reactions := func() creature.Reactions {
		var r creature.Reactions
		r.Hurt, _ = registry.Get("hurt")
		r.Die, _ = registry.Get("die")
		return r
	}

	dragon, err := w.Spawn(&world.SpawnConfig{
		ID:            "dragon",
		Name:          "Red Dragon",
		MaxHealth:     200,
		Reactions:     reactions(),
		Priorities:    lookup("phase_shift", "fear_aura", "fire_breath", "tail_whip", "claw_sweep", "bite", "sleep"),
		ThinkInterval: 2,
	})
	if err != nil {
		return err
	}

	knight, err := w.Spawn(&world.SpawnConfig{
		ID:            "knight",
		Name:          "Knight",
		MaxHealth:     120,
		Reactions:     reactions(),
		Priorities:    lookup("claw_sweep", "bite"),
		ThinkInterval: 3,
	})
	if err != nil {
		return err
	}

	dragon.SetTarget(knight)
	knight.SetTarget(dragon)
	return nil
}
