package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/ability-engine/internal/repositories/cooldowns"
)

func main() {
	ctx := context.Background()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	worldID := os.Getenv("WORLD_ID")
	if len(os.Args) > 1 {
		worldID = os.Args[1]
	}
	if worldID == "" {
		worldID = "lair"
	}

	repo := cooldowns.NewRedis(client)
	snaps, err := repo.ListByWorld(ctx, worldID)
	if err != nil {
		log.Fatalf("Failed to list cooldowns: %v", err)
	}

	fmt.Printf("Found %d cooldown snapshots in world %s:\n", len(snaps), worldID)
	for _, snap := range snaps {
		fmt.Printf("  %s (saved at tick %d, %s)\n", snap.EntityID, snap.SavedTick, snap.SavedAt.Format("2006-01-02 15:04:05"))

		names := make([]string, 0, len(snap.Cooldowns))
		for name := range snap.Cooldowns {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("    %s: %d ticks\n", name, snap.Cooldowns[name])
		}
	}
}
