package cooldowns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/ability-engine/internal/ability"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	snapshotKeyPrefix = "cooldowns:"
	worldIndexKey     = "world:%s:cooldowns"

	// Snapshots older than this are worthless; every cooldown has long expired
	defaultTTL = 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	TTL    time.Duration
}

type redisRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisRepository creates a Redis-backed cooldown repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisRepo{
		client: cfg.Client,
		ttl:    ttl,
	}
}

// NewRedis creates a Redis repository with the default TTL
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func snapshotKey(entityID string) string {
	return snapshotKeyPrefix + entityID
}

func (r *redisRepo) Save(ctx context.Context, snap *ability.Snapshot) error {
	if err := validate(snap); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return apperr.Wrap(err, "failed to marshal cooldown snapshot")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, snapshotKey(snap.EntityID), string(data), r.ttl)
	if snap.WorldID != "" {
		pipe.SAdd(ctx, fmt.Sprintf(worldIndexKey, snap.WorldID), snap.EntityID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to save cooldown snapshot").
			WithMeta("entity_id", snap.EntityID)
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, entityID string) (*ability.Snapshot, error) {
	if entityID == "" {
		return nil, apperr.InvalidArgument("entity ID cannot be empty")
	}

	data, err := r.client.Get(ctx, snapshotKey(entityID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFoundf("cooldown snapshot for %s not found", entityID)
		}
		return nil, apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to get cooldown snapshot").
			WithMeta("entity_id", entityID)
	}

	var snap ability.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, apperr.Wrapf(err, "failed to unmarshal cooldown snapshot for %s", entityID)
	}
	if snap.Cooldowns == nil {
		snap.Cooldowns = make(map[string]uint32)
	}

	return &snap, nil
}

func (r *redisRepo) Delete(ctx context.Context, entityID string) error {
	snap, err := r.Get(ctx, entityID)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, snapshotKey(entityID))
	if snap.WorldID != "" {
		pipe.SRem(ctx, fmt.Sprintf(worldIndexKey, snap.WorldID), entityID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to delete cooldown snapshot").
			WithMeta("entity_id", entityID)
	}

	return nil
}

// ListByWorld skips index entries whose snapshot has expired
func (r *redisRepo) ListByWorld(ctx context.Context, worldID string) ([]*ability.Snapshot, error) {
	if worldID == "" {
		return nil, apperr.InvalidArgument("world ID cannot be empty")
	}

	entityIDs, err := r.client.SMembers(ctx, fmt.Sprintf(worldIndexKey, worldID)).Result()
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to list world cooldowns").
			WithMeta("world_id", worldID)
	}

	found := make([]*ability.Snapshot, len(entityIDs))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range entityIDs {
		i, id := i, id
		g.Go(func() error {
			snap, err := r.Get(ctx, id)
			if err != nil {
				if apperr.IsNotFound(err) {
					return nil
				}
				return apperr.Wrapf(err, "failed to get cooldowns for %s", id)
			}
			found[i] = snap
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshots := make([]*ability.Snapshot, 0, len(found))
	for _, snap := range found {
		if snap != nil {
			snapshots = append(snapshots, snap)
		}
	}

	return snapshots, nil
}
