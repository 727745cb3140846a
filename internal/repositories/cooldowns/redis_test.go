package cooldowns

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/ability-engine/internal/ability"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RedisRepoTestSuite struct {
	suite.Suite
	client *redis.Client
	mock   redismock.ClientMock
	repo   Repository
	ttl    time.Duration
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.client, s.mock = redismock.NewClientMock()
	s.ttl = time.Hour
	s.repo = NewRedisRepository(&RedisRepoConfig{Client: s.client, TTL: s.ttl})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) snapshot(entityID string) *ability.Snapshot {
	return &ability.Snapshot{
		EntityID:  entityID,
		WorldID:   "lair",
		SavedTick: 120,
		Cooldowns: map[string]uint32{"fire_breath": 40, "bite": 2},
		SavedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *RedisRepoTestSuite) encode(snap *ability.Snapshot) string {
	data, err := json.Marshal(snap)
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisRepoTestSuite) TestSave() {
	ctx := context.Background()
	snap := s.snapshot("dragon-1")

	// Happy path
	s.mock.ExpectSet("cooldowns:dragon-1", s.encode(snap), s.ttl).SetVal("OK")
	s.mock.ExpectSAdd("world:lair:cooldowns", "dragon-1").SetVal(1)

	s.NoError(s.repo.Save(ctx, snap))

	// No world, no index
	snap.WorldID = ""
	s.mock.ExpectSet("cooldowns:dragon-1", s.encode(snap), s.ttl).SetVal("OK")

	s.NoError(s.repo.Save(ctx, snap))

	// Dependency error
	s.mock.ExpectSet("cooldowns:dragon-1", s.encode(snap), s.ttl).SetErr(errors.New("redis error"))

	err := s.repo.Save(ctx, snap)
	s.Error(err)
	s.Equal(apperr.CodeUnavailable, apperr.GetCode(err))

	// Input validation
	s.True(apperr.IsInvalidArgument(s.repo.Save(ctx, nil)))
	s.True(apperr.IsInvalidArgument(s.repo.Save(ctx, &ability.Snapshot{})))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	snap := s.snapshot("dragon-1")

	// Happy path
	s.mock.ExpectGet("cooldowns:dragon-1").SetVal(s.encode(snap))

	got, err := s.repo.Get(ctx, "dragon-1")
	s.Require().NoError(err)
	s.Equal(snap, got)

	// Missing
	s.mock.ExpectGet("cooldowns:goblin").RedisNil()

	_, err = s.repo.Get(ctx, "goblin")
	s.True(apperr.IsNotFound(err))

	// Corrupt value
	s.mock.ExpectGet("cooldowns:dragon-1").SetVal("{not json")

	_, err = s.repo.Get(ctx, "dragon-1")
	s.Error(err)

	// Dependency error
	s.mock.ExpectGet("cooldowns:dragon-1").SetErr(errors.New("redis error"))

	_, err = s.repo.Get(ctx, "dragon-1")
	s.Equal(apperr.CodeUnavailable, apperr.GetCode(err))

	// Input validation
	_, err = s.repo.Get(ctx, "")
	s.True(apperr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestGet_EmptyCooldowns() {
	s.mock.ExpectGet("cooldowns:dragon-1").SetVal(`{"entity_id":"dragon-1","saved_tick":3}`)

	got, err := s.repo.Get(context.Background(), "dragon-1")
	s.Require().NoError(err)
	s.NotNil(got.Cooldowns)
	s.Empty(got.Cooldowns)
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()
	snap := s.snapshot("dragon-1")

	s.mock.ExpectGet("cooldowns:dragon-1").SetVal(s.encode(snap))
	s.mock.ExpectDel("cooldowns:dragon-1").SetVal(1)
	s.mock.ExpectSRem("world:lair:cooldowns", "dragon-1").SetVal(1)

	s.NoError(s.repo.Delete(ctx, "dragon-1"))

	s.mock.ExpectGet("cooldowns:dragon-1").RedisNil()

	s.True(apperr.IsNotFound(s.repo.Delete(ctx, "dragon-1")))
}

func (s *RedisRepoTestSuite) TestListByWorld() {
	ctx := context.Background()
	dragon := s.snapshot("dragon-1")

	s.mock.MatchExpectationsInOrder(false)
	s.mock.ExpectSMembers("world:lair:cooldowns").SetVal([]string{"dragon-1", "wyrmling-2"})
	s.mock.ExpectGet("cooldowns:dragon-1").SetVal(s.encode(dragon))
	s.mock.ExpectGet("cooldowns:wyrmling-2").RedisNil()

	snapshots, err := s.repo.ListByWorld(ctx, "lair")
	s.Require().NoError(err)
	s.Require().Len(snapshots, 1)
	s.Equal(dragon, snapshots[0])
}

func (s *RedisRepoTestSuite) TestListByWorld_Errors() {
	ctx := context.Background()

	s.mock.ExpectSMembers("world:lair:cooldowns").SetErr(errors.New("redis error"))

	_, err := s.repo.ListByWorld(ctx, "lair")
	s.Error(err)

	_, err = s.repo.ListByWorld(ctx, "")
	s.True(apperr.IsInvalidArgument(err))
}

func TestNewRedisRepository(t *testing.T) {
	assert.Panics(t, func() { NewRedisRepository(&RedisRepoConfig{}) })
	assert.Panics(t, func() { NewRedisRepository(nil) })

	client, _ := redismock.NewClientMock()
	repo := NewRedis(client).(*redisRepo)
	assert.Equal(t, defaultTTL, repo.ttl)
}
