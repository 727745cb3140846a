package creature_test

import (
	"testing"

	"github.com/KirkDiggler/ability-engine/internal/ability"
	"github.com/KirkDiggler/ability-engine/internal/conditions"
	"github.com/KirkDiggler/ability-engine/internal/creature"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/KirkDiggler/ability-engine/internal/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type testClock struct {
	tick ability.Tick
}

func (c *testClock) CurrentTick() ability.Tick { return c.tick }

func simpleType(track *ability.Track, cooldown uint32, usableWhenDead bool) *ability.Type {
	return ability.MustNewType(&ability.TypeConfig{
		Track:          track,
		Cooldown:       cooldown,
		UsableWhenDead: usableWhenDead,
		Factory:        func(ability.Owner) ability.Hooks { return ability.BaseHooks{} },
	})
}

type CreatureTestSuite struct {
	suite.Suite
	clock    *testClock
	registry *ability.Registry
	hurt     *ability.Type
	die      *ability.Type
	slam     *ability.Type
	dragon   *creature.Creature
	knight   *creature.Creature
}

func (s *CreatureTestSuite) SetupTest() {
	s.clock = &testClock{tick: 1}
	s.registry = ability.NewRegistry()
	s.hurt = s.registry.MustRegister("hurt", simpleType(
		ability.MustTrack(ability.InstantOf(ability.SectionActive), ability.Recovery(3)), 8, false))
	s.die = s.registry.MustRegister("die", simpleType(
		ability.MustTrack(ability.Active(1), ability.Recovery(5)), 0, true))
	s.slam = s.registry.MustRegister("slam", simpleType(
		ability.MustTrack(ability.Startup(10), ability.Active(1)), 0, false))

	s.dragon = creature.New(&creature.Config{
		ID:        "dragon",
		Name:      "Red Dragon",
		MaxHealth: 10,
		Clock:     s.clock,
		Registry:  s.registry,
		Reactions: creature.Reactions{Hurt: s.hurt, Die: s.die},
	})
	s.knight = creature.New(&creature.Config{
		ID:        "knight",
		MaxHealth: 20,
		Clock:     s.clock,
		Registry:  s.registry,
	})
}

func TestCreatureTestSuite(t *testing.T) {
	suite.Run(t, new(CreatureTestSuite))
}

func (s *CreatureTestSuite) TestNewDefaults() {
	s.Equal("knight", s.knight.Name())
	s.Equal(20, s.knight.Health())
	s.True(s.knight.IsAlive())
	s.Equal(ability.Tick(1), s.knight.CurrentTick())
	s.Same(s.knight, s.knight.Manager().Owner())
}

func (s *CreatureTestSuite) TestHurtInterruptsPrimary() {
	mgr := s.dragon.Manager()
	s.Require().True(mgr.TryUseAbility(s.slam))

	s.dragon.TakeDamage(3)

	s.Equal(7, s.dragon.Health())
	s.Require().NotNil(mgr.Primary())
	s.Same(s.hurt, mgr.Primary().Type())
	s.False(mgr.IsAbilityActive(s.slam))

	// Already flinching
	s.dragon.TakeDamage(1)
	s.Equal(6, s.dragon.Health())
	s.Same(s.hurt, mgr.Primary().Type())
}

func (s *CreatureTestSuite) TestHurtOnCooldownKeepsPrimary() {
	mgr := s.dragon.Manager()
	s.dragon.TakeDamage(1)
	s.Require().True(mgr.IsAbilityActive(s.hurt))

	for tick := ability.Tick(1); tick <= 4 && mgr.Primary() != nil; tick++ {
		s.clock.tick = tick
		mgr.Tick()
	}
	s.Require().Nil(mgr.Primary())
	s.Greater(mgr.CooldownRemaining(s.hurt), uint32(0))

	s.Require().True(mgr.TryUseAbility(s.slam))
	s.dragon.TakeDamage(1)

	s.Same(s.slam, mgr.Primary().Type())
}

func (s *CreatureTestSuite) TestLethalDamageStartsDying() {
	mgr := s.dragon.Manager()
	s.Require().True(mgr.TryUseAbility(s.slam))

	s.dragon.TakeDamage(50)

	s.Equal(0, s.dragon.Health())
	s.False(s.dragon.IsAlive())
	s.Require().NotNil(mgr.Primary())
	s.Same(s.die, mgr.Primary().Type())

	// The dying animation survives ticking while dead
	s.clock.tick = 2
	mgr.Tick()
	s.True(mgr.IsAbilityActive(s.die))

	// Further damage and healing do nothing to a corpse
	s.dragon.TakeDamage(5)
	s.dragon.Heal(5)
	s.Equal(0, s.dragon.Health())
}

func (s *CreatureTestSuite) TestHeal() {
	s.knight.TakeDamage(8)
	s.knight.Heal(3)
	s.Equal(15, s.knight.Health())

	s.knight.Heal(100)
	s.Equal(20, s.knight.Health())

	s.knight.Heal(-4)
	s.Equal(20, s.knight.Health())
}

func (s *CreatureTestSuite) TestTargeting() {
	s.False(s.dragon.HasLiveTarget())

	s.dragon.SetTarget(s.dragon)
	s.Nil(s.dragon.Target())

	s.dragon.SetTarget(s.knight)
	s.True(s.dragon.HasLiveTarget())

	s.knight.TakeDamage(20)
	s.False(s.dragon.HasLiveTarget())

	s.dragon.SetTarget(nil)
	s.Nil(s.dragon.Target())
}

func (s *CreatureTestSuite) TestFlagsAndPhase() {
	s.dragon.SetFlag("frightened", true)
	s.dragon.SetFlag("asleep", true)
	s.Equal([]string{"asleep", "frightened"}, s.dragon.Flags())

	s.dragon.SetFlag("asleep", false)
	s.False(s.dragon.Flag("asleep"))
	s.True(s.dragon.Flag("frightened"))

	s.Equal(0, s.dragon.Phase())
	s.Equal(1, s.dragon.AdvancePhase())

	s.dragon.TakeDamage(6)
	s.Equal(40, s.dragon.HealthPercent())
}

func (s *CreatureTestSuite) TestTimedConditions() {
	s.knight.SetFlagFor("knocked_down", 2)
	s.knight.AddCondition(&conditions.Condition{Name: "asleep", Duration: &conditions.UntilDamagedDuration{}})
	s.knight.SetFlagFor("cursed", 0)

	s.knight.AdvanceConditions(1)
	s.Equal([]string{"asleep", "cursed", "knocked_down"}, s.knight.Flags())

	s.knight.AdvanceConditions(2)
	s.False(s.knight.Flag("knocked_down"))

	s.knight.TakeDamage(1)
	s.False(s.knight.Flag("asleep"))
	s.True(s.knight.Flag("cursed"))
}

func (s *CreatureTestSuite) TestScriptAttributes() {
	attrs := s.dragon.ScriptAttributes()
	s.Equal(false, attrs["has_target"])
	s.NotContains(attrs, "target_id")

	s.dragon.SetTarget(s.knight)
	s.dragon.SetFlag("fear_aura", true)

	attrs = s.dragon.ScriptAttributes()
	s.Equal("Red Dragon", attrs["name"])
	s.Equal(10, attrs["health"])
	s.Equal(10, attrs["max_health"])
	s.Equal(true, attrs["target_alive"])
	s.Equal("knight", attrs["target_id"])
	s.Equal(20, attrs["target_health"])
	s.Equal(map[string]any{"fear_aura": true}, attrs["flags"])
}

func (s *CreatureTestSuite) TestApplyCommand() {
	s.dragon.SetTarget(s.knight)

	s.Require().NoError(s.dragon.ApplyCommand(script.Command{
		Op: "damage_target", Args: map[string]any{"amount": 6},
	}))
	s.Equal(14, s.knight.Health())

	s.Require().NoError(s.dragon.ApplyCommand(script.Command{
		Op: "set_target_flag", Args: map[string]any{"name": "knocked_down", "value": true},
	}))
	s.True(s.knight.Flag("knocked_down"))

	s.Require().NoError(s.dragon.ApplyCommand(script.Command{
		Op: "set_target_flag", Args: map[string]any{"name": "dazed", "ticks": 1},
	}))
	s.True(s.knight.Flag("dazed"))
	s.knight.AdvanceConditions(2)
	s.False(s.knight.Flag("dazed"))

	s.Require().NoError(s.dragon.ApplyCommand(script.Command{
		Op: "set_flag", Args: map[string]any{"name": "roaring"},
	}))
	s.True(s.dragon.Flag("roaring"))

	s.Require().NoError(s.dragon.ApplyCommand(script.Command{
		Op: "set_flag", Args: map[string]any{"name": "roaring", "value": false},
	}))
	s.False(s.dragon.Flag("roaring"))

	s.dragon.TakeDamage(4)
	s.Require().NoError(s.dragon.ApplyCommand(script.Command{
		Op: "heal", Args: map[string]any{"amount": 2},
	}))
	s.Equal(8, s.dragon.Health())

	s.Require().NoError(s.dragon.ApplyCommand(script.Command{Op: "advance_phase"}))
	s.Equal(1, s.dragon.Phase())
}

func (s *CreatureTestSuite) TestApplyCommandErrors() {
	err := s.dragon.ApplyCommand(script.Command{Op: "damage_target", Args: map[string]any{"amount": 1}})
	s.True(apperr.IsNotFound(err))

	err = s.dragon.ApplyCommand(script.Command{Op: "set_flag"})
	s.True(apperr.IsInvalidArgument(err))

	err = s.dragon.ApplyCommand(script.Command{Op: "teleport"})
	s.True(apperr.IsInvalidArgument(err))
}

func (s *CreatureTestSuite) TestBrainThinksOnInterval() {
	brain := creature.NewBrain(s.dragon, 4, s.slam, s.hurt)

	s.clock.tick = 3
	s.Nil(brain.Think())

	s.clock.tick = 4
	s.Same(s.slam, brain.Think())

	// slam holds the primary, hurt is next in line but also a primary
	s.clock.tick = 8
	s.Nil(brain.Think())
}

func TestNew_RequiresIDAndClock(t *testing.T) {
	reg := ability.NewRegistry()
	assert.Panics(t, func() { creature.New(&creature.Config{Registry: reg, Clock: &testClock{}}) })
	assert.Panics(t, func() { creature.New(&creature.Config{ID: "x", Registry: reg}) })
	assert.Panics(t, func() { creature.New(&creature.Config{ID: "x", Clock: &testClock{}}) })

	c := creature.New(&creature.Config{ID: "x", Clock: &testClock{}, Registry: reg})
	require.NotNil(t, c)
	assert.Equal(t, 1, c.MaxHealth())
}
