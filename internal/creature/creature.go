// Package creature holds the entities that own and run abilities.
package creature

import (
	"context"
	"log"

	"github.com/KirkDiggler/ability-engine/internal/ability"
	"github.com/KirkDiggler/ability-engine/internal/conditions"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/KirkDiggler/ability-engine/internal/events"
	"github.com/KirkDiggler/ability-engine/internal/script"
	"go.opentelemetry.io/otel/trace"
)

// Well-known flags set by the built-in abilities
const (
	FlagDying  = "dying"
	FlagCorpse = "corpse"
)

// Clock supplies the simulation tick
type Clock interface {
	CurrentTick() ability.Tick
}

// Reactions are abilities the creature starts on its own when damaged
type Reactions struct {
	Hurt *ability.Type
	Die  *ability.Type
}

// Config holds the dependencies of a Creature
type Config struct {
	ID        string
	Name      string
	MaxHealth int
	Clock     Clock
	Registry  *ability.Registry

	// Optional
	Reactions Reactions
	Publisher ability.Publisher
	Tracer    trace.Tracer
	Context   context.Context
}

// Creature is an ability owner with health, a target and a set of
// conditions that abilities apply. Not safe for concurrent use.
type Creature struct {
	id         string
	name       string
	maxHealth  int
	health     int
	phase      int
	conditions *conditions.Manager
	target     *Creature
	clock      Clock
	reactions  Reactions
	manager    *ability.Manager
}

// New creates a creature at full health
func New(cfg *Config) *Creature {
	if cfg == nil || cfg.ID == "" {
		panic("creature requires an ID")
	}
	if cfg.Clock == nil {
		panic("creature requires a clock")
	}

	maxHealth := cfg.MaxHealth
	if maxHealth <= 0 {
		maxHealth = 1
	}

	c := &Creature{
		id:         cfg.ID,
		name:       cfg.Name,
		maxHealth:  maxHealth,
		health:     maxHealth,
		conditions: conditions.NewManager(cfg.ID),
		clock:      cfg.Clock,
		reactions:  cfg.Reactions,
	}
	if c.name == "" {
		c.name = cfg.ID
	}

	c.manager = ability.NewManager(&ability.ManagerConfig{
		Owner:     c,
		Registry:  cfg.Registry,
		Publisher: cfg.Publisher,
		Tracer:    cfg.Tracer,
		Context:   cfg.Context,
	})

	return c
}

func (c *Creature) ID() string                { return c.id }
func (c *Creature) Name() string              { return c.name }
func (c *Creature) IsAlive() bool             { return c.health > 0 }
func (c *Creature) CurrentTick() ability.Tick { return c.clock.CurrentTick() }
func (c *Creature) Manager() *ability.Manager { return c.manager }
func (c *Creature) Health() int               { return c.health }
func (c *Creature) MaxHealth() int            { return c.maxHealth }
func (c *Creature) Phase() int                { return c.phase }
func (c *Creature) Target() *Creature         { return c.target }

// SetTarget sets the creature's current target; nil clears it
func (c *Creature) SetTarget(target *Creature) {
	if target == c {
		return
	}
	c.target = target
}

// HasLiveTarget reports whether the target exists and is alive
func (c *Creature) HasLiveTarget() bool {
	return c.target != nil && c.target.IsAlive()
}

// Flag reports whether a condition is present
func (c *Creature) Flag(name string) bool {
	return c.conditions.Has(name)
}

// SetFlag applies a permanent condition or removes it
func (c *Creature) SetFlag(name string, value bool) {
	if value {
		c.conditions.Add(&conditions.Condition{Name: name})
		return
	}
	c.conditions.Remove(name)
}

// SetFlagFor applies a condition that wears off after ticks world ticks
func (c *Creature) SetFlagFor(name string, ticks int) {
	if ticks <= 0 {
		c.SetFlag(name, true)
		return
	}
	c.conditions.Add(&conditions.Condition{Name: name, Duration: conditions.NewTicksDuration(ticks)})
}

// AddCondition applies a condition with an arbitrary duration
func (c *Creature) AddCondition(cond *conditions.Condition) {
	c.conditions.Add(cond)
}

// Flags returns the names of the present conditions in sorted order
func (c *Creature) Flags() []string {
	return c.conditions.Names()
}

// AdvanceConditions counts down timed conditions for a new world tick
func (c *Creature) AdvanceConditions(tick ability.Tick) {
	c.conditions.Notify(events.NewTickEvent(uint64(tick)))
}

// AdvancePhase moves the creature to its next combat phase
func (c *Creature) AdvancePhase() int {
	c.phase++
	return c.phase
}

// SetPhase puts the creature in a given combat phase, as when restoring a save
func (c *Creature) SetPhase(phase int) {
	c.phase = max(phase, 0)
}

// HealthPercent returns current health as a percentage of max
func (c *Creature) HealthPercent() int {
	return c.health * 100 / c.maxHealth
}

// Heal restores health up to the maximum. The dead stay dead.
func (c *Creature) Heal(amount int) {
	if amount <= 0 || !c.IsAlive() {
		return
	}
	c.health = min(c.health+amount, c.maxHealth)
}

// TakeDamage lowers health and starts the hurt or die reaction. A hurt
// reaction that is off cooldown interrupts whatever primary is running.
func (c *Creature) TakeDamage(amount int) {
	if amount <= 0 || !c.IsAlive() {
		return
	}

	c.health = max(c.health-amount, 0)
	c.conditions.Notify(events.NewDamageEvent(c.id, amount, !c.IsAlive()))
	if !c.IsAlive() {
		log.Printf("Creature: %s (%s) died", c.name, c.id)
		c.manager.InterruptAll()
		if c.reactions.Die != nil {
			c.manager.TryUseAbility(c.reactions.Die)
		}
		return
	}

	hurt := c.reactions.Hurt
	if hurt == nil || c.manager.CooldownRemaining(hurt) > 0 || c.manager.IsAbilityActive(hurt) {
		return
	}
	if primary := c.manager.Primary(); primary != nil && !hurt.Overlay() {
		primary.Interrupt()
	}
	c.manager.TryUseAbility(hurt)
}

// ScriptAttributes exposes creature state to ability scripts
func (c *Creature) ScriptAttributes() map[string]any {
	names := c.conditions.Names()
	flags := make(map[string]any, len(names))
	for _, name := range names {
		flags[name] = true
	}

	attrs := map[string]any{
		"name":         c.name,
		"health":       c.health,
		"max_health":   c.maxHealth,
		"phase":        c.phase,
		"flags":        flags,
		"has_target":   c.target != nil,
		"target_alive": c.HasLiveTarget(),
	}
	if c.target != nil {
		attrs["target_id"] = c.target.id
		attrs["target_health"] = c.target.health
	}
	return attrs
}

// ApplyCommand carries out a command issued by an ability script
func (c *Creature) ApplyCommand(cmd script.Command) error {
	switch cmd.Op {
	case "set_flag":
		name := cmd.String("name")
		if name == "" {
			return apperr.InvalidArgument("set_flag requires a name")
		}
		c.applyFlag(name, cmd)
	case "set_target_flag":
		name := cmd.String("name")
		if name == "" {
			return apperr.InvalidArgument("set_target_flag requires a name")
		}
		if c.target == nil {
			return apperr.NotFoundf("%s has no target", c.id)
		}
		c.target.applyFlag(name, cmd)
	case "damage_target":
		if c.target == nil {
			return apperr.NotFoundf("%s has no target", c.id)
		}
		c.target.TakeDamage(cmd.Int("amount", 0))
	case "heal":
		c.Heal(cmd.Int("amount", 0))
	case "advance_phase":
		c.AdvancePhase()
	default:
		return apperr.InvalidArgumentf("unknown command %q", cmd.Op)
	}
	return nil
}

// applyFlag handles the value and ticks args shared by the flag commands
func (c *Creature) applyFlag(name string, cmd script.Command) {
	if !cmd.Bool("value", true) {
		c.SetFlag(name, false)
		return
	}
	c.SetFlagFor(name, cmd.Int("ticks", 0))
}
