// Package abilities implements the built-in ability behaviors that catalog
// entries refer to by name.
package abilities

import (
	"log"

	"github.com/KirkDiggler/ability-engine/internal/ability"
	"github.com/KirkDiggler/ability-engine/internal/catalog"
	"github.com/KirkDiggler/ability-engine/internal/creature"
	"github.com/KirkDiggler/ability-engine/internal/dice"
)

// Behavior names used in the catalog
const (
	BehaviorStrike  = "strike"
	BehaviorChannel = "channel"
	BehaviorAura    = "aura"
	BehaviorPhase   = "phase"
	BehaviorFlinch  = "flinch"
	BehaviorDeath   = "death"
	BehaviorSleep   = "sleep"
)

// Behaviors returns every built-in behavior, rolling damage with roller
func Behaviors(roller dice.Roller) map[string]catalog.Behavior {
	if roller == nil {
		panic("abilities require a dice roller")
	}

	return map[string]catalog.Behavior{
		BehaviorStrike:  strikeBehavior(roller),
		BehaviorChannel: channelBehavior(roller),
		BehaviorAura:    auraBehavior,
		BehaviorPhase:   phaseBehavior,
		BehaviorFlinch:  flinchBehavior,
		BehaviorDeath:   deathBehavior,
		BehaviorSleep:   sleepBehavior,
	}
}

// forCreature adapts a creature-only hooks constructor to ability.Factory.
// Other owners get no hooks, which the manager treats as a rejection.
func forCreature(build func(c *creature.Creature) ability.Hooks) ability.Factory {
	return func(owner ability.Owner) ability.Hooks {
		c, ok := owner.(*creature.Creature)
		if !ok {
			return nil
		}
		return build(c)
	}
}

// rollDamage rolls expr, logging and returning 0 on failure
func rollDamage(roller dice.Roller, expr dice.Expression, who string) int {
	result, err := expr.Roll(roller)
	if err != nil {
		log.Printf("Abilities: %s failed to roll %s: %v", who, expr, err)
		return 0
	}
	return max(result.Total, 0)
}
