package abilities

import (
	"github.com/KirkDiggler/ability-engine/internal/ability"
	"github.com/KirkDiggler/ability-engine/internal/catalog"
	"github.com/KirkDiggler/ability-engine/internal/creature"
	"github.com/KirkDiggler/ability-engine/internal/dice"
)

// strike lands one hit on the target during its first active tick
type strike struct {
	ability.BaseHooks
	owner  *creature.Creature
	roller dice.Roller
	damage dice.Expression
	landed bool
}

func strikeBehavior(roller dice.Roller) catalog.Behavior {
	return func(params catalog.Params) (ability.Factory, error) {
		damage, err := params.Dice("damage", "1d4")
		if err != nil {
			return nil, err
		}

		return forCreature(func(c *creature.Creature) ability.Hooks {
			return &strike{owner: c, roller: roller, damage: damage}
		}), nil
	}
}

func (s *strike) CanUse() bool {
	return s.owner.HasLiveTarget()
}

func (s *strike) TickUsing() {
	if s.landed {
		return
	}
	s.landed = true

	target := s.owner.Target()
	if target == nil || !target.IsAlive() {
		return
	}
	target.TakeDamage(rollDamage(s.roller, s.damage, s.owner.ID()))
}
