package abilities

import (
	"github.com/KirkDiggler/ability-engine/internal/ability"
	"github.com/KirkDiggler/ability-engine/internal/catalog"
	"github.com/KirkDiggler/ability-engine/internal/creature"
	"github.com/KirkDiggler/ability-engine/internal/dice"
)

// channel damages the target on every active tick and holds a flag on the
// owner while it does. Losing the target breaks the channel.
type channel struct {
	ability.BaseHooks
	owner  *creature.Creature
	roller dice.Roller
	damage dice.Expression
	flag   string
}

func channelBehavior(roller dice.Roller) catalog.Behavior {
	return func(params catalog.Params) (ability.Factory, error) {
		damage, err := params.Dice("damage", "1d4")
		if err != nil {
			return nil, err
		}
		flag := params.String("flag", "channeling")

		return forCreature(func(c *creature.Creature) ability.Hooks {
			return &channel{owner: c, roller: roller, damage: damage, flag: flag}
		}), nil
	}
}

func (h *channel) CanUse() bool           { return h.owner.HasLiveTarget() }
func (h *channel) CanContinueUsing() bool { return h.owner.HasLiveTarget() }

func (h *channel) BeginSection(s ability.Section) {
	if s.Kind == ability.SectionActive {
		h.owner.SetFlag(h.flag, true)
	}
}

func (h *channel) TickUsing() {
	if target := h.owner.Target(); target != nil {
		target.TakeDamage(rollDamage(h.roller, h.damage, h.owner.ID()))
	}
}

func (h *channel) EndSection(s ability.Section) {
	if s.Kind == ability.SectionActive {
		h.owner.SetFlag(h.flag, false)
	}
}

func (h *channel) Interrupt() {
	h.owner.SetFlag(h.flag, false)
}
