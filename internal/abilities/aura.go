package abilities

import (
	"github.com/KirkDiggler/ability-engine/internal/ability"
	"github.com/KirkDiggler/ability-engine/internal/catalog"
	"github.com/KirkDiggler/ability-engine/internal/creature"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// aura holds a flag on the owner for its whole active section and marks the
// target every pulse ticks, for targetTicks ticks when set. It is meant to
// run as an overlay.
type aura struct {
	ability.BaseHooks
	owner       *creature.Creature
	flag        string
	targetFlag  string
	targetTicks int
	pulse       int
	ticks       int
}

func auraBehavior(params catalog.Params) (ability.Factory, error) {
	pulse := params.Int("pulse", 1)
	if pulse < 1 {
		return nil, apperr.InvalidArgumentf("aura pulse must be positive, got %d", pulse)
	}
	flag := params.String("flag", "aura")
	targetFlag := params.String("target_flag", "")
	targetTicks := params.Int("target_ticks", 0)

	return forCreature(func(c *creature.Creature) ability.Hooks {
		return &aura{owner: c, flag: flag, targetFlag: targetFlag, targetTicks: targetTicks, pulse: pulse}
	}), nil
}

func (h *aura) BeginSection(s ability.Section) {
	if s.Kind == ability.SectionActive {
		h.owner.SetFlag(h.flag, true)
	}
}

func (h *aura) TickUsing() {
	h.ticks++
	if h.targetFlag == "" || (h.ticks-1)%h.pulse != 0 {
		return
	}
	if h.owner.HasLiveTarget() {
		h.owner.Target().SetFlagFor(h.targetFlag, h.targetTicks)
	}
}

func (h *aura) EndSection(s ability.Section) {
	if s.Kind == ability.SectionActive {
		h.owner.SetFlag(h.flag, false)
	}
}

func (h *aura) Interrupt() {
	h.owner.SetFlag(h.flag, false)
}
