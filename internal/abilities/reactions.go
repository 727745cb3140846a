package abilities

import (
	"github.com/KirkDiggler/ability-engine/internal/ability"
	"github.com/KirkDiggler/ability-engine/internal/catalog"
	"github.com/KirkDiggler/ability-engine/internal/conditions"
	"github.com/KirkDiggler/ability-engine/internal/creature"
)

// phase moves a creature into its next combat phase once health drops
// below a threshold
type phase struct {
	ability.BaseHooks
	owner        *creature.Creature
	belowPercent int
	maxPhase     int
}

func phaseBehavior(params catalog.Params) (ability.Factory, error) {
	belowPercent := params.Int("below_percent", 50)
	maxPhase := params.Int("max_phase", 1)

	return forCreature(func(c *creature.Creature) ability.Hooks {
		return &phase{owner: c, belowPercent: belowPercent, maxPhase: maxPhase}
	}), nil
}

func (h *phase) CanUse() bool {
	return h.owner.Phase() < h.maxPhase && h.owner.HealthPercent() < h.belowPercent
}

func (h *phase) TickUsing() {
	h.owner.AdvancePhase()
}

// SaveState keeps the phase reached so a reloaded boss does not shift again
func (h *phase) SaveState() map[string]any {
	if h.owner.Phase() == 0 {
		return nil
	}
	return map[string]any{"phase": h.owner.Phase()}
}

func (h *phase) RestoreState(state map[string]any) {
	h.owner.SetPhase(catalog.Params(state).Int("phase", 0))
}

// flinch staggers the owner for the length of the reaction
type flinch struct {
	ability.BaseHooks
	owner *creature.Creature
	flag  string
}

func flinchBehavior(params catalog.Params) (ability.Factory, error) {
	flag := params.String("flag", "staggered")

	return forCreature(func(c *creature.Creature) ability.Hooks {
		return &flinch{owner: c, flag: flag}
	}), nil
}

func (h *flinch) BeginSection(s ability.Section) {
	if s.Kind == ability.SectionActive {
		h.owner.SetFlag(h.flag, true)
	}
}

func (h *flinch) Complete()  { h.owner.SetFlag(h.flag, false) }
func (h *flinch) Interrupt() { h.owner.SetFlag(h.flag, false) }

// death plays out the dying animation and leaves a corpse
type death struct {
	ability.BaseHooks
	owner *creature.Creature
}

func deathBehavior(catalog.Params) (ability.Factory, error) {
	return forCreature(func(c *creature.Creature) ability.Hooks {
		return &death{owner: c}
	}), nil
}

func (h *death) CanUse() bool { return !h.owner.IsAlive() }

func (h *death) BeginSection(s ability.Section) {
	if s.Kind == ability.SectionActive {
		h.owner.SetFlag(creature.FlagDying, true)
	}
}

func (h *death) Complete() {
	h.owner.SetFlag(creature.FlagDying, false)
	h.owner.SetFlag(creature.FlagCorpse, true)
}

// sleep idles until something gives the owner a target or wakes it with
// damage
type sleep struct {
	ability.BaseHooks
	owner    *creature.Creature
	flag     string
	sleeping bool
}

func sleepBehavior(params catalog.Params) (ability.Factory, error) {
	flag := params.String("flag", "asleep")

	return forCreature(func(c *creature.Creature) ability.Hooks {
		return &sleep{owner: c, flag: flag}
	}), nil
}

func (h *sleep) CanUse() bool { return !h.owner.HasLiveTarget() }

func (h *sleep) CanContinueUsing() bool {
	if h.sleeping && !h.owner.Flag(h.flag) {
		return false
	}
	return !h.owner.HasLiveTarget()
}

func (h *sleep) BeginSection(s ability.Section) {
	if s.Kind != ability.SectionActive {
		return
	}
	h.sleeping = true
	h.owner.AddCondition(&conditions.Condition{
		Name:     h.flag,
		Source:   "sleep",
		Duration: &conditions.UntilDamagedDuration{},
	})
}

func (h *sleep) EndSection(s ability.Section) {
	if s.Kind == ability.SectionActive {
		h.sleeping = false
		h.owner.SetFlag(h.flag, false)
	}
}

func (h *sleep) Interrupt() { h.owner.SetFlag(h.flag, false) }
