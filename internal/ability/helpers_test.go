package ability_test

import (
	"fmt"

	"github.com/KirkDiggler/ability-engine/internal/ability"
)

type testOwner struct {
	id      string
	alive   bool
	tick    ability.Tick
	charges int
}

func newTestOwner(id string) *testOwner {
	return &testOwner{id: id, alive: true}
}

func (o *testOwner) ID() string                { return o.id }
func (o *testOwner) IsAlive() bool             { return o.alive }
func (o *testOwner) CurrentTick() ability.Tick { return o.tick }

// recordingHooks logs every callback with the owner's tick
type recordingHooks struct {
	ability.BaseHooks
	owner *testOwner

	calls      []string
	ticksUsing []ability.Tick

	rejectUse   bool
	stopAtTick  ability.Tick
	stopEnabled bool
	onTickUsing func()
}

func (h *recordingHooks) record(format string, args ...any) {
	h.calls = append(h.calls, fmt.Sprintf("t%d:", h.owner.tick)+fmt.Sprintf(format, args...))
}

func (h *recordingHooks) CanUse() bool {
	return !h.rejectUse
}

func (h *recordingHooks) CanContinueUsing() bool {
	return !(h.stopEnabled && h.owner.tick >= h.stopAtTick)
}

func (h *recordingHooks) BeginSection(s ability.Section) {
	h.record("begin:%s", s.Kind)
}

func (h *recordingHooks) TickUsing() {
	h.ticksUsing = append(h.ticksUsing, h.owner.tick)
	h.record("tick_using")
	if h.onTickUsing != nil {
		h.onTickUsing()
	}
}

func (h *recordingHooks) EndSection(s ability.Section) {
	h.record("end:%s", s.Kind)
}

func (h *recordingHooks) Interrupt() {
	h.record("interrupt")
}

func (h *recordingHooks) Complete() {
	h.record("complete")
}

// runTicks sets the owner's tick and ticks the manager for each tick in
// [from, to], calling intent first as the AI layer would.
func runTicks(owner *testOwner, mgr *ability.Manager, from, to ability.Tick, intent func(tick ability.Tick)) {
	for tick := from; tick <= to; tick++ {
		owner.tick = tick
		if intent != nil {
			intent(tick)
		}
		mgr.Tick()
	}
}

func staticType(track *ability.Track, cooldown uint32, overlay bool, hooks ability.Hooks) *ability.Type {
	return ability.MustNewType(&ability.TypeConfig{
		Track:    track,
		Cooldown: cooldown,
		Overlay:  overlay,
		Factory:  func(ability.Owner) ability.Hooks { return hooks },
	})
}

// chargeHooks counts completed uses on the owner and persists the count
type chargeHooks struct {
	ability.BaseHooks
	owner *testOwner
}

func (h *chargeHooks) Complete() { h.owner.charges++ }

func (h *chargeHooks) SaveState() map[string]any {
	if h.owner.charges == 0 {
		return nil
	}
	return map[string]any{"charges": h.owner.charges}
}

func (h *chargeHooks) RestoreState(state map[string]any) {
	if n, ok := state["charges"].(int); ok {
		h.owner.charges = n
	}
}
