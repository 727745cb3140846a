package ability

import (
	"fmt"

	"go.opentelemetry.io/otel/trace"
)

// State is the lifecycle state of an instance
type State int

const (
	StateIdle State = iota
	StateActive
	StateCompleted
	StateInterrupted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	case StateInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IsTerminal reports whether the instance has finished
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateInterrupted
}

// Instance is one activation of an ability type against one owner.
// It is owned by the slot that holds it and never outlives the activation.
type Instance struct {
	typ     *Type
	name    string
	ordinal int
	owner   Owner
	hooks   Hooks
	manager *Manager

	state          State
	sectionIndex   int
	sectionOpen    bool
	ticksInSection uint32
	ticksInUse     uint32
	activationTick Tick

	span trace.Span
}

func (i *Instance) Type() *Type            { return i.typ }
func (i *Instance) Name() string           { return i.name }
func (i *Instance) Owner() Owner           { return i.owner }
func (i *Instance) Hooks() Hooks           { return i.hooks }
func (i *Instance) State() State           { return i.state }
func (i *Instance) SectionIndex() int      { return i.sectionIndex }
func (i *Instance) TicksInSection() uint32 { return i.ticksInSection }
func (i *Instance) TicksInUse() uint32     { return i.ticksInUse }
func (i *Instance) ActivationTick() Tick   { return i.activationTick }
func (i *Instance) CooldownTicks() uint32  { return i.typ.cooldown }
func (i *Instance) Overlay() bool          { return i.typ.overlay }

// IsActive reports whether the instance is running
func (i *Instance) IsActive() bool {
	return i.state == StateActive
}

// Section returns the section the instance is in. After completion it
// returns the last section.
func (i *Instance) Section() Section {
	idx := i.sectionIndex
	if idx >= i.typ.track.Len() {
		idx = i.typ.track.Len() - 1
	}
	return i.typ.track.Section(idx)
}

// Interrupt ends the open section, runs the Interrupt hook and frees the
// slot. Calling it on an idle or finished instance does nothing.
func (i *Instance) Interrupt() {
	if i.state != StateActive {
		return
	}

	i.state = StateInterrupted
	i.closeSection()
	i.hooks.Interrupt()
	i.manager.release(i)
}

func (i *Instance) activate(tick Tick) {
	i.state = StateActive
	i.sectionIndex = 0
	i.ticksInSection = 0
	i.ticksInUse = 0
	i.activationTick = tick
	i.openSection()
}

// step advances the instance by one tick.
func (i *Instance) step() {
	if i.state != StateActive {
		return
	}

	if !i.hooks.CanContinueUsing() {
		i.Interrupt()
		return
	}

	sec := i.Section()
	if !sec.Duration.IsInstant() && i.ticksInSection >= sec.Duration.Ticks() {
		if !i.nextSection() {
			return
		}
	}

	i.ticksInUse++

	// An instant section runs and closes in this pass, and the section after
	// it gets its first tick here too. A second instant waits for the next pass.
	collapsed := false
	for i.state == StateActive {
		sec = i.Section()
		if sec.Duration.IsInstant() && collapsed {
			return
		}

		if sec.Kind == SectionActive {
			i.hooks.TickUsing()
			if i.state != StateActive {
				return
			}
		}

		if !sec.Duration.IsInstant() {
			i.ticksInSection++
			return
		}

		collapsed = true
		if !i.nextSection() {
			return
		}
	}
}

// nextSection closes the open section and opens the following one, or
// completes the instance. It returns false when the instance is no longer active.
func (i *Instance) nextSection() bool {
	i.closeSection()
	if i.state != StateActive {
		return false
	}

	i.sectionIndex++
	if i.sectionIndex >= i.typ.track.Len() {
		i.complete()
		return false
	}

	i.ticksInSection = 0
	i.openSection()
	return i.state == StateActive
}

func (i *Instance) openSection() {
	sec := i.typ.track.Section(i.sectionIndex)
	i.sectionOpen = true
	i.hooks.BeginSection(sec)
	i.manager.publishSection(i, sec, true)
}

func (i *Instance) closeSection() {
	if !i.sectionOpen {
		return
	}

	sec := i.typ.track.Section(i.sectionIndex)
	i.sectionOpen = false
	i.hooks.EndSection(sec)
	i.manager.publishSection(i, sec, false)
}

func (i *Instance) complete() {
	i.state = StateCompleted
	i.hooks.Complete()
	i.manager.release(i)
}
