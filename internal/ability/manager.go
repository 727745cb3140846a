package ability

import (
	"context"
	"log"
	"time"

	"github.com/KirkDiggler/ability-engine/internal/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Publisher receives lifecycle events
type Publisher interface {
	Emit(event events.Event) error
}

// ManagerConfig holds the dependencies of a Manager
type ManagerConfig struct {
	Owner    Owner
	Registry *Registry

	// Optional
	Publisher Publisher
	Tracer    trace.Tracer
	Context   context.Context
}

// Manager is the per-entity combat manager. It owns the primary slot, the
// overlay instances and the cooldown ledger, and drives every running
// instance once per tick. It is not safe for concurrent use; the world loop
// is its only caller.
//
// An instance gets its first pass on the next call to Tick. An activation
// made after Tick already ran for the current tick counts from the next
// tick: its activation tick, and so its cooldown, start there too. Every
// track therefore spans the same ticks from its activation tick whether the
// request came before or after the owner was ticked.
type Manager struct {
	owner     Owner
	registry  *Registry
	publisher Publisher
	tracer    trace.Tracer
	ctx       context.Context

	primary   *Instance
	overlays  []*Instance // sorted by registration ordinal
	cooldowns map[*Type]Tick

	known      map[*Type]registration
	lastTick   Tick
	tickedOnce bool
}

// NewManager creates a manager for one owner
func NewManager(cfg *ManagerConfig) *Manager {
	if cfg == nil || cfg.Owner == nil {
		panic("combat manager requires an owner")
	}
	if cfg.Registry == nil {
		panic("combat manager requires an ability registry")
	}

	m := &Manager{
		owner:     cfg.Owner,
		registry:  cfg.Registry,
		publisher: cfg.Publisher,
		tracer:    cfg.Tracer,
		ctx:       cfg.Context,
		cooldowns: make(map[*Type]Tick),
		known:     make(map[*Type]registration),
	}

	if m.tracer == nil {
		m.tracer = noop.NewTracerProvider().Tracer("ability")
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}

	return m
}

// Owner returns the entity this manager belongs to
func (m *Manager) Owner() Owner {
	return m.owner
}

// TryUseAbility activates t if its cooldown has expired, its slot is free
// and its CanUse hook agrees. A rejected request has no side effects.
func (m *Manager) TryUseAbility(t *Type) bool {
	if t == nil {
		return false
	}

	reg, ok := m.lookup(t)
	if !ok {
		log.Printf("CombatManager: %s rejected an unregistered ability type", m.owner.ID())
		return false
	}
	name := reg.name

	now := m.owner.CurrentTick()
	start := now
	if m.tickedOnce && m.lastTick >= now {
		start = m.lastTick + 1
	}

	if expiry, onCooldown := m.cooldowns[t]; onCooldown {
		if expiry > start {
			return false
		}
		delete(m.cooldowns, t)
	}

	if !t.usableWhenDead && !m.owner.IsAlive() {
		return false
	}

	if t.overlay {
		if m.overlayOf(t) != nil {
			return false
		}
	} else if m.primary != nil {
		return false
	}

	hooks := t.factory(m.owner)
	if hooks == nil {
		log.Printf("CombatManager: factory for %s returned no hooks for %s", name, m.owner.ID())
		return false
	}
	if !hooks.CanUse() {
		return false
	}

	inst := &Instance{
		typ:     t,
		name:    name,
		ordinal: reg.ordinal,
		owner:   m.owner,
		hooks:   hooks,
		manager: m,
	}

	if t.overlay {
		m.insertOverlay(inst)
	} else {
		m.primary = inst
	}

	_, inst.span = m.tracer.Start(m.ctx, "ability.activation",
		trace.WithAttributes(
			attribute.String("entity.id", m.owner.ID()),
			attribute.String("ability.name", name),
			attribute.Bool("ability.overlay", t.overlay),
			attribute.Int64("ability.activation_tick", int64(start)),
		),
	)

	started := events.NewAbilityEvent(events.EventTypeAbilityStarted, m.owner.ID(), name, uint64(now))
	started.Overlay = t.overlay
	m.publish(started)

	inst.activate(start)
	return true
}

// IsAbilityActive reports whether an instance of t is running in either slot
func (m *Manager) IsAbilityActive(t *Type) bool {
	return m.activeOf(t) != nil
}

// ForceEndAbility interrupts the running instance of t, if any
func (m *Manager) ForceEndAbility(t *Type) {
	if inst := m.activeOf(t); inst != nil {
		inst.Interrupt()
	}
}

// InterruptAll interrupts the primary and every overlay
func (m *Manager) InterruptAll() {
	if m.primary != nil {
		m.primary.Interrupt()
	}
	for _, inst := range m.Overlays() {
		inst.Interrupt()
	}
}

// Tick advances the primary, then each overlay in registration order.
// A dead owner first loses every ability that is not usable when dead.
func (m *Manager) Tick() {
	m.lastTick = m.owner.CurrentTick()
	m.tickedOnce = true

	if !m.owner.IsAlive() {
		m.interruptForDeath()
	}

	if m.primary != nil {
		m.primary.step()
	}

	for _, inst := range m.Overlays() {
		inst.step()
	}
}

// Primary returns the instance in the primary slot, or nil
func (m *Manager) Primary() *Instance {
	return m.primary
}

// Overlays returns the running overlay instances in tick order
func (m *Manager) Overlays() []*Instance {
	out := make([]*Instance, len(m.overlays))
	copy(out, m.overlays)
	return out
}

// CooldownRemaining returns the ticks left before t can be activated again
func (m *Manager) CooldownRemaining(t *Type) uint32 {
	expiry, ok := m.cooldowns[t]
	if !ok {
		return 0
	}

	now := m.owner.CurrentTick()
	if expiry <= now {
		return 0
	}
	return uint32(expiry - now)
}

// Snapshot captures the remaining cooldowns and the state of every
// Persistent ability. Callers interrupt running abilities first; they are
// not part of the snapshot.
func (m *Manager) Snapshot() *Snapshot {
	now := m.owner.CurrentTick()
	snap := &Snapshot{
		EntityID:  m.owner.ID(),
		SavedTick: now,
		Cooldowns: make(map[string]uint32),
		SavedAt:   time.Now().UTC(),
	}

	for _, t := range m.registry.Types() {
		p, ok := t.factory(m.owner).(Persistent)
		if !ok {
			continue
		}
		state := p.SaveState()
		if len(state) == 0 {
			continue
		}
		name, _ := m.registry.Name(t)
		if snap.State == nil {
			snap.State = make(map[string]map[string]any)
		}
		snap.State[name] = state
	}

	for t, expiry := range m.cooldowns {
		if expiry <= now {
			continue
		}
		name, ok := m.registry.Name(t)
		if !ok {
			continue
		}
		snap.Cooldowns[name] = uint32(expiry - now)
	}

	return snap
}

// Restore re-arms the cooldowns of a snapshot relative to the owner's
// current tick and hands saved state back to Persistent abilities. Names
// the registry no longer knows are skipped.
func (m *Manager) Restore(snap *Snapshot) {
	if snap == nil {
		return
	}

	now := m.owner.CurrentTick()
	for name, remaining := range snap.Cooldowns {
		t, ok := m.registry.Get(name)
		if !ok {
			log.Printf("CombatManager: %s skipping cooldown for unknown ability %q", m.owner.ID(), name)
			continue
		}
		if remaining == 0 {
			continue
		}
		m.cooldowns[t] = now + Tick(remaining)
	}

	for name, state := range snap.State {
		t, ok := m.registry.Get(name)
		if !ok {
			log.Printf("CombatManager: %s skipping state for unknown ability %q", m.owner.ID(), name)
			continue
		}
		if p, ok := t.factory(m.owner).(Persistent); ok {
			p.RestoreState(state)
		}
	}
}

// lookup resolves the registration of t once per manager
func (m *Manager) lookup(t *Type) (registration, bool) {
	if reg, ok := m.known[t]; ok {
		return reg, true
	}

	name, ok := m.registry.Name(t)
	if !ok {
		return registration{}, false
	}
	ordinal, _ := m.registry.Ordinal(t)
	reg := registration{name: name, ordinal: ordinal}
	m.known[t] = reg
	return reg, true
}

func (m *Manager) activeOf(t *Type) *Instance {
	if t == nil {
		return nil
	}
	if m.primary != nil && m.primary.typ == t && m.primary.IsActive() {
		return m.primary
	}
	if inst := m.overlayOf(t); inst != nil && inst.IsActive() {
		return inst
	}
	return nil
}

func (m *Manager) overlayOf(t *Type) *Instance {
	for _, inst := range m.overlays {
		if inst.typ == t {
			return inst
		}
	}
	return nil
}

func (m *Manager) insertOverlay(inst *Instance) {
	pos := len(m.overlays)
	for i, existing := range m.overlays {
		if inst.ordinal < existing.ordinal {
			pos = i
			break
		}
	}

	m.overlays = append(m.overlays, nil)
	copy(m.overlays[pos+1:], m.overlays[pos:])
	m.overlays[pos] = inst
}

func (m *Manager) interruptForDeath() {
	if m.primary != nil && !m.primary.typ.usableWhenDead {
		log.Printf("CombatManager: %s died, interrupting %s", m.owner.ID(), m.primary.name)
		m.primary.Interrupt()
	}
	for _, inst := range m.Overlays() {
		if !inst.typ.usableWhenDead {
			inst.Interrupt()
		}
	}
}

// release vacates the slot of a finished instance and stamps its cooldown
// from the activation tick.
func (m *Manager) release(inst *Instance) {
	if m.primary == inst {
		m.primary = nil
	} else {
		for i, existing := range m.overlays {
			if existing == inst {
				m.overlays = append(m.overlays[:i:i], m.overlays[i+1:]...)
				break
			}
		}
	}

	if inst.typ.cooldown > 0 {
		m.cooldowns[inst.typ] = inst.activationTick + Tick(inst.typ.cooldown)
	}

	now := m.owner.CurrentTick()
	eventType := events.EventTypeAbilityCompleted
	if inst.state == StateInterrupted {
		eventType = events.EventTypeAbilityInterrupted
	}
	finished := events.NewAbilityEvent(eventType, m.owner.ID(), inst.name, uint64(now))
	finished.Overlay = inst.typ.overlay
	finished.SectionIndex = min(inst.sectionIndex, inst.typ.track.Len()-1)
	finished.TicksInUse = inst.ticksInUse
	m.publish(finished)

	if inst.span != nil {
		inst.span.SetAttributes(
			attribute.String("ability.outcome", inst.state.String()),
			attribute.Int64("ability.ticks_in_use", int64(inst.ticksInUse)),
		)
		inst.span.End()
	}
}

func (m *Manager) publishSection(inst *Instance, sec Section, began bool) {
	if m.publisher == nil {
		return
	}

	eventType := events.EventTypeSectionEnded
	if began {
		eventType = events.EventTypeSectionBegan
	}
	ev := events.NewAbilityEvent(eventType, m.owner.ID(), inst.name, uint64(m.owner.CurrentTick()))
	ev.Overlay = inst.typ.overlay
	ev.Section = sec.Kind.String()
	ev.SectionIndex = inst.sectionIndex
	ev.TicksInUse = inst.ticksInUse
	m.publish(ev)
}

func (m *Manager) publish(ev events.Event) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Emit(ev); err != nil {
		log.Printf("CombatManager: failed to publish %s for %s: %v", ev.GetType(), m.owner.ID(), err)
	}
}
