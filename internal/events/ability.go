package events

// AbilityEvent describes one step of an ability's lifecycle. Presentation
// layers use it to pick clips and sounds; the engine does not care whether
// anything listens.
type AbilityEvent struct {
	BaseEvent
	EntityID     string
	Ability      string
	Overlay      bool
	Tick         uint64
	Section      string // startup, active, recovery; empty for start/finish events
	SectionIndex int
	TicksInUse   uint32
}

// NewAbilityEvent creates an ability event of the given type
func NewAbilityEvent(eventType EventType, entityID, ability string, tick uint64) *AbilityEvent {
	return &AbilityEvent{
		BaseEvent: BaseEvent{Type: eventType},
		EntityID:  entityID,
		Ability:   ability,
		Tick:      tick,
	}
}
