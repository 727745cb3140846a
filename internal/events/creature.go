package events

// TickEvent marks the start of a simulation tick
type TickEvent struct {
	BaseEvent
	Tick uint64
}

// NewTickEvent creates a world tick event
func NewTickEvent(tick uint64) *TickEvent {
	return &TickEvent{
		BaseEvent: BaseEvent{Type: EventTypeWorldTick},
		Tick:      tick,
	}
}

// DamageEvent reports damage a creature took
type DamageEvent struct {
	BaseEvent
	EntityID string
	Amount   int
	Lethal   bool
}

// NewDamageEvent creates a creature damaged event
func NewDamageEvent(entityID string, amount int, lethal bool) *DamageEvent {
	return &DamageEvent{
		BaseEvent: BaseEvent{Type: EventTypeCreatureDamaged},
		EntityID:  entityID,
		Amount:    amount,
		Lethal:    lethal,
	}
}
