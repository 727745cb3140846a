package events

// Ability lifecycle event types
const (
	EventTypeAbilityStarted     EventType = "ability.started"
	EventTypeSectionBegan       EventType = "ability.section_began"
	EventTypeSectionEnded       EventType = "ability.section_ended"
	EventTypeAbilityCompleted   EventType = "ability.completed"
	EventTypeAbilityInterrupted EventType = "ability.interrupted"

	// World and creature events
	EventTypeWorldTick       EventType = "world.tick"
	EventTypeCreatureDamaged EventType = "creature.damaged"
)

// Priority levels for listener ordering (lower runs first)
const (
	PriorityGameplay    = 100 // Owner state that other listeners read
	PriorityAnimation   = 200 // Clip selection
	PrioritySound       = 300 // Sound triggers
	PriorityDiagnostics = 500 // Logging, counters
)
