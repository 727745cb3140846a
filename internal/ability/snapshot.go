package ability

import "time"

// Snapshot is the persisted part of a manager: remaining cooldown ticks
// and the fields of Persistent abilities, both keyed by ability name.
// Running abilities are interrupted before a save and never resumed.
type Snapshot struct {
	EntityID  string                    `json:"entity_id"`
	WorldID   string                    `json:"world_id,omitempty"`
	SavedTick Tick                      `json:"saved_tick"`
	Cooldowns map[string]uint32         `json:"cooldowns"`
	State     map[string]map[string]any `json:"state,omitempty"`
	SavedAt   time.Time                 `json:"saved_at"`
}
