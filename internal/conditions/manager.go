// Package conditions tracks named status conditions on a creature and
// expires them as world events arrive.
package conditions

import (
	"fmt"
	"log"
	"sort"

	"github.com/KirkDiggler/ability-engine/internal/events"
)

// Condition is a named status with a lifetime
type Condition struct {
	Name     string
	Source   string
	Duration Duration
}

// Manager holds one creature's conditions. It implements
// events.EventListener so it can also be subscribed to a bus.
type Manager struct {
	ownerID    string
	conditions map[string]*Condition
}

// NewManager creates an empty condition set for an owner
func NewManager(ownerID string) *Manager {
	return &Manager{
		ownerID:    ownerID,
		conditions: make(map[string]*Condition),
	}
}

// Add applies a condition, replacing any existing one with the same name
func (m *Manager) Add(c *Condition) {
	if c == nil || c.Name == "" {
		return
	}
	if c.Duration == nil {
		c.Duration = &PermanentDuration{}
	}
	m.conditions[c.Name] = c
}

// Remove drops a condition by name
func (m *Manager) Remove(name string) {
	delete(m.conditions, name)
}

// Has reports whether an unexpired condition is present
func (m *Manager) Has(name string) bool {
	c, ok := m.conditions[name]
	return ok && !c.Duration.IsExpired()
}

// Get returns a condition by name
func (m *Manager) Get(name string) (*Condition, bool) {
	c, ok := m.conditions[name]
	if !ok || c.Duration.IsExpired() {
		return nil, false
	}
	return c, true
}

// Names returns the active condition names in sorted order
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.conditions))
	for name, c := range m.conditions {
		if !c.Duration.IsExpired() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ID implements events.EventListener
func (m *Manager) ID() string {
	return fmt.Sprintf("conditions_%s", m.ownerID)
}

// Priority implements events.EventListener
func (m *Manager) Priority() int {
	return events.PriorityGameplay
}

// HandleEvent lets every duration see the event, then drops the expired
// conditions
func (m *Manager) HandleEvent(event events.Event) error {
	m.Notify(event)
	return nil
}

// Notify is HandleEvent that also returns the names that expired
func (m *Manager) Notify(event events.Event) []string {
	for _, c := range m.conditions {
		c.Duration.OnEventOccurred(event)
	}

	var expired []string
	for name, c := range m.conditions {
		if c.Duration.IsExpired() {
			expired = append(expired, name)
			delete(m.conditions, name)
		}
	}
	sort.Strings(expired)

	for _, name := range expired {
		log.Printf("ConditionManager: %s lost expired condition %s", m.ownerID, name)
	}
	return expired
}
