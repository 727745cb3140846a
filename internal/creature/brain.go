package creature

import (
	"github.com/KirkDiggler/ability-engine/internal/ability"
)

// Brain is a minimal intent source: every Interval ticks it tries its
// priorities in order and stops at the first ability that starts.
type Brain struct {
	creature   *Creature
	priorities []*ability.Type
	interval   uint32
}

// NewBrain creates a brain for c. An interval of 0 thinks every tick.
func NewBrain(c *Creature, interval uint32, priorities ...*ability.Type) *Brain {
	return &Brain{
		creature:   c,
		priorities: priorities,
		interval:   interval,
	}
}

// Think requests at most one activation and returns the type started, if any
func (b *Brain) Think() *ability.Type {
	if b.interval > 1 && uint64(b.creature.CurrentTick())%uint64(b.interval) != 0 {
		return nil
	}

	mgr := b.creature.Manager()
	for _, t := range b.priorities {
		if mgr.TryUseAbility(t) {
			return t
		}
	}
	return nil
}
