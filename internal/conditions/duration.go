package conditions

import (
	"fmt"

	"github.com/KirkDiggler/ability-engine/internal/events"
)

// Duration defines how long a condition lasts
type Duration interface {
	IsExpired() bool
	OnEventOccurred(event events.Event)
	String() string
}

// PermanentDuration never expires; something has to remove the condition
type PermanentDuration struct{}

func (d *PermanentDuration) IsExpired() bool                    { return false }
func (d *PermanentDuration) OnEventOccurred(event events.Event) {}
func (d *PermanentDuration) String() string                     { return "permanent" }

// TicksDuration lasts for a number of world ticks
type TicksDuration struct {
	Ticks     int
	remaining int
}

func NewTicksDuration(ticks int) *TicksDuration {
	return &TicksDuration{
		Ticks:     ticks,
		remaining: ticks,
	}
}

func (d *TicksDuration) IsExpired() bool { return d.remaining <= 0 }

func (d *TicksDuration) OnEventOccurred(event events.Event) {
	if event.GetType() == events.EventTypeWorldTick {
		d.remaining--
	}
}

func (d *TicksDuration) String() string {
	return fmt.Sprintf("%d ticks remaining", d.remaining)
}

// UntilDamagedDuration lasts until the holder takes damage
type UntilDamagedDuration struct {
	expired bool
}

func (d *UntilDamagedDuration) IsExpired() bool { return d.expired }

func (d *UntilDamagedDuration) OnEventOccurred(event events.Event) {
	if dmg, ok := event.(*events.DamageEvent); ok && dmg.Amount > 0 {
		d.expired = true
	}
}

func (d *UntilDamagedDuration) String() string { return "until damaged" }
