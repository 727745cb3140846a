package ability

//go:generate mockgen -destination=mock/mock_hooks.go -package=mockability -source=hooks.go

// Tick is one step of the fixed-rate simulation loop
type Tick uint64

// Owner is the entity an ability runs against
type Owner interface {
	// ID returns the entity identifier used in events and snapshots
	ID() string

	// IsAlive reports whether the owner is alive
	IsAlive() bool

	// CurrentTick returns the simulation tick used for cooldown stamping
	CurrentTick() Tick
}

// Hooks is the fixed set of callbacks a concrete ability implements.
// Every call must return within the current tick.
type Hooks interface {
	// CanUse is checked once when the ability is activated
	CanUse() bool

	// CanContinueUsing is checked on every tick while the ability runs;
	// false interrupts the ability
	CanContinueUsing() bool

	// BeginSection is called when a section opens
	BeginSection(section Section)

	// TickUsing is called on every tick an Active section is open
	TickUsing()

	// EndSection is called exactly once for every section that opened
	EndSection(section Section)

	// Interrupt is called after the open section ended because of an interruption
	Interrupt()

	// Complete is called after the last section ended normally
	Complete()
}

// Persistent is implemented by hooks whose ability keeps mutable fields on
// its owner that must survive a save. The manager builds a fresh hooks value
// to call it, so both methods read and write the owner, never the instance.
type Persistent interface {
	// SaveState returns the fields to store; an empty map stores nothing
	SaveState() map[string]any

	// RestoreState applies fields returned by an earlier SaveState
	RestoreState(state map[string]any)
}

// BaseHooks provides permissive no-op defaults for embedding
type BaseHooks struct{}

func (BaseHooks) CanUse() bool           { return true }
func (BaseHooks) CanContinueUsing() bool { return true }
func (BaseHooks) BeginSection(Section)   {}
func (BaseHooks) TickUsing()             {}
func (BaseHooks) EndSection(Section)     {}
func (BaseHooks) Interrupt()             {}
func (BaseHooks) Complete()              {}
