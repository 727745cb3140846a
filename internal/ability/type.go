package ability

import (
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// Factory builds the hooks for one activation against one owner
type Factory func(owner Owner) Hooks

// TypeConfig holds the static definition of an ability type
type TypeConfig struct {
	Track *Track

	// Cooldown in ticks, counted from the activation tick
	Cooldown uint32

	// Overlay abilities run beside the primary slot, one instance per type
	Overlay bool

	// UsableWhenDead abilities (death reactions) ignore the owner's alive state
	UsableWhenDead bool

	Factory Factory
}

// Type is an immutable ability definition. Identity is the pointer;
// the name lives in the Registry.
type Type struct {
	track          *Track
	cooldown       uint32
	overlay        bool
	usableWhenDead bool
	factory        Factory
}

// NewType validates the config and creates a Type
func NewType(cfg *TypeConfig) (*Type, error) {
	if cfg == nil {
		return nil, apperr.InvalidArgument("type config cannot be nil")
	}
	if cfg.Track == nil || cfg.Track.Len() == 0 {
		return nil, apperr.Validation("ability type requires a non-empty track")
	}
	if cfg.Factory == nil {
		return nil, apperr.Validation("ability type requires a factory")
	}

	return &Type{
		track:          cfg.Track,
		cooldown:       cfg.Cooldown,
		overlay:        cfg.Overlay,
		usableWhenDead: cfg.UsableWhenDead,
		factory:        cfg.Factory,
	}, nil
}

// MustNewType panics when the config is invalid
func MustNewType(cfg *TypeConfig) *Type {
	t, err := NewType(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Type) Track() *Track        { return t.track }
func (t *Type) Cooldown() uint32     { return t.cooldown }
func (t *Type) Overlay() bool        { return t.overlay }
func (t *Type) UsableWhenDead() bool { return t.usableWhenDead }
