// Package catalog loads ability type definitions from YAML and registers
// them with an ability registry.
package catalog

import (
	"embed"
	"io/fs"
	"os"

	"github.com/KirkDiggler/ability-engine/internal/ability"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed data/abilities.yaml
var defaultCatalog []byte

//go:embed data/scripts/*.tengo
var scriptsFS embed.FS

// BehaviorScript marks an entry whose hooks come from a script file
const BehaviorScript = "script"

// Catalog is the YAML document
type Catalog struct {
	Abilities []Entry `yaml:"abilities"`
}

// Entry defines one ability type
type Entry struct {
	Name           string        `yaml:"name"`
	Behavior       string        `yaml:"behavior"`
	Script         string        `yaml:"script,omitempty"`
	Cooldown       uint32        `yaml:"cooldown"`
	Overlay        bool          `yaml:"overlay"`
	UsableWhenDead bool          `yaml:"usable_when_dead"`
	Track          []SectionSpec `yaml:"track"`
	Params         Params        `yaml:"params,omitempty"`
}

// SectionSpec is one track section. Instant sections leave Ticks at zero.
type SectionSpec struct {
	Kind    string `yaml:"kind"`
	Ticks   uint32 `yaml:"ticks,omitempty"`
	Instant bool   `yaml:"instant,omitempty"`
}

// Behavior turns an entry's params into a hooks factory
type Behavior func(params Params) (ability.Factory, error)

// ScriptLoader builds factories for script-backed entries
type ScriptLoader interface {
	Factory(name string, params map[string]any) (ability.Factory, error)
}

// Parse decodes a catalog document
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeConfiguration, "failed to parse ability catalog")
	}
	return &c, nil
}

// LoadFile reads and parses a catalog from disk
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeConfiguration, "failed to read ability catalog").
			WithMeta("path", path)
	}
	return Parse(data)
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultScripts returns the built-in script files, rooted at the scripts directory
func DefaultScripts() fs.FS {
	sub, err := fs.Sub(scriptsFS, "data/scripts")
	if err != nil {
		panic(err)
	}
	return sub
}

// BuildTrack converts the entry's sections into a validated track
func (e *Entry) BuildTrack() (*ability.Track, error) {
	sections := make([]ability.Section, 0, len(e.Track))
	for i, spec := range e.Track {
		kind, err := ability.ParseSectionKind(spec.Kind)
		if err != nil {
			return nil, apperr.Wrapf(err, "section %d", i)
		}

		switch {
		case spec.Instant && spec.Ticks > 0:
			return nil, apperr.Validationf("section %d is both instant and %d ticks long", i, spec.Ticks)
		case spec.Instant:
			sections = append(sections, ability.InstantOf(kind))
		default:
			sections = append(sections, ability.Section{Kind: kind, Duration: ability.Fixed(spec.Ticks)})
		}
	}

	return ability.NewTrack(sections...)
}

// Build validates every entry and then registers them all. On error
// nothing has been registered.
func (c *Catalog) Build(reg *ability.Registry, behaviors map[string]Behavior, scripts ScriptLoader) ([]*ability.Type, error) {
	if reg == nil {
		return nil, apperr.InvalidArgument("registry cannot be nil")
	}

	types := make([]*ability.Type, 0, len(c.Abilities))
	seen := make(map[string]bool, len(c.Abilities))
	for i := range c.Abilities {
		entry := &c.Abilities[i]
		t, err := entry.build(behaviors, scripts)
		if err != nil {
			return nil, err
		}

		if seen[entry.Name] {
			return nil, apperr.Configurationf("ability %s is defined twice", entry.Name).WithMeta("ability", entry.Name)
		}
		if _, ok := reg.Get(entry.Name); ok {
			return nil, apperr.Configurationf("ability %s is already registered", entry.Name).WithMeta("ability", entry.Name)
		}
		seen[entry.Name] = true
		types = append(types, t)
	}

	for i, t := range types {
		if _, err := reg.Register(c.Abilities[i].Name, t); err != nil {
			return nil, apperr.WrapWithCode(err, apperr.CodeConfiguration, "failed to register "+c.Abilities[i].Name)
		}
	}

	return types, nil
}

func (e *Entry) build(behaviors map[string]Behavior, scripts ScriptLoader) (*ability.Type, error) {
	fail := func(err error, msg string) error {
		return apperr.WrapWithCode(err, apperr.CodeConfiguration, msg).WithMeta("ability", e.Name)
	}

	if e.Name == "" {
		return nil, apperr.Configurationf("catalog entry without a name")
	}

	track, err := e.BuildTrack()
	if err != nil {
		return nil, fail(err, "invalid track for "+e.Name)
	}

	var factory ability.Factory
	switch e.Behavior {
	case BehaviorScript:
		if e.Script == "" {
			return nil, apperr.Configurationf("%s uses a script behavior without a script", e.Name)
		}
		if scripts == nil {
			return nil, apperr.Configurationf("%s needs a script runtime", e.Name)
		}
		factory, err = scripts.Factory(e.Script, e.Params)
		if err != nil {
			return nil, fail(err, "failed to load script for "+e.Name)
		}
	default:
		behavior, ok := behaviors[e.Behavior]
		if !ok {
			return nil, apperr.Configurationf("%s uses unknown behavior %q", e.Name, e.Behavior)
		}
		factory, err = behavior(e.Params)
		if err != nil {
			return nil, fail(err, "invalid params for "+e.Name)
		}
	}

	return ability.NewType(&ability.TypeConfig{
		Track:          track,
		Cooldown:       e.Cooldown,
		Overlay:        e.Overlay,
		UsableWhenDead: e.UsableWhenDead,
		Factory:        factory,
	})
}
