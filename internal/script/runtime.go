package script

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/ability-engine/internal/ability"
	"github.com/KirkDiggler/ability-engine/internal/dice"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Hook phases a script may define as keys of its top-level `hooks` map.
// Every hook is called as fn(engine, owner, state, section).
const (
	PhaseCanUse           = "can_use"
	PhaseCanContinueUsing = "can_continue_using"
	PhaseBeginSection     = "begin_section"
	PhaseTickUsing        = "tick_using"
	PhaseEndSection       = "end_section"
	PhaseInterrupt        = "interrupt"
	PhaseComplete         = "complete"

	phaseNoop = "noop"
)

var knownPhases = map[string]bool{
	PhaseCanUse:           true,
	PhaseCanContinueUsing: true,
	PhaseBeginSection:     true,
	PhaseTickUsing:        true,
	PhaseEndSection:       true,
	PhaseInterrupt:        true,
	PhaseComplete:         true,
}

const hookDispatchScript = `
__result := undefined
__fn := hooks[__phase]
if !is_undefined(__fn) {
	__result = __fn(__engine, __owner, __state, __section)
}
`

const defaultTimeout = 50 * time.Millisecond

// RuntimeConfig holds the dependencies of a Runtime
type RuntimeConfig struct {
	// FS holds the .tengo files, addressed by slash-separated name
	FS fs.FS

	// Optional
	Roller  dice.Roller
	Timeout time.Duration
}

// Runtime compiles ability scripts and hands out hooks that run them.
// Programs are cached by name; Reload swaps the cached program so new
// activations pick it up while running ones keep their copy.
type Runtime struct {
	fsys    fs.FS
	roller  dice.Roller
	timeout time.Duration

	mu       sync.RWMutex
	programs map[string]*program
}

type program struct {
	name     string
	compiled *tengo.Compiled
	version  int
}

// NewRuntime creates a script runtime
func NewRuntime(cfg *RuntimeConfig) *Runtime {
	if cfg == nil || cfg.FS == nil {
		panic("script runtime requires a file system")
	}

	rt := &Runtime{
		fsys:     cfg.FS,
		roller:   cfg.Roller,
		timeout:  cfg.Timeout,
		programs: make(map[string]*program),
	}
	if rt.roller == nil {
		rt.roller = dice.NewRandomRoller(time.Now().UnixNano())
	}
	if rt.timeout <= 0 {
		rt.timeout = defaultTimeout
	}

	return rt
}

// Load compiles a script unless it is already cached
func (rt *Runtime) Load(name string) error {
	rt.mu.RLock()
	_, ok := rt.programs[name]
	rt.mu.RUnlock()
	if ok {
		return nil
	}

	return rt.Reload(name)
}

// Reload recompiles a script. On failure the previously cached program
// stays in place.
func (rt *Runtime) Reload(name string) error {
	compiled, err := rt.compile(name)
	if err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	version := 1
	if prev, ok := rt.programs[name]; ok {
		version = prev.version + 1
	}
	rt.programs[name] = &program{name: name, compiled: compiled, version: version}

	if version > 1 {
		log.Printf("ScriptRuntime: reloaded %s (version %d)", name, version)
	}
	return nil
}

// Version returns how many times a script has been compiled, 0 if never
func (rt *Runtime) Version(name string) int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	if p, ok := rt.programs[name]; ok {
		return p.version
	}
	return 0
}

// Names returns the cached script names in sorted order
func (rt *Runtime) Names() []string {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	names := make([]string, 0, len(rt.programs))
	for name := range rt.programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Factory loads a script and returns an ability factory whose hooks run it.
// params is exposed to the script as engine.params.
func (rt *Runtime) Factory(name string, params map[string]any) (ability.Factory, error) {
	if err := rt.Load(name); err != nil {
		return nil, err
	}

	return func(owner ability.Owner) ability.Hooks {
		compiled := rt.instance(name)
		if compiled == nil {
			return nil
		}
		return newScriptedHooks(rt, name, compiled, owner, params)
	}, nil
}

// instance returns a private copy of the current program
func (rt *Runtime) instance(name string) *tengo.Compiled {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	p, ok := rt.programs[name]
	if !ok {
		return nil
	}
	return p.compiled.Clone()
}

func (rt *Runtime) compile(name string) (*tengo.Compiled, error) {
	src, err := fs.ReadFile(rt.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFoundf("script %s not found", name)
		}
		return nil, apperr.Wrapf(err, "failed to read script %s", name)
	}

	s := tengo.NewScript([]byte(string(src) + "\n" + hookDispatchScript))
	for _, global := range []string{"__phase", "__engine", "__owner", "__state", "__section"} {
		_ = s.Add(global, tengo.UndefinedValue)
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeValidation, "failed to compile script "+name)
	}

	// A noop pass evaluates the top level so the hooks map can be checked
	trial := compiled.Clone()
	if err := trial.Set("__phase", phaseNoop); err != nil {
		return nil, apperr.Wrapf(err, "failed to prepare script %s", name)
	}
	ctx, cancel := context.WithTimeout(context.Background(), rt.timeout)
	defer cancel()
	if err := trial.RunContext(ctx); err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeValidation, "failed to evaluate script "+name)
	}

	hooks, ok := hookNames(trial.Get("hooks").Object())
	if !ok {
		return nil, apperr.Validationf("script %s must define a hooks map", name)
	}
	for _, phase := range hooks {
		if !knownPhases[phase] {
			return nil, apperr.Validationf("script %s defines unknown hook %q", name, phase)
		}
	}

	return compiled, nil
}

func hookNames(obj tengo.Object) ([]string, bool) {
	var values map[string]tengo.Object
	switch v := obj.(type) {
	case *tengo.Map:
		values = v.Value
	case *tengo.ImmutableMap:
		values = v.Value
	default:
		return nil, false
	}

	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, true
}
