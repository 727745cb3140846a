package script

import (
	"context"
	"log"
	"strings"

	"github.com/KirkDiggler/ability-engine/internal/ability"
	"github.com/KirkDiggler/ability-engine/internal/dice"
	"github.com/d5/tengo/v2"
)

// scriptedHooks adapts one activation of a script to ability.Hooks.
// state persists across calls for the life of the activation.
type scriptedHooks struct {
	rt       *Runtime
	name     string
	compiled *tengo.Compiled
	owner    ability.Owner
	sink     CommandSink
	params   *tengo.ImmutableMap
	state    *tengo.Map

	pending []Command
}

func newScriptedHooks(rt *Runtime, name string, compiled *tengo.Compiled, owner ability.Owner, params map[string]any) *scriptedHooks {
	h := &scriptedHooks{
		rt:       rt,
		name:     name,
		compiled: compiled,
		owner:    owner,
		params:   immutable(params),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	if sink, ok := owner.(CommandSink); ok {
		h.sink = sink
	}
	return h
}

// CanUse must not have side effects, so commands it issues are dropped
func (h *scriptedHooks) CanUse() bool {
	result, err := h.call(PhaseCanUse, nil)
	if len(h.pending) > 0 {
		log.Printf("ScriptRuntime: %s can_use issued %d commands, ignoring", h.name, len(h.pending))
		h.pending = nil
	}
	if err != nil {
		log.Printf("ScriptRuntime: %s can_use failed for %s: %v", h.name, h.owner.ID(), err)
		return false
	}
	return truthy(result, true)
}

// CanContinueUsing treats a failing script as a request to stop
func (h *scriptedHooks) CanContinueUsing() bool {
	result, err := h.call(PhaseCanContinueUsing, nil)
	h.flush()
	if err != nil {
		log.Printf("ScriptRuntime: %s can_continue_using failed for %s: %v", h.name, h.owner.ID(), err)
		return false
	}
	return truthy(result, true)
}

func (h *scriptedHooks) BeginSection(s ability.Section) { h.run(PhaseBeginSection, &s) }
func (h *scriptedHooks) TickUsing()                     { h.run(PhaseTickUsing, nil) }
func (h *scriptedHooks) EndSection(s ability.Section)   { h.run(PhaseEndSection, &s) }
func (h *scriptedHooks) Interrupt()                     { h.run(PhaseInterrupt, nil) }
func (h *scriptedHooks) Complete()                      { h.run(PhaseComplete, nil) }

func (h *scriptedHooks) run(phase string, section *ability.Section) {
	_, err := h.call(phase, section)
	h.flush()
	if err != nil {
		log.Printf("ScriptRuntime: %s %s failed for %s: %v", h.name, phase, h.owner.ID(), err)
	}
}

func (h *scriptedHooks) call(phase string, section *ability.Section) (tengo.Object, error) {
	sectionObj := tengo.Object(tengo.UndefinedValue)
	if section != nil {
		sectionObj = &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"kind":    &tengo.String{Value: section.Kind.String()},
			"ticks":   &tengo.Int{Value: int64(section.Duration.Ticks())},
			"instant": boolObject(section.Duration.IsInstant()),
		}}
	}

	globals := map[string]any{
		"__phase":   phase,
		"__engine":  h.engine(),
		"__owner":   h.ownerObject(),
		"__state":   h.state,
		"__section": sectionObj,
	}
	for name, value := range globals {
		if err := h.compiled.Set(name, value); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.rt.timeout)
	defer cancel()
	if err := h.compiled.RunContext(ctx); err != nil {
		return nil, err
	}

	return h.compiled.Get("__result").Object(), nil
}

func (h *scriptedHooks) flush() {
	pending := h.pending
	h.pending = nil
	if len(pending) == 0 {
		return
	}

	if h.sink == nil {
		log.Printf("ScriptRuntime: %s issued %d commands but %s accepts none", h.name, len(pending), h.owner.ID())
		return
	}
	for _, cmd := range pending {
		if err := h.sink.ApplyCommand(cmd); err != nil {
			log.Printf("ScriptRuntime: %s command %s failed for %s: %v", h.name, cmd.Op, h.owner.ID(), err)
		}
	}
}

func (h *scriptedHooks) ownerObject() *tengo.ImmutableMap {
	values := map[string]any{}
	if attrs, ok := h.owner.(AttributeSource); ok {
		for k, v := range attrs.ScriptAttributes() {
			values[k] = v
		}
	}
	values["id"] = h.owner.ID()
	values["alive"] = h.owner.IsAlive()
	values["tick"] = int64(h.owner.CurrentTick())
	return immutable(values)
}

func (h *scriptedHooks) engine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["params"] = h.params

	values["command"] = &tengo.UserFunction{Name: "command", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		op := strings.TrimSpace(objectAsString(args[0]))
		if op == "" {
			return tengo.FalseValue, nil
		}
		cmd := Command{Op: op, Args: map[string]any{}}
		if len(args) > 1 {
			if m, ok := objectToAny(args[1]).(map[string]any); ok {
				cmd.Args = m
			}
		}
		h.pending = append(h.pending, cmd)
		return tengo.TrueValue, nil
	}}

	values["roll"] = &tengo.UserFunction{Name: "roll", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		expr, err := dice.Parse(objectAsString(args[0]))
		if err != nil {
			return &tengo.Error{Value: &tengo.String{Value: err.Error()}}, nil
		}
		result, err := expr.Roll(h.rt.roller)
		if err != nil {
			return &tengo.Error{Value: &tengo.String{Value: err.Error()}}, nil
		}
		return &tengo.Int{Value: int64(result.Total)}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		log.Printf("Script[%s]: %s: %s", h.name, h.owner.ID(), strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func truthy(obj tengo.Object, def bool) bool {
	if obj == nil {
		return def
	}
	if _, ok := obj.(*tengo.Undefined); ok {
		return def
	}
	return !obj.IsFalsy()
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
