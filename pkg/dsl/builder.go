package dsl

import (
	"fmt"
	"log/slog"

	stator "github.com/aretw0/stator"
	"github.com/aretw0/stator/pkg/callback"
	"github.com/aretw0/stator/pkg/guard"
	"github.com/aretw0/stator/pkg/observability"
	"github.com/aretw0/stator/pkg/ports"
	"github.com/aretw0/stator/pkg/state"
)

// MachineBuilder accumulates a machine definition and compiles it in Build.
type MachineBuilder struct {
	attribute string
	options   []stator.Option
	states    []stateDef
	events    []eventDef
	callbacks []callbackDef
}

type stateDef struct {
	name string
	opts []state.Option
}

type eventDef struct {
	name        string
	transitions []*TransitionBuilder
}

type callbackDef struct {
	phase  callback.Phase
	body   callback.Body
	around callback.AroundBody
	opts   []callback.Option
}

// Machine starts a builder for a machine tracking the named attribute.
func Machine(attribute string) *MachineBuilder {
	return &MachineBuilder{attribute: attribute}
}

// Namespace scopes the machine's state and event names.
func (b *MachineBuilder) Namespace(ns string) *MachineBuilder {
	b.options = append(b.options, stator.WithNamespace(ns))
	return b
}

// Action sets the host action invoked once per commit.
func (b *MachineBuilder) Action(name string) *MachineBuilder {
	b.options = append(b.options, stator.WithAction(name))
	return b
}

// Accessor sets the attribute read/write port.
func (b *MachineBuilder) Accessor(a ports.Accessor) *MachineBuilder {
	b.options = append(b.options, stator.WithAccessor(a))
	return b
}

// Invoker sets the action invocation port.
func (b *MachineBuilder) Invoker(i ports.Invoker) *MachineBuilder {
	b.options = append(b.options, stator.WithInvoker(i))
	return b
}

// Evaluator sets the guard and callback evaluation port.
func (b *MachineBuilder) Evaluator(e ports.Evaluator) *MachineBuilder {
	b.options = append(b.options, stator.WithEvaluator(e))
	return b
}

// Hooks attaches lifecycle hooks.
func (b *MachineBuilder) Hooks(h observability.Hooks) *MachineBuilder {
	b.options = append(b.options, stator.WithHooks(h))
	return b
}

// Logger sets the machine's logger.
func (b *MachineBuilder) Logger(l *slog.Logger) *MachineBuilder {
	b.options = append(b.options, stator.WithLogger(l))
	return b
}

// State declares a state. Declaration order is the matching order.
func (b *MachineBuilder) State(name string, opts ...state.Option) *MachineBuilder {
	b.states = append(b.states, stateDef{name: name, opts: opts})
	return b
}

// Initial marks the declared state as the machine's initial state.
func Initial() state.Option { return state.Initial() }

// Value overrides the raw value stored for the declared state.
func Value(v any) state.Option { return state.WithValue(v) }

// DeferredValue computes the state's value lazily; with cache the result is
// kept after the first read.
func DeferredValue(compute func() any, cache bool) state.Option {
	return state.WithDeferredValue(compute, cache)
}

// Event declares an event with its transition branches, tried in order.
func (b *MachineBuilder) Event(name string, transitions ...*TransitionBuilder) *MachineBuilder {
	b.events = append(b.events, eventDef{name: name, transitions: transitions})
	return b
}

// Before registers a before callback.
func (b *MachineBuilder) Before(body callback.Body, opts ...callback.Option) *MachineBuilder {
	b.callbacks = append(b.callbacks, callbackDef{phase: callback.PhaseBefore, body: body, opts: opts})
	return b
}

// After registers an after callback.
func (b *MachineBuilder) After(body callback.Body, opts ...callback.Option) *MachineBuilder {
	b.callbacks = append(b.callbacks, callbackDef{phase: callback.PhaseAfter, body: body, opts: opts})
	return b
}

// Around registers an around callback.
func (b *MachineBuilder) Around(body callback.AroundBody, opts ...callback.Option) *MachineBuilder {
	b.callbacks = append(b.callbacks, callbackDef{phase: callback.PhaseAround, around: body, opts: opts})
	return b
}

// Failure registers a failure callback.
func (b *MachineBuilder) Failure(body callback.Body, opts ...callback.Option) *MachineBuilder {
	b.callbacks = append(b.callbacks, callbackDef{phase: callback.PhaseFailure, body: body, opts: opts})
	return b
}

// If guards a callback or transition on the predicates being truthy.
func If(preds ...guard.Predicate) callback.Option { return callback.If(preds...) }

// Unless guards a callback or transition on the predicates being falsy.
func Unless(preds ...guard.Predicate) callback.Option { return callback.Unless(preds...) }

// Build compiles the accumulated definition into a machine. The first
// definition error aborts the build.
func (b *MachineBuilder) Build() (*stator.Machine, error) {
	m := stator.New(b.attribute, b.options...)

	for _, sd := range b.states {
		if _, err := m.AddState(sd.name, sd.opts...); err != nil {
			return nil, fmt.Errorf("state %q: %w", sd.name, err)
		}
	}
	for _, ed := range b.events {
		e, err := m.AddEvent(ed.name)
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", ed.name, err)
		}
		for _, tb := range ed.transitions {
			if err := e.Transition(tb.options()...); err != nil {
				return nil, fmt.Errorf("event %q: %w", ed.name, err)
			}
		}
	}
	for _, cd := range b.callbacks {
		switch cd.phase {
		case callback.PhaseBefore:
			m.Before(cd.body, cd.opts...)
		case callback.PhaseAfter:
			m.After(cd.body, cd.opts...)
		case callback.PhaseAround:
			m.Around(cd.around, cd.opts...)
		case callback.PhaseFailure:
			m.Failure(cd.body, cd.opts...)
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
