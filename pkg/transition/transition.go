// Package transition implements resolved state changes and their atomic,
// callback-wrapped execution protocol.
package transition

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/stator/pkg/callback"
	"github.com/aretw0/stator/pkg/observability"
	"github.com/aretw0/stator/pkg/ports"
	"github.com/aretw0/stator/pkg/state"
)

// Machine is what a transition needs from its owning state machine. The
// root stator.Machine satisfies it.
type Machine interface {
	// Name identifies the machine (its namespace, or the attribute when
	// unnamed) in hooks and logs.
	Name() string
	Attribute() string
	// Action names the host operation invoked once per successful commit,
	// or "" when the machine has none.
	Action() string
	Accessor() ports.Accessor
	Invoker() ports.Invoker
	Evaluator() ports.Evaluator
	CallbacksFor(phase callback.Phase) []*callback.Callback
	Hooks() observability.Hooks
	Logger() *slog.Logger
}

// Transition is one concrete, about-to-be-applied state change. It borrows
// the object for the duration of one perform call and is discarded after.
type Transition struct {
	id        string
	machine   Machine
	object    any
	event     string
	from, to  *state.State
	readState bool
	args      []any

	written  bool
	previous any
}

// New creates a transition for one fire attempt. readState records whether
// from was inferred from the object rather than supplied explicitly.
func New(machine Machine, object any, event string, from, to *state.State, readState bool) *Transition {
	return &Transition{
		id:        uuid.NewString(),
		machine:   machine,
		object:    object,
		event:     event,
		from:      from,
		to:        to,
		readState: readState,
	}
}

// ID returns the transition's unique identifier.
func (t *Transition) ID() string { return t.id }

// Object returns the borrowed host object.
func (t *Transition) Object() any { return t.object }

// Attribute returns the attribute being transitioned.
func (t *Transition) Attribute() string { return t.machine.Attribute() }

// Event returns the name of the event that produced the transition.
func (t *Transition) Event() string { return t.event }

// FromName returns the source state's name.
func (t *Transition) FromName() string { return t.from.Name() }

// ToName returns the target state's name.
func (t *Transition) ToName() string { return t.to.Name() }

// From returns the source state's domain value.
func (t *Transition) From() any { return t.from.Value() }

// To returns the target state's domain value.
func (t *Transition) To() any { return t.to.Value() }

// Loopback reports whether the transition stays in its current state.
func (t *Transition) Loopback() bool { return t.from.Name() == t.to.Name() }

// ReadState reports whether the from state was inferred from the object.
func (t *Transition) ReadState() bool { return t.readState }

// Context builds what callbacks see of the pending change.
func (t *Transition) Context() callback.Context {
	return callback.Context{
		Object:    t.object,
		Attribute: t.machine.Attribute(),
		Event:     t.event,
		FromName:  t.from.Name(),
		ToName:    t.to.Name(),
		From:      t.from.Value(),
		To:        t.to.Value(),
		Args:      t.args,
	}
}

// Perform executes this transition alone, with full callback and rollback
// semantics.
func (t *Transition) Perform(args ...any) (bool, error) {
	return NewCollection([]*Transition{t}).Perform(args...)
}

// RunFailureCallbacks runs the machine's failure callbacks against this
// transition outside of a commit. Events use it when no branch resolves.
func (t *Transition) RunFailureCallbacks(args ...any) error {
	t.args = args
	ctx := t.Context()
	for _, cb := range t.machine.CallbacksFor(callback.PhaseFailure) {
		if _, err := cb.Call(t.machine.Evaluator(), ctx); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transition) record(d time.Duration) *observability.TransitionEvent {
	return &observability.TransitionEvent{
		ID:        t.id,
		Timestamp: time.Now(),
		Machine:   t.machine.Name(),
		Attribute: t.machine.Attribute(),
		Event:     t.event,
		FromName:  t.from.Name(),
		ToName:    t.to.Name(),
		Duration:  d,
	}
}

// applyWrite persists the target value, remembering the pre-write value for
// a potential rollback.
func (t *Transition) applyWrite() error {
	prev, err := t.machine.Accessor().Read(t.object, t.machine.Attribute())
	if err != nil {
		return err
	}
	if err := t.machine.Accessor().Write(t.object, t.machine.Attribute(), t.to.Value()); err != nil {
		return err
	}
	t.previous = prev
	t.written = true
	return nil
}

// rollback restores the remembered pre-write value verbatim. It never
// triggers callbacks or actions.
func (t *Transition) rollback() {
	if !t.written {
		return
	}
	if err := t.machine.Accessor().Write(t.object, t.machine.Attribute(), t.previous); err != nil {
		t.machine.Logger().Error("rollback write failed",
			"attribute", t.machine.Attribute(), "err", err)
		return
	}
	t.written = false
	t.machine.Hooks().EmitRollback(t.record(0))
}
