package event

import (
	"fmt"
	"time"

	"github.com/aretw0/stator/pkg/observability"
	"github.com/aretw0/stator/pkg/state"
	"github.com/aretw0/stator/pkg/transition"
)

// Machine is what events need from their owning state machine: the
// transition execution surface plus the declared states.
type Machine interface {
	transition.Machine
	States() *state.Collection
}

// Requirements are caller-supplied constraints narrowing which transition
// an event may resolve. Empty fields impose nothing.
type Requirements struct {
	From string
	To   string
}

// ParseRequirements converts a loosely-typed requirement map (as supplied
// by definition files or CLI flags) into Requirements, rejecting
// unrecognized keys before any state is touched.
func ParseRequirements(raw map[string]any) (Requirements, error) {
	var reqs Requirements
	for key, value := range raw {
		s, _ := value.(string)
		switch key {
		case "from":
			reqs.From = s
		case "to":
			reqs.To = s
		default:
			return Requirements{}, &InvalidRequirementError{Key: key}
		}
	}
	return reqs, nil
}

// Event is a named trigger owning an ordered list of branches.
type Event struct {
	name      string
	namespace string
	machine   Machine
	branches  []*Branch
	known     []string
}

// New creates an event bound to its machine.
func New(machine Machine, name string) *Event {
	return &Event{machine: machine, name: name}
}

// Name returns the event's identifier.
func (e *Event) Name() string { return e.name }

// QualifiedName returns the name scoped by the machine namespace.
func (e *Event) QualifiedName() string {
	if e.namespace == "" {
		return e.name
	}
	return e.name + "_" + e.namespace
}

// Transition declares a new branch on the event, in declaration order.
func (e *Event) Transition(opts ...BranchOption) error {
	b, err := NewBranch(opts...)
	if err != nil {
		return fmt.Errorf("event %q: %w", e.name, err)
	}
	e.branches = append(e.branches, b)
	for _, name := range b.KnownStates() {
		if !contains(e.known, name) {
			e.known = append(e.known, name)
		}
	}
	return nil
}

// Branches returns the declared branches in order.
func (e *Event) Branches() []*Branch {
	out := make([]*Branch, len(e.branches))
	copy(out, e.branches)
	return out
}

// KnownStates returns the union of state names referenced by the event's
// branches, in first-reference order.
func (e *Event) KnownStates() []string {
	out := make([]string, len(e.known))
	copy(out, e.known)
	return out
}

// Reset clears the event's branches and known states.
func (e *Event) Reset() {
	e.branches = nil
	e.known = nil
}

// TransitionFor resolves the first branch (declaration order, no
// backtracking) whose from matcher and guard accept, into a concrete
// transition. It returns (nil, nil) when no branch matches.
func (e *Event) TransitionFor(obj any, reqs Requirements, args ...any) (*transition.Transition, error) {
	states := e.machine.States()

	var (
		from      *state.State
		readState bool
	)
	if reqs.From != "" {
		from = states.ByName(reqs.From)
		if from == nil {
			return nil, fmt.Errorf("event %q: unknown from state %q", e.name, reqs.From)
		}
	} else {
		current, err := states.MatchRequired(obj)
		if err != nil {
			return nil, err
		}
		from = current
		readState = true
	}

	domain := states.Names()
	for _, b := range e.branches {
		toName, ok, err := b.Match(e.machine.Evaluator(), obj, from.Name(), reqs.To, domain, args...)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		to := states.ByName(toName)
		if to == nil {
			return nil, fmt.Errorf("event %q: branch resolved unknown state %q", e.name, toName)
		}
		return transition.New(e.machine, obj, e.name, from, to, readState), nil
	}
	return nil, nil
}

// CanFire reports whether the event currently resolves a transition for the
// object, ignoring whether a later commit-time check would block it.
func (e *Event) CanFire(obj any) bool {
	t, err := e.TransitionFor(obj, Requirements{})
	return err == nil && t != nil
}

// Fire resolves and performs a transition. When no branch matches, the
// failure path runs instead: failure callbacks on a stub loopback
// transition, the fire-failed hook, and a false result.
func (e *Event) Fire(obj any, args ...any) (bool, error) {
	t, err := e.TransitionFor(obj, Requirements{}, args...)
	if err != nil {
		return false, err
	}
	if t == nil {
		return false, e.fireFailed(obj, args)
	}
	return t.Perform(args...)
}

// fireFailed marks the failed attempt: a stub loopback transition carries
// the current state to the failure callbacks and hooks.
func (e *Event) fireFailed(obj any, args []any) error {
	current, err := e.machine.States().Match(obj)
	if err != nil {
		return err
	}
	if current == nil {
		current = state.New("")
	}
	stub := transition.New(e.machine, obj, e.name, current, current, true)
	if err := stub.RunFailureCallbacks(args...); err != nil {
		return err
	}
	e.machine.Hooks().EmitFireFailed(&observability.TransitionEvent{
		ID:        stub.ID(),
		Timestamp: time.Now(),
		Machine:   e.machine.Name(),
		Attribute: e.machine.Attribute(),
		Event:     e.name,
		FromName:  current.Name(),
		ToName:    current.Name(),
	})
	e.machine.Logger().Debug("event cannot fire", "event", e.name, "from", current.Name())
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
