package dsl

import (
	"github.com/aretw0/stator/pkg/event"
	"github.com/aretw0/stator/pkg/guard"
)

// TransitionBuilder configures one branch of an event.
type TransitionBuilder struct {
	opts []event.BranchOption
}

// Transition starts a branch definition.
func Transition() *TransitionBuilder {
	return &TransitionBuilder{}
}

// From restricts the branch to the named source states.
func (t *TransitionBuilder) From(names ...string) *TransitionBuilder {
	t.opts = append(t.opts, event.From(names...))
	return t
}

// FromAny admits every source state.
func (t *TransitionBuilder) FromAny() *TransitionBuilder {
	t.opts = append(t.opts, event.FromAny())
	return t
}

// FromAnyExcept admits every source state but the named ones.
func (t *TransitionBuilder) FromAnyExcept(names ...string) *TransitionBuilder {
	t.opts = append(t.opts, event.FromAnyExcept(names...))
	return t
}

// To sets the branch's target state.
func (t *TransitionBuilder) To(name string) *TransitionBuilder {
	t.opts = append(t.opts, event.To(name))
	return t
}

// ToAnyOf lets the branch target the first matching state of the machine's
// declaration order among the named ones.
func (t *TransitionBuilder) ToAnyOf(names ...string) *TransitionBuilder {
	t.opts = append(t.opts, event.ToAnyOf(names...))
	return t
}

// Loopback makes the branch stay on the source state.
func (t *TransitionBuilder) Loopback() *TransitionBuilder {
	t.opts = append(t.opts, event.ToLoopback())
	return t
}

// If guards the branch on the predicates being truthy.
func (t *TransitionBuilder) If(preds ...guard.Predicate) *TransitionBuilder {
	t.opts = append(t.opts, event.If(preds...))
	return t
}

// Unless guards the branch on the predicates being falsy.
func (t *TransitionBuilder) Unless(preds ...guard.Predicate) *TransitionBuilder {
	t.opts = append(t.opts, event.Unless(preds...))
	return t
}

func (t *TransitionBuilder) options() []event.BranchOption {
	return t.opts
}
