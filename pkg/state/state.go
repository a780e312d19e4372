// Package state models the finite states of an attribute and the ordered
// collection that resolves which state a raw attribute value belongs to.
package state

import (
	"fmt"

	"github.com/aretw0/stator/pkg/matcher"
)

// Value holds a state's associated domain value, either static or computed
// on demand. A deferred value with caching enabled is computed at most once.
type Value struct {
	static  any
	compute func() any
	cache   bool
	done    bool
	cached  any
}

// Static wraps a fixed value.
func Static(v any) *Value {
	return &Value{static: v}
}

// Deferred wraps a computation evaluated on read. With cache enabled the
// first result is kept and returned on every subsequent read.
func Deferred(compute func() any, cache bool) *Value {
	return &Value{compute: compute, cache: cache}
}

// Get evaluates and returns the value.
func (v *Value) Get() any {
	if v == nil {
		return nil
	}
	if v.compute == nil {
		return v.static
	}
	if v.cache {
		if !v.done {
			v.cached = v.compute()
			v.done = true
		}
		return v.cached
	}
	return v.compute()
}

// Deferred reports whether the value is computed rather than fixed.
func (v *Value) Deferred() bool {
	return v != nil && v.compute != nil
}

// State is a named, valued point in an attribute's domain.
type State struct {
	name      string
	namespace string
	value     *Value
	matcher   func(any) bool
	initial   bool
}

// Option configures a State at construction.
type Option func(*State)

// WithValue sets a static domain value. Without it the state's value is its
// own name.
func WithValue(v any) Option {
	return func(s *State) { s.value = Static(v) }
}

// WithDeferredValue sets a computed domain value.
func WithDeferredValue(compute func() any, cache bool) Option {
	return func(s *State) { s.value = Deferred(compute, cache) }
}

// WithMatcher overrides structural equality when resolving whether a raw
// attribute value belongs to this state.
func WithMatcher(m func(value any) bool) Option {
	return func(s *State) { s.matcher = m }
}

// Initial marks the state as the machine's seed state for new objects.
func Initial() Option {
	return func(s *State) { s.initial = true }
}

// New creates a state. The name may be empty only for internal generic
// states; named states default their value to the name.
func New(name string, opts ...Option) *State {
	s := &State{name: name}
	for _, opt := range opts {
		opt(s)
	}
	if s.value == nil && name != "" {
		s.value = Static(name)
	}
	return s
}

// Name returns the state's identifier.
func (s *State) Name() string { return s.name }

// QualifiedName returns the name scoped by the machine namespace, e.g.
// "active_alarm" for state "active" in namespace "alarm".
func (s *State) QualifiedName() string {
	if s.namespace == "" || s.name == "" {
		return s.name
	}
	return s.name + "_" + s.namespace
}

// Value evaluates and returns the state's domain value.
func (s *State) Value() any { return s.value.Get() }

// Initial reports whether the state seeds new objects.
func (s *State) Initial() bool { return s.initial }

// Matches reports whether a raw attribute value belongs to this state. A
// custom matcher takes precedence over structural equality.
func (s *State) Matches(value any) bool {
	if s.matcher != nil {
		return s.matcher(value)
	}
	return matcher.Equal(value, s.Value())
}

func (s *State) String() string {
	return fmt.Sprintf("state %q", s.name)
}
