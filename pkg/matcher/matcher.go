// Package matcher implements the value-matching algebra used by branches
// and states to decide whether a candidate value satisfies a requirement.
package matcher

import "reflect"

// Context carries resolution inputs a matcher may need beyond the candidate
// itself. From is the transition's resolved from value, used by Loopback.
type Context struct {
	From any
}

// Matcher decides whether a candidate value satisfies a requirement.
type Matcher interface {
	// Matches reports whether candidate satisfies the matcher.
	Matches(candidate any, ctx Context) bool

	// Filter returns the ordered subset of domain the matcher accepts,
	// preserving domain order. When several values satisfy the matcher,
	// callers take the first.
	Filter(domain []any) []any

	// Values returns the concrete values the matcher references, if any.
	// Used to derive the set of known states for an event.
	Values() []any
}

// Equal reports structural equality between two attribute values.
// Values originating from YAML or map-based hosts may be composites,
// so plain == is not enough.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a, b)
}

type exact struct {
	value any
}

// Exact matches a single concrete value.
func Exact(value any) Matcher {
	return exact{value: value}
}

func (m exact) Matches(candidate any, _ Context) bool {
	return Equal(candidate, m.value)
}

func (m exact) Filter(domain []any) []any {
	var out []any
	for _, v := range domain {
		if Equal(v, m.value) {
			out = append(out, v)
		}
	}
	return out
}

func (m exact) Values() []any { return []any{m.value} }

type anyOf struct {
	values []any
}

// AnyOf matches any member of the given set.
func AnyOf(values ...any) Matcher {
	return anyOf{values: values}
}

func (m anyOf) Matches(candidate any, _ Context) bool {
	for _, v := range m.values {
		if Equal(candidate, v) {
			return true
		}
	}
	return false
}

func (m anyOf) Filter(domain []any) []any {
	var out []any
	for _, v := range domain {
		if m.Matches(v, Context{}) {
			out = append(out, v)
		}
	}
	return out
}

func (m anyOf) Values() []any { return m.values }

type allExcept struct {
	values []any
}

// AllExcept matches everything outside the given set.
func AllExcept(values ...any) Matcher {
	return allExcept{values: values}
}

func (m allExcept) Matches(candidate any, _ Context) bool {
	for _, v := range m.values {
		if Equal(candidate, v) {
			return false
		}
	}
	return true
}

func (m allExcept) Filter(domain []any) []any {
	var out []any
	for _, v := range domain {
		if m.Matches(v, Context{}) {
			out = append(out, v)
		}
	}
	return out
}

// Values returns the excluded set: a complement matcher still references
// those states, so they count as known.
func (m allExcept) Values() []any { return m.values }

type all struct{}

// All matches any value at all.
func All() Matcher {
	return all{}
}

func (all) Matches(any, Context) bool { return true }

func (all) Filter(domain []any) []any { return domain }

func (all) Values() []any { return nil }

type loopback struct{}

// Loopback matches only the transition's own from value, keeping the
// object in its current state.
func Loopback() Matcher {
	return loopback{}
}

func (loopback) Matches(candidate any, ctx Context) bool {
	return Equal(candidate, ctx.From)
}

// Filter returns nothing: loopback targets are resolved from the
// transition context, not from the declared domain.
func (loopback) Filter([]any) []any { return nil }

func (loopback) Values() []any { return nil }

// IsLoopback reports whether m resolves targets from the transition's
// from value rather than the declared domain.
func IsLoopback(m Matcher) bool {
	_, ok := m.(loopback)
	return ok
}
