// Package guard provides boolean predicates and their conjunctions, used to
// gate branches and callbacks.
package guard

import "fmt"

// Evaluator resolves a named predicate or method against a host object.
// The host adapter decides what "named" means (map entry, struct method).
type Evaluator interface {
	Evaluate(obj any, name string, args ...any) (any, error)
}

// Truthy reports the truthiness convention used across the engine:
// nil and the literal false are falsy, everything else is truthy.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// Predicate is one boolean condition over a host object. The signature
// variant is fixed at construction, not inspected per call.
type Predicate struct {
	method string
	fn     func(obj any, args ...any) (bool, error)
}

// Func wraps a predicate that needs no inputs.
func Func(f func() bool) Predicate {
	return Predicate{fn: func(any, ...any) (bool, error) {
		return f(), nil
	}}
}

// ObjectFunc wraps a predicate over the host object.
func ObjectFunc(f func(obj any) bool) Predicate {
	return Predicate{fn: func(obj any, _ ...any) (bool, error) {
		return f(obj), nil
	}}
}

// ArgsFunc wraps a predicate over the host object and the event arguments.
func ArgsFunc(f func(obj any, args ...any) bool) Predicate {
	return Predicate{fn: func(obj any, args ...any) (bool, error) {
		return f(obj, args...), nil
	}}
}

// TryFunc wraps a fallible predicate. Errors abort the in-progress phase.
func TryFunc(f func(obj any, args ...any) (bool, error)) Predicate {
	return Predicate{fn: f}
}

// Method names a predicate on the host object, dispatched through the
// machine's Evaluator at call time.
func Method(name string) Predicate {
	return Predicate{method: name}
}

// Evaluate runs the predicate. Named predicates require a non-nil eval.
func (p Predicate) Evaluate(eval Evaluator, obj any, args ...any) (bool, error) {
	if p.method != "" {
		if eval == nil {
			return false, fmt.Errorf("predicate %q: no evaluator configured", p.method)
		}
		result, err := eval.Evaluate(obj, p.method, args...)
		if err != nil {
			return false, fmt.Errorf("predicate %q: %w", p.method, err)
		}
		return Truthy(result), nil
	}
	if p.fn == nil {
		return false, fmt.Errorf("predicate has no body")
	}
	return p.fn(obj, args...)
}

// Guard is a conjunction of positive and negated predicates. It passes when
// every If predicate is truthy and every Unless predicate is falsy.
type Guard struct {
	If     []Predicate
	Unless []Predicate
}

// Check evaluates the conjunction. Evaluation short-circuits on the first
// failing predicate; predicate errors propagate unchanged.
func (g Guard) Check(eval Evaluator, obj any, args ...any) (bool, error) {
	for _, p := range g.If {
		ok, err := p.Evaluate(eval, obj, args...)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	for _, p := range g.Unless {
		ok, err := p.Evaluate(eval, obj, args...)
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}
