// Package callback implements guarded units of before/after/around/failure
// behavior attached to a machine's transitions.
package callback

import (
	"fmt"

	"github.com/aretw0/stator/pkg/guard"
)

// Phase is the point in the transition lifecycle a callback runs at.
type Phase string

const (
	PhaseBefore  Phase = "before"
	PhaseAfter   Phase = "after"
	PhaseAround  Phase = "around"
	PhaseFailure Phase = "failure"
)

// Context is what a transition exposes to its callbacks so guards and side
// effects can branch on the pending change.
type Context struct {
	Object    any
	Attribute string
	Event     string
	FromName  string
	ToName    string
	From      any
	To        any
	Args      []any
}

// Body is an ordinary callback body. Its result feeds the halt rule in the
// before phase and is ignored elsewhere.
type Body func(ctx Context) (any, error)

// AroundBody wraps the remaining chain and the transition's inner unit.
// It must call next exactly once; not yielding means the inner unit never
// runs and the transition is treated as halted.
type AroundBody func(ctx Context, next func() error) error

// Terminator decides whether a before-callback result halts the remaining
// chain.
type Terminator func(result any) bool

// ExplicitFalse is the default halting sentinel: only the literal bool
// false halts.
func ExplicitFalse(result any) bool {
	b, ok := result.(bool)
	return ok && !b
}

// Falsy halts on any falsy result (nil or false).
func Falsy(result any) bool {
	return !guard.Truthy(result)
}

// Callback is one guarded unit of transition behavior.
type Callback struct {
	phase      Phase
	guard      guard.Guard
	terminator Terminator
	body       Body
	around     AroundBody
}

// Option configures a callback at construction.
type Option func(*Callback)

// If adds positive guard predicates.
func If(preds ...guard.Predicate) Option {
	return func(c *Callback) { c.guard.If = append(c.guard.If, preds...) }
}

// Unless adds negated guard predicates.
func Unless(preds ...guard.Predicate) Option {
	return func(c *Callback) { c.guard.Unless = append(c.guard.Unless, preds...) }
}

// WithTerminator overrides the default halting sentinel.
func WithTerminator(t Terminator) Option {
	return func(c *Callback) { c.terminator = t }
}

// New creates a before, after, or failure callback.
func New(phase Phase, body Body, opts ...Option) *Callback {
	c := &Callback{phase: phase, body: body}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewAround creates an around callback.
func NewAround(body AroundBody, opts ...Option) *Callback {
	c := &Callback{phase: PhaseAround, around: body}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the callback's lifecycle phase.
func (c *Callback) Phase() Phase { return c.phase }

// Result is the outcome of one callback invocation.
type Result struct {
	// Value is the body's return value; meaningful only when Ran is true.
	Value any
	// Ran reports whether the guard admitted the body. A skipped callback
	// is neutral and never halts.
	Ran bool
}

// Call evaluates the guard and, if it admits, invokes the body. Guard and
// body errors propagate unchanged.
func (c *Callback) Call(eval guard.Evaluator, ctx Context) (Result, error) {
	ok, err := c.guard.Check(eval, ctx.Object, ctx.Args...)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, nil
	}
	if c.body == nil {
		return Result{}, fmt.Errorf("%s callback has no body", c.phase)
	}
	value, err := c.body(ctx)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: value, Ran: true}, nil
}

// Admitted evaluates only the guard, used by the around runner.
func (c *Callback) Admitted(eval guard.Evaluator, ctx Context) (bool, error) {
	return c.guard.Check(eval, ctx.Object, ctx.Args...)
}

// CallAround invokes an around body with the given continuation.
func (c *Callback) CallAround(ctx Context, next func() error) error {
	if c.around == nil {
		return fmt.Errorf("callback is not an around callback")
	}
	return c.around(ctx, next)
}

// Halts applies the halt rule to a before-phase result: a skipped callback
// never halts; otherwise the terminator (default: explicit false) decides.
func (c *Callback) Halts(r Result) bool {
	if c.phase != PhaseBefore || !r.Ran {
		return false
	}
	if c.terminator != nil {
		return c.terminator(r.Value)
	}
	return ExplicitFalse(r.Value)
}
