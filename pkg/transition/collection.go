package transition

import (
	"fmt"
	"time"

	"github.com/aretw0/stator/pkg/callback"
)

// Collection orchestrates one or more transitions that must commit
// together: either every attribute write and the shared action succeed, or
// every write is reverted and no partial state remains observable.
type Collection struct {
	transitions []*Transition

	skipWrites  bool
	skipActions bool
	skipAfter   bool
	silent      bool
}

// Option configures a collection at construction.
type Option func(*Collection)

// SkipWrites suppresses attribute writes, for dry validation runs.
func SkipWrites() Option {
	return func(c *Collection) { c.skipWrites = true }
}

// SkipActions suppresses action invocation.
func SkipActions() Option {
	return func(c *Collection) { c.skipActions = true }
}

// SkipAfter suppresses after callbacks on success.
func SkipAfter() Option {
	return func(c *Collection) { c.skipAfter = true }
}

// Silent converts an action error into a false result instead of
// propagating it.
func Silent() Option {
	return func(c *Collection) { c.silent = true }
}

// NewCollection groups transitions for one atomic commit, in the order
// given.
func NewCollection(transitions []*Transition, opts ...Option) *Collection {
	c := &Collection{transitions: transitions}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transitions returns the contained transitions in commit order.
func (c *Collection) Transitions() []*Transition {
	out := make([]*Transition, len(c.transitions))
	copy(out, c.transitions)
	return out
}

// Perform runs the full execution protocol: before callbacks for every
// transition in order, then attribute writes and the deduplicated action
// inside every admitted around callback, then after callbacks on success
// or rollback plus failure callbacks on any failure. An empty collection
// is a no-op returning true.
func (c *Collection) Perform(args ...any) (bool, error) {
	if len(c.transitions) == 0 {
		return true, nil
	}
	started := time.Now()
	for _, t := range c.transitions {
		t.args = args
	}

	// Before phase. A halt aborts the whole collection before any write.
	for _, t := range c.transitions {
		halted, err := c.runPhase(t, callback.PhaseBefore)
		if err != nil {
			return false, err
		}
		if halted {
			c.rollbackAll()
			c.runFailureAll()
			t.machine.Hooks().EmitHalt(t.record(time.Since(started)))
			t.machine.Logger().Debug("transition halted by before callback",
				"event", t.event, "from", t.from.Name(), "to", t.to.Name())
			return false, nil
		}
	}

	// Inner unit: writes plus the deduplicated action, wrapped by every
	// admitted around callback in collection order, outermost first.
	var (
		entered   bool
		signaled  bool
		commitErr error
	)
	inner := func() error {
		entered = true
		if !c.skipWrites {
			for _, t := range c.transitions {
				if err := t.applyWrite(); err != nil {
					commitErr = fmt.Errorf("write %q: %w", t.machine.Attribute(), err)
					return commitErr
				}
			}
		}
		if c.skipActions {
			return nil
		}
		run := make(map[string]bool)
		for _, t := range c.transitions {
			action := t.machine.Action()
			if action == "" || run[action] {
				continue
			}
			run[action] = true
			ok, err := t.machine.Invoker().Invoke(t.object, action, t.args...)
			if err != nil {
				commitErr = err
				return err
			}
			if !ok {
				signaled = true
				return nil
			}
		}
		return nil
	}

	chain, err := c.composeAround(inner)
	if err != nil {
		return false, err
	}
	chainErr := chain()

	switch {
	case commitErr != nil, chainErr != nil:
		if commitErr == nil {
			// An around callback failed on its own.
			commitErr = chainErr
		}
		c.rollbackAll()
		c.runFailureAll()
		c.emitActionFailure(started)
		if c.silent {
			return false, nil
		}
		return false, commitErr
	case signaled:
		c.rollbackAll()
		c.runFailureAll()
		c.emitActionFailure(started)
		return false, nil
	case !entered:
		// An around callback never yielded; the inner unit did not run.
		c.runFailureAll()
		first := c.transitions[0]
		first.machine.Hooks().EmitHalt(first.record(time.Since(started)))
		return false, nil
	}

	if !c.skipAfter {
		for _, t := range c.transitions {
			if _, err := c.runPhase(t, callback.PhaseAfter); err != nil {
				return false, err
			}
		}
	}
	for _, t := range c.transitions {
		t.machine.Hooks().EmitTransition(t.record(time.Since(started)))
		t.machine.Logger().Debug("transition committed",
			"event", t.event, "from", t.from.Name(), "to", t.to.Name())
	}
	return true, nil
}

// runPhase runs one transition's callbacks for a phase in registration
// order. The halt rule applies only in the before phase; after and failure
// results are ignored for control flow.
func (c *Collection) runPhase(t *Transition, phase callback.Phase) (halted bool, err error) {
	ctx := t.Context()
	for _, cb := range t.machine.CallbacksFor(phase) {
		result, err := cb.Call(t.machine.Evaluator(), ctx)
		if err != nil {
			return false, err
		}
		if cb.Halts(result) {
			return true, nil
		}
	}
	return false, nil
}

// composeAround nests every admitted around callback around the inner unit.
func (c *Collection) composeAround(inner func() error) (func() error, error) {
	type link struct {
		cb  *callback.Callback
		ctx callback.Context
	}
	var links []link
	for _, t := range c.transitions {
		ctx := t.Context()
		for _, cb := range t.machine.CallbacksFor(callback.PhaseAround) {
			ok, err := cb.Admitted(t.machine.Evaluator(), ctx)
			if err != nil {
				return nil, err
			}
			if ok {
				links = append(links, link{cb: cb, ctx: ctx})
			}
		}
	}
	chain := inner
	for i := len(links) - 1; i >= 0; i-- {
		l, next := links[i], chain
		chain = func() error {
			return l.cb.CallAround(l.ctx, next)
		}
	}
	return chain, nil
}

func (c *Collection) rollbackAll() {
	for _, t := range c.transitions {
		t.rollback()
	}
}

// runFailureAll runs every transition's failure callbacks. Their errors are
// logged, not propagated: the commit's own outcome takes precedence.
func (c *Collection) runFailureAll() {
	for _, t := range c.transitions {
		if _, err := c.runPhase(t, callback.PhaseFailure); err != nil {
			t.machine.Logger().Warn("failure callback errored",
				"event", t.event, "err", err)
		}
	}
}

func (c *Collection) emitActionFailure(started time.Time) {
	first := c.transitions[0]
	first.machine.Hooks().EmitActionFailure(first.record(time.Since(started)))
}
