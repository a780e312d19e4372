// Package event implements named triggers: guarded from/to branches, their
// resolution into concrete transitions, and the per-machine event registry.
package event

import (
	"errors"
	"fmt"

	"github.com/aretw0/stator/pkg/guard"
	"github.com/aretw0/stator/pkg/matcher"
)

// ErrNoRequirements is returned for a branch declared with neither a from
// nor a to constraint.
var ErrNoRequirements = errors.New("a branch must specify at least one from or to requirement")

// InvalidRequirementError reports an unrecognized key in a caller-supplied
// requirement set.
type InvalidRequirementError struct {
	Key string
}

func (e *InvalidRequirementError) Error() string {
	return fmt.Sprintf("unrecognized transition requirement %q", e.Key)
}

// Branch is one guarded from-to rule within an event. The from matcher
// defaults to accepting every state, the to matcher to loopback.
type Branch struct {
	from  matcher.Matcher
	to    matcher.Matcher
	guard guard.Guard
}

// BranchOption configures a branch at construction.
type BranchOption func(*branchConfig)

type branchConfig struct {
	branch  Branch
	fromSet bool
	toSet   bool
}

// From restricts the branch to the named source states.
func From(names ...string) BranchOption {
	return func(c *branchConfig) {
		if len(names) == 1 {
			c.branch.from = matcher.Exact(names[0])
		} else {
			c.branch.from = matcher.AnyOf(toAnySlice(names)...)
		}
		c.fromSet = true
	}
}

// FromAny accepts every source state explicitly.
func FromAny() BranchOption {
	return func(c *branchConfig) {
		c.branch.from = matcher.All()
		c.fromSet = true
	}
}

// FromAnyExcept accepts every source state outside the named set.
func FromAnyExcept(names ...string) BranchOption {
	return func(c *branchConfig) {
		c.branch.from = matcher.AllExcept(toAnySlice(names)...)
		c.fromSet = true
	}
}

// To pins the branch's target state.
func To(name string) BranchOption {
	return func(c *branchConfig) {
		c.branch.to = matcher.Exact(name)
		c.toSet = true
	}
}

// ToAnyOf targets the first of the named states present in the machine's
// declared domain (domain order wins).
func ToAnyOf(names ...string) BranchOption {
	return func(c *branchConfig) {
		c.branch.to = matcher.AnyOf(toAnySlice(names)...)
		c.toSet = true
	}
}

// ToLoopback keeps the object in its current state explicitly.
func ToLoopback() BranchOption {
	return func(c *branchConfig) {
		c.branch.to = matcher.Loopback()
		c.toSet = true
	}
}

// If adds positive guard predicates.
func If(preds ...guard.Predicate) BranchOption {
	return func(c *branchConfig) {
		c.branch.guard.If = append(c.branch.guard.If, preds...)
	}
}

// Unless adds negated guard predicates.
func Unless(preds ...guard.Predicate) BranchOption {
	return func(c *branchConfig) {
		c.branch.guard.Unless = append(c.branch.guard.Unless, preds...)
	}
}

// NewBranch builds a branch. A branch with no from or to requirement at all
// is invalid.
func NewBranch(opts ...BranchOption) (*Branch, error) {
	c := branchConfig{}
	for _, opt := range opts {
		opt(&c)
	}
	if !c.fromSet && !c.toSet {
		return nil, ErrNoRequirements
	}
	if c.branch.from == nil {
		c.branch.from = matcher.All()
	}
	if c.branch.to == nil {
		c.branch.to = matcher.Loopback()
	}
	b := c.branch
	return &b, nil
}

// KnownStates returns the state names the branch references, from side
// first, in declaration order.
func (b *Branch) KnownStates() []string {
	var out []string
	for _, v := range b.from.Values() {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	for _, v := range b.to.Values() {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Match resolves the branch against a source state and an optional explicit
// target requirement. domain is the machine's declared state names in
// order. It returns the resolved target name when the branch accepts.
func (b *Branch) Match(eval guard.Evaluator, obj any, from, toReq string, domain []string, args ...any) (string, bool, error) {
	if !b.from.Matches(from, matcher.Context{From: from}) {
		return "", false, nil
	}
	ok, err := b.guard.Check(eval, obj, args...)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	// Loopback always resolves to the source, regardless of any explicit
	// target requirement.
	if matcher.IsLoopback(b.to) {
		return from, true, nil
	}

	pool := domain
	if toReq != "" {
		pool = []string{toReq}
	}
	candidates := b.to.Filter(toAnySlice(pool))
	if len(candidates) == 0 {
		return "", false, nil
	}
	name, ok := candidates[0].(string)
	if !ok {
		return "", false, fmt.Errorf("branch resolved a non-string state name %v", candidates[0])
	}
	return name, true, nil
}

func toAnySlice(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
