// Package observability provides lifecycle hooks for transition commits and
// a Prometheus observer built on top of them.
package observability

import "time"

// Result classifies how a transition commit ended.
type Result string

const (
	ResultCommitted  Result = "committed"
	ResultHalted     Result = "halted"
	ResultRolledBack Result = "rolled_back"
	ResultUnresolved Result = "unresolved"
)

// TransitionEvent describes one transition as seen by hooks.
type TransitionEvent struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Machine   string        `json:"machine,omitempty"`
	Attribute string        `json:"attribute"`
	Event     string        `json:"event"`
	FromName  string        `json:"from,omitempty"`
	ToName    string        `json:"to,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// Hooks defines callbacks for engine observability. Nil members are skipped.
type Hooks struct {
	// OnTransition fires once per transition after a successful commit.
	OnTransition func(*TransitionEvent)
	// OnHalt fires when a before callback stops a commit.
	OnHalt func(*TransitionEvent)
	// OnRollback fires per transition whose attribute write was reverted.
	OnRollback func(*TransitionEvent)
	// OnActionFailure fires once per commit whose action raised or signaled
	// failure.
	OnActionFailure func(*TransitionEvent)
	// OnFireFailed fires when an event resolves no transition at all.
	OnFireFailed func(*TransitionEvent)
}

func (h Hooks) EmitTransition(e *TransitionEvent) {
	if h.OnTransition != nil {
		h.OnTransition(e)
	}
}

func (h Hooks) EmitHalt(e *TransitionEvent) {
	if h.OnHalt != nil {
		h.OnHalt(e)
	}
}

func (h Hooks) EmitRollback(e *TransitionEvent) {
	if h.OnRollback != nil {
		h.OnRollback(e)
	}
}

func (h Hooks) EmitActionFailure(e *TransitionEvent) {
	if h.OnActionFailure != nil {
		h.OnActionFailure(e)
	}
}

func (h Hooks) EmitFireFailed(e *TransitionEvent) {
	if h.OnFireFailed != nil {
		h.OnFireFailed(e)
	}
}

// Combine aggregates several hook sets into one that fans out in order.
func Combine(hooks ...Hooks) Hooks {
	all := append([]Hooks(nil), hooks...)
	return Hooks{
		OnTransition: func(e *TransitionEvent) {
			for _, h := range all {
				h.EmitTransition(e)
			}
		},
		OnHalt: func(e *TransitionEvent) {
			for _, h := range all {
				h.EmitHalt(e)
			}
		},
		OnRollback: func(e *TransitionEvent) {
			for _, h := range all {
				h.EmitRollback(e)
			}
		},
		OnActionFailure: func(e *TransitionEvent) {
			for _, h := range all {
				h.EmitActionFailure(e)
			}
		},
		OnFireFailed: func(e *TransitionEvent) {
			for _, h := range all {
				h.EmitFireFailed(e)
			}
		},
	}
}
