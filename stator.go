package stator

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/stator/internal/logging"
	"github.com/aretw0/stator/pkg/adapters/structref"
	"github.com/aretw0/stator/pkg/callback"
	"github.com/aretw0/stator/pkg/event"
	"github.com/aretw0/stator/pkg/observability"
	"github.com/aretw0/stator/pkg/ports"
	"github.com/aretw0/stator/pkg/state"
	"github.com/aretw0/stator/pkg/transition"
)

// Machine ties one attribute's states, events and callbacks to the host
// capability ports. It satisfies the machine contracts of the event and
// transition packages.
type Machine struct {
	namespace string
	attribute string
	action    string
	initial   string

	accessor  ports.Accessor
	invoker   ports.Invoker
	evaluator ports.Evaluator
	hooks     observability.Hooks
	logger    *slog.Logger

	states    *state.Collection
	events    *event.Collection
	callbacks map[callback.Phase][]*callback.Callback
}

// Option configures a Machine at construction.
type Option func(*Machine)

// WithNamespace scopes the machine's state and event qualified names, for
// hosts carrying several machines.
func WithNamespace(ns string) Option {
	return func(m *Machine) { m.namespace = ns }
}

// WithAction names the host action invoked once per successful commit.
func WithAction(action string) Option {
	return func(m *Machine) { m.action = action }
}

// WithInitial names the machine's initial state ahead of its declaration.
// The state picks up the initial flag when it is added.
func WithInitial(name string) Option {
	return func(m *Machine) { m.initial = name }
}

// WithAccessor overrides attribute access. The default is the reflection
// adapter over struct fields.
func WithAccessor(a ports.Accessor) Option {
	return func(m *Machine) { m.accessor = a }
}

// WithInvoker overrides action invocation.
func WithInvoker(i ports.Invoker) Option {
	return func(m *Machine) { m.invoker = i }
}

// WithEvaluator overrides named predicate/callback evaluation.
func WithEvaluator(e ports.Evaluator) Option {
	return func(m *Machine) { m.evaluator = e }
}

// WithHooks registers observability hooks.
func WithHooks(h observability.Hooks) Option {
	return func(m *Machine) { m.hooks = h }
}

// WithLogger sets the machine's logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// New creates a machine over the named attribute.
func New(attribute string, opts ...Option) *Machine {
	adapter := structref.New()
	m := &Machine{
		attribute: attribute,
		accessor:  adapter,
		invoker:   adapter,
		evaluator: adapter,
		logger:    logging.NewNop(),
		events:    event.NewCollection(),
		callbacks: make(map[callback.Phase][]*callback.Callback),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.states = state.NewCollection(attribute, m.accessor)
	if m.namespace != "" {
		m.states.SetNamespace(m.namespace)
		m.events.SetNamespace(m.namespace)
	}
	return m
}

// Name identifies the machine in hooks and logs: the namespace when set,
// else the attribute.
func (m *Machine) Name() string {
	if m.namespace != "" {
		return m.namespace
	}
	return m.attribute
}

// Attribute returns the attribute the machine owns.
func (m *Machine) Attribute() string { return m.attribute }

// Action returns the machine's commit action name, or "".
func (m *Machine) Action() string { return m.action }

// Accessor returns the attribute access port.
func (m *Machine) Accessor() ports.Accessor { return m.accessor }

// Invoker returns the action invocation port.
func (m *Machine) Invoker() ports.Invoker { return m.invoker }

// Evaluator returns the named-method evaluation port.
func (m *Machine) Evaluator() ports.Evaluator { return m.evaluator }

// Hooks returns the machine's observability hooks.
func (m *Machine) Hooks() observability.Hooks { return m.hooks }

// Logger returns the machine's logger.
func (m *Machine) Logger() *slog.Logger { return m.logger }

// States returns the machine's state registry.
func (m *Machine) States() *state.Collection { return m.states }

// Events returns the machine's event registry.
func (m *Machine) Events() *event.Collection { return m.events }

// CallbacksFor returns the registered callbacks for a lifecycle phase, in
// registration order.
func (m *Machine) CallbacksFor(phase callback.Phase) []*callback.Callback {
	return m.callbacks[phase]
}

// AddState declares a state.
func (m *Machine) AddState(name string, opts ...state.Option) (*state.State, error) {
	if m.initial != "" && name == m.initial {
		opts = append(opts, state.Initial())
	}
	s := state.New(name, opts...)
	if err := m.states.Add(s); err != nil {
		return nil, err
	}
	if s.Initial() {
		if m.initial != "" && m.initial != name {
			return nil, fmt.Errorf("initial state already declared as %q", m.initial)
		}
		m.initial = name
	}
	return s, nil
}

// AddEvent declares an event.
func (m *Machine) AddEvent(name string) (*event.Event, error) {
	e := event.New(m, name)
	if err := m.events.Add(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Before registers a before-transition callback.
func (m *Machine) Before(body callback.Body, opts ...callback.Option) {
	m.add(callback.New(callback.PhaseBefore, body, opts...))
}

// After registers an after-transition callback.
func (m *Machine) After(body callback.Body, opts ...callback.Option) {
	m.add(callback.New(callback.PhaseAfter, body, opts...))
}

// Around registers an around-transition callback wrapping the write, the
// action and the after phase.
func (m *Machine) Around(body callback.AroundBody, opts ...callback.Option) {
	m.add(callback.NewAround(body, opts...))
}

// Failure registers a callback run when a commit fails or an event cannot
// fire.
func (m *Machine) Failure(body callback.Body, opts ...callback.Option) {
	m.add(callback.New(callback.PhaseFailure, body, opts...))
}

func (m *Machine) add(cb *callback.Callback) {
	m.callbacks[cb.Phase()] = append(m.callbacks[cb.Phase()], cb)
}

// Fire triggers the named event on the object.
func (m *Machine) Fire(obj any, eventName string, args ...any) (bool, error) {
	e := m.events.ByName(eventName)
	if e == nil {
		return false, fmt.Errorf("unknown event %q", eventName)
	}
	return e.Fire(obj, args...)
}

// CanFire reports whether the named event currently resolves a transition.
func (m *Machine) CanFire(obj any, eventName string) bool {
	e := m.events.ByName(eventName)
	return e != nil && e.CanFire(obj)
}

// TransitionFor resolves the transition the named event would produce, or
// nil.
func (m *Machine) TransitionFor(obj any, eventName string) (*transition.Transition, error) {
	e := m.events.ByName(eventName)
	if e == nil {
		return nil, fmt.Errorf("unknown event %q", eventName)
	}
	return e.TransitionFor(obj, event.Requirements{})
}

// Match resolves the object's current state, or nil when its value belongs
// to no declared state.
func (m *Machine) Match(obj any) (*state.State, error) {
	return m.states.Match(obj)
}

// MatchRequired resolves the object's current state or fails with a
// state.NoMatchError.
func (m *Machine) MatchRequired(obj any) (*state.State, error) {
	return m.states.MatchRequired(obj)
}

// Initialize seeds the object's attribute with the initial state's value if
// the attribute is currently nil.
func (m *Machine) Initialize(obj any) error {
	initial := m.states.Initial()
	if initial == nil {
		return fmt.Errorf("machine %q has no initial state", m.Name())
	}
	current, err := m.accessor.Read(obj, m.attribute)
	if err != nil {
		return err
	}
	if current != nil {
		return nil
	}
	return m.accessor.Write(obj, m.attribute, initial.Value())
}

// Validate runs definition-time checks: at most one initial state and no
// two states claiming the same raw value.
func (m *Machine) Validate() error {
	initials := 0
	states := m.states.All()
	for _, s := range states {
		if s.Initial() {
			initials++
		}
	}
	if initials > 1 {
		return fmt.Errorf("machine %q declares %d initial states", m.Name(), initials)
	}
	for i, s := range states {
		for _, other := range states[i+1:] {
			if other.Matches(s.Value()) {
				return fmt.Errorf("machine %q: states %q and %q both match value %v",
					m.Name(), s.Name(), other.Name(), s.Value())
			}
		}
	}
	return nil
}

// compile-time contract checks
var (
	_ transition.Machine = (*Machine)(nil)
	_ event.Machine      = (*Machine)(nil)
)
