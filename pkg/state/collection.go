package state

import (
	"fmt"

	"github.com/aretw0/stator/pkg/ports"
)

// NoMatchError reports that an object's current attribute value does not
// correspond to any declared state when an exact match is required.
type NoMatchError struct {
	Attribute string
	Value     any
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no declared state matches value %v for attribute %q", e.Value, e.Attribute)
}

// DuplicateError reports an attempt to register a second state under a name
// already taken.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("state %q is already defined", e.Name)
}

// Collection is the ordered registry of a machine's states. Lookup is by
// name, qualified name, or raw attribute value; declaration order decides
// ties everywhere.
type Collection struct {
	attribute string
	namespace string
	accessor  ports.Accessor
	states    []*State
	byName    map[string]*State
}

// NewCollection creates an empty registry reading the given attribute
// through the accessor.
func NewCollection(attribute string, accessor ports.Accessor) *Collection {
	return &Collection{
		attribute: attribute,
		accessor:  accessor,
		byName:    make(map[string]*State),
	}
}

// Attribute returns the attribute the collection resolves against.
func (c *Collection) Attribute() string { return c.attribute }

// SetNamespace scopes every state's qualified name, including states added
// later. Called by the owning machine.
func (c *Collection) SetNamespace(ns string) {
	c.namespace = ns
	for _, s := range c.states {
		s.namespace = ns
	}
}

// Add registers a state. Duplicate names are rejected so that every name
// resolves to a unique owner.
func (c *Collection) Add(s *State) error {
	if s.name != "" {
		if _, exists := c.byName[s.name]; exists {
			return &DuplicateError{Name: s.name}
		}
		c.byName[s.name] = s
	}
	s.namespace = c.namespace
	c.states = append(c.states, s)
	return nil
}

// ByName returns the state registered under name, or nil.
func (c *Collection) ByName(name string) *State {
	return c.byName[name]
}

// ByQualifiedName returns the state whose qualified name matches, or nil.
func (c *Collection) ByQualifiedName(name string) *State {
	for _, s := range c.states {
		if s.QualifiedName() == name {
			return s
		}
	}
	return nil
}

// ByValue returns the first state (declaration order) whose Matches accepts
// the value, or nil.
func (c *Collection) ByValue(value any) *State {
	for _, s := range c.states {
		if s.Matches(value) {
			return s
		}
	}
	return nil
}

// All returns the states in declaration order.
func (c *Collection) All() []*State {
	out := make([]*State, len(c.states))
	copy(out, c.states)
	return out
}

// Names returns state names in declaration order, skipping unnamed states.
func (c *Collection) Names() []string {
	var out []string
	for _, s := range c.states {
		if s.name != "" {
			out = append(out, s.name)
		}
	}
	return out
}

// Initial returns the state marked initial, or nil.
func (c *Collection) Initial() *State {
	for _, s := range c.states {
		if s.initial {
			return s
		}
	}
	return nil
}

// Match reads the object's attribute and returns the state it belongs to,
// or nil when no state accepts the value.
func (c *Collection) Match(obj any) (*State, error) {
	value, err := c.accessor.Read(obj, c.attribute)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", c.attribute, err)
	}
	return c.ByValue(value), nil
}

// MatchRequired is Match, except an unresolvable value is an error. Used to
// pin down a definite current state before firing.
func (c *Collection) MatchRequired(obj any) (*State, error) {
	value, err := c.accessor.Read(obj, c.attribute)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", c.attribute, err)
	}
	if s := c.ByValue(value); s != nil {
		return s, nil
	}
	return nil, &NoMatchError{Attribute: c.attribute, Value: value}
}
