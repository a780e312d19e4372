package event

import "fmt"

// DuplicateError reports an attempt to register a second event under a name
// already taken.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("event %q is already defined", e.Name)
}

// Collection is the ordered registry of a machine's events.
type Collection struct {
	namespace string
	events    []*Event
	byName    map[string]*Event
}

// NewCollection creates an empty event registry.
func NewCollection() *Collection {
	return &Collection{byName: make(map[string]*Event)}
}

// SetNamespace scopes every event's qualified name, including events added
// later.
func (c *Collection) SetNamespace(ns string) {
	c.namespace = ns
	for _, e := range c.events {
		e.namespace = ns
	}
}

// Add registers an event, rejecting duplicate names.
func (c *Collection) Add(e *Event) error {
	if _, exists := c.byName[e.name]; exists {
		return &DuplicateError{Name: e.name}
	}
	e.namespace = c.namespace
	c.byName[e.name] = e
	c.events = append(c.events, e)
	return nil
}

// ByName returns the event registered under name, or nil.
func (c *Collection) ByName(name string) *Event {
	return c.byName[name]
}

// ByQualifiedName returns the event whose qualified name matches, or nil.
func (c *Collection) ByQualifiedName(name string) *Event {
	for _, e := range c.events {
		if e.QualifiedName() == name {
			return e
		}
	}
	return nil
}

// All returns the events in declaration order.
func (c *Collection) All() []*Event {
	out := make([]*Event, len(c.events))
	copy(out, c.events)
	return out
}

// Names returns event names in declaration order.
func (c *Collection) Names() []string {
	out := make([]string, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.name)
	}
	return out
}

// ValidFor returns the events that can currently fire on the object, in
// declaration order.
func (c *Collection) ValidFor(obj any) []*Event {
	var out []*Event
	for _, e := range c.events {
		if e.CanFire(obj) {
			out = append(out, e)
		}
	}
	return out
}
