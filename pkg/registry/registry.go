// Package registry tracks the machines attached to each owner type and
// rejects definitions that would collide at runtime.
package registry

import (
	"fmt"
	"sync"

	stator "github.com/aretw0/stator"
)

// ConflictError reports a definition that clashes with a machine already
// registered on the same owner.
type ConflictError struct {
	Owner   string
	Machine string // machine name of the offending definition
	Name    string // the state or event name that collides, or ""
	Holder  string // machine name already holding the definition
}

func (e *ConflictError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("owner %q: machine %q already defined", e.Owner, e.Machine)
	}
	return fmt.Sprintf("owner %q: %q already defined by machine %q", e.Owner, e.Name, e.Holder)
}

// Registry indexes machines by owner. Insert is fallible so definition
// collisions surface when the machine is attached, not when it fires.
type Registry struct {
	mu     sync.RWMutex
	owners map[string][]*stator.Machine
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		owners: make(map[string][]*stator.Machine),
	}
}

// Insert attaches a machine to the owner. It fails when the owner already
// has a machine of the same name, or when a qualified state or event name
// of the new machine is already claimed by a sibling.
func (r *Registry) Insert(owner string, m *stator.Machine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sibling := range r.owners[owner] {
		if sibling.Name() == m.Name() {
			return &ConflictError{Owner: owner, Machine: m.Name()}
		}
		if err := r.collision(owner, m, sibling); err != nil {
			return err
		}
	}

	r.owners[owner] = append(r.owners[owner], m)
	return nil
}

func (r *Registry) collision(owner string, m, sibling *stator.Machine) error {
	taken := make(map[string]bool)
	for _, s := range sibling.States().All() {
		taken[s.QualifiedName()] = true
	}
	for _, e := range sibling.Events().All() {
		taken[e.QualifiedName()] = true
	}

	for _, s := range m.States().All() {
		if taken[s.QualifiedName()] {
			return &ConflictError{Owner: owner, Machine: m.Name(), Name: s.QualifiedName(), Holder: sibling.Name()}
		}
	}
	for _, e := range m.Events().All() {
		if taken[e.QualifiedName()] {
			return &ConflictError{Owner: owner, Machine: m.Name(), Name: e.QualifiedName(), Holder: sibling.Name()}
		}
	}
	return nil
}

// Machines returns the machines attached to the owner, in insertion order.
func (r *Registry) Machines(owner string) []*stator.Machine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*stator.Machine, len(r.owners[owner]))
	copy(out, r.owners[owner])
	return out
}

// ByName returns the owner's machine with the given name, or nil.
func (r *Registry) ByName(owner, name string) *stator.Machine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.owners[owner] {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// Owners lists every owner with at least one machine.
func (r *Registry) Owners() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.owners))
	for owner := range r.owners {
		out = append(out, owner)
	}
	return out
}
