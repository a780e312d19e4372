// Package attrmap adapts the engine's host ports to map-backed objects:
// attributes are map entries, and named predicates and actions are functions
// registered on the adapter.
package attrmap

import (
	"fmt"
	"sync"
)

// Func is a named method implementation over a map object.
type Func func(obj map[string]any, args ...any) (any, error)

// ActionFunc is a named action implementation. The bool reports success.
type ActionFunc func(obj map[string]any, args ...any) (bool, error)

// Adapter implements ports.Accessor, ports.Evaluator and ports.Invoker for
// objects of type map[string]any. Safe for concurrent registration.
type Adapter struct {
	mu      sync.RWMutex
	methods map[string]Func
	actions map[string]ActionFunc
}

// New creates an adapter with no registered functions.
func New() *Adapter {
	return &Adapter{
		methods: make(map[string]Func),
		actions: make(map[string]ActionFunc),
	}
}

// RegisterMethod adds a named predicate/value function. An existing name is
// overwritten.
func (a *Adapter) RegisterMethod(name string, fn Func) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.methods[name] = fn
}

// RegisterAction adds a named action. An existing name is overwritten.
func (a *Adapter) RegisterAction(name string, fn ActionFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions[name] = fn
}

func asMap(obj any) (map[string]any, error) {
	m, ok := obj.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("attrmap: unsupported object type %T", obj)
	}
	return m, nil
}

// Read returns the attribute's map entry; a missing entry reads as nil.
func (a *Adapter) Read(obj any, attribute string) (any, error) {
	m, err := asMap(obj)
	if err != nil {
		return nil, err
	}
	return m[attribute], nil
}

// Write sets the attribute's map entry.
func (a *Adapter) Write(obj any, attribute string, value any) error {
	m, err := asMap(obj)
	if err != nil {
		return err
	}
	m[attribute] = value
	return nil
}

// Evaluate runs a registered method.
func (a *Adapter) Evaluate(obj any, name string, args ...any) (any, error) {
	m, err := asMap(obj)
	if err != nil {
		return nil, err
	}
	a.mu.RLock()
	fn, ok := a.methods[name]
	a.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("attrmap: method not registered: %s", name)
	}
	return fn(m, args...)
}

// Invoke runs a registered action.
func (a *Adapter) Invoke(obj any, action string, args ...any) (bool, error) {
	m, err := asMap(obj)
	if err != nil {
		return false, err
	}
	a.mu.RLock()
	fn, ok := a.actions[action]
	a.mu.RUnlock()
	if !ok {
		return false, fmt.Errorf("attrmap: action not registered: %s", action)
	}
	return fn(m, args...)
}
