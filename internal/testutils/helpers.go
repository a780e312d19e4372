// Package testutils provides shared test doubles for the engine's host
// capability ports.
package testutils

import "fmt"

// Object is the host object shape used across the engine's own tests.
type Object map[string]any

// Accessor implements ports.Accessor over Object.
type Accessor struct{}

func (Accessor) Read(obj any, attribute string) (any, error) {
	m, ok := obj.(Object)
	if !ok {
		return nil, fmt.Errorf("unsupported object type %T", obj)
	}
	return m[attribute], nil
}

func (Accessor) Write(obj any, attribute string, value any) error {
	m, ok := obj.(Object)
	if !ok {
		return fmt.Errorf("unsupported object type %T", obj)
	}
	m[attribute] = value
	return nil
}

// Invoker records every action invocation and replies with scripted
// results. Unscripted actions succeed.
type Invoker struct {
	Calls []string
	Fail  map[string]bool  // action -> signal failure (false, nil)
	Errs  map[string]error // action -> raise error
}

func (i *Invoker) Invoke(_ any, action string, _ ...any) (bool, error) {
	i.Calls = append(i.Calls, action)
	if err, ok := i.Errs[action]; ok {
		return false, err
	}
	if i.Fail[action] {
		return false, nil
	}
	return true, nil
}

// Evaluator resolves named methods from a map of functions.
type Evaluator map[string]func(obj any, args ...any) (any, error)

func (e Evaluator) Evaluate(obj any, name string, args ...any) (any, error) {
	fn, ok := e[name]
	if !ok {
		return nil, fmt.Errorf("no method %q", name)
	}
	return fn(obj, args...)
}
