// Package ports defines the narrow capabilities the engine borrows from its
// host environment: attribute access, action invocation, and named
// predicate/callback evaluation. Adapters implement these against concrete
// host object shapes (maps, structs, external stores).
package ports

// Accessor reads and writes a named attribute's raw value on a host object.
// Read of an attribute that was never written returns (nil, nil).
type Accessor interface {
	Read(obj any, attribute string) (any, error)
	Write(obj any, attribute string, value any) error
}

// Invoker runs a named host action. The bool reports whether the action
// signaled success; a non-nil error means the action failed abnormally and
// is propagated to the caller unchanged after rollback.
type Invoker interface {
	Invoke(obj any, action string, args ...any) (bool, error)
}

// Evaluator resolves a named method on a host object, used uniformly for
// guards, callback bodies, and dynamic state values.
type Evaluator interface {
	Evaluate(obj any, name string, args ...any) (any, error)
}
