// Package structref adapts the engine's host ports to plain Go structs via
// reflection: exported fields are attributes, exported methods are named
// predicates and actions.
package structref

import (
	"fmt"
	"reflect"
)

// Adapter implements ports.Accessor, ports.Evaluator and ports.Invoker for
// struct objects. Writes require a pointer to the struct.
type Adapter struct{}

// New creates the adapter. It carries no state.
func New() *Adapter {
	return &Adapter{}
}

func structValue(obj any) (reflect.Value, error) {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("structref: nil object")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("structref: unsupported object type %T", obj)
	}
	return v, nil
}

// Read returns the named exported field's value.
func (*Adapter) Read(obj any, attribute string) (any, error) {
	v, err := structValue(obj)
	if err != nil {
		return nil, err
	}
	field := v.FieldByName(attribute)
	if !field.IsValid() {
		return nil, fmt.Errorf("structref: no field %q on %T", attribute, obj)
	}
	return field.Interface(), nil
}

// Write sets the named exported field. The object must be a struct pointer.
func (*Adapter) Write(obj any, attribute string, value any) error {
	v, err := structValue(obj)
	if err != nil {
		return err
	}
	field := v.FieldByName(attribute)
	if !field.IsValid() {
		return fmt.Errorf("structref: no field %q on %T", attribute, obj)
	}
	if !field.CanSet() {
		return fmt.Errorf("structref: field %q is not settable (pass a pointer)", attribute)
	}
	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(field.Type()) {
		return fmt.Errorf("structref: cannot assign %T to field %q (%s)", value, attribute, field.Type())
	}
	field.Set(rv)
	return nil
}

// Evaluate calls the named exported method. Methods may return nothing, a
// single value, a single error, or (value, error).
func (*Adapter) Evaluate(obj any, name string, args ...any) (any, error) {
	method := reflect.ValueOf(obj).MethodByName(name)
	if !method.IsValid() {
		return nil, fmt.Errorf("structref: no method %q on %T", name, obj)
	}
	return call(method, name, args)
}

// Invoke calls the named exported method as an action. A bool result is the
// success signal; a bare error or no result at all means success unless the
// error is non-nil.
func (*Adapter) Invoke(obj any, action string, args ...any) (bool, error) {
	method := reflect.ValueOf(obj).MethodByName(action)
	if !method.IsValid() {
		return false, fmt.Errorf("structref: no method %q on %T", action, obj)
	}
	result, err := call(method, action, args)
	if err != nil {
		return false, err
	}
	if b, ok := result.(bool); ok {
		return b, nil
	}
	return true, nil
}

func call(method reflect.Value, name string, args []any) (any, error) {
	mt := method.Type()
	var in []reflect.Value
	switch {
	case mt.NumIn() == 0:
		// Zero-arg methods ignore forwarded event arguments.
	case mt.IsVariadic() || mt.NumIn() == len(args):
		in = make([]reflect.Value, len(args))
		for i, a := range args {
			if a == nil {
				in[i] = reflect.Zero(mt.In(min(i, mt.NumIn()-1)))
				continue
			}
			in[i] = reflect.ValueOf(a)
		}
	default:
		return nil, fmt.Errorf("structref: method %q wants %d args, got %d", name, mt.NumIn(), len(args))
	}

	out := method.Call(in)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if err, ok := out[0].Interface().(error); ok {
			return nil, err
		}
		return out[0].Interface(), nil
	case 2:
		var err error
		if e, ok := out[1].Interface().(error); ok {
			err = e
		}
		return out[0].Interface(), err
	default:
		return nil, fmt.Errorf("structref: method %q returns %d values", name, len(out))
	}
}
