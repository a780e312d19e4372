/*
Package stator is a declarative state machine engine for Go objects.

A machine tracks one attribute of a host object and moves it between
declared states in response to events. Transitions are resolved from
guarded branches in declaration order, callbacks run before, around and
after the change, and every commit is atomic: the attribute write and one
host action either both take effect or both roll back.

# Concept

Stator separates the machine definition (states, events, callbacks) from
the host object it drives. The host is reached only through three ports:
an Accessor for the attribute, an Invoker for the commit action, and an
Evaluator for named guard methods. Adapters for maps, structs and Redis
hashes ship in pkg/adapters; any host can supply its own.

# Key Features

  - Declarative branches: from/to requirements with guard conjunctions,
    first match wins.
  - Halt protocol: a before callback returning false stops the transition
    before anything is written.
  - Atomic commits: multi-machine firings share one action invocation and
    roll back together on failure.
  - Observability: lifecycle hooks and Prometheus metrics in
    pkg/observability.

# Usage

Define a machine with the fluent builder, YAML (pkg/schema), or directly:

	package main

	import (
		"log"

		"github.com/aretw0/stator/pkg/adapters/attrmap"
		"github.com/aretw0/stator/pkg/dsl"
	)

	func main() {
		adapter := attrmap.New()
		adapter.RegisterAction("save", func(obj map[string]any, args ...any) (bool, error) {
			return true, nil
		})

		machine, err := dsl.Machine("state").
			Action("save").
			Accessor(adapter).Invoker(adapter).Evaluator(adapter).
			State("parked", dsl.Initial()).
			State("idling").
			Event("ignite", dsl.Transition().From("parked").To("idling")).
			Build()
		if err != nil {
			log.Fatal(err)
		}

		vehicle := map[string]any{}
		if err := machine.Initialize(vehicle); err != nil {
			log.Fatal(err)
		}
		if _, err := machine.Fire(vehicle, "ignite"); err != nil {
			log.Fatal(err)
		}
		// vehicle["state"] == "idling"
	}
*/
package stator
