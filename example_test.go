package stator_test

import (
	"fmt"
	"log"

	stator "github.com/aretw0/stator"
	"github.com/aretw0/stator/pkg/adapters/attrmap"
	"github.com/aretw0/stator/pkg/event"
	"github.com/aretw0/stator/pkg/state"
)

// ExampleNew demonstrates a vehicle machine over a plain map, committing
// each transition through a registered save action.
func ExampleNew() {
	adapter := attrmap.New()
	adapter.RegisterAction("save", func(obj map[string]any, args ...any) (bool, error) {
		return true, nil
	})

	machine := stator.New("state",
		stator.WithAction("save"),
		stator.WithAccessor(adapter),
		stator.WithInvoker(adapter),
		stator.WithEvaluator(adapter),
	)

	if _, err := machine.AddState("parked", state.Initial()); err != nil {
		log.Fatal(err)
	}
	if _, err := machine.AddState("idling"); err != nil {
		log.Fatal(err)
	}
	ignite, err := machine.AddEvent("ignite")
	if err != nil {
		log.Fatal(err)
	}
	if err := ignite.Transition(event.From("parked"), event.To("idling")); err != nil {
		log.Fatal(err)
	}

	vehicle := map[string]any{}
	if err := machine.Initialize(vehicle); err != nil {
		log.Fatal(err)
	}
	fmt.Println(vehicle["state"])

	if _, err := machine.Fire(vehicle, "ignite"); err != nil {
		log.Fatal(err)
	}
	fmt.Println(vehicle["state"])

	// Output:
	// parked
	// idling
}
