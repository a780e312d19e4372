/*
Package dsl provides a fluent builder for constructing stator machines
programmatically.

It lets developers define machines with a type-safe, chainable API instead
of external YAML files, which is useful for dynamic definitions, unit tests
and IDE autocompletion.

Example usage:

	machine, err := dsl.Machine("state").
		Action("save").
		State("parked", dsl.Initial()).
		State("idling").
		Event("ignite", dsl.Transition().From("parked").To("idling")).
		Build()

The resulting *stator.Machine is ready to fire events.
*/
package dsl
