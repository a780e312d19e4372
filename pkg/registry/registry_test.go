package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stator "github.com/aretw0/stator"
	"github.com/aretw0/stator/pkg/registry"
)

func machineWith(t *testing.T, attribute, namespace string, states ...string) *stator.Machine {
	t.Helper()
	var opts []stator.Option
	if namespace != "" {
		opts = append(opts, stator.WithNamespace(namespace))
	}
	m := stator.New(attribute, opts...)
	for _, name := range states {
		_, err := m.AddState(name)
		require.NoError(t, err)
	}
	return m
}

func TestRegistry_InsertAndLookup(t *testing.T) {
	r := registry.New()

	vehicle := machineWith(t, "state", "", "parked", "idling")
	alarm := machineWith(t, "alarm_state", "alarm", "active", "off")

	require.NoError(t, r.Insert("Vehicle", vehicle))
	require.NoError(t, r.Insert("Vehicle", alarm))

	assert.Len(t, r.Machines("Vehicle"), 2)
	assert.Same(t, vehicle, r.ByName("Vehicle", "state"))
	assert.Same(t, alarm, r.ByName("Vehicle", "alarm"))
	assert.Nil(t, r.ByName("Vehicle", "engine"))
	assert.Equal(t, []string{"Vehicle"}, r.Owners())
}

func TestRegistry_RejectsDuplicateMachine(t *testing.T) {
	r := registry.New()

	require.NoError(t, r.Insert("Vehicle", machineWith(t, "state", "", "parked")))
	err := r.Insert("Vehicle", machineWith(t, "state", "", "idling"))

	var conflict *registry.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Vehicle", conflict.Owner)
	assert.Equal(t, "state", conflict.Machine)
}

func TestRegistry_RejectsQualifiedNameCollision(t *testing.T) {
	r := registry.New()

	require.NoError(t, r.Insert("Vehicle", machineWith(t, "state", "", "parked", "idling")))
	err := r.Insert("Vehicle", machineWith(t, "engine_state", "", "parked"))

	var conflict *registry.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "parked", conflict.Name)
	assert.Equal(t, "state", conflict.Holder)
	assert.Contains(t, conflict.Error(), `already defined by machine "state"`)
}

func TestRegistry_NamespaceAvoidsCollision(t *testing.T) {
	r := registry.New()

	require.NoError(t, r.Insert("Vehicle", machineWith(t, "state", "", "active")))
	assert.NoError(t, r.Insert("Vehicle", machineWith(t, "alarm_state", "alarm", "active")))
}

func TestRegistry_OwnersAreIsolated(t *testing.T) {
	r := registry.New()

	require.NoError(t, r.Insert("Vehicle", machineWith(t, "state", "", "parked")))
	assert.NoError(t, r.Insert("Motorcycle", machineWith(t, "state", "", "parked")))
}
