package redishash_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stator/pkg/adapters/redishash"
	"github.com/aretw0/stator/pkg/ports"
)

func newClient(t *testing.T) *backend.Client {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	return backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestAccessor_Contract(t *testing.T) {
	client := newClient(t)
	accessor := redishash.New(client, "vehicle:")

	n := 0
	ports.RunAccessorContract(t, accessor, ports.AccessorContract{
		NewObject: func(t *testing.T) any {
			n++
			return string(rune('a'+n)) + "-test"
		},
		Attribute: "state",
		ValueA:    "parked",
		ValueB:    "idling",
	})
}

type order struct{ id string }

func (o order) Key() string { return o.id }

func TestAccessor_KeyerObjects(t *testing.T) {
	client := newClient(t)
	accessor := redishash.New(client, "order:")

	obj := order{id: "42"}
	require.NoError(t, accessor.Write(obj, "state", "pending"))

	v, err := accessor.Read(obj, "state")
	require.NoError(t, err)
	assert.Equal(t, "pending", v)

	got, err := client.HGet(accessor.Context(), "order:42", "state").Result()
	require.NoError(t, err)
	assert.Equal(t, "pending", got)
}

func TestAccessor_NilWriteDeletesField(t *testing.T) {
	client := newClient(t)
	accessor := redishash.New(client, "")

	require.NoError(t, accessor.Write("k", "state", "parked"))
	require.NoError(t, accessor.Write("k", "state", nil))

	v, err := accessor.Read("k", "state")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestAccessor_RejectsUnkeyedObjects(t *testing.T) {
	accessor := redishash.New(newClient(t), "")

	_, err := accessor.Read(42, "state")
	assert.Error(t, err)
}
