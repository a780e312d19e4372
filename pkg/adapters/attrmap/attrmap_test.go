package attrmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stator/pkg/adapters/attrmap"
	"github.com/aretw0/stator/pkg/ports"
)

func TestAdapter_AccessorContract(t *testing.T) {
	adapter := attrmap.New()
	ports.RunAccessorContract(t, adapter, ports.AccessorContract{
		NewObject: func(t *testing.T) any { return map[string]any{} },
		Attribute: "state",
		ValueA:    "parked",
		ValueB:    "idling",
	})
}

func TestAdapter_RejectsOtherObjectTypes(t *testing.T) {
	adapter := attrmap.New()

	_, err := adapter.Read(struct{}{}, "state")
	assert.Error(t, err)
	assert.Error(t, adapter.Write(42, "state", "parked"))
}

func TestAdapter_Evaluate(t *testing.T) {
	adapter := attrmap.New()
	adapter.RegisterMethod("seatbelt_on", func(obj map[string]any, _ ...any) (any, error) {
		return obj["seatbelt"] == true, nil
	})

	v, err := adapter.Evaluate(map[string]any{"seatbelt": true}, "seatbelt_on")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = adapter.Evaluate(map[string]any{}, "missing")
	assert.Error(t, err)
}

func TestAdapter_Invoke(t *testing.T) {
	adapter := attrmap.New()
	saveErr := errors.New("db down")
	adapter.RegisterAction("save", func(obj map[string]any, _ ...any) (bool, error) {
		if obj["broken"] == true {
			return false, saveErr
		}
		return true, nil
	})

	ok, err := adapter.Invoke(map[string]any{}, "save")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = adapter.Invoke(map[string]any{"broken": true}, "save")
	assert.ErrorIs(t, err, saveErr)

	_, err = adapter.Invoke(map[string]any{}, "destroy")
	assert.Error(t, err, "unregistered action must fail")
}
